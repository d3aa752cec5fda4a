package notify

import (
	"bytes"
	"encoding/binary"
	"math"
)

const (
	toneSampleRate = 44100
	toneFrequency  = 880.0
	toneSeconds    = 0.25
	toneFade       = 0.01
	toneHeadroom   = 0.9
)

// Tone returns a mono 16-bit PCM WAV beep scaled by volume in [0,1].
func Tone(volume float64) []byte {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}

	sampleCount := int(toneSampleRate * toneSeconds)
	fadeCount := int(toneSampleRate * toneFade)
	amplitude := volume * toneHeadroom * math.MaxInt16

	samples := make([]int16, sampleCount)
	for i := range samples {
		envelope := 1.0
		if i < fadeCount {
			envelope = float64(i) / float64(fadeCount)
		} else if tail := sampleCount - 1 - i; tail < fadeCount {
			envelope = float64(tail) / float64(fadeCount)
		}
		phase := 2 * math.Pi * toneFrequency * float64(i) / toneSampleRate
		samples[i] = int16(amplitude * envelope * math.Sin(phase))
	}

	dataSize := uint32(len(samples) * 2)
	var buffer bytes.Buffer
	buffer.Grow(44 + int(dataSize))

	buffer.WriteString("RIFF")
	_ = binary.Write(&buffer, binary.LittleEndian, 36+dataSize)
	buffer.WriteString("WAVE")

	buffer.WriteString("fmt ")
	_ = binary.Write(&buffer, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buffer, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&buffer, binary.LittleEndian, uint16(1)) // mono
	_ = binary.Write(&buffer, binary.LittleEndian, uint32(toneSampleRate))
	_ = binary.Write(&buffer, binary.LittleEndian, uint32(toneSampleRate*2))
	_ = binary.Write(&buffer, binary.LittleEndian, uint16(2))
	_ = binary.Write(&buffer, binary.LittleEndian, uint16(16))

	buffer.WriteString("data")
	_ = binary.Write(&buffer, binary.LittleEndian, dataSize)
	_ = binary.Write(&buffer, binary.LittleEndian, samples)

	return buffer.Bytes()
}
