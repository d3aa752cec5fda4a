// Package format renders second counts for display.
package format

import (
	"fmt"
	"math"
)

// Clock renders seconds as m:ss.
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Duration renders seconds as 45s, 2m or 1m 30s.
func Duration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := seconds / 60
	rest := seconds % 60
	switch {
	case minutes == 0:
		return fmt.Sprintf("%ds", rest)
	case rest == 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return fmt.Sprintf("%dm %ds", minutes, rest)
	}
}

// Percent renders a fraction in [0,1] as a rounded percentage.
func Percent(value float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(value*100)))
}
