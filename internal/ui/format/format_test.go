package format

import "testing"

func TestClock(t *testing.T) {
	tests := map[int]string{
		0:    "0:00",
		5:    "0:05",
		90:   "1:30",
		600:  "10:00",
		3725: "62:05",
		-3:   "0:00",
	}
	for seconds, want := range tests {
		if got := Clock(seconds); got != want {
			t.Errorf("Clock(%d) = %q, want %q", seconds, got, want)
		}
	}
}

func TestDuration(t *testing.T) {
	tests := map[int]string{
		45:  "45s",
		60:  "1m",
		90:  "1m 30s",
		240: "4m",
		0:   "0s",
	}
	for seconds, want := range tests {
		if got := Duration(seconds); got != want {
			t.Errorf("Duration(%d) = %q, want %q", seconds, got, want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(0.3); got != "30%" {
		t.Errorf("expected 30%%, got %s", got)
	}
	if got := Percent(0.995); got != "100%" {
		t.Errorf("expected 100%%, got %s", got)
	}
}
