package workers

import (
	"runtime"
	"strconv"
	"testing"
)

func TestCount(t *testing.T) {
	available := runtime.GOMAXPROCS(0)

	tests := []struct {
		name       string
		multiplier float64
		limit      int
		want       int
	}{
		{"cpu bound no limit", 1.0, 0, available},
		{"io bound no limit", 2.0, 0, available * 2},
		{"limit applies", 2.0, 1, 1},
		{"minimum of one", 0.0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.multiplier, tt.limit); got != tt.want {
				t.Errorf("Count(%v, %d) = %d, want %d", tt.multiplier, tt.limit, got, tt.want)
			}
		})
	}
}

func TestCountEnvOverride(t *testing.T) {
	t.Setenv("EXTRACT_WORKERS", "7")

	if got := Count(1.0, 0); got != 7 {
		t.Errorf("Count with EXTRACT_WORKERS=7 = %d, want 7", got)
	}
	if got := Count(1.0, 3); got != 3 {
		t.Errorf("Count with EXTRACT_WORKERS=7 and limit 3 = %d, want 3", got)
	}
}

func TestCountEnvInvalid(t *testing.T) {
	t.Setenv("EXTRACT_WORKERS", "not-a-number")

	want := runtime.GOMAXPROCS(0)
	if got := Count(1.0, 0); got != want {
		t.Errorf("Count with invalid override = %d, want %d", got, want)
	}

	t.Setenv("EXTRACT_WORKERS", strconv.Itoa(-2))
	if got := Count(1.0, 0); got != want {
		t.Errorf("Count with negative override = %d, want %d", got, want)
	}
}
