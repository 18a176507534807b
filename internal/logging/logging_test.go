package logging

import "testing"

func TestLogLevelString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level LogLevel
		want  string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{LogLevel(42), "unknown(42)"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestGetLevelDefaultsToInfo(t *testing.T) {
	// Level is latched on first use; with no env overrides in the test
	// environment it must be info or whatever the environment selected,
	// but never an out-of-range value.
	level := GetLevel()
	if level < LevelDebug || level > LevelError {
		t.Errorf("GetLevel() = %d, out of range", level)
	}
}
