package subtitle

import (
	"testing"
	"time"
)

func TestParseSRTTimestamp(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
		ok    bool
	}{
		{"00:00:01,000", time.Second, true},
		{"00:00:05,500", 5500 * time.Millisecond, true},
		{"01:02:03,004", time.Hour + 2*time.Minute + 3*time.Second + 4*time.Millisecond, true},
		{"00:00:01.000", time.Second, true}, // dot separator appears in the wild
		{"0:00:01,000", time.Second, true},
		{"00:00:01", 0, false},
		{"garbage", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseSRTTimestamp(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseSRTTimestamp(%q) = %v, %v, want %v, %v",
					tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseVTTTimestamp(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
		ok    bool
	}{
		{"00:00:01.000", time.Second, true},
		{"01:30.500", time.Minute + 30*time.Second + 500*time.Millisecond, true}, // hours omitted
		{"12:34:56.789", 12*time.Hour + 34*time.Minute + 56*time.Second + 789*time.Millisecond, true},
		{"00:00:01,000", 0, false}, // comma separator is SRT, not VTT
		{"00:00:01.00", 0, false},  // VTT requires three millisecond digits
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseVTTTimestamp(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseVTTTimestamp(%q) = %v, %v, want %v, %v",
					tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseASSTimestamp(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
		ok    bool
	}{
		{"0:00:01.00", time.Second, true},
		{"0:00:05.25", 5250 * time.Millisecond, true},
		{"1:02:03.99", time.Hour + 2*time.Minute + 3*time.Second + 990*time.Millisecond, true},
		{"10:00:00.00", 10 * time.Hour, true}, // hours are unpadded but not limited
		{"0:00:01.000", 0, false},             // centiseconds are exactly two digits
		{"0:0:01.00", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseASSTimestamp(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseASSTimestamp(%q) = %v, %v, want %v, %v",
					tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseTTMLClock(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
		ok    bool
	}{
		{"00:00:01.000", time.Second, true},
		{"00:00:01", time.Second, true},
		{"00:00:01.5", 1500 * time.Millisecond, true}, // short fractions scale up
		{"5s", 0, false},                              // offset-time is not clock-time
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseTTMLClock(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseTTMLClock(%q) = %v, %v, want %v, %v",
					tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFormatVTTTimestamp(t *testing.T) {
	tests := []struct {
		input time.Duration
		want  string
	}{
		{0, "00:00:00.000"},
		{time.Second, "00:00:01.000"},
		{90*time.Minute + 30*time.Second + 7*time.Millisecond, "01:30:30.007"},
		{-time.Second, "00:00:00.000"},
	}

	for _, tt := range tests {
		got := FormatVTTTimestamp(tt.input)
		if got != tt.want {
			t.Errorf("FormatVTTTimestamp(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// formatting then parsing then formatting again must be a fixpoint for
// every non-negative offset
func TestTimestampFormatParseFixpoint(t *testing.T) {
	offsets := []time.Duration{
		0,
		time.Millisecond,
		999 * time.Millisecond,
		time.Second,
		time.Minute + 2*time.Second,
		time.Hour,
		25*time.Hour + 61*time.Millisecond,
	}

	for _, d := range offsets {
		formatted := FormatVTTTimestamp(d)
		parsed, ok := ParseVTTTimestamp(formatted)
		if !ok {
			t.Fatalf("ParseVTTTimestamp(%q) failed", formatted)
		}
		if again := FormatVTTTimestamp(parsed); again != formatted {
			t.Errorf("fixpoint broken for %v: %q != %q", d, again, formatted)
		}
	}
}
