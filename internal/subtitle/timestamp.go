package subtitle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	srtTimestampRegex = regexp.MustCompile(
		`^(\d{1,2}):(\d{2}):(\d{2})[,.](\d{1,3})$`,
	)
	vttTimestampRegex = regexp.MustCompile(
		`^(?:(\d{1,4}):)?(\d{2}):(\d{2})\.(\d{3})$`,
	)
	assTimestampRegex = regexp.MustCompile(
		`^(\d+):(\d{2}):(\d{2})\.(\d{2})$`,
	)
	ttmlClockRegex = regexp.MustCompile(
		`^(\d{2,}):(\d{2}):(\d{2})(?:\.(\d{1,3}))?$`,
	)
)

// ParseSRTTimestamp parses an SRT timestamp of the form HH:MM:SS,mmm.
// A dot decimal separator is accepted as well; both appear in the wild.
func ParseSRTTimestamp(s string) (time.Duration, bool) {
	m := srtTimestampRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	return clock(m[1], m[2], m[3], padMillis(m[4])), true
}

// ParseVTTTimestamp parses a WebVTT timestamp, HH:MM:SS.mmm or
// MM:SS.mmm when the hours component is omitted.
func ParseVTTTimestamp(s string) (time.Duration, bool) {
	m := vttTimestampRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	hours := m[1]
	if hours == "" {
		hours = "0"
	}
	return clock(hours, m[2], m[3], m[4]), true
}

// ParseASSTimestamp parses an SSA/ASS timestamp, H:MM:SS.cc with
// centisecond precision and unpadded hours.
func ParseASSTimestamp(s string) (time.Duration, bool) {
	m := assTimestampRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	centis, _ := strconv.Atoi(m[4])
	return clock(m[1], m[2], m[3], "0") +
		time.Duration(centis)*10*time.Millisecond, true
}

// ParseTTMLClock parses a TTML clock-time expression HH:MM:SS or
// HH:MM:SS.fraction.
func ParseTTMLClock(s string) (time.Duration, bool) {
	m := ttmlClockRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	return clock(m[1], m[2], m[3], padMillis(m[4])), true
}

// FormatVTTTimestamp renders a duration as a WebVTT timestamp,
// zero-padded HH:MM:SS.mmm with exactly three millisecond digits.
func FormatVTTTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

func clock(hours, minutes, seconds, millis string) time.Duration {
	h, _ := strconv.Atoi(hours)
	m, _ := strconv.Atoi(minutes)
	s, _ := strconv.Atoi(seconds)
	ms, _ := strconv.Atoi(millis)

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond
}

// padMillis right-pads a fractional-second field to millisecond
// precision, so "5" means 500ms and "05" means 50ms.
func padMillis(frac string) string {
	if frac == "" {
		return "0"
	}
	for len(frac) < 3 {
		frac += "0"
	}
	return frac[:3]
}
