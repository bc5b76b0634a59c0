package subtitle

import (
	"regexp"
	"strings"
)

var (
	scriptTypeRegex = regexp.MustCompile(
		`(?im)^ScriptType:\s*v4\.00\+`,
	)
	ttmlRootRegex = regexp.MustCompile(
		`<tt[\s>]|xmlns\s*=\s*"http://www\.w3\.org/ns/ttml"`,
	)
	srtIndexRegex = regexp.MustCompile(`^\d+$`)
	srtArrowRegex = regexp.MustCompile(
		`^\d{1,2}:\d{2}:\d{2}[,.]\d{1,3}\s*-->\s*\d{1,2}:\d{2}:\d{2}[,.]\d{1,3}`,
	)
)

// Detect sniffs raw subtitle text and returns the format it appears to
// be, or FormatUnknown. Detection is purely syntactic: it never parses
// the content, and it never fails.
func Detect(text string) Format {
	text = strings.TrimPrefix(text, "\uFEFF")
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return FormatUnknown
	}

	if strings.HasPrefix(trimmed, "WEBVTT") {
		first := trimmed
		if i := strings.IndexAny(first, "\r\n"); i >= 0 {
			first = first[:i]
		}
		if strings.TrimSpace(first) == "WEBVTT" ||
			strings.HasPrefix(first, "WEBVTT ") ||
			strings.HasPrefix(first, "WEBVTT\t") {
			return FormatVTT
		}
	}

	if strings.HasPrefix(trimmed, "<?xml") || ttmlRootRegex.MatchString(trimmed) {
		return FormatTTML
	}

	if strings.Contains(text, "[Script Info]") || strings.Contains(text, "[Events]") {
		if scriptTypeRegex.MatchString(text) {
			return FormatASS
		}
		return FormatSSA
	}

	// a numeric index line followed by a timestamp arrow line
	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines)-1; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if srtIndexRegex.MatchString(line) &&
			srtArrowRegex.MatchString(strings.TrimSpace(lines[i+1])) {
			return FormatSRT
		}
		break
	}

	return FormatUnknown
}
