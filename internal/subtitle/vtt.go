package subtitle

import (
	"bufio"
	"regexp"
	"strings"
)

var vttArrowLineRegex = regexp.MustCompile(
	`^((?:\d{1,4}:)?\d{2}:\d{2}\.\d{3})\s*-->\s*((?:\d{1,4}:)?\d{2}:\d{2}\.\d{3})(\s.*)?$`,
)

// ParseVTT parses WebVTT text into cues. The WEBVTT header is expected
// but its absence is tolerated. Cue identifier lines and cue settings
// are accepted and ignored; NOTE and STYLE blocks are skipped. Inline
// <b>, <i> and <u> tags become styled spans.
func ParseVTT(text string) []Cue {
	var cues []Cue

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var current *Cue
	var textLines []string
	lineNum := 0
	index := 0

	flush := func() {
		if current != nil {
			plain, spans := scanVTTMarkup(strings.Join(textLines, "\n"))
			current.Text = plain
			current.Spans = spans
			cues = append(cues, *current)
		}
		current = nil
		textLines = nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
			if strings.HasPrefix(strings.TrimSpace(line), "WEBVTT") {
				continue
			}
		}

		trimmed := strings.TrimSpace(line)

		if current == nil &&
			(strings.HasPrefix(trimmed, "NOTE") || strings.HasPrefix(trimmed, "STYLE") ||
				strings.HasPrefix(trimmed, "REGION")) {
			for scanner.Scan() {
				lineNum++
				if strings.TrimSpace(scanner.Text()) == "" {
					break
				}
			}
			continue
		}

		if trimmed == "" {
			flush()
			continue
		}

		m := vttArrowLineRegex.FindStringSubmatch(trimmed)
		if m != nil {
			// a timestamp line opens a new cue even without a
			// preceding blank line
			flush()
			start, okStart := ParseVTTTimestamp(m[1])
			end, okEnd := ParseVTTTimestamp(m[2])
			if !okStart || !okEnd {
				continue
			}
			index++
			current = &Cue{Index: index, Start: start, End: end}
			continue
		}

		if current != nil {
			textLines = append(textLines, line)
		}
		// a non-timestamp line with no open cue is a cue identifier
		// (or stray text); either way it carries no content
	}
	flush()

	return cues
}

// vtt inline tags recognized by both the parser and the writer
var vttTags = []struct {
	token string
	open  bool
	set   func(*Style, bool)
}{
	{"<b>", true, func(s *Style, v bool) { s.Bold = v }},
	{"</b>", false, func(s *Style, v bool) { s.Bold = v }},
	{"<i>", true, func(s *Style, v bool) { s.Italic = v }},
	{"</i>", false, func(s *Style, v bool) { s.Italic = v }},
	{"<u>", true, func(s *Style, v bool) { s.Underline = v }},
	{"</u>", false, func(s *Style, v bool) { s.Underline = v }},
}

// scanVTTMarkup splits cue payload text into plain text plus styled
// spans. Text without any recognized tag yields nil spans. Unrecognized
// markup is kept as literal text.
func scanVTTMarkup(text string) (string, []Span) {
	if !strings.ContainsRune(text, '<') {
		return text, nil
	}

	var plain strings.Builder
	var spans []Span
	var run strings.Builder
	var style Style
	sawTag := false

	closeRun := func() {
		if run.Len() == 0 {
			return
		}
		spans = append(spans, Span{Text: run.String(), Style: style})
		run.Reset()
	}

	i := 0
	for i < len(text) {
		if text[i] == '<' {
			matched := false
			for _, tag := range vttTags {
				if strings.HasPrefix(text[i:], tag.token) {
					closeRun()
					tag.set(&style, tag.open)
					i += len(tag.token)
					sawTag = true
					matched = true
					break
				}
			}
			if matched {
				continue
			}
		}
		run.WriteByte(text[i])
		plain.WriteByte(text[i])
		i++
	}

	if !sawTag {
		return text, nil
	}
	closeRun()
	return plain.String(), spans
}
