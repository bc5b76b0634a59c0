package subtitle

import (
	"bufio"
	"strconv"
	"strings"
)

// column order assumed when an [Events] section carries no Format line
var defaultASSColumns = []string{
	"Layer", "Start", "End", "Style", "Name",
	"MarginL", "MarginR", "MarginV", "Effect", "Text",
}

// ParseASS parses SSA/ASS text into cues. Only the [Events] section is
// consulted; Dialogue lines produce cues, Comment lines are parsed and
// discarded. Override tags are interpreted into styled spans; anything
// malformed is skipped rather than failing the parse.
func ParseASS(text string) []Cue {
	var cues []Cue

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	inEvents := false
	columns := defaultASSColumns
	startIdx, endIdx, textIdx := columnIndexes(columns)
	lineNum := 0
	index := 0

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}

		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section := strings.ToLower(strings.Trim(trimmed, "[]"))
			inEvents = section == "events"
			continue
		}
		if !inEvents || trimmed == "" || strings.HasPrefix(trimmed, ";") {
			continue
		}

		if rest, ok := cutPrefixFold(trimmed, "Format:"); ok {
			columns = splitColumns(rest)
			startIdx, endIdx, textIdx = columnIndexes(columns)
			continue
		}

		rest, ok := cutPrefixFold(trimmed, "Dialogue:")
		if !ok {
			// Comment: and any other event kinds carry the same
			// fields but produce no cues
			continue
		}
		if startIdx < 0 || endIdx < 0 || textIdx < 0 {
			continue
		}

		fields := strings.Split(strings.TrimSpace(rest), ",")
		if len(fields) <= textIdx || len(fields) <= startIdx || len(fields) <= endIdx {
			continue
		}

		start, okStart := ParseASSTimestamp(fields[startIdx])
		end, okEnd := ParseASSTimestamp(fields[endIdx])
		if !okStart || !okEnd {
			continue
		}

		// the Text field may itself contain commas
		raw := strings.Join(fields[textIdx:], ",")
		plain, spans := interpretOverrides(raw)

		index++
		cues = append(cues, Cue{
			Index: index,
			Start: start,
			End:   end,
			Text:  plain,
			Spans: spans,
		})
	}

	return cues
}

func splitColumns(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func columnIndexes(columns []string) (start, end, text int) {
	start, end, text = -1, -1, -1
	for i, col := range columns {
		switch {
		case strings.EqualFold(col, "Start"):
			start = i
		case strings.EqualFold(col, "End"):
			end = i
		case strings.EqualFold(col, "Text"):
			text = i
		}
	}
	return start, end, text
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return strings.TrimSpace(s[len(prefix):]), true
}

// interpretOverrides runs the stateful override-tag scanner over a
// Dialogue text field. It returns the flattened plain text and the
// styled spans; concatenating span texts always reproduces the plain
// text. Non-styling tags are consumed without opening a span boundary.
func interpretOverrides(raw string) (string, []Span) {
	var plain strings.Builder
	var spans []Span
	var run strings.Builder
	var style Style

	closeRun := func() {
		if run.Len() == 0 {
			return
		}
		spans = append(spans, Span{Text: run.String(), Style: style})
		run.Reset()
	}
	emit := func(s string) {
		run.WriteString(s)
		plain.WriteString(s)
	}

	i := 0
	for i < len(raw) {
		switch {
		case raw[i] == '{':
			blockEnd := strings.IndexByte(raw[i:], '}')
			if blockEnd < 0 {
				// unterminated block: treat the rest as literal text
				emit(raw[i:])
				i = len(raw)
				continue
			}
			next := applyOverrideBlock(style, raw[i+1:i+blockEnd])
			if next != style {
				closeRun()
				style = next
			}
			i += blockEnd + 1

		case raw[i] == '\\' && i+1 < len(raw) && (raw[i+1] == 'N' || raw[i+1] == 'n'):
			emit("\n")
			i += 2

		case raw[i] == '\\' && i+1 < len(raw) && raw[i+1] == 'h':
			emit(" ")
			i += 2

		default:
			emit(string(raw[i]))
			i++
		}
	}
	closeRun()

	return plain.String(), spans
}

// applyOverrideBlock folds every tag in one {...} block over the given
// style state and returns the resulting state.
func applyOverrideBlock(style Style, block string) Style {
	i := 0
	for i < len(block) {
		if block[i] != '\\' {
			i++
			continue
		}
		i++
		i = applyOverrideTag(&style, block, i)
	}
	return style
}

// applyOverrideTag interprets a single tag starting at block[i] (just
// past the backslash) and returns the scan position after it.
func applyOverrideTag(style *Style, block string, i int) int {
	rest := block[i:]

	switch {
	case strings.HasPrefix(rest, "fn"):
		name, n := tagText(rest[2:])
		style.FontName = name
		return i + 2 + n

	case strings.HasPrefix(rest, "fs") && !strings.HasPrefix(rest, "fsc") &&
		!strings.HasPrefix(rest, "fsp"):
		arg, n := tagText(rest[2:])
		if size, err := strconv.ParseFloat(strings.TrimSpace(arg), 64); err == nil && size > 0 {
			style.FontSize = size
		}
		return i + 2 + n

	case strings.HasPrefix(rest, "1c") ||
		(strings.HasPrefix(rest, "c") && !strings.HasPrefix(rest, "clip")):
		skip := 1
		if rest[0] == '1' {
			skip = 2
		}
		arg, n := tagText(rest[skip:])
		if argb, ok := parseASSColor(arg); ok {
			style.Color = argb
			style.HasColor = true
		}
		return i + skip + n

	case strings.HasPrefix(rest, "b") && !strings.HasPrefix(rest, "blur") &&
		!strings.HasPrefix(rest, "bord") && !strings.HasPrefix(rest, "be"):
		arg, n := tagText(rest[1:])
		style.Bold = flagArg(arg)
		return i + 1 + n

	case strings.HasPrefix(rest, "i") && !strings.HasPrefix(rest, "iclip"):
		arg, n := tagText(rest[1:])
		style.Italic = flagArg(arg)
		return i + 1 + n

	case strings.HasPrefix(rest, "u"):
		arg, n := tagText(rest[1:])
		style.Underline = flagArg(arg)
		return i + 1 + n

	case strings.HasPrefix(rest, "s") && !strings.HasPrefix(rest, "shad"):
		arg, n := tagText(rest[1:])
		style.Strikethrough = flagArg(arg)
		return i + 1 + n

	case strings.HasPrefix(rest, "r"):
		// \r resets to the line's base style; named styles are not
		// resolved here, so any argument falls back to the default
		_, n := tagText(rest[1:])
		*style = Style{}
		return i + 1 + n

	default:
		// positioning, movement, fades, rotation, karaoke, drawing
		// mode and every other non-styling tag: consume and ignore
		_, n := tagText(rest)
		return i + n
	}
}

// tagText reads a tag argument up to the next backslash, honoring
// parenthesized arguments like \t(...) and \pos(...).
func tagText(s string) (string, int) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case '\\':
			if depth == 0 {
				return s[:i], i
			}
		}
	}
	return s, len(s)
}

// flagArg interprets a 0/1 style-flag argument; a missing or zero
// argument turns the attribute off, anything else turns it on.
func flagArg(arg string) bool {
	arg = strings.TrimSpace(arg)
	if arg == "" || arg == "0" {
		return false
	}
	return true
}

// parseASSColor converts an ASS &H...& color (BGR with optional leading
// alpha byte) to ARGB. The alpha byte is inverted: ASS stores
// transparency while ARGB stores opacity.
func parseASSColor(arg string) (uint32, bool) {
	arg = strings.TrimSpace(arg)
	if !strings.HasPrefix(arg, "&H") && !strings.HasPrefix(arg, "&h") {
		return 0, false
	}
	hex := strings.TrimSuffix(arg[2:], "&")
	if hex == "" || len(hex) > 8 {
		return 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, false
	}

	b := uint32(v>>16) & 0xff
	g := uint32(v>>8) & 0xff
	r := uint32(v) & 0xff
	a := uint32(0xff)
	if len(hex) > 6 {
		a = 0xff - (uint32(v>>24) & 0xff)
	}
	return a<<24 | r<<16 | g<<8 | b, true
}
