package subtitle

import (
	"encoding/xml"
	"strconv"
	"strings"
	"time"
)

// timing context derived from the root tt element
type ttmlTiming struct {
	frameRate float64
	tickRate  float64
}

// style attributes resolvable onto the span model
type ttmlStyle struct {
	bold      bool
	italic    bool
	underline bool
}

func (s ttmlStyle) toStyle() Style {
	return Style{Bold: s.bold, Italic: s.italic, Underline: s.underline}
}

// ParseTTML parses a TTML (Timed Text Markup Language) document into
// cues. It walks body/div/p elements in document order, computes end
// times from dur when needed, applies the root frame-rate multiplier
// to frame- and tick-based time expressions, and maps nested span
// styling onto styled spans on a best-effort basis. Invalid XML or
// missing timing yields fewer cues, never an error.
func ParseTTML(text string) []Cue {
	text = strings.TrimPrefix(text, "\uFEFF")

	p := &ttmlParser{
		timing: ttmlTiming{frameRate: 30, tickRate: 1},
		styles: map[string]ttmlStyle{},
	}
	p.run(text)
	return p.cues
}

type ttmlParser struct {
	timing       ttmlTiming
	styles       map[string]ttmlStyle
	cues         []Cue
	rootPreserve bool
}

func (p *ttmlParser) run(text string) {
	dec := xml.NewDecoder(strings.NewReader(text))

	var divBegin []time.Duration // per-div begin offsets, stacked
	preserve := []bool{false}

	for {
		tok, err := dec.Token()
		if err != nil {
			return
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			if end, ok := tok.(xml.EndElement); ok {
				if end.Name.Local == "div" && len(divBegin) > 0 {
					divBegin = divBegin[:len(divBegin)-1]
					preserve = preserve[:len(preserve)-1]
				}
			}
			continue
		}

		switch start.Name.Local {
		case "tt":
			p.readRootAttrs(start)
			preserve[0] = p.rootPreserve

		case "style":
			p.readStyleDef(start)

		case "div":
			var offset time.Duration
			if v, ok := attr(start, "begin"); ok {
				if d, ok := p.parseTime(v); ok {
					offset = d
				}
			}
			divBegin = append(divBegin, offset)
			preserve = append(preserve, xmlSpacePreserve(start, preserve[len(preserve)-1]))

		case "p":
			var base time.Duration
			if len(divBegin) > 0 {
				base = divBegin[len(divBegin)-1]
			}
			p.readParagraph(dec, start, base, preserve[len(preserve)-1])
		}
	}
}

func (p *ttmlParser) readRootAttrs(start xml.StartElement) {
	multiplier := 1.0
	frameRateSet := false
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "frameRate":
			if v, err := strconv.ParseFloat(a.Value, 64); err == nil && v > 0 {
				p.timing.frameRate = v
				frameRateSet = true
			}
		case "frameRateMultiplier":
			fields := strings.Fields(a.Value)
			if len(fields) == 2 {
				num, err1 := strconv.ParseFloat(fields[0], 64)
				den, err2 := strconv.ParseFloat(fields[1], 64)
				if err1 == nil && err2 == nil && den != 0 {
					multiplier = num / den
				}
			}
		case "tickRate":
			if v, err := strconv.ParseFloat(a.Value, 64); err == nil && v > 0 {
				p.timing.tickRate = v
			}
		case "space":
			p.rootPreserve = a.Value == "preserve"
		}
	}
	p.timing.frameRate *= multiplier
	if frameRateSet && p.timing.tickRate == 1 {
		// per the TTML timing model, ticks default to frames when a
		// frame rate is declared without a tick rate
		p.timing.tickRate = p.timing.frameRate
	}
}

func (p *ttmlParser) readStyleDef(start xml.StartElement) {
	id, ok := attr(start, "id")
	if !ok {
		return
	}
	var st ttmlStyle
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "fontWeight":
			st.bold = a.Value == "bold"
		case "fontStyle":
			st.italic = a.Value == "italic" || a.Value == "oblique"
		case "textDecoration":
			st.underline = strings.Contains(a.Value, "underline")
		}
	}
	p.styles[id] = st
}

// readParagraph consumes one p element and emits a cue when its timing
// resolves.
func (p *ttmlParser) readParagraph(
	dec *xml.Decoder,
	start xml.StartElement,
	base time.Duration,
	preserve bool,
) {
	begin, haveBegin := p.timeAttr(start, "begin")
	end, haveEnd := p.timeAttr(start, "end")
	dur, haveDur := p.timeAttr(start, "dur")
	if haveBegin && !haveEnd && haveDur {
		end = begin + dur
		haveEnd = true
	}

	preserve = xmlSpacePreserve(start, preserve)

	body := ttmlBody{preserve: preserve}
	styleStack := []ttmlStyle{p.resolveStyle(start, ttmlStyle{})}

	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "br":
				body.text("\n", styleStack[len(styleStack)-1], true)
			case "span":
				styleStack = append(styleStack,
					p.resolveStyle(t, styleStack[len(styleStack)-1]))
				continue
			}
			styleStack = append(styleStack, styleStack[len(styleStack)-1])
		case xml.EndElement:
			depth--
			if depth > 0 {
				styleStack = styleStack[:len(styleStack)-1]
			}
		case xml.CharData:
			body.text(string(t), styleStack[len(styleStack)-1], false)
		}
	}

	if !haveBegin || !haveEnd {
		return
	}

	plain, spans := body.finish()
	p.cues = append(p.cues, Cue{
		Index: len(p.cues) + 1,
		Start: base + begin,
		End:   base + end,
		Text:  plain,
		Spans: spans,
	})
}

// resolveStyle layers an element's style reference and inline tts
// attributes over the inherited state.
func (p *ttmlParser) resolveStyle(el xml.StartElement, inherited ttmlStyle) ttmlStyle {
	st := inherited
	if ref, ok := attr(el, "style"); ok {
		for _, name := range strings.Fields(ref) {
			if def, ok := p.styles[name]; ok {
				st.bold = st.bold || def.bold
				st.italic = st.italic || def.italic
				st.underline = st.underline || def.underline
			}
		}
	}
	for _, a := range el.Attr {
		switch a.Name.Local {
		case "fontWeight":
			st.bold = a.Value == "bold"
		case "fontStyle":
			st.italic = a.Value == "italic" || a.Value == "oblique"
		case "textDecoration":
			st.underline = strings.Contains(a.Value, "underline")
		}
	}
	return st
}

// ttmlBody accumulates paragraph content into styled runs.
type ttmlBody struct {
	preserve bool
	plain    strings.Builder
	run      strings.Builder
	spans    []Span
	style    ttmlStyle
	styled   bool
	lastWS   bool
}

func (b *ttmlBody) text(s string, style ttmlStyle, literal bool) {
	if !literal && !b.preserve {
		s = collapseWhitespace(s, &b.lastWS)
	} else if s != "" {
		b.lastWS = s[len(s)-1] == ' ' || s[len(s)-1] == '\n'
	}
	if s == "" {
		return
	}
	if style != b.style {
		b.closeRun()
		b.style = style
	}
	if style != (ttmlStyle{}) {
		b.styled = true
	}
	b.run.WriteString(s)
	b.plain.WriteString(s)
}

func (b *ttmlBody) closeRun() {
	if b.run.Len() == 0 {
		return
	}
	b.spans = append(b.spans, Span{Text: b.run.String(), Style: b.style.toStyle()})
	b.run.Reset()
}

// finish trims outer whitespace (unless preserved) and returns the
// flattened text with its spans; unstyled paragraphs yield nil spans.
func (b *ttmlBody) finish() (string, []Span) {
	b.closeRun()
	plain := b.plain.String()

	if !b.preserve {
		trimmed := strings.Trim(plain, " \t\r\n")
		if trimmed != plain {
			b.spans = trimSpans(b.spans)
			plain = trimmed
		}
	}
	if !b.styled {
		return plain, nil
	}
	return plain, b.spans
}

// collapseWhitespace folds runs of XML whitespace into single spaces,
// carrying state across adjacent text nodes.
func collapseWhitespace(s string, lastWS *bool) string {
	var sb strings.Builder
	for _, r := range s {
		ws := r == ' ' || r == '\t' || r == '\r' || r == '\n'
		if ws {
			if !*lastWS {
				sb.WriteByte(' ')
			}
			*lastWS = true
			continue
		}
		*lastWS = false
		sb.WriteRune(r)
	}
	return sb.String()
}

// trimSpans strips leading whitespace from the first span and trailing
// whitespace from the last, dropping spans emptied by the trim.
func trimSpans(spans []Span) []Span {
	for len(spans) > 0 {
		spans[0].Text = strings.TrimLeft(spans[0].Text, " \t\r\n")
		if spans[0].Text != "" {
			break
		}
		spans = spans[1:]
	}
	for len(spans) > 0 {
		last := len(spans) - 1
		spans[last].Text = strings.TrimRight(spans[last].Text, " \t\r\n")
		if spans[last].Text != "" {
			break
		}
		spans = spans[:last]
	}
	return spans
}

func (p *ttmlParser) timeAttr(el xml.StartElement, name string) (time.Duration, bool) {
	v, ok := attr(el, name)
	if !ok {
		return 0, false
	}
	return p.parseTime(v)
}

// parseTime evaluates a TTML time expression: clock-time
// (HH:MM:SS.mmm or HH:MM:SS:FF) or offset-time (7.5s, 250ms, 30f,
// 9000t and friends).
func (p *ttmlParser) parseTime(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if d, ok := ParseTTMLClock(s); ok {
		return d, true
	}

	// clock-time with a frame component
	if parts := strings.Split(s, ":"); len(parts) == 4 {
		base, ok := ParseTTMLClock(strings.Join(parts[:3], ":"))
		if !ok {
			return 0, false
		}
		frames, err := strconv.ParseFloat(parts[3], 64)
		if err != nil || p.timing.frameRate <= 0 {
			return 0, false
		}
		return base + time.Duration(frames/p.timing.frameRate*float64(time.Second)), true
	}

	return p.parseOffset(s)
}

func (p *ttmlParser) parseOffset(s string) (time.Duration, bool) {
	unitStart := len(s)
	for unitStart > 0 {
		c := s[unitStart-1]
		if c >= '0' && c <= '9' || c == '.' {
			break
		}
		unitStart--
	}
	value, err := strconv.ParseFloat(s[:unitStart], 64)
	if err != nil {
		return 0, false
	}

	sec := float64(time.Second)
	switch s[unitStart:] {
	case "h":
		return time.Duration(value * 3600 * sec), true
	case "m":
		return time.Duration(value * 60 * sec), true
	case "s":
		return time.Duration(value * sec), true
	case "ms":
		return time.Duration(value * float64(time.Millisecond)), true
	case "f":
		if p.timing.frameRate <= 0 {
			return 0, false
		}
		return time.Duration(value / p.timing.frameRate * sec), true
	case "t":
		if p.timing.tickRate <= 0 {
			return 0, false
		}
		return time.Duration(value / p.timing.tickRate * sec), true
	default:
		return 0, false
	}
}

func attr(el xml.StartElement, local string) (string, bool) {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func xmlSpacePreserve(el xml.StartElement, inherited bool) bool {
	if v, ok := attr(el, "space"); ok {
		return v == "preserve"
	}
	return inherited
}
