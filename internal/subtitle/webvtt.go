package subtitle

import (
	"strings"
)

// WriteVTT serializes cues to WebVTT text for native renderers. Styled
// spans keep their bold/italic/underline flags as nested tags in a
// fixed order (bold outermost, then italic, then underline); color and
// font attributes have no safe WebVTT equivalent and are dropped.
// Empty input yields just the header.
func WriteVTT(cues []Cue) string {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n")

	for _, cue := range cues {
		sb.WriteString("\n")
		sb.WriteString(FormatVTTTimestamp(cue.Start))
		sb.WriteString(" --> ")
		sb.WriteString(FormatVTTTimestamp(cue.End))
		sb.WriteString("\n")

		if len(cue.Spans) > 0 {
			for _, span := range cue.Spans {
				writeVTTSpan(&sb, span)
			}
		} else {
			sb.WriteString(cue.Text)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeVTTSpan(sb *strings.Builder, span Span) {
	if span.Style.Bold {
		sb.WriteString("<b>")
	}
	if span.Style.Italic {
		sb.WriteString("<i>")
	}
	if span.Style.Underline {
		sb.WriteString("<u>")
	}
	sb.WriteString(span.Text)
	if span.Style.Underline {
		sb.WriteString("</u>")
	}
	if span.Style.Italic {
		sb.WriteString("</i>")
	}
	if span.Style.Bold {
		sb.WriteString("</b>")
	}
}
