package subtitle

import (
	"strings"
	"time"
)

// represents a single timed subtitle entry
type Cue struct {
	Index int // original ordinal from the source file, 0 when absent
	Start time.Duration
	End   time.Duration
	Text  string // plain text, multi-line cues joined with "\n"

	// Spans is a styling overlay over Text. When non-nil, the
	// concatenation of span texts equals Text exactly.
	Spans []Span
}

// a contiguous run of cue text sharing one style state
type Span struct {
	Text  string
	Style Style // zero value means plain text
}

// inline text styling; fields are independent and compose
type Style struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Color         uint32 // ARGB, valid only when HasColor is set
	HasColor      bool
	FontSize      float64 // format-native units, 0 when unset
	FontName      string
}

// reports whether the style carries no attributes
func (s Style) IsZero() bool {
	return s == Style{}
}

// SpanText returns the concatenation of all span texts. For cues
// produced by the parsers in this package it equals Text whenever
// Spans is present.
func (c Cue) SpanText() string {
	var sb strings.Builder
	for _, sp := range c.Spans {
		sb.WriteString(sp.Text)
	}
	return sb.String()
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT     Format = "srt"
	FormatVTT     Format = "vtt"
	FormatSSA     Format = "ssa"
	FormatASS     Format = "ass"
	FormatTTML    Format = "ttml"
	FormatUnknown Format = ""
)

// FormatFromExtension maps a file path to a subtitle format by its
// extension. Returns FormatUnknown when the extension is not a known
// subtitle extension.
func FormatFromExtension(path string) Format {
	dot := strings.LastIndexByte(path, '.')
	if dot < 0 {
		return FormatUnknown
	}
	switch strings.ToLower(path[dot:]) {
	case ".srt":
		return FormatSRT
	case ".vtt", ".webvtt":
		return FormatVTT
	case ".ssa":
		return FormatSSA
	case ".ass":
		return FormatASS
	case ".ttml", ".dfxp", ".xml":
		return FormatTTML
	default:
		return FormatUnknown
	}
}

// SupportedExtensions lists the sidecar file extensions the parsers
// understand, lowercase with leading dot.
func SupportedExtensions() []string {
	return []string{".srt", ".vtt", ".webvtt", ".ssa", ".ass", ".ttml", ".dfxp", ".xml"}
}
