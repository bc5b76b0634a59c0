package subtitle

import (
	"strings"
	"testing"
	"time"
)

const assHeader = `[Script Info]
Title: test
ScriptType: v4.00+

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
`

func dialogue(text string) string {
	return assHeader + "Dialogue: 0,0:00:01.00,0:00:05.00,Default,,0,0,0,," + text + "\n"
}

func TestParseASSBasic(t *testing.T) {
	cues := ParseASS(dialogue("Hello, world!"))
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	cue := cues[0]
	if cue.Start != time.Second || cue.End != 5*time.Second {
		t.Errorf("times %v --> %v", cue.Start, cue.End)
	}
	// the Text field contains a comma and must survive re-joining
	if cue.Text != "Hello, world!" {
		t.Errorf("text %q", cue.Text)
	}
	if len(cue.Spans) != 1 || !cue.Spans[0].Style.IsZero() {
		t.Errorf("expected a single plain span, got %v", cue.Spans)
	}
}

func TestParseASSBoldItalic(t *testing.T) {
	cues := ParseASS(dialogue(`{\b1}Bold{\b0} and {\i1}italic{\i0}`))
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	cue := cues[0]

	if cue.Text != "Bold and italic" {
		t.Errorf("flattened text %q", cue.Text)
	}
	want := []Span{
		{Text: "Bold", Style: Style{Bold: true}},
		{Text: " and ", Style: Style{}},
		{Text: "italic", Style: Style{Italic: true}},
	}
	if len(cue.Spans) != len(want) {
		t.Fatalf("expected %d spans, got %d: %v", len(want), len(cue.Spans), cue.Spans)
	}
	for i := range want {
		if cue.Spans[i] != want[i] {
			t.Errorf("span %d = %+v, want %+v", i, cue.Spans[i], want[i])
		}
	}
}

func TestParseASSUnderlineStrike(t *testing.T) {
	cues := ParseASS(dialogue(`{\u1\s1}both{\u0\s0} neither`))
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	spans := cues[0].Spans
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %v", spans)
	}
	if spans[0].Style != (Style{Underline: true, Strikethrough: true}) {
		t.Errorf("span 0 style %+v", spans[0].Style)
	}
	if !spans[1].Style.IsZero() {
		t.Errorf("span 1 style %+v", spans[1].Style)
	}
}

func TestParseASSColor(t *testing.T) {
	t.Run("bgr reversed to argb", func(t *testing.T) {
		// &H0000FF& is BGR for pure red
		cues := ParseASS(dialogue(`{\c&H0000FF&}red`))
		style := cues[0].Spans[0].Style
		if !style.HasColor || style.Color != 0xffff0000 {
			t.Errorf("style %+v, want opaque red", style)
		}
	})

	t.Run("1c alias", func(t *testing.T) {
		cues := ParseASS(dialogue(`{\1c&HFF0000&}blue`))
		style := cues[0].Spans[0].Style
		if !style.HasColor || style.Color != 0xff0000ff {
			t.Errorf("style %+v, want opaque blue", style)
		}
	})

	t.Run("alpha inverted", func(t *testing.T) {
		// leading alpha byte 0x40 transparency becomes 0xBF opacity
		cues := ParseASS(dialogue(`{\c&H4000FF00&}green`))
		style := cues[0].Spans[0].Style
		if !style.HasColor || style.Color != 0xbf00ff00 {
			t.Errorf("style %+v, want 0xbf00ff00", style)
		}
	})

	t.Run("malformed color keeps previous state", func(t *testing.T) {
		cues := ParseASS(dialogue(`{\c&H0000FF&}red {\c&HZZZ&}still red`))
		spans := cues[0].Spans
		if len(spans) != 1 {
			t.Fatalf("malformed color must not open a span boundary: %v", spans)
		}
		if spans[0].Style.Color != 0xffff0000 {
			t.Errorf("color %#x, want red retained", spans[0].Style.Color)
		}
	})
}

func TestParseASSFontTags(t *testing.T) {
	cues := ParseASS(dialogue(`{\fs32\fnComic Sans MS}styled`))
	style := cues[0].Spans[0].Style
	if style.FontSize != 32 {
		t.Errorf("font size %v", style.FontSize)
	}
	if style.FontName != "Comic Sans MS" {
		t.Errorf("font name %q", style.FontName)
	}
}

func TestParseASSNonStylingTags(t *testing.T) {
	// positioning, karaoke and fades must not open span boundaries
	cues := ParseASS(dialogue(`{\pos(10,20)\fad(100,200)}one{\k50} two{\move(1,2,3,4)} three`))
	cue := cues[0]
	if cue.Text != "one two three" {
		t.Errorf("text %q", cue.Text)
	}
	if len(cue.Spans) != 1 {
		t.Errorf("expected a single span, got %v", cue.Spans)
	}
}

func TestParseASSReset(t *testing.T) {
	cues := ParseASS(dialogue(`{\b1\i1}styled{\r}normal`))
	spans := cues[0].Spans
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %v", spans)
	}
	if spans[0].Style != (Style{Bold: true, Italic: true}) {
		t.Errorf("span 0 style %+v", spans[0].Style)
	}
	if !spans[1].Style.IsZero() {
		t.Errorf("span 1 style %+v", spans[1].Style)
	}
}

func TestParseASSLineBreaks(t *testing.T) {
	cues := ParseASS(dialogue(`first\Nsecond\nthird`))
	if cues[0].Text != "first\nsecond\nthird" {
		t.Errorf("text %q", cues[0].Text)
	}
}

func TestParseASSReorderedColumns(t *testing.T) {
	input := `[Events]
Format: Start, End, Text
Dialogue: 0:00:01.00,0:00:02.00,Reordered, with comma
`
	cues := ParseASS(input)
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].Text != "Reordered, with comma" {
		t.Errorf("text %q", cues[0].Text)
	}
	if cues[0].Start != time.Second || cues[0].End != 2*time.Second {
		t.Errorf("times %v --> %v", cues[0].Start, cues[0].End)
	}
}

func TestParseASSCommentLines(t *testing.T) {
	input := assHeader +
		"Comment: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,Not a cue\n" +
		"Dialogue: 0,0:00:03.00,0:00:04.00,Default,,0,0,0,,A cue\n"
	cues := ParseASS(input)
	if len(cues) != 1 || cues[0].Text != "A cue" {
		t.Fatalf("unexpected cues %v", cues)
	}
}

func TestParseASSOutsideEvents(t *testing.T) {
	input := `[Script Info]
Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,Wrong section

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,0:00:03.00,0:00:04.00,Default,,0,0,0,,Right section
`
	cues := ParseASS(input)
	if len(cues) != 1 || cues[0].Text != "Right section" {
		t.Fatalf("unexpected cues %v", cues)
	}
}

func TestParseASSMalformedLines(t *testing.T) {
	input := assHeader +
		"Dialogue: 0,bad,0:00:02.00,Default,,0,0,0,,Skipped\n" +
		"Dialogue: 0\n" +
		"Dialogue: 0,0:00:03.00,0:00:04.00,Default,,0,0,0,,Kept\n"
	cues := ParseASS(input)
	if len(cues) != 1 || cues[0].Text != "Kept" {
		t.Fatalf("unexpected cues %v", cues)
	}
}

// concatenating a cue's span texts must equal its flat text for any
// input
func TestParseASSSpanConcatenation(t *testing.T) {
	inputs := []string{
		`plain text`,
		`{\b1}Bold{\b0} and {\i1}italic{\i0}`,
		`{\pos(1,2)}moved{\k20} karaoke`,
		`line\None{\i1} styled\Ntwo{\i0} done`,
		`{\c&H123456&}colored {\c&Hbad&}text`,
		`{\fnArial\fs20}font stuff`,
		`unterminated {\b1 block`,
	}
	for _, text := range inputs {
		cues := ParseASS(dialogue(text))
		if len(cues) != 1 {
			t.Fatalf("input %q: expected 1 cue, got %d", text, len(cues))
		}
		cue := cues[0]
		if got := cue.SpanText(); got != cue.Text {
			t.Errorf("input %q: span concat %q != text %q", text, got, cue.Text)
		}
	}
}

func TestParseASSGarbage(t *testing.T) {
	for _, input := range []string{"", "random text", "[Events]\n", strings.Repeat("x", 1000)} {
		if cues := ParseASS(input); len(cues) != 0 {
			t.Errorf("input %q: expected no cues, got %d", input, len(cues))
		}
	}
}
