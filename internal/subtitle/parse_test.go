package subtitle

import (
	"testing"
	"time"
)

func TestParseDispatch(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		format Format
		want   string
	}{
		{
			"srt",
			"1\n00:00:01,000 --> 00:00:02,000\nfrom srt\n",
			FormatSRT,
			"from srt",
		},
		{
			"vtt",
			"WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nfrom vtt\n",
			FormatVTT,
			"from vtt",
		},
		{
			"ass",
			"[Events]\nFormat: Start, End, Text\nDialogue: 0:00:01.00,0:00:02.00,from ass\n",
			FormatASS,
			"from ass",
		},
		{
			"ssa routes to the same parser",
			"[Events]\nFormat: Start, End, Text\nDialogue: 0:00:01.00,0:00:02.00,from ssa\n",
			FormatSSA,
			"from ssa",
		},
		{
			"ttml",
			`<tt xmlns="http://www.w3.org/ns/ttml"><body><div><p begin="1s" end="2s">from ttml</p></div></body></tt>`,
			FormatTTML,
			"from ttml",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cues := Parse(tt.text, tt.format)
			if len(cues) != 1 {
				t.Fatalf("Parse() returned %d cues, want 1", len(cues))
			}
			if cues[0].Text != tt.want {
				t.Errorf("cue text = %q, want %q", cues[0].Text, tt.want)
			}
		})
	}
}

func TestParseUnknownFormat(t *testing.T) {
	if cues := Parse("1\n00:00:01,000 --> 00:00:02,000\nHi\n", FormatUnknown); cues != nil {
		t.Errorf("Parse with unknown format = %v, want nil", cues)
	}
	if cues := Parse("anything", Format("mkv")); cues != nil {
		t.Errorf("Parse with unrecognized format = %v, want nil", cues)
	}
}

func TestParseAuto(t *testing.T) {
	cues, format := ParseAuto("WEBVTT\n\n00:00:01.000 --> 00:00:05.000\nHi\n")
	if format != FormatVTT {
		t.Errorf("format = %q, want %q", format, FormatVTT)
	}
	if len(cues) != 1 || cues[0].Start != time.Second || cues[0].Text != "Hi" {
		t.Errorf("cues = %+v", cues)
	}
}

func TestParseAutoUnrecognized(t *testing.T) {
	cues, format := ParseAuto("just some random text")
	if format != FormatUnknown {
		t.Errorf("format = %q, want unknown", format)
	}
	if len(cues) != 0 {
		t.Errorf("cues = %+v, want none", cues)
	}
}
