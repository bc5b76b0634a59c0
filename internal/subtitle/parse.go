package subtitle

// Parse routes raw subtitle text to the parser for the given format.
// An unknown format yields no cues; parsers themselves never fail, so
// garbage input produces an empty result.
func Parse(text string, format Format) []Cue {
	switch format {
	case FormatSRT:
		return ParseSRT(text)
	case FormatVTT:
		return ParseVTT(text)
	case FormatSSA, FormatASS:
		return ParseASS(text)
	case FormatTTML:
		return ParseTTML(text)
	default:
		return nil
	}
}

// ParseAuto sniffs the format of raw subtitle text and parses it.
// Unrecognized content returns no cues and FormatUnknown.
func ParseAuto(text string) ([]Cue, Format) {
	format := Detect(text)
	if format == FormatUnknown {
		return nil, FormatUnknown
	}
	return Parse(text, format), format
}
