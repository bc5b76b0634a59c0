// Package textenc normalizes raw subtitle bytes to UTF-8 text.
// Subtitle files in the wild arrive as UTF-8 with or without a BOM,
// UTF-16 in either byte order, or single-byte legacy encodings.
package textenc

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode converts raw subtitle bytes to a UTF-8 string. UTF-16 is
// recognized by BOM or by NUL density; bytes that are not valid UTF-8
// fall back to a Windows-1252 interpretation so no input ever fails to
// decode.
func Decode(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}

	switch {
	case bytes.HasPrefix(raw, []byte{0xef, 0xbb, 0xbf}):
		return string(raw[3:])
	case bytes.HasPrefix(raw, []byte{0xff, 0xfe}):
		return decodeUTF16(raw, unicode.LittleEndian)
	case bytes.HasPrefix(raw, []byte{0xfe, 0xff}):
		return decodeUTF16(raw, unicode.BigEndian)
	}

	if endian, ok := sniffUTF16(raw); ok {
		return decodeUTF16(raw, endian)
	}

	if utf8.Valid(raw) {
		return string(raw)
	}

	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

func decodeUTF16(raw []byte, endian unicode.Endianness) string {
	dec := unicode.UTF16(endian, unicode.UseBOM).NewDecoder()
	decoded, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// sniffUTF16 detects BOM-less UTF-16 by the NUL bytes that ASCII-heavy
// subtitle text produces in alternating positions.
func sniffUTF16(raw []byte) (unicode.Endianness, bool) {
	limit := len(raw)
	if limit > 512 {
		limit = 512
	}
	if limit < 4 {
		return unicode.LittleEndian, false
	}

	evenNul, oddNul := 0, 0
	for i := 0; i < limit; i++ {
		if raw[i] == 0 {
			if i%2 == 0 {
				evenNul++
			} else {
				oddNul++
			}
		}
	}

	half := limit / 2
	switch {
	case oddNul > half*3/4 && evenNul < half/8:
		return unicode.LittleEndian, true
	case evenNul > half*3/4 && oddNul < half/8:
		return unicode.BigEndian, true
	default:
		return unicode.LittleEndian, false
	}
}
