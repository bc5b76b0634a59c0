package subtitle

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
)

var srtArrowLineRegex = regexp.MustCompile(
	`^(\d{1,2}:\d{2}:\d{2}[,.]\d{1,3})\s*-->\s*(\d{1,2}:\d{2}:\d{2}[,.]\d{1,3})`,
)

// ParseSRT parses SubRip text into cues. Blocks that do not contain a
// valid timestamp line are skipped; malformed input never fails.
func ParseSRT(text string) []Cue {
	var cues []Cue

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var current *Cue
	var textLines []string
	haveTimes := false
	lineNum := 0

	flush := func() {
		if current != nil && haveTimes {
			current.Text = strings.Join(textLines, "\n")
			cues = append(cues, *current)
		}
		current = nil
		textLines = nil
		haveTimes = false
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if current == nil {
			if index, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
				current = &Cue{Index: index}
				continue
			}
			current = &Cue{}
		}

		if !haveTimes {
			m := srtArrowLineRegex.FindStringSubmatch(strings.TrimSpace(line))
			if m != nil {
				start, okStart := ParseSRTTimestamp(m[1])
				end, okEnd := ParseSRTTimestamp(m[2])
				if okStart && okEnd {
					current.Start = start
					current.End = end
					haveTimes = true
					continue
				}
			}
			// no timestamp where one was expected: drop the block
			current = nil
			continue
		}

		textLines = append(textLines, line)
	}
	flush()

	return cues
}
