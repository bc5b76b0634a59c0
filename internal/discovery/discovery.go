// Package discovery finds sidecar subtitle files next to a video file
// by filename convention and infers their language from trailing
// filename segments.
package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vitormf/pro-video-player-sub011/internal/language"
	"github.com/vitormf/pro-video-player-sub011/internal/loader"
	"github.com/vitormf/pro-video-player-sub011/internal/subtitle"
)

// how candidate base names are matched against the video's base name
type MatchMode string

const (
	// base name equal, optionally plus one language-suffix segment
	MatchStrict MatchMode = "strict"
	// base name starts with the video's base name (the default)
	MatchPrefix MatchMode = "prefix"
	// leading filename tokens match, extra trailing tokens allowed
	MatchFuzzy MatchMode = "fuzzy"
)

// the label used when no language can be inferred from the filename
const defaultLabel = "External"

// subdirectories searched next to the video, case-sensitive
var subtitleDirs = []string{"Subs", "Subtitles", "subs", "subtitles"}

// DiscoveredSource is a sidecar subtitle file found next to a video,
// with language and label inferred from its name. Results are
// recomputed on every call and never persisted.
type DiscoveredSource struct {
	Path     string
	Format   subtitle.Format
	Language string // canonical 2-letter code, empty when unknown
	Label    string
}

// Source converts the discovery result into a loadable file source.
func (d DiscoveredSource) Source() loader.Source {
	return loader.Source{
		Type:     loader.SourceFile,
		Location: d.Path,
		Format:   d.Format,
		Language: d.Language,
		Label:    d.Label,
	}
}

// Discover scans the video's directory and the known subtitle
// subdirectories for sidecar files matching the video's base name
// under the given mode. A missing video path or directory yields an
// empty result, never an error.
func Discover(videoPath string, mode MatchMode) []DiscoveredSource {
	if mode == "" {
		mode = MatchPrefix
	}

	dir := filepath.Dir(videoPath)
	videoBase := stripExtension(filepath.Base(videoPath))
	if videoBase == "" {
		return nil
	}

	var found []DiscoveredSource
	searchDirs := make([]string, 0, 1+len(subtitleDirs))
	searchDirs = append(searchDirs, dir)
	for _, sub := range subtitleDirs {
		searchDirs = append(searchDirs, filepath.Join(dir, sub))
	}

	for _, searchDir := range searchDirs {
		entries, err := os.ReadDir(searchDir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			format := subtitle.FormatFromExtension(name)
			if format == subtitle.FormatUnknown {
				continue
			}
			candidateBase := stripExtension(name)
			if !matches(videoBase, candidateBase, mode) {
				continue
			}

			code, display := inferLanguage(candidateBase)
			label := display
			if label == "" {
				label = defaultLabel
			}
			found = append(found, DiscoveredSource{
				Path:     filepath.Join(searchDir, name),
				Format:   format,
				Language: code,
				Label:    label,
			})
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Path < found[j].Path })
	return found
}

func stripExtension(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func matches(videoBase, candidateBase string, mode MatchMode) bool {
	switch mode {
	case MatchStrict:
		if candidateBase == videoBase {
			return true
		}
		rest, ok := strings.CutPrefix(candidateBase, videoBase+".")
		if !ok {
			rest, ok = strings.CutPrefix(candidateBase, videoBase+"_")
		}
		// exactly one extra segment, the language suffix
		return ok && rest != "" && !strings.ContainsAny(rest, "._")

	case MatchFuzzy:
		videoTokens := tokenize(videoBase)
		candidateTokens := tokenize(candidateBase)
		n := len(videoTokens)
		if len(candidateTokens) < n {
			n = len(candidateTokens)
		}
		if n == 0 {
			return false
		}
		// the shorter name bounds the comparison; extra trailing
		// tokens on either side are allowed
		for i := 0; i < n; i++ {
			if !strings.EqualFold(videoTokens[i], candidateTokens[i]) {
				return false
			}
		}
		return true

	default: // MatchPrefix
		return strings.HasPrefix(candidateBase, videoBase)
	}
}

// tokenize splits a base name on the separator set used by release
// naming conventions.
func tokenize(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == ' '
	})
}

// inferLanguage inspects the candidate's trailing dot/underscore
// separated segments for a known language code or name, preferring the
// segment closest to the extension. The first segment is always part
// of the title and is never treated as a language marker.
func inferLanguage(candidateBase string) (code, display string) {
	segments := strings.FieldsFunc(candidateBase, func(r rune) bool {
		return r == '.' || r == '_'
	})
	for i := len(segments) - 1; i >= 1; i-- {
		if c, d, ok := language.Match(segments[i]); ok {
			return c, d
		}
	}
	return "", ""
}
