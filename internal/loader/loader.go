// Package loader resolves a subtitle source descriptor to parsed cues
// or WebVTT text. Content retrieval is injected: the player supplies
// whatever network, file or asset access it owns, and the loader only
// orchestrates format resolution, decoding and parsing.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/vitormf/pro-video-player-sub011/internal/subtitle"
	"github.com/vitormf/pro-video-player-sub011/internal/textenc"
)

// where subtitle content comes from
type SourceType string

const (
	SourceNetwork SourceType = "network"
	SourceFile    SourceType = "file"
	SourceAsset   SourceType = "asset"
)

// Source describes one subtitle track to load.
type Source struct {
	Type     SourceType
	Location string // URL for network sources, path otherwise

	// Format overrides extension-based resolution when set.
	Format   subtitle.Format
	Label    string
	Language string
	Default  bool
}

// ErrUnknownFormat is returned when a source's format cannot be
// resolved from either its explicit format or its extension. Sources
// are never content-sniffed: only auto-detection entry points may
// guess, and only from content.
var ErrUnknownFormat = errors.New("subtitle format could not be resolved")

// Fetcher retrieves raw subtitle content for a source. Implementations
// live outside this core; FileFetcher is provided for local use and
// tests.
type Fetcher interface {
	Fetch(ctx context.Context, src Source) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, src Source) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, src Source) ([]byte, error) {
	return f(ctx, src)
}

// FileFetcher reads file sources from the local filesystem.
type FileFetcher struct{}

func (FileFetcher) Fetch(_ context.Context, src Source) ([]byte, error) {
	data, err := os.ReadFile(src.Location)
	if err != nil {
		return nil, fmt.Errorf("read subtitle file: %w", err)
	}
	return data, nil
}

// Loader turns sources into cues and WebVTT text.
type Loader struct {
	fetcher Fetcher
}

func New(fetcher Fetcher) *Loader {
	return &Loader{fetcher: fetcher}
}

// ResolveFormat resolves a source's format: the explicit field wins,
// then the location's extension. Content is never sniffed here.
func ResolveFormat(src Source) (subtitle.Format, error) {
	if src.Format != subtitle.FormatUnknown {
		return src.Format, nil
	}
	if format := subtitle.FormatFromExtension(src.Location); format != subtitle.FormatUnknown {
		return format, nil
	}
	return subtitle.FormatUnknown, fmt.Errorf("%w: %s", ErrUnknownFormat, src.Location)
}

// Load fetches and parses a source into cues. Retrieval errors are
// propagated with their cause preserved; parse failures do not exist
// by construction (parsers skip malformed units instead).
func (l *Loader) Load(ctx context.Context, src Source) ([]subtitle.Cue, error) {
	text, format, err := l.fetchText(ctx, src)
	if err != nil {
		return nil, err
	}
	return subtitle.Parse(text, format), nil
}

// LoadVTT fetches a source and returns its content converted to
// WebVTT, ready for a native renderer.
func (l *Loader) LoadVTT(ctx context.Context, src Source) (string, error) {
	cues, err := l.Load(ctx, src)
	if err != nil {
		return "", err
	}
	return subtitle.WriteVTT(cues), nil
}

// Raw fetches the undecoded payload for callers that want the original
// bytes regardless of whether they parse.
func (l *Loader) Raw(ctx context.Context, src Source) ([]byte, error) {
	if _, err := ResolveFormat(src); err != nil {
		return nil, err
	}
	data, err := l.fetcher.Fetch(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("fetch subtitle %s: %w", src.Location, err)
	}
	return data, nil
}

func (l *Loader) fetchText(ctx context.Context, src Source) (string, subtitle.Format, error) {
	format, err := ResolveFormat(src)
	if err != nil {
		return "", subtitle.FormatUnknown, err
	}
	data, err := l.fetcher.Fetch(ctx, src)
	if err != nil {
		return "", format, fmt.Errorf("fetch subtitle %s: %w", src.Location, err)
	}
	return textenc.Decode(data), format, nil
}
