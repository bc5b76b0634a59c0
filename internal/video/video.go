// Package video inspects containers for embedded subtitle streams and
// extracts them to sidecar files using ffmpeg.
package video

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	ffmpeggo "github.com/u2takey/ffmpeg-go"

	"github.com/vitormf/pro-video-player-sub011/internal/ffmpeg"
	"github.com/vitormf/pro-video-player-sub011/internal/subtitle"
)

// SubtitleStream describes one embedded subtitle stream.
type SubtitleStream struct {
	Index    int    // absolute stream index in the container
	Codec    string // e.g. "subrip", "ass", "webvtt", "hdmv_pgs_subtitle"
	Language string
	Title    string
	Forced   bool
	Default  bool
}

// codecs that are timed text and survive conversion to a text sidecar;
// bitmap formats (PGS, DVD) cannot be turned into cues
var textCodecs = map[string]subtitle.Format{
	"subrip":   subtitle.FormatSRT,
	"srt":      subtitle.FormatSRT,
	"webvtt":   subtitle.FormatVTT,
	"ass":      subtitle.FormatASS,
	"ssa":      subtitle.FormatSSA,
	"ttml":     subtitle.FormatTTML,
	"mov_text": subtitle.FormatSRT,
}

// TextFormat maps a stream codec to the sidecar format it extracts to,
// or FormatUnknown for bitmap subtitle codecs.
func (s SubtitleStream) TextFormat() subtitle.Format {
	return textCodecs[s.Codec]
}

type probeResult struct {
	Streams []struct {
		Index       int    `json:"index"`
		CodecType   string `json:"codec_type"`
		CodecName   string `json:"codec_name"`
		Disposition struct {
			Default int `json:"default"`
			Forced  int `json:"forced"`
		} `json:"disposition"`
		Tags struct {
			Language string `json:"language"`
			Title    string `json:"title"`
		} `json:"tags"`
	} `json:"streams"`
}

// ListSubtitleStreams probes a container and returns its subtitle
// streams in stream order.
func ListSubtitleStreams(ctx context.Context, videoPath string) ([]SubtitleStream, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return nil, fmt.Errorf("video file not found: %w", err)
	}
	if _, err := ffmpeg.Ensure(); err != nil {
		return nil, err
	}

	out, err := ffmpeggo.Probe(videoPath, ffmpeggo.KwArgs{
		"select_streams": "s",
	})
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var result probeResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}

	var streams []SubtitleStream
	for _, s := range result.Streams {
		if s.CodecType != "" && s.CodecType != "subtitle" {
			continue
		}
		streams = append(streams, SubtitleStream{
			Index:    s.Index,
			Codec:    s.CodecName,
			Language: s.Tags.Language,
			Title:    s.Tags.Title,
			Forced:   s.Disposition.Forced != 0,
			Default:  s.Disposition.Default != 0,
		})
	}
	return streams, nil
}

// ExtractStream writes one embedded subtitle stream to a sidecar file.
// The output codec follows the output path's extension.
func ExtractStream(ctx context.Context, videoPath string, streamIndex int, outputPath string) error {
	if _, err := os.Stat(videoPath); err != nil {
		return fmt.Errorf("video file not found: %w", err)
	}
	if _, err := ffmpeg.Ensure(); err != nil {
		return err
	}

	outFormat := subtitle.FormatFromExtension(outputPath)
	if outFormat == subtitle.FormatUnknown {
		return fmt.Errorf("unsupported output extension: %s", filepath.Ext(outputPath))
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	kwargs := ffmpeggo.KwArgs{
		"map": fmt.Sprintf("0:%d", streamIndex),
		"c:s": codecForFormat(outFormat),
	}

	err := ffmpeggo.Input(videoPath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		Run()
	if err != nil {
		return fmt.Errorf("ffmpeg extraction failed: %w", err)
	}
	return nil
}

func codecForFormat(format subtitle.Format) string {
	switch format {
	case subtitle.FormatVTT:
		return "webvtt"
	case subtitle.FormatASS, subtitle.FormatSSA:
		return "ass"
	case subtitle.FormatTTML:
		return "ttml"
	default:
		return "srt"
	}
}
