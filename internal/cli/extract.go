package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitormf/pro-video-player-sub011/internal/video"
)

var extractCmd = &cobra.Command{
	Use:   "extract [video_file]",
	Short: "Extract an embedded subtitle stream to a file",
	Long: `Extract one embedded subtitle stream from a video container and
save it as a sidecar subtitle file.

The stream index comes from "subkit probe". The output format follows
the output file's extension (.srt, .vtt, .ass, .ttml).

Examples:
  subkit extract movie.mkv
  subkit extract movie.mkv --stream 3 -o movie.en.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().
		IntP("stream", "s", -1, "Stream index to extract (default: first text stream)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	videoPath := args[0]

	streamIndex, _ := cmd.Flags().GetInt("stream")
	outputPath, _ := cmd.Flags().GetString("output")

	ctx := context.Background()

	if streamIndex < 0 {
		streams, err := video.ListSubtitleStreams(ctx, videoPath)
		if err != nil {
			return err
		}
		for _, s := range streams {
			if s.TextFormat() != "" {
				streamIndex = s.Index
				break
			}
		}
		if streamIndex < 0 {
			return fmt.Errorf("no extractable text subtitle stream in %s", videoPath)
		}
	}

	if outputPath == "" {
		ext := filepath.Ext(videoPath)
		outputPath = strings.TrimSuffix(videoPath, ext) + ".srt"
	}

	logger.Infow("Extracting subtitle stream",
		"video", videoPath,
		"stream", streamIndex,
		"output", outputPath,
	)

	if err := video.ExtractStream(ctx, videoPath, streamIndex, outputPath); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitle extracted successfully: %s\n", absOutput)
	return nil
}
