package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitormf/pro-video-player-sub011/internal/video"
)

var probeCmd = &cobra.Command{
	Use:   "probe [video_file]",
	Short: "List embedded subtitle streams in a video",
	Long: `List the subtitle streams embedded in a video container.

Text streams (SRT, ASS, WebVTT, mov_text) can be extracted with
"subkit extract"; bitmap streams (PGS, DVD) are listed but cannot be
converted to text.`,
	Args: cobra.ExactArgs(1),
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	streams, err := video.ListSubtitleStreams(context.Background(), args[0])
	if err != nil {
		return err
	}

	if len(streams) == 0 {
		fmt.Println("No embedded subtitle streams.")
		return nil
	}
	for _, s := range streams {
		kind := "bitmap"
		if s.TextFormat() != "" {
			kind = string(s.TextFormat())
		}
		flags := ""
		if s.Default {
			flags += " default"
		}
		if s.Forced {
			flags += " forced"
		}
		lang := s.Language
		if lang == "" {
			lang = "und"
		}
		fmt.Printf("#%-3d %-18s %-6s %s%s\n", s.Index, s.Codec, kind, lang, flags)
	}
	return nil
}
