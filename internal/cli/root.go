package cli

import (
	"github.com/spf13/cobra"

	"github.com/vitormf/pro-video-player-sub011/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "subkit",
	Short: "Subtitle toolkit for video playback",
	Long: `Subkit converts, inspects and discovers subtitle files for video
playback.

It parses SRT, WebVTT, SSA/ASS and TTML subtitles, converts them to
WebVTT for native renderers, finds sidecar subtitle files next to a
video, and extracts embedded subtitle streams from containers.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
