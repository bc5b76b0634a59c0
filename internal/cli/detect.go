package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vitormf/pro-video-player-sub011/internal/subtitle"
	"github.com/vitormf/pro-video-player-sub011/internal/textenc"
)

var detectCmd = &cobra.Command{
	Use:   "detect [subtitle_file]",
	Short: "Detect the format of a subtitle file",
	Long: `Sniff a subtitle file's content and print the detected format.

Prints one of srt, vtt, ssa, ass, ttml, or none.`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	format := subtitle.Detect(textenc.Decode(raw))
	if format == subtitle.FormatUnknown {
		fmt.Println("none")
		return nil
	}
	fmt.Println(format)
	return nil
}
