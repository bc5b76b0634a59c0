package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitormf/pro-video-player-sub011/internal/discovery"
)

var discoverCmd = &cobra.Command{
	Use:   "discover [video_file]",
	Short: "Find sidecar subtitle files for a video",
	Long: `Find subtitle files next to a video by filename convention.

Searches the video's directory and Subs/Subtitles subdirectories.
Matching modes:
  strict  base name equal, plus at most one language suffix
  prefix  base name starts with the video's base name (default)
  fuzzy   leading filename tokens match, extras allowed

Examples:
  subkit discover movie.mp4
  subkit discover movie.mp4 --mode fuzzy`,
	Args: cobra.ExactArgs(1),
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().
		StringP("mode", "m", "prefix", "Matching mode (strict, prefix, fuzzy)")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	modeFlag, _ := cmd.Flags().GetString("mode")

	mode := discovery.MatchMode(modeFlag)
	switch mode {
	case discovery.MatchStrict, discovery.MatchPrefix, discovery.MatchFuzzy:
	default:
		return fmt.Errorf(
			"invalid mode %q: supported modes are strict, prefix, fuzzy",
			modeFlag,
		)
	}

	results := discovery.Discover(videoPath, mode)
	logger.Infow("Discovery finished", "video", videoPath, "matches", len(results))

	if len(results) == 0 {
		fmt.Println("No sidecar subtitles found.")
		return nil
	}
	for _, r := range results {
		lang := r.Language
		if lang == "" {
			lang = "-"
		}
		fmt.Printf("%-6s %-4s %-12s %s\n", r.Format, lang, r.Label, r.Path)
	}
	return nil
}
