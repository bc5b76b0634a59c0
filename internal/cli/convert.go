package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitormf/pro-video-player-sub011/internal/loader"
	"github.com/vitormf/pro-video-player-sub011/internal/subtitle"
	"github.com/vitormf/pro-video-player-sub011/internal/textenc"
)

var convertCmd = &cobra.Command{
	Use:   "convert [subtitle_file]",
	Short: "Convert a subtitle file to WebVTT",
	Long: `Convert a subtitle file to WebVTT for native renderers.

The input format is resolved from the file extension, or forced with
--format. Use --auto to sniff the format from the file content instead.

Examples:
  subkit convert movie.srt
  subkit convert movie.ass -o movie.vtt
  subkit convert mystery.sub --auto`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		StringP("format", "f", "", "Input format (srt, vtt, ssa, ass, ttml)")
	convertCmd.Flags().
		Bool("auto", false, "Detect the input format from content")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	formatFlag, _ := cmd.Flags().GetString("format")
	auto, _ := cmd.Flags().GetBool("auto")
	outputPath, _ := cmd.Flags().GetString("output")

	src := loader.Source{
		Type:     loader.SourceFile,
		Location: inputPath,
		Format:   subtitle.Format(strings.ToLower(formatFlag)),
	}

	ld := loader.New(loader.FileFetcher{})
	ctx := context.Background()

	var vtt string
	if auto {
		raw, err := os.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		cues, format := subtitle.ParseAuto(textenc.Decode(raw))
		if format == subtitle.FormatUnknown {
			return fmt.Errorf("could not detect subtitle format of %s", inputPath)
		}
		logger.Infow("Detected format", "format", format, "cues", len(cues))
		vtt = subtitle.WriteVTT(cues)
	} else {
		var err error
		vtt, err = ld.LoadVTT(ctx, src)
		if err != nil {
			return err
		}
	}

	if outputPath == "" {
		fmt.Print(vtt)
		return nil
	}

	if err := os.WriteFile(outputPath, []byte(vtt), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Infow("Wrote WebVTT", "output", outputPath)
	fmt.Printf("Converted to %s\n", outputPath)
	return nil
}
