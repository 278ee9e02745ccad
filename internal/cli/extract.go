package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mgpai22/subsync/internal/subtitle"
	"github.com/mgpai22/subsync/internal/video"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [media_file]",
	Short: "Extract a subtitle stream from a media file",
	Long: `Extract a subtitle track from a video container (mkv, mp4, ...) and save
it as a SubRip file that can then be synchronized.

Requires ffmpeg on PATH, or set SUBSYNC_FFMPEG_PATH.

Examples:
  subsync extract movie.mkv
  subsync extract movie.mkv -s 1 -o movie.en.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().
		IntP("stream", "s", 0, "Subtitle stream index (0 = first subtitle stream)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]

	stream, _ := cmd.Flags().GetInt("stream")
	outputPath, _ := cmd.Flags().GetString("output")

	if outputPath == "" {
		outputPath = strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath)) + ".srt"
	}
	if outputPath == mediaPath {
		return fmt.Errorf("output path %q would overwrite the media file", outputPath)
	}

	logger.Infow("Extracting subtitles",
		"media", mediaPath,
		"output", outputPath,
		"stream", stream,
	)

	processor := video.NewProcessor()

	opts := video.DefaultExtractSubtitleOptions()
	opts.Stream = stream

	ctx := context.Background()
	if err := processor.ExtractSubtitles(
		ctx,
		mediaPath,
		outputPath,
		opts,
	); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	// make sure ffmpeg produced something we can synchronize
	cues, err := subtitle.Open(outputPath, subtitle.ParseOptions{})
	if err != nil {
		return fmt.Errorf("extracted subtitles are not valid SubRip: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Subtitles extracted successfully: %s\n", absOutput)
	fmt.Fprintf(cmd.OutOrStdout(), "  Subtitles: %d\n", len(cues))

	return nil
}
