package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mgpai22/subsync/internal/config"
	"github.com/mgpai22/subsync/internal/subtitle"
	"github.com/spf13/cobra"
)

// stdin or stdout in place of a path
const stdio = "-"

func init() {
	rootCmd.Flags().
		StringP("first-sub", "f", "", "Time of the first subtitle (hh:mm:ss,mmm)")
	rootCmd.Flags().
		StringP("last-sub", "l", "", "Time of the last subtitle (hh:mm:ss,mmm)")
	rootCmd.Flags().
		StringP("input", "i", "", "Input file, - for stdin (required)")
	rootCmd.Flags().
		Int("text-limit", 0, "Maximum bytes kept per subtitle text, 0 for no limit, -1 for the legacy 1023 bytes")

	_ = rootCmd.MarkFlagRequired("input")
}

type syncOptions struct {
	First     string // empty keeps the first subtitle's start
	Last      string // empty keeps the last subtitle's start
	TextLimit int
}

func runSync(cmd *cobra.Command, args []string) error {
	firstStr, _ := cmd.Flags().GetString("first-sub")
	lastStr, _ := cmd.Flags().GetString("last-sub")
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	textLimit, _ := cmd.Flags().GetInt("text-limit")

	if !cmd.Flags().Changed("text-limit") {
		textLimit = cfg.TextLimit
	}
	if textLimit < config.LegacyTextLimit {
		return fmt.Errorf("text-limit must be -1, 0 or positive, got %d", textLimit)
	}

	// overwrite the input unless told otherwise
	if outputPath == "" {
		outputPath = inputPath
	}

	opts := syncOptions{
		First:     firstStr,
		Last:      lastStr,
		TextLimit: textLimit,
	}

	logger.Infow("Starting subtitle synchronization",
		"input", inputPath,
		"output", outputPath,
		"first", firstStr,
		"last", lastStr,
		"text_limit", textLimit,
	)

	var in io.Reader = cmd.InOrStdin()
	if inputPath != stdio {
		file, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer file.Close()
		in = file
	}

	cues, err := readAndSync(in, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}

	logger.Infow("Writing output file", "subtitles", len(cues))
	if outputPath == stdio {
		return subtitle.Encode(cmd.OutOrStdout(), cues)
	}
	if err := subtitle.WriteFile(outputPath, cues); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	logger.Infow("Subtitles synchronized", "output", absOutput)

	return nil
}

// parses r and re-times the cues according to opts
func readAndSync(r io.Reader, opts syncOptions) (subtitle.Cues, error) {
	// validate flags before reading any input
	first, hasFirst, err := parseAnchor(opts.First, "first-sub")
	if err != nil {
		return nil, err
	}
	last, hasLast, err := parseAnchor(opts.Last, "last-sub")
	if err != nil {
		return nil, err
	}

	cues, err := subtitle.Decode(r, subtitle.ParseOptions{
		TextLimit: resolveTextLimit(opts.TextLimit),
	})
	if err != nil {
		return nil, err
	}
	if len(cues) == 0 {
		return nil, subtitle.ErrEmptyInput
	}

	logger.Debugw("Parsed subtitles", "subtitles", len(cues))

	if !hasFirst {
		first, _ = cues.FirstStart()
	}
	if !hasLast {
		last, _ = cues.LastStart()
	}

	if first > last {
		return nil, fmt.Errorf(
			"first subtitle (%s) can not be after last subtitle (%s)",
			first,
			last,
		)
	}

	mapping, err := subtitle.FitMapping(cues, first, last)
	if err != nil {
		return nil, err
	}
	if err := mapping.ApplyTo(cues); err != nil {
		return nil, err
	}

	logger.Debugw("Synchronized subtitles",
		"first", first.String(),
		"last", last.String(),
		"slope", mapping.Slope(),
		"intercept_ms", mapping.Intercept(),
	)

	return cues, nil
}

func parseAnchor(value, flag string) (subtitle.Timecode, bool, error) {
	if value == "" {
		return 0, false, nil
	}
	t, err := subtitle.ParseTimecode(value)
	if err != nil {
		return 0, false, fmt.Errorf("invalid --%s value: %w", flag, err)
	}
	return t, true, nil
}

func resolveTextLimit(limit int) int {
	if limit == config.LegacyTextLimit {
		return subtitle.LegacyTextLimit
	}
	return limit
}
