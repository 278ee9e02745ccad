package video

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// defines interface for media container operations
type Processor interface {
	// writes one subtitle stream of a media file as SubRip
	ExtractSubtitles(
		ctx context.Context,
		mediaPath, outputPath string,
		opts ExtractSubtitleOptions,
	) error
}

// holds options for subtitle extraction
type ExtractSubtitleOptions struct {
	Stream int    // Index among the subtitle streams (0 = first)
	Codec  string // Output subtitle codec, srt unless set
}

// returns sensible defaults for subtitle extraction
func DefaultExtractSubtitleOptions() ExtractSubtitleOptions {
	return ExtractSubtitleOptions{
		Stream: 0,
		Codec:  "srt",
	}
}

// overrides the ffmpeg binary looked up on PATH
const ffmpegPathEnv = "SUBSYNC_FFMPEG_PATH"

// time ffmpeg gets to release its output after being killed
const waitDelay = 2 * time.Second

// default implementation using ffmpeg
type DefaultProcessor struct {
	ffmpegPath string
}

func NewProcessor() *DefaultProcessor {
	ffmpegPath := os.Getenv(ffmpegPathEnv)
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &DefaultProcessor{
		ffmpegPath: ffmpegPath,
	}
}

// extracts a subtitle stream from a media file
func (p *DefaultProcessor) ExtractSubtitles(
	ctx context.Context,
	mediaPath, outputPath string,
	opts ExtractSubtitleOptions,
) error {
	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return fmt.Errorf("media file not found: %s", mediaPath)
	}
	if opts.Stream < 0 {
		return fmt.Errorf("invalid subtitle stream index %d", opts.Stream)
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	args := extractStream(mediaPath, outputPath, opts).GetArgs()

	// killed when ctx is cancelled
	cmd := exec.CommandContext(ctx, p.ffmpegPath, args...)
	cmd.WaitDelay = waitDelay
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("ffmpeg extraction interrupted: %w", ctxErr)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("ffmpeg extraction failed: %w: %s", err, lastLine(msg))
		}
		return fmt.Errorf("ffmpeg extraction failed: %w", err)
	}

	return nil
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

func extractStream(
	mediaPath, outputPath string,
	opts ExtractSubtitleOptions,
) *ffmpeg.Stream {
	codec := opts.Codec
	if codec == "" {
		codec = "srt"
	}

	kwargs := ffmpeg.KwArgs{
		"map": fmt.Sprintf("0:s:%d", opts.Stream), // Subtitle stream only
		"c:s": codec,                              // Subtitle codec
		"f":   codec,                              // Container matches codec
	}

	return ffmpeg.Input(mediaPath).
		Output(outputPath, kwargs).
		OverWriteOutput()
}
