package video

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestExtractStreamArgs(t *testing.T) {
	opts := DefaultExtractSubtitleOptions()
	opts.Stream = 2

	args := strings.Join(extractStream("in.mkv", "out.srt", opts).GetArgs(), " ")

	for _, want := range []string{"-i in.mkv", "-map 0:s:2", "-c:s srt", "out.srt", "-y"} {
		if !strings.Contains(args, want) {
			t.Errorf("expected %q in ffmpeg args %q", want, args)
		}
	}
}

func TestExtractStreamDefaultCodec(t *testing.T) {
	args := strings.Join(
		extractStream("in.mkv", "out.srt", ExtractSubtitleOptions{}).GetArgs(),
		" ",
	)
	if !strings.Contains(args, "-c:s srt") {
		t.Errorf("expected srt codec in %q", args)
	}
}

func TestExtractSubtitlesMissingFile(t *testing.T) {
	p := NewProcessor()
	err := p.ExtractSubtitles(
		context.Background(),
		filepath.Join(t.TempDir(), "missing.mkv"),
		filepath.Join(t.TempDir(), "out.srt"),
		DefaultExtractSubtitleOptions(),
	)
	if err == nil || !strings.Contains(err.Error(), "media file not found") {
		t.Errorf("expected missing file error, got %v", err)
	}
}

func TestExtractSubtitlesCancelled(t *testing.T) {
	media := filepath.Join(t.TempDir(), "in.mkv")
	if err := writeEmpty(media); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewProcessor().ExtractSubtitles(
		ctx, media, filepath.Join(t.TempDir(), "out.srt"),
		DefaultExtractSubtitleOptions(),
	)
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func writeEmpty(path string) error {
	return os.WriteFile(path, nil, 0644)
}

func fakeFFmpeg(t *testing.T, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ffmpegPathEnv, path)
}

func TestExtractSubtitlesStopsOnCancel(t *testing.T) {
	fakeFFmpeg(t, "exec sleep 30\n")

	media := filepath.Join(t.TempDir(), "in.mkv")
	if err := writeEmpty(media); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	started := time.Now()
	err := NewProcessor().ExtractSubtitles(
		ctx, media, filepath.Join(t.TempDir(), "out.srt"),
		DefaultExtractSubtitleOptions(),
	)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
	if elapsed := time.Since(started); elapsed > 10*time.Second {
		t.Errorf("extraction kept running for %v after cancellation", elapsed)
	}
}

func TestExtractSubtitlesPassesArgs(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	fakeFFmpeg(t, "echo \"$@\" > '"+argsFile+"'\n")

	media := filepath.Join(t.TempDir(), "in.mkv")
	if err := writeEmpty(media); err != nil {
		t.Fatal(err)
	}

	opts := DefaultExtractSubtitleOptions()
	opts.Stream = 1
	if err := NewProcessor().ExtractSubtitles(
		context.Background(), media, filepath.Join(t.TempDir(), "out.srt"), opts,
	); err != nil {
		t.Fatalf("ExtractSubtitles error: %v", err)
	}

	got, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("ffmpeg was not run: %v", err)
	}
	if !strings.Contains(string(got), "-map 0:s:1") {
		t.Errorf("expected stream mapping in %q", got)
	}
}

func TestExtractSubtitlesReportsFailure(t *testing.T) {
	fakeFFmpeg(t, "echo 'Stream map matches no streams' >&2\nexit 1\n")

	media := filepath.Join(t.TempDir(), "in.mkv")
	if err := writeEmpty(media); err != nil {
		t.Fatal(err)
	}

	err := NewProcessor().ExtractSubtitles(
		context.Background(), media, filepath.Join(t.TempDir(), "out.srt"),
		DefaultExtractSubtitleOptions(),
	)
	if err == nil || !strings.Contains(err.Error(), "matches no streams") {
		t.Errorf("expected ffmpeg stderr in error, got %v", err)
	}
}
