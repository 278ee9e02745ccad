package subtitle

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// writes cues as SubRip with CRLF line endings, numbered from 1
func Encode(w io.Writer, cues Cues) error {
	bw := bufio.NewWriter(w)
	for i, cue := range cues {
		// index (1-based)
		fmt.Fprintf(bw, "%d\r\n", i+1)

		// timestamps: 00:00:00,000 --> 00:00:00,000[position]
		fmt.Fprintf(bw, "%s --> %s%s\r\n",
			FormatTimecode(cue.Start),
			FormatTimecode(cue.End),
			cue.Position)

		// text already ends with CRLF, so this leaves the blank separator
		bw.WriteString(cue.Text)
		bw.WriteString("\r\n")
	}
	return bw.Flush()
}

// Serialize returns the encoded output split into lines without terminators.
func Serialize(cues Cues) []string {
	var buf bytes.Buffer
	// writes to a bytes.Buffer cannot fail
	_ = Encode(&buf, cues)

	out := buf.String()
	if out == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n")
}

// WriteFile replaces path atomically: the cues are written to a temporary
// file in the same directory which is then renamed over path. A symlink
// at path is followed, so the link's target gets the new content.
func WriteFile(path string, cues Cues) error {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}

	if err := ensureDir(path); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, cues); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write subtitles: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}
