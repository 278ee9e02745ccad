package subtitle

import (
	"fmt"
	"os"
)

// parses the SubRip file at path
func Open(path string, opts ParseOptions) (Cues, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SRT file: %w", err)
	}
	defer file.Close()

	cues, err := Decode(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cues, nil
}
