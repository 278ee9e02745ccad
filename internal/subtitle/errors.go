package subtitle

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedTimecode   = errors.New("malformed timecode")
	ErrMalformedTimingLine = errors.New("malformed timing line")
	ErrUnexpectedBlankLine = errors.New("unexpected blank line, expected timing line")
	ErrEmptyInput          = errors.New("no subtitles found")
	ErrDegenerateAnchors   = errors.New("first and last subtitle share the same start time")
	ErrTimecodeRange       = errors.New("synchronized timecode out of range")
)

// ParseError reports the input line on which parsing stopped.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing error at line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
