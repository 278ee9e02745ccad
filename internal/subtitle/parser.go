package subtitle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// LegacyTextLimit is the per-cue body capacity of the classic fixed-size
// buffer (1024 bytes including its terminator).
const LegacyTextLimit = 1023

type ParseOptions struct {
	// TextLimit caps the bytes kept for one cue body; bytes past the cap
	// are dropped silently. Zero means unbounded.
	TextLimit int
}

type parseState int

const (
	stateIndex  parseState = iota // leading number or blank lines between cues
	stateTiming                   // "start --> end [position]"
	stateText                     // body lines until a blank line
)

func (s parseState) String() string {
	switch s {
	case stateIndex:
		return "index"
	case stateTiming:
		return "timing"
	case stateText:
		return "text"
	default:
		return fmt.Sprintf("parseState(%d)", int(s))
	}
}

// what the parser does with the line that caused a transition
type parseAction int

const (
	actionSkip parseAction = iota
	actionTiming
	actionText
	actionEmit
)

// transition is the parser state machine; it has no side effects.
func transition(state parseState, line string) (parseState, parseAction, error) {
	blank := line == ""

	switch state {
	case stateIndex:
		if blank {
			return stateIndex, actionSkip, nil
		}
		// the ordinal is never trusted
		return stateTiming, actionSkip, nil
	case stateTiming:
		if blank {
			return state, actionSkip, ErrUnexpectedBlankLine
		}
		return stateText, actionTiming, nil
	case stateText:
		if blank {
			return stateIndex, actionEmit, nil
		}
		return stateText, actionText, nil
	default:
		return state, actionSkip, fmt.Errorf("invalid parser state %v", state)
	}
}

// Parser turns SubRip lines into cues. A Parser owns its buffers and
// must not be shared between goroutines.
type Parser struct {
	opts  ParseOptions
	state parseState
	line  int
	cue   Cue
	text  []byte
	cues  Cues
	err   error
}

func NewParser(opts ParseOptions) *Parser {
	return &Parser{opts: opts}
}

// Feed consumes one input line. A trailing "\n" or "\r\n" is stripped.
// After the first error every further call returns that error.
func (p *Parser) Feed(line string) error {
	if p.err != nil {
		return p.err
	}
	p.line++

	line = stripEOL(line)

	next, action, err := transition(p.state, line)
	if err != nil {
		return p.fail(err)
	}

	switch action {
	case actionTiming:
		start, end, position, err := parseTimingLine(line)
		if err != nil {
			return p.fail(err)
		}
		p.cue = Cue{Start: start, End: end, Position: position}
		p.text = p.text[:0]
	case actionText:
		p.text = appendCapped(p.text, line, p.opts.TextLimit)
		p.text = appendCapped(p.text, "\r\n", p.opts.TextLimit)
	case actionEmit:
		p.cue.Text = string(p.text)
		p.cues = append(p.cues, p.cue)
		p.cue = Cue{}
		p.text = p.text[:0]
	}

	p.state = next
	return nil
}

// Finish returns the parsed cues. A cue still collecting text, i.e. one
// not followed by a blank line, is discarded.
func (p *Parser) Finish() (Cues, error) {
	if p.err != nil {
		return nil, p.err
	}
	cues := p.cues
	if cues == nil {
		cues = Cues{}
	}
	return cues, nil
}

func (p *Parser) fail(err error) error {
	p.err = &ParseError{Line: p.line, Err: err}
	p.cues = nil
	return p.err
}

// parses a sequence of lines with default options
func Parse(lines []string) (Cues, error) {
	return ParseWithOptions(lines, ParseOptions{})
}

func ParseWithOptions(lines []string, opts ParseOptions) (Cues, error) {
	p := NewParser(opts)
	for _, line := range lines {
		if err := p.Feed(line); err != nil {
			return nil, err
		}
	}
	return p.Finish()
}

// Decode reads SubRip text from r. Lines may be of any length.
func Decode(r io.Reader, opts ParseOptions) (Cues, error) {
	p := NewParser(opts)
	br := bufio.NewReader(r)

	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error reading subtitles: %w", err)
		}
		if line != "" {
			if ferr := p.Feed(line); ferr != nil {
				return nil, ferr
			}
		}
		if err != nil {
			break
		}
	}

	return p.Finish()
}

// splits "start --> end[position]"; position keeps everything after the
// end token, leading whitespace included
func parseTimingLine(line string) (Timecode, Timecode, string, error) {
	startTok, rest := cutToken(line)
	arrow, rest := cutToken(rest)
	endTok, rest := cutToken(rest)

	if startTok == "" || arrow != "-->" || endTok == "" {
		return 0, 0, "", fmt.Errorf("%w: %q", ErrMalformedTimingLine, line)
	}

	start, err := ParseTimecode(startTok)
	if err != nil {
		return 0, 0, "", err
	}
	end, err := ParseTimecode(endTok)
	if err != nil {
		return 0, 0, "", err
	}

	return start, end, rest, nil
}

// returns the first whitespace-delimited token of s and the remainder
// directly after it
func cutToken(s string) (string, string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}

func stripEOL(line string) string {
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
		line = strings.TrimSuffix(line, "\r")
	}
	return line
}

func appendCapped(dst []byte, s string, limit int) []byte {
	if limit > 0 {
		room := limit - len(dst)
		if room <= 0 {
			return dst
		}
		if len(s) > room {
			s = s[:room]
		}
	}
	return append(dst, s...)
}
