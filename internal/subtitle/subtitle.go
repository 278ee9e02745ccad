package subtitle

// represents single subtitle cue
type Cue struct {
	Start Timecode
	End   Timecode

	// trailing annotation of the timing line, kept verbatim including its
	// leading whitespace; empty means the cue has no position
	Position string

	// body lines, each terminated by CRLF
	Text string
}

// reports whether the timing line carried a position suffix
func (c Cue) HasPosition() bool {
	return c.Position != ""
}

// ordered cue collection, always in input order
type Cues []Cue

// start of the first cue in collection order
func (c Cues) FirstStart() (Timecode, error) {
	if len(c) == 0 {
		return 0, ErrEmptyInput
	}
	return c[0].Start, nil
}

// start of the last cue in collection order
func (c Cues) LastStart() (Timecode, error) {
	if len(c) == 0 {
		return 0, ErrEmptyInput
	}
	return c[len(c)-1].Start, nil
}
