package subtitle

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// point in time as a count of milliseconds
type Timecode uint64

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
)

// hh:mm:ss,mmm with either ',' or '.' before the milliseconds
var timecodeRegex = regexp.MustCompile(`^(\d+):(\d+):(\d+)[,.](\d+)$`)

// converts hh:mm:ss,mmm (or hh:mm:ss.mmm) to a Timecode
func ParseTimecode(s string) (Timecode, error) {
	matches := timecodeRegex.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimecode, s)
	}

	var fields [4]uint64
	for i := range fields {
		v, err := strconv.ParseUint(matches[i+1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrMalformedTimecode, s, err)
		}
		fields[i] = v
	}
	h, m, sec, ms := fields[0], fields[1], fields[2], fields[3]

	if m >= 60 || sec >= 60 || ms >= 1000 {
		return 0, fmt.Errorf("%w: %q: field out of range", ErrMalformedTimecode, s)
	}

	rest := m*msPerMinute + sec*msPerSecond + ms
	if h > (math.MaxUint64-rest)/msPerHour {
		return 0, fmt.Errorf("%w: %q: hours overflow", ErrMalformedTimecode, s)
	}

	return Timecode(h*msPerHour + rest), nil
}

// canonical hh:mm:ss,mmm form
func FormatTimecode(t Timecode) string {
	ms := uint64(t)
	h := ms / msPerHour
	ms %= msPerHour
	m := ms / msPerMinute
	ms %= msPerMinute
	s := ms / msPerSecond
	ms %= msPerSecond

	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func (t Timecode) String() string {
	return FormatTimecode(t)
}
