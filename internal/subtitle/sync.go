package subtitle

import (
	"fmt"
	"math/big"
)

// Mapping is the affine transform y = slope*x + intercept fitted through
// two (desynced, synced) pairs. It is evaluated in exact rational
// arithmetic, so no precision is lost at any millisecond magnitude.
type Mapping struct {
	slope     *big.Rat
	intercept *big.Rat
}

func NewMapping(desyncedFirst, desyncedLast, syncedFirst, syncedLast Timecode) (*Mapping, error) {
	if desyncedFirst == desyncedLast {
		return nil, fmt.Errorf("%w (%s)", ErrDegenerateAnchors, desyncedFirst)
	}

	// m = (y2 - y1) / (x2 - x1)
	dy := new(big.Int).Sub(bigTimecode(syncedLast), bigTimecode(syncedFirst))
	dx := new(big.Int).Sub(bigTimecode(desyncedLast), bigTimecode(desyncedFirst))
	slope := new(big.Rat).SetFrac(dy, dx)

	// b = y2 - m*x2
	intercept := new(big.Rat).Mul(slope, new(big.Rat).SetInt(bigTimecode(desyncedLast)))
	intercept.Sub(new(big.Rat).SetInt(bigTimecode(syncedLast)), intercept)

	return &Mapping{slope: slope, intercept: intercept}, nil
}

// approximate slope, for logging
func (m *Mapping) Slope() float64 {
	f, _ := m.slope.Float64()
	return f
}

// approximate intercept in milliseconds, for logging
func (m *Mapping) Intercept() float64 {
	f, _ := m.intercept.Float64()
	return f
}

// Apply maps t and rounds to the nearest millisecond, ties away from zero.
func (m *Mapping) Apply(t Timecode) (Timecode, error) {
	y := new(big.Rat).Mul(m.slope, new(big.Rat).SetInt(bigTimecode(t)))
	y.Add(y, m.intercept)

	ms := roundHalfAwayFromZero(y)
	if ms.Sign() < 0 || !ms.IsUint64() {
		return 0, fmt.Errorf("%w: %s maps to %s ms", ErrTimecodeRange, t, ms)
	}
	return Timecode(ms.Uint64()), nil
}

// FitMapping fits the mapping that moves the start of the first cue to
// first and the start of the last cue to last. Anchors are always taken
// from collection order, never from time order.
func FitMapping(cues Cues, first, last Timecode) (*Mapping, error) {
	desyncedFirst, err := cues.FirstStart()
	if err != nil {
		return nil, err
	}
	desyncedLast, err := cues.LastStart()
	if err != nil {
		return nil, err
	}
	return NewMapping(desyncedFirst, desyncedLast, first, last)
}

// ApplyTo maps every start and end in place. On error the cues are left
// unchanged.
func (m *Mapping) ApplyTo(cues Cues) error {
	synced := make([]Cue, len(cues))
	for i, cue := range cues {
		start, err := m.Apply(cue.Start)
		if err != nil {
			return fmt.Errorf("subtitle %d start: %w", i+1, err)
		}
		end, err := m.Apply(cue.End)
		if err != nil {
			return fmt.Errorf("subtitle %d end: %w", i+1, err)
		}
		cue.Start, cue.End = start, end
		synced[i] = cue
	}

	copy(cues, synced)
	return nil
}

// Synchronize re-times cues in place so that the first cue starts at first
// and the last cue starts at last, scaling every start and end linearly.
func Synchronize(cues Cues, first, last Timecode) error {
	mapping, err := FitMapping(cues, first, last)
	if err != nil {
		return err
	}
	return mapping.ApplyTo(cues)
}

func bigTimecode(t Timecode) *big.Int {
	return new(big.Int).SetUint64(uint64(t))
}

// floor((2|n| + d) / 2d) with the sign of r
func roundHalfAwayFromZero(r *big.Rat) *big.Int {
	num := new(big.Int).Abs(r.Num())
	den := r.Denom()

	q := new(big.Int).Lsh(num, 1)
	q.Add(q, den)
	q.Quo(q, new(big.Int).Lsh(den, 1))

	if r.Sign() < 0 {
		q.Neg(q)
	}
	return q
}
