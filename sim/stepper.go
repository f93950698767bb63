// Package sim decides which of the two cell buffers is current.
//
// The cell generation advances on a fixed wall-clock cadence, independent of
// the frame rate. A [Stepper] accumulates elapsed time and flips the [Parity]
// once for every full period that has passed.
package sim

import (
	"fmt"
	"time"
)

// DefaultPeriod is the time between generation flips.
const DefaultPeriod = time.Second

// Parity selects the buffer pair: 0 means render A and compute A→B,
// 1 means render B and compute B→A.
type Parity uint8

// Parities.
const (
	ParityA Parity = 0
	ParityB Parity = 1
)

// Flip returns the other parity.
func (p Parity) Flip() Parity { return p ^ 1 }

// Source returns the index of the buffer that is read at this parity.
func (p Parity) Source() int { return int(p) }

// Destination returns the index of the buffer the compute pass writes.
func (p Parity) Destination() int { return int(p ^ 1) }

// String returns "A" or "B", naming the current buffer.
func (p Parity) String() string {
	switch p {
	case ParityA:
		return "A"
	case ParityB:
		return "B"
	default:
		return fmt.Sprintf("Parity(%d)", uint8(p))
	}
}

// Clock reports the current time. Tests substitute a manual clock.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// WallClock returns a Clock backed by time.Now.
func WallClock() Clock { return wallClock{} }

// Stepper flips parity on a fixed cadence. The zero value is not usable;
// construct with NewStepper.
type Stepper struct {
	period      time.Duration
	accumulator time.Duration
	last        time.Time
	parity      Parity
	generation  uint64
}

// NewStepper returns a Stepper that flips once per period. A non-positive
// period falls back to DefaultPeriod. Time is measured from start.
func NewStepper(period time.Duration, start time.Time) *Stepper {
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Stepper{period: period, last: start}
}

// Advance adds the time since the previous call to the accumulator and
// flips parity if at least one full period has built up. It flips at most
// once per call; any further whole periods stay in the accumulator and are
// spent on later calls. A clock that moves backwards contributes nothing.
func (s *Stepper) Advance(now time.Time) (Parity, bool) {
	if delta := now.Sub(s.last); delta > 0 {
		s.accumulator += delta
	}
	s.last = now
	if s.accumulator < s.period {
		return s.parity, false
	}
	s.accumulator -= s.period
	s.parity = s.parity.Flip()
	s.generation++
	return s.parity, true
}

// Parity returns the current parity without advancing time.
func (s *Stepper) Parity() Parity { return s.parity }

// Generation returns how many flips have happened.
func (s *Stepper) Generation() uint64 { return s.generation }

// Pending returns the accumulated time not yet spent on a flip.
func (s *Stepper) Pending() time.Duration { return s.accumulator }

// Period returns the flip interval.
func (s *Stepper) Period() time.Duration { return s.period }
