package sim

import (
	"testing"
	"time"
)

// manualClock is a Clock advanced explicitly by the test.
type manualClock struct {
	t time.Time
}

func (c *manualClock) Now() time.Time { return c.t }

func (c *manualClock) advance(d time.Duration) time.Time {
	c.t = c.t.Add(d)
	return c.t
}

func newClock() *manualClock {
	return &manualClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestParity(t *testing.T) {
	tests := []struct {
		p        Parity
		src, dst int
		flip     Parity
		name     string
	}{
		{0, 0, 1, 1, "A"},
		{1, 1, 0, 0, "B"},
	}
	for _, tt := range tests {
		if tt.p.Source() != tt.src || tt.p.Destination() != tt.dst {
			t.Errorf("parity %d: source/destination = %d/%d, want %d/%d",
				tt.p, tt.p.Source(), tt.p.Destination(), tt.src, tt.dst)
		}
		if tt.p.Flip() != tt.flip {
			t.Errorf("parity %d: Flip() = %d, want %d", tt.p, tt.p.Flip(), tt.flip)
		}
		if tt.p.String() != tt.name {
			t.Errorf("parity %d: String() = %q, want %q", tt.p, tt.p.String(), tt.name)
		}
	}
}

func TestStepperSubSecondTicks(t *testing.T) {
	clk := newClock()
	s := NewStepper(time.Second, clk.Now())

	flips := 0
	// 100 ticks of 35ms cross the 1s boundary three times (3.5s total).
	for range 100 {
		if _, flipped := s.Advance(clk.advance(35 * time.Millisecond)); flipped {
			flips++
		}
	}
	if flips != 3 {
		t.Errorf("flips = %d, want 3", flips)
	}
	if s.Parity() != 1 {
		t.Errorf("Parity() = %d, want 1 after three flips", s.Parity())
	}
	if s.Generation() != 3 {
		t.Errorf("Generation() = %d, want 3", s.Generation())
	}
	if got := s.Pending(); got != 500*time.Millisecond {
		t.Errorf("Pending() = %v, want 500ms", got)
	}
}

func TestStepperNoFlipBeforePeriod(t *testing.T) {
	clk := newClock()
	s := NewStepper(time.Second, clk.Now())

	for range 9 {
		if p, flipped := s.Advance(clk.advance(100 * time.Millisecond)); flipped || p != 0 {
			t.Fatalf("flipped before one second elapsed (parity %d)", p)
		}
	}
	p, flipped := s.Advance(clk.advance(100 * time.Millisecond))
	if !flipped || p != 1 {
		t.Fatalf("Advance at 1s = (%d, %v), want (1, true)", p, flipped)
	}
}

func TestStepperOneFlipPerCall(t *testing.T) {
	clk := newClock()
	s := NewStepper(time.Second, clk.Now())

	// A 3.2s stall is spent one flip per call.
	if _, flipped := s.Advance(clk.advance(3200 * time.Millisecond)); !flipped {
		t.Fatal("expected flip after stall")
	}
	if _, flipped := s.Advance(clk.Now()); !flipped {
		t.Fatal("expected second flip from backlog")
	}
	if _, flipped := s.Advance(clk.Now()); !flipped {
		t.Fatal("expected third flip from backlog")
	}
	if _, flipped := s.Advance(clk.Now()); flipped {
		t.Fatal("backlog should be exhausted")
	}
	if s.Generation() != 3 || s.Parity() != 1 {
		t.Errorf("generation/parity = %d/%d, want 3/1", s.Generation(), s.Parity())
	}
}

func TestStepperClockBackwards(t *testing.T) {
	clk := newClock()
	s := NewStepper(time.Second, clk.Now())

	s.Advance(clk.advance(900 * time.Millisecond))
	s.Advance(clk.advance(-5 * time.Second))
	if s.Pending() != 900*time.Millisecond {
		t.Errorf("Pending() = %v, want 900ms", s.Pending())
	}
	if _, flipped := s.Advance(clk.advance(100 * time.Millisecond)); !flipped {
		t.Error("expected flip once forward time reaches one period")
	}
}

func TestNewStepperDefaultPeriod(t *testing.T) {
	s := NewStepper(0, time.Time{})
	if s.Period() != DefaultPeriod {
		t.Errorf("Period() = %v, want %v", s.Period(), DefaultPeriod)
	}
}

func TestWallClock(t *testing.T) {
	before := time.Now()
	got := WallClock().Now()
	if got.Before(before) {
		t.Errorf("WallClock().Now() = %v, before %v", got, before)
	}
}
