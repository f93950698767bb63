//go:build !nogpu

// Package app drives the simulation from host events: it owns the step
// cadence, turns redraw ticks into recorded frames and applies the
// surface-acquire and verification policies.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/life"
	"github.com/gogpu/life/grid"
	"github.com/gogpu/life/internal/gpu"
	"github.com/gogpu/life/sim"
)

// ErrClosed is returned by Redraw after the loop has been asked to stop.
var ErrClosed = errors.New("app: closed")

// State is the orchestrator's position in the frame cycle.
type State int

// Orchestrator states.
const (
	Idle State = iota
	Rendering
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Rendering:
		return "Rendering"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Renderer is the GPU side of a frame.
type Renderer interface {
	Resize(w, h uint32) bool
	RecordFrame(view hal.TextureView, p sim.Parity) (gpu.FrameReport, error)
	ReadCells(b gpu.CellBuffer) ([]uint32, error)
}

// Orchestrator turns host events into frames. It is driven from the window
// thread and is not safe for concurrent use.
type Orchestrator struct {
	r       Renderer
	stepper *sim.Stepper
	side    int
	verify  bool

	state  State
	closed bool
	misses int

	// lastParity is the parity of the most recent recorded frame.
	lastParity sim.Parity
	recorded   bool

	frames     uint64
	verified   uint64
	mismatches uint64
}

// NewOrchestrator returns an orchestrator for a side×side grid whose
// cadence starts at the stepper's start time. With verify set, every
// parity flip is checked against grid.Step.
func NewOrchestrator(r Renderer, stepper *sim.Stepper, side int, verify bool) *Orchestrator {
	return &Orchestrator{r: r, stepper: stepper, side: side, verify: verify}
}

// State returns the current state.
func (o *Orchestrator) State() State { return o.state }

// Closed reports whether the loop has been asked to stop.
func (o *Orchestrator) Closed() bool { return o.closed }

// Resize forwards a new surface size. It runs before the next redraw.
func (o *Orchestrator) Resize(w, h uint32) {
	if !o.r.Resize(w, h) {
		life.Logger().Debug("app: ignoring resize", "width", w, "height", h)
	}
}

// Close marks the loop as finished. Later redraws return ErrClosed.
func (o *Orchestrator) Close() {
	if !o.closed {
		life.Logger().Info("app: close requested", "frames", o.frames, "generation", o.stepper.Generation())
	}
	o.closed = true
}

// HandleKey reacts to a key event and reports whether it closed the loop.
// Escape closes; every other key is ignored.
func (o *Orchestrator) HandleKey(k gpucontext.Key) bool {
	if k != gpucontext.KeyEscape {
		return false
	}
	o.Close()
	return true
}

// Redraw runs one update and render cycle at time now into view.
//
// A nil view means the host had no surface image. The first miss skips the
// frame and returns drawn=false with no error. A second consecutive miss
// returns an error wrapping gpu.ErrAcquireFailed. Skipped frames leave the
// cadence untouched: the elapsed time is counted by the next drawn frame, so
// parity never flips past a compute pass that did not run.
func (o *Orchestrator) Redraw(now time.Time, view hal.TextureView) (report gpu.FrameReport, drawn bool, err error) {
	if o.closed {
		return gpu.FrameReport{}, false, ErrClosed
	}
	o.state = Rendering
	defer func() { o.state = Idle }()

	if view == nil {
		o.misses++
		if o.misses >= 2 {
			return gpu.FrameReport{}, false, fmt.Errorf("%w: %d consecutive frames", gpu.ErrAcquireFailed, o.misses)
		}
		life.Logger().Warn("app: no surface image, skipping frame")
		return gpu.FrameReport{}, false, nil
	}
	o.misses = 0

	parity, flipped := o.stepper.Advance(now)
	if flipped {
		life.Logger().Debug("app: generation", "n", o.stepper.Generation(), "parity", parity)
		if o.verify && o.recorded && o.lastParity == parity.Flip() {
			if err := o.check(parity); err != nil {
				return gpu.FrameReport{}, false, err
			}
		}
	}

	report, err = o.r.RecordFrame(view, parity)
	if err != nil {
		return gpu.FrameReport{}, false, fmt.Errorf("record frame: %w", err)
	}
	o.lastParity, o.recorded = parity, true
	o.frames++
	return report, true, nil
}

// check reads both buffers after a flip to parity p and compares the new
// current buffer with one CPU step of the previous one.
func (o *Orchestrator) check(p sim.Parity) error {
	prev, err := o.r.ReadCells(gpu.CellBuffer(p.Destination()))
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	cur, err := o.r.ReadCells(gpu.CellBuffer(p.Source()))
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}

	want := make([]uint32, len(prev))
	grid.Step(prev, want, o.side)
	o.verified++

	diff := 0
	for i := range want {
		if i >= len(cur) || cur[i] != want[i] {
			diff++
		}
	}
	if diff > 0 || len(cur) != len(want) {
		o.mismatches++
		life.Logger().Warn("app: GPU generation differs from CPU step",
			"generation", o.stepper.Generation(),
			"cells", diff,
		)
	}
	return nil
}

// Frames returns how many frames have been recorded.
func (o *Orchestrator) Frames() uint64 { return o.frames }

// Verified returns how many flips were checked.
func (o *Orchestrator) Verified() uint64 { return o.verified }

// Mismatches returns how many checked flips disagreed with the CPU step.
func (o *Orchestrator) Mismatches() uint64 { return o.mismatches }

// Parity returns the parity of the next frame.
func (o *Orchestrator) Parity() sim.Parity { return o.stepper.Parity() }

// Generation returns the current generation count.
func (o *Orchestrator) Generation() uint64 { return o.stepper.Generation() }
