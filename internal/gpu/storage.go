//go:build !nogpu

package gpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/life/grid"
	"github.com/gogpu/life/sim"
)

// CellBuffer identifies one of the two cell storage buffers.
type CellBuffer int

// Cell buffer identities.
const (
	NoBuffer CellBuffer = -1
	BufferA  CellBuffer = 0
	BufferB  CellBuffer = 1
)

// String returns "A", "B" or "none".
func (b CellBuffer) String() string {
	switch b {
	case BufferA:
		return "A"
	case BufferB:
		return "B"
	case NoBuffer:
		return "none"
	default:
		return fmt.Sprintf("CellBuffer(%d)", int(b))
	}
}

// BindingSet is a bind group together with the cell buffers it refers to.
// Render sets have no destination.
type BindingSet struct {
	Group       hal.BindGroup
	Source      CellBuffer
	Destination CellBuffer
}

type setKind int

const (
	renderSet setKind = iota
	computeSet
)

// Storage owns the two cell buffers and the four binding sets over them:
// for each parity P a render set reading buffer P and a compute set reading
// buffer P and writing buffer 1-P. Sets are built once and never rebuilt.
type Storage struct {
	device hal.Device
	queue  hal.Queue

	side    int
	size    uint64
	buffers [2]hal.Buffer

	render  [2]BindingSet
	compute [2]BindingSet
}

// NewStorage uploads g into both cell buffers and builds the binding sets
// against the grid and compute layouts.
func NewStorage(device hal.Device, queue hal.Queue, layouts *Layouts, u *Uniforms, g *grid.Grid) (*Storage, error) {
	if g.Len() == 0 {
		return nil, ErrEmptyGrid
	}
	s := &Storage{device: device, queue: queue, side: g.Side(), size: g.SizeBytes()}

	data := g.Bytes()
	usage := gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst | gputypes.BufferUsageCopySrc
	for i, label := range [2]string{"life_cells_a", "life_cells_b"} {
		buf, err := createAndUploadBuffer(device, queue, label, data, usage)
		if err != nil {
			s.Destroy()
			return nil, err
		}
		s.buffers[i] = buf
	}

	for p := range 2 {
		src, dst := CellBuffer(p), CellBuffer(1-p)
		var err error
		if s.render[p], err = s.buildSet(renderSet, layouts.Grid, u, src, NoBuffer); err != nil {
			s.Destroy()
			return nil, err
		}
		if s.compute[p], err = s.buildSet(computeSet, layouts.Compute, u, src, dst); err != nil {
			s.Destroy()
			return nil, err
		}
	}

	slogger().Debug("gpu: cell storage ready",
		"side", s.side,
		"bytes_per_buffer", s.size,
	)
	return s, nil
}

// buildSet creates one binding set. Every set goes through here so the
// aliasing check cannot be skipped.
func (s *Storage) buildSet(kind setKind, layout hal.BindGroupLayout, u *Uniforms, src, dst CellBuffer) (BindingSet, error) {
	gridSize := gputypes.BufferBinding{Buffer: u.gridSize.NativeHandle(), Offset: 0, Size: vec2Bytes}
	srcBinding := gputypes.BufferBinding{Buffer: s.buffers[src].NativeHandle(), Offset: 0, Size: s.size}

	var desc hal.BindGroupDescriptor
	switch kind {
	case renderSet:
		desc = hal.BindGroupDescriptor{
			Label:  "life_render_set_" + src.String(),
			Layout: layout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: bindingGridSize, Resource: gridSize},
				{Binding: bindingPixelSize, Resource: gputypes.BufferBinding{Buffer: u.pixelSize.NativeHandle(), Offset: 0, Size: vec2Bytes}},
				{Binding: bindingCells, Resource: srcBinding},
			},
		}
	case computeSet:
		if src == dst {
			return BindingSet{}, fmt.Errorf("%w: %s", ErrAliasedBindings, src)
		}
		desc = hal.BindGroupDescriptor{
			Label:  "life_compute_set_" + src.String() + dst.String(),
			Layout: layout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: bindingComputeGridSize, Resource: gridSize},
				{Binding: bindingComputeSrc, Resource: srcBinding},
				{Binding: bindingComputeDst, Resource: gputypes.BufferBinding{Buffer: s.buffers[dst].NativeHandle(), Offset: 0, Size: s.size}},
			},
		}
	}

	bg, err := s.device.CreateBindGroup(&desc)
	if err != nil {
		return BindingSet{}, fmt.Errorf("create %s: %w", desc.Label, err)
	}
	return BindingSet{Group: bg, Source: src, Destination: dst}, nil
}

// Select returns the render and compute sets for parity p. It only indexes
// prebuilt sets.
func (s *Storage) Select(p sim.Parity) (render, compute BindingSet) {
	i := p.Source()
	return s.render[i], s.compute[i]
}

// Side returns the grid edge length.
func (s *Storage) Side() int { return s.side }

// Instances returns the number of cells, one draw instance each.
func (s *Storage) Instances() uint32 {
	return uint32(s.side * s.side) //nolint:gosec // grid side is small
}

// ReadCells copies buffer b to the CPU. It waits for all previously
// submitted work, so it is for verification and tests, not the frame loop.
func (s *Storage) ReadCells(b CellBuffer) ([]uint32, error) {
	if b != BufferA && b != BufferB {
		return nil, fmt.Errorf("%w: unknown buffer %s", ErrReadback, b)
	}

	staging, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "life_cells_staging",
		Size:  s.size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create staging buffer: %w", ErrReadback, err)
	}
	defer s.device.DestroyBuffer(staging)

	encoder, err := s.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "life_readback_encoder"})
	if err != nil {
		return nil, fmt.Errorf("%w: create command encoder: %w", ErrReadback, err)
	}
	if err := encoder.BeginEncoding("life_readback"); err != nil {
		return nil, fmt.Errorf("%w: begin encoding: %w", ErrReadback, err)
	}
	encoder.CopyBufferToBuffer(s.buffers[b], staging, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: s.size},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("%w: end encoding: %w", ErrReadback, err)
	}
	defer s.device.FreeCommandBuffer(cmdBuf)

	fence, err := s.device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("%w: create fence: %w", ErrReadback, err)
	}
	defer s.device.DestroyFence(fence)
	if err := s.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("%w: submit: %w", ErrReadback, err)
	}
	if err := fenceResult(s.device.Wait(fence, 1, 5*time.Second)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadback, err)
	}

	raw := make([]byte, s.size)
	if err := s.queue.ReadBuffer(staging, 0, raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadback, err)
	}
	return grid.Decode(raw)
}

// Destroy releases the binding sets and cell buffers.
func (s *Storage) Destroy() {
	for i := range 2 {
		for _, set := range []*BindingSet{&s.render[i], &s.compute[i]} {
			if set.Group != nil {
				s.device.DestroyBindGroup(set.Group)
				set.Group = nil
			}
		}
	}
	for i := range s.buffers {
		if s.buffers[i] != nil {
			s.device.DestroyBuffer(s.buffers[i])
			s.buffers[i] = nil
		}
	}
}
