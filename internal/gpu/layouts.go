//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Bind group slots.
const (
	// Render pipeline: group 0 holds the projection, group 1 the grid.
	groupProjection = 0
	groupGrid       = 1

	// Compute pipeline: group 0 holds the grid size and both cell buffers.
	groupCompute = 0
)

// Bindings inside the grid and compute groups.
const (
	bindingGridSize  = 0
	bindingPixelSize = 1
	bindingCells     = 2

	bindingComputeGridSize = 0
	bindingComputeSrc      = 1
	bindingComputeDst      = 2
)

// Layouts holds the three bind group layouts shared by the pipelines and
// the binding sets.
type Layouts struct {
	Projection hal.BindGroupLayout
	Grid       hal.BindGroupLayout
	Compute    hal.BindGroupLayout
}

// NewLayouts creates the projection, grid and compute bind group layouts.
func NewLayouts(device hal.Device) (*Layouts, error) {
	l := &Layouts{}

	var err error
	l.Projection, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "life_projection_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageVertex, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create projection layout: %w", err)
	}

	l.Grid, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "life_grid_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: bindingGridSize, Visibility: gputypes.ShaderStageVertex, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: bindingPixelSize, Visibility: gputypes.ShaderStageVertex, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: bindingCells, Visibility: gputypes.ShaderStageVertex, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
		},
	})
	if err != nil {
		l.Destroy(device)
		return nil, fmt.Errorf("create grid layout: %w", err)
	}

	l.Compute, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "life_compute_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: bindingComputeGridSize, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: bindingComputeSrc, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: bindingComputeDst, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		l.Destroy(device)
		return nil, fmt.Errorf("create compute layout: %w", err)
	}

	return l, nil
}

// Destroy releases the layouts. Safe on a partially built value.
func (l *Layouts) Destroy(device hal.Device) {
	for _, bgl := range []*hal.BindGroupLayout{&l.Projection, &l.Grid, &l.Compute} {
		if *bgl != nil {
			device.DestroyBindGroupLayout(*bgl)
			*bgl = nil
		}
	}
}
