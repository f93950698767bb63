//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/life/transform"
)

const vec2Bytes = 8

// Uniforms holds the projection matrix and the two grid constants.
//
// The projection changes on every resize; the grid size and pixel size are
// written once.
type Uniforms struct {
	device hal.Device
	queue  hal.Queue

	projection hal.Buffer
	gridSize   hal.Buffer
	pixelSize  hal.Buffer

	// projectionGroup binds the projection at render group 0.
	projectionGroup hal.BindGroup

	current mgl32.Mat4
}

// createAndUploadBuffer creates a GPU buffer sized to data and uploads it.
func createAndUploadBuffer(device hal.Device, queue hal.Queue, label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// NewUniforms creates the uniform buffers with the initial projection and
// binds the projection against layouts.Projection.
func NewUniforms(device hal.Device, queue hal.Queue, layouts *Layouts, side int, pixelSize uint32) (*Uniforms, error) {
	u := &Uniforms{device: device, queue: queue, current: transform.Initial()}
	usage := gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst

	var err error
	u.projection, err = createAndUploadBuffer(device, queue, "life_projection", transform.Bytes(u.current), usage)
	if err != nil {
		return nil, err
	}
	u.gridSize, err = createAndUploadBuffer(device, queue, "life_grid_size",
		transform.Vec2Bytes(float32(side), float32(side)), usage)
	if err != nil {
		u.Destroy()
		return nil, err
	}
	u.pixelSize, err = createAndUploadBuffer(device, queue, "life_pixel_size",
		transform.Vec2Bytes(float32(pixelSize), float32(pixelSize)), usage)
	if err != nil {
		u.Destroy()
		return nil, err
	}

	u.projectionGroup, err = device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "life_projection_group",
		Layout: layouts.Projection,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: u.projection.NativeHandle(), Offset: 0, Size: transform.MatrixBytes}},
		},
	})
	if err != nil {
		u.Destroy()
		return nil, fmt.Errorf("create projection group: %w", err)
	}
	return u, nil
}

// SetProjection uploads m immediately. It is visible to the next
// submitted frame.
func (u *Uniforms) SetProjection(m mgl32.Mat4) {
	u.current = m
	u.queue.WriteBuffer(u.projection, 0, transform.Bytes(m))
}

// Projection returns the last uploaded projection.
func (u *Uniforms) Projection() mgl32.Mat4 { return u.current }

// Destroy releases the buffers and the projection group.
func (u *Uniforms) Destroy() {
	if u.projectionGroup != nil {
		u.device.DestroyBindGroup(u.projectionGroup)
		u.projectionGroup = nil
	}
	for _, b := range []*hal.Buffer{&u.projection, &u.gridSize, &u.pixelSize} {
		if *b != nil {
			u.device.DestroyBuffer(*b)
			*b = nil
		}
	}
}
