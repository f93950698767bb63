//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/life/mesh"
)

// Geometry is the vertex buffer holding one cell's mesh.
type Geometry struct {
	device hal.Device
	queue  hal.Queue
	buf    hal.Buffer
	count  uint32
}

// NewGeometry uploads vs into a new vertex buffer.
func NewGeometry(device hal.Device, queue hal.Queue, vs []mesh.Vertex) (*Geometry, error) {
	g := &Geometry{device: device, queue: queue}
	if err := g.SetMesh(vs); err != nil {
		return nil, err
	}
	return g, nil
}

// SetMesh replaces the vertex buffer with one holding vs. The old buffer is
// released only after the new one exists, so a failure leaves the previous
// mesh in place.
func (g *Geometry) SetMesh(vs []mesh.Vertex) error {
	if len(vs) == 0 {
		return ErrEmptyMesh
	}
	buf, err := createAndUploadBuffer(g.device, g.queue, "life_vertices", mesh.Bytes(vs),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("set mesh: %w", err)
	}
	if g.buf != nil {
		g.device.DestroyBuffer(g.buf)
	}
	g.buf = buf
	g.count = uint32(len(vs)) //nolint:gosec // meshes are a handful of vertices
	return nil
}

// Buffer returns the vertex buffer.
func (g *Geometry) Buffer() hal.Buffer { return g.buf }

// VertexCount returns the number of vertices per instance.
func (g *Geometry) VertexCount() uint32 { return g.count }

// Destroy releases the vertex buffer.
func (g *Geometry) Destroy() {
	if g.buf != nil {
		g.device.DestroyBuffer(g.buf)
		g.buf = nil
	}
	g.count = 0
}
