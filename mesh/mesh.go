// Package mesh defines the per-cell vertex lists drawn once per instance.
//
// Vertices are in cell-local units: (0,0) is one corner of a cell and (1,1)
// the opposite one. The vertex shader scales and offsets them by the cell's
// grid position.
package mesh

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// VertexStride is the byte size of one Vertex in the vertex buffer.
const VertexStride = 8

// Vertex is a 2D cell-local position.
type Vertex struct {
	Pos [2]float32
}

// Rect returns the default cell shape: two counter-clockwise triangles
// covering [0.1, 0.9]², leaving a gap between neighboring cells.
func Rect() []Vertex {
	return []Vertex{
		{Pos: [2]float32{0.1, 0.1}},
		{Pos: [2]float32{0.9, 0.1}},
		{Pos: [2]float32{0.1, 0.9}},
		{Pos: [2]float32{0.9, 0.1}},
		{Pos: [2]float32{0.9, 0.9}},
		{Pos: [2]float32{0.1, 0.9}},
	}
}

// Triangle returns an alternative single-triangle cell shape.
func Triangle() []Vertex {
	return []Vertex{
		{Pos: [2]float32{0.1, 0.1}},
		{Pos: [2]float32{0.9, 0.1}},
		{Pos: [2]float32{0.5, 0.9}},
	}
}

// Bytes packs vertices as consecutive little-endian float32 pairs.
func Bytes(vs []Vertex) []byte {
	out := make([]byte, len(vs)*VertexStride)
	for i, v := range vs {
		binary.LittleEndian.PutUint32(out[i*VertexStride:], math.Float32bits(v.Pos[0]))
		binary.LittleEndian.PutUint32(out[i*VertexStride+4:], math.Float32bits(v.Pos[1]))
	}
	return out
}

// Layout returns the vertex buffer layout matching Bytes: one Float32x2
// attribute at shader location 0, advanced per vertex.
func Layout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			},
		},
	}
}

// Winding returns twice the signed area of the triangle at index i
// (vertices 3i..3i+2). Positive means counter-clockwise.
func Winding(vs []Vertex, i int) float32 {
	a, b, c := vs[3*i].Pos, vs[3*i+1].Pos, vs[3*i+2].Pos
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}
