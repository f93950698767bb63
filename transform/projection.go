// Package transform provides the matrices the cell renderer feeds to its
// vertex shader.
//
// All matrices are [mgl32.Mat4] values, column-major like WGSL mat4x4<f32>,
// and target a clip space with depth in [0, 1].
package transform

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MatrixBytes is the size of one packed 4×4 float32 matrix.
const MatrixBytes = 64

// Near and far planes of the cell projection. Cells are drawn at z=0, which
// lands in the middle of the depth range.
const (
	Near float32 = 1
	Far  float32 = -1
)

// OrthoRH returns a right-handed orthographic projection. x in [left, right]
// and y in [bottom, top] map to [-1, 1]; the view looks down -Z, so z=-near
// maps to depth 0 and z=-far to depth 1.
func OrthoRH(left, right, bottom, top, near, far float32) mgl32.Mat4 {
	rw := 1 / (right - left)
	rh := 1 / (top - bottom)
	r := 1 / (near - far)
	return mgl32.Mat4{
		2 * rw, 0, 0, 0,
		0, 2 * rh, 0, 0,
		0, 0, r, 0,
		-(left + right) * rw, -(top + bottom) * rh, r * near, 1,
	}
}

// Initial returns the projection used before the first resize: the unit box
// maps onto itself in x and y.
func Initial() mgl32.Mat4 {
	return OrthoRH(-1, 1, -1, 1, Near, Far)
}

// Viewport returns the projection for a window of w×h pixels, centered on
// the origin so that (-w/2, -h/2) lands on (-1, -1) and (w/2, h/2) on (1, 1).
func Viewport(w, h uint32) mgl32.Mat4 {
	hw, hh := float32(w)/2, float32(h)/2
	return OrthoRH(-hw, hw, -hh, hh, Near, Far)
}

// Bytes packs m column by column as little-endian float32 values.
func Bytes(m mgl32.Mat4) []byte {
	out := make([]byte, MatrixBytes)
	for i, v := range m {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

// Vec2Bytes packs a vec2<f32> uniform.
func Vec2Bytes(x, y float32) []byte {
	out := make([]byte, 8)
	binary.LittleEndian.PutUint32(out, math.Float32bits(x))
	binary.LittleEndian.PutUint32(out[4:], math.Float32bits(y))
	return out
}
