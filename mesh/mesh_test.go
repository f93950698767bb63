package mesh

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestShapes(t *testing.T) {
	tests := []struct {
		name  string
		verts []Vertex
		count int
	}{
		{"rect", Rect(), 6},
		{"triangle", Triangle(), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.verts) != tt.count {
				t.Fatalf("len = %d, want %d", len(tt.verts), tt.count)
			}
			for i, v := range tt.verts {
				for _, c := range v.Pos {
					if c < 0.1 || c > 0.9 {
						t.Errorf("vertex %d coordinate %v outside [0.1, 0.9]", i, c)
					}
				}
			}
			// Back faces are culled, so every triangle must wind CCW.
			for tri := 0; tri < len(tt.verts)/3; tri++ {
				if w := Winding(tt.verts, tri); w <= 0 {
					t.Errorf("triangle %d winding = %v, want > 0", tri, w)
				}
			}
		})
	}
}

func TestBytes(t *testing.T) {
	vs := Rect()
	b := Bytes(vs)
	if len(b) != len(vs)*VertexStride {
		t.Fatalf("len = %d, want %d", len(b), len(vs)*VertexStride)
	}
	x := math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
	y := math.Float32frombits(binary.LittleEndian.Uint32(b[12:]))
	if x != 0.9 || y != 0.1 {
		t.Errorf("vertex 1 = (%v, %v), want (0.9, 0.1)", x, y)
	}
}

func TestLayout(t *testing.T) {
	l := Layout()
	if len(l) != 1 {
		t.Fatalf("len(Layout()) = %d, want 1", len(l))
	}
	if l[0].ArrayStride != VertexStride {
		t.Errorf("ArrayStride = %d, want %d", l[0].ArrayStride, VertexStride)
	}
	if l[0].StepMode != gputypes.VertexStepModeVertex {
		t.Error("StepMode should advance per vertex")
	}
	if len(l[0].Attributes) != 1 || l[0].Attributes[0].Format != gputypes.VertexFormatFloat32x2 {
		t.Errorf("Attributes = %+v, want one Float32x2", l[0].Attributes)
	}
}
