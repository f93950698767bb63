package transform

import "github.com/go-gl/mathgl/mgl32"

// Transform is a translation, rotation and scale applied in TRS order.
// The cell renderer does not use one yet; it is the hook for per-instance
// or whole-grid model matrices.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// Identity returns a transform that leaves points unchanged.
func Identity() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Raw returns the model matrix T*R*S.
func (t Transform) Raw() mgl32.Mat4 {
	tr := mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z())
	sc := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return tr.Mul4(t.Rotation.Normalize().Mat4()).Mul4(sc)
}

// RawIT returns the model matrix and its inverse transpose, the matrix that
// carries normals through a non-uniform scale. A degenerate scale yields a
// zero normal matrix.
func (t Transform) RawIT() (model, normal mgl32.Mat4) {
	model = t.Raw()
	return model, model.Inv().Transpose()
}

// Bytes packs the model matrix followed by its inverse transpose, the layout
// of a two-matrix instance uniform.
func (t Transform) Bytes() []byte {
	model, normal := t.RawIT()
	return append(Bytes(model), Bytes(normal)...)
}
