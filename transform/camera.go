package transform

import "github.com/go-gl/mathgl/mgl32"

// Camera is a position with a viewing direction and an up vector.
type Camera struct {
	Pos   mgl32.Vec3
	Front mgl32.Vec3
	Up    mgl32.Vec3
}

// DefaultCamera looks down -Z from z=1 with +Y up, which leaves the
// orthographic cell view unchanged apart from the depth offset.
func DefaultCamera() Camera {
	return Camera{
		Pos:   mgl32.Vec3{0, 0, 1},
		Front: mgl32.Vec3{0, 0, -1},
		Up:    mgl32.Vec3{0, 1, 0},
	}
}

// View returns the right-handed look-at matrix for the camera.
func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Pos, c.Pos.Add(c.Front), c.Up)
}
