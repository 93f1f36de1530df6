package collision

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a rigid pose: rotation about the origin followed by a translation.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

func NewTransform(position mgl32.Vec3, rotation mgl32.Quat) Transform {
	return Transform{
		Position: position,
		Rotation: rotation,
	}
}

func (t Transform) ObjectToWorld() mgl32.Mat4 {
	// M = T * R
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()

	return translate.Mul4(rotate)
}

// WorldToObject inverts ObjectToWorld. ok is false when the matrix is singular,
// which only happens for a non-rotation quaternion.
func (t Transform) WorldToObject() (inv mgl32.Mat4, ok bool) {
	m := t.ObjectToWorld()
	if m.Det() == 0 {
		return mgl32.Mat4{}, false
	}
	return m.Inv(), true
}
