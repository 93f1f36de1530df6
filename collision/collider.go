package collision

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrInvalidRadius  = errors.New("collision: radius must be positive")
	ErrInvalidExtents = errors.New("collision: half extents must be positive")
	ErrNoVertices     = errors.New("collision: polyhedron needs at least one vertex")
)

// Collider is a convex shape that GJK can query through its support mapping.
// Implementations outside this package only need the three methods below.
type Collider interface {
	// Update moves the shape to a new world pose.
	Update(position mgl32.Vec3, rotation mgl32.Quat)
	// Center returns the current world-space center.
	Center() mgl32.Vec3
	// FurthestPoint returns the boundary point with the largest projection onto direction.
	FurthestPoint(direction mgl32.Vec3) mgl32.Vec3
}

var (
	_ Collider = (*Sphere)(nil)
	_ Collider = (*ConvexPolyhedron)(nil)
)

// normalizeOrZero is Normalize with the zero vector mapped to itself instead of NaN.
func normalizeOrZero(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	return v.Mul(1.0 / l)
}

func sameDirection(a, b mgl32.Vec3) bool {
	return a.Dot(b) > 0
}
