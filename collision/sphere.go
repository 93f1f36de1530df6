package collision

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type Sphere struct {
	center mgl32.Vec3
	radius float32
}

func NewSphere(center mgl32.Vec3, radius float32) (*Sphere, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("sphere radius %v: %w", radius, ErrInvalidRadius)
	}
	return &Sphere{center: center, radius: radius}, nil
}

func (s *Sphere) Radius() float32 {
	return s.radius
}

// Update recenters the sphere. Rotation has no effect on a sphere.
func (s *Sphere) Update(position mgl32.Vec3, _ mgl32.Quat) {
	s.center = position
}

func (s *Sphere) Center() mgl32.Vec3 {
	return s.center
}

func (s *Sphere) FurthestPoint(direction mgl32.Vec3) mgl32.Vec3 {
	return s.center.Add(normalizeOrZero(direction).Mul(s.radius))
}
