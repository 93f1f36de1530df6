package collision

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ConvexPolyhedron is the convex hull of a fixed vertex set. Vertices are stored
// relative to their centroid and never change; only the world transform moves.
type ConvexPolyhedron struct {
	local   []mgl32.Vec3
	center  mgl32.Vec3
	toWorld mgl32.Mat4
	toLocal mgl32.Mat4
}

// NewConvexPolyhedron builds a polyhedron from world-space vertices. The shape starts
// centered on the vertices' centroid with no rotation, so it occupies the same space
// as the input until the first Update.
func NewConvexPolyhedron(vertices []mgl32.Vec3) (*ConvexPolyhedron, error) {
	if len(vertices) == 0 {
		return nil, ErrNoVertices
	}

	var centroid mgl32.Vec3
	for _, v := range vertices {
		centroid = centroid.Add(v)
	}
	centroid = centroid.Mul(1.0 / float32(len(vertices)))

	local := make([]mgl32.Vec3, len(vertices))
	for i, v := range vertices {
		local[i] = v.Sub(centroid)
	}

	p := &ConvexPolyhedron{local: local}
	p.Update(centroid, mgl32.QuatIdent())
	return p, nil
}

// NewBox returns an axis-aligned box polyhedron with the given center and half extents.
func NewBox(center, halfExtents mgl32.Vec3) (*ConvexPolyhedron, error) {
	if !(halfExtents.X() > 0 && halfExtents.Y() > 0 && halfExtents.Z() > 0) {
		return nil, fmt.Errorf("box half extents %v: %w", halfExtents, ErrInvalidExtents)
	}

	hx, hy, hz := halfExtents.X(), halfExtents.Y(), halfExtents.Z()
	corners := make([]mgl32.Vec3, 0, 8)
	for _, sx := range []float32{-1, 1} {
		for _, sy := range []float32{-1, 1} {
			for _, sz := range []float32{-1, 1} {
				corners = append(corners, center.Add(mgl32.Vec3{sx * hx, sy * hy, sz * hz}))
			}
		}
	}
	return NewConvexPolyhedron(corners)
}

// LocalVertices returns a copy of the centroid-relative vertex set.
func (p *ConvexPolyhedron) LocalVertices() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(p.local))
	copy(out, p.local)
	return out
}

// WorldVertices returns the vertices under the current world transform.
func (p *ConvexPolyhedron) WorldVertices() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(p.local))
	for i, v := range p.local {
		out[i] = p.toWorld.Mul4x1(v.Vec4(1)).Vec3()
	}
	return out
}

func (p *ConvexPolyhedron) Update(position mgl32.Vec3, rotation mgl32.Quat) {
	tr := NewTransform(position, rotation)
	inv, ok := tr.WorldToObject()
	if !ok {
		panic(fmt.Sprintf("collision: polyhedron transform is not invertible (position %v, rotation %v)", position, rotation))
	}

	p.center = position
	p.toWorld = tr.ObjectToWorld()
	p.toLocal = inv
}

func (p *ConvexPolyhedron) Center() mgl32.Vec3 {
	return p.center
}

func (p *ConvexPolyhedron) FurthestPoint(direction mgl32.Vec3) mgl32.Vec3 {
	// w = 0: directions ignore translation
	d := p.toLocal.Mul4x1(direction.Vec4(0)).Vec3()

	best := 0
	bestDot := p.local[0].Dot(d)
	for i := 1; i < len(p.local); i++ {
		if dot := p.local[i].Dot(d); dot > bestDot {
			best = i
			bestDot = dot
		}
	}

	return p.toWorld.Mul4x1(p.local[best].Vec4(1)).Vec3()
}
