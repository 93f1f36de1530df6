package collision

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// simplex holds up to four Minkowski-difference points. points[0] is always the
// most recently added one.
type simplex struct {
	points [4]mgl32.Vec3
	n      int
}

func (s *simplex) push(p mgl32.Vec3) {
	copy(s.points[1:], s.points[:3])
	s.points[0] = p
	if s.n < len(s.points) {
		s.n++
	}
}

func (s *simplex) set(points ...mgl32.Vec3) {
	s.n = copy(s.points[:], points)
}

// evolve reduces the simplex to the feature nearest the origin and points dir
// at the origin from it. It reports true once the origin is enclosed.
func (s *simplex) evolve(dir *mgl32.Vec3) bool {
	*dir = normalizeOrZero(*dir)

	switch s.n {
	case 2:
		return s.line(dir)
	case 3:
		return s.triangle(dir)
	case 4:
		return s.tetrahedron(dir)
	default:
		panic(fmt.Sprintf("collision: invalid simplex length %d", s.n))
	}
}

// touchTolerance bounds the squared sine between the kept feature and the
// origin below which the origin counts as lying on it.
const touchTolerance = 1e-8

// steer normalizes the new search direction. A direction that vanishes relative
// to scale means the origin sits on the kept feature, which counts as touching.
func (s *simplex) steer(dir *mgl32.Vec3, scale float32) bool {
	if dir.LenSqr() <= touchTolerance*scale {
		return true
	}
	*dir = normalizeOrZero(*dir)
	return false
}

func (s *simplex) line(dir *mgl32.Vec3) bool {
	a, b := s.points[0], s.points[1]

	ab := b.Sub(a)
	ao := a.Mul(-1)

	if sameDirection(ab, ao) {
		*dir = ab.Cross(ao).Cross(ab)
		return s.steer(dir, ab.LenSqr()*ab.LenSqr()*ao.LenSqr())
	}

	s.set(a)
	*dir = ao
	return s.steer(dir, 0)
}

func (s *simplex) triangle(dir *mgl32.Vec3) bool {
	a, b, c := s.points[0], s.points[1], s.points[2]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Mul(-1)

	abc := ab.Cross(ac)

	if sameDirection(abc.Cross(ac), ao) {
		if sameDirection(ac, ao) {
			s.set(a, c)
			*dir = ac.Cross(ao).Cross(ac)
			return s.steer(dir, ac.LenSqr()*ac.LenSqr()*ao.LenSqr())
		}
		s.set(a, b)
		return s.line(dir)
	}

	if sameDirection(ab.Cross(abc), ao) {
		s.set(a, b)
		return s.line(dir)
	}

	// Origin in the triangle's plane and inside its edges.
	if abc.Dot(ao) == 0 {
		return true
	}

	if sameDirection(abc, ao) {
		*dir = abc
	} else {
		s.set(a, c, b)
		*dir = abc.Mul(-1)
	}

	return s.steer(dir, ab.LenSqr()*ac.LenSqr())
}

func (s *simplex) tetrahedron(dir *mgl32.Vec3) bool {
	a, b, c, d := s.points[0], s.points[1], s.points[2], s.points[3]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ad := d.Sub(a)
	ao := a.Mul(-1)

	abc := ab.Cross(ac)
	acd := ac.Cross(ad)
	adb := ad.Cross(ab)

	if sameDirection(abc, ao) {
		s.set(a, b, c)
		return s.triangle(dir)
	}
	if sameDirection(acd, ao) {
		s.set(a, c, d)
		return s.triangle(dir)
	}
	if sameDirection(adb, ao) {
		s.set(a, d, b)
		return s.triangle(dir)
	}

	return true
}
