// Package collision implements narrow-phase intersection tests between convex
// shapes using the Gilbert-Johnson-Keerthi algorithm.
//
// GJK only needs each shape's support mapping (Collider.FurthestPoint), so any
// pair of convex shapes can be tested against each other. Two shapes intersect
// iff their Minkowski difference contains the origin; the algorithm grows a
// simplex inside that difference until it either encloses the origin or finds
// a direction along which the origin cannot be reached.
package collision

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultMaxIterations bounds the refinement loop. Well-conditioned pairs resolve
// in a handful of iterations; the cap only stops numerical cycling.
const DefaultMaxIterations = 100

// Logger is the subset of the engine logger the detector writes to.
type Logger interface {
	Debugf(format string, args ...any)
}

type Result struct {
	Hit        bool
	Iterations int
	// Exhausted is set when the iteration cap ran out. Hit is then false.
	Exhausted bool
}

type Detector struct {
	MaxIterations int
	Logger        Logger
}

func NewDetector(maxIterations int, logger Logger) *Detector {
	return &Detector{
		MaxIterations: maxIterations,
		Logger:        logger,
	}
}

var defaultDetector = &Detector{MaxIterations: DefaultMaxIterations}

// fallbackDirection seeds the search when both centers coincide.
var fallbackDirection = mgl32.Vec3{1, 0, 0}

// Collision reports whether a and b intersect, using the default iteration cap.
// Touching shapes may report either result depending on which feature the
// search lands on first.
func Collision(a, b Collider) bool {
	return defaultDetector.Intersect(a, b).Hit
}

func (d *Detector) Collision(a, b Collider) bool {
	return d.Intersect(a, b).Hit
}

// MinkowskiSupport returns the support point of the Minkowski difference a - b.
func MinkowskiSupport(a, b Collider, direction mgl32.Vec3) mgl32.Vec3 {
	return a.FurthestPoint(direction).Sub(b.FurthestPoint(direction.Mul(-1)))
}

func (d *Detector) Intersect(a, b Collider) Result {
	maxIterations := d.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	var s simplex

	direction := normalizeOrZero(b.Center().Sub(a.Center()))
	if direction == (mgl32.Vec3{}) {
		direction = fallbackDirection
	}
	first := MinkowskiSupport(a, b, direction)
	s.push(first)
	direction = normalizeOrZero(first.Mul(-1))

	for i := 1; i <= maxIterations; i++ {
		point := MinkowskiSupport(a, b, direction)

		// The new point did not pass the origin: direction separates the shapes.
		if point.Dot(direction) <= 0 {
			return Result{Iterations: i}
		}

		s.push(point)

		if s.evolve(&direction) {
			return Result{Hit: true, Iterations: i}
		}
	}

	if d.Logger != nil {
		d.Logger.Debugf("gjk: no resolution after %d iterations (centers %v, %v), reporting no collision",
			maxIterations, a.Center(), b.Center())
	}
	return Result{Iterations: maxIterations, Exhausted: true}
}
