package gekko

import (
	"errors"
	"fmt"

	"github.com/gekko3d/gekko-physics/collision"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultGroundLevel is the lowest Y a body can reach.
const DefaultGroundLevel float32 = -1.0

var DefaultGravity = mgl32.Vec3{0, -9.81, 0}

var ErrInvalidMass = errors.New("physics: mass must be positive")

// PhysicalObject is a point-mass rigid body that owns exactly one collider and
// keeps it posed to match the body.
//
// Two quirks are intentional: ApplyForce replaces the stored force instead of
// adding to it, and the ground clamp leaves velocity untouched, so a resting
// body keeps accumulating downward velocity while its position stays pinned.
type PhysicalObject struct {
	position mgl32.Vec3
	rotation mgl32.Quat
	velocity mgl32.Vec3
	force    mgl32.Vec3
	mass     float32

	gravity     mgl32.Vec3
	groundLevel float32

	hasGravity   bool
	hasCollision bool

	collider collision.Collider
	detector *collision.Detector
}

// NewPhysicalObject creates a body at rest with gravity and collision disabled.
// The collider is moved to the body's pose immediately.
func NewPhysicalObject(position mgl32.Vec3, rotation mgl32.Quat, mass float32, collider collision.Collider) (*PhysicalObject, error) {
	if !(mass > 0) {
		return nil, fmt.Errorf("physical object mass %v: %w", mass, ErrInvalidMass)
	}
	if collider == nil {
		return nil, errors.New("physics: object needs a collider")
	}

	obj := &PhysicalObject{
		position:    position,
		rotation:    rotation,
		mass:        mass,
		gravity:     DefaultGravity,
		groundLevel: DefaultGroundLevel,
		collider:    collider,
	}
	obj.collider.Update(obj.position, obj.rotation)
	return obj, nil
}

// Update advances the body by dt seconds with semi-implicit Euler and re-poses
// the collider.
func (o *PhysicalObject) Update(dt float32) {
	force := o.force
	if o.hasGravity {
		force = force.Add(o.gravity.Mul(o.mass))
	}

	o.velocity = o.velocity.Add(force.Mul(1.0 / o.mass).Mul(dt))
	o.position = o.position.Add(o.velocity.Mul(dt))

	if o.position[1] < o.groundLevel {
		o.position[1] = o.groundLevel
	}

	o.collider.Update(o.position, o.rotation)
}

// ApplyForce sets the force used by the following updates. It overwrites any
// previous force; callers wanting a sustained push reapply it every tick.
func (o *PhysicalObject) ApplyForce(force mgl32.Vec3) {
	o.force = force
}

// Collide reports whether both bodies take part in collisions and their
// colliders intersect.
func (o *PhysicalObject) Collide(other *PhysicalObject) bool {
	if !o.hasCollision || !other.hasCollision {
		return false
	}
	if o.detector != nil {
		return o.detector.Collision(o.collider, other.collider)
	}
	return collision.Collision(o.collider, other.collider)
}

func (o *PhysicalObject) EnableGravity()  { o.hasGravity = true }
func (o *PhysicalObject) DisableGravity() { o.hasGravity = false }

func (o *PhysicalObject) EnableCollision()  { o.hasCollision = true }
func (o *PhysicalObject) DisableCollision() { o.hasCollision = false }

func (o *PhysicalObject) GravityEnabled() bool   { return o.hasGravity }
func (o *PhysicalObject) CollisionEnabled() bool { return o.hasCollision }

func (o *PhysicalObject) Position() mgl32.Vec3 { return o.position }
func (o *PhysicalObject) Rotation() mgl32.Quat { return o.rotation }
func (o *PhysicalObject) Velocity() mgl32.Vec3 { return o.velocity }
func (o *PhysicalObject) Force() mgl32.Vec3    { return o.force }
func (o *PhysicalObject) Mass() float32        { return o.mass }

func (o *PhysicalObject) Collider() collision.Collider { return o.collider }

func (o *PhysicalObject) SetVelocity(velocity mgl32.Vec3) {
	o.velocity = velocity
}

// SetRotation orients the body and its collider.
func (o *PhysicalObject) SetRotation(rotation mgl32.Quat) {
	o.rotation = rotation
	o.collider.Update(o.position, o.rotation)
}

// SetGravity overrides the gravity vector, mostly for tests and custom worlds.
func (o *PhysicalObject) SetGravity(gravity mgl32.Vec3) {
	o.gravity = gravity
}

func (o *PhysicalObject) SetGroundLevel(y float32) {
	o.groundLevel = y
}

// SetDetector swaps the GJK detector used by Collide. nil restores the default.
func (o *PhysicalObject) SetDetector(detector *collision.Detector) {
	o.detector = detector
}

// RenderTransform is the T*R matrix a renderer needs to draw the body.
func (o *PhysicalObject) RenderTransform() mgl32.Mat4 {
	return collision.NewTransform(o.position, o.rotation).ObjectToWorld()
}
