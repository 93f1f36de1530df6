package gekko

import (
	"errors"
	"fmt"
	"os"

	"github.com/gekko3d/gekko-physics/collision"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

var ErrUnknownShape = errors.New("physics: unknown shape type")

// SceneDef defines the initial state of a simulation.
type SceneDef struct {
	Name   string    `yaml:"name"`
	Bodies []BodyDef `yaml:"bodies"`
}

// BodyDef defines one physical object.
type BodyDef struct {
	Name      string      `yaml:"name"`
	Shape     ShapeDef    `yaml:"shape"`
	Position  mgl32.Vec3  `yaml:"position"`
	Rotation  RotationDef `yaml:"rotation"`
	Velocity  mgl32.Vec3  `yaml:"velocity"`
	Mass      float32     `yaml:"mass"`
	Gravity   bool        `yaml:"gravity"`
	Collision bool        `yaml:"collision"`
	// Thrust is a force reapplied before every step.
	Thrust *mgl32.Vec3 `yaml:"thrust,omitempty"`
}

type ShapeDef struct {
	Type        string       `yaml:"type"` // "sphere", "box", "polyhedron"
	Radius      float32      `yaml:"radius,omitempty"`
	HalfExtents mgl32.Vec3   `yaml:"half_extents,omitempty"`
	Vertices    []mgl32.Vec3 `yaml:"vertices,omitempty"`
}

// RotationDef is an axis-angle rotation. A zero axis means no rotation.
type RotationDef struct {
	Axis     mgl32.Vec3 `yaml:"axis"`
	AngleDeg float32    `yaml:"angle_deg"`
}

func LoadScene(path string) (*SceneDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScene(data)
}

func ParseScene(data []byte) (*SceneDef, error) {
	var scene SceneDef
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return &scene, nil
}

func (r RotationDef) Quat() mgl32.Quat {
	if r.Axis.Len() == 0 || r.AngleDeg == 0 {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatRotate(mgl32.DegToRad(r.AngleDeg), r.Axis.Normalize())
}

// Build creates the collider centered at the origin; the owning body poses it.
func (s ShapeDef) Build() (collision.Collider, error) {
	switch s.Type {
	case "sphere":
		return collision.NewSphere(mgl32.Vec3{}, s.Radius)
	case "box":
		return collision.NewBox(mgl32.Vec3{}, s.HalfExtents)
	case "polyhedron":
		return collision.NewConvexPolyhedron(s.Vertices)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownShape, s.Type)
	}
}

func (b BodyDef) Build() (*PhysicalObject, error) {
	collider, err := b.Shape.Build()
	if err != nil {
		return nil, fmt.Errorf("body %q: %w", b.Name, err)
	}

	obj, err := NewPhysicalObject(b.Position, b.Rotation.Quat(), b.Mass, collider)
	if err != nil {
		return nil, fmt.Errorf("body %q: %w", b.Name, err)
	}
	obj.SetVelocity(b.Velocity)
	if b.Gravity {
		obj.EnableGravity()
	}
	if b.Collision {
		obj.EnableCollision()
	}
	return obj, nil
}

// Populate builds every body and adds it to w. Nothing is added if any body
// fails to build.
func (s *SceneDef) Populate(w *PhysicsWorld) ([]BodyId, error) {
	objs := make([]*PhysicalObject, len(s.Bodies))
	for i, def := range s.Bodies {
		obj, err := def.Build()
		if err != nil {
			return nil, err
		}
		objs[i] = obj
	}

	ids := make([]BodyId, len(objs))
	for i, obj := range objs {
		ids[i] = w.Add(s.Bodies[i].Name, obj)
		if thrust := s.Bodies[i].Thrust; thrust != nil {
			if err := w.SetThrust(ids[i], *thrust); err != nil {
				return nil, err
			}
		}
	}
	return ids, nil
}
