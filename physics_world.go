package gekko

import (
	"errors"
	"fmt"

	"github.com/gekko3d/gekko-physics/collision"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type BodyId string

var ErrBodyNotFound = errors.New("physics: body not found")

func NewBodyId() BodyId {
	return BodyId(uuid.NewString())
}

// Contact is an unordered pair of intersecting bodies, reported in insertion order.
type Contact struct {
	A, B BodyId
}

type worldBody struct {
	id     BodyId
	name   string
	obj    *PhysicalObject
	thrust *mgl32.Vec3
}

// PhysicsWorld steps a set of bodies and reports which of them intersect.
// It tests every pair; there is no broad phase. Not safe for concurrent use.
type PhysicsWorld struct {
	Gravity     mgl32.Vec3
	GroundLevel float32
	FixedStep   float32
	MaxSubSteps int

	detector *collision.Detector
	logger   Logger

	bodies      []*worldBody
	index       map[BodyId]*worldBody
	touching    map[Contact]struct{}
	accumulator float32
}

func NewPhysicsWorld(cfg *Config, logger Logger) *PhysicsWorld {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = NewNopLogger()
	}
	if cfg.Debug {
		logger.SetDebug(true)
	}

	return &PhysicsWorld{
		Gravity:     cfg.Gravity,
		GroundLevel: cfg.GroundLevel,
		FixedStep:   cfg.FixedStep,
		MaxSubSteps: cfg.MaxSubSteps,
		detector:    collision.NewDetector(cfg.MaxIterations, logger),
		logger:      logger,
		index:       make(map[BodyId]*worldBody),
		touching:    make(map[Contact]struct{}),
	}
}

// Add registers obj under a fresh id and applies the world's gravity, ground
// level and collision detector to it.
func (w *PhysicsWorld) Add(name string, obj *PhysicalObject) BodyId {
	id := NewBodyId()

	obj.SetGravity(w.Gravity)
	obj.SetGroundLevel(w.GroundLevel)
	obj.SetDetector(w.detector)

	b := &worldBody{id: id, name: name, obj: obj}
	w.bodies = append(w.bodies, b)
	w.index[id] = b

	w.logger.Debugf("physics: added body %q (%s) at %v", name, id, obj.Position())
	return id
}

func (w *PhysicsWorld) Remove(id BodyId) error {
	if _, ok := w.index[id]; !ok {
		return fmt.Errorf("remove %s: %w", id, ErrBodyNotFound)
	}
	delete(w.index, id)
	for i, b := range w.bodies {
		if b.id == id {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	for c := range w.touching {
		if c.A == id || c.B == id {
			delete(w.touching, c)
		}
	}
	return nil
}

func (w *PhysicsWorld) Body(id BodyId) (*PhysicalObject, bool) {
	b, ok := w.index[id]
	if !ok {
		return nil, false
	}
	return b.obj, true
}

func (w *PhysicsWorld) Name(id BodyId) string {
	if b, ok := w.index[id]; ok {
		return b.name
	}
	return ""
}

// Lookup finds the first body registered under name.
func (w *PhysicsWorld) Lookup(name string) (BodyId, bool) {
	for _, b := range w.bodies {
		if b.name == name {
			return b.id, true
		}
	}
	return "", false
}

func (w *PhysicsWorld) Bodies() []BodyId {
	ids := make([]BodyId, len(w.bodies))
	for i, b := range w.bodies {
		ids[i] = b.id
	}
	return ids
}

// SetThrust makes the world reapply force to the body before every step.
// ApplyForce overwrites, so a one-off ApplyForce only survives until the
// body's next force change; thrust keeps it alive.
func (w *PhysicsWorld) SetThrust(id BodyId, force mgl32.Vec3) error {
	b, ok := w.index[id]
	if !ok {
		return fmt.Errorf("set thrust on %s: %w", id, ErrBodyNotFound)
	}
	b.thrust = &force
	return nil
}

func (w *PhysicsWorld) ClearThrust(id BodyId) error {
	b, ok := w.index[id]
	if !ok {
		return fmt.Errorf("clear thrust on %s: %w", id, ErrBodyNotFound)
	}
	b.thrust = nil
	b.obj.ApplyForce(mgl32.Vec3{})
	return nil
}

// Step integrates every body by dt in insertion order, then refreshes contacts.
func (w *PhysicsWorld) Step(dt float32) {
	for _, b := range w.bodies {
		if b.thrust != nil {
			b.obj.ApplyForce(*b.thrust)
		}
		b.obj.Update(dt)
	}

	current := make(map[Contact]struct{})
	for _, c := range w.Contacts() {
		current[c] = struct{}{}
		if _, ok := w.touching[c]; !ok {
			w.logger.Debugf("physics: contact begin %q <-> %q", w.Name(c.A), w.Name(c.B))
		}
	}
	for c := range w.touching {
		if _, ok := current[c]; !ok {
			w.logger.Debugf("physics: contact end %q <-> %q", w.Name(c.A), w.Name(c.B))
		}
	}
	w.touching = current
}

// Advance consumes the clock's elapsed time in FixedStep slices and returns the
// number of steps taken. Time beyond MaxSubSteps slices is dropped so a long
// stall cannot snowball.
func (w *PhysicsWorld) Advance(t *Time) int {
	return w.AdvanceUpTo(t, w.MaxSubSteps, nil)
}

// AdvanceUpTo is Advance with at most limit steps taken. Time left over because
// of limit stays in the accumulator for the next call. onStep, if set, runs
// after every step.
func (w *PhysicsWorld) AdvanceUpTo(t *Time, limit int, onStep func()) int {
	w.accumulator += t.Seconds()

	steps := 0
	for w.accumulator >= w.FixedStep {
		if steps == w.MaxSubSteps {
			w.logger.Warnf("physics: dropping %.3fs of simulation time", w.accumulator)
			w.accumulator = 0
			break
		}
		if steps == limit {
			break
		}
		w.Step(w.FixedStep)
		w.accumulator -= w.FixedStep
		steps++
		if onStep != nil {
			onStep()
		}
	}
	return steps
}

// Contacts returns every pair of bodies that currently collide.
func (w *PhysicsWorld) Contacts() []Contact {
	var contacts []Contact
	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			a, b := w.bodies[i], w.bodies[j]
			if a.obj.Collide(b.obj) {
				contacts = append(contacts, Contact{A: a.id, B: b.id})
			}
		}
	}
	return contacts
}

// Touching reports whether the last Step left a and b in contact.
func (w *PhysicsWorld) Touching(a, b BodyId) bool {
	if _, ok := w.touching[Contact{A: a, B: b}]; ok {
		return true
	}
	_, ok := w.touching[Contact{A: b, B: a}]
	return ok
}
