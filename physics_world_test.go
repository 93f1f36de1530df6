package gekko

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureLogger struct {
	debug  bool
	debugs []string
	warns  []string
}

func (l *captureLogger) DebugEnabled() bool    { return l.debug }
func (l *captureLogger) SetDebug(enabled bool) { l.debug = enabled }
func (l *captureLogger) Debugf(format string, args ...any) {
	if l.debug {
		l.debugs = append(l.debugs, fmt.Sprintf(format, args...))
	}
}
func (l *captureLogger) Infof(format string, args ...any) {}
func (l *captureLogger) Warnf(format string, args ...any) {
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}
func (l *captureLogger) Errorf(format string, args ...any) {}

func TestPhysicsWorld_AppliesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gravity = mgl32.Vec3{0, -1, 0}
	cfg.GroundLevel = -50
	world := NewPhysicsWorld(cfg, nil)

	obj := newSphereObject(t, mgl32.Vec3{0, 0, 0}, 1, 1)
	obj.EnableGravity()
	id := world.Add("ball", obj)

	world.Step(2)

	got, ok := world.Body(id)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{0, -2, 0}, got.Velocity())
	assert.Equal(t, mgl32.Vec3{0, -4, 0}, got.Position())
	assert.Equal(t, "ball", world.Name(id))
}

func TestPhysicsWorld_Contacts(t *testing.T) {
	logger := &captureLogger{}
	cfg := DefaultConfig()
	cfg.Debug = true
	world := NewPhysicsWorld(cfg, logger)

	a := newSphereObject(t, mgl32.Vec3{0, 0, 0}, 1, 1)
	b := newSphereObject(t, mgl32.Vec3{1, 0, 0}, 1, 1)
	c := newSphereObject(t, mgl32.Vec3{10, 0, 0}, 1, 1)
	ghost := newSphereObject(t, mgl32.Vec3{0.5, 0, 0}, 1, 1)
	for _, o := range []*PhysicalObject{a, b, c} {
		o.EnableCollision()
	}

	idA := world.Add("a", a)
	idB := world.Add("b", b)
	idC := world.Add("c", c)
	world.Add("ghost", ghost)

	assert.Equal(t, []Contact{{A: idA, B: idB}}, world.Contacts())

	world.Step(0)
	assert.True(t, world.Touching(idA, idB))
	assert.True(t, world.Touching(idB, idA))
	assert.False(t, world.Touching(idA, idC))
	assert.Contains(t, logger.debugs, `physics: contact begin "a" <-> "b"`)

	b.SetVelocity(mgl32.Vec3{20, 0, 0})
	world.Step(1)
	assert.False(t, world.Touching(idA, idB))
	assert.Contains(t, logger.debugs, `physics: contact end "a" <-> "b"`)
}

func TestPhysicsWorld_Thrust(t *testing.T) {
	world := NewPhysicsWorld(nil, nil)
	obj := newSphereObject(t, mgl32.Vec3{0, 0, 0}, 1, 1)
	id := world.Add("rocket", obj)

	require.NoError(t, world.SetThrust(id, mgl32.Vec3{0, 10, 0}))
	world.Step(1)
	// A stray force is replaced by the thrust on the next step.
	obj.ApplyForce(mgl32.Vec3{-100, 0, 0})
	world.Step(1)
	assert.Equal(t, mgl32.Vec3{0, 20, 0}, obj.Velocity())

	require.NoError(t, world.ClearThrust(id))
	assert.Equal(t, mgl32.Vec3{}, obj.Force())
	world.Step(1)
	assert.Equal(t, mgl32.Vec3{0, 20, 0}, obj.Velocity())

	assert.ErrorIs(t, world.SetThrust("missing", mgl32.Vec3{}), ErrBodyNotFound)
	assert.ErrorIs(t, world.ClearThrust("missing"), ErrBodyNotFound)
}

func TestPhysicsWorld_Remove(t *testing.T) {
	world := NewPhysicsWorld(nil, nil)
	a := newSphereObject(t, mgl32.Vec3{0, 0, 0}, 1, 1)
	b := newSphereObject(t, mgl32.Vec3{1, 0, 0}, 1, 1)
	a.EnableCollision()
	b.EnableCollision()
	idA := world.Add("a", a)
	idB := world.Add("b", b)
	world.Step(0)
	require.True(t, world.Touching(idA, idB))

	require.NoError(t, world.Remove(idA))
	assert.Equal(t, []BodyId{idB}, world.Bodies())
	assert.False(t, world.Touching(idA, idB))
	assert.Empty(t, world.Contacts())

	_, ok := world.Body(idA)
	assert.False(t, ok)
	assert.ErrorIs(t, world.Remove(idA), ErrBodyNotFound)

	found, ok := world.Lookup("b")
	assert.True(t, ok)
	assert.Equal(t, idB, found)
	_, ok = world.Lookup("a")
	assert.False(t, ok)
}

func TestPhysicsWorld_Advance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FixedStep = 0.01
	cfg.MaxSubSteps = 4
	logger := &captureLogger{}
	world := NewPhysicsWorld(cfg, logger)

	obj := newSphereObject(t, mgl32.Vec3{0, 0, 0}, 1, 1)
	obj.SetVelocity(mgl32.Vec3{1, 0, 0})
	world.Add("mover", obj)

	start := time.Unix(0, 0)
	clock := NewTime(start)
	clock.Tick(start.Add(35 * time.Millisecond))

	assert.Equal(t, 3, world.Advance(clock))
	assert.InDelta(t, 0.03, obj.Position().X(), 1e-5)

	// A long stall is capped at MaxSubSteps and the backlog dropped.
	clock.Tick(clock.Time.Add(time.Second))
	assert.Equal(t, 4, world.Advance(clock))
	assert.Len(t, logger.warns, 1)

	clock.Tick(clock.Time.Add(5 * time.Millisecond))
	assert.Equal(t, 0, world.Advance(clock))
}

func TestNewBodyIdUnique(t *testing.T) {
	assert.NotEqual(t, NewBodyId(), NewBodyId())
}

func TestPhysicsWorld_AdvanceUpTo(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FixedStep = 0.01
	cfg.MaxSubSteps = 8
	logger := &captureLogger{}
	world := NewPhysicsWorld(cfg, logger)

	obj := newSphereObject(t, mgl32.Vec3{0, 0, 0}, 1, 1)
	obj.SetVelocity(mgl32.Vec3{1, 0, 0})
	world.Add("mover", obj)

	start := time.Unix(0, 0)
	clock := NewTime(start)
	clock.Tick(start.Add(55 * time.Millisecond))

	calls := 0
	assert.Equal(t, 2, world.AdvanceUpTo(clock, 2, func() { calls++ }))
	assert.Equal(t, 2, calls)
	assert.InDelta(t, 0.02, obj.Position().X(), 1e-5)
	assert.Empty(t, logger.warns, "a caller limit keeps the backlog")

	// The remaining 35ms carry over into the next call.
	clock.Tick(clock.Time)
	assert.Equal(t, 3, world.AdvanceUpTo(clock, 10, nil))
	assert.InDelta(t, 0.05, obj.Position().X(), 1e-5)
}
