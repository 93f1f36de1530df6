package gekko

import (
	"testing"

	"github.com/gekko3d/gekko-physics/collision"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoBodyScene = `
name: pair
bodies:
  - name: floor
    shape:
      type: box
      half_extents: [5, 0.5, 5]
    position: [0, -1, 0]
    mass: 100
    collision: true
  - name: ball
    shape:
      type: sphere
      radius: 0.5
    position: [0, 3, 0]
    velocity: [0, -1, 0]
    mass: 1
    gravity: true
    collision: true
`

func TestParseScene(t *testing.T) {
	scene, err := ParseScene([]byte(twoBodyScene))
	require.NoError(t, err)

	assert.Equal(t, "pair", scene.Name)
	require.Len(t, scene.Bodies, 2)
	assert.Equal(t, "box", scene.Bodies[0].Shape.Type)
	assert.Equal(t, mgl32.Vec3{5, 0.5, 5}, scene.Bodies[0].Shape.HalfExtents)
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, scene.Bodies[1].Velocity)
	assert.True(t, scene.Bodies[1].Gravity)
	assert.Nil(t, scene.Bodies[1].Thrust)
}

func TestScenePopulateAndFall(t *testing.T) {
	scene, err := ParseScene([]byte(twoBodyScene))
	require.NoError(t, err)

	world := NewPhysicsWorld(nil, nil)
	ids, err := scene.Populate(world)
	require.NoError(t, err)
	require.Len(t, ids, 2)

	floor, ball := ids[0], ids[1]
	assert.Empty(t, world.Contacts())

	for i := 0; i < 120; i++ {
		world.Step(1.0 / 60.0)
	}

	obj, _ := world.Body(ball)
	assert.Equal(t, DefaultGroundLevel, obj.Position().Y())
	assert.True(t, world.Touching(floor, ball))
}

func TestShapeDefBuild(t *testing.T) {
	c, err := ShapeDef{Type: "sphere", Radius: 2}.Build()
	require.NoError(t, err)
	assert.IsType(t, &collision.Sphere{}, c)

	c, err = ShapeDef{Type: "polyhedron", Vertices: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}}.Build()
	require.NoError(t, err)
	assert.IsType(t, &collision.ConvexPolyhedron{}, c)

	_, err = ShapeDef{Type: "cone"}.Build()
	assert.ErrorIs(t, err, ErrUnknownShape)

	_, err = ShapeDef{Type: "sphere"}.Build()
	assert.ErrorIs(t, err, collision.ErrInvalidRadius)
}

func TestScenePopulate_RejectsBadBody(t *testing.T) {
	scene := &SceneDef{Bodies: []BodyDef{
		{Name: "ok", Shape: ShapeDef{Type: "sphere", Radius: 1}, Mass: 1},
		{Name: "weightless", Shape: ShapeDef{Type: "sphere", Radius: 1}},
	}}
	world := NewPhysicsWorld(nil, nil)

	_, err := scene.Populate(world)
	assert.ErrorIs(t, err, ErrInvalidMass)
	assert.ErrorContains(t, err, "weightless")
	assert.Empty(t, world.Bodies(), "a failed scene must not leave partial bodies")
}

func TestRotationDefQuat(t *testing.T) {
	assert.Equal(t, mgl32.QuatIdent(), RotationDef{}.Quat())
	assert.Equal(t, mgl32.QuatIdent(), RotationDef{Axis: mgl32.Vec3{0, 1, 0}}.Quat())

	q := RotationDef{Axis: mgl32.Vec3{0, 0, 2}, AngleDeg: 90}.Quat()
	assert.True(t, q.ApproxEqual(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1})))
}

func TestLoadScene_DropScene(t *testing.T) {
	scene, err := LoadScene("scenes/drop.yaml")
	require.NoError(t, err)

	world := NewPhysicsWorld(nil, nil)
	_, err = scene.Populate(world)
	require.NoError(t, err)

	ball, ok := world.Lookup("ball")
	require.True(t, ok)
	crate, _ := world.Lookup("crate")
	rocket, _ := world.Lookup("rocket")
	marker, _ := world.Lookup("marker")

	m, _ := world.Body(marker)
	assert.False(t, m.CollisionEnabled())
	assert.Empty(t, world.Contacts())

	for i := 0; i < 120; i++ {
		world.Step(1.0 / 60.0)
	}

	assert.True(t, world.Touching(ball, crate))
	r, _ := world.Body(rocket)
	assert.Greater(t, r.Position().Y(), float32(0), "thrust outweighs gravity")
	assert.Equal(t, mgl32.Vec3{0, 25, 0}, r.Force())
}
