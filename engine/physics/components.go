package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"
)

// BodyData is the ECS component holding a body's simulation state.
type BodyData struct {
	Seq      uint64
	Name     string
	Shape    Shape
	Position mgl32.Vec3
	// Prev is the position at the start of the current substep.
	Prev        mgl32.Vec3
	Rotation    mgl32.Quat
	Velocity    mgl32.Vec3
	Mass        float32
	InvMass     float32
	Restitution float32
	Friction    float32
	Pickable    bool
}

// Body is the component type for BodyData.
var Body = donburi.NewComponentType[BodyData]()

var (
	// Static marks immovable bodies (mass 0).
	Static = donburi.NewTag().SetName("Static")
	// Dynamic marks bodies moved by the simulation.
	Dynamic = donburi.NewTag().SetName("Dynamic")
)
