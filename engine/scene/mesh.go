package scene

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-fps/engine/material"
	"github.com/Carmen-Shannon/oxy-fps/engine/physics"
	"github.com/go-gl/mathgl/mgl32"
)

// meshCount is an atomic counter used to give every mesh a unique ID.
var meshCount atomic.Uint64

// MeshKind identifies the primitive a mesh was built from.
type MeshKind int

const (
	// MeshBox is an axis-aligned box primitive scaled by Size.
	MeshBox MeshKind = iota
	// MeshSphere is a sphere primitive whose diameter is Size.X.
	MeshSphere
	// MeshGround is a flat plane of Size.X by Size.Z.
	MeshGround
)

type mesh struct {
	mu              sync.Mutex
	id              uint64
	name            string
	kind            MeshKind
	size            mgl32.Vec3
	position        mgl32.Vec3
	rotation        mgl32.Quat
	mat             material.Material
	body            physics.BodyHandle
	ground          bool
	receiveShadows  bool
	checkCollisions bool
	pickable        bool
	enabled         atomic.Bool
}

// Mesh defines a renderable scene entity, optionally bound to a physics body.
// Transforms of body-bound meshes are copied from the physics world each tick.
type Mesh interface {
	// ID returns the mesh's unique identifier.
	//
	// Returns:
	//   - uint64: the mesh ID
	ID() uint64

	// Name returns the mesh's name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// SetName renames the mesh.
	//
	// Parameters:
	//   - name: the new name
	SetName(name string)

	// Kind returns the primitive the mesh was built from.
	//
	// Returns:
	//   - MeshKind: the primitive kind
	Kind() MeshKind

	// Size returns the primitive's full extents.
	//
	// Returns:
	//   - mgl32.Vec3: width, height and depth
	Size() mgl32.Vec3

	// HasGeometry reports whether the mesh has a non-degenerate extent to render and collide with.
	//
	// Returns:
	//   - bool: true if every required dimension is positive
	HasGeometry() bool

	// Position returns the world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Rotation returns the world-space orientation.
	//
	// Returns:
	//   - mgl32.Quat: the orientation
	Rotation() mgl32.Quat

	// SetTransform sets position and orientation.
	//
	// Parameters:
	//   - position: the new position
	//   - rotation: the new orientation
	SetTransform(position mgl32.Vec3, rotation mgl32.Quat)

	// Material returns the surface material, or nil if none is assigned.
	//
	// Returns:
	//   - material.Material: the material or nil
	Material() material.Material

	// SetMaterial assigns the surface material.
	//
	// Parameters:
	//   - m: the material
	SetMaterial(m material.Material)

	// Body returns the physics body bound to this mesh. The handle is invalid if none is bound.
	//
	// Returns:
	//   - physics.BodyHandle: the body handle
	Body() physics.BodyHandle

	// SetBody binds a physics body to this mesh.
	//
	// Parameters:
	//   - h: the body handle
	SetBody(h physics.BodyHandle)

	// IsGround reports whether this mesh is the scene's walkable ground surface.
	//
	// Returns:
	//   - bool: true for the ground
	IsGround() bool

	// ReceiveShadows reports whether shadows are drawn onto this mesh.
	//
	// Returns:
	//   - bool: true if shadow-receiving
	ReceiveShadows() bool

	// SetReceiveShadows sets whether shadows are drawn onto this mesh.
	//
	// Parameters:
	//   - receive: true to receive shadows
	SetReceiveShadows(receive bool)

	// CheckCollisions reports whether the first-person camera collides with this mesh.
	//
	// Returns:
	//   - bool: true if collidable
	CheckCollisions() bool

	// SetCheckCollisions sets whether the first-person camera collides with this mesh.
	//
	// Parameters:
	//   - check: true to collide
	SetCheckCollisions(check bool)

	// Pickable reports whether gameplay raycasts may hit this mesh.
	//
	// Returns:
	//   - bool: true if pickable
	Pickable() bool

	// Enabled returns whether this mesh is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the mesh is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Mesh = &mesh{}

// NewMesh creates a Mesh with the provided options. Meshes are enabled and pickable by default.
//
// Parameters:
//   - kind: the primitive kind
//   - options: functional options to configure the mesh
//
// Returns:
//   - Mesh: the new mesh
func NewMesh(kind MeshKind, options ...MeshBuilderOption) Mesh {
	m := &mesh{
		id:       meshCount.Add(1),
		kind:     kind,
		size:     mgl32.Vec3{1, 1, 1},
		rotation: mgl32.QuatIdent(),
		pickable: true,
	}
	m.enabled.Store(true)
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *mesh) ID() uint64 {
	return m.id
}

func (m *mesh) Name() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.name
}

func (m *mesh) SetName(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.name = name
}

func (m *mesh) Kind() MeshKind {
	return m.kind
}

func (m *mesh) Size() mgl32.Vec3 {
	return m.size
}

func (m *mesh) HasGeometry() bool {
	switch m.kind {
	case MeshSphere:
		return m.size.X() > 0
	case MeshGround:
		return m.size.X() > 0 && m.size.Z() > 0
	default:
		return m.size.X() > 0 && m.size.Y() > 0 && m.size.Z() > 0
	}
}

func (m *mesh) Position() mgl32.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *mesh) Rotation() mgl32.Quat {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rotation
}

func (m *mesh) SetTransform(position mgl32.Vec3, rotation mgl32.Quat) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = position
	m.rotation = rotation
}

func (m *mesh) Material() material.Material {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mat
}

func (m *mesh) SetMaterial(mat material.Material) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mat = mat
}

func (m *mesh) Body() physics.BodyHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.body
}

func (m *mesh) SetBody(h physics.BodyHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.body = h
}

func (m *mesh) IsGround() bool {
	return m.ground
}

func (m *mesh) ReceiveShadows() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.receiveShadows
}

func (m *mesh) SetReceiveShadows(receive bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receiveShadows = receive
}

func (m *mesh) CheckCollisions() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checkCollisions
}

func (m *mesh) SetCheckCollisions(check bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkCollisions = check
}

func (m *mesh) Pickable() bool {
	return m.pickable
}

func (m *mesh) Enabled() bool {
	return m.enabled.Load()
}

func (m *mesh) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}
