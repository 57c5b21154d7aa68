package scene

import (
	"github.com/Carmen-Shannon/oxy-fps/engine/material"
	"github.com/go-gl/mathgl/mgl32"
)

// MeshBuilderOption is a functional option for configuring a Mesh during construction.
type MeshBuilderOption func(*mesh)

// WithName sets the mesh name.
//
// Parameters:
//   - name: the mesh name
//
// Returns:
//   - MeshBuilderOption: functional option to set the name
func WithName(name string) MeshBuilderOption {
	return func(m *mesh) {
		m.name = name
	}
}

// WithSize sets the primitive's full extents.
//
// Parameters:
//   - width, height, depth: extents along X, Y and Z
//
// Returns:
//   - MeshBuilderOption: functional option to set the size
func WithSize(width, height, depth float32) MeshBuilderOption {
	return func(m *mesh) {
		m.size = mgl32.Vec3{width, height, depth}
	}
}

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - MeshBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) MeshBuilderOption {
	return func(m *mesh) {
		m.position = mgl32.Vec3{x, y, z}
	}
}

// WithRotation sets the initial orientation.
//
// Parameters:
//   - q: the orientation
//
// Returns:
//   - MeshBuilderOption: functional option to set the rotation
func WithRotation(q mgl32.Quat) MeshBuilderOption {
	return func(m *mesh) {
		m.rotation = q
	}
}

// WithMaterial assigns the surface material.
//
// Parameters:
//   - mat: the material
//
// Returns:
//   - MeshBuilderOption: functional option to set the material
func WithMaterial(mat material.Material) MeshBuilderOption {
	return func(m *mesh) {
		m.mat = mat
	}
}

// WithGround marks the mesh as the scene's walkable ground surface.
//
// Returns:
//   - MeshBuilderOption: functional option to flag the ground
func WithGround() MeshBuilderOption {
	return func(m *mesh) {
		m.ground = true
	}
}

// WithReceiveShadows sets whether shadows are drawn onto the mesh.
//
// Parameters:
//   - receive: true to receive shadows
//
// Returns:
//   - MeshBuilderOption: functional option to set shadow receiving
func WithReceiveShadows(receive bool) MeshBuilderOption {
	return func(m *mesh) {
		m.receiveShadows = receive
	}
}

// WithCheckCollisions sets whether the first-person camera collides with the mesh.
//
// Parameters:
//   - check: true to collide
//
// Returns:
//   - MeshBuilderOption: functional option to set camera collisions
func WithCheckCollisions(check bool) MeshBuilderOption {
	return func(m *mesh) {
		m.checkCollisions = check
	}
}

// WithPickable sets whether gameplay raycasts may hit the mesh.
//
// Parameters:
//   - pickable: true if pickable
//
// Returns:
//   - MeshBuilderOption: functional option to set pickability
func WithPickable(pickable bool) MeshBuilderOption {
	return func(m *mesh) {
		m.pickable = pickable
	}
}
