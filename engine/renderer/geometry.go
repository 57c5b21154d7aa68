package renderer

import (
	"math"

	"github.com/Carmen-Shannon/oxy-fps/engine/scene"
)

// Geometry identifies one of the shared unit primitives every mesh is drawn from.
type Geometry int

const (
	// GeometryPlane is a unit square in the XZ plane facing +Y.
	GeometryPlane Geometry = iota
	// GeometryCube is a unit cube centered on the origin.
	GeometryCube
	// GeometrySphere is a sphere of diameter 1 centered on the origin.
	GeometrySphere

	// GeometryCount is the number of Geometry values.
	GeometryCount
)

// sphereRings and sphereSegments set the tessellation of GeometrySphere.
const (
	sphereRings    = 16
	sphereSegments = 24
)

func (g Geometry) String() string {
	switch g {
	case GeometryPlane:
		return "plane"
	case GeometryCube:
		return "cube"
	case GeometrySphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// GeometryFor maps a mesh kind to the primitive it is drawn with.
//
// Parameters:
//   - kind: the mesh kind
//
// Returns:
//   - Geometry: the primitive for kind
func GeometryFor(kind scene.MeshKind) Geometry {
	switch kind {
	case scene.MeshGround:
		return GeometryPlane
	case scene.MeshSphere:
		return GeometrySphere
	default:
		return GeometryCube
	}
}

// Primitive returns the vertices and triangle-list indices of g, wound counter-clockwise
// when seen from outside.
//
// Parameters:
//   - g: the primitive to build
//
// Returns:
//   - []GPUVertex: the vertices
//   - []uint32: the triangle indices
func Primitive(g Geometry) ([]GPUVertex, []uint32) {
	switch g {
	case GeometryPlane:
		return planeGeometry()
	case GeometrySphere:
		return sphereGeometry(sphereRings, sphereSegments)
	default:
		return cubeGeometry()
	}
}

func planeGeometry() ([]GPUVertex, []uint32) {
	up := [3]float32{0, 1, 0}
	v := []GPUVertex{
		{Position: [3]float32{-0.5, 0, -0.5}, Normal: up},
		{Position: [3]float32{-0.5, 0, 0.5}, Normal: up},
		{Position: [3]float32{0.5, 0, 0.5}, Normal: up},
		{Position: [3]float32{0.5, 0, -0.5}, Normal: up},
	}
	return v, []uint32{0, 1, 2, 0, 2, 3}
}

func cubeGeometry() ([]GPUVertex, []uint32) {
	// Each face: normal, then two tangent axes u and w with u x w = normal.
	faces := []struct{ n, u, w [3]float32 }{
		{[3]float32{1, 0, 0}, [3]float32{0, 1, 0}, [3]float32{0, 0, 1}},
		{[3]float32{-1, 0, 0}, [3]float32{0, 0, 1}, [3]float32{0, 1, 0}},
		{[3]float32{0, 1, 0}, [3]float32{0, 0, 1}, [3]float32{1, 0, 0}},
		{[3]float32{0, -1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, 1}},
		{[3]float32{0, 0, 1}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}},
		{[3]float32{0, 0, -1}, [3]float32{0, 1, 0}, [3]float32{1, 0, 0}},
	}
	vertices := make([]GPUVertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(vertices))
		for _, c := range [4][2]float32{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}} {
			var p [3]float32
			for i := range 3 {
				p[i] = f.n[i]*0.5 + f.u[i]*c[0] + f.w[i]*c[1]
			}
			vertices = append(vertices, GPUVertex{Position: p, Normal: f.n})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return vertices, indices
}

func sphereGeometry(rings, segments int) ([]GPUVertex, []uint32) {
	vertices := make([]GPUVertex, 0, (rings+1)*(segments+1))
	for r := 0; r <= rings; r++ {
		phi := math.Pi * float64(r) / float64(rings)
		y := math.Cos(phi)
		ring := math.Sin(phi)
		for s := 0; s <= segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			n := [3]float32{float32(ring * math.Cos(theta)), float32(y), float32(ring * math.Sin(theta))}
			vertices = append(vertices, GPUVertex{
				Position: [3]float32{n[0] * 0.5, n[1] * 0.5, n[2] * 0.5},
				Normal:   n,
			})
		}
	}

	indices := make([]uint32, 0, rings*segments*6)
	stride := uint32(segments + 1)
	for r := range uint32(rings) {
		for s := range uint32(segments) {
			a := r*stride + s
			b := a + stride
			indices = append(indices, a, a+1, b, a+1, b+1, b)
		}
	}
	return vertices, indices
}
