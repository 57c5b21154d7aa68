package renderer

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUVertex is the GPU-aligned representation of a single primitive vertex.
// Matches the WGSL VertexInput struct (locations 0 and 1).
// Size: 24 bytes.
type GPUVertex struct {
	Position [3]float32 // offset  0: position in model space (12 bytes)
	Normal   [3]float32 // offset 12: unit normal in model space (12 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (24)
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 24-byte buffer ready for GPU upload
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 24)
	putFloats(buf, 0, g.Position[:])
	putFloats(buf, 12, g.Normal[:])
	return buf
}

// GPUFrameUniform is the per-frame uniform shared by every draw: camera and lighting.
// Matches the WGSL FrameUniform struct layout exactly (uniform address space alignment).
// Size: 144 bytes.
type GPUFrameUniform struct {
	ViewProj         [16]float32 // offset   0: combined view-projection matrix (mat4x4<f32>)
	CameraPosition   [3]float32  // offset  64: world-space eye position
	_pad0            float32     // offset  76
	SunDirection     [3]float32  // offset  80: direction the sun light travels
	SunIntensity     float32     // offset  92: 0 when the scene has no directional light
	SunColor         [3]float32  // offset  96
	AmbientIntensity float32     // offset 108: hemispheric light intensity
	SkyColor         [3]float32  // offset 112: hemispheric color for upward normals
	_pad1            float32     // offset 124
	GroundColor      [3]float32  // offset 128: hemispheric color for downward normals
	_pad2            float32     // offset 140
}

// Size returns the size of the GPUFrameUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (144)
func (g *GPUFrameUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFrameUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUFrameUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	putFloats(buf, 0, g.ViewProj[:])
	putFloats(buf, 64, g.CameraPosition[:])
	putFloats(buf, 80, g.SunDirection[:])
	putFloats(buf, 92, []float32{g.SunIntensity})
	putFloats(buf, 96, g.SunColor[:])
	putFloats(buf, 108, []float32{g.AmbientIntensity})
	putFloats(buf, 112, g.SkyColor[:])
	putFloats(buf, 128, g.GroundColor[:])
	return buf
}

// GPUInstance is one drawn copy of a primitive, uploaded as a per-instance vertex buffer
// (WGSL InstanceInput, locations 2 through 7).
// Size: 96 bytes.
type GPUInstance struct {
	Model [16]float32 // offset  0: model matrix, column-major (4 x vec4<f32>)
	Color [4]float32  // offset 64: RGBA surface color
	// Params holds x = lit (1) or flat (0), y = specular power, z = specular strength.
	Params [4]float32 // offset 80
}

// Size returns the size of the GPUInstance struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (96)
func (g *GPUInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 96-byte buffer ready for GPU upload
func (g *GPUInstance) Marshal() []byte {
	buf := make([]byte, 96)
	putFloats(buf, 0, g.Model[:])
	putFloats(buf, 64, g.Color[:])
	putFloats(buf, 80, g.Params[:])
	return buf
}

// MarshalInstances packs instances back to back for a single buffer write.
//
// Parameters:
//   - instances: the instances to pack
//
// Returns:
//   - []byte: len(instances) * 96 bytes
func MarshalInstances(instances []GPUInstance) []byte {
	buf := make([]byte, 0, len(instances)*96)
	for i := range instances {
		buf = append(buf, instances[i].Marshal()...)
	}
	return buf
}

// MarshalVertices packs vertices back to back for a single buffer write.
//
// Parameters:
//   - vertices: the vertices to pack
//
// Returns:
//   - []byte: len(vertices) * 24 bytes
func MarshalVertices(vertices []GPUVertex) []byte {
	buf := make([]byte, 0, len(vertices)*24)
	for i := range vertices {
		buf = append(buf, vertices[i].Marshal()...)
	}
	return buf
}

// MarshalIndices packs uint32 indices in little-endian order.
//
// Parameters:
//   - indices: the triangle list indices
//
// Returns:
//   - []byte: len(indices) * 4 bytes
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

func putFloats(buf []byte, offset int, values []float32) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[offset+i*4:], math.Float32bits(v))
	}
}

func mat4Array(m mgl32.Mat4) [16]float32 {
	return [16]float32(m)
}
