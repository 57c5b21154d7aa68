package wgpu_renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-fps/engine/renderer"
	"github.com/cogentcore/webgpu/wgpu"
)

// minInstanceCapacity is the smallest instance buffer allocated, in instances.
const minInstanceCapacity = 32

// gpuGeometry holds the uploaded vertex and index buffers of one shared primitive.
type gpuGeometry struct {
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   uint32
}

func (g *gpuGeometry) release() {
	if g.vertexBuffer != nil {
		g.vertexBuffer.Release()
		g.vertexBuffer = nil
	}
	if g.indexBuffer != nil {
		g.indexBuffer.Release()
		g.indexBuffer = nil
	}
	g.indexCount = 0
}

// instanceBuffer is a per-instance vertex buffer that grows by doubling.
type instanceBuffer struct {
	buffer   *wgpu.Buffer
	capacity int
}

// ensure makes room for n instances, reallocating when the current buffer is too small.
func (ib *instanceBuffer) ensure(device *wgpu.Device, n int, label string) error {
	if ib.buffer != nil && n <= ib.capacity {
		return nil
	}
	capacity := max(ib.capacity, minInstanceCapacity)
	for capacity < n {
		capacity *= 2
	}
	var inst renderer.GPUInstance
	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Instance Buffer",
		Size:  uint64(capacity * inst.Size()),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create %s instance buffer: %w", label, err)
	}
	ib.release()
	ib.buffer = buf
	ib.capacity = capacity
	return nil
}

func (ib *instanceBuffer) release() {
	if ib.buffer != nil {
		ib.buffer.Release()
		ib.buffer = nil
	}
	ib.capacity = 0
}

// initGeometry uploads one primitive. Caller must hold the backend mutex.
func (b *backend) initGeometry(g renderer.Geometry, vertices []renderer.GPUVertex, indices []uint32) error {
	vertexData := renderer.MarshalVertices(vertices)
	indexData := renderer.MarshalIndices(indices)

	vb, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            g.String() + " Vertex Buffer",
		Size:             uint64(len(vertexData)),
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return fmt.Errorf("create %s vertex buffer: %w", g, err)
	}
	b.queue.WriteBuffer(vb, 0, vertexData)

	ib, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            g.String() + " Index Buffer",
		Size:             uint64(len(indexData)),
		Usage:            wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		vb.Release()
		return fmt.Errorf("create %s index buffer: %w", g, err)
	}
	b.queue.WriteBuffer(ib, 0, indexData)

	b.geometries[g] = gpuGeometry{vertexBuffer: vb, indexBuffer: ib, indexCount: uint32(len(indices))}
	return nil
}
