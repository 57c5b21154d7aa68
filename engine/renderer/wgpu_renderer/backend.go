package wgpu_renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-fps/engine/renderer"
	"github.com/cogentcore/webgpu/wgpu"
)

// backend owns the WebGPU instance, device and surface, and the per-frame pass state.
type backend struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode
	sampleCount renderer.MSAASampleCount

	// Draw resources, created on the first configureSurface
	bindGroupLayout *wgpu.BindGroupLayout
	frameBuffer     *wgpu.Buffer
	frameBindGroup  *wgpu.BindGroup
	litPipeline     *wgpu.RenderPipeline
	shadowPipeline  *wgpu.RenderPipeline
	geometries      [renderer.GeometryCount]gpuGeometry
	litInstances    [renderer.GeometryCount]instanceBuffer
	shadowInstances [renderer.GeometryCount]instanceBuffer

	// Frame state between beginFrame and present
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

func newBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount renderer.MSAASampleCount) (*backend, error) {
	if surfaceDescriptor == nil {
		return nil, fmt.Errorf("surface descriptor is nil")
	}
	runtime.LockOSThread()
	b := &backend{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.release()
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		b.release()
		return nil, fmt.Errorf("request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	return b, nil
}

func (b *backend) configureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		return fmt.Errorf("surface reports no formats")
	}
	if b.surfaceFormat != nil && *b.surfaceFormat != capabilities.Formats[0] {
		// Pipelines are compiled against the surface format.
		b.releaseDrawResources()
	}
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// The render pass draws into the MSAA texture; the resolved
		// result is written to the swapchain view as the ResolveTarget.
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return fmt.Errorf("create msaa texture: %w", err)
		}
		b.msaaTexture = msaaTexture
		b.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			return fmt.Errorf("create msaa view: %w", err)
		}
	}

	// Depth texture sample count must match the color attachment.
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	b.depthTexture = depthTexture
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create depth view: %w", err)
	}

	if b.litPipeline == nil {
		if err := b.initDrawResources(); err != nil {
			b.releaseDrawResources()
			return fmt.Errorf("init draw resources: %w", err)
		}
	}

	// When MSAA is enabled, View is the MSAA texture and ResolveTarget is
	// set per-frame to the swapchain view. When disabled, View is set
	// per-frame to the swapchain view and ResolveTarget remains nil.
	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.msaaTextureView,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
	return nil
}

func (b *backend) setPresentMode(mode renderer.PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case renderer.PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

// beginFrame acquires the next swapchain texture and opens a render pass cleared to clear.
func (b *backend) beginFrame(clear [4]float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.renderPassDescriptor == nil {
		return fmt.Errorf("surface not configured")
	}
	// A held surface texture means the previous frame was never presented; acquiring
	// another one trips "Surface image is already acquired" in wgpu-native.
	if b.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}
	b.renderPassDescriptor.ColorAttachments[0].ClearValue = wgpu.Color{
		R: clear[0], G: clear[1], B: clear[2], A: clear[3],
	}
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

// draw uploads the frame uniform and instance data of dl, then records one instanced draw per
// non-empty primitive batch: lit meshes first, then the blended shadows.
func (b *backend) draw(dl *renderer.DrawList) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return fmt.Errorf("no frame in progress")
	}
	if b.litPipeline == nil {
		return nil
	}
	b.queue.WriteBuffer(b.frameBuffer, 0, dl.Frame.Marshal())

	if err := b.drawBatches(b.litPipeline, &b.litInstances, &dl.Lit, "Lit"); err != nil {
		return err
	}
	return b.drawBatches(b.shadowPipeline, &b.shadowInstances, &dl.Shadows, "Shadow")
}

func (b *backend) drawBatches(p *wgpu.RenderPipeline, buffers *[renderer.GeometryCount]instanceBuffer, batches *[renderer.GeometryCount][]renderer.GPUInstance, label string) error {
	bound := false
	for g, batch := range batches {
		if len(batch) == 0 {
			continue
		}
		geo := b.geometries[g]
		if geo.vertexBuffer == nil {
			continue
		}
		ib := &buffers[g]
		if err := ib.ensure(b.device, len(batch), fmt.Sprintf("%s %s", label, renderer.Geometry(g))); err != nil {
			return err
		}
		b.queue.WriteBuffer(ib.buffer, 0, renderer.MarshalInstances(batch))

		if !bound {
			b.framePass.SetPipeline(p)
			b.framePass.SetBindGroup(0, b.frameBindGroup, nil)
			bound = true
		}
		b.framePass.SetVertexBuffer(0, geo.vertexBuffer, 0, wgpu.WholeSize)
		b.framePass.SetVertexBuffer(1, ib.buffer, 0, wgpu.WholeSize)
		b.framePass.SetIndexBuffer(geo.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		b.framePass.DrawIndexed(geo.indexCount, uint32(len(batch)), 0, 0, 0)
	}
	return nil
}

func (b *backend) endFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return nil
	}
	b.framePass.End()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.frameEncoder.Release()
		b.frameView.Release()
		b.frameSurface.Release()
		b.frameEncoder = nil
		b.frameSurface = nil
		b.frameView = nil
		return err
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	return nil
}

func (b *backend) present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *backend) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

// releaseDrawResources frees pipelines, buffers and bind groups. Caller must hold the mutex.
func (b *backend) releaseDrawResources() {
	for i := range b.litInstances {
		b.litInstances[i].release()
		b.shadowInstances[i].release()
		b.geometries[i].release()
	}
	if b.litPipeline != nil {
		b.litPipeline.Release()
		b.litPipeline = nil
	}
	if b.shadowPipeline != nil {
		b.shadowPipeline.Release()
		b.shadowPipeline = nil
	}
	if b.frameBindGroup != nil {
		b.frameBindGroup.Release()
		b.frameBindGroup = nil
	}
	if b.frameBuffer != nil {
		b.frameBuffer.Release()
		b.frameBuffer = nil
	}
	if b.bindGroupLayout != nil {
		b.bindGroupLayout.Release()
		b.bindGroupLayout = nil
	}
}

func (b *backend) release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseDrawResources()
	b.releaseTargets()
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
