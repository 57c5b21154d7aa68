package wgpu_renderer

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/oxy-fps/engine/renderer"
	"github.com/cogentcore/webgpu/wgpu"
)

// meshShaderSource draws every primitive: Lambert plus Blinn-Phong for lit instances, flat color otherwise.
// Its FrameUniform, VertexInput and InstanceInput match renderer.GPUFrameUniform, GPUVertex and GPUInstance.
//
//go:embed assets/mesh.wgsl
var meshShaderSource string

// pipelineConfig holds the fixed-function state of one render pipeline.
type pipelineConfig struct {
	key                 string
	depthWriteEnabled   bool
	depthBias           int32
	depthBiasSlopeScale float32
	blendEnabled        bool
	cullMode            wgpu.CullMode
	frontFace           wgpu.FrontFace
	blendState          *wgpu.BlendState
}

// pipelineOption is a functional option applied to a pipelineConfig.
type pipelineOption func(*pipelineConfig)

// newPipelineConfig returns the opaque defaults: depth write on, no blending, back-face culling.
//
// Parameters:
//   - key: the pipeline label
//   - opts: options overriding the defaults
//
// Returns:
//   - pipelineConfig: the configuration
func newPipelineConfig(key string, opts ...pipelineOption) pipelineConfig {
	p := pipelineConfig{
		key:               key,
		depthWriteEnabled: true,
		cullMode:          wgpu.CullModeBack,
		frontFace:         wgpu.FrontFaceCCW,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// withDepthWrite sets whether the pipeline writes depth.
func withDepthWrite(enabled bool) pipelineOption {
	return func(p *pipelineConfig) {
		p.depthWriteEnabled = enabled
	}
}

// withDepthBias sets the constant and slope-scaled depth bias.
func withDepthBias(bias int32, slopeScale float32) pipelineOption {
	return func(p *pipelineConfig) {
		p.depthBias = bias
		p.depthBiasSlopeScale = slopeScale
	}
}

// withBlend enables alpha blending.
func withBlend() pipelineOption {
	return func(p *pipelineConfig) {
		p.blendEnabled = true
	}
}

// withCullMode sets the face culling mode.
func withCullMode(mode wgpu.CullMode) pipelineOption {
	return func(p *pipelineConfig) {
		p.cullMode = mode
	}
}

// meshVertexLayouts describes slot 0 (GPUVertex, per vertex) and slot 1 (GPUInstance, per instance).
func meshVertexLayouts() []wgpu.VertexBufferLayout {
	vertex := wgpu.VertexBufferLayout{
		ArrayStride: 24,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		},
	}
	instance := wgpu.VertexBufferLayout{
		ArrayStride: 96,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes:  make([]wgpu.VertexAttribute, 0, 6),
	}
	for i := range uint32(6) {
		instance.Attributes = append(instance.Attributes, wgpu.VertexAttribute{
			Format:         wgpu.VertexFormatFloat32x4,
			Offset:         uint64(i * 16),
			ShaderLocation: 2 + i,
		})
	}
	return []wgpu.VertexBufferLayout{vertex, instance}
}

// createMeshPipeline compiles meshShaderSource into a render pipeline using cfg.
// Caller must hold the backend mutex and have configured the surface.
func (b *backend) createMeshPipeline(cfg pipelineConfig, layout *wgpu.PipelineLayout, module *wgpu.ShaderModule) (*wgpu.RenderPipeline, error) {
	target := wgpu.ColorTargetState{
		Format:    *b.surfaceFormat,
		WriteMask: wgpu.ColorWriteMaskAll,
	}
	if cfg.blendEnabled {
		target.Blend = cfg.blendState
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  cfg.key + " Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    meshVertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: cfg.frontFace,
			CullMode:  cfg.cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:              wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled:   cfg.depthWriteEnabled,
			DepthCompare:        wgpu.CompareFunctionLess,
			DepthBias:           cfg.depthBias,
			DepthBiasSlopeScale: cfg.depthBiasSlopeScale,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s pipeline: %w", cfg.key, err)
	}
	return created, nil
}

// initDrawResources creates the frame uniform, its bind group, the shared primitives and
// both pipelines. Caller must hold the backend mutex.
func (b *backend) initDrawResources() error {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "mesh.wgsl",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: meshShaderSource,
		},
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}
	defer module.Release()

	var frame renderer.GPUFrameUniform
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
	}
	entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	entry.Buffer.MinBindingSize = uint64(frame.Size())

	b.bindGroupLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Frame Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{entry},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}

	b.frameBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Frame Uniform Buffer",
		Size:  uint64(frame.Size()),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create frame buffer: %w", err)
	}

	b.frameBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Bind Group",
		Layout: b.bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  b.frameBuffer,
			Offset:  0,
			Size:    wgpu.WholeSize,
		}},
	})
	if err != nil {
		return fmt.Errorf("create frame bind group: %w", err)
	}

	layout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Mesh Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.bindGroupLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	defer layout.Release()

	if b.litPipeline, err = b.createMeshPipeline(newPipelineConfig("Lit Mesh"), layout, module); err != nil {
		return err
	}
	// Flattened shadows have degenerate winding, so they are never culled.
	shadow := newPipelineConfig("Planar Shadow",
		withBlend(),
		withDepthWrite(false),
		withDepthBias(-2, -1),
		withCullMode(wgpu.CullModeNone),
	)
	if b.shadowPipeline, err = b.createMeshPipeline(shadow, layout, module); err != nil {
		return err
	}

	for g := range renderer.GeometryCount {
		vertices, indices := renderer.Primitive(g)
		if err := b.initGeometry(g, vertices, indices); err != nil {
			return err
		}
	}
	return nil
}
