package renderer

import (
	"github.com/Carmen-Shannon/oxy-fps/engine/light"
	"github.com/Carmen-Shannon/oxy-fps/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// shadowLift raises projected shadows above the receiving ground to avoid z-fighting.
	shadowLift float32 = 0.02
	// defaultAmbient is the ambient intensity used when the scene has no hemispheric light.
	defaultAmbient float32 = 0.25
)

// clipDepthFix remaps OpenGL clip depth [-w, w] to the WebGPU range [0, w].
var clipDepthFix = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// DrawList is everything a frame draws, grouped by primitive so each group is one
// instanced draw call.
type DrawList struct {
	// Frame is the per-frame uniform: camera and lighting.
	Frame GPUFrameUniform
	// Lit holds the shaded meshes per primitive.
	Lit [GeometryCount][]GPUInstance
	// Shadows holds caster silhouettes flattened onto the ground, drawn blended after Lit.
	Shadows [GeometryCount][]GPUInstance
}

// Instances returns the total number of lit instances.
//
// Returns:
//   - int: the number of lit instances across all primitives
func (d *DrawList) Instances() int {
	n := 0
	for _, batch := range d.Lit {
		n += len(batch)
	}
	return n
}

// ShadowInstances returns the total number of projected shadow instances.
//
// Returns:
//   - int: the number of shadow instances across all primitives
func (d *DrawList) ShadowInstances() int {
	n := 0
	for _, batch := range d.Shadows {
		n += len(batch)
	}
	return n
}

// BuildDrawList collects the camera, lights and enabled meshes of sc into a DrawList.
// A scene without a camera yields an empty list, which renders as a cleared frame.
//
// Parameters:
//   - sc: the scene to draw
//
// Returns:
//   - DrawList: the frame's draw data
func BuildDrawList(sc scene.Context) DrawList {
	var dl DrawList
	if sc == nil || !sc.Alive() {
		return dl
	}
	cam := sc.Camera()
	if cam == nil {
		return dl
	}

	dl.Frame.ViewProj = mat4Array(clipDepthFix.Mul4(cam.ViewProjectionMatrix()))
	if ctrl := cam.Controller(); ctrl != nil {
		dl.Frame.CameraPosition = ctrl.Position()
	}
	sun := applyLights(&dl.Frame, sc.Lights())

	for _, m := range sc.Meshes() {
		if !m.Enabled() || !m.HasGeometry() {
			continue
		}
		g := GeometryFor(m.Kind())
		dl.Lit[g] = append(dl.Lit[g], litInstance(m))
	}

	addShadows(&dl, sc, sun)
	return dl
}

// applyLights fills the lighting part of the frame uniform and returns the sun,
// the first enabled directional light.
func applyLights(f *GPUFrameUniform, lights []light.Light) light.Light {
	var sun, hemi light.Light
	for _, l := range lights {
		if !l.Enabled() {
			continue
		}
		switch l.Type() {
		case light.LightTypeDirectional:
			if sun == nil {
				sun = l
			}
		case light.LightTypeHemispheric:
			if hemi == nil {
				hemi = l
			}
		}
	}

	// Without a sun the direction stays a unit vector so the shader can normalize it.
	f.SunDirection = [3]float32{0, -1, 0}
	f.AmbientIntensity = defaultAmbient
	f.SkyColor = [3]float32{1, 1, 1}
	f.GroundColor = [3]float32{0.4, 0.4, 0.4}
	if hemi != nil {
		f.AmbientIntensity = hemi.Intensity()
		f.SkyColor = hemi.Color()
		f.GroundColor = hemi.GroundColor()
	}
	if sun != nil {
		f.SunDirection = sun.Direction()
		f.SunIntensity = sun.Intensity()
		f.SunColor = sun.Color()
	}
	return sun
}

func modelMatrix(m scene.Mesh) mgl32.Mat4 {
	size := m.Size()
	scale := size
	switch m.Kind() {
	case scene.MeshSphere:
		scale = mgl32.Vec3{size.X(), size.X(), size.X()}
	case scene.MeshGround:
		scale = mgl32.Vec3{size.X(), 1, size.Z()}
	}
	p := m.Position()
	return mgl32.Translate3D(p.X(), p.Y(), p.Z()).
		Mul4(m.Rotation().Normalize().Mat4()).
		Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

func litInstance(m scene.Mesh) GPUInstance {
	inst := GPUInstance{
		Model:  mat4Array(modelMatrix(m)),
		Color:  [4]float32{0.7, 0.7, 0.7, 1},
		Params: [4]float32{1, 1, 0, 0},
	}
	if mat := m.Material(); mat != nil {
		d := mat.DiffuseColor()
		s := mat.SpecularColor()
		inst.Color = [4]float32{d[0], d[1], d[2], mat.Alpha()}
		inst.Params[1] = mat.SpecularPower()
		inst.Params[2] = (s[0] + s[1] + s[2]) / 3
	}
	return inst
}

// addShadows flattens every shadow caster onto the ground plane along the sun direction.
// Nothing is added without a sun, a shadow generator, or a shadow-receiving ground.
func addShadows(dl *DrawList, sc scene.Context, sun light.Light) {
	gen := sc.Shadows()
	ground := sc.Ground()
	if sun == nil || gen == nil || ground == nil || !ground.ReceiveShadows() {
		return
	}
	dir := sun.Direction()
	if dir.Y() > -1e-3 {
		return
	}

	h := ground.Position().Y() + shadowLift
	project := planarShadow(dir, h)
	color := [4]float32{0, 0, 0, 1 - gen.Darkness()}

	for _, c := range gen.Casters() {
		m, ok := c.(scene.Mesh)
		if !ok || !m.Enabled() || !m.HasGeometry() || m.Position().Y() < h {
			continue
		}
		g := GeometryFor(m.Kind())
		dl.Shadows[g] = append(dl.Shadows[g], GPUInstance{
			Model: mat4Array(project.Mul4(modelMatrix(m))),
			Color: color,
		})
	}
}

// planarShadow returns the matrix projecting points onto the plane y = h along dir.
func planarShadow(dir mgl32.Vec3, h float32) mgl32.Mat4 {
	kx := dir.X() / dir.Y()
	kz := dir.Z() / dir.Y()
	return mgl32.Mat4{
		1, 0, 0, 0,
		-kx, 0, -kz, 0,
		0, 0, 1, 0,
		kx * h, h, kz * h, 1,
	}
}
