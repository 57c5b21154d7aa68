package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-fps/engine/camera"
	"github.com/Carmen-Shannon/oxy-fps/engine/light"
	"github.com/Carmen-Shannon/oxy-fps/engine/material"
	"github.com/Carmen-Shannon/oxy-fps/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

type namedCaster string

func (c namedCaster) Name() string { return string(c) }

type drawScene struct {
	sc     scene.Context
	cam    camera.Camera
	sun    light.Light
	ground scene.Mesh
	box    scene.Mesh
	ball   scene.Mesh
}

// newDrawScene builds a ground, a red box, a ball, a disabled ball and a box sunk below the ground,
// with every non-ground mesh registered as a shadow caster.
func newDrawScene(t *testing.T) drawScene {
	t.Helper()
	sc := scene.NewContext()
	t.Cleanup(sc.Dispose)

	cam := camera.NewCamera(
		camera.WithAspect(16.0/9.0),
		camera.WithController(camera.NewCameraController(camera.WithPosition(0, 2, -10))),
	)
	sc.SetCamera(cam)

	sun := light.NewLight(light.LightTypeDirectional, light.WithDirection(-1, -2, -1), light.WithIntensity(0.7))
	hemi := light.NewLight(light.LightTypeHemispheric,
		light.WithIntensity(0.4),
		light.WithColor(0.9, 0.9, 1),
		light.WithGroundColor(0.2, 0.2, 0.2),
	)
	sc.AddLight(hemi)
	sc.AddLight(sun)

	gen, err := light.NewShadowGenerator(sun, light.WithDarkness(0.4))
	if err != nil {
		t.Fatalf("NewShadowGenerator: %v", err)
	}
	sc.SetShadows(gen)

	ground := scene.NewMesh(scene.MeshGround, scene.WithGround(), scene.WithSize(50, 0, 50), scene.WithReceiveShadows(true))
	if err := sc.SetGround(ground); err != nil {
		t.Fatalf("SetGround: %v", err)
	}

	red := material.NewMaterial(
		material.WithDiffuseColor(1, 0, 0),
		material.WithSpecularColor(0.3, 0.3, 0.3),
		material.WithSpecularPower(32),
		material.WithAlpha(0.8),
	)
	box := scene.NewMesh(scene.MeshBox, scene.WithPosition(0, 3, 0), scene.WithMaterial(red))
	ball := scene.NewMesh(scene.MeshSphere, scene.WithPosition(2, 1, 0), scene.WithSize(2, 2, 2))
	hidden := scene.NewMesh(scene.MeshSphere, scene.WithPosition(-2, 1, 0))
	hidden.SetEnabled(false)
	sunk := scene.NewMesh(scene.MeshBox, scene.WithPosition(0, -1, 0))

	for _, m := range []scene.Mesh{box, ball, hidden, sunk} {
		sc.AddMesh(m)
		gen.AddCaster(m)
	}
	gen.AddCaster(namedCaster("not a mesh"))

	return drawScene{sc: sc, cam: cam, sun: sun, ground: ground, box: box, ball: ball}
}

func TestBuildDrawListBatchesEnabledMeshes(t *testing.T) {
	ds := newDrawScene(t)
	dl := BuildDrawList(ds.sc)

	if n := len(dl.Lit[GeometryPlane]); n != 1 {
		t.Errorf("expected 1 plane, got %d", n)
	}
	if n := len(dl.Lit[GeometryCube]); n != 2 {
		t.Errorf("expected 2 cubes, got %d", n)
	}
	if n := len(dl.Lit[GeometrySphere]); n != 1 {
		t.Errorf("disabled sphere must not be drawn, got %d spheres", n)
	}
	if dl.Instances() != 4 {
		t.Errorf("expected 4 lit instances, got %d", dl.Instances())
	}

	box := dl.Lit[GeometryCube][0]
	if box.Color != [4]float32{1, 0, 0, 0.8} {
		t.Errorf("box color not taken from material: %v", box.Color)
	}
	if box.Params[0] != 1 || box.Params[1] != 32 || mgl32.Abs(box.Params[2]-0.3) > 1e-6 {
		t.Errorf("box params: %v", box.Params)
	}
}

func TestBuildDrawListTransforms(t *testing.T) {
	ds := newDrawScene(t)
	dl := BuildDrawList(ds.sc)

	want := clipDepthFix.Mul4(ds.cam.ViewProjectionMatrix())
	if mgl32.Mat4(dl.Frame.ViewProj) != want {
		t.Errorf("view projection does not follow the camera")
	}
	if dl.Frame.CameraPosition != [3]float32{0, 2, -10} {
		t.Errorf("camera position: %v", dl.Frame.CameraPosition)
	}

	// Diameter 2 at (2, 1, 0): the unit sphere's +X surface point lands at x = 3.
	ball := mgl32.Mat4(dl.Lit[GeometrySphere][0].Model)
	p := ball.Mul4x1(mgl32.Vec4{0.5, 0, 0, 1})
	if !p.Vec3().ApproxEqualThreshold(mgl32.Vec3{3, 1, 0}, 1e-5) {
		t.Errorf("sphere surface point at %v", p)
	}
}

func TestBuildDrawListLighting(t *testing.T) {
	ds := newDrawScene(t)
	dl := BuildDrawList(ds.sc)

	dir := ds.sun.Direction()
	if dl.Frame.SunDirection != [3]float32(dir) || dl.Frame.SunIntensity != 0.7 {
		t.Errorf("sun not applied: dir %v intensity %f", dl.Frame.SunDirection, dl.Frame.SunIntensity)
	}
	if dl.Frame.AmbientIntensity != 0.4 || dl.Frame.GroundColor != [3]float32{0.2, 0.2, 0.2} {
		t.Errorf("hemispheric light not applied: %f %v", dl.Frame.AmbientIntensity, dl.Frame.GroundColor)
	}

	ds.sun.SetEnabled(false)
	dl = BuildDrawList(ds.sc)
	if dl.Frame.SunIntensity != 0 || dl.Frame.SunDirection != [3]float32{0, -1, 0} {
		t.Errorf("disabled sun still lights the frame: %v %f", dl.Frame.SunDirection, dl.Frame.SunIntensity)
	}
}

func TestBuildDrawListShadows(t *testing.T) {
	t.Run("casters above ground", func(t *testing.T) {
		ds := newDrawScene(t)
		dl := BuildDrawList(ds.sc)
		if len(dl.Shadows[GeometryCube]) != 1 || len(dl.Shadows[GeometrySphere]) != 1 {
			t.Fatalf("expected one cube and one sphere shadow, got %d and %d",
				len(dl.Shadows[GeometryCube]), len(dl.Shadows[GeometrySphere]))
		}
		s := dl.Shadows[GeometryCube][0]
		if s.Color != [4]float32{0, 0, 0, 0.6} {
			t.Errorf("shadow color: %v", s.Color)
		}
		if s.Params[0] != 0 {
			t.Error("shadows must be drawn flat")
		}
		for _, corner := range []mgl32.Vec4{{0.5, 0.5, 0.5, 1}, {-0.5, -0.5, 0.5, 1}} {
			p := mgl32.Mat4(s.Model).Mul4x1(corner)
			if mgl32.Abs(p.Y()-shadowLift) > 1e-5 {
				t.Errorf("shadow vertex at y=%f, expected %f", p.Y(), shadowLift)
			}
		}
	})

	t.Run("ground not receiving", func(t *testing.T) {
		ds := newDrawScene(t)
		ds.ground.SetReceiveShadows(false)
		if dl := BuildDrawList(ds.sc); dl.ShadowInstances() != 0 {
			t.Errorf("expected no shadows, got %d", dl.ShadowInstances())
		}
	})

	t.Run("sun disabled", func(t *testing.T) {
		ds := newDrawScene(t)
		ds.sun.SetEnabled(false)
		if dl := BuildDrawList(ds.sc); dl.ShadowInstances() != 0 {
			t.Errorf("expected no shadows, got %d", dl.ShadowInstances())
		}
	})

	t.Run("horizontal sun", func(t *testing.T) {
		ds := newDrawScene(t)
		ds.sun.SetDirection(mgl32.Vec3{1, 0, 0})
		if dl := BuildDrawList(ds.sc); dl.ShadowInstances() != 0 {
			t.Errorf("expected no shadows, got %d", dl.ShadowInstances())
		}
	})
}

func TestPlanarShadowProjectsAlongLight(t *testing.T) {
	dir := mgl32.Vec3{1, -1, 0}.Normalize()
	m := planarShadow(dir, 0.5)
	p := m.Mul4x1(mgl32.Vec4{2, 5, 3, 1})
	// Travelling 4.5 down along (1, -1, 0) also moves 4.5 along +X.
	if !p.Vec3().ApproxEqualThreshold(mgl32.Vec3{6.5, 0.5, 3}, 1e-5) {
		t.Fatalf("projected to %v", p)
	}
}

func TestClipDepthFixMapsToZeroOne(t *testing.T) {
	proj := clipDepthFix.Mul4(mgl32.Perspective(0.8, 1, 0.1, 100))
	near := proj.Mul4x1(mgl32.Vec4{0, 0, -0.1, 1})
	far := proj.Mul4x1(mgl32.Vec4{0, 0, -100, 1})
	if z := near.Z() / near.W(); mgl32.Abs(z) > 1e-4 {
		t.Errorf("near plane depth %f, expected 0", z)
	}
	if z := far.Z() / far.W(); mgl32.Abs(z-1) > 1e-4 {
		t.Errorf("far plane depth %f, expected 1", z)
	}
}

func TestBuildDrawListWithoutCamera(t *testing.T) {
	sc := scene.NewContext()
	defer sc.Dispose()
	sc.AddMesh(scene.NewMesh(scene.MeshBox))

	if dl := BuildDrawList(sc); dl.Instances() != 0 {
		t.Errorf("a scene without a camera draws nothing, got %d", dl.Instances())
	}
	if dl := BuildDrawList(nil); dl.Instances() != 0 {
		t.Error("nil scene must yield an empty list")
	}
}

func TestHeadlessReportsLastFrame(t *testing.T) {
	ds := newDrawScene(t)
	r := NewHeadless(800, 600)
	if err := r.Render(ds.sc); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := r.LastFrame(); got != (FrameStats{Instances: 4, Shadows: 2}) {
		t.Fatalf("unexpected frame stats %+v", got)
	}
}
