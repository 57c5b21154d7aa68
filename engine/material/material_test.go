package material

import "testing"

func TestNewMaterialDefaults(t *testing.T) {
	m := NewMaterial(WithName("envGroundMat"), WithDiffuseColor(0.5, 0.55, 0.5), WithSpecularColor(0.1, 0.1, 0.1))
	if m.Name() != "envGroundMat" {
		t.Fatalf("unexpected name %q", m.Name())
	}
	if m.Alpha() != 1 {
		t.Fatalf("expected opaque default, got %f", m.Alpha())
	}
	if m.DiffuseColor() != [3]float32{0.5, 0.55, 0.5} {
		t.Fatalf("unexpected diffuse %v", m.DiffuseColor())
	}
}

func TestAlphaClamped(t *testing.T) {
	m := NewMaterial(WithAlpha(3))
	if m.Alpha() != 1 {
		t.Fatalf("expected alpha clamped to 1, got %f", m.Alpha())
	}
	m.SetAlpha(-2)
	if m.Alpha() != 0 {
		t.Fatalf("expected alpha clamped to 0, got %f", m.Alpha())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	base := NewMaterial(WithName("sphereMat"), WithDiffuseColor(0.9, 0.4, 0.4), WithSpecularPower(32))
	cp := base.Clone("sphereMat2")
	cp.SetDiffuseColor([3]float32{0, 0, 0})

	if base.DiffuseColor() != [3]float32{0.9, 0.4, 0.4} {
		t.Fatalf("clone mutated original: %v", base.DiffuseColor())
	}
	if cp.Name() != "sphereMat2" || cp.SpecularPower() != 32 {
		t.Fatalf("clone lost fields: %q %f", cp.Name(), cp.SpecularPower())
	}
}
