package common

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSafeNormalizeZero(t *testing.T) {
	got := SafeNormalize(mgl32.Vec3{})
	if got != (mgl32.Vec3{}) {
		t.Fatalf("expected zero vector, got %v", got)
	}
}

func TestSafeNormalizeUnit(t *testing.T) {
	got := SafeNormalize(mgl32.Vec3{0, -4, 0})
	if !got.ApproxEqual(mgl32.Vec3{0, -1, 0}) {
		t.Fatalf("expected (0,-1,0), got %v", got)
	}
}

func TestRandRangeBounds(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		v := RandRange(r, 8, 20)
		if v < 8 || v >= 20 {
			t.Fatalf("value %f outside [8, 20)", v)
		}
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce(0, 0, 25, 3); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}
	if got := Coalesce("", ""); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
