package physics

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/Carmen-Shannon/oxy-fps/engine/task"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"
)

// backend is the implementation of the Backend interface.
type backend struct {
	runner     task.Runner
	loader     func() error
	iterations int
	maxStep    float32
	sleepSpeed float32
}

var _ Backend = &backend{}

// NewBackend creates the in-process physics backend.
//
// Parameters:
//   - options: functional options for solver tuning and load hooks
//
// Returns:
//   - Backend: the new backend
func NewBackend(options ...BackendBuilderOption) Backend {
	b := &backend{
		iterations: 4,
		maxStep:    1.0 / 30.0,
		sleepSpeed: 0.05,
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

func (b *backend) Initialize(ctx context.Context, gravity mgl32.Vec3) (World, error) {
	for _, c := range gravity {
		if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
			return nil, fmt.Errorf("%w: gravity %v is not finite", ErrBackendUnavailable, gravity)
		}
	}

	load := func() (World, error) {
		if b.loader != nil {
			if err := b.loader(); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
			}
		}
		return b.newWorld(gravity), nil
	}

	var (
		w   World
		err error
	)
	if b.runner != nil {
		w, err = task.Await(ctx, b.runner, load)
	} else {
		if err = ctx.Err(); err == nil {
			w, err = load()
		}
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[Physics] world initialized (gravity %v, %d solver iterations)", gravity, b.iterations)
	return w, nil
}

func (b *backend) newWorld(gravity mgl32.Vec3) *world {
	return &world{
		ecs:        donburi.NewWorld(),
		gravity:    gravity,
		iterations: b.iterations,
		maxStep:    b.maxStep,
		sleepSpeed: b.sleepSpeed,
	}
}
