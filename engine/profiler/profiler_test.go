package profiler

import (
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-fps/engine/event"
)

func TestProfilerSamplesOncePerInterval(t *testing.T) {
	clock := event.NewManualClock(time.Unix(0, 0))
	var lines []string
	p := NewProfiler(
		WithClock(clock.Now),
		WithLogger(func(format string, args ...any) { lines = append(lines, format) }),
	)

	for i := 0; i < 59; i++ {
		clock.Advance(time.Second / 60)
		if p.Tick() {
			t.Fatalf("sampled early at frame %d", i)
		}
	}
	clock.Advance(time.Second / 60)
	if !p.Tick() {
		t.Fatal("expected a sample after one second")
	}

	stats, ok := p.Last()
	if !ok {
		t.Fatal("Last reported no sample")
	}
	if stats.FramesInSpan != 60 {
		t.Errorf("expected 60 frames, got %d", stats.FramesInSpan)
	}
	if stats.FPS < 59 || stats.FPS > 61 {
		t.Errorf("expected ~60 fps, got %.2f", stats.FPS)
	}
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "[Profiler]") {
		t.Errorf("unexpected log output: %v", lines)
	}
}

func TestProfilerCustomInterval(t *testing.T) {
	clock := event.NewManualClock(time.Unix(0, 0))
	p := NewProfiler(WithClock(clock.Now), WithInterval(100*time.Millisecond), WithLogger(func(string, ...any) {}))

	if _, ok := p.Last(); ok {
		t.Fatal("no sample expected before the first interval")
	}
	clock.Advance(100 * time.Millisecond)
	if !p.Tick() {
		t.Fatal("expected a sample at the interval boundary")
	}
}
