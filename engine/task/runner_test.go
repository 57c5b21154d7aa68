package task

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAwaitReturnsValue(t *testing.T) {
	r := NewRunner(WithWorkers(1))
	defer r.Close()

	got, err := Await(context.Background(), r, func() (int, error) { return 42, nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestAwaitReturnsError(t *testing.T) {
	r := NewRunner()
	defer r.Close()

	want := errors.New("load failed")
	_, err := Await(context.Background(), r, func() (string, error) { return "", want })
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestAwaitRecoversPanic(t *testing.T) {
	r := NewRunner()
	defer r.Close()

	_, err := Await(context.Background(), r, func() (int, error) { panic("boom") })
	if err == nil {
		t.Fatalf("expected an error from a panicking task")
	}
}

func TestAwaitHonoursCancellation(t *testing.T) {
	r := NewRunner()
	defer r.Close()

	release := make(chan struct{})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := Await(ctx, r, func() (int, error) {
		<-release
		return 1, nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestAwaitAlreadyCancelled(t *testing.T) {
	r := NewRunner()
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	_, err := Await(ctx, r, func() (int, error) { ran = true; return 0, nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if ran {
		t.Fatalf("task should not run when ctx is already cancelled")
	}
}

func TestSubmitAfterClose(t *testing.T) {
	r := NewRunner()
	r.Close()

	got, err := Await(context.Background(), r, func() (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Fatalf("expected 7, nil after Close; got %d, %v", got, err)
	}
}
