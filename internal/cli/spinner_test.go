package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinner(context.Background(), "working")
	s.Start()
	time.Sleep(10 * time.Millisecond)
	s.Stop()

	// Stop again must not panic or block.
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := newSpinner(context.Background(), "idle")

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() blocked on a spinner that was never started")
	}
}

func TestSpinnerSetMessageWidens(t *testing.T) {
	s := newSpinner(context.Background(), "short")
	s.SetMessage("a considerably longer message")
	if s.width != len("a considerably longer message") {
		t.Errorf("width = %d, want %d", s.width, len("a considerably longer message"))
	}

	s.SetMessage("tiny")
	if s.width != len("a considerably longer message") {
		t.Error("width must not shrink")
	}
}

func TestSpinnerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, "working")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop on context cancellation")
	}
}
