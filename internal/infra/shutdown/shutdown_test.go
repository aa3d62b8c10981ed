package shutdown

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestShutdown_ReverseOrder(t *testing.T) {
	h := NewHandler(time.Second, nil)

	var order []string
	for _, name := range []string{"server", "sink", "watcher"} {
		name := name
		h.OnShutdown(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	if err := h.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	want := []string{"watcher", "sink", "server"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}

	select {
	case <-h.Done():
	default:
		t.Error("Done() should be closed after Shutdown")
	}
}

func TestShutdown_ErrorsJoined(t *testing.T) {
	h := NewHandler(time.Second, nil)
	errA := errors.New("a failed")
	ran := false

	h.OnShutdown("a", func(context.Context) error { return errA })
	h.OnShutdown("b", func(context.Context) error { return errors.New("b failed") })
	h.OnShutdown("c", func(context.Context) error { ran = true; return nil })

	err := h.Shutdown()
	if !errors.Is(err, errA) {
		t.Errorf("Shutdown() error = %v, want it to wrap errA", err)
	}
	if !ran {
		t.Error("hooks after a failure should still run")
	}
	if again := h.Shutdown(); again != err {
		t.Errorf("second Shutdown() = %v, want same error", again)
	}
}

func TestShutdown_Deadline(t *testing.T) {
	h := NewHandler(10*time.Millisecond, nil)
	h.OnShutdown("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	if err := h.Shutdown(); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Shutdown() error = %v, want deadline exceeded", err)
	}
}

func TestWait_ContextCancel(t *testing.T) {
	h := NewHandler(time.Second, nil)
	called := false
	h.OnShutdown("hook", func(context.Context) error { called = true; return nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := h.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if !called {
		t.Error("hook not called")
	}
}
