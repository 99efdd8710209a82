package lifecycle_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/easel/pkg/lifecycle"
)

func TestNotReadyBeforeStartup(t *testing.T) {
	lc := lifecycle.New()
	if lc.Ready() {
		t.Error("should not be ready before WaitForStartup")
	}
}

func TestReadyAfterStartup(t *testing.T) {
	lc := lifecycle.New()
	if err := lc.WaitForStartup(); err != nil {
		t.Fatalf("WaitForStartup() error = %v", err)
	}

	if !lc.Ready() {
		t.Error("should be ready after WaitForStartup")
	}
}

func TestStartupHooksExecute(t *testing.T) {
	lc := lifecycle.New()

	var count atomic.Int32
	for range 3 {
		lc.OnStartup(func() error {
			count.Add(1)
			return nil
		})
	}

	if err := lc.WaitForStartup(); err != nil {
		t.Fatalf("WaitForStartup() error = %v", err)
	}

	if got := count.Load(); got != 3 {
		t.Errorf("startup hooks: got %d, want 3", got)
	}
}

func TestFailedStartupHookBlocksReadiness(t *testing.T) {
	lc := lifecycle.New()
	errPing := errors.New("ping failed")

	lc.OnStartup(func() error { return nil })
	lc.OnStartup(func() error { return errPing })

	err := lc.WaitForStartup()
	if !errors.Is(err, errPing) {
		t.Fatalf("WaitForStartup() error = %v, want %v", err, errPing)
	}
	if lc.Ready() {
		t.Error("should not be ready when a startup hook fails")
	}
	if !errors.Is(lc.StartupErr(), errPing) {
		t.Errorf("StartupErr() = %v, want %v", lc.StartupErr(), errPing)
	}
}

func TestShutdownHooksExecute(t *testing.T) {
	lc := lifecycle.New()

	var cleaned atomic.Bool
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		cleaned.Store(true)
	})

	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	if !cleaned.Load() {
		t.Error("shutdown hook did not run")
	}
}

func TestShutdownClearsReadiness(t *testing.T) {
	lc := lifecycle.New()
	lc.WaitForStartup()

	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if lc.Ready() {
		t.Error("should not be ready after shutdown")
	}
}

func TestShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()

	block := make(chan struct{})
	defer close(block)

	lc.OnShutdown(func() {
		<-block
	})

	if err := lc.Shutdown(20 * time.Millisecond); err == nil {
		t.Error("expected timeout error")
	}
}
