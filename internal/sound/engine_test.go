package sound

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeHandle struct {
	mu      sync.Mutex
	stopped bool
	stopErr error
	stopCnt int
}

func (h *fakeHandle) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true
	h.stopCnt++
	return h.stopErr
}

func (h *fakeHandle) isStopped() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}

type fakeBackend struct {
	mu       sync.Mutex
	handles  []*fakeHandle
	startErr error
}

func (b *fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) Start(path string) (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.startErr != nil {
		return nil, b.startErr
	}
	h := &fakeHandle{}
	b.handles = append(b.handles, h)
	return h, nil
}

func TestEngine_PlayStop(t *testing.T) {
	backend := &fakeBackend{}
	engine := NewEngine(backend, nil)

	if err := engine.Play(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !engine.IsPlaying() {
		t.Error("engine should report playing")
	}

	engine.Stop()
	if engine.IsPlaying() {
		t.Error("engine should report stopped")
	}
	if !backend.handles[0].isStopped() {
		t.Error("handle was not released on stop")
	}
}

func TestEngine_MutualExclusion(t *testing.T) {
	backend := &fakeBackend{}
	engine := NewEngine(backend, nil)

	if err := engine.Play("a.wav"); err != nil {
		t.Fatal(err)
	}
	if err := engine.Play("b.wav"); err != nil {
		t.Fatal(err)
	}

	// Exactly one live handle: A was stopped and released before B started.
	if len(backend.handles) != 2 {
		t.Fatalf("expected 2 handles created, got %d", len(backend.handles))
	}
	if !backend.handles[0].isStopped() {
		t.Error("first handle must be released before the second starts")
	}
	if backend.handles[1].isStopped() {
		t.Error("second handle should still be live")
	}
	if !engine.IsPlaying() {
		t.Error("engine should report playing")
	}
}

func TestEngine_StopIdempotent(t *testing.T) {
	backend := &fakeBackend{}
	engine := NewEngine(backend, nil)

	// Stop with nothing playing is a no-op, not an error.
	engine.Stop()
	if engine.IsPlaying() {
		t.Error("IsPlaying should be false")
	}

	_ = engine.Play("")
	engine.Stop()
	engine.Stop()

	if backend.handles[0].stopCnt != 1 {
		t.Errorf("handle stopped %d times, want 1", backend.handles[0].stopCnt)
	}
}

func TestEngine_ReleaseFailureSwallowed(t *testing.T) {
	backend := &fakeBackend{}
	engine := NewEngine(backend, nil)

	_ = engine.Play("")
	backend.handles[0].stopErr = errors.New("device wedged")

	// Release failure is logged, never returned; the shared reference is
	// cleared regardless.
	engine.Stop()
	if engine.IsPlaying() {
		t.Error("engine must report stopped even when release fails")
	}
}

func TestEngine_DisabledPreference(t *testing.T) {
	backend := &fakeBackend{}
	engine := NewEngine(backend, func() bool { return false })

	if err := engine.Play(""); err != nil {
		t.Fatalf("disabled play should be a silent no-op, got %v", err)
	}
	if engine.IsPlaying() {
		t.Error("nothing should be playing when sound is disabled")
	}
	if len(backend.handles) != 0 {
		t.Error("backend should not have been touched")
	}
}

func TestEngine_BackendUnavailable(t *testing.T) {
	backend := &fakeBackend{startErr: ErrUnavailable}
	engine := NewEngine(backend, nil)

	if err := engine.Play(""); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
	if engine.IsPlaying() {
		t.Error("failed play must leave no active handle")
	}
}

func TestEngine_Watchdog(t *testing.T) {
	backend := &fakeBackend{}
	engine := NewEngine(backend, nil)

	if err := engine.PlayFor("", 20*time.Millisecond); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for engine.IsPlaying() {
		if time.Now().After(deadline) {
			t.Fatal("watchdog did not stop playback")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if !backend.handles[0].isStopped() {
		t.Error("watchdog stop must release the handle")
	}
}

func TestEngine_WatchdogDoesNotKillNewerPlayback(t *testing.T) {
	backend := &fakeBackend{}
	engine := NewEngine(backend, nil)

	_ = engine.PlayFor("a.wav", 20*time.Millisecond)
	_ = engine.Play("b.wav")

	time.Sleep(100 * time.Millisecond)

	if !engine.IsPlaying() {
		t.Error("stale watchdog stopped a newer playback")
	}
	if backend.handles[1].isStopped() {
		t.Error("second handle should still be live")
	}
}
