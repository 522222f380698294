package sound

import (
	"errors"
	"sync"
	"time"

	"github.com/dosewatch/dosewatch/internal/logger"
)

// ErrUnavailable reports that no audio device is usable. Playback calls
// degrade to no-ops returning this indicator; the reminder pipeline keeps
// functioning without sound.
var ErrUnavailable = errors.New("audio playback unavailable")

// Backend starts playback of a sound resource. Implementations are
// selected once at startup by the capability probe and injected.
type Backend interface {
	// Start begins looping playback of the sound at path (empty path
	// plays the built-in tone) and returns a live handle.
	Start(path string) (Handle, error)
	Name() string
}

// Handle is a live playback resource. Stop halts playback and releases
// the underlying resource; it must tolerate being called more than once.
type Handle interface {
	Stop() error
}

// Engine owns the single active playback handle, process-wide. All
// mutation goes through the engine's lock: callers never need their own
// coordination, and two alarms can never sound at once.
type Engine struct {
	mu       sync.Mutex
	backend  Backend
	enabled  func() bool
	active   Handle
	watchdog *time.Timer
}

// NewEngine wires a playback backend with the sound-enabled preference.
// The preference is consulted before every play, so a toggle takes effect
// without restarting.
func NewEngine(backend Backend, enabled func() bool) *Engine {
	if enabled == nil {
		enabled = func() bool { return true }
	}
	return &Engine{backend: backend, enabled: enabled}
}

// Play starts looping playback of the sound at path, stopping any
// playback already in flight first. When the sound preference is
// disabled, Play is a silent no-op.
func (e *Engine) Play(path string) error {
	return e.play(path, 0)
}

// PlayFor is the preview path: playback auto-stops after the given bound
// even if nobody dismisses it.
func (e *Engine) PlayFor(path string, bound time.Duration) error {
	return e.play(path, bound)
}

func (e *Engine) play(path string, bound time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.enabled() {
		logger.Debug("Sound disabled, skipping playback", "path", path)
		return nil
	}

	// Stop-and-release the previous handle before starting the new one.
	e.stopLocked()

	handle, err := e.backend.Start(path)
	if err != nil {
		return err
	}
	e.active = handle

	if bound > 0 {
		// The watchdog only stops the handle it was armed for; a newer
		// playback started in the meantime is left alone.
		e.watchdog = time.AfterFunc(bound, func() { e.stopIf(handle) })
	}

	return nil
}

func (e *Engine) stopIf(handle Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == handle {
		e.stopLocked()
	}
}

// Stop halts active playback. Calling it with nothing playing is a no-op.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

// IsPlaying reports whether a playback handle is currently live.
func (e *Engine) IsPlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active != nil
}

// IsAvailable reports whether the selected backend can actually produce
// sound.
func (e *Engine) IsAvailable() bool {
	return e.backend.Name() != "silent"
}

// BackendName names the playback strategy chosen at startup.
func (e *Engine) BackendName() string {
	return e.backend.Name()
}

// stopLocked clears the shared handle reference before releasing it, so a
// re-entrant stop can never double-release. Release failures are logged,
// never returned.
func (e *Engine) stopLocked() {
	if e.watchdog != nil {
		e.watchdog.Stop()
		e.watchdog = nil
	}

	if e.active == nil {
		return
	}
	handle := e.active
	e.active = nil

	if err := handle.Stop(); err != nil {
		logger.Warn("Failed to release playback handle", "error", err)
	}
}
