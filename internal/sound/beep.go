package sound

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"

	"github.com/dosewatch/dosewatch/internal/logger"
)

const sampleRate = beep.SampleRate(44100)

// defaultToneHz is the built-in alarm tone used when no ringtone file is
// configured.
const defaultToneHz = 880

// Detect probes the audio device once at startup. On success it returns
// the speaker-backed backend; on failure the caller falls back to the
// silent backend and the app runs without sound.
func Detect() (Backend, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to initialize audio device: %w", err)
	}
	return &speakerBackend{}, nil
}

type speakerBackend struct{}

func (b *speakerBackend) Name() string {
	return "speaker"
}

func (b *speakerBackend) Start(path string) (Handle, error) {
	if path == "" {
		tone, err := generators.SineTone(sampleRate, defaultToneHz)
		if err != nil {
			return nil, fmt.Errorf("failed to generate alarm tone: %w", err)
		}
		speaker.Play(tone)
		return &speakerHandle{}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ringtone %s: %w", path, err)
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode ringtone %s: %w", path, err)
	}

	// Loop until stopped, resampling to the speaker rate when the file
	// was recorded at a different one.
	looped := beep.Loop(-1, streamer)
	if format.SampleRate != sampleRate {
		speaker.Play(beep.Resample(4, format.SampleRate, sampleRate, looped))
	} else {
		speaker.Play(looped)
	}

	return &speakerHandle{closer: streamer}, nil
}

type speakerHandle struct {
	closer io.Closer
	once   sync.Once
}

func (h *speakerHandle) Stop() error {
	var err error
	h.once.Do(func() {
		speaker.Clear()
		if h.closer != nil {
			err = h.closer.Close()
		}
	})
	return err
}

// silentBackend is installed when no audio device is available. Every
// play degrades to a no-op reporting failure, never a crash.
type silentBackend struct{}

func NewSilentBackend() Backend {
	return &silentBackend{}
}

func (b *silentBackend) Name() string {
	return "silent"
}

func (b *silentBackend) Start(path string) (Handle, error) {
	return nil, ErrUnavailable
}

// SelectBackend runs the capability probe and picks the playback
// strategy for this process. Called once at startup; the result is
// injected wherever playback is needed.
func SelectBackend() Backend {
	backend, err := Detect()
	if err != nil {
		logger.Warn("No audio device, alarms will be silent", "error", err)
		return NewSilentBackend()
	}
	return backend
}
