package source

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/itohio/wavescope/pkg/config"
)

// Sine generates a finite sine tone. It stands in for a WAV file when none
// is available.
type Sine struct {
	cfg *config.MockConfig

	mu     sync.Mutex
	total  int64 // frames to generate
	pos    int64
	closed bool
}

// NewSine creates a sine source from the mock configuration.
func NewSine(cfg *config.MockConfig) *Sine {
	if cfg == nil {
		cfg = &config.MockConfig{
			Frequency:  440,
			Amplitude:  0.8,
			SampleRate: 48000,
			Channels:   1,
			Duration:   100 * time.Millisecond,
		}
	}

	return &Sine{
		cfg:   cfg,
		total: int64(cfg.Duration.Seconds() * float64(cfg.SampleRate)),
	}
}

// ChannelCount returns the number of interleaved channels.
func (s *Sine) ChannelCount() int { return s.cfg.Channels }

// SampleRate returns the frame rate in Hz.
func (s *Sine) SampleRate() int { return s.cfg.SampleRate }

// Frames returns the total number of frames the source generates.
func (s *Sine) Frames() int64 { return s.total }

// Pull implements Source. Every channel carries the same tone.
func (s *Sine) Pull(dst []float32, frames int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}

	channels := s.cfg.Channels
	frames = clampFrames(frames, len(dst), channels)
	if frames == 0 {
		return 0, nil
	}
	if s.pos >= s.total {
		return 0, io.EOF
	}
	if remaining := s.total - s.pos; int64(frames) > remaining {
		frames = int(remaining)
	}

	w := 2 * math.Pi * s.cfg.Frequency / float64(s.cfg.SampleRate)
	for i := range frames {
		v := float32(s.cfg.Amplitude * math.Sin(w*float64(s.pos+int64(i))))
		for c := range channels {
			dst[i*channels+c] = v
		}
	}
	s.pos += int64(frames)

	return frames, nil
}

// Close stops the source.
func (s *Sine) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
