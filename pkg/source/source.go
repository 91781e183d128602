package source

import "errors"

var (
	// ErrClosed is returned when pulling from a closed source.
	ErrClosed = errors.New("source closed")
	// ErrUnsupportedFormat is returned for audio the decoder cannot normalize.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// Source delivers normalized interleaved float samples in frames.
type Source interface {
	// Pull fills dst with up to frames frames and returns the number of
	// frames delivered. Fewer frames than requested are returned at the
	// end of the stream. Once exhausted it returns 0 and io.EOF.
	Pull(dst []float32, frames int) (int, error)
	ChannelCount() int
	SampleRate() int
	Close() error
}

var (
	_ Source = (*WavFile)(nil)
	_ Source = (*Sine)(nil)
)

// clampFrames limits a frame request to what fits in n interleaved samples.
func clampFrames(frames, n, channels int) int {
	if channels <= 0 || frames <= 0 {
		return 0
	}
	if limit := n / channels; frames > limit {
		return limit
	}
	return frames
}
