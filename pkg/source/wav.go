package source

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavFormatPCM is the RIFF format tag for integer PCM.
const wavFormatPCM = 1

// WavFile reads integer PCM from a WAV stream and normalizes it to [-1, 1).
type WavFile struct {
	mu sync.Mutex

	closer io.Closer
	dec    *wav.Decoder
	buf    *audio.IntBuffer

	channels int
	rate     int
	bitDepth int
	frames   int64 // total frames in the data chunk
	pos      int64 // frames delivered so far
	closed   bool
}

// Open opens a WAV file for reading.
func Open(path string) (*WavFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wav file: %w", err)
	}

	w, err := New(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// New reads the WAV headers from r and positions it at the PCM data.
// Close does not close r.
func New(r io.ReadSeeker) (*WavFile, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: invalid WAV file", ErrUnsupportedFormat)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("failed to read wav PCM data: %w", err)
	}

	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: wav format tag %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits per sample", ErrUnsupportedFormat, bitDepth)
	}

	channels := int(dec.NumChans)
	frameSize := int64(channels) * int64(bitDepth) / 8

	return &WavFile{
		dec:      dec,
		buf:      &audio.IntBuffer{Format: dec.Format(), SourceBitDepth: bitDepth},
		channels: channels,
		rate:     int(dec.SampleRate),
		bitDepth: bitDepth,
		frames:   dec.PCMLen() / frameSize,
	}, nil
}

// ChannelCount returns the number of interleaved channels.
func (w *WavFile) ChannelCount() int { return w.channels }

// SampleRate returns the frame rate in Hz.
func (w *WavFile) SampleRate() int { return w.rate }

// BitDepth returns the bits per sample of the source PCM.
func (w *WavFile) BitDepth() int { return w.bitDepth }

// Frames returns the total number of frames in the file.
func (w *WavFile) Frames() int64 { return w.frames }

// Pull implements Source.
func (w *WavFile) Pull(dst []float32, frames int) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, ErrClosed
	}

	frames = clampFrames(frames, len(dst), w.channels)
	if frames == 0 {
		return 0, nil
	}
	if w.pos >= w.frames {
		return 0, io.EOF
	}
	if remaining := w.frames - w.pos; int64(frames) > remaining {
		frames = int(remaining)
	}

	want := frames * w.channels
	if cap(w.buf.Data) < want {
		w.buf.Data = make([]int, want)
	}

	// The decoder may return short reads; keep going until the request is
	// filled or the data chunk ends.
	got := 0
	for got < want {
		w.buf.Data = w.buf.Data[:want-got]
		n, err := w.dec.PCMBuffer(w.buf)
		w.normalize(dst[got:], w.buf.Data[:n])
		got += n
		if err != nil {
			return got / w.channels, fmt.Errorf("failed to decode wav PCM: %w", err)
		}
		if n == 0 {
			break
		}
	}

	// Drop a trailing partial frame.
	delivered := got / w.channels
	w.pos += int64(delivered)
	if delivered == 0 {
		w.pos = w.frames
		return 0, io.EOF
	}
	return delivered, nil
}

func (w *WavFile) normalize(dst []float32, src []int) {
	switch w.bitDepth {
	case 8:
		// 8-bit WAV is unsigned with 128 as silence.
		for i, v := range src {
			dst[i] = float32(v-128) / 128
		}
	default:
		scale := float32(int64(1) << (w.bitDepth - 1))
		for i, v := range src {
			dst[i] = float32(v) / scale
		}
	}
}

// Close releases the underlying file if the source opened it.
func (w *WavFile) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}
