package source

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

const (
	float32Size = 4
	int16Size   = 2
)

// PullFloat32LE pulls up to frames frames from src and writes them into buf
// as little-endian IEEE-754 float32 samples. The request is limited to what
// fits in buf. Returns the number of frames delivered.
func PullFloat32LE(src Source, buf []byte, frames int) (int, error) {
	channels := src.ChannelCount()
	frames = clampFrames(frames, len(buf)/float32Size, channels)

	samples := make([]float32, frames*channels)
	n, err := src.Pull(samples, frames)
	for i, v := range samples[:n*channels] {
		binary.LittleEndian.PutUint32(buf[i*float32Size:], math.Float32bits(v))
	}
	return n, err
}

// PullInt16LE pulls enough frames from src to fill numBytes of 16-bit
// little-endian PCM into buf. Samples outside [-1, 1] are clipped.
// Returns the number of frames delivered.
func PullInt16LE(src Source, numBytes int, buf []byte) (int, error) {
	if numBytes > len(buf) {
		numBytes = len(buf)
	}
	channels := src.ChannelCount()
	frames := clampFrames(math.MaxInt, numBytes/int16Size, channels)

	samples := make([]float32, frames*channels)
	n, err := src.Pull(samples, frames)
	pcm := FloatsToInt16(nil, samples[:n*channels])
	for i, v := range pcm {
		binary.LittleEndian.PutUint16(buf[i*int16Size:], uint16(v))
	}
	return n, err
}

// FloatsToInt16 converts normalized samples to 16-bit PCM, clipping values
// outside [-1, 1]. dst is reused if it has sufficient capacity.
func FloatsToInt16(dst []int16, src []float32) []int16 {
	if cap(dst) < len(src) {
		dst = make([]int16, len(src))
	}
	dst = dst[:len(src)]
	for i, v := range src {
		switch {
		case v >= 1:
			dst[i] = math.MaxInt16
		case v <= -1:
			dst[i] = math.MinInt16
		case v != v: // NaN
			dst[i] = 0
		default:
			dst[i] = int16(v * math.MaxInt16)
		}
	}
	return dst
}

// Mixdown averages interleaved frames into one value per frame.
// dst is reused if it has sufficient capacity.
func Mixdown(dst []float32, interleaved []float32, channels int) []float32 {
	if channels <= 1 {
		if cap(dst) < len(interleaved) {
			dst = make([]float32, len(interleaved))
		}
		dst = dst[:len(interleaved)]
		copy(dst, interleaved)
		return dst
	}

	frames := len(interleaved) / channels
	if cap(dst) < frames {
		dst = make([]float32, frames)
	}
	dst = dst[:frames]
	for i := range frames {
		var sum float32
		for _, v := range interleaved[i*channels : (i+1)*channels] {
			sum += v
		}
		dst[i] = sum / float32(channels)
	}
	return dst
}

// ReadAll pulls src until the end of the stream in chunks of chunkFrames
// and returns all interleaved samples.
func ReadAll(src Source, chunkFrames int) ([]float32, error) {
	if chunkFrames <= 0 {
		chunkFrames = 4096
	}
	channels := src.ChannelCount()
	chunk := make([]float32, chunkFrames*channels)

	var out []float32
	for {
		n, err := src.Pull(chunk, chunkFrames)
		out = append(out, chunk[:n*channels]...)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		if n == 0 {
			return out, nil
		}
	}
}
