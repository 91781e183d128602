package source

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeWav encodes data as a WAV file in a temp dir and returns its path.
func writeWav(t *testing.T, bitDepth, channels, rate, format int, data []int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, rate, bitDepth, channels, format)
	err = enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: bitDepth,
	})
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	return path
}

func TestWavFile_Pull16BitMono(t *testing.T) {
	path := writeWav(t, 16, 1, 8000, wavFormatPCM, []int{0, 16384, -16384, 32767, -32768})

	w, err := Open(path)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, 1, w.ChannelCount())
	assert.Equal(t, 8000, w.SampleRate())
	assert.Equal(t, 16, w.BitDepth())
	assert.Equal(t, int64(5), w.Frames())

	buf := make([]float32, 2)

	n, err := w.Pull(buf, 2)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	assert.InDelta(t, 0.0, buf[0], 1e-6)
	assert.InDelta(t, 0.5, buf[1], 1e-6)

	n, err = w.Pull(buf, 2)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	assert.InDelta(t, -0.5, buf[0], 1e-6)
	assert.InDelta(t, 32767.0/32768.0, buf[1], 1e-6)

	// End of stream delivers fewer frames than requested.
	n, err = w.Pull(buf, 2)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	assert.InDelta(t, -1.0, buf[0], 1e-6)

	n, err = w.Pull(buf, 2)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 0, n)
}

func TestWavFile_PullStereoClampsToBuffer(t *testing.T) {
	path := writeWav(t, 16, 2, 44100, wavFormatPCM, []int{3277, -3277, 6554, -6554})

	w, err := Open(path)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, 2, w.ChannelCount())
	assert.Equal(t, int64(2), w.Frames())

	// Room for one frame only.
	buf := make([]float32, 3)
	n, err := w.Pull(buf, 5)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	assert.InDelta(t, 0.1, buf[0], 1e-3)
	assert.InDelta(t, -0.1, buf[1], 1e-3)

	n, err = w.Pull(buf, 5)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	assert.InDelta(t, 0.2, buf[0], 1e-3)
	assert.InDelta(t, -0.2, buf[1], 1e-3)
}

func TestWavFile_24Bit(t *testing.T) {
	path := writeWav(t, 24, 1, 48000, wavFormatPCM, []int{1 << 22, -(1 << 22), 0})

	w, err := Open(path)
	require.NoError(t, err)
	defer w.Close()

	got, err := ReadAll(w, 16)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.InDelta(t, 0.5, got[0], 1e-6)
	assert.InDelta(t, -0.5, got[1], 1e-6)
	assert.InDelta(t, 0.0, got[2], 1e-6)
}

func TestWavFile_8Bit(t *testing.T) {
	// 8-bit PCM is unsigned with 128 as silence.
	path := writeWav(t, 8, 1, 8000, wavFormatPCM, []int{128, 255, 0, 192})

	w, err := Open(path)
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, 8, w.BitDepth())

	got, err := ReadAll(w, 16)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.InDelta(t, 0.0, got[0], 1e-6)
	assert.InDelta(t, 127.0/128, got[1], 1e-6)
	assert.InDelta(t, -1.0, got[2], 1e-6)
	assert.InDelta(t, 0.5, got[3], 1e-6)
}

func TestWavFile_ZeroFrameRequest(t *testing.T) {
	path := writeWav(t, 16, 1, 8000, wavFormatPCM, []int{1, 2, 3})

	w, err := Open(path)
	require.NoError(t, err)
	defer w.Close()

	n, err := w.Pull(make([]float32, 4), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = w.Pull(nil, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestWavFile_UnsupportedFormat(t *testing.T) {
	path := writeWav(t, 32, 1, 8000, 3, []int{0, 1})

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWavFile_InvalidData(t *testing.T) {
	_, err := New(bytes.NewReader([]byte("definitely not a RIFF stream")))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.wav"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWavFile_Close(t *testing.T) {
	path := writeWav(t, 16, 1, 8000, wavFormatPCM, []int{1, 2, 3})

	w, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, err = w.Pull(make([]float32, 4), 4)
	assert.ErrorIs(t, err, ErrClosed)
}
