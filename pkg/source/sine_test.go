package source

import (
	"io"
	"testing"
	"time"

	"github.com/itohio/wavescope/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSine_Pull(t *testing.T) {
	s := NewSine(&config.MockConfig{
		Frequency:  2,
		Amplitude:  0.5,
		SampleRate: 8,
		Channels:   2,
		Duration:   time.Second,
	})
	defer s.Close()

	assert.Equal(t, int64(8), s.Frames())
	assert.Equal(t, 2, s.ChannelCount())
	assert.Equal(t, 8, s.SampleRate())

	buf := make([]float32, 10*2)
	n, err := s.Pull(buf, 10)
	require.NoError(t, err)
	require.Equal(t, 8, n)

	// Quarter-period steps: 0, 1, 0, -1, ...
	want := []float32{0, 0.5, 0, -0.5, 0, 0.5, 0, -0.5}
	for i, v := range want {
		assert.InDelta(t, v, buf[2*i], 1e-6, "frame %d", i)
		assert.Equal(t, buf[2*i], buf[2*i+1], "channels must match")
	}

	n, err = s.Pull(buf, 10)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 0, n)
}

func TestSine_DefaultConfig(t *testing.T) {
	s := NewSine(nil)
	assert.Equal(t, 1, s.ChannelCount())
	assert.Equal(t, 48000, s.SampleRate())
	assert.Equal(t, int64(4800), s.Frames())

	all, err := ReadAll(s, 1000)
	require.NoError(t, err)
	assert.Len(t, all, 4800)
	for _, v := range all {
		assert.LessOrEqual(t, v, float32(0.8)+1e-6)
		assert.GreaterOrEqual(t, v, float32(-0.8)-1e-6)
	}
}

func TestSine_Closed(t *testing.T) {
	s := NewSine(nil)
	require.NoError(t, s.Close())

	_, err := s.Pull(make([]float32, 4), 4)
	assert.ErrorIs(t, err, ErrClosed)
}
