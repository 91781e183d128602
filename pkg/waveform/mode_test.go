package waveform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"", Linear},
		{"linear", Linear},
		{"LIN", Linear},
		{"logarithmic", Logarithmic},
		{" Log ", Logarithmic},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseMode("cubic")
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "linear", Linear.String())
	assert.Equal(t, "logarithmic", Logarithmic.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
}

func TestMode_YAML(t *testing.T) {
	var v struct {
		Mode Mode `yaml:"mode"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("mode: log\n"), &v))
	assert.Equal(t, Logarithmic, v.Mode)

	out, err := yaml.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "mode: logarithmic\n", string(out))

	assert.Error(t, yaml.Unmarshal([]byte("mode: cubic\n"), &v))
}

func TestPrimitive_Accessors(t *testing.T) {
	bar := NewBar(3, 1, 2)
	_, ok := bar.Segment()
	assert.False(t, ok)
	b, ok := bar.Bar()
	require.True(t, ok)
	assert.Equal(t, Bar{X: 3, YMin: 1, YMax: 2}, b)
	assert.Equal(t, float32(3), bar.Left())

	seg := NewSegment(1, 2, 3, 4)
	_, ok = seg.Bar()
	assert.False(t, ok)
	s, ok := seg.Segment()
	require.True(t, ok)
	assert.Equal(t, Segment{X0: 1, Y0: 2, X1: 3, Y1: 4}, s)
	assert.Equal(t, float32(1), seg.Left())
}
