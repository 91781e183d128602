package scope

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/itohio/wavescope/pkg/waveform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatcher_PublishesOncePerInterval(t *testing.T) {
	var published [][]float32
	b := NewBatcher(time.Hour, func(s []float32) {
		published = append(published, s)
	})

	chunk := make([]float32, 4096)
	for range 351 {
		b.Add(chunk)
	}
	assert.Empty(t, published, "no publish before the interval elapses")

	b.Flush()
	require.Len(t, published, 1)
	assert.Len(t, published[0], 351*4096)

	// Nothing new, nothing to publish.
	b.Flush()
	assert.Len(t, published, 1)
}

func TestBatcher_Interval(t *testing.T) {
	clock := time.Unix(0, 0)
	var sizes []int
	b := NewBatcher(100*time.Millisecond, func(s []float32) {
		sizes = append(sizes, len(s))
	})
	b.now = func() time.Time { return clock }

	// One chunk every 10ms for one second.
	for range 100 {
		b.Add([]float32{0, 1})
		clock = clock.Add(10 * time.Millisecond)
	}
	b.Flush()

	assert.LessOrEqual(t, len(sizes), 11)
	assert.GreaterOrEqual(t, len(sizes), 9)
	assert.Equal(t, 200, sizes[len(sizes)-1])
	assert.Equal(t, 200, b.Len())
	for i := 1; i < len(sizes); i++ {
		assert.Greater(t, sizes[i], sizes[i-1])
	}
}

func TestBatcher_SnapshotsAreStable(t *testing.T) {
	var snap []float32
	b := NewBatcher(0, func(s []float32) { snap = s })

	b.Add([]float32{1, 2})
	first := snap
	b.Add([]float32{3})

	assert.Equal(t, []float32{1, 2}, first)
	assert.Equal(t, []float32{1, 2, 3}, snap)
}

func TestBatcher_WidgetRedrawsPerPublish(t *testing.T) {
	test.NewTempApp(t)

	w := New(waveform.Linear, waveform.DefaultReducer, DefaultStyle())
	w.Resize(fyne.NewSize(1200, 400))

	publishes := 0
	b := NewBatcher(time.Hour, func(s []float32) {
		publishes++
		w.SetSamples(s)
	})

	chunk := make([]float32, 4096)
	for range 50 {
		b.Add(chunk)
	}
	assert.Equal(t, 0, w.Samples(), "widget untouched while chunks stream in")

	b.Flush()
	assert.Equal(t, 1, publishes)
	assert.Equal(t, 50*4096, w.Samples())
}
