package scope

import (
	"slices"
	"time"
)

// Batcher accumulates streamed chunks and publishes the whole buffer at most
// once per interval, plus once on Flush. Publishing a growing buffer for
// every chunk would redraw the waveform once per chunk.
// A Batcher is not safe for concurrent use.
type Batcher struct {
	interval time.Duration
	publish  func(samples []float32)
	now      func() time.Time

	buf       []float32
	last      time.Time
	published int // len(buf) at the last publish
}

// NewBatcher creates a batcher that hands snapshots to publish. Snapshots
// share memory with the batcher but are clipped, so later chunks never
// write into them.
func NewBatcher(interval time.Duration, publish func(samples []float32)) *Batcher {
	return &Batcher{
		interval:  interval,
		publish:   publish,
		now:       time.Now,
		published: -1,
	}
}

// Add appends chunk and publishes if the interval has elapsed since the
// last publish (or since the first Add).
func (b *Batcher) Add(chunk []float32) {
	now := b.now()
	if b.last.IsZero() {
		b.last = now
	}
	b.buf = append(b.buf, chunk...)

	if now.Sub(b.last) >= b.interval {
		b.emit(now)
	}
}

// Flush publishes any samples added since the last publish.
func (b *Batcher) Flush() {
	if len(b.buf) != b.published {
		b.emit(b.now())
	}
}

// Len returns the number of samples accumulated so far.
func (b *Batcher) Len() int {
	return len(b.buf)
}

func (b *Batcher) emit(now time.Time) {
	b.last = now
	b.published = len(b.buf)
	b.publish(slices.Clip(b.buf))
}
