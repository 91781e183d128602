package waveform

import (
	"math/bits"

	"github.com/chewxy/math32"
)

// Reducer turns a sample buffer into drawing primitives for a canvas of a
// given pixel size. A Reducer holds no state between calls and is safe for
// concurrent use.
type Reducer struct {
	// FlushLastColumn emits the bar of the column that is still being
	// accumulated when the samples run out. When false the last dense
	// column is dropped.
	FlushLastColumn bool
}

// DefaultReducer flushes the trailing dense column.
var DefaultReducer = Reducer{FlushLastColumn: true}

// Reduce runs DefaultReducer.
func Reduce(samples []float32, width, height float32, mode Mode) []Primitive {
	return DefaultReducer.Reduce(samples, width, height, mode)
}

// Reduce returns freshly allocated primitives for samples drawn into a
// width x height pixel area.
func (r Reducer) Reduce(samples []float32, width, height float32, mode Mode) []Primitive {
	return r.ReduceInto(nil, samples, width, height, mode)
}

// ReduceInto is like Reduce but reuses dst if it has sufficient capacity.
// Returns the destination slice (dst if reused, or a new slice otherwise).
//
// Degenerate inputs never fail:
//   - no samples produce no primitives;
//   - a single sample produces one zero-height bar at x=0;
//   - negative, NaN or infinite width and height are treated as 0;
//   - in dense mode, samples that map to NaN (NaN itself, or an infinite
//     sample with zero height) are skipped; sparse segments and the
//     single-sample bar carry NaN through unchanged.
func (r Reducer) ReduceInto(dst []Primitive, samples []float32, width, height float32, mode Mode) []Primitive {
	dst = dst[:0]
	if len(samples) == 0 {
		return dst
	}

	width = clampExtent(width)
	height = clampExtent(height)

	values := samples
	if mode == Logarithmic {
		values = LogIndices(nil, samples)
	}

	n := len(values)
	if n == 1 {
		y := MapY(values[0], height)
		return append(dst, NewBar(0, y, y))
	}

	xScale := width / float32(n-1)
	if xScale < 1.0 {
		// Dense: at most one bar per integer column.
		if need := int(width) + 1; cap(dst) < need {
			dst = make([]Primitive, 0, need)
		}
		return r.columns(dst, values, xScale, height)
	}

	if cap(dst) < n-1 {
		dst = make([]Primitive, 0, n-1)
	}
	return segments(dst, values, xScale, height)
}

// columns aggregates all samples that truncate to the same pixel column into
// one min/max bar placed at the x of the first sample in that column.
// NaN rows are ignored; a column holding only NaN rows produces no bar.
func (r Reducer) columns(dst []Primitive, values []float32, xScale, height float32) []Primitive {
	x0 := float32(0)
	col := 0
	var yMin, yMax float32
	filled := false

	for i, v := range values {
		x := float32(i) * xScale
		y := MapY(v, height)
		if c := int(x); c != col {
			if filled {
				dst = append(dst, NewBar(x0, yMin, yMax))
			}
			x0, col = x, c
			filled = false
		}
		if math32.IsNaN(y) {
			continue
		}
		if !filled {
			yMin, yMax = y, y
			filled = true
			continue
		}
		yMin = math32.Min(yMin, y)
		yMax = math32.Max(yMax, y)
	}

	if r.FlushLastColumn && filled {
		dst = append(dst, NewBar(x0, yMin, yMax))
	}
	return dst
}

// segments connects every consecutive pair of mapped samples.
func segments(dst []Primitive, values []float32, xScale, height float32) []Primitive {
	x0 := float32(0)
	y0 := MapY(values[0], height)
	for i := 1; i < len(values); i++ {
		x1 := float32(i) * xScale
		y1 := MapY(values[i], height)
		dst = append(dst, NewSegment(x0, y0, x1, y1))
		x0, y0 = x1, y1
	}
	return dst
}

// MapY maps an amplitude to a pixel row: 1 is the top (0), 0 is the bottom
// (height) and -1 lands at 2*height. Values are not clamped.
func MapY(v, height float32) float32 {
	return v*(0-height) + height
}

// LogIndices copies the samples at indices 2^k-1 (0, 1, 3, 7, ...) into dst.
// The result holds floor(log2(len(samples)))+1 values, or none for an empty
// input. dst is reused if it has sufficient capacity.
func LogIndices(dst []float32, samples []float32) []float32 {
	n := bits.Len(uint(len(samples)))
	if cap(dst) < n {
		dst = make([]float32, 0, n)
	}
	dst = dst[:0]
	for idx := 1; idx-1 < len(samples); idx *= 2 {
		dst = append(dst, samples[idx-1])
	}
	return dst
}

func clampExtent(v float32) float32 {
	if math32.IsNaN(v) || math32.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
