package waveform

// Kind tags the variant stored in a Primitive.
type Kind int

const (
	// KindBar is a vertical bar covering one pixel column.
	KindBar Kind = iota
	// KindSegment is a line between two consecutive mapped samples.
	KindSegment
)

// Primitive is a single drawing command in pixel coordinates.
// Bars use X, YMin and YMax. Segments use X0, Y0, X1 and Y1.
type Primitive struct {
	Kind Kind

	X, YMin, YMax  float32
	X0, Y0, X1, Y1 float32
}

// Bar describes a vertical min/max bar.
type Bar struct {
	X, YMin, YMax float32
}

// Segment describes a line from (X0,Y0) to (X1,Y1).
type Segment struct {
	X0, Y0, X1, Y1 float32
}

// NewBar creates a bar primitive.
func NewBar(x, yMin, yMax float32) Primitive {
	return Primitive{Kind: KindBar, X: x, YMin: yMin, YMax: yMax}
}

// NewSegment creates a segment primitive.
func NewSegment(x0, y0, x1, y1 float32) Primitive {
	return Primitive{Kind: KindSegment, X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// Bar returns the bar payload. ok is false for segments.
func (p Primitive) Bar() (b Bar, ok bool) {
	if p.Kind != KindBar {
		return Bar{}, false
	}
	return Bar{X: p.X, YMin: p.YMin, YMax: p.YMax}, true
}

// Segment returns the segment payload. ok is false for bars.
func (p Primitive) Segment() (s Segment, ok bool) {
	if p.Kind != KindSegment {
		return Segment{}, false
	}
	return Segment{X0: p.X0, Y0: p.Y0, X1: p.X1, Y1: p.Y1}, true
}

// Left returns the smallest x-coordinate covered by the primitive.
func (p Primitive) Left() float32 {
	if p.Kind == KindBar {
		return p.X
	}
	return p.X0
}
