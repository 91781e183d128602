package scope

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/itohio/wavescope/pkg/waveform"
)

// waveformRenderer renders the waveform widget.
type waveformRenderer struct {
	widget *WaveformWidget

	background *canvas.Rectangle

	// Reused between refreshes
	primitives []waveform.Primitive
	lines      []*canvas.Line

	objects []fyne.CanvasObject

	// Track last size to detect changes
	lastSize fyne.Size
}

// MinSize returns the minimum size of the widget.
func (r *waveformRenderer) MinSize() fyne.Size {
	return r.widget.MinSize()
}

// Layout arranges the widget components.
func (r *waveformRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)

	if r.lastSize != size {
		r.lastSize = size
		// Column count depends on the width, so redraw.
		r.widget.BaseWidget.Refresh()
	}
}

// Refresh reduces the samples for the current size and rebuilds the lines.
func (r *waveformRenderer) Refresh() {
	r.widget.mu.RLock()
	samples := r.widget.samples
	mode := r.widget.mode
	reducer := r.widget.reducer
	style := r.widget.style
	r.widget.mu.RUnlock()

	size := r.widget.Size()

	r.background.FillColor = style.Background
	r.background.Refresh()

	r.primitives = reducer.ReduceInto(r.primitives, samples, size.Width, size.Height, mode)
	r.lines = Lines(r.lines, r.primitives, style)

	r.objects = r.objects[:0]
	r.objects = append(r.objects, r.background)
	for _, line := range r.lines {
		r.objects = append(r.objects, line)
		line.Refresh()
	}
}

// Objects returns all canvas objects for rendering.
func (r *waveformRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *waveformRenderer) Destroy() {}

// Lines converts primitives into canvas lines. Bars become vertical lines
// from YMin to YMax; segments connect their end points. Lines from dst are
// reused where possible.
func Lines(dst []*canvas.Line, primitives []waveform.Primitive, style Style) []*canvas.Line {
	for len(dst) < len(primitives) {
		dst = append(dst, canvas.NewLine(style.SegmentColor))
	}
	dst = dst[:len(primitives)]

	for i, p := range primitives {
		line := dst[i]
		switch p.Kind {
		case waveform.KindBar:
			line.StrokeColor = style.BarColor
			line.StrokeWidth = style.BarStroke
			line.Position1 = fyne.NewPos(p.X, p.YMin)
			line.Position2 = fyne.NewPos(p.X, p.YMax)
		case waveform.KindSegment:
			line.StrokeColor = style.SegmentColor
			line.StrokeWidth = style.SegmentStroke
			line.Position1 = fyne.NewPos(p.X0, p.Y0)
			line.Position2 = fyne.NewPos(p.X1, p.Y1)
		}
	}

	return dst
}
