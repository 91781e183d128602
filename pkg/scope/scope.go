package scope

import (
	"slices"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/wavescope/pkg/waveform"
)

// WaveformWidget is a custom Fyne widget that draws a sample buffer as a
// decimated waveform sized to the widget.
type WaveformWidget struct {
	widget.BaseWidget

	// Data (protected by mu)
	mu      sync.RWMutex
	samples []float32
	mode    waveform.Mode
	reducer waveform.Reducer
	style   Style
}

// New creates a new WaveformWidget instance.
func New(mode waveform.Mode, reducer waveform.Reducer, style Style) *WaveformWidget {
	w := &WaveformWidget{
		mode:    mode,
		reducer: reducer,
		style:   style,
	}
	w.ExtendBaseWidget(w)
	return w
}

// SetSamples replaces the displayed samples. The widget keeps a reference
// to samples; callers must not modify them afterwards. The widget never
// writes into the caller's backing array.
func (w *WaveformWidget) SetSamples(samples []float32) {
	w.mu.Lock()
	w.samples = slices.Clip(samples)
	w.mu.Unlock()

	w.Refresh()
}

// AppendSamples adds samples to the end of the displayed buffer. Each call
// redraws the whole buffer; use a Batcher when feeding a stream.
func (w *WaveformWidget) AppendSamples(samples []float32) {
	w.mu.Lock()
	w.samples = append(w.samples, samples...)
	w.mu.Unlock()

	w.Refresh()
}

// Samples returns the number of displayed samples.
func (w *WaveformWidget) Samples() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.samples)
}

// SetMode switches between linear and logarithmic display.
func (w *WaveformWidget) SetMode(mode waveform.Mode) {
	w.mu.Lock()
	w.mode = mode
	w.mu.Unlock()

	w.Refresh()
}

// Mode returns the current display mode.
func (w *WaveformWidget) Mode() waveform.Mode {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.mode
}

// SetReducer replaces the reducer used on each redraw.
func (w *WaveformWidget) SetReducer(r waveform.Reducer) {
	w.mu.Lock()
	w.reducer = r
	w.mu.Unlock()

	w.Refresh()
}

// Reducer returns the reducer used on each redraw.
func (w *WaveformWidget) Reducer() waveform.Reducer {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.reducer
}

// SetStyle replaces the stroke colors and widths.
func (w *WaveformWidget) SetStyle(style Style) {
	w.mu.Lock()
	w.style = style
	w.mu.Unlock()

	w.Refresh()
}

// MinSize returns the minimum size of the widget.
func (w *WaveformWidget) MinSize() fyne.Size {
	return fyne.NewSize(200, 100)
}

// CreateRenderer creates the widget renderer.
func (w *WaveformWidget) CreateRenderer() fyne.WidgetRenderer {
	w.mu.RLock()
	background := canvas.NewRectangle(w.style.Background)
	w.mu.RUnlock()

	return &waveformRenderer{
		widget:     w,
		background: background,
		objects:    []fyne.CanvasObject{background},
	}
}
