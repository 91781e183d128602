package main

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/wavescope/pkg/scope"
	"github.com/itohio/wavescope/pkg/waveform"
)

// showSettingsDialog displays a settings dialog with tabs for all configuration options.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createDisplayTab(state),
		createStyleTab(state),
		createSourceTab(state),
		createMockTab(state),
	)

	content := container.NewBorder(nil, nil, nil, nil, tabs)
	content.Resize(fyne.NewSize(500, 400))

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(500, 400))
	d.Show()
}

// saveConfig writes the configuration and reports failures in a dialog.
func saveConfig(state *appState) bool {
	if err := state.cfg.Save(state.configPath); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
		return false
	}
	return true
}

// createDisplayTab creates the Display configuration tab.
func createDisplayTab(state *appState) *container.TabItem {
	modeSelect := widget.NewSelect([]string{waveform.Linear.String(), waveform.Logarithmic.String()}, nil)
	modeSelect.SetSelected(state.cfg.Display.Mode.String())

	flushCheck := widget.NewCheck("Draw last dense column", nil)
	flushCheck.SetChecked(state.cfg.Display.Reducer().FlushLastColumn)

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Mode", Widget: modeSelect},
			{Text: "Dense mode", Widget: flushCheck},
		},
		OnSubmit: func() {
			mode, err := waveform.ParseMode(modeSelect.Selected)
			if err != nil {
				dialog.ShowError(err, state.window)
				return
			}
			flush := flushCheck.Checked

			state.cfg.Display.Mode = mode
			state.cfg.Display.FlushLastColumn = &flush
			if !saveConfig(state) {
				return
			}

			state.waveform.SetMode(mode)
			state.waveform.SetReducer(state.cfg.Display.Reducer())
			state.modeBtn.SetText(modeLabel(mode))
			state.flushBtn.SetText(flushLabel(state.cfg.Display.Reducer()))
		},
	}

	return container.NewTabItem("Display", form)
}

// createStyleTab creates the stroke color and width tab.
func createStyleTab(state *appState) *container.TabItem {
	barColorEntry := widget.NewEntry()
	barColorEntry.SetText(state.cfg.Display.BarColor)

	barStrokeEntry := widget.NewEntry()
	barStrokeEntry.SetText(fmt.Sprintf("%.1f", state.cfg.Display.BarStroke))

	segmentColorEntry := widget.NewEntry()
	segmentColorEntry.SetText(state.cfg.Display.SegmentColor)

	segmentStrokeEntry := widget.NewEntry()
	segmentStrokeEntry.SetText(fmt.Sprintf("%.1f", state.cfg.Display.SegmentStroke))

	backgroundEntry := widget.NewEntry()
	backgroundEntry.SetText(state.cfg.Display.Background)

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Bar color", Widget: barColorEntry},
			{Text: "Bar stroke (px)", Widget: barStrokeEntry},
			{Text: "Line color", Widget: segmentColorEntry},
			{Text: "Line stroke (px)", Widget: segmentStrokeEntry},
			{Text: "Background", Widget: backgroundEntry},
		},
		OnSubmit: func() {
			display := state.cfg.Display
			display.BarColor = barColorEntry.Text
			display.SegmentColor = segmentColorEntry.Text
			display.Background = backgroundEntry.Text
			if v, err := strconv.ParseFloat(barStrokeEntry.Text, 32); err == nil && v > 0 {
				display.BarStroke = float32(v)
			}
			if v, err := strconv.ParseFloat(segmentStrokeEntry.Text, 32); err == nil && v > 0 {
				display.SegmentStroke = float32(v)
			}

			style, err := scope.StyleFromConfig(display)
			if err != nil {
				dialog.ShowError(err, state.window)
				return
			}

			state.cfg.Display = display
			if saveConfig(state) {
				state.waveform.SetStyle(style)
			}
		},
	}

	return container.NewTabItem("Style", form)
}

// createSourceTab creates the Source configuration tab.
func createSourceTab(state *appState) *container.TabItem {
	pathEntry := widget.NewEntry()
	pathEntry.SetText(state.cfg.Source.Path)

	pullEntry := widget.NewEntry()
	pullEntry.SetText(strconv.Itoa(state.cfg.Source.PullFrames))

	mixdownCheck := widget.NewCheck("Average channels", nil)
	mixdownCheck.SetChecked(state.cfg.Source.Mixdown)

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "WAV file", Widget: pathEntry},
			{Text: "Frames per pull", Widget: pullEntry},
			{Text: "Mixdown", Widget: mixdownCheck},
		},
		OnSubmit: func() {
			state.cfg.Source.Path = pathEntry.Text
			if v, err := strconv.Atoi(pullEntry.Text); err == nil && v > 0 {
				state.cfg.Source.PullFrames = v
			}
			state.cfg.Source.Mixdown = mixdownCheck.Checked
			if !saveConfig(state) {
				return
			}

			state.useMock = state.cfg.Source.Path == ""
			loadSource(state)
		},
	}

	return container.NewTabItem("Source", form)
}

// createMockTab creates the sine tone configuration tab.
func createMockTab(state *appState) *container.TabItem {
	frequencyEntry := widget.NewEntry()
	frequencyEntry.SetText(fmt.Sprintf("%.1f", state.cfg.Mock.Frequency))

	amplitudeEntry := widget.NewEntry()
	amplitudeEntry.SetText(fmt.Sprintf("%.2f", state.cfg.Mock.Amplitude))

	rateEntry := widget.NewEntry()
	rateEntry.SetText(strconv.Itoa(state.cfg.Mock.SampleRate))

	durationEntry := widget.NewEntry()
	durationEntry.SetText(state.cfg.Mock.Duration.String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Frequency (Hz)", Widget: frequencyEntry},
			{Text: "Amplitude", Widget: amplitudeEntry},
			{Text: "Sample rate (Hz)", Widget: rateEntry},
			{Text: "Duration", Widget: durationEntry},
		},
		OnSubmit: func() {
			if v, err := strconv.ParseFloat(frequencyEntry.Text, 64); err == nil && v > 0 {
				state.cfg.Mock.Frequency = v
			}
			if v, err := strconv.ParseFloat(amplitudeEntry.Text, 64); err == nil {
				state.cfg.Mock.Amplitude = v
			}
			if v, err := strconv.Atoi(rateEntry.Text); err == nil && v > 0 {
				state.cfg.Mock.SampleRate = v
			}
			if v, err := time.ParseDuration(durationEntry.Text); err == nil && v > 0 {
				state.cfg.Mock.Duration = v
			}
			if !saveConfig(state) {
				return
			}

			if state.useMock {
				loadSource(state)
			}
		},
	}

	return container.NewTabItem("Mock", form)
}
