package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/wavescope/pkg/config"
	"github.com/itohio/wavescope/pkg/scope"
	"github.com/itohio/wavescope/pkg/source"
	"github.com/itohio/wavescope/pkg/waveform"
)

func main() {
	var (
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		fileFlag   = flag.String("file", "", "WAV file to display (overrides config)")
		mockFlag   = flag.Bool("mock", false, "Display a generated sine tone instead of a file")
		logFlag    = flag.Bool("log", false, "Start in logarithmic display mode")
		dumpFlag   = flag.Bool("dump", false, "Print draw primitives for the configured size and exit")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *fileFlag != "" {
		cfg.Source.Path = *fileFlag
	}
	if *logFlag {
		cfg.Display.Mode = waveform.Logarithmic
	}
	useMock := *mockFlag || cfg.Source.Path == ""

	if *dumpFlag {
		src, err := openSource(cfg, useMock)
		if err != nil {
			log.Fatalf("Failed to open source: %v", err)
		}
		// Dump closes src on every path.
		if err := scope.Dump(os.Stdout, cfg, src); err != nil {
			log.Fatalf("Failed to dump primitives: %v", err)
		}
		return
	}

	style, err := scope.StyleFromConfig(cfg.Display)
	if err != nil {
		log.Fatalf("Invalid display style: %v", err)
	}

	application := app.NewWithID("com.itohio.wavescope")

	window := application.NewWindow("Waveform")
	window.Resize(fyne.NewSize(cfg.Display.Width, cfg.Display.Height))
	window.CenterOnScreen()

	state := &appState{
		cfg:        cfg,
		configPath: *configFlag,
		window:     window,
		useMock:    useMock,
		waveform:   scope.New(cfg.Display.Mode, cfg.Display.Reducer(), style),
	}

	toolbar := createToolbar(state)
	window.SetContent(container.NewBorder(toolbar, nil, nil, nil, state.waveform))

	loadSource(state)
	defer state.stopLoading()

	window.ShowAndRun()
}

// appState holds the application state.
type appState struct {
	cfg        *config.Config
	configPath string
	window     fyne.Window
	waveform   *scope.WaveformWidget
	modeBtn    *widget.Button
	flushBtn   *widget.Button
	useMock    bool

	// Cancels the running source stream
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// createToolbar creates the toolbar with Open, Settings, mode and flush buttons.
func createToolbar(state *appState) fyne.CanvasObject {
	openBtn := widget.NewButtonWithIcon("", theme.FolderOpenIcon(), func() {
		handleOpen(state)
	})

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	state.modeBtn = widget.NewButton(modeLabel(state.waveform.Mode()), func() {
		handleModeToggle(state)
	})

	state.flushBtn = widget.NewButton(flushLabel(state.waveform.Reducer()), func() {
		handleFlushToggle(state)
	})

	return container.NewBorder(
		nil, // top
		nil, // bottom
		container.NewHBox(openBtn, settingsBtn),           // left
		container.NewHBox(state.modeBtn, state.flushBtn), // right
		nil, // center (spacer)
	)
}

func modeLabel(m waveform.Mode) string {
	if m == waveform.Logarithmic {
		return "Log"
	}
	return "Linear"
}

func flushLabel(r waveform.Reducer) string {
	if r.FlushLastColumn {
		return "Last column: on"
	}
	return "Last column: off"
}

// handleModeToggle switches between linear and logarithmic display.
func handleModeToggle(state *appState) {
	mode := waveform.Logarithmic
	if state.waveform.Mode() == waveform.Logarithmic {
		mode = waveform.Linear
	}
	state.waveform.SetMode(mode)
	state.cfg.Display.Mode = mode
	state.modeBtn.SetText(modeLabel(mode))
}

// handleFlushToggle toggles emitting the trailing dense column.
func handleFlushToggle(state *appState) {
	r := state.waveform.Reducer()
	r.FlushLastColumn = !r.FlushLastColumn
	state.waveform.SetReducer(r)
	state.cfg.Display.FlushLastColumn = &r.FlushLastColumn
	state.flushBtn.SetText(flushLabel(r))
}

// handleOpen shows a file picker and displays the chosen WAV file.
func handleOpen(state *appState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, state.window)
			return
		}
		if rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()

		state.cfg.Source.Path = path
		state.useMock = false
		loadSource(state)
	}, state.window)
	d.Show()
}

// openSource opens the configured WAV file or the sine mock.
func openSource(cfg *config.Config, useMock bool) (source.Source, error) {
	if useMock {
		return source.NewSine(&cfg.Mock), nil
	}
	src, err := source.Open(cfg.Source.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cfg.Source.Path, err)
	}
	return src, nil
}

// publishInterval limits how often a loading stream redraws the waveform.
const publishInterval = 100 * time.Millisecond

// loadSource stops any running load and streams the configured source into
// the waveform widget.
func loadSource(state *appState) {
	state.stopLoading()

	src, err := openSource(state.cfg, state.useMock)
	if err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	if state.useMock {
		fmt.Println("Displaying generated sine tone")
	} else {
		fmt.Printf("Displaying %s (%d Hz, %d channels)\n", state.cfg.Source.Path, src.SampleRate(), src.ChannelCount())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	state.mu.Lock()
	state.cancel = cancel
	state.done = done
	state.mu.Unlock()

	state.waveform.SetSamples(nil)

	channels := src.ChannelCount()
	mixdown := state.cfg.Source.Mixdown
	chunks := source.Stream(ctx, src, state.cfg.Source.PullFrames, 16)

	// Widgets must be updated on the main thread; publish a snapshot at
	// most once per interval so the whole buffer is not reduced per chunk.
	batch := scope.NewBatcher(publishInterval, func(samples []float32) {
		fyne.Do(func() {
			if state.isLoading(done) {
				state.waveform.SetSamples(samples)
			}
		})
	})

	go func() {
		defer close(done)
		defer src.Close()

		for chunk := range chunks {
			if mixdown {
				chunk = source.Mixdown(nil, chunk, channels)
			}
			batch.Add(chunk)
		}
		batch.Flush()
	}()
}

// stopLoading cancels the running stream and waits for it to finish.
func (s *appState) stopLoading() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// isLoading reports whether done belongs to the current stream. Chunks of a
// replaced stream may still be queued on the main thread.
func (s *appState) isLoading(done chan struct{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done == done
}
