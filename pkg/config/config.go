package config

import (
	"fmt"
	"os"
	"time"

	"github.com/itohio/wavescope/pkg/waveform"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Source  SourceConfig  `yaml:"source"`
	Mock    MockConfig    `yaml:"mock"`
}

// DisplayConfig contains waveform display parameters.
type DisplayConfig struct {
	Mode            waveform.Mode `yaml:"mode"`
	Width           float32       `yaml:"width"`             // Initial window width (px)
	Height          float32       `yaml:"height"`            // Initial window height (px)
	FlushLastColumn *bool         `yaml:"flush_last_column"` // Emit the trailing dense column (default true)
	BarStroke       float32       `yaml:"bar_stroke"`        // Stroke width of dense min/max bars
	SegmentStroke   float32       `yaml:"segment_stroke"`    // Stroke width of sparse line segments
	BarColor        string        `yaml:"bar_color"`         // "#rrggbb" or "#rrggbbaa"
	SegmentColor    string        `yaml:"segment_color"`
	Background      string        `yaml:"background"`
}

// SourceConfig contains sample source parameters.
type SourceConfig struct {
	Path       string `yaml:"path"`        // WAV file to display
	PullFrames int    `yaml:"pull_frames"` // Frames requested per pull
	Mixdown    bool   `yaml:"mixdown"`     // Average channels into one trace
}

// MockConfig contains the sine source parameters used when no file is given.
type MockConfig struct {
	Frequency  float64       `yaml:"frequency"`   // Tone frequency (Hz)
	Amplitude  float64       `yaml:"amplitude"`   // Peak amplitude (0..1)
	SampleRate int           `yaml:"sample_rate"` // Frames per second
	Channels   int           `yaml:"channels"`
	Duration   time.Duration `yaml:"duration"`
}

// Reducer returns the waveform reducer configured by the display section.
func (d DisplayConfig) Reducer() waveform.Reducer {
	flush := true
	if d.FlushLastColumn != nil {
		flush = *d.FlushLastColumn
	}
	return waveform.Reducer{FlushLastColumn: flush}
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	flush := true
	return &Config{
		Display: DisplayConfig{
			Mode:            waveform.Linear,
			Width:           1200,
			Height:          400,
			FlushLastColumn: &flush,
			BarStroke:       1,
			SegmentStroke:   5,
			BarColor:        "#000000",
			SegmentColor:    "#000000",
			Background:      "#ffffff",
		},
		Source: SourceConfig{
			PullFrames: 4096,
			Mixdown:    true,
		},
		Mock: MockConfig{
			Frequency:  440,
			Amplitude:  0.8,
			SampleRate: 48000,
			Channels:   1,
			Duration:   100 * time.Millisecond,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults resets fields that cannot be zero or negative. Missing
// fields already hold their defaults since Load decodes over Default(); a
// silent tone (zero frequency or amplitude) is a valid setting.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Display.Width <= 0 {
		c.Display.Width = def.Display.Width
	}
	if c.Display.Height <= 0 {
		c.Display.Height = def.Display.Height
	}
	if c.Display.FlushLastColumn == nil {
		c.Display.FlushLastColumn = def.Display.FlushLastColumn
	}
	if c.Display.BarStroke <= 0 {
		c.Display.BarStroke = def.Display.BarStroke
	}
	if c.Display.SegmentStroke <= 0 {
		c.Display.SegmentStroke = def.Display.SegmentStroke
	}
	if c.Display.BarColor == "" {
		c.Display.BarColor = def.Display.BarColor
	}
	if c.Display.SegmentColor == "" {
		c.Display.SegmentColor = def.Display.SegmentColor
	}
	if c.Display.Background == "" {
		c.Display.Background = def.Display.Background
	}

	if c.Source.PullFrames <= 0 {
		c.Source.PullFrames = def.Source.PullFrames
	}

	if c.Mock.SampleRate <= 0 {
		c.Mock.SampleRate = def.Mock.SampleRate
	}
	if c.Mock.Channels <= 0 {
		c.Mock.Channels = def.Mock.Channels
	}
	if c.Mock.Duration <= 0 {
		c.Mock.Duration = def.Mock.Duration
	}
}
