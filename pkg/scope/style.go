package scope

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/itohio/wavescope/pkg/config"
)

// Style holds stroke colors and widths for the waveform lines.
type Style struct {
	Background    color.Color
	BarColor      color.Color
	SegmentColor  color.Color
	BarStroke     float32
	SegmentStroke float32
}

// DefaultStyle matches the default display configuration.
func DefaultStyle() Style {
	return Style{
		Background:    color.White,
		BarColor:      color.Black,
		SegmentColor:  color.Black,
		BarStroke:     1,
		SegmentStroke: 5,
	}
}

// StyleFromConfig builds a Style from the display configuration.
func StyleFromConfig(d config.DisplayConfig) (Style, error) {
	style := DefaultStyle()

	var err error
	if d.Background != "" {
		if style.Background, err = parseHexColor(d.Background); err != nil {
			return style, fmt.Errorf("failed to parse background color: %w", err)
		}
	}
	if d.BarColor != "" {
		if style.BarColor, err = parseHexColor(d.BarColor); err != nil {
			return style, fmt.Errorf("failed to parse bar color: %w", err)
		}
	}
	if d.SegmentColor != "" {
		if style.SegmentColor, err = parseHexColor(d.SegmentColor); err != nil {
			return style, fmt.Errorf("failed to parse segment color: %w", err)
		}
	}
	if d.BarStroke > 0 {
		style.BarStroke = d.BarStroke
	}
	if d.SegmentStroke > 0 {
		style.SegmentStroke = d.SegmentStroke
	}

	return style, nil
}

// parseHexColor parses "#rrggbb" or "#rrggbbaa".
func parseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
