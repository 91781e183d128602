package waveform

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMode is returned when a display mode name cannot be parsed.
var ErrInvalidMode = errors.New("invalid display mode")

// Mode selects how samples are picked before they are mapped to columns.
type Mode int

const (
	// Linear uses every sample.
	Linear Mode = iota
	// Logarithmic keeps only samples at indices 0, 1, 3, 7, 15, ...
	Logarithmic
)

// String returns the config name of the mode.
func (m Mode) String() string {
	switch m {
	case Linear:
		return "linear"
	case Logarithmic:
		return "logarithmic"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name. Matching is case-insensitive and "log" is
// accepted as a short form of "logarithmic".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear", "lin":
		return Linear, nil
	case "logarithmic", "log":
		return Logarithmic, nil
	}
	return Linear, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m != Linear && m != Logarithmic {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
