package scope

import (
	"fmt"
	"io"

	"github.com/itohio/wavescope/pkg/config"
	"github.com/itohio/wavescope/pkg/source"
	"github.com/itohio/wavescope/pkg/waveform"
)

// Dump reads all of src, reduces it for the configured display size and
// writes the primitives as text. src is closed on every path.
func Dump(w io.Writer, cfg *config.Config, src source.Source) (err error) {
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close source: %w", cerr)
		}
	}()

	samples, err := source.ReadAll(src, cfg.Source.PullFrames)
	if err != nil {
		return fmt.Errorf("failed to read samples: %w", err)
	}
	if cfg.Source.Mixdown {
		samples = source.Mixdown(nil, samples, src.ChannelCount())
	}

	prims := cfg.Display.Reducer().Reduce(samples, cfg.Display.Width, cfg.Display.Height, cfg.Display.Mode)
	return waveform.WriteText(w, prims)
}
