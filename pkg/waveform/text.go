package waveform

import (
	"bufio"
	"fmt"
	"io"
)

// WriteText writes one primitive per line:
//
//	bar X YMIN YMAX
//	line X0 Y0 X1 Y1
func WriteText(w io.Writer, prims []Primitive) error {
	bw := bufio.NewWriter(w)
	for _, p := range prims {
		switch p.Kind {
		case KindBar:
			fmt.Fprintf(bw, "bar %g %g %g\n", p.X, p.YMin, p.YMax)
		case KindSegment:
			fmt.Fprintf(bw, "line %g %g %g %g\n", p.X0, p.Y0, p.X1, p.Y1)
		}
	}
	return bw.Flush()
}
