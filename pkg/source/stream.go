package source

import (
	"context"
	"errors"
	"io"
	"log"
)

// Stream pulls src in the background and delivers interleaved chunks of up
// to chunkFrames frames. The channel is closed at the end of the stream, on
// a pull error, or when ctx is cancelled.
func Stream(ctx context.Context, src Source, chunkFrames int, bufSize int) <-chan []float32 {
	if chunkFrames <= 0 {
		chunkFrames = 4096
	}
	if bufSize <= 0 {
		bufSize = 16
	}

	out := make(chan []float32, bufSize)
	channels := src.ChannelCount()

	go func() {
		defer close(out)

		for ctx.Err() == nil {
			chunk := make([]float32, chunkFrames*channels)
			n, err := src.Pull(chunk, chunkFrames)
			if n > 0 {
				select {
				case out <- chunk[:n*channels]:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					log.Printf("Failed to pull samples: %v", err)
				}
				return
			}
			if n == 0 {
				return
			}
		}
	}()

	return out
}
