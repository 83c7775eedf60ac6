package mock

import (
	"context"
	"io"

	"github.com/fwojciec/coda"
)

// Interface compliance check.
var _ coda.LineReader = (*LineReader)(nil)

// LineReader is a test double for coda.LineReader.
// Set ReadLineFn before calling ReadLine.
type LineReader struct {
	ReadLineFn func(ctx context.Context, prompt string) (string, error)
}

// ReadLine delegates to ReadLineFn.
func (r *LineReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	return r.ReadLineFn(ctx, prompt)
}

// Lines returns a LineReader that yields lines in order, then io.EOF.
func Lines(lines ...string) *LineReader {
	var i int
	return &LineReader{
		ReadLineFn: func(_ context.Context, _ string) (string, error) {
			if i >= len(lines) {
				return "", io.EOF
			}
			i++
			return lines[i-1], nil
		},
	}
}
