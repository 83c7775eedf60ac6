// Package liner implements [coda.LineReader] on top of github.com/peterh/liner,
// which gives the prompt line editing and history on a terminal and falls
// back to plain buffered reads when stdin is redirected.
package liner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/coda"
	"github.com/peterh/liner"
)

// Interface compliance check.
var _ coda.LineReader = (*Reader)(nil)

// prompter is the part of *liner.State the Reader needs.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// Reader reads console lines. Close must be called to restore the terminal.
type Reader struct {
	state prompter
}

// NewReader puts the terminal into line-editing mode. Ctrl+C aborts the
// current prompt instead of being delivered as a signal.
func NewReader() *Reader {
	s := liner.NewLiner()
	s.SetCtrlCAborts(true)
	s.SetMultiLineMode(true)
	return &Reader{state: s}
}

// ReadLine shows prompt and returns the next line. Ctrl+C or cancelling
// ctx returns an error matching [coda.ErrInterrupted]; Ctrl+D on an empty
// line or the end of redirected input returns io.EOF. Non-blank lines are
// added to the history.
func (r *Reader) ReadLine(ctx context.Context, prompt string) (string, error) {
	if ctx.Err() != nil {
		return "", fmt.Errorf("liner: %w", coda.ErrInterrupted)
	}

	type result struct {
		line string
		err  error
	}
	// liner has no cancellable read, so the prompt runs on its own goroutine.
	// On cancellation it stays blocked until Close restores the terminal.
	ch := make(chan result, 1)
	go func() {
		line, err := r.state.Prompt(prompt)
		ch <- result{line: line, err: err}
	}()

	var res result
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("liner: %w", coda.ErrInterrupted)
	case res = <-ch:
	}

	switch {
	case errors.Is(res.err, liner.ErrPromptAborted):
		return "", fmt.Errorf("liner: %w", coda.ErrInterrupted)
	case errors.Is(res.err, io.EOF):
		return "", io.EOF
	case res.err != nil:
		return "", fmt.Errorf("liner: %w", res.err)
	}
	if strings.TrimSpace(res.line) != "" {
		r.state.AppendHistory(res.line)
	}
	return res.line, nil
}

// Close restores the terminal mode.
func (r *Reader) Close() error {
	return r.state.Close()
}
