package coda

import (
	"context"
	"strings"
)

// Sentinel is the line that ends multi-line input. Matching ignores case and
// surrounding whitespace.
const Sentinel = "EOF"

// Turn is one accumulated user entry, submitted as a single request.
type Turn struct {
	Lines []string
}

// Text joins the turn's lines with newlines.
func (t Turn) Text() string {
	return strings.Join(t.Lines, "\n")
}

// Blank reports whether the turn has no visible content.
func (t Turn) Blank() bool {
	return strings.TrimSpace(t.Text()) == ""
}

// IsSentinel reports whether line terminates a turn.
func IsSentinel(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), Sentinel)
}

// IsQuit reports whether line is a quit keyword. Only meaningful as the
// first line of a turn.
func IsQuit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "quit", "exit":
		return true
	}
	return false
}

// LineReader reads one line of console input at a time.
//
// ReadLine returns io.EOF at end of input and an error matching
// ErrInterrupted when the user presses Ctrl+C or ctx is cancelled.
// The returned line has no trailing newline.
type LineReader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// Renderer presents the conversation on a terminal. Text must reach the
// terminal before it returns so the user sees generation as it happens.
type Renderer interface {
	InputHeader()
	ReplyStart()
	Text(delta string)
	ReplyEnd(reply Reply)
	Warn(msg string)
	Error(err error)
	Goodbye(interrupted bool)
}
