// Package console implements [coda.Renderer] for a line-oriented terminal.
//
// Output is styled with lipgloss through a renderer bound to the destination
// writer, so redirected output is plain text. Reply text is written as it
// arrives; nothing is buffered between a delta and the terminal.
package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/coda"
	"github.com/fwojciec/coda/goldmark"
	"golang.org/x/term"
)

const (
	bannerRuleWidth = 50
	thinkingText    = "Thinking..."
	clearLine       = "\r\x1b[K"
)

// Interface compliance check.
var _ coda.Renderer = (*Renderer)(nil)

// Renderer writes the conversation to a terminal.
type Renderer struct {
	w        io.Writer
	lr       *lipgloss.Renderer
	theme    coda.Theme
	styles   Styles
	markdown *goldmark.Renderer
	tty      bool
	width    int

	thinking bool // thinking indicator is on screen
	midLine  bool // last write did not end with a newline
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMarkdown re-renders each completed reply as styled markdown below the
// streamed text.
func WithMarkdown(enabled bool) Option {
	return func(r *Renderer) {
		r.markdown = nil
		if enabled {
			r.markdown = goldmark.New(r.lr, r.theme)
		}
	}
}

// WithTTY overrides terminal detection. The thinking indicator is only
// shown on a terminal.
func WithTTY(tty bool) Option {
	return func(r *Renderer) { r.tty = tty }
}

// WithWidth overrides the detected terminal width used for markdown.
func WithWidth(width int) Option {
	return func(r *Renderer) { r.width = width }
}

// New creates a Renderer writing to w. Terminal capabilities are detected
// when w is a terminal file.
func New(w io.Writer, theme coda.Theme, opts ...Option) *Renderer {
	lr := lipgloss.NewRenderer(w)
	r := &Renderer{
		w:      w,
		lr:     lr,
		theme:  theme,
		styles: NewStyles(lr, theme),
	}
	r.tty, r.width = detect(w)
	for _, o := range opts {
		o(r)
	}
	return r
}

func detect(w io.Writer) (tty bool, width int) {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false, 0
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return false, 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		width = 0
	}
	return true, width
}

func (r *Renderer) write(s string) {
	if s == "" {
		return
	}
	_, _ = io.WriteString(r.w, s)
	r.midLine = !strings.HasSuffix(s, "\n")
}

func (r *Renderer) line(style lipgloss.Style, s string) {
	r.settle()
	r.write(style.Render(s) + "\n")
}

// settle clears the thinking indicator and ends a partial line so the next
// message starts in column zero.
func (r *Renderer) settle() {
	r.clearThinking()
	if r.midLine {
		r.write("\n")
	}
}

func (r *Renderer) clearThinking() {
	if !r.thinking {
		return
	}
	r.thinking = false
	r.write(clearLine)
	r.midLine = false
}

// Status prints a startup progress line.
func (r *Renderer) Status(msg string) {
	r.line(r.styles.Status, msg)
}

// Success prints a startup success line.
func (r *Renderer) Success(msg string) {
	r.line(r.styles.Success, msg)
}

// Banner prints the welcome text shown once the session is ready.
func (r *Renderer) Banner(model string, gen coda.GenerationConfig) {
	r.settle()
	r.write("\n")
	r.line(r.styles.Title, "Welcome to Coda - Your AI Code Assistant!")
	r.write("Model: " + r.styles.Speaker.Render(model) + "\n")
	r.write("Config: " + r.styles.Muted.Render(gen.String()) + "\n")
	r.write("Type 'quit' or 'exit' to end the session.\n")
	r.write(strings.Repeat("-", bannerRuleWidth) + "\n")
}

// InputHeader prints the instruction shown before each turn.
func (r *Renderer) InputHeader() {
	r.line(r.styles.Prompt, fmt.Sprintf("You (end input with '%s' on a new line):", coda.Sentinel))
}

// ReplyStart prints the assistant label and, on a terminal, a thinking
// indicator that the first text or message replaces.
func (r *Renderer) ReplyStart() {
	r.settle()
	r.write("\n")
	r.line(r.styles.Speaker, "Coda:")
	if r.tty {
		r.write(r.styles.Muted.Render(thinkingText))
		r.thinking = true
	}
}

// Text writes a reply fragment as is.
func (r *Renderer) Text(delta string) {
	if delta == "" {
		return
	}
	r.clearThinking()
	r.write(delta)
}

// ReplyEnd finishes the reply line. With markdown enabled, a complete reply
// is printed again as rendered markdown.
func (r *Renderer) ReplyEnd(reply coda.Reply) {
	r.clearThinking()
	r.write("\n")
	if r.markdown == nil || strings.TrimSpace(reply.Text) == "" {
		return
	}
	if reply.StopReason == coda.StopError || reply.StopReason == coda.StopAborted {
		return
	}
	r.line(r.styles.Muted, "--- Rendered Markdown ---")
	r.write(r.markdown.Render(reply.Text, r.width) + "\n")
	r.line(r.styles.Muted, "--- End Rendered Markdown ---")
}

// Warn prints a recoverable problem.
func (r *Renderer) Warn(msg string) {
	r.settle()
	r.write(r.styles.Warning.Render("Warning:") + " " + msg + "\n")
}

// Error reports a failed turn. Remote failures carry a hint about the
// connection; blocked prompts name the safety filter.
func (r *Renderer) Error(err error) {
	r.settle()
	switch {
	case errors.Is(err, coda.ErrPromptBlocked):
		r.write(r.styles.Error.Render("Error:") + " Your prompt was blocked by safety settings: " + err.Error() + "\n")
	case errors.Is(err, coda.ErrRemoteCall):
		r.line(r.styles.Error, "API Error occurred: "+err.Error())
		r.line(r.styles.Warning, "There might be an issue with the connection or the Google Cloud service.")
	default:
		r.line(r.styles.Error, "An error occurred while getting the response: "+err.Error())
	}
}

// Fatal reports an error that prevents the session from starting.
func (r *Renderer) Fatal(err error) {
	r.line(r.styles.Error, "Error: "+err.Error())
	if errors.Is(err, coda.ErrRemoteInit) {
		r.line(r.styles.Warning, "Possible reasons: Invalid model name, API key issue, network problem.")
	}
}

// Goodbye prints the farewell line.
func (r *Renderer) Goodbye(interrupted bool) {
	r.settle()
	msg := "Assistant shutting down. Goodbye!"
	if interrupted {
		msg = "Assistant shutting down (Interrupted). Goodbye!"
	}
	r.write("\n")
	r.line(r.styles.Title, msg)
}
