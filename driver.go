package coda

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

// LinePrompt is shown before every input line.
const LinePrompt = "> "

// DriverState is the position of a Driver in its read-submit-stream cycle.
type DriverState int

const (
	DriverStateIdle          DriverState = iota // Between turns.
	DriverStateAwaitingInput                    // Blocked reading user lines.
	DriverStateSubmitting                       // Opening the reply stream.
	DriverStateStreaming                        // Rendering reply events.
	DriverStateEnded                            // Session over; Run has returned.
)

func (s DriverState) String() string {
	switch s {
	case DriverStateIdle:
		return "idle"
	case DriverStateAwaitingInput:
		return "awaiting_input"
	case DriverStateSubmitting:
		return "submitting"
	case DriverStateStreaming:
		return "streaming"
	case DriverStateEnded:
		return "ended"
	}
	return "unknown"
}

// Driver runs the interactive loop: read a turn, send it, render the reply.
// A Driver owns its Session exclusively and is not safe for concurrent use.
type Driver struct {
	session  Session
	input    LineReader
	renderer Renderer
	logger   *zap.Logger
	retry    RetryPolicy
	state    DriverState
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithLogger sets the diagnostics logger. Default is a no-op logger.
func WithLogger(l *zap.Logger) DriverOption {
	return func(d *Driver) { d.logger = l }
}

// WithRetryPolicy sets the policy for retrying failed sends.
// Default is DefaultRetryPolicy().
func WithRetryPolicy(p RetryPolicy) DriverOption {
	return func(d *Driver) { d.retry = p }
}

// NewDriver creates a Driver for an already started session.
func NewDriver(session Session, input LineReader, renderer Renderer, opts ...DriverOption) *Driver {
	d := &Driver{
		session:  session,
		input:    input,
		renderer: renderer,
		logger:   zap.NewNop(),
		retry:    DefaultRetryPolicy(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// State returns the driver's current state.
func (d *Driver) State() DriverState {
	return d.state
}

// Run loops until the user ends the session. It returns nil on quit, end of
// input or an interrupt while reading, and an error matching ErrInterrupted
// when an interrupt arrives while a reply is in flight. Failures of a single
// turn are reported through the Renderer and do not stop the loop.
func (d *Driver) Run(ctx context.Context) error {
	d.state = DriverStateIdle
	for turns := 0; ; {
		turn, err := d.ReadTurn(ctx)
		if errors.Is(err, ErrEndOfSession) {
			interrupted := errors.Is(err, ErrInterrupted)
			d.end(interrupted)
			d.logger.Info("session ended", zap.Int("turns", turns), zap.Bool("interrupted", interrupted))
			return nil
		}
		if err != nil {
			d.state = DriverStateEnded
			return fmt.Errorf("read input: %w", err)
		}
		if turn.Blank() {
			d.state = DriverStateIdle
			continue
		}

		turns++
		err = d.turn(ctx, turn)
		if ctx.Err() != nil {
			d.end(true)
			d.logger.Info("session interrupted during reply", zap.Int("turns", turns))
			return ErrInterrupted
		}
		if err != nil {
			d.renderer.Error(err)
			d.logger.Warn("turn failed", zap.Int("turn", turns), zap.Error(err))
		}
		d.state = DriverStateIdle
	}
}

func (d *Driver) end(interrupted bool) {
	d.state = DriverStateEnded
	d.renderer.Goodbye(interrupted)
}

// ReadTurn reads lines until the sentinel line, which is not included in
// the turn. A quit keyword as the first line, end of input, or an interrupt
// returns an error matching ErrEndOfSession; an interrupt additionally
// matches ErrInterrupted. Lines entered before end of input are discarded.
func (d *Driver) ReadTurn(ctx context.Context) (Turn, error) {
	d.state = DriverStateAwaitingInput
	d.renderer.InputHeader()

	var lines []string
	for {
		line, err := d.input.ReadLine(ctx, LinePrompt)
		switch {
		case errors.Is(err, ErrInterrupted) || ctx.Err() != nil:
			return Turn{}, fmt.Errorf("%w: %w", ErrEndOfSession, ErrInterrupted)
		case errors.Is(err, io.EOF):
			return Turn{}, ErrEndOfSession
		case err != nil:
			return Turn{}, err
		}

		if IsSentinel(line) {
			return Turn{Lines: lines}, nil
		}
		if len(lines) == 0 && IsQuit(line) {
			return Turn{}, ErrEndOfSession
		}
		lines = append(lines, line)
	}
}

// SubmitTurn sends the turn and returns the reply stream. Retryable remote
// failures are repeated according to the retry policy; no event has been
// produced at that point, so nothing is shown twice.
func (d *Driver) SubmitTurn(ctx context.Context, turn Turn) (Stream, error) {
	d.state = DriverStateSubmitting
	text := turn.Text()
	d.logger.Debug("submitting turn", zap.Int("lines", len(turn.Lines)), zap.Int("bytes", len(text)))

	var stream Stream
	err := d.retry.Do(ctx, func() error {
		s, err := d.session.Send(ctx, text)
		if err != nil {
			return err
		}
		stream = s
		return nil
	}, func(attempt int, delay time.Duration, err error) {
		d.logger.Warn("retrying send",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err))
	})
	if err != nil {
		return nil, err
	}
	return stream, nil
}

// RenderChunk writes a single reply event to the terminal.
func (d *Driver) RenderChunk(evt Event) {
	switch e := evt.(type) {
	case EventTextDelta:
		if e.Delta != "" {
			d.renderer.Text(e.Delta)
		}
	case EventEmptyChunk:
		d.renderer.Warn("Received empty chunk, potentially due to safety filters or stop reason.")
		d.logger.Debug("empty chunk", zap.String("finish_reason", e.FinishReason))
	}
}

// turn submits one turn and renders its reply.
func (d *Driver) turn(ctx context.Context, turn Turn) error {
	d.renderer.ReplyStart()
	stream, err := d.SubmitTurn(ctx, turn)
	if err != nil {
		return err
	}
	defer stream.Close()

	d.state = DriverStateStreaming
	var (
		chunks    int
		streamErr error
	)
	for {
		evt, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			streamErr = err
			break
		}
		chunks++
		d.RenderChunk(evt)
	}

	// Partial replies are still closed off so the prompt starts on a new line.
	reply, replyErr := stream.Reply()
	if replyErr == nil {
		d.renderer.ReplyEnd(reply)
	} else {
		d.renderer.ReplyEnd(Reply{StopReason: StopError})
	}
	if streamErr != nil {
		return streamErr
	}
	if replyErr != nil {
		return replyErr
	}

	if reply.StopReason.Truncated() {
		d.renderer.Warn(fmt.Sprintf("Response stopped: %s. This might be due to safety settings, length limits, or stop sequences.", reply.RawStopReason))
	}
	d.logger.Info("turn complete",
		zap.Int("chunks", chunks),
		zap.String("stop_reason", string(reply.StopReason)),
		zap.Int("input_tokens", reply.Usage.InputTokens),
		zap.Int("output_tokens", reply.Usage.OutputTokens))
	return nil
}
