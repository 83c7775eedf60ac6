package coda

// StreamState indicates the current state of a Stream.
type StreamState int

const (
	StreamStateNew       StreamState = iota // Before Next() is ever called.
	StreamStateStreaming                    // Mid-stream, receiving deltas.
	StreamStateComplete                     // Next() returned io.EOF.
	StreamStateError                        // Next() returned non-EOF error.
	StreamStateClosed                       // Close() called before terminal state.
)

// Stream is a lazy, finite, non-restartable sequence of reply events using a
// pull-based iterator pattern. Cancellation flows through the context passed
// to Session.Send().
//
// Reply() returns the assembled reply. Behavior by stream state:
//   - StreamStateComplete: complete reply, nil error.
//   - StreamStateError: partial reply, nil error. StopReason is StopError
//     for transport/protocol failures, StopAborted for context cancellation.
//   - StreamStateStreaming: partial reply, nil error.
//   - StreamStateNew: zero-value reply, ErrStreamNotReady.
//   - StreamStateClosed: partial reply with StopReason = StopAborted.
//     Subsequent Next() calls return ErrStreamClosed.
type Stream interface {
	Next() (Event, error)
	State() StreamState
	Reply() (Reply, error)
	Close() error
}
