package mock

import (
	"io"
	"strings"

	"github.com/fwojciec/coda"
)

// Interface compliance check.
var _ coda.Stream = (*Stream)(nil)

// Stream is a test double for coda.Stream.
// Set the function fields for the methods you need. NextFn and ReplyFn
// panic when nil to catch missing setup. CloseFn and StateFn are nil-safe
// (no-op and zero value) because test code commonly calls defer stream.Close()
// and these methods rarely need custom behavior.
type Stream struct {
	NextFn  func() (coda.Event, error)
	StateFn func() coda.StreamState
	ReplyFn func() (coda.Reply, error)
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (coda.Event, error) {
	return s.NextFn()
}

// State delegates to StateFn. Returns StreamStateNew when StateFn is nil.
func (s *Stream) State() coda.StreamState {
	if s.StateFn == nil {
		return coda.StreamStateNew
	}
	return s.StateFn()
}

// Reply delegates to ReplyFn.
func (s *Stream) Reply() (coda.Reply, error) {
	return s.ReplyFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// TextStream returns a Stream that emits one EventTextDelta per chunk, then
// io.EOF, and whose Reply is the concatenated text with StopEndTurn.
func TextStream(chunks ...string) *Stream {
	var (
		i     int
		state coda.StreamState
	)
	return &Stream{
		NextFn: func() (coda.Event, error) {
			if i >= len(chunks) {
				state = coda.StreamStateComplete
				return nil, io.EOF
			}
			state = coda.StreamStateStreaming
			i++
			return coda.EventTextDelta{Delta: chunks[i-1]}, nil
		},
		StateFn: func() coda.StreamState { return state },
		ReplyFn: func() (coda.Reply, error) {
			return coda.Reply{
				Text:          strings.Join(chunks[:i], ""),
				StopReason:    coda.StopEndTurn,
				RawStopReason: "STOP",
			}, nil
		},
	}
}

// FailingStream returns a Stream that emits the given chunks and then fails
// with err. Its Reply holds the partial text with StopError.
func FailingStream(err error, chunks ...string) *Stream {
	s := TextStream(chunks...)
	next := s.NextFn
	reply := s.ReplyFn
	s.NextFn = func() (coda.Event, error) {
		evt, nextErr := next()
		if nextErr == io.EOF {
			return nil, err
		}
		return evt, nextErr
	}
	s.ReplyFn = func() (coda.Reply, error) {
		r, _ := reply()
		r.StopReason = coda.StopError
		r.RawStopReason = "error"
		return r, nil
	}
	return s
}
