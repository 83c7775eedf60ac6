package coda

// Event is a sealed interface representing a streaming event.
// Events are purely semantic. Transport/protocol errors come from
// Next()'s error return, not from events.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventTextDelta represents a fragment of reply text.
type EventTextDelta struct {
	Delta string
}

func (EventTextDelta) event() {}

// EventEmptyChunk signals a response chunk that carried no content parts,
// usually because of safety filtering or an early stop. FinishReason is the
// provider's raw finish reason, if any.
type EventEmptyChunk struct {
	FinishReason string
}

func (EventEmptyChunk) event() {}

// Interface compliance checks.
var (
	_ Event = EventTextDelta{}
	_ Event = EventEmptyChunk{}
)
