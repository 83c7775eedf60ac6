package coda_test

import (
	"testing"

	"github.com/fwojciec/coda"
	"github.com/stretchr/testify/assert"
)

func TestEventTextDelta_ImplementsEvent(t *testing.T) {
	t.Parallel()
	var e coda.Event = coda.EventTextDelta{Delta: "hello"}
	assert.NotNil(t, e)
}

func TestEventEmptyChunk_ImplementsEvent(t *testing.T) {
	t.Parallel()
	var e coda.Event = coda.EventEmptyChunk{FinishReason: "SAFETY"}
	assert.NotNil(t, e)
}

func TestStreamState_ZeroValue(t *testing.T) {
	t.Parallel()
	var s coda.StreamState
	assert.Equal(t, coda.StreamStateNew, s, "zero-value StreamState should be StreamStateNew")
}

func TestStopReason_Values(t *testing.T) {
	t.Parallel()
	assert.Equal(t, coda.StopReason("end_turn"), coda.StopEndTurn)
	assert.Equal(t, coda.StopReason("length"), coda.StopLength)
	assert.Equal(t, coda.StopReason("safety"), coda.StopSafety)
	assert.Equal(t, coda.StopReason("recitation"), coda.StopRecitation)
	assert.Equal(t, coda.StopReason("error"), coda.StopError)
	assert.Equal(t, coda.StopReason("aborted"), coda.StopAborted)
	assert.Equal(t, coda.StopReason("unknown"), coda.StopUnknown)
}

func TestStopReason_Truncated(t *testing.T) {
	t.Parallel()
	for _, r := range []coda.StopReason{coda.StopLength, coda.StopSafety, coda.StopRecitation} {
		assert.True(t, r.Truncated(), r)
	}
	for _, r := range []coda.StopReason{coda.StopEndTurn, coda.StopError, coda.StopAborted, coda.StopUnknown} {
		assert.False(t, r.Truncated(), r)
	}
}

func TestDriverState_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "idle", coda.DriverStateIdle.String())
	assert.Equal(t, "awaiting_input", coda.DriverStateAwaitingInput.String())
	assert.Equal(t, "submitting", coda.DriverStateSubmitting.String())
	assert.Equal(t, "streaming", coda.DriverStateStreaming.String())
	assert.Equal(t, "ended", coda.DriverStateEnded.String())
	assert.Equal(t, "unknown", coda.DriverState(99).String())
}
