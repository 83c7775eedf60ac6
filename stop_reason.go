package coda

// StopReason indicates why the model stopped generating.
type StopReason string

const (
	StopEndTurn    StopReason = "end_turn"
	StopLength     StopReason = "length"
	StopSafety     StopReason = "safety"
	StopRecitation StopReason = "recitation"
	StopError      StopReason = "error"
	StopAborted    StopReason = "aborted"
	StopUnknown    StopReason = "unknown"
)

// Truncated reports whether the reply ended before the model finished its
// answer for a reason the user should be told about.
func (r StopReason) Truncated() bool {
	switch r {
	case StopLength, StopSafety, StopRecitation:
		return true
	}
	return false
}
