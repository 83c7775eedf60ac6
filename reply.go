package coda

import "time"

// Reply is the assembled model output for one turn.
type Reply struct {
	Text          string
	StopReason    StopReason
	RawStopReason string
	Usage         Usage
	Timestamp     time.Time
}
