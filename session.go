package coda

import "context"

// Provider creates chat sessions against a remote conversational API.
type Provider interface {
	// StartSession opens a session. It returns an error matching
	// ErrConfiguration for invalid settings and ErrRemoteInit when the
	// remote service rejects the session.
	StartSession(ctx context.Context, cfg SessionConfig) (Session, error)
}

// Session is a handle to remote conversation state. Context accumulates
// across turns on the session's side; callers only send new text.
//
// Send must not be called again until the previous Stream is drained or
// closed. Errors returned before any event is produced match ErrRemoteCall.
type Session interface {
	Send(ctx context.Context, text string) (Stream, error)
}

// SessionConfig carries everything needed to open a session.
type SessionConfig struct {
	Model             string
	SystemInstruction string
	Generation        GenerationConfig
	SafetyThreshold   SafetyThreshold
}
