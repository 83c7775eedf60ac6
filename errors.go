package coda

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrConfiguration indicates missing or malformed configuration.
	ErrConfiguration = errors.New("configuration error")

	// ErrRemoteInit indicates the remote service rejected session creation.
	ErrRemoteInit = errors.New("remote init error")

	// ErrRemoteCall indicates a single turn's request or stream failed.
	ErrRemoteCall = errors.New("remote call error")

	// ErrPromptBlocked indicates the prompt was rejected by safety filters.
	// It always accompanies ErrRemoteCall.
	ErrPromptBlocked = errors.New("prompt blocked")

	// ErrEndOfSession indicates the user asked to end the session.
	ErrEndOfSession = errors.New("end of session")

	// ErrInterrupted indicates an interrupt signal (Ctrl+C).
	ErrInterrupted = errors.New("interrupted")

	// ErrValidation indicates a value failed validation.
	ErrValidation = errors.New("validation error")

	// ErrStreamNotReady indicates Reply() was called before Next().
	ErrStreamNotReady = errors.New("stream not ready: call Next() first")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")
)

// RemoteError describes a failed call to the remote API. It matches
// ErrRemoteCall with errors.Is.
type RemoteError struct {
	Status    int  // HTTP status code, 0 if unknown
	Retryable bool // whether repeating the call may succeed
	Err       error
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote call failed (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("remote call failed: %v", e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Is reports ErrRemoteCall as a match so callers need not know the concrete type.
func (e *RemoteError) Is(target error) bool { return target == ErrRemoteCall }

// IsRetryable reports whether err is a RemoteError marked retryable.
func IsRetryable(err error) bool {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Retryable
	}
	return false
}
