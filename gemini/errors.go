package gemini

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"

	"github.com/fwojciec/coda"
	"google.golang.org/genai"
)

// classifyError wraps an SDK error in a [coda.RemoteError] with its HTTP
// status and whether repeating the call may help. Context errors are
// returned unchanged.
func classifyError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &coda.RemoteError{Status: apiErr.Code, Retryable: retryableStatus(apiErr.Code), Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &coda.RemoteError{Status: apiErrPtr.Code, Retryable: retryableStatus(apiErrPtr.Code), Err: err}
	}
	var netErr net.Error
	retryable := errors.As(err, &netErr) || errors.Is(err, io.ErrUnexpectedEOF)
	return &coda.RemoteError{Retryable: retryable, Err: err}
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
