package gemini

import (
	"context"
	"iter"

	"github.com/fwojciec/coda"
	"google.golang.org/genai"
)

// NewSessionFromFunc builds a session around an arbitrary response iterator.
func NewSessionFromFunc(send func(ctx context.Context, text string) iter.Seq2[*genai.GenerateContentResponse, error]) coda.Session {
	return &session{send: send}
}

// ClassifyError exposes classifyError for external tests.
var ClassifyError = classifyError
