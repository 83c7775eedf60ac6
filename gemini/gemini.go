// Package gemini implements [coda.Provider] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK. A session is an SDK chat, which
// keeps the conversation history between turns. Streaming uses the SDK's
// iter.Seq2 iterator, wrapped into the pull-based [coda.Stream] interface.
package gemini

const defaultModel = "gemini-1.5-pro-latest"
