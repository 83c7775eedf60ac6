package gemini

import (
	"context"
	"fmt"
	"iter"
	"net/http"

	"github.com/fwojciec/coda"
	"google.golang.org/genai"
)

// Interface compliance checks.
var (
	_ coda.Provider = (*Client)(nil)
	_ coda.Session  = (*session)(nil)
)

// harmCategories are the categories every session filters.
var harmCategories = []genai.HarmCategory{
	genai.HarmCategoryHarassment,
	genai.HarmCategoryHateSpeech,
	genai.HarmCategorySexuallyExplicit,
	genai.HarmCategoryDangerousContent,
}

// Client implements [coda.Provider] for the Google Gemini API.
type Client struct {
	client *genai.Client
}

// Option configures a [Client].
type Option func(*genai.ClientConfig)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) Option {
	return func(c *genai.ClientConfig) { c.HTTPOptions.BaseURL = url }
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *genai.ClientConfig) { c.HTTPClient = hc }
}

// New creates a new Gemini [Client] with the given API key and options.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w: API key is empty", coda.ErrConfiguration)
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, o := range opts {
		o(cfg)
	}
	gc, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w: %w", coda.ErrConfiguration, err)
	}
	return &Client{client: gc}, nil
}

// StartSession verifies the model exists and is reachable with the
// configured key, then opens a chat with the given system instruction and
// generation parameters.
func (c *Client) StartSession(ctx context.Context, cfg coda.SessionConfig) (coda.Session, error) {
	if err := cfg.Generation.Validate(); err != nil {
		return nil, fmt.Errorf("gemini: %w: %w", coda.ErrConfiguration, err)
	}
	if cfg.SafetyThreshold != "" {
		if err := cfg.SafetyThreshold.Validate(); err != nil {
			return nil, fmt.Errorf("gemini: %w: %w", coda.ErrConfiguration, err)
		}
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	// Chats.Create is local; Models.Get is what actually contacts the API.
	if _, err := c.client.Models.Get(ctx, model, nil); err != nil {
		return nil, fmt.Errorf("gemini: model %q: %w: %w", model, coda.ErrRemoteInit, classifyError(err))
	}
	chat, err := c.client.Chats.Create(ctx, model, BuildConfig(cfg), nil)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w: %w", coda.ErrRemoteInit, err)
	}
	return &session{
		send: func(ctx context.Context, text string) iter.Seq2[*genai.GenerateContentResponse, error] {
			return chat.SendMessageStream(ctx, genai.Part{Text: text})
		},
	}, nil
}

// BuildConfig converts session settings into the SDK request config.
// Exported for testing.
func BuildConfig(cfg coda.SessionConfig) *genai.GenerateContentConfig {
	g := cfg.Generation
	temp := float32(g.Temperature)
	config := &genai.GenerateContentConfig{
		Temperature:      &temp,
		MaxOutputTokens:  int32(g.MaxTokens),
		ResponseMIMEType: "text/plain",
	}
	if g.TopP != nil {
		topP := float32(*g.TopP)
		config.TopP = &topP
	}
	if g.TopK != nil {
		topK := float32(*g.TopK)
		config.TopK = &topK
	}
	if cfg.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: cfg.SystemInstruction}},
		}
	}
	if cfg.SafetyThreshold != "" {
		threshold := genai.HarmBlockThreshold(cfg.SafetyThreshold)
		for _, cat := range harmCategories {
			config.SafetySettings = append(config.SafetySettings, &genai.SafetySetting{
				Category:  cat,
				Threshold: threshold,
			})
		}
	}
	return config
}

// session is a single chat. The SDK chat appends a turn to its history only
// after the turn's stream completes, so a failed send can be repeated.
type session struct {
	send func(ctx context.Context, text string) iter.Seq2[*genai.GenerateContentResponse, error]
}

// Send starts the turn and pulls the first response so that transport and
// API failures are returned here, before any event reaches the caller.
func (s *session) Send(ctx context.Context, text string) (coda.Stream, error) {
	st := newStream(ctx, s.send(ctx, text))
	if err := st.advance(); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}
