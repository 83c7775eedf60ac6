package coda

import (
	"fmt"
	"strconv"
	"strings"
)

// Defaults applied when the environment does not override them.
const (
	DefaultModel           = "gemini-1.5-pro-latest"
	DefaultTemperature     = 0.7
	DefaultMaxTokens       = 8192
	DefaultMaxRetries      = 2
	DefaultSafetyThreshold = SafetyBlockMediumAndAbove
)

// GenerationConfig holds sampling parameters sent with every turn.
// TopP and TopK are nil when the remote default should apply.
type GenerationConfig struct {
	Temperature float64
	MaxTokens   int
	TopP        *float64
	TopK        *int
}

// Validate checks the parameter ranges accepted by the remote API.
func (g GenerationConfig) Validate() error {
	if g.Temperature < 0 || g.Temperature > 2 {
		return fmt.Errorf("temperature must be in [0, 2], got %g: %w", g.Temperature, ErrValidation)
	}
	if g.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d: %w", g.MaxTokens, ErrValidation)
	}
	if g.TopP != nil && (*g.TopP < 0 || *g.TopP > 1) {
		return fmt.Errorf("top_p must be in [0, 1], got %g: %w", *g.TopP, ErrValidation)
	}
	if g.TopK != nil && *g.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d: %w", *g.TopK, ErrValidation)
	}
	return nil
}

// String renders the effective parameters, omitting unset optional ones.
func (g GenerationConfig) String() string {
	parts := []string{
		"temperature=" + strconv.FormatFloat(g.Temperature, 'g', -1, 64),
		"max_tokens=" + strconv.Itoa(g.MaxTokens),
	}
	if g.TopP != nil {
		parts = append(parts, "top_p="+strconv.FormatFloat(*g.TopP, 'g', -1, 64))
	}
	if g.TopK != nil {
		parts = append(parts, "top_k="+strconv.Itoa(*g.TopK))
	}
	return strings.Join(parts, " ")
}

// SafetyThreshold is the harm-blocking level applied to every harm category.
// Values use the remote API's enum names.
type SafetyThreshold string

const (
	SafetyOff                 SafetyThreshold = "OFF"
	SafetyBlockNone           SafetyThreshold = "BLOCK_NONE"
	SafetyBlockOnlyHigh       SafetyThreshold = "BLOCK_ONLY_HIGH"
	SafetyBlockMediumAndAbove SafetyThreshold = "BLOCK_MEDIUM_AND_ABOVE"
	SafetyBlockLowAndAbove    SafetyThreshold = "BLOCK_LOW_AND_ABOVE"
)

// Validate reports whether t is a known threshold.
func (t SafetyThreshold) Validate() error {
	switch t {
	case SafetyOff, SafetyBlockNone, SafetyBlockOnlyHigh, SafetyBlockMediumAndAbove, SafetyBlockLowAndAbove:
		return nil
	}
	return fmt.Errorf("unknown safety threshold %q: %w", string(t), ErrValidation)
}

// Config is the complete program configuration.
type Config struct {
	APIKey           string
	Model            string
	Generation       GenerationConfig
	SafetyThreshold  SafetyThreshold
	MaxRetries       int
	SystemPromptFile string // empty = built-in prompt
	Markdown         bool   // re-render completed replies as markdown
	LogFile          string // empty = logging disabled
	LogLevel         string
}

// Validate checks the whole configuration. Every returned error matches
// ErrConfiguration.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("%w: GOOGLE_API_KEY not found: set the environment variable or add it to a .env file", ErrConfiguration)
	}
	if c.Model == "" {
		return fmt.Errorf("%w: model name is empty", ErrConfiguration)
	}
	if err := c.Generation.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if err := c.SafetyThreshold.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries must be non-negative, got %d", ErrConfiguration, c.MaxRetries)
	}
	return nil
}
