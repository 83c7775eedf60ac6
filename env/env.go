// Package env loads coda configuration from environment variables, optionally
// seeded from a .env file.
//
// Parsing uses github.com/caarlos0/env struct tags; .env files are read with
// github.com/joho/godotenv. Nothing here reads the process environment
// directly: callers pass variables in, which keeps loading testable.
package env

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/fwojciec/coda"
	"github.com/joho/godotenv"
)

// DotenvName is the file looked up by ReadDotenv.
const DotenvName = ".env"

type settings struct {
	APIKey           string   `env:"GOOGLE_API_KEY"`
	Model            string   `env:"GEMINI_MODEL_NAME" envDefault:"gemini-1.5-pro-latest"`
	Temperature      float64  `env:"GEMINI_TEMPERATURE" envDefault:"0.7"`
	MaxTokens        int      `env:"GEMINI_MAX_TOKENS" envDefault:"8192"`
	TopP             *float64 `env:"GEMINI_TOP_P"`
	TopK             *int     `env:"GEMINI_TOP_K"`
	SafetyThreshold  string   `env:"GEMINI_SAFETY_THRESHOLD" envDefault:"BLOCK_MEDIUM_AND_ABOVE"`
	MaxRetries       int      `env:"GEMINI_MAX_RETRIES" envDefault:"2"`
	SystemPromptFile string   `env:"CODA_SYSTEM_PROMPT_FILE"`
	Markdown         bool     `env:"CODA_MARKDOWN"`
	LogFile          string   `env:"CODA_LOG_FILE"`
	LogLevel         string   `env:"CODA_LOG_LEVEL" envDefault:"info"`
}

// Load builds a validated Config from vars. Empty values count as unset.
// Every returned error matches coda.ErrConfiguration.
func Load(vars map[string]string) (coda.Config, error) {
	set := make(map[string]string, len(vars))
	for k, v := range vars {
		if strings.TrimSpace(v) != "" {
			set[k] = strings.TrimSpace(v)
		}
	}

	var s settings
	if err := env.ParseWithOptions(&s, env.Options{Environment: set}); err != nil {
		return coda.Config{}, fmt.Errorf("%w: %w", coda.ErrConfiguration, err)
	}

	cfg := coda.Config{
		APIKey: s.APIKey,
		Model:  s.Model,
		Generation: coda.GenerationConfig{
			Temperature: s.Temperature,
			MaxTokens:   s.MaxTokens,
			TopP:        s.TopP,
			TopK:        s.TopK,
		},
		SafetyThreshold:  coda.SafetyThreshold(strings.ToUpper(s.SafetyThreshold)),
		MaxRetries:       s.MaxRetries,
		SystemPromptFile: s.SystemPromptFile,
		Markdown:         s.Markdown,
		LogFile:          s.LogFile,
		LogLevel:         s.LogLevel,
	}
	if err := cfg.Validate(); err != nil {
		return coda.Config{}, err
	}
	return cfg, nil
}

// ReadDotenv reads the first .env file found in dirs, in order. It returns
// the path it read, or an empty path and nil map when none exists.
func ReadDotenv(dirs ...string) (map[string]string, string, error) {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, DotenvName)
		vals, err := godotenv.Read(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("%w: read %s: %w", coda.ErrConfiguration, path, err)
		}
		return vals, path, nil
	}
	return nil, "", nil
}

// Merge overlays environ (KEY=VALUE pairs, as from os.Environ) on dotenv.
// Variables already set in the process win over the file.
func Merge(dotenv map[string]string, environ []string) map[string]string {
	vars := make(map[string]string, len(dotenv)+len(environ))
	for k, v := range dotenv {
		vars[k] = v
	}
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = v
	}
	return vars
}

// Environ returns environ overlaid on the first .env file found in dirs.
// The second result is the .env path used, if any.
func Environ(environ []string, dirs ...string) (map[string]string, string, error) {
	dotenv, path, err := ReadDotenv(dirs...)
	if err != nil {
		return nil, "", err
	}
	return Merge(dotenv, environ), path, nil
}
