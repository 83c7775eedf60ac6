package env_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/coda"
	"github.com/fwojciec/coda/env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()
	cfg, err := env.Load(map[string]string{"GOOGLE_API_KEY": "gk-test"})
	require.NoError(t, err)

	assert.Equal(t, "gk-test", cfg.APIKey)
	assert.Equal(t, coda.DefaultModel, cfg.Model)
	assert.InDelta(t, coda.DefaultTemperature, cfg.Generation.Temperature, 1e-9)
	assert.Equal(t, coda.DefaultMaxTokens, cfg.Generation.MaxTokens)
	assert.Nil(t, cfg.Generation.TopP)
	assert.Nil(t, cfg.Generation.TopK)
	assert.Equal(t, coda.DefaultSafetyThreshold, cfg.SafetyThreshold)
	assert.Equal(t, coda.DefaultMaxRetries, cfg.MaxRetries)
	assert.False(t, cfg.Markdown)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Parallel()
	cfg, err := env.Load(map[string]string{
		"GOOGLE_API_KEY":          "gk-test",
		"GEMINI_MODEL_NAME":       "gemini-2.0-flash",
		"GEMINI_TEMPERATURE":      "0.2",
		"GEMINI_MAX_TOKENS":       "1024",
		"GEMINI_TOP_P":            "0.95",
		"GEMINI_TOP_K":            "40",
		"GEMINI_SAFETY_THRESHOLD": "block_only_high",
		"GEMINI_MAX_RETRIES":      "0",
		"CODA_MARKDOWN":           "true",
		"CODA_LOG_FILE":           "/tmp/coda.log",
		"CODA_LOG_LEVEL":          "debug",
		"CODA_SYSTEM_PROMPT_FILE": "prompt.md",
	})
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.InDelta(t, 0.2, cfg.Generation.Temperature, 1e-9)
	assert.Equal(t, 1024, cfg.Generation.MaxTokens)
	require.NotNil(t, cfg.Generation.TopP)
	assert.InDelta(t, 0.95, *cfg.Generation.TopP, 1e-9)
	require.NotNil(t, cfg.Generation.TopK)
	assert.Equal(t, 40, *cfg.Generation.TopK)
	assert.Equal(t, coda.SafetyBlockOnlyHigh, cfg.SafetyThreshold)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.True(t, cfg.Markdown)
	assert.Equal(t, "/tmp/coda.log", cfg.LogFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "prompt.md", cfg.SystemPromptFile)
}

func TestLoad_EmptyValuesAreUnset(t *testing.T) {
	t.Parallel()
	cfg, err := env.Load(map[string]string{
		"GOOGLE_API_KEY":     "gk-test",
		"GEMINI_TOP_P":       "",
		"GEMINI_TOP_K":       "  ",
		"GEMINI_TEMPERATURE": "",
	})
	require.NoError(t, err)
	assert.Nil(t, cfg.Generation.TopP)
	assert.Nil(t, cfg.Generation.TopK)
	assert.InDelta(t, coda.DefaultTemperature, cfg.Generation.Temperature, 1e-9)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		vars map[string]string
		want string
	}{
		{"missing key", map[string]string{}, "GOOGLE_API_KEY"},
		{"bad temperature", map[string]string{"GOOGLE_API_KEY": "k", "GEMINI_TEMPERATURE": "hot"}, "Temperature"},
		{"bad max tokens", map[string]string{"GOOGLE_API_KEY": "k", "GEMINI_MAX_TOKENS": "lots"}, "MaxTokens"},
		{"bad top_k", map[string]string{"GOOGLE_API_KEY": "k", "GEMINI_TOP_K": "1.5"}, "TopK"},
		{"out of range top_p", map[string]string{"GOOGLE_API_KEY": "k", "GEMINI_TOP_P": "2"}, "top_p"},
		{"unknown threshold", map[string]string{"GOOGLE_API_KEY": "k", "GEMINI_SAFETY_THRESHOLD": "sometimes"}, "safety threshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := env.Load(tt.vars)
			require.Error(t, err)
			assert.ErrorIs(t, err, coda.ErrConfiguration)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadDotenv(t *testing.T) {
	t.Parallel()

	t.Run("first existing file wins", func(t *testing.T) {
		t.Parallel()
		empty, first, second := t.TempDir(), t.TempDir(), t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(first, ".env"), []byte("GOOGLE_API_KEY=from-first\n# comment\nGEMINI_TOP_K=5\n"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(second, ".env"), []byte("GOOGLE_API_KEY=from-second\n"), 0o600))

		vals, path, err := env.ReadDotenv("", empty, first, second)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(first, ".env"), path)
		assert.Equal(t, map[string]string{"GOOGLE_API_KEY": "from-first", "GEMINI_TOP_K": "5"}, vals)
	})

	t.Run("no file", func(t *testing.T) {
		t.Parallel()
		vals, path, err := env.ReadDotenv(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, path)
		assert.Nil(t, vals)
	})

	t.Run("unreadable path is a configuration error", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, ".env"), 0o700))
		_, _, err := env.ReadDotenv(dir)
		assert.ErrorIs(t, err, coda.ErrConfiguration)
	})
}

func TestMerge(t *testing.T) {
	t.Parallel()
	vars := env.Merge(
		map[string]string{"GOOGLE_API_KEY": "from-file", "GEMINI_MODEL_NAME": "file-model"},
		[]string{"GOOGLE_API_KEY=from-process", "EMPTY=", "MALFORMED", "WITH_EQUALS=a=b"},
	)
	assert.Equal(t, map[string]string{
		"GOOGLE_API_KEY":    "from-process",
		"GEMINI_MODEL_NAME": "file-model",
		"EMPTY":             "",
		"WITH_EQUALS":       "a=b",
	}, vars)
}

func TestEnviron(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("GOOGLE_API_KEY=from-file\nGEMINI_MAX_TOKENS=100\n"), 0o600))

	vars, used, err := env.Environ([]string{"GEMINI_MAX_TOKENS=200"}, dir)
	require.NoError(t, err)
	assert.Equal(t, path, used)

	cfg, err := env.Load(vars)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.APIKey)
	assert.Equal(t, 200, cfg.Generation.MaxTokens)
}
