package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/coda"
	"github.com/fwojciec/coda/console"
	"github.com/fwojciec/coda/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func testConfig() coda.Config {
	return coda.Config{
		APIKey:          "test-key",
		Model:           "gemini-test",
		Generation:      coda.GenerationConfig{Temperature: 0.7, MaxTokens: 8192},
		SafetyThreshold: coda.DefaultSafetyThreshold,
		MaxRetries:      1,
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 130, exitCode(coda.ErrInterrupted))
	assert.Equal(t, 130, exitCode(fmt.Errorf("run: %w", coda.ErrInterrupted)))
	assert.Equal(t, 1, exitCode(fmt.Errorf("%w: GOOGLE_API_KEY not found", coda.ErrConfiguration)))
	assert.Equal(t, 1, exitCode(fmt.Errorf("%w: bad model", coda.ErrRemoteInit)))
}

func TestChat_Conversation(t *testing.T) {
	t.Parallel()

	var (
		gotCfg  coda.SessionConfig
		gotText []string
	)
	provider := &mock.Provider{
		StartSessionFn: func(_ context.Context, cfg coda.SessionConfig) (coda.Session, error) {
			gotCfg = cfg
			return &mock.Session{
				SendFn: func(_ context.Context, text string) (coda.Stream, error) {
					gotText = append(gotText, text)
					return mock.TextStream("Hi", " there!"), nil
				},
			}, nil
		},
	}
	var buf bytes.Buffer
	out := console.New(&buf, coda.DefaultTheme())

	err := chat(context.Background(), testConfig(), "You are Coda.", provider,
		mock.Lines("Hello", "EOF", "quit"), out, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, "gemini-test", gotCfg.Model)
	assert.Equal(t, "You are Coda.", gotCfg.SystemInstruction)
	assert.Equal(t, 8192, gotCfg.Generation.MaxTokens)
	assert.Equal(t, coda.DefaultSafetyThreshold, gotCfg.SafetyThreshold)
	assert.Equal(t, []string{"Hello"}, gotText)

	got := buf.String()
	assert.Contains(t, got, "Initializing model: gemini-test...\n")
	assert.Contains(t, got, "Model initialized and chat session started.\n")
	assert.Contains(t, got, "Welcome to Coda - Your AI Code Assistant!\n")
	assert.Contains(t, got, "Coda:\nHi there!\n")
	assert.Contains(t, got, "Assistant shutting down. Goodbye!\n")
}

func TestChat_StartSessionFailure(t *testing.T) {
	t.Parallel()

	provider := &mock.Provider{
		StartSessionFn: func(context.Context, coda.SessionConfig) (coda.Session, error) {
			return nil, fmt.Errorf("%w: model not found", coda.ErrRemoteInit)
		},
	}
	input := &mock.LineReader{ReadLineFn: func(context.Context, string) (string, error) {
		t.Fatal("input read before session started")
		return "", nil
	}}
	var buf bytes.Buffer

	err := chat(context.Background(), testConfig(), defaultSystemPrompt, provider,
		input, console.New(&buf, coda.DefaultTheme()), zap.NewNop())

	assert.ErrorIs(t, err, coda.ErrRemoteInit)
	assert.Equal(t, 1, exitCode(err))
	assert.NotContains(t, buf.String(), "Welcome")
}

func TestChat_RetriesUseConfiguredBudget(t *testing.T) {
	t.Parallel()

	calls := 0
	provider := &mock.Provider{
		StartSessionFn: func(context.Context, coda.SessionConfig) (coda.Session, error) {
			return &mock.Session{
				SendFn: func(context.Context, string) (coda.Stream, error) {
					calls++
					return nil, &coda.RemoteError{Status: 503, Retryable: true, Err: errors.New("unavailable")}
				},
			}, nil
		},
	}
	cfg := testConfig()
	cfg.MaxRetries = 0
	var buf bytes.Buffer

	err := chat(context.Background(), cfg, defaultSystemPrompt, provider,
		mock.Lines("Hello", "EOF"), console.New(&buf, coda.DefaultTheme()), zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, buf.String(), "API Error occurred")
}

func TestLoadSystemPrompt(t *testing.T) {
	t.Parallel()

	t.Run("built-in prompt when unset", func(t *testing.T) {
		t.Parallel()
		got, err := loadSystemPrompt("")
		require.NoError(t, err)
		assert.Contains(t, got, "You are Coda")
	})

	t.Run("file replaces built-in prompt", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "prompt.md")
		require.NoError(t, os.WriteFile(path, []byte("Be brief."), 0o600))
		got, err := loadSystemPrompt(path)
		require.NoError(t, err)
		assert.Equal(t, "Be brief.", got)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := loadSystemPrompt(filepath.Join(t.TempDir(), "nope.md"))
		assert.ErrorIs(t, err, coda.ErrConfiguration)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("blank file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "prompt.md")
		require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))
		_, err := loadSystemPrompt(path)
		assert.ErrorIs(t, err, coda.ErrConfiguration)
	})
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("no path disables logging", func(t *testing.T) {
		t.Parallel()
		logger, err := newLogger("", "info")
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
	})

	t.Run("writes JSON to the file at the configured level", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "coda.log")
		logger, err := newLogger(path, "warn")
		require.NoError(t, err)

		logger.Info("hidden")
		logger.Warn("shown", zap.Int("turn", 1))
		require.NoError(t, logger.Sync())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"shown"`)
		assert.Contains(t, string(data), `"turn":1`)
		assert.NotContains(t, string(data), "hidden")
	})

	t.Run("invalid level", func(t *testing.T) {
		t.Parallel()
		_, err := newLogger(filepath.Join(t.TempDir(), "coda.log"), "loud")
		assert.ErrorIs(t, err, coda.ErrConfiguration)
	})
}

func TestDotenvDirs(t *testing.T) {
	t.Parallel()

	dirs := dotenvDirs()
	require.NotEmpty(t, dirs)
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, dirs[0])
}
