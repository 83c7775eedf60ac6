// Command coda is a terminal chat client for Google's Gemini models.
//
// Usage:
//
//	GOOGLE_API_KEY=... coda
//
// Type a message over one or more lines and finish it with a line containing
// only EOF. The reply streams back as it is generated. Type quit or exit, or
// press Ctrl+C or Ctrl+D at the prompt, to leave.
//
// Configuration is read from the environment, seeded from a .env file in the
// working directory or next to the executable:
//
//	GOOGLE_API_KEY           API key (required)
//	GEMINI_MODEL_NAME        Model ID (default: gemini-1.5-pro-latest)
//	GEMINI_TEMPERATURE       Sampling temperature, 0 to 2 (default: 0.7)
//	GEMINI_MAX_TOKENS        Output token limit (default: 8192)
//	GEMINI_TOP_P             Nucleus sampling, 0 to 1 (default: unset)
//	GEMINI_TOP_K             Top-k sampling (default: unset)
//	GEMINI_SAFETY_THRESHOLD  Harm block threshold (default: BLOCK_MEDIUM_AND_ABOVE)
//	GEMINI_MAX_RETRIES       Retries for transient API failures (default: 2)
//	CODA_SYSTEM_PROMPT_FILE  File replacing the built-in system prompt
//	CODA_MARKDOWN            Re-render completed replies as markdown (default: false)
//	CODA_LOG_FILE            Write JSON diagnostics to this file (default: off)
//	CODA_LOG_LEVEL           debug, info, warn or error (default: info)
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fwojciec/coda"
	"github.com/fwojciec/coda/console"
	"github.com/fwojciec/coda/env"
	"github.com/fwojciec/coda/gemini"
	"github.com/fwojciec/coda/liner"
	"go.uber.org/zap"
)

// exitInterrupted follows the shell convention for SIGINT.
const exitInterrupted = 130

func main() {
	err := run()
	if err != nil && !errors.Is(err, coda.ErrInterrupted) {
		console.New(os.Stderr, coda.DefaultTheme()).Fatal(err)
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, coda.ErrInterrupted):
		return exitInterrupted
	default:
		return 1
	}
}

func run() error {
	// Ctrl+C cancels the context; the driver decides whether that ends the
	// session quietly or interrupts a reply.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Env is read here and passed on as values.
	vars, _, err := env.Environ(os.Environ(), dotenvDirs()...)
	if err != nil {
		return err
	}
	cfg, err := env.Load(vars)
	if err != nil {
		return err
	}
	systemPrompt, err := loadSystemPrompt(cfg.SystemPromptFile)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	out := console.New(os.Stdout, coda.DefaultTheme(), console.WithMarkdown(cfg.Markdown))
	out.Success("API key configured.")

	provider, err := gemini.New(ctx, cfg.APIKey)
	if err != nil {
		return err
	}

	input := liner.NewReader()
	defer input.Close()

	return chat(ctx, cfg, systemPrompt, provider, input, out, logger)
}

// chat opens the remote session and runs the read-send-render loop until
// the user leaves.
func chat(ctx context.Context, cfg coda.Config, systemPrompt string, provider coda.Provider, input coda.LineReader, out *console.Renderer, logger *zap.Logger) error {
	out.Status(fmt.Sprintf("Initializing model: %s...", cfg.Model))
	session, err := provider.StartSession(ctx, coda.SessionConfig{
		Model:             cfg.Model,
		SystemInstruction: systemPrompt,
		Generation:        cfg.Generation,
		SafetyThreshold:   cfg.SafetyThreshold,
	})
	if err != nil {
		return err
	}
	out.Success("Model initialized and chat session started.")
	logger.Info("session started",
		zap.String("model", cfg.Model),
		zap.Stringer("generation", cfg.Generation),
		zap.String("safety_threshold", string(cfg.SafetyThreshold)))

	out.Banner(cfg.Model, cfg.Generation)

	policy := coda.DefaultRetryPolicy()
	policy.MaxRetries = cfg.MaxRetries
	driver := coda.NewDriver(session, input, out,
		coda.WithLogger(logger),
		coda.WithRetryPolicy(policy))
	return driver.Run(ctx)
}

// dotenvDirs lists where a .env file is looked up, in priority order.
func dotenvDirs() []string {
	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}
	return dirs
}
