package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

const apiKeyEnv = "OPENAI_API_KEY"

// queryOpts are the resolved invocation parameters for a single query.
type queryOpts struct {
	Query           string
	Context         string
	Model           string
	ReasoningEffort string
	MaxTokens       int64
	Temperature     float64
}

// runQuery resolves the API key, loads context, builds the prompt, and
// dispatches the request to the strategy matching the model identifier.
// The key is checked before anything else so a misconfigured environment
// fails without touching the network.
func runQuery(ctx context.Context, logger *slog.Logger, out io.Writer, cfg appConfig, opts queryOpts) error {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		return fmt.Errorf("%s not found in environment. Set your OpenAI API key (export %s=\"your-key-here\") or run: oaipro config", apiKeyEnv, apiKeyEnv)
	}

	contextText := loadContext(logger, opts.Context)
	prompt := buildPrompt(opts.Query, contextText)

	s := routeModel(opts.Model)
	logger.Info("sending request to OpenAI", "model", opts.Model, "strategy", s.Name())
	logger.Debug("full prompt built", "chars", len(prompt))
	if opts.ReasoningEffort != defaultEffort {
		// Accepted and validated, but no request shape carries it yet.
		logger.Debug("reasoning effort is not forwarded to the API", "effort", opts.ReasoningEffort)
	}

	text, err := s.Run(ctx, logger, queryRequest{
		Model:       opts.Model,
		Prompt:      prompt,
		APIKey:      apiKey,
		BaseURL:     resolveBaseURL(cfg.BaseURL),
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	})
	if err != nil {
		return err
	}

	logger.Info("response received successfully")
	printResponse(out, text)
	return nil
}
