package main

import (
	"context"
	"log/slog"
	"strings"
)

const (
	defaultModel       = "o3-pro"
	defaultAPIURL      = "https://api.openai.com/v1"
	defaultMaxTokens   = 2000
	defaultTemperature = 0.7
	defaultEffort      = "medium"
)

// reasoningEfforts lists accepted --reasoning-effort values.
var reasoningEfforts = []string{"low", "medium", "high"}

// queryRequest carries everything a strategy needs to issue its request.
type queryRequest struct {
	Model       string
	Prompt      string
	APIKey      string
	BaseURL     string
	MaxTokens   int64
	Temperature float64
}

// strategy is one way of turning a prompt into response text. Exactly one
// strategy handles any given model identifier.
type strategy interface {
	Name() string
	Run(ctx context.Context, logger *slog.Logger, req queryRequest) (string, error)
}

var strategies = map[string]strategy{}

func registerStrategy(s strategy) {
	strategies[s.Name()] = s
}

// routeModel maps a model identifier to its request strategy. o3-pro is the
// only model served by the responses endpoint; its o3 siblings and the o1
// family take chat completions with a capped-token bound and no temperature;
// everything else gets a plain chat completion.
func routeModel(model string) strategy {
	switch {
	case model == defaultModel:
		return strategies["responses"]
	case strings.HasPrefix(model, "o3"), strings.HasPrefix(model, "o1"):
		return strategies["chat-capped"]
	default:
		return strategies["chat"]
	}
}
