package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// chatClient builds an SDK client for the chat-completion strategies.
func chatClient(apiKey, baseURL string) openai.Client {
	opts := []option.RequestOption{option.WithBaseURL(baseURL)}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	return openai.NewClient(opts...)
}

// firstChoiceContent pulls the message text out of a completion. Zero
// choices is surfaced as an error rather than papered over.
func firstChoiceContent(completion *openai.ChatCompletion) (string, error) {
	if len(completion.Choices) == 0 {
		return "", errors.New("no completion choices in response")
	}
	return completion.Choices[0].Message.Content, nil
}

// cappedChatStrategy serves the o3 and o1 reasoning families through chat
// completions. These models take max_completion_tokens and reject a
// temperature field, so none is sent.
type cappedChatStrategy struct{}

func init() {
	registerStrategy(cappedChatStrategy{})
}

func (cappedChatStrategy) Name() string { return "chat-capped" }

func (cappedChatStrategy) Run(ctx context.Context, logger *slog.Logger, req queryRequest) (string, error) {
	client := chatClient(req.APIKey, req.BaseURL)

	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
		MaxCompletionTokens: openai.Int(req.MaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	logger.Debug("chat completion received", "choices", len(completion.Choices))
	return firstChoiceContent(completion)
}

// generalChatStrategy serves every remaining model through chat completions
// with both max_tokens and temperature transmitted.
type generalChatStrategy struct{}

func init() {
	registerStrategy(generalChatStrategy{})
}

func (generalChatStrategy) Name() string { return "chat" }

func (generalChatStrategy) Run(ctx context.Context, logger *slog.Logger, req queryRequest) (string, error) {
	client := chatClient(req.APIKey, req.BaseURL)

	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
		MaxTokens:   openai.Int(req.MaxTokens),
		Temperature: openai.Float(req.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	logger.Debug("chat completion received", "choices", len(completion.Choices))
	return firstChoiceContent(completion)
}
