package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// responsesStrategy serves o3-pro through a single synchronous POST to the
// /responses endpoint. The SDK's chat surface does not model this endpoint,
// so the request is built by hand.
type responsesStrategy struct{}

func init() {
	registerStrategy(responsesStrategy{})
}

func (responsesStrategy) Name() string { return "responses" }

const responsesInstructions = "You are a helpful assistant."

// noContentSentinel is printed when a 2xx payload carries no output text.
const noContentSentinel = "No response content found"

type responsesRequest struct {
	Model           string `json:"model"`
	Instructions    string `json:"instructions"`
	Input           string `json:"input"`
	MaxOutputTokens int64  `json:"max_output_tokens"`
	Stream          bool   `json:"stream"`
}

type responsesPayload struct {
	Output []responsesOutput `json:"output"`
}

type responsesOutput struct {
	Type    string             `json:"type"`
	Content []responsesContent `json:"content"`
}

type responsesContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (responsesStrategy) Run(ctx context.Context, logger *slog.Logger, req queryRequest) (string, error) {
	// Temperature and reasoning effort are deliberately absent from this
	// body; the endpoint call has never carried them.
	body, err := json.Marshal(responsesRequest{
		Model:           req.Model,
		Instructions:    responsesInstructions,
		Input:           req.Prompt,
		MaxOutputTokens: req.MaxTokens,
		Stream:          false,
	})
	if err != nil {
		return "", fmt.Errorf("encoding responses request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.BaseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building responses request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+req.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("direct API call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("direct API call failed: %s: %s", resp.Status, bytes.TrimSpace(detail))
	}

	var payload responsesPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("parsing responses payload: %w", err)
	}
	logger.Debug("responses payload decoded", "output_items", len(payload.Output))

	return extractResponseText(payload), nil
}

// extractResponseText returns the first output_text item found scanning the
// output array in order, or the sentinel when the payload carries none.
func extractResponseText(p responsesPayload) string {
	for _, item := range p.Output {
		if item.Type != "message" {
			continue
		}
		for _, c := range item.Content {
			if c.Type == "output_text" {
				return c.Text
			}
		}
	}
	return noContentSentinel
}
