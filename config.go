package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// appConfig holds user configuration loaded from the config file.
// Temperature is a pointer so that an explicit 0 in the file is
// distinguishable from the field being absent.
type appConfig struct {
	APIKey          string   `json:"api_key"`
	BaseURL         string   `json:"base_url,omitempty"`
	DefaultModel    string   `json:"default_model"`
	ReasoningEffort string   `json:"reasoning_effort,omitempty"`
	MaxTokens       int64    `json:"max_tokens,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
}

// configDir returns the oaipro configuration directory following XDG conventions.
func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "oaipro")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "oaipro")
}

// configPath returns the full path to the config file.
func configPath() string {
	return filepath.Join(configDir(), "config.json")
}

// loadConfig reads the config file and returns the parsed configuration.
// Returns a zero-value config if the file doesn't exist or can't be parsed.
func loadConfig() appConfig {
	var cfg appConfig
	data, err := os.ReadFile(configPath())
	if err != nil {
		return cfg
	}
	_ = json.Unmarshal(data, &cfg)
	return cfg
}

// resolveBaseURL returns the API base URL, defaulting to the public OpenAI
// endpoint. A trailing slash is stripped so paths can be appended directly.
func resolveBaseURL(u string) string {
	if u == "" {
		return defaultAPIURL
	}
	return strings.TrimSuffix(u, "/")
}
