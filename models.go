package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var remoteModels bool

// knownModels lists the model identifiers the routing table is documented
// for. Any other identifier still works and falls through to the plain chat
// strategy.
var knownModels = []string{"o3-pro", "o3-mini", "o1-preview", "o1-mini", "gpt-4o", "gpt-4"}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Show how model identifiers map to request strategies",
	Long:  "Print the routing table for known models.\nWith --remote, also query the OpenAI API for all available chat models.",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
		fmt.Fprintf(w, "  MODEL\tSTRATEGY\t\n")
		for _, id := range knownModels {
			marker := ""
			if id == defaultModel {
				marker = " (default)"
			}
			fmt.Fprintf(w, "  %s\t%s%s\t\n", id, routeModel(id).Name(), marker)
		}
		w.Flush()

		if remoteModels {
			apiKey := os.Getenv(apiKeyEnv)
			if apiKey == "" {
				apiKey = cfg.APIKey
			}
			if apiKey == "" {
				return fmt.Errorf("--remote requires an API key. Set %q or run: oaipro config", apiKeyEnv)
			}

			ids, err := listRemoteModels(cmd.Context(), apiKey, resolveBaseURL(cfg.BaseURL))
			if err != nil {
				return fmt.Errorf("failed to list models: %w", err)
			}

			known := make(map[string]bool, len(knownModels))
			for _, id := range knownModels {
				known[id] = true
			}

			var extra []string
			for _, id := range ids {
				if !known[id] {
					extra = append(extra, id)
				}
			}
			sort.Strings(extra)

			if len(extra) > 0 {
				fmt.Printf("\n  Additional models:\n")
				for _, id := range extra {
					fmt.Printf("    %s\n", id)
				}
			}
		}

		fmt.Printf("\nTip: pass any full model ID with -m\n")
		return nil
	},
}

// isChatModel filters the remote listing to chat-capable models.
func isChatModel(id string) bool {
	prefixes := []string{"gpt-", "o1", "o3", "o4", "chatgpt"}
	for _, p := range prefixes {
		if strings.HasPrefix(id, p) {
			return true
		}
	}
	return false
}

// listRemoteModels fetches chat-capable model IDs from the API.
func listRemoteModels(ctx context.Context, apiKey, baseURL string) ([]string, error) {
	client := chatClient(apiKey, baseURL)

	var ids []string
	iter := client.Models.ListAutoPaging(ctx)
	for iter.Next() {
		m := iter.Current()
		if !isChatModel(m.ID) {
			continue
		}
		ids = append(ids, m.ID)
	}
	if iter.Err() != nil {
		return nil, fmt.Errorf("OpenAI API error: %v", iter.Err())
	}
	return ids, nil
}

func init() {
	modelsCmd.Flags().BoolVar(&remoteModels, "remote", false, "query the OpenAI API for all available models")
}
