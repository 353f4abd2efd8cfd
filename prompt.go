package main

import "fmt"

// buildPrompt combines the query with optional context. The exact template
// is part of the wire contract: this string is what the model receives.
func buildPrompt(query, context string) string {
	if context == "" {
		return query
	}
	return fmt.Sprintf("Context:\n%s\n\nQuery: %s", context, query)
}
