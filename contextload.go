package main

import (
	"log/slog"
	"os"
)

// loadContext resolves the --context value to literal text. A value naming
// an existing regular file is replaced by that file's contents; any other
// non-empty value is used verbatim. An unreadable file degrades to empty
// context so the query itself still runs.
func loadContext(logger *slog.Logger, input string) string {
	if input == "" {
		return ""
	}

	info, err := os.Stat(input)
	if err != nil || !info.Mode().IsRegular() {
		logger.Info("using direct context text")
		return input
	}

	logger.Info("reading context from file", "path", input)
	data, err := os.ReadFile(input)
	if err != nil {
		logger.Error("error reading context file", "path", input, "err", err)
		return ""
	}
	return string(data)
}
