// cmd/neocli/apikey.go
package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/yackko/neo-analyzer/internal/config"
)

// resolveAPIKey returns the configured API key, prompting for it when stdin
// is a terminal and no key is configured.
func resolveAPIKey(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("API key is missing. Set %s (or %s in .env) or run with --offline", config.APIKeyEnvVar, config.LegacyAPIKeyEnvVar)
	}
	fmt.Fprint(os.Stderr, "Enter NASA API key: ")
	byteKey, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr) // Newline after input
	if err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	key := strings.TrimSpace(string(byteKey))
	if key == "" {
		return "", fmt.Errorf("API key is missing. Please set the %s environment variable", config.APIKeyEnvVar)
	}
	return key, nil
}
