// Package cmd holds the CLI subcommands registered under the server root.
package cmd

import (
	"fmt"
	"strings"
)

// parseParams turns "key=value" arguments into intent parameters.
// Values stay strings; an empty value is kept.
func parseParams(args []string) (map[string]any, error) {
	params := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, want key=value", arg)
		}
		params[key] = value
	}
	return params, nil
}
