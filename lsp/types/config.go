package types

import (
	"encoding/json"
	"fmt"

	"bennypowers.dev/dtlint/internal/lint"
)

// ServerConfig represents the server configuration
type ServerConfig struct {
	// CatalogPath locates the token catalog file. Relative paths
	// resolve against the workspace root. Empty means discover a
	// well-known catalog name in the workspace root.
	CatalogPath string `json:"catalogPath"`

	// TokenMatchMargin is the close-match tolerance in pixels.
	// Zero disables close matching; exact matches still report.
	TokenMatchMargin float64 `json:"tokenMatchMargin"`

	// CheckFallbacks controls whether var() fallback values are
	// compared against the catalog entry for their token.
	CheckFallbacks bool `json:"checkFallbacks"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() ServerConfig {
	return ServerConfig{
		CatalogPath:      "", // Empty = auto-discover
		TokenMatchMargin: lint.DefaultMargin,
		CheckFallbacks:   true,
	}
}

// LintOptions converts the configuration into options for a lint pass.
func (c ServerConfig) LintOptions() lint.Options {
	return lint.Options{
		Margin:         c.TokenMatchMargin,
		CheckFallbacks: c.CheckFallbacks,
	}
}

// ParseSettings merges client settings over the default configuration.
// Settings arrive as a nested object: { "designTokensLint": { ... } }.
// Fields the client omits keep their defaults, so an explicit zero
// margin is distinguishable from no margin setting at all.
func ParseSettings(settings any) (ServerConfig, error) {
	config := DefaultConfig()

	if settings == nil {
		return config, nil
	}

	settingsMap, ok := settings.(map[string]any)
	if !ok {
		return config, fmt.Errorf("settings is not a map")
	}

	// Accept both the camelCase and the kebab-case section name
	var ours any
	if val, exists := settingsMap["designTokensLint"]; exists {
		ours = val
	} else if val, exists := settingsMap["design-tokens-lint"]; exists {
		ours = val
	} else {
		// No configuration provided, use defaults
		return config, nil
	}

	// Convert to JSON and back to parse into the struct
	jsonBytes, err := json.Marshal(ours)
	if err != nil {
		return config, fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := json.Unmarshal(jsonBytes, &config); err != nil {
		return config, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	if config.TokenMatchMargin < 0 {
		config.TokenMatchMargin = 0
	}

	return config, nil
}
