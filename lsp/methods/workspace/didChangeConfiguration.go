// Package workspace implements the workspace-level notifications and
// the client-facing log helpers.
package workspace

import (
	"fmt"

	"bennypowers.dev/dtlint/internal/log"
	"bennypowers.dev/dtlint/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeConfiguration handles the workspace/didChangeConfiguration notification
func DidChangeConfiguration(req *types.RequestContext, params *protocol.DidChangeConfigurationParams) error {
	log.Debug("Configuration changed")

	config, err := types.ParseSettings(params.Settings)
	if err != nil {
		// Unparseable settings keep the previous configuration.
		req.AddWarning(fmt.Errorf("failed to parse configuration: %w", err))
		return nil
	}

	req.Server.SetConfig(config)
	log.Info("New configuration: %+v", config)

	// The catalog location may have moved with the settings.
	if err := req.Server.ReloadCatalog(); err != nil {
		req.AddWarning(fmt.Errorf("failed to reload catalog: %w", err))
	}

	// Republish findings for every open document under the new rules.
	req.Server.PublishAll(req.GLSP)

	return nil
}
