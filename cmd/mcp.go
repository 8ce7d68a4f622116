package cmd

import (
	"github.com/huangsam/clio/internal/datastore"
	"github.com/huangsam/clio/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Clio MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents list questions, score answers,
look up archetypes and fetch tuned system prompts.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Logs go to stderr, stdout carries the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, rulebook, datastore.Manager.GetStore(), logger)
	},
}
