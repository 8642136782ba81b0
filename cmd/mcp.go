package cmd

import (
	"github.com/qualens/qualens/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Qualens MCP server",
	Long:  `Launch an MCP server that allows AI agents to run quality analysis via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The server resolves the owner id per tool call, so a missing
		// owner is fine at startup. Logs go to stderr, keeping stdio
		// clean for the protocol.
		input.OwnerOptional = true
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, env)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
