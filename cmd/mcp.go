package cmd

import (
	"github.com/huangsam/maintscore/internal/llm"
	"github.com/huangsam/maintscore/internal/mcp"
	"github.com/huangsam/maintscore/schema"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the maintscore MCP server",
	Long:  `Launch an MCP server that allows AI agents to score files and query maintainability trends via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Suppress the normal header logs when running in MCP mode
		// to avoid polluting stdio which is used for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		generator, err := llm.NewOpenAIGenerator(llm.Config{APIKey: cfg.OpenAIKey, Model: cfg.Model})
		if err != nil {
			return err
		}
		return mcp.StartMCPServer(rootCtx, cfg, store, generator, schema.DefaultCatalog())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
