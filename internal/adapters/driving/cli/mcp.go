package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/speaktech/transqiita/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can list the
worklist and translate articles.

By default, the server communicates over stdio using JSON-RPC.
Use --port to serve streamable HTTP instead.

Examples:
  # Stdio mode (default)
  transqiita mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  transqiita mcp serve --port 8080

Publish flags set the defaults every translate_article call starts from.`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	addPublishFlags(mcpServeCmd)
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	req, err := publishRequest(cmd)
	if err != nil {
		return err
	}
	rt, err := openRuntime(cmd.Context(), tokenFlag(cmd))
	if err != nil {
		return err
	}

	ports := &mcp.Ports{
		Worklist: rt.Worklist,
		Publish:  rt.Publish,
		Defaults: req,
	}
	if services.History != nil {
		ports.History = services.History
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
