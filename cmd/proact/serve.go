package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/gorewood/proact/internal/generate"
	"github.com/gorewood/proact/internal/logging"
	"github.com/gorewood/proact/internal/metadata"
	proactmcp "github.com/gorewood/proact/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run proact as a Model Context Protocol (MCP) server over stdio.

This exposes proact operations as MCP tools that any MCP-capable agent
environment can use (Claude Code, Cursor, Windsurf, Gemini CLI, etc).

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "proact": {
        "command": "proact",
        "args": ["serve"]
      }
    }
  }

Available tools: resolve_metadata, render_license, plan_docs, generate_docs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.New(isVerbose(cmd), cmd.ErrOrStderr())
			defer func() { _ = logger.Sync() }()

			server := proactmcp.NewServer(buildVersion(), &proactmcp.Service{
				Env: generate.Environment{
					Identity: metadata.NewGitIdentity(nil, logger),
					Logger:   logger,
				},
			})
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
