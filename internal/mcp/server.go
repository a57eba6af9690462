// Package mcp provides a Model Context Protocol server for proact.
// It exposes metadata resolution, legal rendering and document generation
// as MCP tools that any MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/proact/internal/config"
	"github.com/gorewood/proact/internal/generate"
)

// Service carries what the tool handlers need to build a generator for a
// target.
type Service struct {
	Env generate.Environment
	// LoadConfig resolves configuration for a target. Nil uses config.Load.
	LoadConfig func(target string) (*config.Config, error)
}

// NewServer creates an MCP server with all proact tools registered.
func NewServer(version string, svc *Service) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "proact",
		Version: version,
	}, nil)
	registerTools(server, svc)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that write files.
// Regenerated documents replace their previous contents.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(true),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all proact tools to the server.
func registerTools(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_metadata",
		Description: "Resolve project metadata for a directory: copyright year, author from git config, and license/repository from Cargo.toml or package.json. Unresolved values are reported as placeholders.",
		Annotations: readOnlyAnnotations(),
	}, handleResolveMetadata(svc))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_license",
		Description: "Render the MIT LICENSE or the COPYRIGHT notice for a directory without writing it.",
		Annotations: readOnlyAnnotations(),
	}, handleRenderLicense(svc))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "plan_docs",
		Description: "Dry-run document generation: list every file that would be created, overwritten or appended to, with byte sizes. Changes nothing on disk.",
		Annotations: readOnlyAnnotations(),
	}, handlePlanDocs(svc))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_docs",
		Description: "Generate agent onboarding docs, LICENSE and COPYRIGHT for a directory. Regenerated docs are overwritten; learnings.md is appended to behind a timestamped separator.",
		Annotations: writeAnnotations(),
	}, handleGenerateDocs(svc))
}
