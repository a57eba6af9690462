package mcp

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/proact/internal/config"
	"github.com/gorewood/proact/internal/generate"
	"github.com/gorewood/proact/internal/legal"
	"github.com/gorewood/proact/internal/metadata"
	"github.com/gorewood/proact/internal/writer"
)

// --- Shared types ---

// TargetInput names the project directory a tool operates on.
type TargetInput struct {
	Target string `json:"target" jsonschema:"path to an existing project directory"`
}

// ArtifactResult describes one planned or performed write.
type ArtifactResult struct {
	Path          string `json:"path"           jsonschema:"file path"`
	Decision      string `json:"decision"       jsonschema:"create, overwrite or append"`
	ExistingBytes int64  `json:"existing_bytes" jsonschema:"size before the write"`
	NewBytes      int64  `json:"new_bytes"      jsonschema:"size of the generated content"`
	FinalBytes    int64  `json:"final_bytes"    jsonschema:"size after the write"`
	Written       bool   `json:"written"        jsonschema:"whether the file was changed"`
}

// DocsOutput is the output for plan_docs and generate_docs.
type DocsOutput struct {
	OutputDir  string                   `json:"output_dir"        jsonschema:"resolved output directory"`
	CreatedDir bool                     `json:"created_dir"       jsonschema:"whether the output directory is (or would be) created"`
	DryRun     bool                     `json:"dry_run"           jsonschema:"true when nothing was written"`
	Metadata   metadata.ProjectMetadata `json:"metadata"          jsonschema:"resolved project metadata"`
	Artifacts  []ArtifactResult         `json:"artifacts"         jsonschema:"per-file results in write order"`
	Skipped    []generate.Skipped       `json:"skipped,omitempty" jsonschema:"artifacts that were not produced"`
}

// --- resolve_metadata ---

// MetadataOutput is the output for the resolve_metadata tool.
type MetadataOutput struct {
	Metadata     metadata.ProjectMetadata `json:"metadata"               jsonschema:"resolved project metadata"`
	Copyright    string                   `json:"copyright"              jsonschema:"rendered copyright line"`
	Placeholders []string                 `json:"placeholders,omitempty" jsonschema:"fields left as placeholders"`
}

func handleResolveMetadata(svc *Service) mcp.ToolHandlerFor[TargetInput, MetadataOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TargetInput) (*mcp.CallToolResult, MetadataOutput, error) {
		gen, opts, err := svc.setup(input.Target, "", true)
		if err != nil {
			return nil, MetadataOutput{}, err
		}
		meta, err := gen.Metadata(ctx, opts.Target)
		if err != nil {
			return nil, MetadataOutput{}, err
		}
		return nil, MetadataOutput{
			Metadata:     meta,
			Copyright:    meta.Copyright(),
			Placeholders: meta.UsesPlaceholders(),
		}, nil
	}
}

// --- render_license ---

// LicenseInput is the input for the render_license tool.
type LicenseInput struct {
	Target string `json:"target"         jsonschema:"path to an existing project directory"`
	Kind   string `json:"kind,omitempty" jsonschema:"license (default) or copyright"`
}

// LicenseOutput is the output for the render_license tool.
type LicenseOutput struct {
	File    string `json:"file"    jsonschema:"file name the content is written to"`
	Content string `json:"content" jsonschema:"rendered text"`
}

func handleRenderLicense(svc *Service) mcp.ToolHandlerFor[LicenseInput, LicenseOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LicenseInput) (*mcp.CallToolResult, LicenseOutput, error) {
		gen, opts, err := svc.setup(input.Target, "", true)
		if err != nil {
			return nil, LicenseOutput{}, err
		}
		meta, err := gen.Metadata(ctx, opts.Target)
		if err != nil {
			return nil, LicenseOutput{}, err
		}

		switch input.Kind {
		case "", "license":
			return nil, LicenseOutput{File: legal.LicenseFile, Content: legal.RenderLicense(meta)}, nil
		case "copyright":
			return nil, LicenseOutput{File: legal.CopyrightFile, Content: legal.RenderCopyright(meta)}, nil
		default:
			return nil, LicenseOutput{}, fmt.Errorf("kind must be license or copyright, got %q", input.Kind)
		}
	}
}

// --- plan_docs / generate_docs ---

// DocsInput is the input for plan_docs and generate_docs.
type DocsInput struct {
	Target    string `json:"target"               jsonschema:"path to an existing project directory"`
	OutputDir string `json:"output_dir,omitempty" jsonschema:"output directory, relative to target unless absolute (default docs)"`
}

func handlePlanDocs(svc *Service) mcp.ToolHandlerFor[DocsInput, DocsOutput] {
	return docsHandler(svc, true)
}

func handleGenerateDocs(svc *Service) mcp.ToolHandlerFor[DocsInput, DocsOutput] {
	return docsHandler(svc, false)
}

func docsHandler(svc *Service, dryRun bool) mcp.ToolHandlerFor[DocsInput, DocsOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DocsInput) (*mcp.CallToolResult, DocsOutput, error) {
		gen, opts, err := svc.setup(input.Target, input.OutputDir, dryRun)
		if err != nil {
			return nil, DocsOutput{}, err
		}
		report, err := gen.Run(ctx, opts)
		if err != nil {
			return nil, DocsOutput{}, fmt.Errorf("generating docs: %w", err)
		}
		return nil, toDocsOutput(report), nil
	}
}

// setup loads configuration for target and builds a generator.
func (s *Service) setup(target, outputDir string, dryRun bool) (*generate.Generator, generate.Options, error) {
	if target == "" {
		return nil, generate.Options{}, errors.New("target is required")
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, generate.Options{}, fmt.Errorf("resolving target: %w", err)
	}
	if err := generate.ValidateTarget(abs); err != nil {
		return nil, generate.Options{}, err
	}

	load := s.LoadConfig
	if load == nil {
		load = config.Load
	}
	cfg, err := load(abs)
	if err != nil {
		return nil, generate.Options{}, fmt.Errorf("loading config: %w", err)
	}

	env := s.Env
	env.Progress = nil
	return env.Build(cfg, dryRun), generate.OptionsFor(cfg, abs, outputDir), nil
}

func toDocsOutput(report *generate.Report) DocsOutput {
	out := DocsOutput{
		OutputDir:  report.OutputDir,
		CreatedDir: report.CreatedDir,
		DryRun:     report.DryRun,
		Metadata:   report.Metadata,
		Artifacts:  make([]ArtifactResult, 0, len(report.Results)),
		Skipped:    report.Skipped,
	}
	for _, res := range report.Results {
		out.Artifacts = append(out.Artifacts, toArtifactResult(res))
	}
	return out
}

func toArtifactResult(res writer.Result) ArtifactResult {
	return ArtifactResult{
		Path:          res.Path,
		Decision:      res.Decision.String(),
		ExistingBytes: res.ExistingBytes,
		NewBytes:      res.NewBytes,
		FinalBytes:    res.FinalBytes,
		Written:       res.Written,
	}
}
