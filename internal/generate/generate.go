// Package generate produces the onboarding documents for a target project
// and writes them through the merge-or-create writer.
//
// A run resolves project metadata once, renders every artifact, ensures the
// output directory exists, then writes each artifact in a fixed order:
// the document templates into the output directory, COPYRIGHT and LICENSE
// at the target root, and learnings.md last.
package generate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/gorewood/proact/internal/legal"
	"github.com/gorewood/proact/internal/logging"
	"github.com/gorewood/proact/internal/metadata"
	"github.com/gorewood/proact/internal/output"
	"github.com/gorewood/proact/internal/templates"
	"github.com/gorewood/proact/internal/writer"
)

// LearningsTemplate is the template name for the cumulative learnings log.
const LearningsTemplate = "learnings"

// Options describes one generation run.
type Options struct {
	// Target is the project root. It must be an existing directory.
	Target string
	// OutputDir receives the documents. Relative paths are taken relative
	// to Target.
	OutputDir string
	// LearningsSource replaces the built-in learnings template when set.
	// A configured source that does not exist skips learnings.md.
	LearningsSource string
	// GlobalTemplatesDir is the user-level template override directory.
	GlobalTemplatesDir string
}

// Artifact is one rendered file ready to be written.
type Artifact struct {
	Name    string      `json:"name"`
	Path    string      `json:"path"`
	Mode    writer.Mode `json:"-"`
	Source  string      `json:"source"`
	Content []byte      `json:"-"`
}

// Skipped records an artifact that was not produced.
type Skipped struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Plan is the rendered set of artifacts for a target.
type Plan struct {
	Target    string                   `json:"target"`
	OutputDir string                   `json:"output_dir"`
	Metadata  metadata.ProjectMetadata `json:"metadata"`
	Artifacts []Artifact               `json:"artifacts"`
	Skipped   []Skipped                `json:"skipped,omitempty"`
}

// Report is the outcome of a run.
type Report struct {
	Target     string                   `json:"target"`
	OutputDir  string                   `json:"output_dir"`
	DryRun     bool                     `json:"dry_run"`
	CreatedDir bool                     `json:"created_dir"`
	Metadata   metadata.ProjectMetadata `json:"metadata"`
	Results    []writer.Result          `json:"results"`
	Skipped    []Skipped                `json:"skipped,omitempty"`
}

// ProgressFunc receives one line per filesystem operation, in the order
// they are performed.
type ProgressFunc func(line string)

// Generator renders and writes documents.
type Generator struct {
	resolver *metadata.Resolver
	writer   *writer.Writer
	logger   *zap.Logger
	progress ProgressFunc
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the diagnostics logger.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) { g.logger = logging.OrNop(logger) }
}

// WithProgress sets the operation-line callback used for verbose output.
func WithProgress(fn ProgressFunc) Option {
	return func(g *Generator) { g.progress = fn }
}

// New creates a Generator.
func New(resolver *metadata.Resolver, w *writer.Writer, opts ...Option) *Generator {
	g := &Generator{
		resolver: resolver,
		writer:   w,
		logger:   zap.NewNop(),
		progress: func(string) {},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ValidateTarget checks that target exists and is a directory.
func ValidateTarget(target string) error {
	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return output.NewUserError("target path does not exist: " + target)
		}
		return output.NewSystemErrorWithCause("cannot inspect target path "+target, err)
	}
	if !info.IsDir() {
		return output.NewUserError("target path must be a directory: " + target)
	}
	return nil
}

// ResolveOutputDir returns dir relative to target unless it is absolute.
func ResolveOutputDir(target, dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(target, dir)
}

// Metadata validates target and resolves its project metadata.
func (g *Generator) Metadata(ctx context.Context, target string) (metadata.ProjectMetadata, error) {
	if err := ValidateTarget(target); err != nil {
		return metadata.ProjectMetadata{}, err
	}
	return g.resolver.Resolve(ctx, target), nil
}

// Plan resolves metadata and renders every artifact without touching disk.
func (g *Generator) Plan(ctx context.Context, opts Options) (*Plan, error) {
	if err := ValidateTarget(opts.Target); err != nil {
		return nil, err
	}

	outDir := ResolveOutputDir(opts.Target, opts.OutputDir)
	meta := g.resolver.Resolve(ctx, opts.Target)
	data := templates.Data{Project: projectName(opts.Target), Meta: meta}
	loader := templates.NewLoader(opts.Target, opts.GlobalTemplatesDir)

	plan := &Plan{Target: opts.Target, OutputDir: outDir, Metadata: meta}

	for _, name := range templates.Documents {
		if name == LearningsTemplate {
			continue
		}
		artifact, err := renderTemplate(loader, name, outDir, data)
		if err != nil {
			return nil, err
		}
		plan.Artifacts = append(plan.Artifacts, artifact)
	}

	plan.Artifacts = append(plan.Artifacts,
		Artifact{
			Name:    "copyright",
			Path:    filepath.Join(opts.Target, legal.CopyrightFile),
			Mode:    writer.ModeOverwrite,
			Source:  templates.SourceBuiltin,
			Content: []byte(legal.RenderCopyright(meta)),
		},
		Artifact{
			Name:    "license",
			Path:    filepath.Join(opts.Target, legal.LicenseFile),
			Mode:    writer.ModeOverwrite,
			Source:  templates.SourceBuiltin,
			Content: []byte(legal.RenderLicense(meta)),
		},
	)

	learnings, skipped, err := g.learnings(loader, opts, outDir, data)
	if err != nil {
		return nil, err
	}
	if skipped != nil {
		plan.Skipped = append(plan.Skipped, *skipped)
	} else {
		plan.Artifacts = append(plan.Artifacts, learnings)
	}

	return plan, nil
}

// Run plans and writes every artifact. It stops at the first failure and
// returns the report so far alongside the error.
func (g *Generator) Run(ctx context.Context, opts Options) (*Report, error) {
	plan, err := g.Plan(ctx, opts)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Target:    plan.Target,
		OutputDir: plan.OutputDir,
		DryRun:    g.writer.DryRun(),
		Metadata:  plan.Metadata,
		Skipped:   plan.Skipped,
	}
	for _, skip := range plan.Skipped {
		g.progress(fmt.Sprintf("# %s", skip.Reason))
	}

	created, err := g.writer.EnsureDir(plan.OutputDir)
	if errors.Is(err, writer.ErrNotDir) {
		return report, output.NewConflictError("output path is not a directory: " + plan.OutputDir)
	}
	if err != nil {
		return report, output.NewSystemErrorWithCause("cannot create output directory "+plan.OutputDir, err)
	}
	report.CreatedDir = created
	if created {
		g.progress("mkdir -p " + plan.OutputDir)
	} else {
		g.progress("# Directory already exists: " + plan.OutputDir)
	}

	for _, artifact := range plan.Artifacts {
		res, err := g.writer.Write(artifact.Path, artifact.Content, artifact.Mode)
		if err != nil {
			g.logger.Debug("artifact failed", zap.String("artifact", artifact.Name), zap.Error(err))
			return report, writeError(artifact, err)
		}
		g.progress(describe(res))
		report.Results = append(report.Results, res)
	}

	return report, nil
}

// learnings builds the learnings artifact. A configured source wins over the
// template chain and is copied verbatim.
func (g *Generator) learnings(loader *templates.Loader, opts Options, outDir string, data templates.Data) (Artifact, *Skipped, error) {
	if opts.LearningsSource == "" {
		artifact, err := renderTemplate(loader, LearningsTemplate, outDir, data)
		return artifact, nil, err
	}

	content, err := os.ReadFile(opts.LearningsSource)
	if errors.Is(err, os.ErrNotExist) {
		g.logger.Debug("learnings source missing", zap.String("path", opts.LearningsSource))
		return Artifact{}, &Skipped{
			Name:   LearningsTemplate,
			Reason: "No learnings source found at " + opts.LearningsSource + ", skipping",
		}, nil
	}
	if err != nil {
		return Artifact{}, nil, output.NewSystemErrorWithCause("failed to read learnings source "+opts.LearningsSource, err)
	}

	return Artifact{
		Name:    LearningsTemplate,
		Path:    filepath.Join(outDir, "learnings.md"),
		Mode:    writer.ModeAppend,
		Source:  opts.LearningsSource,
		Content: content,
	}, nil, nil
}

func renderTemplate(loader *templates.Loader, name, outDir string, data templates.Data) (Artifact, error) {
	tmpl, err := loader.Load(name)
	if err != nil {
		return Artifact{}, output.NewUserErrorWithCause("cannot load template "+name, err)
	}
	mode, err := tmpl.WriteMode()
	if err != nil {
		return Artifact{}, output.NewUserErrorWithCause("invalid template "+name, err)
	}
	content, err := tmpl.Render(data)
	if err != nil {
		return Artifact{}, output.NewUserErrorWithCause("cannot render template "+name, err)
	}
	return Artifact{
		Name:    name,
		Path:    filepath.Join(outDir, filepath.Base(tmpl.File)),
		Mode:    mode,
		Source:  tmpl.Source,
		Content: []byte(content),
	}, nil
}

func writeError(artifact Artifact, err error) error {
	if errors.Is(err, writer.ErrReadExisting) {
		return output.NewSystemErrorWithCause("failed to read existing "+filepath.Base(artifact.Path), err)
	}
	return output.NewSystemErrorWithCause("failed to write "+artifact.Path, err)
}

// describe renders the verbose operation line for a write result.
func describe(res writer.Result) string {
	if res.Decision == writer.AppendWithSeparator {
		return fmt.Sprintf("append %s (existing: %d bytes + separator + new: %d bytes)",
			res.Path, res.ExistingBytes, res.NewBytes)
	}
	return fmt.Sprintf("write %s (%d bytes)", res.Path, res.NewBytes)
}

func projectName(target string) string {
	abs, err := filepath.Abs(target)
	if err != nil {
		return filepath.Base(target)
	}
	return filepath.Base(abs)
}
