package generate

import (
	"time"

	"go.uber.org/zap"

	"github.com/gorewood/proact/internal/config"
	"github.com/gorewood/proact/internal/metadata"
	"github.com/gorewood/proact/internal/writer"
)

// Environment holds the process-wide collaborators a Generator is built from.
type Environment struct {
	// Identity is the VCS-backed identity; configured author values override it.
	Identity metadata.IdentityResolver
	Now      func() time.Time
	Logger   *zap.Logger
	Progress ProgressFunc
}

// Build returns a Generator configured by cfg.
func (e Environment) Build(cfg *config.Config, dryRun bool) *Generator {
	now := e.Now
	if now == nil {
		now = time.Now
	}

	identity := metadata.OverrideIdentity{
		Override: metadata.Identity{Name: cfg.Author.Name, Email: cfg.Author.Email},
		Fallback: e.Identity,
	}
	resolver := metadata.NewResolver(identity,
		metadata.WithClock(now),
		metadata.WithLogger(e.Logger),
	)
	w := writer.New(dryRun, writer.WithClock(now), writer.WithLogger(e.Logger))

	opts := []Option{WithLogger(e.Logger)}
	if e.Progress != nil {
		opts = append(opts, WithProgress(e.Progress))
	}
	return New(resolver, w, opts...)
}

// OptionsFor returns run options for target. A non-empty outputDir takes
// precedence over the configured one.
func OptionsFor(cfg *config.Config, target, outputDir string) Options {
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	if outputDir == "" {
		outputDir = config.DefaultOutputDir
	}
	return Options{
		Target:             target,
		OutputDir:          outputDir,
		LearningsSource:    cfg.LearningsSource,
		GlobalTemplatesDir: config.TemplatesDir(),
	}
}
