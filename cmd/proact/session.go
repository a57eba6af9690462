package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gorewood/proact/internal/config"
	"github.com/gorewood/proact/internal/envfile"
	"github.com/gorewood/proact/internal/generate"
	"github.com/gorewood/proact/internal/logging"
	"github.com/gorewood/proact/internal/metadata"
	"github.com/gorewood/proact/internal/output"
)

// session holds the per-invocation state shared by commands that operate
// on a target directory.
type session struct {
	target  string
	cfg     *config.Config
	printer *output.Printer
	logger  *zap.Logger
	verbose bool
}

// isVerbose reads the --verbose persistent flag.
func isVerbose(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("verbose")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("verbose")
	}
	return flag != nil && flag.Value.String() == "true"
}

// colorFlag reads the --color persistent flag; empty when unset.
func colorFlag(cmd *cobra.Command) string {
	flag := cmd.Flags().Lookup("color")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("color")
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// newPrinter builds a printer for cmd honoring --json and the color mode.
func newPrinter(cmd *cobra.Command, colorMode string) *output.Printer {
	out := cmd.OutOrStdout()
	isTTY := output.ResolveColorMode(colorMode, output.IsTTY(out))
	return output.NewPrinter(out, isJSONMode(cmd), isTTY).WithStderr(cmd.ErrOrStderr())
}

// openSession validates target, loads env files and configuration, and
// prepares the printer and logger. Errors are printed before returning.
func openSession(cmd *cobra.Command, target string, verbose bool) (*session, error) {
	printer := newPrinter(cmd, colorFlag(cmd))

	abs, err := filepath.Abs(target)
	if err != nil {
		err = output.NewUserErrorWithCause("invalid target path "+target, err)
		printer.Error(err)
		return nil, err
	}
	if err := generate.ValidateTarget(abs); err != nil {
		printer.Error(err)
		return nil, err
	}

	if err := envfile.LoadAll(config.EnvFiles(abs)...); err != nil {
		printer.Warn("%v", err)
	}

	cfg, err := config.Load(abs)
	if err != nil {
		err = output.NewUserErrorWithCause("invalid configuration", err)
		printer.Error(err)
		return nil, err
	}

	if colorFlag(cmd) == "" && cfg.Color != "" {
		printer = newPrinter(cmd, cfg.Color)
	}

	logger := logging.New(verbose, cmd.ErrOrStderr())
	logger.Debug("configuration loaded", zap.Strings("files", cfg.Files), zap.String("target", abs))

	return &session{
		target:  abs,
		cfg:     cfg,
		printer: printer,
		logger:  logger,
		verbose: verbose,
	}, nil
}

// environment returns the generator collaborators for this session.
func (s *session) environment(progress generate.ProgressFunc) generate.Environment {
	return generate.Environment{
		Identity: metadata.NewGitIdentity(nil, s.logger),
		Logger:   s.logger,
		Progress: progress,
	}
}

// options returns run options for the session's target. A non-empty
// outputDir overrides the configured one.
func (s *session) options(outputDir string) generate.Options {
	return generate.OptionsFor(s.cfg, s.target, outputDir)
}

// close flushes the logger.
func (s *session) close() {
	_ = s.logger.Sync()
}

// targetArg returns the single positional target, defaulting to ".".
func targetArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
