// Package main provides the entry point for the proact CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/proact/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the proact CLI.
func newRootCmd() *cobra.Command {
	var flags generateFlags
	cmd := &cobra.Command{
		Use:   "proact [TARGET]",
		Short: "Generate documentation for AI coding agents",
		Long: `Proact generates onboarding documentation that instructs AI coding agents
to follow best practices, apply continuous improvement, and use tools like
Playwright MCP for browser automation.

Running proact against a project directory writes:
  - <output-dir>/ai_agent_instructions.md, process.md, tools.md (regenerated)
  - <output-dir>/learnings.md (appended to behind a timestamped separator)
  - COPYRIGHT and LICENSE at the project root (regenerated)

Author, license and repository are read from git config, Cargo.toml and
package.json. Anything unresolved is written as <author> or <license>.

Examples:
  proact ../my-project              # Generate into ../my-project/docs
  proact -o agent-docs .            # Custom output dir, relative to target
  proact --dry-run ../my-project    # Show what would be written
  proact --json ../my-project       # Report results as JSON`,
		Version:       buildVersion(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if isJSONMode(cmd) {
					printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
					err := output.NewUserError("no target specified. Run 'proact --help' for usage")
					printer.Error(err)
					return err
				}
				return cmd.Help()
			}
			return runGenerate(cmd, args[0], flags)
		},
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "", "Color output: auto, always or never (default from config, else auto)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "", "Output directory for generated documentation, relative to TARGET (default from config, else docs)")
	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "Show what would be done without actually doing it (implies --verbose)")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "inspect", Title: "Inspect Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newMetadataCmd(), "inspect")
	addGroupedCommand(cmd, newLicenseCmd(), "inspect")
	addGroupedCommand(cmd, newPreviewCmd(), "inspect")
	addGroupedCommand(cmd, newTemplatesCmd(), "inspect")

	addGroupedCommand(cmd, newServeCmd(), "agent")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
