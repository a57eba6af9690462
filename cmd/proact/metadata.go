package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/proact/internal/generate"
	"github.com/gorewood/proact/internal/metadata"
)

// newMetadataCmd creates the metadata command.
func newMetadataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metadata [TARGET]",
		Short: "Show resolved project metadata",
		Long: `Show the metadata proact would use for a project: copyright year, author
(from config or git), license and repository (from Cargo.toml, then
package.json).

Examples:
  proact metadata              # Current directory
  proact metadata ../project   # Another project
  proact metadata --json .     # Output as JSON`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMetadata(cmd, targetArg(args))
		},
	}
}

// runMetadata executes the metadata command.
func runMetadata(cmd *cobra.Command, target string) error {
	sess, err := openSession(cmd, target, isVerbose(cmd))
	if err != nil {
		return err
	}
	defer sess.close()
	printer := sess.printer

	meta, err := sess.environment(nil).Build(sess.cfg, true).Metadata(cmd.Context(), sess.target)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"target":       sess.target,
			"metadata":     meta,
			"copyright":    meta.Copyright(),
			"placeholders": meta.UsesPlaceholders(),
		})
	}

	printHumanMetadata(sess, meta)
	return nil
}

func printHumanMetadata(sess *session, meta metadata.ProjectMetadata) {
	printer := sess.printer
	printer.Section("Project metadata")
	printer.KeyValue("Target", sess.target)
	printer.KeyValue("Year", meta.CurrentYear)
	printer.KeyValue("Author", meta.AuthorWithEmail())
	printer.KeyValue("License", meta.License)
	if meta.HasRepository() {
		printer.KeyValue("Repository", meta.Repository)
	} else {
		printer.KeyValue("Repository", printer.Styles().Muted.Render("(unknown)"))
	}
	printer.KeyValue("Copyright", meta.Copyright())
	if fields := meta.UsesPlaceholders(); len(fields) > 0 {
		printer.KeyValue("Placeholders", strings.Join(fields, ", "))
	}
	if len(sess.cfg.Files) > 0 {
		printer.KeyValue("Config", strings.Join(sess.cfg.Files, ", "))
	}
	printer.KeyValue("Output dir", generate.ResolveOutputDir(sess.target, sess.options("").OutputDir))
}
