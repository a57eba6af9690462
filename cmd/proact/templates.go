package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/proact/internal/config"
	"github.com/gorewood/proact/internal/templates"
)

// newTemplatesCmd creates the templates command.
func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates [TARGET]",
		Short: "List document templates and where they come from",
		Long: `List the document templates proact renders for a project.

Templates resolve in order:
  1. <TARGET>/.proact/templates/<name>.md   (project override)
  2. <config dir>/templates/<name>.md       (global override)
  3. built-in

Each template is Markdown with YAML frontmatter (name, description, file,
mode) and a Go text/template body with .Project and .Meta available.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplates(cmd, targetArg(args))
		},
	}
}

// runTemplates executes the templates command.
func runTemplates(cmd *cobra.Command, target string) error {
	sess, err := openSession(cmd, target, isVerbose(cmd))
	if err != nil {
		return err
	}
	defer sess.close()
	printer := sess.printer

	infos := templates.NewLoader(sess.target, config.TemplatesDir()).List()

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"templates": infos})
	}

	styles := printer.Styles()
	printer.Section("Templates")
	for _, info := range infos {
		source := info.Source
		if info.Overrides != "" {
			source += " (overrides " + info.Overrides + ")"
		}
		printer.Print("%s  %s  %s\n", styles.Key.Render(info.Name), info.File, styles.Muted.Render(source))
		if info.Description != "" {
			printer.Print("    %s\n", styles.Dim.Render(info.Description))
		}
	}
	return nil
}
