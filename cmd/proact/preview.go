package main

import (
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/gorewood/proact/internal/output"
)

const previewWidth = 80

// newPreviewCmd creates the preview command.
func newPreviewCmd() *cobra.Command {
	var docFlag string
	cmd := &cobra.Command{
		Use:   "preview [TARGET]",
		Short: "Render a generated document in the terminal",
		Long: `Render one of the generated documents for a project as styled Markdown,
without writing anything. Project and global template overrides apply.

Examples:
  proact preview                    # ai_agent_instructions.md for the current directory
  proact preview --doc process ..   # process.md for the parent directory
  proact preview --json .           # Raw Markdown as JSON`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, targetArg(args), docFlag)
		},
	}
	cmd.Flags().StringVar(&docFlag, "doc", "instructions", "Document template to preview (see 'proact templates')")
	return cmd
}

// runPreview executes the preview command.
func runPreview(cmd *cobra.Command, target, doc string) error {
	sess, err := openSession(cmd, target, isVerbose(cmd))
	if err != nil {
		return err
	}
	defer sess.close()
	printer := sess.printer

	gen := sess.environment(nil).Build(sess.cfg, true)
	plan, err := gen.Plan(cmd.Context(), sess.options(""))
	if err != nil {
		printer.Error(err)
		return err
	}

	var content string
	var found bool
	for _, artifact := range plan.Artifacts {
		if artifact.Name == doc {
			content, found = string(artifact.Content), true
			break
		}
	}
	if !found {
		err := output.NewUserError("unknown document " + doc + ". Run 'proact templates' to list documents")
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"name":    doc,
			"content": content,
		})
	}

	rendered, err := renderMarkdown(content, printer.IsTTY())
	if err != nil {
		printer.Warn("cannot render markdown, showing raw text: %v", err)
		rendered = content
	}
	printer.Print("%s", rendered)
	return nil
}

// renderMarkdown styles markdown for the terminal. Without color it uses the
// plain "notty" style.
func renderMarkdown(content string, color bool) (string, error) {
	style := glamour.WithStylePath("notty")
	if color {
		style = glamour.WithAutoStyle()
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(previewWidth))
	if err != nil {
		return "", err
	}
	return renderer.Render(content)
}
