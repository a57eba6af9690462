package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/proact/internal/legal"
)

// newLicenseCmd creates the license command.
func newLicenseCmd() *cobra.Command {
	var copyrightFlag bool
	cmd := &cobra.Command{
		Use:   "license [TARGET]",
		Short: "Print the LICENSE proact would write",
		Long: `Print the MIT LICENSE (or, with --copyright, the COPYRIGHT notice) that
proact would write for a project, without writing anything.

Examples:
  proact license                 # LICENSE for the current directory
  proact license --copyright .   # COPYRIGHT notice instead`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLicense(cmd, targetArg(args), copyrightFlag)
		},
	}
	cmd.Flags().BoolVar(&copyrightFlag, "copyright", false, "Print the COPYRIGHT notice instead of the LICENSE")
	return cmd
}

// runLicense executes the license command.
func runLicense(cmd *cobra.Command, target string, copyright bool) error {
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

	file, content := legal.LicenseFile, legal.RenderLicense(meta)
	if copyright {
		file, content = legal.CopyrightFile, legal.RenderCopyright(meta)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"file":    file,
			"content": content,
		})
	}
	printer.Print("%s", content)
	return nil
}
