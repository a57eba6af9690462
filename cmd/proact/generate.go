package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/proact/internal/generate"
	"github.com/gorewood/proact/internal/output"
	"github.com/gorewood/proact/internal/writer"
)

// generateFlags holds the root command's generation flags.
type generateFlags struct {
	outputDir string
	dryRun    bool
}

// runGenerate executes a generation run against target.
func runGenerate(cmd *cobra.Command, target string, flags generateFlags) error {
	verbose := isVerbose(cmd) || flags.dryRun
	sess, err := openSession(cmd, target, verbose)
	if err != nil {
		return err
	}
	defer sess.close()
	printer := sess.printer

	opts := sess.options(flags.outputDir)
	if verbose {
		printer.Stderr("Proact %s\n", buildVersion())
		printer.Stderr("Target project: %s\n", sess.target)
		printer.Stderr("Output directory: %s\n", generate.ResolveOutputDir(sess.target, opts.OutputDir))
		if flags.dryRun {
			printer.Stderr("Mode: DRY RUN (no files will be created)\n")
		}
	}

	progress := func(string) {}
	if verbose {
		progress = func(line string) { printer.Stderr("%s\n", line) }
	}

	gen := sess.environment(progress).Build(sess.cfg, flags.dryRun)
	report, err := gen.Run(cmd.Context(), opts)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(report)
	}

	printSummary(printer, report)
	if verbose {
		printIncludes(printer)
	}
	return nil
}

// printSummary writes the per-file outcome list to stdout.
func printSummary(printer *output.Printer, report *generate.Report) {
	styles := printer.Styles()
	if report.DryRun {
		printer.Println(styles.Warning.Render("DRY RUN completed - no files were created"))
	} else {
		printer.Println(styles.Success.Render("AI agent documentation generated successfully!"))
	}

	for _, res := range report.Results {
		printer.Print("%s %s\n", styles.Bold.Render(summaryVerb(res, report.DryRun)+":"), res.Path)
	}
	for _, skip := range report.Skipped {
		printer.Print("%s %s\n", styles.Muted.Render("Skipped:"), skip.Name)
	}

	if fields := report.Metadata.UsesPlaceholders(); len(fields) > 0 {
		printer.Warn("unresolved %s written as placeholders; edit COPYRIGHT and LICENSE by hand",
			strings.Join(fields, " and "))
	}
}

// summaryVerb labels a result for the summary list.
func summaryVerb(res writer.Result, dryRun bool) string {
	switch res.Decision {
	case writer.AppendWithSeparator:
		if dryRun {
			return "Would append to"
		}
		return "Appended to"
	case writer.Overwrite:
		if dryRun {
			return "Would overwrite"
		}
		return "Overwrote"
	default:
		if dryRun {
			return "Would create"
		}
		return "Created"
	}
}

// printIncludes lists what the generated documentation covers.
func printIncludes(printer *output.Printer) {
	printer.Stderr("\nDocumentation includes:\n")
	for _, item := range []string{
		"AI agent instructions (ai_agent_instructions.md)",
		"Development process guidelines (process.md)",
		"Development tools reference (tools.md)",
		"Copyright notice (COPYRIGHT)",
		"MIT License file (LICENSE)",
		"Playwright MCP setup instructions",
		"Learnings from development issues (learnings.md)",
	} {
		printer.Stderr("  • %s\n", item)
	}
}
