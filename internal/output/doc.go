// Package output provides user-facing output and exit-code handling for the
// proact CLI.
//
// Every command reports through a Printer, which renders either styled,
// human-readable text or JSON for agents driving proact non-interactively:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//	printer.Success(map[string]any{"message": "Documentation generated"})
//	printer.Error(err)
//
// Styles come from lipgloss and are cleared when output is not a terminal,
// so piped output never carries ANSI escapes.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: success
//	output.ExitUserError   // 1: bad target path, invalid flags
//	output.ExitSystemError // 2: unreadable existing file, unwritable output dir
//	output.ExitConflict    // 3: target state prevents the requested write
//
// Errors built with NewUserError, NewSystemError and NewSystemErrorWithCause
// carry their code to both the JSON error payload and the process exit status.
package output
