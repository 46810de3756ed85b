// Package ui renders the output of the non-interactive faultnote commands.
//
// The interactive form lives in package tui. The pages, append and config
// commands print once and exit, so their output is lipgloss-styled text
// written through a Printer:
//
//   - Header: command banner naming the operation and its parameters
//   - Result: success, failure and warning boxes
//   - FormatPages: page listings in detailed, compact or json form
//   - Confirm: a y/N prompt guarding destructive config operations
//
// Example:
//
//	p := ui.NewPrinter(cmd.OutOrStdout())
//	p.PrintHeader("Append entry", "faultnote append", ui.Param{Key: "Page", Value: page.Title})
//	if err := client.AppendEntry(ctx, page.ID, entry); err != nil {
//	    p.PrintFailure("Append failed", err, notion.TroubleshootingHint(err))
//	    return err
//	}
//	p.PrintSuccess("Entry appended", ui.Param{Key: "Page", Value: page.Title})
//
// # Logging Integration
//
// zap logging is silent unless FAULTNOTE_LOG_LEVEL is set, so the styled
// output is never interleaved with log lines. Set FAULTNOTE_LOG_FILE to send
// logs to a file instead of stderr.
package ui
