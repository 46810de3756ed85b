// Faultnote appends structured fault log entries to Notion pages.
//
// Running without arguments opens the interactive form: pick a page shared
// with your integration, fill in Error, Problem, Solution and optional Code,
// and submit. The entry lands at the bottom of the page as a toggleable
// heading.
//
// Usage:
//
//	faultnote [command] [flags]
//
// The integration token is read from NOTION_API_KEY (or API_KEY), and a
// .env file in the working directory is loaded first.
// See 'faultnote --help' for available commands.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/faultnote/internal/version"
)

// errReported marks errors that a command already printed in a result box
var errReported = errors.New("reported")

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var configPath string

var rootCmd = &cobra.Command{
	Use:   "faultnote",
	Short: "Log errors, causes and fixes to Notion",
	Long: `A terminal tool for keeping a fault log in Notion.

Each entry records what went wrong (Error), why (Problem), how it was fixed
(Solution) and an optional code snippet. Entries are appended to any page
shared with your Notion integration.

If no command is specified, the interactive form will launch automatically.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is the platform config dir)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "faultnote %s\n", version.Full())
	},
}
