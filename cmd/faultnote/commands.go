package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/muurk/faultnote/internal/config"
	"github.com/muurk/faultnote/internal/logging"
	"github.com/muurk/faultnote/internal/notion"
	"github.com/muurk/faultnote/internal/tui"
	"github.com/muurk/faultnote/internal/ui"
	"github.com/muurk/faultnote/internal/urls"
)

// Command flags
var (
	outputFormat string

	pageID       string
	errorText    string
	problemText  string
	solutionText string
	codeText     string
	codeFile     string
	codeLanguage string
	dryRun       bool

	forceInit bool
)

func init() {
	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(appendCmd)
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}

// loadSettings resolves .env, the config file and the token, then starts
// logging. The TUI passes requireLogFile so zap never writes to the terminal.
func loadSettings(requireLogFile bool) (*config.Settings, error) {
	settings, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Environment variables win over the config file
	fileLog := settings.LogSettings()
	opts := logging.Options{Level: fileLog.Level, File: fileLog.File, RequireFile: requireLogFile}
	if v := os.Getenv(logging.LogLevelEnvVar); v != "" {
		opts.Level = v
	}
	if v := os.Getenv(logging.LogFileEnvVar); v != "" {
		opts.File = v
	}
	if err := logging.Initialize(opts); err != nil {
		// Ignore error, the logger falls back to a no-op
		_ = err
	}

	logging.Debug("Configuration loaded",
		zap.String("config", settings.Registry.Path()),
		zap.Bool("token", settings.Token != ""),
		zap.String("base_url", settings.BaseURL()))
	return settings, nil
}

func newClient(settings *config.Settings) *notion.Client {
	return notion.NewClient(notion.ClientConfig{
		BaseURL:       settings.BaseURL(),
		Token:         settings.Token,
		NotionVersion: settings.NotionVersion(),
		Timeout:       settings.Timeout(),
	})
}

// reportFailure prints err in a failure box and marks it as reported
func reportFailure(p *ui.Printer, title string, err error) error {
	p.PrintFailure(title, errors.New(notion.ShortMessage(err)), notion.TroubleshootingHint(err))
	logging.Error(title, zap.Error(err))
	return fmt.Errorf("%w: %w", errReported, err)
}

// requireToken fails before any request is sent when no token was found
func requireToken(p *ui.Printer, settings *config.Settings) error {
	if err := settings.RequireToken(); err != nil {
		return reportFailure(p, "No integration token", notion.NewAuthError(0, err.Error()))
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the interactive form needs a terminal; use 'faultnote append' from scripts")
	}

	settings, err := loadSettings(true)
	if err != nil {
		return err
	}
	defer logging.Sync()

	model := tui.New(tui.Options{
		Client:        newClient(settings),
		Registry:      settings.Registry,
		Timeout:       settings.Timeout(),
		CodeLanguage:  settings.CodeLanguage(),
		ClearOnSubmit: settings.ClearOnSubmit(),
		LastPageID:    settings.Registry.LastPage(),
	})

	logging.Info("Starting interactive form")
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive form error: %w", err)
	}
	return nil
}

// pagesCmd lists the pages shared with the integration
var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List pages shared with the integration",
	Long: `List the Notion pages your integration can append to.

Only pages explicitly shared with the integration are returned, and only the
first 100 search results are shown.`,
	Example: `  # Numbered list with ids and URLs
  faultnote pages

  # One page per line
  faultnote pages --format compact

  # JSON for scripting
  faultnote pages --format json | jq -r '.[0].id'`,
	Args: cobra.NoArgs,
	RunE: runPages,
}

func init() {
	pagesCmd.Flags().StringVar(&outputFormat, "format", ui.FormatDetailed, "Output format ("+strings.Join(ui.Formats, ", ")+")")
}

func runPages(cmd *cobra.Command, args []string) error {
	p := ui.NewPrinter(cmd.OutOrStdout())
	if _, err := ui.FormatPages(nil, outputFormat, "", p.Width()); err != nil {
		return err
	}

	settings, err := loadSettings(false)
	if err != nil {
		return err
	}
	defer logging.Sync()

	// JSON output stays machine readable, failures go to stderr
	pretty := outputFormat != ui.FormatJSON
	failures := p
	if !pretty {
		failures = ui.NewPrinter(cmd.ErrOrStderr())
	}

	if err := requireToken(failures, settings); err != nil {
		return err
	}
	if pretty {
		p.PrintWait("Searching Notion for shared pages", "")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), settings.Timeout())
	defer cancel()

	pages, err := newClient(settings).ListPages(ctx)
	if err != nil {
		return reportFailure(failures, "Could not list pages", err)
	}

	if len(pages) == 0 && pretty {
		p.PrintWarning("No pages shared",
			ui.Param{Key: "Hint", Value: "Share a page with your integration from its ••• menu"},
			ui.Param{Key: "Docs", Value: urls.SharePages})
		return nil
	}

	return p.PrintPages(pages, outputFormat, settings.Registry.LastPage())
}

// appendCmd appends one entry without the interactive form
var appendCmd = &cobra.Command{
	Use:   "append",
	Short: "Append an entry to a page",
	Long: `Append a fault log entry to a Notion page without opening the form.

Error, Problem and Solution are required. Code is optional and may come from
--code or from a file with --code-file (use - for stdin).

When --page is omitted the page of the previous successful append is used.`,
	Example: `  # Append to a page by id
  faultnote append --page 1a2b3c --error "panic: nil map" \
    --problem "map never initialised" --solution "make() in constructor"

  # Attach a snippet from a file
  faultnote append --page 1a2b3c --error "..." --problem "..." --solution "..." \
    --code-file fix.go --language go

  # Preview the blocks without sending anything
  faultnote append --error "..." --problem "..." --solution "..." --dry-run`,
	Args: cobra.NoArgs,
	RunE: runAppend,
}

func init() {
	appendCmd.Flags().StringVar(&pageID, "page", "", "Page id (default is the last page appended to)")
	appendCmd.Flags().StringVar(&errorText, "error", "", "What went wrong")
	appendCmd.Flags().StringVar(&problemText, "problem", "", "Why it happened")
	appendCmd.Flags().StringVar(&solutionText, "solution", "", "How it was fixed")
	appendCmd.Flags().StringVar(&codeText, "code", "", "Optional code snippet")
	appendCmd.Flags().StringVar(&codeFile, "code-file", "", "Read the code snippet from a file, - for stdin")
	appendCmd.Flags().StringVar(&codeLanguage, "language", "", "Code block language (default from config, see "+urls.CodeLanguages+")")
	appendCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the entry and the blocks that would be sent")
	appendCmd.MarkFlagsMutuallyExclusive("code", "code-file")
}

func runAppend(cmd *cobra.Command, args []string) error {
	p := ui.NewPrinter(cmd.OutOrStdout())

	settings, err := loadSettings(false)
	if err != nil {
		return err
	}
	defer logging.Sync()

	code := codeText
	if codeFile != "" {
		if code, err = readCode(cmd.InOrStdin(), codeFile); err != nil {
			return err
		}
	}

	language := codeLanguage
	if language == "" {
		language = settings.CodeLanguage()
	}

	entry := notion.Entry{
		Error:    errorText,
		Problem:  problemText,
		Solution: solutionText,
		Code:     code,
		Language: language,
	}

	if missing := entry.MissingFields(); len(missing) > 0 {
		return reportFailure(p, "Entry incomplete",
			notion.NewValidationError("missing "+strings.Join(missing, ", ")))
	}

	target := strings.TrimSpace(pageID)
	if target == "" {
		target = settings.Registry.LastPage()
	}

	if dryRun {
		return printDryRun(p, target, entry)
	}

	if target == "" {
		return reportFailure(p, "No page selected",
			notion.NewValidationError("pass --page; run 'faultnote pages' to list page ids"))
	}
	if err := requireToken(p, settings); err != nil {
		return err
	}

	params := []ui.Param{{Key: "Page", Value: target}}
	if entry.HasCode() {
		params = append(params, ui.Param{Key: "Code", Value: language})
	}
	p.PrintHeader("Append entry", "faultnote append", params...)

	ctx, cancel := context.WithTimeout(cmd.Context(), settings.Timeout())
	defer cancel()

	if err := newClient(settings).AppendEntry(ctx, target, entry); err != nil {
		return reportFailure(p, "Append failed", err)
	}

	settings.Registry.SetLastPage(target)
	if err := settings.Registry.Save(); err != nil {
		// The entry is already on the page
		logging.Warn("Failed to record last page", zap.Error(err))
	}

	p.PrintSuccess("Entry appended", params...)
	return nil
}

// readCode reads a snippet from path, or from stdin when path is "-"
func readCode(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read code from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read code file: %w", err)
	}
	return string(data), nil
}

// printDryRun shows the entry as it will read on the page and the JSON
// body of the append request
func printDryRun(p *ui.Printer, target string, entry notion.Entry) error {
	if target == "" {
		target = "(none selected)"
	}
	p.PrintHeader("Dry run", "faultnote append --dry-run", ui.Param{Key: "Page", Value: target})

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(p.Width()-4),
	)
	if err == nil {
		if rendered, rerr := renderer.Render(entry.Markdown()); rerr == nil {
			p.Print(rendered)
		} else {
			err = rerr
		}
	}
	if err != nil {
		logging.Debug("Markdown render failed, printing source", zap.Error(err))
		p.Println(entry.Markdown())
	}

	blocks, err := json.MarshalIndent(map[string]any{"children": notion.BuildEntryBlocks(entry)}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	p.Println(string(blocks))

	p.PrintWarning("Nothing was sent", ui.Param{Key: "Send", Value: "run again without --dry-run"})
	return nil
}

// configCmd groups config file commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	Long: `Inspect or create the faultnote configuration file.

The file holds API settings and preferences. The integration token is never
stored in it; set NOTION_API_KEY or use a .env file instead.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Example: `  # Create the default config
  faultnote config init

  # Replace an existing config without asking
  faultnote config init --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file without asking")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	p := ui.NewPrinter(cmd.OutOrStdout())

	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	force := forceInit
	if _, statErr := os.Stat(path); statErr == nil && !force {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}
		if !p.Confirm(cmd.InOrStdin(), "Config file exists", []string{
			path,
			"Preferences and the remembered page will be reset",
		}) {
			return nil
		}
		force = true
	}

	written, err := config.CreateDefaultConfig(path, force)
	if err != nil {
		return err
	}

	p.PrintSuccess("Config written",
		ui.Param{Key: "Path", Value: written},
		ui.Param{Key: "Token", Value: "set " + config.TokenEnvVar + " or add it to .env"})
	return nil
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}
