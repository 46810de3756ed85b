package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/muurk/faultnote/internal/version"
)

// Application branding constants
const (
	AppName = "FAULTNOTE"
	Tagline = "fault log → notion"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants
const (
	defaultWidth    = 100 // Used until the first tea.WindowSizeMsg arrives
	defaultHeight   = 30
	minListWidth    = 24
	maxListWidth    = 48
	minFieldHeight  = 1
	fieldChromeRows = 3 // label line plus top and bottom border
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF0000") // Red

	TextColor   = lipgloss.Color("#FFFFFF") // White
	SubtleColor = lipgloss.Color("#626262") // Gray
	BorderColor = lipgloss.Color("#7D56F4") // Purple (same as primary)
)

// Common styles
var (
	PaneTitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	// Page list rows
	ListItemStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	CursorItemStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	SelectedMarkStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// Status line
	StatusSuccessStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Bold(true)

	StatusInfoStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// Pane borders; focused panes use the accent colour
	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1)

	FocusedPaneStyle = PaneStyle.
				BorderForeground(PrimaryColor)

	EditingPaneStyle = PaneStyle.
				BorderForeground(SecondaryColor)

	FieldLabelStyle = lipgloss.NewStyle().
			Bold(true)

	// Mode badges in the header
	NormalBadgeStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(PrimaryColor).
				Bold(true).
				Padding(0, 1)

	EditingBadgeStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(SecondaryColor).
				Bold(true).
				Padding(0, 1)
)

// fieldLabelColors mirror the block colours written to Notion
var fieldLabelColors = [fieldCount]lipgloss.Color{
	ErrorColor,
	lipgloss.Color("#FFD700"),
	SecondaryColor,
	PrimaryColor,
}

// RenderModeBadge renders the NORMAL/EDITING indicator
func RenderModeBadge(mode Mode) string {
	if mode == ModeEditing {
		return EditingBadgeStyle.Render(mode.String())
	}
	return NormalBadgeStyle.Render(mode.String())
}

// BuildHeaderContent creates header content with app name, version and mode badge
func BuildHeaderContent(mode Mode) string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + AppVersion())

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(Tagline)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", RenderModeBadge(mode), " ", right)
}

// RenderApplicationContainer wraps a screen with the application header,
// a footer holding help text, and an outer border sized to the terminal.
func RenderApplicationContainer(content, footerText string, mode Mode, terminalWidth, terminalHeight int) string {
	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth - 4)

	innerContent := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(BuildHeaderContent(mode)),
		contentStyle.Render(content),
		footerStyle.Render(SubtleStyle.Render(footerText)),
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top).
		Render(innerContent)

	return lipgloss.Place(terminalWidth, terminalHeight, lipgloss.Left, lipgloss.Top, bordered)
}

// truncate shortens s to fit width terminal cells, accounting for wide runes
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
