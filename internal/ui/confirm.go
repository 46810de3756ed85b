package ui

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Confirm prints a warning box listing warnings and reads one line from in.
// It returns true only when the answer is y or yes, ignoring case.
func (p *Printer) Confirm(in io.Reader, title string, warnings []string) bool {
	lines := []string{"", WarningTitleStyle.Render("   " + WarningMarker + "  WARNING  ─  " + title), ""}
	for _, w := range warnings {
		lines = append(lines, ParamValueStyle.Render("   • "+w))
	}
	lines = append(lines, "")

	p.Println(boxStyle(p.width, WarningColor).Render(strings.Join(lines, "\n")))
	p.Print(lipgloss.NewStyle().Foreground(WarningColor).Bold(true).Render("Continue? [y/N]: "))

	answer, err := bufio.NewReader(in).ReadString('\n')
	p.Newline()
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		p.Println(HintStyle.Render("  Cancelled."))
		return false
	}
}
