package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Param is one labelled value shown in a header or result box.
// Params keep their order, unlike a map.
type Param struct {
	Key   string
	Value string
}

// Header is the banner printed before a command talks to Notion
type Header struct {
	Title   string  // e.g. "APPEND ENTRY"
	Command string  // e.g. "faultnote append"
	Params  []Param // e.g. Page, Code
	Width   int
}

// NewHeader creates a header sized to the terminal
func NewHeader(title, command string, params ...Param) *Header {
	return &Header{
		Title:   title,
		Command: command,
		Params:  params,
		Width:   GetTerminalWidth(),
	}
}

// SetWidth sets the width used for rendering
func (h *Header) SetWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the styled header
func (h *Header) Render() string {
	width := max(h.Width, MinTerminalWidth)

	top := lipgloss.JoinVertical(lipgloss.Left,
		HeaderTitleStyle.Render(strings.ToUpper(h.Title)),
		HeaderCommandStyle.Render(h.Command),
	)

	content := top
	if len(h.Params) > 0 {
		divider := lipgloss.NewStyle().
			PaddingLeft(2).
			Render(RenderHorizontalDivider(max(width-8, 10), "─"))
		content = lipgloss.JoinVertical(lipgloss.Left, top, divider, renderParams(h.Params, 2))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2).
		Render(content)
}

// String implements fmt.Stringer
func (h *Header) String() string {
	return h.Render()
}

// renderParams aligns the values of params in one column
func renderParams(params []Param, indent int) string {
	keyWidth := 0
	for _, p := range params {
		keyWidth = max(keyWidth, lipgloss.Width(p.Key)+1)
	}

	keyStyle := ParamKeyStyle.PaddingLeft(indent).Width(keyWidth + indent + 1)
	lines := make([]string, 0, len(params))
	for _, p := range params {
		lines = append(lines, keyStyle.Render(p.Key+":")+ParamValueStyle.Render(p.Value))
	}
	return strings.Join(lines, "\n")
}
