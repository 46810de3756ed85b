package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// fieldLabels are the box titles, indexed like Model.fields
var fieldLabels = [fieldCount]string{
	"🔴 Error",
	"🟡 Problem",
	"🟢 Solution",
	"💻 Code (optional)",
}

// View renders the model. It has no side effects.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	listWidth, formWidth := m.paneWidths()
	paneHeight := m.bodyHeight()

	var right string
	if m.preview {
		right = m.renderPreview(formWidth, paneHeight)
	} else {
		right = m.renderForm(formWidth)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderPageList(listWidth, paneHeight), right)
	content := lipgloss.JoinVertical(lipgloss.Left, m.renderStatus(), body)

	return RenderApplicationContainer(content, m.help.View(m.activeKeyMap()), m.mode, m.width, m.height)
}

// activeKeyMap returns the bindings relevant to the current focus and mode
func (m Model) activeKeyMap() help.KeyMap {
	switch {
	case m.mode == ModeEditing:
		return m.editKeys
	case m.focus.Field():
		return fieldKeyMap{m.keys}
	default:
		return m.keys
	}
}

// paneWidths splits the content width between the page list and the form
func (m Model) paneWidths() (int, int) {
	content := max(minListWidth*2, m.width-4)
	list := min(max(content/3, minListWidth), maxListWidth)
	return list, content - list
}

// bodyHeight is the height left for the panes after the header, status
// line, footer and outer border
func (m Model) bodyHeight() int {
	return max(fieldCount*(minFieldHeight+fieldChromeRows), m.height-7)
}

func (m Model) renderStatus() string {
	if m.status.Busy() {
		line := m.spinner.View() + " " + m.status.Message
		if m.notice.Message != "" {
			line += "  " + m.renderNotice()
		}
		return line
	}

	switch m.status.Kind {
	case StatusSuccess:
		return StatusSuccessStyle.Render("✓ " + m.status.Message)
	case StatusError:
		return StatusErrorStyle.Render("✗ " + m.status.Message)
	default:
		if m.status.Message == "" {
			return StatusInfoStyle.Render(m.hint())
		}
		return StatusInfoStyle.Render(m.status.Message)
	}
}

func (m Model) renderNotice() string {
	switch m.notice.Kind {
	case StatusError:
		return StatusErrorStyle.Render("✗ " + m.notice.Message)
	case StatusSuccess:
		return StatusSuccessStyle.Render("✓ " + m.notice.Message)
	default:
		return StatusInfoStyle.Render(m.notice.Message)
	}
}

// hint is shown when there is no status message
func (m Model) hint() string {
	if _, ok := m.SelectedPage(); !ok {
		return "Select a page with enter"
	}
	return "Fill in Error, Problem and Solution, then press enter"
}

func (m Model) renderPageList(width, height int) string {
	style := PaneStyle
	if m.focus == FocusPageList {
		style = FocusedPaneStyle
	}
	inner := width - 4 // border and padding

	var b strings.Builder
	b.WriteString(PaneTitleStyle.Render("Pages"))
	b.WriteString("\n\n")

	switch {
	case len(m.pages) == 0 && m.fetching:
		b.WriteString(SubtleStyle.Render("Loading..."))
	case len(m.pages) == 0:
		b.WriteString(SubtleStyle.Render(truncate("No pages shared", inner)))
	default:
		rows := max(1, height-4)
		start := max(0, m.cursor-rows+1)
		end := min(len(m.pages), start+rows)
		for i := start; i < end; i++ {
			b.WriteString(m.renderPageRow(i, inner))
			if i < end-1 {
				b.WriteString("\n")
			}
		}
	}

	return style.Width(width - 2).Height(height - 2).Render(b.String())
}

func (m Model) renderPageRow(i, width int) string {
	mark := "  "
	if i == m.selected {
		mark = SelectedMarkStyle.Render("● ")
	}

	title := truncate(m.pages[i].Title, width-4)
	if i == m.cursor {
		return CursorItemStyle.Render("→ ") + mark + CursorItemStyle.Render(title)
	}
	return "  " + mark + ListItemStyle.Render(title)
}

func (m Model) renderForm(width int) string {
	boxes := make([]string, 0, fieldCount)
	for i := range m.fields {
		f := FocusError + Focus(i)

		style := PaneStyle
		switch {
		case m.focus == f && m.mode == ModeEditing:
			style = EditingPaneStyle
		case m.focus == f:
			style = FocusedPaneStyle
		}

		label := FieldLabelStyle.Foreground(fieldLabelColors[i]).Render(fieldLabels[i])
		if m.focus == f && m.mode == ModeEditing {
			label += SubtleStyle.Render("  editing")
		}

		boxes = append(boxes, style.Width(width-2).Render(label+"\n"+m.fields[i].View()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, boxes...)
}

func (m Model) renderPreview(width, height int) string {
	content := m.previewContent
	if content == "" {
		content = SubtleStyle.Render("Rendering preview...")
	}

	title := PaneTitleStyle.Render("Preview")
	if page, ok := m.SelectedPage(); ok {
		title += SubtleStyle.Render("  → " + truncate(page.Title, width-16))
	}

	return FocusedPaneStyle.
		Width(width - 2).
		Height(height - 2).
		Render(title + "\n" + strings.TrimRight(content, "\n"))
}
