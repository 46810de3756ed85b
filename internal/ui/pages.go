package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/muurk/faultnote/internal/notion"
)

// Page list output formats
const (
	FormatDetailed = "detailed"
	FormatCompact  = "compact"
	FormatJSON     = "json"
)

// Formats lists the accepted values of --format
var Formats = []string{FormatDetailed, FormatCompact, FormatJSON}

// pageJSON is the --format json shape of one page
type pageJSON struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url,omitempty"`
	LastUsed bool   `json:"last_used,omitempty"`
}

// FormatPages renders pages in the named format. lastPageID marks the page
// the previous entry was appended to.
func FormatPages(pages []notion.Page, format, lastPageID string, width int) (string, error) {
	switch format {
	case FormatDetailed, "":
		return formatDetailed(pages, lastPageID, clampWidth(width)), nil
	case FormatCompact:
		return formatCompact(pages, lastPageID, clampWidth(width)), nil
	case FormatJSON:
		out := make([]pageJSON, 0, len(pages))
		for _, p := range pages {
			out = append(out, pageJSON{ID: p.ID, Title: p.Title, URL: p.URL, LastUsed: p.ID == lastPageID})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown format %q (use %s)", format, strings.Join(Formats, ", "))
	}
}

// PrintPages prints pages in the named format
func (p *Printer) PrintPages(pages []notion.Page, format, lastPageID string) error {
	out, err := FormatPages(pages, format, lastPageID, p.width)
	if err != nil {
		return err
	}
	p.Println(out)
	return nil
}

func formatDetailed(pages []notion.Page, lastPageID string, width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d page(s):\n\n", len(pages))

	for i, page := range pages {
		title := runewidth.Truncate(page.Title, width-8, "…")
		line := fmt.Sprintf("%2d. %s", i+1, PageTitleStyle.Render(title))
		if page.ID == lastPageID {
			line += "  " + LastUsedStyle.Render(LastUsedMarker+" last used")
		}
		b.WriteString(line + "\n")
		b.WriteString("    " + PageIDStyle.Render("ID:  "+page.ID) + "\n")
		if page.URL != "" {
			b.WriteString("    " + PageIDStyle.Render("URL: ") + PageURLStyle.Render(page.URL) + "\n")
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// formatCompact prints one page per line with the titles padded to a column
func formatCompact(pages []notion.Page, lastPageID string, width int) string {
	titleWidth := 0
	for _, page := range pages {
		titleWidth = max(titleWidth, runewidth.StringWidth(page.Title))
	}
	// 36 columns for a dashed UUID, two for the marker
	titleWidth = max(min(titleWidth, width-40), 8)

	lines := make([]string, 0, len(pages))
	for _, page := range pages {
		mark := "  "
		if page.ID == lastPageID {
			mark = LastUsedStyle.Render(LastUsedMarker) + " "
		}
		title := runewidth.FillRight(runewidth.Truncate(page.Title, titleWidth, "…"), titleWidth)
		lines = append(lines, mark+title+"  "+PageIDStyle.Render(page.ID))
	}
	return strings.Join(lines, "\n")
}
