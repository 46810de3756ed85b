package ui

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/faultnote/internal/notion"
)

var testPages = []notion.Page{
	{ID: "11111111-1111-1111-1111-111111111111", Title: "Build failures", URL: "https://www.notion.so/build"},
	{ID: "22222222-2222-2222-2222-222222222222", Title: "Deploy notes"},
}

func newTestPrinter() (*Printer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewPrinter(&buf).SetWidth(80), &buf
}

func TestHeaderRenderKeepsParamOrder(t *testing.T) {
	out := NewHeader("Append entry", "faultnote append",
		Param{Key: "Page", Value: "Build failures"},
		Param{Key: "Code", Value: "yes"},
	).SetWidth(80).Render()

	assert.Contains(t, out, "APPEND ENTRY")
	assert.Contains(t, out, "faultnote append")
	page := strings.Index(out, "Build failures")
	code := strings.Index(out, "yes")
	require.NotEqual(t, -1, page)
	require.NotEqual(t, -1, code)
	assert.Less(t, page, code)
}

func TestHeaderWithoutParams(t *testing.T) {
	out := NewHeader("Pages", "faultnote pages").SetWidth(80).Render()
	assert.Contains(t, out, "PAGES")
	assert.NotContains(t, out, ":")
}

func TestResultRender(t *testing.T) {
	t.Run("success lists details", func(t *testing.T) {
		out := NewSuccessResult("Entry appended", Param{Key: "Page", Value: "Deploy notes"}).SetWidth(80).Render()
		assert.Contains(t, out, "SUCCESS")
		assert.Contains(t, out, "Entry appended")
		assert.Contains(t, out, "Deploy notes")
	})

	t.Run("failure shows error and tips", func(t *testing.T) {
		out := NewFailureResult("Append failed", errors.New("boom"), []string{"Try again"}).SetWidth(80).Render()
		assert.Contains(t, out, "FAILED")
		assert.Contains(t, out, "Error: boom")
		assert.Contains(t, out, "Troubleshooting:")
		assert.Contains(t, out, "Try again")
	})

	t.Run("failure without tips", func(t *testing.T) {
		out := NewFailureResult("Append failed", errors.New("boom"), nil).SetWidth(80).Render()
		assert.NotContains(t, out, "Troubleshooting:")
	})

	t.Run("warning", func(t *testing.T) {
		r := NewWarningResult("No pages").SetWidth(80).AddDetail("Hint", "share one")
		out := r.String()
		assert.Contains(t, out, "WARNING")
		assert.Contains(t, out, "share one")
	})
}

func TestFormatPagesDetailed(t *testing.T) {
	out, err := FormatPages(testPages, FormatDetailed, testPages[1].ID, 80)
	require.NoError(t, err)

	assert.Contains(t, out, "Found 2 page(s)")
	assert.Contains(t, out, " 1. Build failures")
	assert.Contains(t, out, "ID:  "+testPages[0].ID)
	assert.Contains(t, out, "https://www.notion.so/build")
	assert.Contains(t, out, "Deploy notes  "+LastUsedMarker+" last used")
}

func TestFormatPagesDefaultsToDetailed(t *testing.T) {
	want, err := FormatPages(testPages, FormatDetailed, "", 80)
	require.NoError(t, err)
	got, err := FormatPages(testPages, "", "", 80)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFormatPagesCompact(t *testing.T) {
	out, err := FormatPages(testPages, FormatCompact, testPages[0].ID, 80)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], LastUsedMarker+" Build failures"))
	assert.True(t, strings.HasPrefix(lines[1], "  Deploy notes"))
	assert.True(t, strings.HasSuffix(lines[1], testPages[1].ID))
	// ids line up
	col := func(line, id string) int { return runewidth.StringWidth(line[:strings.Index(line, id)]) }
	assert.Equal(t, col(lines[0], testPages[0].ID), col(lines[1], testPages[1].ID))
}

func TestFormatPagesJSON(t *testing.T) {
	out, err := FormatPages(testPages, FormatJSON, testPages[0].ID, 80)
	require.NoError(t, err)

	var decoded []pageJSON
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.True(t, decoded[0].LastUsed)
	assert.Equal(t, "Deploy notes", decoded[1].Title)
	assert.NotContains(t, out, `"url": ""`)
}

func TestFormatPagesJSONEmptyIsArray(t *testing.T) {
	out, err := FormatPages(nil, FormatJSON, "", 80)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestFormatPagesUnknownFormat(t *testing.T) {
	_, err := FormatPages(testPages, "yaml", "", 80)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "yaml"`)
}

func TestPrinterPrintPages(t *testing.T) {
	p, buf := newTestPrinter()
	require.NoError(t, p.PrintPages(testPages, FormatCompact, ""))
	assert.Contains(t, buf.String(), "Deploy notes")
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))

	buf.Reset()
	assert.Error(t, p.PrintPages(testPages, "table", ""))
	assert.Empty(t, buf.String())
}

func TestPrinterBoxes(t *testing.T) {
	p, buf := newTestPrinter()

	p.PrintHeader("Pages", "faultnote pages")
	p.PrintWait("Searching Notion", "")
	p.PrintSuccess("Done")
	p.PrintWarning("Careful")
	p.PrintFailure("Broken", errors.New("nope"), nil)

	out := buf.String()
	for _, want := range []string{"PAGES", "Searching Notion...", "Done", "Careful", "nope"} {
		assert.Contains(t, out, want)
	}
}

func TestPrinterWidthIsClamped(t *testing.T) {
	p, _ := newTestPrinter()
	assert.Equal(t, MinTerminalWidth, p.SetWidth(10).Width())
	assert.Equal(t, MaxContentWidth, p.SetWidth(500).Width())
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"  yes  \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			p, buf := newTestPrinter()
			got := p.Confirm(strings.NewReader(tt.input), "Overwrite config", []string{"The file will be replaced"})
			assert.Equal(t, tt.want, got)
			assert.Contains(t, buf.String(), "Overwrite config")
			assert.Contains(t, buf.String(), "Continue? [y/N]")
		})
	}
}
