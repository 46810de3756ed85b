package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/muurk/faultnote/internal/config"
	"github.com/muurk/faultnote/internal/logging"
	"github.com/muurk/faultnote/internal/notion"
)

// PageService is the subset of the Notion client the UI depends on
type PageService interface {
	ListPages(ctx context.Context) ([]notion.Page, error)
	AppendEntry(ctx context.Context, pageID string, entry notion.Entry) error
}

// Messages for async operations
type pagesLoadedMsg struct {
	pages []notion.Page
	err   error
}

type entryAppendedMsg struct {
	page notion.Page
	err  error
}

type clipboardMsg struct {
	url string
	err error
}

type previewRenderedMsg struct {
	rendered string
	err      error
}

// Options configures a Model
type Options struct {
	// Client performs the Notion calls. Required.
	Client PageService

	// Registry, when set, records the last page appended to
	Registry *config.Registry

	// Timeout bounds each Notion call; zero uses notion.DefaultTimeout
	Timeout time.Duration

	// CodeLanguage is sent as the code block language
	CodeLanguage string

	// ClearOnSubmit empties the form after a successful submission
	ClearOnSubmit bool

	// LastPageID places the cursor on that page once pages load
	LastPageID string

	// Clipboard replaces the system clipboard writer
	Clipboard func(string) error
}

// Model is the application state: fetched pages, the cursor and the
// selected page, four entry fields, focus, mode and a status line.
type Model struct {
	client         PageService
	registry       *config.Registry
	timeout        time.Duration
	codeLanguage   string
	clearOnSubmit  bool
	lastPageID     string
	writeClipboard func(string) error

	pages    []notion.Page
	cursor   int
	selected int // index into pages, -1 when nothing is selected

	fields [fieldCount]textarea.Model
	focus  Focus
	mode   Mode
	status Status
	notice Status // shown beside a busy status until the call finishes

	fetching   bool
	submitting bool

	preview        bool
	previewContent string

	width    int
	height   int
	quitting bool

	spinner  spinner.Model
	help     help.Model
	keys     navigateKeyMap
	editKeys editKeyMap
}

// fieldPlaceholders are shown in empty fields, indexed like Model.fields
var fieldPlaceholders = [fieldCount]string{
	"What went wrong? Paste the error message",
	"Why did it happen?",
	"How was it fixed?",
	"Optional snippet",
}

// New creates a model that starts fetching pages as soon as it runs
func New(opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = notion.DefaultTimeout
	}
	language := opts.CodeLanguage
	if language == "" {
		language = notion.DefaultCodeLanguage
	}
	writeClipboard := opts.Clipboard
	if writeClipboard == nil {
		writeClipboard = clipboard.WriteAll
	}

	m := Model{
		client:         opts.Client,
		registry:       opts.Registry,
		timeout:        timeout,
		codeLanguage:   language,
		clearOnSubmit:  opts.ClearOnSubmit,
		lastPageID:     opts.LastPageID,
		writeClipboard: writeClipboard,
		selected:       -1,
		focus:          FocusPageList,
		mode:           ModeNavigate,
		status:         Status{Kind: StatusLoading, Message: "Loading pages..."},
		fetching:       true,
		width:          defaultWidth,
		height:         defaultHeight,
		spinner:        s,
		help:           help.New(),
		keys:           newNavigateKeyMap(),
		editKeys:       newEditKeyMap(),
	}

	for i := range m.fields {
		ta := textarea.New()
		ta.Placeholder = fieldPlaceholders[i]
		ta.ShowLineNumbers = false
		ta.Prompt = ""
		ta.CharLimit = 0
		ta.MaxHeight = 0
		ta.Blur()
		m.fields[i] = ta
	}
	m.resizeFields()

	return m
}

// Init starts the initial page fetch
func (m Model) Init() tea.Cmd {
	return tea.Batch(fetchPagesCmd(m.client, m.timeout), m.spinner.Tick)
}

// Focus returns the active focus target
func (m Model) Focus() Focus { return m.focus }

// Mode returns whether the model is navigating or editing
func (m Model) Mode() Mode { return m.mode }

// Status returns the current status line
func (m Model) Status() Status { return m.status }

// Notice returns the message held back while a call is in flight
func (m Model) Notice() Status { return m.notice }

// Pages returns the fetched pages
func (m Model) Pages() []notion.Page { return m.pages }

// Cursor returns the index of the highlighted page
func (m Model) Cursor() int { return m.cursor }

// SelectedPage returns the page entries will be appended to
func (m Model) SelectedPage() (notion.Page, bool) {
	if m.selected < 0 || m.selected >= len(m.pages) {
		return notion.Page{}, false
	}
	return m.pages[m.selected], true
}

// FieldValue returns the text of a field focus target
func (m Model) FieldValue(f Focus) string {
	if !f.Field() {
		return ""
	}
	return m.fields[f.fieldIndex()].Value()
}

// Entry builds the entry that would be submitted now
func (m Model) Entry() notion.Entry {
	return notion.Entry{
		Error:    m.FieldValue(FocusError),
		Problem:  m.FieldValue(FocusProblem),
		Solution: m.FieldValue(FocusSolution),
		Code:     m.FieldValue(FocusCode),
		Language: m.codeLanguage,
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width - 6
		m.resizeFields()
		if m.preview {
			return m, m.renderPreviewCmd()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pagesLoadedMsg:
		return m.handlePagesLoaded(msg), nil

	case entryAppendedMsg:
		return m.handleEntryAppended(msg), nil

	case clipboardMsg:
		if msg.err != nil {
			m.setStatus(errorStatus("Could not copy to clipboard: " + msg.err.Error()))
		} else {
			m.setStatus(successStatus("Copied " + msg.url))
		}
		return m, nil

	case previewRenderedMsg:
		if msg.err != nil {
			logging.Warn("Preview render failed", zap.Error(msg.err))
			m.previewContent = m.Entry().Markdown()
		} else {
			m.previewContent = msg.rendered
		}
		return m, nil

	case spinner.TickMsg:
		// Stop ticking once nothing is in flight
		if !m.inFlight() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other textarea messages
	if m.mode == ModeEditing && m.focus.Field() {
		i := m.focus.fieldIndex()
		var cmd tea.Cmd
		m.fields[i], cmd = m.fields[i].Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.mode == ModeEditing {
		return m.handleEditingKey(msg)
	}
	return m.handleNavigateKey(msg)
}

// handleEditingKey sends everything except focus changes and esc to the field
func (m Model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.editKeys.Done):
		return m.exitEdit(), nil

	case key.Matches(msg, m.editKeys.Tab):
		return m.setFocus(m.focus.Next())

	case key.Matches(msg, m.editKeys.ShiftTab):
		return m.setFocus(m.focus.Prev())
	}

	i := m.focus.fieldIndex()
	var cmd tea.Cmd
	m.fields[i], cmd = m.fields[i].Update(msg)
	return m, cmd
}

func (m Model) handleNavigateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Tab):
		return m.setFocus(m.focus.Next())

	case key.Matches(msg, m.keys.ShiftTab):
		return m.setFocus(m.focus.Prev())

	case key.Matches(msg, m.keys.Up):
		if m.focus == FocusPageList {
			m.moveCursor(-1)
			return m, nil
		}
		return m.setFocus(m.focus.prevField())

	case key.Matches(msg, m.keys.Down):
		if m.focus == FocusPageList {
			m.moveCursor(1)
			return m, nil
		}
		return m.setFocus(m.focus.nextField())

	case key.Matches(msg, m.keys.Edit):
		return m.enterEdit()

	case key.Matches(msg, m.keys.Select):
		if m.focus == FocusPageList {
			return m.selectPage()
		}
		return m.submit()

	case key.Matches(msg, m.keys.Clear):
		return m.clearForm()

	case key.Matches(msg, m.keys.Refresh):
		return m.refresh()

	case key.Matches(msg, m.keys.Preview):
		m.preview = !m.preview
		if m.preview {
			return m, m.renderPreviewCmd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m.copyPageURL()

	case key.Matches(msg, m.keys.Dismiss):
		m.notice = Status{}
		if !m.inFlight() {
			m.status = Status{}
		}
		return m, nil
	}

	return m, nil
}

// setFocus moves focus to target. Edit mode carries over when target is a field.
func (m Model) setFocus(target Focus) (Model, tea.Cmd) {
	editing := m.mode == ModeEditing
	if m.focus.Field() {
		m.fields[m.focus.fieldIndex()].Blur()
	}
	m.focus = target
	m.mode = ModeNavigate

	if editing && target.Field() {
		return m.enterEdit()
	}
	return m, nil
}

func (m Model) enterEdit() (Model, tea.Cmd) {
	if !m.focus.Field() {
		return m, nil
	}
	m.mode = ModeEditing
	m.preview = false
	cmd := m.fields[m.focus.fieldIndex()].Focus()
	return m, cmd
}

func (m Model) exitEdit() Model {
	if m.focus.Field() {
		m.fields[m.focus.fieldIndex()].Blur()
	}
	m.mode = ModeNavigate
	return m
}

// inFlight reports whether a fetch or submit has not come back yet
func (m Model) inFlight() bool {
	return m.fetching || m.submitting
}

// setStatus replaces the status line. While a call is in flight the busy
// status stays and s becomes the notice instead.
func (m *Model) setStatus(s Status) {
	if m.inFlight() {
		m.notice = s
		return
	}
	m.status = s
}

// moveCursor moves the page cursor by delta, wrapping at both ends
func (m *Model) moveCursor(delta int) {
	n := len(m.pages)
	if n == 0 {
		return
	}
	m.cursor = ((m.cursor+delta)%n + n) % n
}

func (m Model) selectPage() (Model, tea.Cmd) {
	if len(m.pages) == 0 {
		m.setStatus(errorStatus("No pages to select"))
		return m, nil
	}
	m.selected = m.cursor
	m.setStatus(idleStatus("Selected: " + m.pages[m.selected].Title))
	return m.setFocus(FocusError)
}

func (m Model) submit() (Model, tea.Cmd) {
	if m.inFlight() {
		return m, nil
	}

	page, ok := m.SelectedPage()
	if !ok {
		m.status = errorStatus("No page selected - choose one from the list first")
		return m, nil
	}

	entry := m.Entry()
	if missing := entry.MissingFields(); len(missing) > 0 {
		m.status = errorStatus("Fill in " + strings.Join(missing, ", ") + " first")
		return m, nil
	}

	m.submitting = true
	m.status = Status{Kind: StatusSubmitting, Message: "Adding entry to " + page.Title + "..."}
	return m, tea.Batch(appendEntryCmd(m.client, m.registry, m.timeout, page, entry), m.spinner.Tick)
}

func (m Model) refresh() (Model, tea.Cmd) {
	if m.inFlight() {
		return m, nil
	}
	m.fetching = true
	m.status = Status{Kind: StatusLoading, Message: "Loading pages..."}
	return m, tea.Batch(fetchPagesCmd(m.client, m.timeout), m.spinner.Tick)
}

func (m Model) clearForm() (Model, tea.Cmd) {
	m = m.resetFields()
	m.setStatus(idleStatus("Inputs cleared"))
	m, cmd := m.setFocus(FocusError)
	if m.preview {
		return m, tea.Batch(cmd, m.renderPreviewCmd())
	}
	return m, cmd
}

func (m Model) resetFields() Model {
	for i := range m.fields {
		m.fields[i].Reset()
	}
	return m
}

func (m Model) copyPageURL() (Model, tea.Cmd) {
	page, ok := m.SelectedPage()
	if !ok {
		m.setStatus(errorStatus("No page selected"))
		return m, nil
	}
	if page.URL == "" {
		m.setStatus(errorStatus(page.Title + " has no URL"))
		return m, nil
	}
	write := m.writeClipboard
	return m, func() tea.Msg {
		return clipboardMsg{url: page.URL, err: write(page.URL)}
	}
}

func (m Model) handlePagesLoaded(msg pagesLoadedMsg) Model {
	m.fetching = false
	m.notice = Status{}
	if msg.err != nil {
		logging.Warn("Failed to load pages", zap.Error(msg.err))
		m.status = errorStatus(notion.ShortMessage(msg.err) + " (press r to retry)")
		return m
	}

	// Keep the cursor and selection on the same pages across refreshes
	cursorID, selectedID := m.lastPageID, ""
	if m.cursor < len(m.pages) {
		cursorID = m.pages[m.cursor].ID
	}
	if page, ok := m.SelectedPage(); ok {
		selectedID = page.ID
	}

	m.pages = msg.pages
	m.cursor = 0
	m.selected = -1
	for i, p := range m.pages {
		if p.ID == cursorID {
			m.cursor = i
		}
		if selectedID != "" && p.ID == selectedID {
			m.selected = i
		}
	}

	if len(m.pages) == 0 {
		m.status = idleStatus("No pages found - share a page with your integration")
	} else {
		m.status = idleStatus(fmt.Sprintf("Loaded %d pages", len(m.pages)))
	}
	return m
}

func (m Model) handleEntryAppended(msg entryAppendedMsg) Model {
	m.submitting = false
	m.notice = Status{}
	if msg.err != nil {
		m.status = errorStatus(notion.ShortMessage(msg.err))
		return m
	}

	m.lastPageID = msg.page.ID
	m.status = successStatus("Entry added to " + msg.page.Title)
	if m.clearOnSubmit {
		m = m.resetFields()
	}
	return m
}

// resizeFields fits the four fields into the right-hand pane
func (m *Model) resizeFields() {
	_, formWidth := m.paneWidths()
	height := max(minFieldHeight, m.bodyHeight()/fieldCount-fieldChromeRows)
	for i := range m.fields {
		m.fields[i].SetWidth(max(10, formWidth-4))
		m.fields[i].SetHeight(height)
	}
}

// fetchPagesCmd lists pages off the event loop
func fetchPagesCmd(client PageService, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		pages, err := client.ListPages(ctx)
		return pagesLoadedMsg{pages: pages, err: err}
	}
}

// appendEntryCmd appends the entry and, on success, records the page as last used
func appendEntryCmd(client PageService, registry *config.Registry, timeout time.Duration, page notion.Page, entry notion.Entry) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := client.AppendEntry(ctx, page.ID, entry); err != nil {
			return entryAppendedMsg{page: page, err: fmt.Errorf("append to %s: %w", page.Title, err)}
		}

		if registry != nil {
			registry.SetLastPage(page.ID)
			if err := registry.Save(); err != nil {
				logging.Warn("Failed to save last page", zap.Error(err))
			}
		}
		return entryAppendedMsg{page: page}
	}
}

// renderPreviewCmd renders the entry markdown with glamour
func (m Model) renderPreviewCmd() tea.Cmd {
	markdown := m.Entry().Markdown()
	_, width := m.paneWidths()
	wrap := max(20, width-4)

	return func() tea.Msg {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return previewRenderedMsg{err: fmt.Errorf("could not create markdown renderer: %w", err)}
		}

		rendered, err := renderer.Render(markdown)
		if err != nil {
			return previewRenderedMsg{err: fmt.Errorf("could not render markdown: %w", err)}
		}
		return previewRenderedMsg{rendered: rendered}
	}
}
