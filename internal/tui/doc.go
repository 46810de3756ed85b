// Package tui implements the interactive terminal interface for faultnote.
//
// The UI is a single Bubble Tea screen: a page list on the left and the
// four entry fields (Error, Problem, Solution, Code) on the right. It
// follows the Elm architecture. Update is the only place state changes,
// and View is a pure function of the model.
//
// # State
//
// Exactly one focus target is active at a time (the page list or one of
// the four fields). Focus and Mode together give the interaction states:
//   - Browsing: FocusPageList in ModeNavigate
//   - Editing: a field focus in ModeEditing
//   - Submitting/Done/Error: reported through Status
//
// The cursor (highlighted page) and the selected page are separate. Enter
// on the list selects; entries go to the selected page only.
//
// # Async Work
//
// Listing pages and appending entries run as tea.Cmd functions with a
// context timeout, and report back as messages. While one is in flight,
// further submit and refresh keys are ignored; navigation and editing stay
// responsive.
//
// # Usage Example
//
//	model := tui.New(tui.Options{
//	    Client:   notion.NewClient(notion.ClientConfig{Token: config.Token()}),
//	    Registry: registry,
//	})
//	program := tea.NewProgram(model, tea.WithAltScreen())
//
//	if _, err := program.Run(); err != nil {
//	    log.Fatal(err)
//	}
package tui
