package tui

import "fmt"

// Focus is the single area that receives navigation keys
type Focus int

const (
	FocusPageList Focus = iota
	FocusError
	FocusProblem
	FocusSolution
	FocusCode
)

// focusCount is the number of focus targets; tab cycles through all of them
const focusCount = 5

// fieldCount is the number of entry fields (every focus except the page list)
const fieldCount = focusCount - 1

// Next returns the focus target after f, wrapping to the page list
func (f Focus) Next() Focus {
	return (f + 1) % focusCount
}

// Prev returns the focus target before f, wrapping to the code field
func (f Focus) Prev() Focus {
	return (f + focusCount - 1) % focusCount
}

// Field reports whether f is one of the entry fields
func (f Focus) Field() bool {
	return f >= FocusError && f <= FocusCode
}

// fieldIndex returns the index into Model.fields for a field focus
func (f Focus) fieldIndex() int {
	return int(f - FocusError)
}

// nextField and prevField move between entry fields only, wrapping around
func (f Focus) nextField() Focus {
	return FocusError + Focus((f.fieldIndex()+1)%fieldCount)
}

func (f Focus) prevField() Focus {
	return FocusError + Focus((f.fieldIndex()+fieldCount-1)%fieldCount)
}

func (f Focus) String() string {
	switch f {
	case FocusPageList:
		return "Pages"
	case FocusError:
		return "Error"
	case FocusProblem:
		return "Problem"
	case FocusSolution:
		return "Solution"
	case FocusCode:
		return "Code"
	default:
		return fmt.Sprintf("Focus(%d)", int(f))
	}
}

// Mode is whether keystrokes navigate or edit text
type Mode int

const (
	ModeNavigate Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	if m == ModeEditing {
		return "EDITING"
	}
	return "NORMAL"
}

// StatusKind tags the status line
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusLoading
	StatusSubmitting
	StatusSuccess
	StatusError
)

// Status is the message shown above the footer
type Status struct {
	Kind    StatusKind
	Message string
}

// Busy reports whether a network call is in flight
func (s Status) Busy() bool {
	return s.Kind == StatusLoading || s.Kind == StatusSubmitting
}

func idleStatus(msg string) Status    { return Status{Kind: StatusIdle, Message: msg} }
func errorStatus(msg string) Status   { return Status{Kind: StatusError, Message: msg} }
func successStatus(msg string) Status { return Status{Kind: StatusSuccess, Message: msg} }
