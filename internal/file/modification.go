package file

import "github.com/webtools-dev/tsdiag/internal/protocol"

// Modification represents a change to a document that should trigger a
// diagnostics update.
type Modification struct {
	Specifier protocol.DocumentURI
	Action    Action

	// OnDisk is true if a watched document changed on disk rather than
	// through an editor edit. If true, Version is -1 and Text is nil.
	OnDisk bool

	// Version and Text are -1/nil when not supplied: on didClose and for
	// on-disk changes.
	Version int32
	Text    []byte

	// Kind is only meaningful on Open, where the editor supplies a
	// language ID.
	Kind Kind
}

// An Action is a type of document state change.
type Action int

const (
	UnknownAction = Action(iota)
	Open
	Change
	Close
	Save
	Create
	Delete
)

func (a Action) String() string {
	switch a {
	case Open:
		return "Open"
	case Change:
		return "Change"
	case Close:
		return "Close"
	case Save:
		return "Save"
	case Create:
		return "Create"
	case Delete:
		return "Delete"
	default:
		return "Unknown"
	}
}
