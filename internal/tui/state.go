package tui

// Mode represents the current interaction mode of the app.
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModeDialog
	ModeConfirmDelete
	ModeHelp
)

// String returns a short name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeFilter:
		return "filter"
	case ModeDialog:
		return "dialog"
	case ModeConfirmDelete:
		return "confirm-delete"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// MessageType determines the styling of the status message.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)
