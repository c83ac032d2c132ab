package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App        lipgloss.Style
	Breadcrumb lipgloss.Style // Folder path above the tree
	Pane       lipgloss.Style // Preview pane
	PaneActive lipgloss.Style // Tree pane, which owns the cursor
	Title      lipgloss.Style

	// Tree rows
	Folder   lipgloss.Style
	Bookmark lipgloss.Style
	Cursor   lipgloss.Style
	Cut      lipgloss.Style // Row waiting to be pasted
	Private  lipgloss.Style

	// Preview
	URL  lipgloss.Style
	Tag  lipgloss.Style
	Date lipgloss.Style

	// Dialogs
	Label lipgloss.Style
	Error lipgloss.Style

	// Status line, by MessageType
	Messages map[MessageType]lipgloss.Style

	Modal    lipgloss.Style
	Help     lipgloss.Style
	Empty    lipgloss.Style
	HintKey  lipgloss.Style
	HintDesc lipgloss.Style
}

// DefaultStyles returns the default style configuration:
// muted slate with a single amber accent.
func DefaultStyles() Styles {
	text := lipgloss.AdaptiveColor{Light: "#3C4650", Dark: "#C0C8D0"}
	muted := lipgloss.AdaptiveColor{Light: "#8A939C", Dark: "#66707A"}
	accent := lipgloss.AdaptiveColor{Light: "#A86A12", Dark: "#E0A040"}
	border := lipgloss.AdaptiveColor{Light: "#B0B8C0", Dark: "#3E464E"}
	danger := lipgloss.AdaptiveColor{Light: "#B03030", Dark: "#F07070"}

	row := lipgloss.NewStyle().PaddingLeft(1)
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
	faint := lipgloss.NewStyle().Foreground(muted)

	return Styles{
		App:        lipgloss.NewStyle().Padding(1, 2, 0),
		Breadcrumb: faint.PaddingLeft(1),
		Pane:       pane,
		PaneActive: pane.BorderForeground(accent),
		Title:      lipgloss.NewStyle().Bold(true).Foreground(accent),

		Folder:   row.Foreground(text).Bold(true),
		Bookmark: row.Foreground(text),
		Cursor: row.
			Background(accent).
			Foreground(lipgloss.Color("#1C1C1C")),
		Cut:     row.Foreground(muted).Italic(true),
		Private: lipgloss.NewStyle().Foreground(accent),

		URL:  faint.Underline(true),
		Tag:  faint,
		Date: faint,

		Label: faint,
		Error: lipgloss.NewStyle().Foreground(danger),

		Messages: map[MessageType]lipgloss.Style{
			MessageInfo:    lipgloss.NewStyle().Bold(true).Foreground(accent),
			MessageSuccess: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#3D7A3D", Dark: "#7CC47C"}),
			MessageWarning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#A8740C", Dark: "#F0C060"}),
			MessageError:   lipgloss.NewStyle().Bold(true).Foreground(danger),
		},

		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(1, 2),
		Help:     faint.Padding(1, 0),
		Empty:    faint.Italic(true),
		HintKey:  lipgloss.NewStyle().Foreground(accent),
		HintDesc: faint,
	}
}
