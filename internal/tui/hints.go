package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Hint is one key/description pair shown in the hint bar or a modal.
type Hint struct {
	Key  string
	Desc string
}

// hint labels a binding with a shorter description than its help text.
func hint(b key.Binding, desc string) Hint {
	return Hint{Key: b.Help().Key, Desc: desc}
}

// renderHints renders the bottom bar: "j/k:move h/l:fold /:filter".
func (a App) renderHints(hints []Hint) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders modal hints: "Enter save  Esc cancel".
func (a App) renderHintsInline(hints []Hint) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// contextualHints returns the hint bar for the current mode.
func (a App) contextualHints() []Hint {
	switch a.mode {
	case ModeFilter:
		return []Hint{{"type", "filter"}, {"Enter", "keep"}, {"Esc", "clear"}}
	case ModeDialog:
		return []Hint{{"Tab", "next field"}, {"Enter", "save"}, {"Esc", "cancel"}}
	case ModeConfirmDelete:
		return []Hint{{"y", "delete"}, {"n/Esc", "cancel"}}
	case ModeHelp:
		return []Hint{{"?/q/Esc", "close"}}
	}

	k := a.keys
	hints := []Hint{
		hint(k.Up, "move"),
		{"h/l", "fold"},
		hint(k.Filter, "filter"),
		hint(k.YankURL, "yank"),
		{"a/A", "add"},
		hint(k.Edit, "edit"),
		hint(k.Delete, "del"),
		hint(k.Cut, "cut"),
	}
	if a.clip != nil {
		hints = append(hints, Hint{"p/P", "paste"})
	}
	return append(hints, hint(k.Help, "help"), hint(k.Quit, "quit"))
}
