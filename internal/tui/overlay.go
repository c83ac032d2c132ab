package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wdylt/wdylt/internal/tui/layout"
)

// renderModal centres the open dialog or delete confirmation above the footer.
func (a App) renderModal() string {
	var body string
	switch a.mode {
	case ModeDialog:
		body = a.dialogBody()
	case ModeConfirmDelete:
		body = a.confirmBody()
	}

	width := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
	box := lipgloss.Place(a.width, a.height-3, lipgloss.Center, lipgloss.Center,
		a.styles.Modal.Width(width).Render(body))

	return lipgloss.JoinVertical(lipgloss.Left, box, a.renderFooter())
}

func (a App) dialogBody() string {
	d := a.dialog
	var b strings.Builder

	b.WriteString(a.styles.Title.Render(d.Title()) + "\n")
	if d.Kind == DialogAddFolder || d.Kind == DialogAddBookmark {
		b.WriteString(a.styles.Label.Render("in "+a.store.GetFolderPath(d.ParentID)) + "\n")
	}
	b.WriteString("\n")

	for i, input := range d.Inputs {
		fmt.Fprintf(&b, "%s\n%s\n\n", a.styles.Label.Render(d.Labels[i]+":"), input.View())
	}
	if d.Err != "" {
		b.WriteString(a.styles.Error.Render(d.Err) + "\n\n")
	}

	b.WriteString(a.renderHintsInline([]Hint{
		{Key: "Tab", Desc: "next"},
		{Key: "Enter", Desc: "save"},
		{Key: "Esc", Desc: "cancel"},
	}))
	return b.String()
}

// confirmBody spells out what a delete takes with it. Folder deletes are
// recursive, so the subtree size is shown before the user commits.
func (a App) confirmBody() string {
	if a.pendingDelete == nil {
		return ""
	}
	item := *a.pendingDelete
	var b strings.Builder

	if !item.IsFolder() {
		fmt.Fprintf(&b, "%s\n\n%q\n", a.styles.Title.Render("Delete Bookmark?"), item.Title())
	} else {
		fmt.Fprintf(&b, "%s\n\n%q\n\n", a.styles.Title.Render("Delete Folder?"), item.Title())

		subtree := a.store.Descendants(item.Folder.ID)
		bookmarks := len(a.store.GetBookmarksInFolder(&item.Folder.ID))
		for _, id := range subtree {
			bookmarks += len(a.store.GetBookmarksInFolder(&id))
		}
		if len(subtree) > 0 || bookmarks > 0 {
			msg := fmt.Sprintf("Also removes %d subfolders and %d bookmarks.", len(subtree), bookmarks)
			b.WriteString(a.styles.Error.Render(msg) + "\n")
		}
	}

	b.WriteString(a.styles.Help.Render("This action cannot be undone.") + "\n")
	b.WriteString(a.renderHintsInline([]Hint{
		{Key: "y/Enter", Desc: "confirm"},
		{Key: "n/Esc", Desc: "cancel"},
	}))
	return b.String()
}

func (a App) renderHelpOverlay() string {
	widths := [2]int{a.layoutConfig.Modal.HelpLeftColumnWidth, a.layoutConfig.Modal.HelpRightColumnWidth}
	var cols [2]string

	for i, groups := range a.keys.helpColumns() {
		var sections []string
		for _, g := range groups {
			lines := []string{a.styles.Title.Render(g.title)}
			for _, kb := range g.bindings {
				h := kb.Help()
				lines = append(lines, fmt.Sprintf("%-8s %s", h.Key, h.Desc))
			}
			sections = append(sections, strings.Join(lines, "\n"))
		}
		if i == len(cols)-1 {
			sections = append(sections, a.styles.Help.Render("[?/esc] close  [q] quit"))
		}
		cols[i] = lipgloss.NewStyle().Width(widths[i]).Render(strings.Join(sections, "\n\n"))
	}

	grid := lipgloss.JoinHorizontal(lipgloss.Top, cols[0], "  ", cols[1])
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 2).Render(grid))
}
