package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wdylt/wdylt/internal/tui/layout"
)

var messagePrefix = map[MessageType]string{
	MessageSuccess: "✓ ",
	MessageWarning: "⚠ ",
	MessageError:   "✗ ",
}

func (a App) renderView() string {
	switch a.mode {
	case ModeHelp:
		return a.renderHelpOverlay()
	case ModeDialog, ModeConfirmDelete:
		return a.renderModal()
	}

	height := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)
	split := layout.CalculateSplit(a.width, a.layoutConfig.Pane)

	body := lipgloss.JoinVertical(lipgloss.Left,
		a.renderBreadcrumb(),
		lipgloss.JoinHorizontal(lipgloss.Top,
			a.renderTreePane(split.TreeWidth, height),
			a.renderPreviewPane(split.PreviewWidth, height),
		),
		a.renderFooter(),
	)

	// Place pads or clips to the terminal so a resize never leaves stale rows.
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, a.styles.App.Render(body))
}

// renderBreadcrumb shows where the cursor is: the folder itself, or the
// folder holding the bookmark under it.
func (a App) renderBreadcrumb() string {
	var folderID *string
	if item, ok := a.Selected(); ok {
		if item.IsFolder() {
			folderID = &item.Folder.ID
		} else {
			folderID = item.Bookmark.FolderID
		}
	}

	path := "wdylt"
	if folderID != nil {
		path += a.store.GetFolderPath(folderID)
	}
	return a.styles.Breadcrumb.Render(layout.TruncatePathFromLeft(path, a.width-4, a.layoutConfig.Text))
}

func (a App) renderTreePane(width, height int) string {
	var lines []string

	switch {
	case a.mode == ModeFilter:
		lines = append(lines, "/"+a.filterInput.View())
	case a.filterQuery != "":
		lines = append(lines, a.styles.Tag.Render("/"+a.filterQuery))
	}

	rowWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)
	visible := layout.CalculateVisibleHeight(height, len(lines))

	switch {
	case len(a.rows) == 0 && a.filterQuery != "":
		lines = append(lines, a.styles.Empty.Render("(no matches)"))
	case len(a.rows) == 0:
		lines = append(lines, a.styles.Empty.Render("(empty, press a or A to add)"))
	default:
		first := layout.CalculateViewportOffset(a.cursor, len(a.rows), visible)
		last := min(first+visible, len(a.rows))
		for i := first; i < last; i++ {
			lines = append(lines, a.renderRow(a.rows[i], i == a.cursor, rowWidth))
		}
	}

	return a.styles.PaneActive.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

func (a App) renderRow(row Row, isCursor bool, maxWidth int) string {
	marker, suffix := "  ", ""
	if row.Item.IsFolder() {
		suffix = "/"
		if row.HasChildren {
			marker = "▸ "
			if row.Expanded {
				marker = "▾ "
			}
		}
	}
	if row.Item.IsPrivate() {
		suffix += " [p]"
	}

	prefix := layout.Indent(row.Depth, a.layoutConfig.Pane) + marker
	line, _ := layout.TruncateWithPrefixSuffix(row.Item.Title(), maxWidth, prefix, suffix, a.layoutConfig.Text)

	switch {
	case isCursor:
		// The highlight spans the whole row.
		return a.styles.Cursor.Render(line + strings.Repeat(" ", max(maxWidth-layout.VisibleLength(line), 0)))
	case a.clip != nil && a.clip.ID() == row.Item.ID():
		return a.styles.Cut.Render(line)
	case row.Item.IsFolder():
		return a.styles.Folder.Render(line)
	default:
		return a.styles.Bookmark.Render(line)
	}
}

// renderFooter is the status message (or a blank line), the key hints and,
// in normal mode, the library counts.
func (a App) renderFooter() string {
	lines := []string{""}
	if a.messageText != "" {
		lines[0] = a.styles.Messages[a.messageType].Render(messagePrefix[a.messageType] + a.messageText)
	}
	if hints := a.renderHints(a.contextualHints()); hints != "" {
		lines = append(lines, hints)
	}
	if a.mode == ModeNormal {
		lines = append(lines, a.renderStatus())
	}
	return strings.Join(lines, "\n")
}

func (a App) renderStatus() string {
	status := fmt.Sprintf("[%d folders] [%d bookmarks]", len(a.store.Folders), len(a.store.Bookmarks))
	if a.clip != nil {
		status += fmt.Sprintf(" [cut: %s]", a.clip.Title())
	}
	return a.styles.Date.Render(status)
}
