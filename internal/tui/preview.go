package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/wdylt/wdylt/internal/model"
	"github.com/wdylt/wdylt/internal/tui/layout"
)

func (a App) renderPreviewPane(width, height int) string {
	var sections []string
	if item, ok := a.Selected(); ok {
		inner := layout.CalculateItemWidth(width, a.layoutConfig.Pane)
		if item.IsFolder() {
			sections = a.folderPreview(*item.Folder, inner)
		} else {
			sections = a.bookmarkPreview(*item.Bookmark, inner)
		}
	}
	return a.styles.Pane.Width(width).Height(height).Render(strings.Join(sections, "\n\n"))
}

// folderPreview returns the preview as blank-line separated sections.
func (a App) folderPreview(f model.Folder, width int) []string {
	name, _ := layout.TruncateText(f.Name, width, a.layoutConfig.Text)
	path := layout.TruncatePathFromLeft(a.store.GetFolderPath(&f.ID), width, a.layoutConfig.Text)
	sections := []string{a.styles.Title.Render(name) + "\n" + a.styles.URL.Render(path)}

	if f.Description != "" {
		sections = append(sections, lipgloss.NewStyle().Width(width).Render(f.Description))
	}

	children := len(a.store.GetFoldersInFolder(&f.ID))
	counts := fmt.Sprintf("%d folders, %d bookmarks", children, len(a.store.GetBookmarksInFolder(&f.ID)))
	if nested := len(a.store.Descendants(f.ID)); nested > children {
		counts += "\n" + a.styles.Date.Render(fmt.Sprintf("%d folders in subtree", nested))
	}
	if f.IsPrivate {
		counts += "\n" + a.styles.Private.Render("private")
	}
	sections = append(sections, counts)

	return append(sections, a.styles.Date.Render("Created: "+f.CreatedAt.Format(time.DateOnly)))
}

func (a App) bookmarkPreview(b model.Bookmark, width int) []string {
	title, _ := layout.TruncateText(b.Title, width, a.layoutConfig.Text)
	url, _ := layout.TruncateText(b.URL, width, a.layoutConfig.Text)
	sections := []string{a.styles.Title.Render(title), a.styles.URL.Render(url)}

	if b.Description != "" {
		sections = append(sections, lipgloss.NewStyle().Width(width).Render(b.Description))
	}
	if len(b.Tags) > 0 {
		sections = append(sections, a.styles.Tag.Render("#"+strings.Join(b.Tags, " #")))
	}

	var meta []string
	if b.IsPrivate {
		meta = append(meta, a.styles.Private.Render("private"))
	}
	meta = append(meta, a.styles.Date.Render("Created: "+b.CreatedAt.Format(time.DateOnly)))
	if b.VisitedAt != nil {
		meta = append(meta, a.styles.Date.Render("Visited: "+timeAgo(time.Since(*b.VisitedAt))))
	}
	return append(sections, strings.Join(meta, "\n"))
}

var ageUnits = []struct {
	size   time.Duration
	suffix string
}{
	{24 * time.Hour, "d"},
	{time.Hour, "h"},
	{time.Minute, "m"},
}

// timeAgo renders an age in its largest whole unit, e.g. "3h ago".
func timeAgo(d time.Duration) string {
	for _, u := range ageUnits {
		if d >= u.size {
			return fmt.Sprintf("%d%s ago", d/u.size, u.suffix)
		}
	}
	return "just now"
}
