package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wdylt/wdylt/internal/model"
)

const netscapeHeader = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
`

// DefaultExportPath returns ~/Downloads/wdylt-export-YYYY-MM-DD.html.
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	name := "wdylt-export-" + time.Now().Format(time.DateOnly) + ".html"
	return filepath.Join(home, "Downloads", name), nil
}

// WriteFile exports the store to path, creating parent directories.
func WriteFile(path string, store *model.Store) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	return os.WriteFile(path, []byte(ExportHTML(store)), 0o644)
}

// ExportHTML renders the whole hierarchy as Netscape bookmark HTML, the
// format browsers and ParseHTMLBookmarks read back.
func ExportHTML(store *model.Store) string {
	w := &htmlWriter{store: store}
	w.WriteString(netscapeHeader)
	w.list(nil)
	return w.String()
}

type htmlWriter struct {
	strings.Builder
	store *model.Store
	depth int
}

// list writes the <DL> for one folder level: subfolders first, then bookmarks.
func (w *htmlWriter) list(parentID *string) {
	w.line("<DL><p>")
	w.depth++

	for _, f := range w.store.GetFoldersInFolder(parentID) {
		w.line(fmt.Sprintf("<DT><H3%s>%s</H3>", dateAttrs(f.CreatedAt, f.UpdatedAt, f.IsPrivate), html.EscapeString(f.Name)))
		w.description(f.Description)
		w.list(&f.ID)
	}

	for _, b := range w.store.GetBookmarksInFolder(parentID) {
		w.line(fmt.Sprintf(`<DT><A HREF="%s"%s>%s</A>`, html.EscapeString(b.URL), bookmarkAttrs(b), html.EscapeString(b.Title)))
		w.description(b.Description)
	}

	w.depth--
	w.line("</DL><p>")
}

func (w *htmlWriter) line(s string) {
	w.WriteString(strings.Repeat("    ", w.depth))
	w.WriteString(s)
	w.WriteByte('\n')
}

func (w *htmlWriter) description(text string) {
	if text != "" {
		w.line("<DD>" + html.EscapeString(text))
	}
}

// dateAttrs renders ADD_DATE, LAST_MODIFIED and PRIVATE, shared by folders
// and bookmarks.
func dateAttrs(created, updated time.Time, private bool) string {
	var s strings.Builder
	if !created.IsZero() {
		fmt.Fprintf(&s, ` ADD_DATE="%d"`, created.Unix())
	}
	if !updated.IsZero() && !updated.Equal(created) {
		fmt.Fprintf(&s, ` LAST_MODIFIED="%d"`, updated.Unix())
	}
	if private {
		s.WriteString(` PRIVATE="1"`)
	}
	return s.String()
}

func bookmarkAttrs(b model.Bookmark) string {
	s := dateAttrs(b.CreatedAt, b.UpdatedAt, b.IsPrivate)
	if b.VisitedAt != nil {
		s += fmt.Sprintf(` LAST_VISIT="%d"`, b.VisitedAt.Unix())
	}
	if len(b.Tags) > 0 {
		s += ` TAGS="` + html.EscapeString(strings.Join(b.Tags, ",")) + `"`
	}
	if b.Icon != "" {
		s += ` ICON="` + html.EscapeString(b.Icon) + `"`
	}
	return s
}
