package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/wdylt/wdylt/internal/importer"
	"github.com/wdylt/wdylt/internal/model"
)

func TestExportHTML_EmptyStore(t *testing.T) {
	out := ExportHTML(model.NewStore())

	assert.Check(t, strings.HasPrefix(out, "<!DOCTYPE NETSCAPE-Bookmark-file-1>\n"))
	assert.Check(t, is.Contains(out, "<TITLE>Bookmarks</TITLE>"))
	assert.Check(t, strings.HasSuffix(out, "<DL><p>\n</DL><p>\n"))
}

func TestExportHTML_NestingAndIndent(t *testing.T) {
	store := model.NewStore()
	tech, _ := store.AddFolder(model.NewFolderParams{Name: "Tech"})
	prog, _ := store.AddFolder(model.NewFolderParams{Name: "Programming", ParentID: &tech.ID})
	_, _ = store.AddBookmark(model.NewBookmarkParams{Title: "React Docs", URL: "https://react.dev", FolderID: &prog.ID})
	_, _ = store.AddBookmark(model.NewBookmarkParams{Title: "GitHub", URL: "https://github.com"})

	out := ExportHTML(store)

	assert.Check(t, is.Contains(out, "\n    <DT><H3"))
	assert.Check(t, is.Contains(out, ">Tech</H3>\n    <DL><p>\n        <DT><H3"))
	assert.Check(t, is.Contains(out, "\n            <DT><A HREF=\"https://react.dev\""))
	assert.Check(t, is.Contains(out, "\n    <DT><A HREF=\"https://github.com\""))

	// Folders are written before the bookmarks of the same level
	assert.Check(t, strings.Index(out, "Tech</H3>") < strings.Index(out, "GitHub</A>"))
}

func TestExportHTML_Attributes(t *testing.T) {
	visited := time.Unix(1700000900, 0)
	store := model.NewStore()
	store.Folders = append(store.Folders, model.Folder{
		ID:          "f1",
		Name:        "Work",
		Description: "Day job",
		IsPrivate:   true,
	})
	folderID := "f1"
	store.Bookmarks = append(store.Bookmarks, model.Bookmark{
		ID:          "b1",
		Title:       "Q&A <board>",
		URL:         "https://example.com/?a=1&b=2",
		Description: "Docs & more",
		FolderID:    &folderID,
		Tags:        []string{"go", "lang"},
		Icon:        "https://example.com/favicon.ico",
		CreatedAt:   time.Unix(1700000000, 0),
		UpdatedAt:   time.Unix(1700000500, 0),
		VisitedAt:   &visited,
	})

	out := ExportHTML(store)

	for _, want := range []string{
		`<H3 PRIVATE="1">Work</H3>`,
		"<DD>Day job\n",
		`HREF="https://example.com/?a=1&amp;b=2"`,
		`ADD_DATE="1700000000" LAST_MODIFIED="1700000500"`,
		`LAST_VISIT="1700000900"`,
		`TAGS="go,lang"`,
		`ICON="https://example.com/favicon.ico"`,
		">Q&amp;A &lt;board&gt;</A>",
		"<DD>Docs &amp; more\n",
	} {
		assert.Check(t, is.Contains(out, want))
	}
}

func TestExportHTML_RoundTripThroughImporter(t *testing.T) {
	store := model.NewStore()
	tech, _ := store.AddFolder(model.NewFolderParams{Name: "Tech", Description: "Stuff"})
	_, _ = store.AddBookmark(model.NewBookmarkParams{
		Title:       "React Docs",
		URL:         "react.dev",
		Description: "Learn React",
		FolderID:    &tech.ID,
		IsPrivate:   true,
	})

	folders, bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(ExportHTML(store)))
	assert.NilError(t, err)
	assert.Assert(t, is.Len(folders, 1))
	assert.Assert(t, is.Len(bookmarks, 1))

	assert.Check(t, is.Equal(folders[0].Description, "Stuff"))
	b := bookmarks[0]
	assert.Check(t, is.Equal(b.URL, "https://react.dev"))
	assert.Check(t, is.Equal(b.Description, "Learn React"))
	assert.Check(t, b.IsPrivate)
	assert.Check(t, is.DeepEqual(b.FolderID, &folders[0].ID))
}

func TestWriteFile_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.html")
	store := model.NewStore()
	_, _ = store.AddBookmark(model.NewBookmarkParams{Title: "Go", URL: "https://go.dev"})

	assert.NilError(t, WriteFile(path, store))

	data, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(string(data), ExportHTML(store)))
}
