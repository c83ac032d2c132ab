package importer_test

import (
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/wdylt/wdylt/internal/importer"
	"github.com/wdylt/wdylt/internal/model"
)

const header = "<!DOCTYPE NETSCAPE-Bookmark-file-1>\n<TITLE>Bookmarks</TITLE>\n<H1>Bookmarks</H1>\n"

func parse(t *testing.T, body string) ([]model.Folder, []model.Bookmark) {
	t.Helper()
	folders, bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(header + body))
	assert.NilError(t, err)
	return folders, bookmarks
}

func folderNamed(t *testing.T, folders []model.Folder, name string) model.Folder {
	t.Helper()
	for _, f := range folders {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("folder %q not imported", name)
	return model.Folder{}
}

func bookmarkTitled(t *testing.T, bookmarks []model.Bookmark, title string) model.Bookmark {
	t.Helper()
	for _, b := range bookmarks {
		if b.Title == title {
			return b
		}
	}
	t.Fatalf("bookmark %q not imported", title)
	return model.Bookmark{}
}

func TestParseHTML_RootBookmark(t *testing.T) {
	folders, bookmarks := parse(t, `<DL><p>
    <DT><A HREF="https://github.com" ADD_DATE="1700000000" LAST_VISIT="1700000500">GitHub</A>
</DL><p>`)

	assert.Check(t, is.Len(folders, 0))
	assert.Assert(t, is.Len(bookmarks, 1))

	b := bookmarks[0]
	assert.Check(t, b.ID != "")
	assert.Check(t, is.Equal(b.URL, "https://github.com"))
	assert.Check(t, is.Nil(b.FolderID))
	assert.Check(t, b.CreatedAt.Equal(time.Unix(1700000000, 0)))
	assert.Check(t, b.UpdatedAt.Equal(b.CreatedAt))
	assert.Assert(t, b.VisitedAt != nil)
	assert.Check(t, b.VisitedAt.Equal(time.Unix(1700000500, 0)))
}

// Tech > Programming > React Docs, with a sibling bookmark at each level.
func TestParseHTML_Hierarchy(t *testing.T) {
	folders, bookmarks := parse(t, `<DL><p>
    <DT><H3>Tech</H3>
    <DL><p>
        <DT><H3>Programming</H3>
        <DL><p>
            <DT><A HREF="https://react.dev">React Docs</A>
        </DL><p>
        <DT><A HREF="https://news.ycombinator.com">HN</A>
    </DL><p>
    <DT><A HREF="https://example.org">Example</A>
</DL><p>`)

	assert.Assert(t, is.Len(folders, 2))
	assert.Assert(t, is.Len(bookmarks, 3))

	tech := folderNamed(t, folders, "Tech")
	programming := folderNamed(t, folders, "Programming")
	assert.Check(t, is.Nil(tech.ParentID))
	assert.Check(t, is.DeepEqual(programming.ParentID, &tech.ID))

	// Parents come before their children
	assert.Check(t, is.Equal(folders[0].ID, tech.ID))

	assert.Check(t, is.DeepEqual(bookmarkTitled(t, bookmarks, "React Docs").FolderID, &programming.ID))
	assert.Check(t, is.DeepEqual(bookmarkTitled(t, bookmarks, "HN").FolderID, &tech.ID))
	assert.Check(t, is.Nil(bookmarkTitled(t, bookmarks, "Example").FolderID))
}

func TestParseHTML_DescriptionsAndAttributes(t *testing.T) {
	folders, bookmarks := parse(t, `<DL><p>
    <DT><H3 ADD_DATE="1700000000" PRIVATE="1">Work</H3>
    <DD>Things for the day job
    <DL><p>
        <DT><A HREF="https://go.dev" TAGS="Go, lang" PRIVATE="1" ICON="data:image/png;base64,AA">Go</A>
        <DD>The Go website
        <DT><A HREF="https://pkg.go.dev">Packages</A>
    </DL><p>
</DL><p>`)

	assert.Assert(t, is.Len(folders, 1))
	work := folders[0]
	assert.Check(t, is.Equal(work.Description, "Things for the day job"))
	assert.Check(t, work.IsPrivate)
	assert.Check(t, work.CreatedAt.Equal(time.Unix(1700000000, 0)))

	goSite := bookmarkTitled(t, bookmarks, "Go")
	assert.Check(t, is.Equal(goSite.Description, "The Go website"))
	assert.Check(t, goSite.IsPrivate)
	assert.Check(t, is.DeepEqual(goSite.Tags, []string{"go", "lang"}))
	assert.Check(t, is.Equal(goSite.Icon, "data:image/png;base64,AA"))

	pkgs := bookmarkTitled(t, bookmarks, "Packages")
	assert.Check(t, is.Equal(pkgs.Description, ""))
	assert.Check(t, !pkgs.IsPrivate)
	assert.Check(t, is.Len(pkgs.Tags, 0))

	for _, b := range bookmarks {
		assert.Check(t, is.DeepEqual(b.FolderID, &work.ID), b.Title)
	}
}

func TestParseHTML_SkipsUnusableEntries(t *testing.T) {
	folders, bookmarks := parse(t, `<DL><p>
    <DT><H3></H3>
    <DT><A ADD_DATE="1700000000">No URL</A>
    <DD>orphan description
    <DT><A HREF="https://example.com"></A>
</DL><p>`)

	assert.Check(t, is.Len(folders, 0))
	assert.Assert(t, is.Len(bookmarks, 1))
	// Untitled links fall back to their URL
	assert.Check(t, is.Equal(bookmarks[0].Title, "https://example.com"))
	assert.Check(t, is.Equal(bookmarks[0].Description, ""))
}

func TestParseHTML_Empty(t *testing.T) {
	folders, bookmarks := parse(t, "<DL><p>\n</DL><p>")
	assert.Check(t, is.Len(folders, 0))
	assert.Check(t, is.Len(bookmarks, 0))
}
