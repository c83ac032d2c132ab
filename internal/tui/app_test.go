package tui_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/wdylt/wdylt/internal/library"
	"github.com/wdylt/wdylt/internal/model"
	"github.com/wdylt/wdylt/internal/storage"
	"github.com/wdylt/wdylt/internal/tui"
)

// fixture is a small library:
//
//	Dev/
//	  Go/
//	    Tour
//	  Go Docs
//	Tools/
//	GitHub
type fixture struct {
	lib    *library.Library
	dev    model.Folder
	goDir  model.Folder
	tools  model.Folder
	github model.Bookmark
	opened []string
	copied []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	lib, err := library.Open(ctx, storage.NewJSONStorage(filepath.Join(t.TempDir(), "library.json")))
	assert.NilError(t, err)

	fx := &fixture{lib: lib}
	fx.dev, err = lib.AddFolder(ctx, model.NewFolderParams{Name: "Dev"})
	assert.NilError(t, err)
	fx.tools, err = lib.AddFolder(ctx, model.NewFolderParams{Name: "Tools"})
	assert.NilError(t, err)
	fx.goDir, err = lib.AddFolder(ctx, model.NewFolderParams{Name: "Go", ParentID: &fx.dev.ID})
	assert.NilError(t, err)

	fx.github, err = lib.AddBookmark(ctx, model.NewBookmarkParams{Title: "GitHub", URL: "https://github.com"})
	assert.NilError(t, err)
	_, err = lib.AddBookmark(ctx, model.NewBookmarkParams{Title: "Go Docs", URL: "https://go.dev/doc", FolderID: &fx.dev.ID})
	assert.NilError(t, err)
	_, err = lib.AddBookmark(ctx, model.NewBookmarkParams{Title: "Tour", URL: "https://go.dev/tour", FolderID: &fx.goDir.ID})
	assert.NilError(t, err)

	return fx
}

func (fx *fixture) app() tui.App {
	return tui.NewApp(tui.AppParams{
		Library: fx.lib,
		OpenURL: func(url string) error {
			fx.opened = append(fx.opened, url)
			return nil
		},
		Clipboard: func(text string) error {
			fx.copied = append(fx.copied, text)
			return nil
		},
	}).WithDimensions(100, 30)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends each key in order.
func press(app tui.App, keys ...string) tui.App {
	for _, k := range keys {
		updated, _ := app.Update(keyMsg(k))
		app = updated.(tui.App)
	}
	return app
}

func titles(app tui.App) []string {
	var out []string
	for _, r := range app.Rows() {
		out = append(out, r.Item.Title())
	}
	return out
}

func selectedTitle(t *testing.T, app tui.App) string {
	t.Helper()
	item, ok := app.Selected()
	assert.Assert(t, ok, "nothing selected")
	return item.Title()
}

func TestApp_InitialTreeIsCollapsed(t *testing.T) {
	app := newFixture(t).app()

	assert.DeepEqual(t, titles(app), []string{"Dev", "Tools", "GitHub"})
	assert.Equal(t, app.Cursor(), 0)
	assert.Equal(t, app.Mode(), tui.ModeNormal)
}

func TestApp_Navigation(t *testing.T) {
	app := newFixture(t).app()

	app = press(app, "j")
	assert.Equal(t, app.Cursor(), 1)

	app = press(app, "G")
	assert.Equal(t, app.Cursor(), 2)

	// j at bottom stays at bottom
	app = press(app, "j")
	assert.Equal(t, app.Cursor(), 2)

	app = press(app, "g", "g")
	assert.Equal(t, app.Cursor(), 0)

	// k at top should stay at 0 (no wrap)
	app = press(app, "k")
	assert.Equal(t, app.Cursor(), 0)
}

func TestApp_ExpandCollapse(t *testing.T) {
	fx := newFixture(t)
	app := fx.app()

	app = press(app, "l")
	assert.Assert(t, app.IsExpanded(fx.dev.ID))
	assert.DeepEqual(t, titles(app), []string{"Dev", "Go", "Go Docs", "Tools", "GitHub"})
	assert.Equal(t, app.Rows()[1].Depth, 1)

	// l on an expanded folder steps to its first child
	app = press(app, "l")
	assert.Equal(t, selectedTitle(t, app), "Go")

	// h on a collapsed folder jumps to the parent row
	app = press(app, "h")
	assert.Equal(t, selectedTitle(t, app), "Dev")

	app = press(app, "h")
	assert.Assert(t, !app.IsExpanded(fx.dev.ID))
	assert.DeepEqual(t, titles(app), []string{"Dev", "Tools", "GitHub"})

	app = press(app, "space")
	assert.Assert(t, app.IsExpanded(fx.dev.ID))
}

func TestApp_OpenBookmarkMarksVisited(t *testing.T) {
	fx := newFixture(t)
	app := press(fx.app(), "G", "enter")

	assert.DeepEqual(t, fx.opened, []string{"https://github.com"})
	b, err := fx.lib.Bookmark(fx.github.ID)
	assert.NilError(t, err)
	assert.Assert(t, b.VisitedAt != nil)
	assert.Assert(t, is.Contains(app.Message(), "Opened"))
}

func TestApp_OpenFailureShowsError(t *testing.T) {
	fx := newFixture(t)
	app := tui.NewApp(tui.AppParams{
		Library: fx.lib,
		OpenURL: func(string) error { return errors.New("no browser") },
	})

	app = press(app, "G", "enter")
	assert.Assert(t, is.Contains(app.Message(), "no browser"))
	b, err := fx.lib.Bookmark(fx.github.ID)
	assert.NilError(t, err)
	assert.Assert(t, b.VisitedAt == nil)
}

func TestApp_AddFolderDialog(t *testing.T) {
	fx := newFixture(t)
	app := press(fx.app(), "A")
	assert.Equal(t, app.Mode(), tui.ModeDialog)
	assert.Equal(t, app.Dialog().Kind, tui.DialogAddFolder)

	// Collapsed folder under the cursor: the new folder becomes a sibling
	app = press(app, "Reading", "tab", "Long reads", "enter")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Equal(t, selectedTitle(t, app), "Reading")

	id, err := fx.lib.FolderByPath("/Reading")
	assert.NilError(t, err)
	f, err := fx.lib.Folder(*id)
	assert.NilError(t, err)
	assert.Equal(t, f.Description, "Long reads")
	assert.Assert(t, f.ParentID == nil)
}

func TestApp_DialogValidationKeepsDialogOpen(t *testing.T) {
	fx := newFixture(t)
	app := press(fx.app(), "A", "   ", "enter")

	assert.Equal(t, app.Mode(), tui.ModeDialog)
	assert.Equal(t, app.Dialog().Err, "Name is required")
	assert.Equal(t, len(fx.lib.Folders()), 3)

	app = press(app, "esc")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
}

func TestApp_AddBookmarkIntoExpandedFolder(t *testing.T) {
	fx := newFixture(t)
	app := press(fx.app(), "l", "a")
	assert.Equal(t, app.Dialog().Kind, tui.DialogAddBookmark)

	app = press(app, "tab", "go.dev/blog", "enter")
	assert.Equal(t, app.Mode(), tui.ModeNormal)

	var found *model.Bookmark
	for _, b := range fx.lib.Bookmarks() {
		if b.URL == "https://go.dev/blog" {
			found = &b
		}
	}
	assert.Assert(t, found != nil)
	assert.Equal(t, *found.FolderID, fx.dev.ID)
	assert.Equal(t, found.Title, "https://go.dev/blog")
	assert.Equal(t, selectedTitle(t, app), "https://go.dev/blog")
}

func TestApp_AddBookmarkRequiresURL(t *testing.T) {
	fx := newFixture(t)
	app := press(fx.app(), "a", "Untitled", "enter")

	assert.Equal(t, app.Mode(), tui.ModeDialog)
	assert.Equal(t, app.Dialog().Err, "URL is required")
}

func TestApp_EditFolder(t *testing.T) {
	fx := newFixture(t)
	app := press(fx.app(), "j", "e")
	assert.Equal(t, app.Dialog().Kind, tui.DialogEditFolder)
	assert.Equal(t, app.Dialog().Value(0), "Tools")

	app = press(app, " & Utils", "enter")
	f, err := fx.lib.Folder(fx.tools.ID)
	assert.NilError(t, err)
	assert.Equal(t, f.Name, "Tools & Utils")
	assert.Equal(t, selectedTitle(t, app), "Tools & Utils")
}

func TestApp_CutPasteBookmarkIntoFolder(t *testing.T) {
	fx := newFixture(t)
	app := press(fx.app(), "G", "x")
	assert.Assert(t, is.Contains(app.Message(), "Cut"))

	app = press(app, "g", "g", "p")

	b, err := fx.lib.Bookmark(fx.github.ID)
	assert.NilError(t, err)
	assert.Equal(t, *b.FolderID, fx.dev.ID)
	assert.Assert(t, app.IsExpanded(fx.dev.ID))
	assert.Equal(t, selectedTitle(t, app), "GitHub")
	assert.Equal(t, app.Rows()[app.Cursor()].Depth, 1)
}

func TestApp_PasteAtRoot(t *testing.T) {
	fx := newFixture(t)
	app := press(fx.app(), "l", "j", "x", "P")

	f, err := fx.lib.Folder(fx.goDir.ID)
	assert.NilError(t, err)
	assert.Assert(t, f.ParentID == nil)
	assert.Equal(t, selectedTitle(t, app), "Go")
	assert.Equal(t, app.Rows()[app.Cursor()].Depth, 0)
}

func TestApp_PasteFolderIntoOwnSubtreeIsRefused(t *testing.T) {
	fx := newFixture(t)
	app := press(fx.app(), "l", "x", "j")
	assert.Equal(t, selectedTitle(t, app), "Go")

	app = press(app, "p")
	assert.Assert(t, is.Contains(app.Message(), "cannot be moved into itself"))

	f, err := fx.lib.Folder(fx.dev.ID)
	assert.NilError(t, err)
	assert.Assert(t, f.ParentID == nil)

	// Pasting onto itself is refused too
	app = press(app, "k", "p")
	assert.Assert(t, is.Contains(app.Message(), "cannot be moved into itself"))
}

func TestApp_PasteWithoutCut(t *testing.T) {
	app := press(newFixture(t).app(), "p")
	assert.Equal(t, app.Message(), "Nothing to paste")
}

func TestApp_DeleteFolderRecursively(t *testing.T) {
	fx := newFixture(t)
	app := press(fx.app(), "d")
	assert.Equal(t, app.Mode(), tui.ModeConfirmDelete)

	app = press(app, "y")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Assert(t, is.Contains(app.Message(), "2 folders, 2 bookmarks"))

	assert.Equal(t, len(fx.lib.Folders()), 1)
	assert.Equal(t, len(fx.lib.Bookmarks()), 1)
	assert.DeepEqual(t, titles(app), []string{"Tools", "GitHub"})
}

func TestApp_DeleteCancelled(t *testing.T) {
	fx := newFixture(t)
	app := press(fx.app(), "G", "d", "n")

	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Equal(t, len(fx.lib.Bookmarks()), 3)
}

func TestApp_DeleteClearsStaleCut(t *testing.T) {
	fx := newFixture(t)
	app := press(fx.app(), "G", "x", "d", "y", "p")
	assert.Equal(t, app.Message(), "Nothing to paste")
}

func TestApp_TogglePrivate(t *testing.T) {
	fx := newFixture(t)
	app := press(fx.app(), "*")

	f, err := fx.lib.Folder(fx.dev.ID)
	assert.NilError(t, err)
	assert.Assert(t, f.IsPrivate)
	assert.Assert(t, is.Contains(app.Message(), "private"))

	app = press(app, "*")
	f, err = fx.lib.Folder(fx.dev.ID)
	assert.NilError(t, err)
	assert.Assert(t, !f.IsPrivate)
	assert.Assert(t, is.Contains(app.Message(), "public"))
}

func TestApp_YankURL(t *testing.T) {
	fx := newFixture(t)
	app := press(fx.app(), "G", "Y")
	assert.DeepEqual(t, fx.copied, []string{"https://github.com"})
	assert.Assert(t, is.Contains(app.Message(), "Copied"))

	app = press(app, "g", "g", "Y")
	assert.Equal(t, len(fx.copied), 1)
	assert.Assert(t, is.Contains(app.Message(), "Select a bookmark"))
}

func TestApp_Filter(t *testing.T) {
	fx := newFixture(t)
	app := press(fx.app(), "/")
	assert.Equal(t, app.Mode(), tui.ModeFilter)

	app = press(app, "tour")
	assert.DeepEqual(t, titles(app), []string{"Dev", "Go", "Tour"})

	// Enter keeps the filter, Esc in normal mode clears it
	app = press(app, "enter")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Equal(t, len(app.Rows()), 3)

	app = press(app, "esc")
	assert.DeepEqual(t, titles(app), []string{"Dev", "Tools", "GitHub"})
}

func TestApp_FilterMatchesFolderNames(t *testing.T) {
	app := press(newFixture(t).app(), "/", "TOOL")
	assert.DeepEqual(t, titles(app), []string{"Tools"})

	app = press(app, "esc")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Equal(t, len(app.Rows()), 3)
}

func TestApp_HelpAndQuit(t *testing.T) {
	app := press(newFixture(t).app(), "?")
	assert.Equal(t, app.Mode(), tui.ModeHelp)

	app = press(app, "esc")
	assert.Equal(t, app.Mode(), tui.ModeNormal)

	_, cmd := app.Update(keyMsg("q"))
	assert.Assert(t, cmd != nil)
	_, ok := cmd().(tea.QuitMsg)
	assert.Assert(t, ok)
}

func TestApp_EmptyLibrary(t *testing.T) {
	lib, err := library.Open(context.Background(), storage.NewJSONStorage(filepath.Join(t.TempDir(), "empty.json")))
	assert.NilError(t, err)

	app := tui.NewApp(tui.AppParams{Library: lib})
	app = press(app, "j", "l", "h", "d", "e", "x", "*")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Equal(t, len(app.Rows()), 0)
	assert.Assert(t, strings.Contains(app.View(), "press a or A"))
}
