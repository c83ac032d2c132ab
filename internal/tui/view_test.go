package tui_test

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestView_NormalMode(t *testing.T) {
	fx := newFixture(t)
	output := ansi.Strip(press(fx.app(), "l").View())

	assert.Assert(t, is.Contains(output, "wdylt/Dev"))
	assert.Assert(t, is.Contains(output, "▾ Dev/"))
	assert.Assert(t, is.Contains(output, "▸ Go/"))
	assert.Assert(t, is.Contains(output, "Go Docs"))
	assert.Assert(t, is.Contains(output, "1 folders, 1 bookmarks"))
	assert.Assert(t, is.Contains(output, "[3 folders] [3 bookmarks]"))
}

func TestView_BookmarkPreview(t *testing.T) {
	output := ansi.Strip(press(newFixture(t).app(), "G").View())

	assert.Assert(t, is.Contains(output, "https://github.com"))
	assert.Assert(t, is.Contains(output, "Created:"))
}

func TestView_PrivateMarker(t *testing.T) {
	output := ansi.Strip(press(newFixture(t).app(), "*").View())
	assert.Assert(t, is.Contains(output, "Dev/ [p]"))
}

func TestView_Dialog(t *testing.T) {
	output := ansi.Strip(press(newFixture(t).app(), "l", "a").View())

	assert.Assert(t, is.Contains(output, "Add Bookmark"))
	assert.Assert(t, is.Contains(output, "in /Dev"))
	assert.Assert(t, is.Contains(output, "URL:"))
}

func TestView_DeleteConfirmShowsSubtree(t *testing.T) {
	output := ansi.Strip(press(newFixture(t).app(), "d").View())

	assert.Assert(t, is.Contains(output, "Delete Folder?"))
	assert.Assert(t, is.Contains(output, "Also removes 1 subfolders and 2 bookmarks."))
}

func TestView_HelpOverlay(t *testing.T) {
	output := ansi.Strip(press(newFixture(t).app(), "?").View())
	assert.Assert(t, is.Contains(output, "paste at root"))
}

func TestView_CutStatus(t *testing.T) {
	output := ansi.Strip(press(newFixture(t).app(), "G", "x").View())
	assert.Assert(t, is.Contains(output, "[cut: GitHub]"))
}
