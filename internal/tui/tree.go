package tui

import (
	"strings"

	"github.com/wdylt/wdylt/internal/model"
	"github.com/wdylt/wdylt/internal/search"
)

// Row is one visible line of the tree.
type Row struct {
	Item        Item
	Depth       int
	Expanded    bool
	HasChildren bool
}

// buildRows flattens the visible part of the hierarchy into display order:
// at every level folders come first, then bookmarks.
//
// With a non-empty query only matching bookmarks, folders whose name matches,
// and the ancestors of either are shown; every shown folder is expanded.
func buildRows(store *model.Store, expanded map[string]bool, query string) []Row {
	query = strings.TrimSpace(query)
	if query == "" {
		return walkTree(store, nil, 0, expanded, nil, nil)
	}

	matched := make(map[string]bool)
	keep := make(map[string]bool)
	for _, b := range search.FilterAll(store, query, search.Options{IncludePrivate: true}) {
		matched[b.ID] = true
		if b.FolderID != nil {
			keepPath(store, *b.FolderID, keep)
		}
	}

	q := strings.ToLower(query)
	for _, f := range store.Folders {
		if strings.Contains(strings.ToLower(f.Name), q) {
			keepPath(store, f.ID, keep)
		}
	}

	return walkTree(store, nil, 0, nil, keep, matched)
}

func keepPath(store *model.Store, folderID string, keep map[string]bool) {
	for _, f := range store.ResolvePath(folderID) {
		keep[f.ID] = true
	}
}

// walkTree emits the rows below parentID. A nil keep set means "no filter";
// otherwise keep and matched decide which folders and bookmarks are shown.
func walkTree(store *model.Store, parentID *string, depth int, expanded, keep, matched map[string]bool) []Row {
	var rows []Row
	filtering := keep != nil

	for _, f := range store.GetFoldersInFolder(parentID) {
		if filtering && !keep[f.ID] {
			continue
		}

		hasChildren := len(store.GetFoldersInFolder(&f.ID)) > 0 || len(store.GetBookmarksInFolder(&f.ID)) > 0
		isOpen := filtering || expanded[f.ID]
		rows = append(rows, Row{
			Item:        folderItem(f),
			Depth:       depth,
			Expanded:    isOpen && hasChildren,
			HasChildren: hasChildren,
		})
		if isOpen {
			rows = append(rows, walkTree(store, &f.ID, depth+1, expanded, keep, matched)...)
		}
	}

	for _, b := range store.GetBookmarksInFolder(parentID) {
		if filtering && !matched[b.ID] {
			continue
		}
		rows = append(rows, Row{
			Item:  bookmarkItem(b),
			Depth: depth,
		})
	}

	return rows
}

// indexOf returns the row index of the item with id, or -1.
func indexOf(rows []Row, id string) int {
	for i, r := range rows {
		if r.Item.ID() == id {
			return i
		}
	}
	return -1
}

// parentRow returns the index of the closest row above i with a smaller depth.
func parentRow(rows []Row, i int) int {
	if i <= 0 || i >= len(rows) {
		return -1
	}
	depth := rows[i].Depth
	for j := i - 1; j >= 0; j-- {
		if rows[j].Depth < depth {
			return j
		}
	}
	return -1
}
