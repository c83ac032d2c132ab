package tui

import "github.com/wdylt/wdylt/internal/model"

// ItemKind distinguishes between folders and bookmarks in the tree.
type ItemKind int

const (
	ItemFolder ItemKind = iota
	ItemBookmark
)

// Item is a tree row's payload: exactly one of Folder or Bookmark is set.
type Item struct {
	Kind     ItemKind
	Folder   *model.Folder
	Bookmark *model.Bookmark
}

func folderItem(f model.Folder) Item     { return Item{Kind: ItemFolder, Folder: &f} }
func bookmarkItem(b model.Bookmark) Item { return Item{Kind: ItemBookmark, Bookmark: &b} }

func (i Item) IsFolder() bool { return i.Kind == ItemFolder }

func (i Item) ID() string {
	if i.IsFolder() {
		return i.Folder.ID
	}
	return i.Bookmark.ID
}

// Title is the folder name or bookmark title.
func (i Item) Title() string {
	if i.IsFolder() {
		return i.Folder.Name
	}
	return i.Bookmark.Title
}

func (i Item) IsPrivate() bool {
	if i.IsFolder() {
		return i.Folder.IsPrivate
	}
	return i.Bookmark.IsPrivate
}

// ParentID is the containing folder, nil at the root.
func (i Item) ParentID() *string {
	if i.IsFolder() {
		return i.Folder.ParentID
	}
	return i.Bookmark.FolderID
}
