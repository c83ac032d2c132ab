// Package search finds bookmarks by substring filter or fuzzy title match
// and decides what anonymous callers may see.
package search

import (
	"strings"

	"github.com/wdylt/wdylt/internal/model"
)

// Options narrows what a search may return.
type Options struct {
	// IncludePrivate returns private bookmarks and bookmarks inside private
	// folders. Anonymous API callers search with this unset.
	IncludePrivate bool
}

// Filter returns the bookmarks directly in folderID (nil = root) whose title,
// description or URL contains query, ignoring case. An empty query returns
// the whole folder.
func Filter(store *model.Store, folderID *string, query string, opts Options) []model.Bookmark {
	return filter(store, store.GetBookmarksInFolder(folderID), query, opts)
}

// FilterAll is Filter across every folder.
func FilterAll(store *model.Store, query string, opts Options) []model.Bookmark {
	return filter(store, store.Bookmarks, query, opts)
}

func filter(store *model.Store, scope []model.Bookmark, query string, opts Options) []model.Bookmark {
	q := strings.ToLower(strings.TrimSpace(query))
	result := []model.Bookmark{}
	for _, b := range scope {
		if !opts.IncludePrivate && !Visible(store, b) {
			continue
		}
		if q == "" || contains(b, q) {
			result = append(result, b)
		}
	}
	return result
}

func contains(b model.Bookmark, q string) bool {
	for _, field := range []string{b.Title, b.Description, b.URL} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Visible reports whether b is public: not private itself and not inside a
// private folder.
func Visible(store *model.Store, b model.Bookmark) bool {
	if b.IsPrivate {
		return false
	}
	return b.FolderID == nil || FolderVisible(store, *b.FolderID)
}

// FolderVisible reports whether the folder and all its ancestors are public.
func FolderVisible(store *model.Store, folderID string) bool {
	for _, f := range store.ResolvePath(folderID) {
		if f.IsPrivate {
			return false
		}
	}
	return true
}
