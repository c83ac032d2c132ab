// Package library owns the in-memory bookmark store and persists every change
// through a storage backend.
package library

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wdylt/wdylt/internal/model"
	"github.com/wdylt/wdylt/internal/storage"
)

// Hook observes the outcome of each mutation, e.g. for metrics.
type Hook func(op string, err error)

// Option configures a Library.
type Option func(*Library)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Library) { l.logger = logger }
}

// WithHook registers a mutation observer.
func WithHook(hook Hook) Option {
	return func(l *Library) { l.hooks = append(l.hooks, hook) }
}

// Library is the single owner of a model.Store. All reads and writes go
// through it; every successful mutation is saved before it returns.
type Library struct {
	mu      sync.RWMutex
	store   *model.Store
	storage storage.Storage
	logger  *zap.Logger
	hooks   []Hook
}

// Open loads the store from st and returns a Library around it.
func Open(ctx context.Context, st storage.Storage, opts ...Option) (*Library, error) {
	l := &Library{storage: st, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}

	store, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load library: %w", err)
	}
	store.EnsureInitialized()
	l.store = store

	l.logger.Debug("library loaded",
		zap.Int("folders", len(store.Folders)),
		zap.Int("bookmarks", len(store.Bookmarks)),
		zap.Int("bookmarked_bits", len(store.BookmarkedBits)),
	)
	return l, nil
}

// Close releases the storage backend.
func (l *Library) Close() error {
	return l.storage.Close()
}

// Snapshot returns a deep copy of the current state.
func (l *Library) Snapshot() *model.Store {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.Clone()
}

// View runs fn with read access to the store. fn must not retain or modify it.
func (l *Library) View(fn func(s *model.Store)) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn(l.store)
}

// mutate applies fn to a copy of the store, saves it, and swaps it in.
// On any error the current state is left untouched.
func (l *Library) mutate(ctx context.Context, op string, fn func(s *model.Store) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.store.Clone()
	err := fn(next)
	if err == nil {
		if err = l.storage.Save(ctx, next); err != nil {
			l.logger.Error("save failed, changes discarded", zap.String("op", op), zap.Error(err))
			err = fmt.Errorf("save: %w", err)
		}
	}
	for _, hook := range l.hooks {
		hook(op, err)
	}
	if err != nil {
		return err
	}

	l.store = next
	l.logger.Debug("library updated", zap.String("op", op))
	return nil
}

// === Reads ===

// Folder returns a copy of the folder with id.
func (l *Library) Folder(id string) (model.Folder, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	f := l.store.GetFolderByID(id)
	if f == nil {
		return model.Folder{}, fmt.Errorf("%w: %s", model.ErrFolderNotFound, id)
	}
	return *f, nil
}

// Bookmark returns a copy of the bookmark with id.
func (l *Library) Bookmark(id string) (model.Bookmark, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	b := l.store.GetBookmarkByID(id)
	if b == nil {
		return model.Bookmark{}, fmt.Errorf("%w: %s", model.ErrBookmarkNotFound, id)
	}
	return *b, nil
}

// Folders returns every folder.
func (l *Library) Folders() []model.Folder {
	return l.Snapshot().Folders
}

// Bookmarks returns every bookmark.
func (l *Library) Bookmarks() []model.Bookmark {
	return l.Snapshot().Bookmarks
}

// ResolvePath returns the breadcrumb from the root down to the folder.
func (l *Library) ResolvePath(id string) ([]model.Folder, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	path := l.store.ResolvePath(id)
	if path == nil {
		return nil, fmt.Errorf("%w: %s", model.ErrFolderNotFound, id)
	}
	return path, nil
}

// FolderPath returns the folder's slash separated path, "/" for root.
func (l *Library) FolderPath(id *string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.GetFolderPath(id)
}

// FolderByPath resolves a slash separated path like "/Tech/Programming".
// The empty path and "/" resolve to root (nil). A path shared by sibling
// folders with the same name yields ErrAmbiguousPath.
func (l *Library) FolderByPath(path string) (*string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	path = "/" + strings.Trim(strings.TrimSpace(path), "/")
	if path == "/" {
		return nil, nil
	}

	switch ids := l.store.FoldersAtPath(path); len(ids) {
	case 0:
		return nil, fmt.Errorf("%w: %s", model.ErrFolderNotFound, path)
	case 1:
		return &ids[0], nil
	default:
		return nil, fmt.Errorf("%w: %s (%d folders)", model.ErrAmbiguousPath, path, len(ids))
	}
}

// BookmarkedBits returns the ids of bookmarked bits.
func (l *Library) BookmarkedBits() []string {
	return l.Snapshot().BookmarkedBits
}

// IsBitBookmarked reports whether the bit is bookmarked.
func (l *Library) IsBitBookmarked(bitID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.IsBitBookmarked(bitID)
}

// === Folder mutations ===

func (l *Library) AddFolder(ctx context.Context, params model.NewFolderParams) (model.Folder, error) {
	var folder model.Folder
	err := l.mutate(ctx, "add_folder", func(s *model.Store) error {
		var err error
		folder, err = s.AddFolder(params)
		return err
	})
	return folder, err
}

func (l *Library) UpdateFolder(ctx context.Context, id string, update model.FolderUpdate) (model.Folder, error) {
	var folder model.Folder
	err := l.mutate(ctx, "update_folder", func(s *model.Store) error {
		var err error
		folder, err = s.UpdateFolder(id, update)
		return err
	})
	return folder, err
}

func (l *Library) RenameFolder(ctx context.Context, id, name string) error {
	return l.mutate(ctx, "rename_folder", func(s *model.Store) error {
		return s.RenameFolder(id, name)
	})
}

// MoveFolder reparents a folder; model.ErrCycle when the target is inside it.
func (l *Library) MoveFolder(ctx context.Context, id string, parentID *string) error {
	return l.mutate(ctx, "move_folder", func(s *model.Store) error {
		return s.MoveFolder(id, parentID)
	})
}

func (l *Library) ToggleFolderPrivate(ctx context.Context, id string) (bool, error) {
	var private bool
	err := l.mutate(ctx, "toggle_folder_private", func(s *model.Store) error {
		var err error
		private, err = s.ToggleFolderPrivate(id)
		return err
	})
	return private, err
}

// DeleteFolder removes the folder with its subtree and their bookmarks.
func (l *Library) DeleteFolder(ctx context.Context, id string) (model.DeleteResult, error) {
	var result model.DeleteResult
	err := l.mutate(ctx, "delete_folder", func(s *model.Store) error {
		var err error
		result, err = s.DeleteFolder(id)
		return err
	})
	if err == nil {
		l.logger.Info("folder deleted",
			zap.String("id", id),
			zap.Int("folders", len(result.FolderIDs)),
			zap.Int("bookmarks", result.BookmarksRemoved),
		)
	}
	return result, err
}

// === Bookmark mutations ===

func (l *Library) AddBookmark(ctx context.Context, params model.NewBookmarkParams) (model.Bookmark, error) {
	var bookmark model.Bookmark
	err := l.mutate(ctx, "add_bookmark", func(s *model.Store) error {
		var err error
		bookmark, err = s.AddBookmark(params)
		return err
	})
	return bookmark, err
}

func (l *Library) UpdateBookmark(ctx context.Context, id string, update model.BookmarkUpdate) (model.Bookmark, error) {
	var bookmark model.Bookmark
	err := l.mutate(ctx, "update_bookmark", func(s *model.Store) error {
		var err error
		bookmark, err = s.UpdateBookmark(id, update)
		return err
	})
	return bookmark, err
}

func (l *Library) DeleteBookmark(ctx context.Context, id string) error {
	return l.mutate(ctx, "delete_bookmark", func(s *model.Store) error {
		return s.DeleteBookmark(id)
	})
}

func (l *Library) MoveBookmark(ctx context.Context, id string, folderID *string) error {
	return l.mutate(ctx, "move_bookmark", func(s *model.Store) error {
		return s.MoveBookmark(id, folderID)
	})
}

func (l *Library) ToggleBookmarkPrivate(ctx context.Context, id string) (bool, error) {
	var private bool
	err := l.mutate(ctx, "toggle_bookmark_private", func(s *model.Store) error {
		var err error
		private, err = s.ToggleBookmarkPrivate(id)
		return err
	})
	return private, err
}

func (l *Library) MarkVisited(ctx context.Context, id string) error {
	return l.mutate(ctx, "mark_visited", func(s *model.Store) error {
		return s.MarkVisited(id, time.Now())
	})
}

// === Bits ===

// ToggleBitBookmarked flips the bit's membership and returns the new state.
func (l *Library) ToggleBitBookmarked(ctx context.Context, bitID string) (bool, error) {
	var on bool
	err := l.mutate(ctx, "toggle_bit", func(s *model.Store) error {
		on = s.ToggleBitBookmarked(bitID)
		return nil
	})
	return on, err
}

// SaveBitAsBookmark converts the bit into a bookmark in folderID.
func (l *Library) SaveBitAsBookmark(ctx context.Context, bit model.Bit, folderID *string) (model.Bookmark, error) {
	bookmark, err := model.BitToBookmark(bit, folderID)
	if err != nil {
		return model.Bookmark{}, err
	}
	err = l.mutate(ctx, "convert_bit", func(s *model.Store) error {
		return s.InsertBookmark(bookmark)
	})
	return bookmark, err
}

// === Import ===

// ImportMerge merges parsed folders and bookmarks, skipping known URLs.
func (l *Library) ImportMerge(ctx context.Context, folders []model.Folder, bookmarks []model.Bookmark) (added, skipped int, err error) {
	err = l.mutate(ctx, "import", func(s *model.Store) error {
		added, skipped = s.ImportMerge(folders, bookmarks)
		return nil
	})
	if err == nil {
		l.logger.Info("import merged", zap.Int("added", added), zap.Int("skipped", skipped))
	}
	return added, skipped, err
}

// Replace swaps the whole state for store, e.g. a full import.
func (l *Library) Replace(ctx context.Context, store *model.Store) error {
	return l.mutate(ctx, "replace", func(s *model.Store) error {
		replacement := store.Clone()
		*s = *replacement
		return nil
	})
}

// DeleteBookmarks removes every listed bookmark in one save and returns how
// many existed.
func (l *Library) DeleteBookmarks(ctx context.Context, ids []string) (int, error) {
	removed := 0
	err := l.mutate(ctx, "delete_bookmarks", func(s *model.Store) error {
		removed = 0
		for _, id := range ids {
			if s.DeleteBookmark(id) == nil {
				removed++
			}
		}
		return nil
	})
	return removed, err
}
