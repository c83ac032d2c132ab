package model

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"
)

// Persisted state keys. The JSON and Redis backends use them verbatim.
const (
	KeyBookmarks      = "wdylt_bookmarks"
	KeyFolders        = "wdylt_folders"
	KeyBookmarkedBits = "bookmarkedBits"
)

// Store holds all bookmarks, folders, and the ids of bookmarked bits.
type Store struct {
	Folders        []Folder   `json:"wdylt_folders"`
	Bookmarks      []Bookmark `json:"wdylt_bookmarks"`
	BookmarkedBits []string   `json:"bookmarkedBits"`
}

// NewStore creates an empty Store with initialized slices.
func NewStore() *Store {
	return &Store{
		Folders:        []Folder{},
		Bookmarks:      []Bookmark{},
		BookmarkedBits: []string{},
	}
}

// EnsureInitialized replaces nil slices with empty ones.
func (s *Store) EnsureInitialized() {
	if s.Folders == nil {
		s.Folders = []Folder{}
	}
	if s.Bookmarks == nil {
		s.Bookmarks = []Bookmark{}
	}
	if s.BookmarkedBits == nil {
		s.BookmarkedBits = []string{}
	}
}

// Clone returns a deep copy of the store.
func (s *Store) Clone() *Store {
	c := &Store{
		Folders:        make([]Folder, len(s.Folders)),
		Bookmarks:      make([]Bookmark, len(s.Bookmarks)),
		BookmarkedBits: slices.Clone(s.BookmarkedBits),
	}
	for i, f := range s.Folders {
		f.ParentID = clonePtr(f.ParentID)
		c.Folders[i] = f
	}
	for i, b := range s.Bookmarks {
		b.FolderID = clonePtr(b.FolderID)
		b.Tags = slices.Clone(b.Tags)
		if b.VisitedAt != nil {
			v := *b.VisitedAt
			b.VisitedAt = &v
		}
		c.Bookmarks[i] = b
	}
	if c.BookmarkedBits == nil {
		c.BookmarkedBits = []string{}
	}
	return c
}

// GetFoldersInFolder returns folders with the given parent ID.
// Pass nil for root level folders.
func (s *Store) GetFoldersInFolder(parentID *string) []Folder {
	var result []Folder
	for _, f := range s.Folders {
		if ptrEqual(f.ParentID, parentID) {
			result = append(result, f)
		}
	}
	return result
}

// GetBookmarksInFolder returns bookmarks in the given folder.
// Pass nil for root level bookmarks.
func (s *Store) GetBookmarksInFolder(folderID *string) []Bookmark {
	var result []Bookmark
	for _, b := range s.Bookmarks {
		if ptrEqual(b.FolderID, folderID) {
			result = append(result, b)
		}
	}
	return result
}

// GetFolderByID finds a folder by ID, returns nil if not found.
func (s *Store) GetFolderByID(id string) *Folder {
	for i := range s.Folders {
		if s.Folders[i].ID == id {
			return &s.Folders[i]
		}
	}
	return nil
}

// GetBookmarkByID finds a bookmark by ID, returns nil if not found.
func (s *Store) GetBookmarkByID(id string) *Bookmark {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].ID == id {
			return &s.Bookmarks[i]
		}
	}
	return nil
}

// requireFolder returns ErrFolderNotFound unless id is nil or an existing folder.
func (s *Store) requireFolder(id *string) error {
	if id == nil {
		return nil
	}
	if s.GetFolderByID(*id) == nil {
		return fmt.Errorf("%w: %s", ErrFolderNotFound, *id)
	}
	return nil
}

// === Folders ===

// AddFolder appends a new folder. Names need not be unique within a parent.
func (s *Store) AddFolder(params NewFolderParams) (Folder, error) {
	if strings.TrimSpace(params.Name) == "" {
		return Folder{}, ErrEmptyName
	}
	if err := s.requireFolder(params.ParentID); err != nil {
		return Folder{}, err
	}

	folder := NewFolder(params)
	folder.ParentID = clonePtr(params.ParentID)
	s.Folders = append(s.Folders, folder)
	return folder, nil
}

// UpdateFolder applies the non-nil fields of update to the folder.
func (s *Store) UpdateFolder(id string, update FolderUpdate) (Folder, error) {
	folder := s.GetFolderByID(id)
	if folder == nil {
		return Folder{}, fmt.Errorf("%w: %s", ErrFolderNotFound, id)
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return Folder{}, ErrEmptyName
		}
		folder.Name = name
	}
	if update.Description != nil {
		folder.Description = strings.TrimSpace(*update.Description)
	}
	if update.IsPrivate != nil {
		folder.IsPrivate = *update.IsPrivate
	}
	folder.UpdatedAt = time.Now()
	return *folder, nil
}

// RenameFolder changes the folder's name.
func (s *Store) RenameFolder(id, name string) error {
	_, err := s.UpdateFolder(id, FolderUpdate{Name: &name})
	return err
}

// MoveFolder reparents a folder. Pass nil to move it to root.
// Moving a folder under itself or one of its descendants returns ErrCycle.
func (s *Store) MoveFolder(id string, newParentID *string) error {
	folder := s.GetFolderByID(id)
	if folder == nil {
		return fmt.Errorf("%w: %s", ErrFolderNotFound, id)
	}
	if err := s.requireFolder(newParentID); err != nil {
		return err
	}
	if newParentID != nil && (*newParentID == id || s.IsDescendant(id, *newParentID)) {
		return ErrCycle
	}

	folder.ParentID = clonePtr(newParentID)
	folder.UpdatedAt = time.Now()
	return nil
}

// ToggleFolderPrivate flips the private flag and returns the new value.
func (s *Store) ToggleFolderPrivate(id string) (bool, error) {
	folder := s.GetFolderByID(id)
	if folder == nil {
		return false, fmt.Errorf("%w: %s", ErrFolderNotFound, id)
	}
	folder.IsPrivate = !folder.IsPrivate
	folder.UpdatedAt = time.Now()
	return folder.IsPrivate, nil
}

// DeleteResult reports what a folder deletion removed.
type DeleteResult struct {
	FolderIDs        []string
	BookmarksRemoved int
}

// DeleteFolder removes the folder, every folder below it, and all bookmarks
// they contain.
func (s *Store) DeleteFolder(id string) (DeleteResult, error) {
	if s.GetFolderByID(id) == nil {
		return DeleteResult{}, fmt.Errorf("%w: %s", ErrFolderNotFound, id)
	}

	doomed := map[string]bool{id: true}
	for _, d := range s.Descendants(id) {
		doomed[d] = true
	}

	folders := make([]Folder, 0, len(s.Folders))
	result := DeleteResult{}
	for _, f := range s.Folders {
		if doomed[f.ID] {
			result.FolderIDs = append(result.FolderIDs, f.ID)
			continue
		}
		folders = append(folders, f)
	}

	bookmarks := make([]Bookmark, 0, len(s.Bookmarks))
	for _, b := range s.Bookmarks {
		if b.FolderID != nil && doomed[*b.FolderID] {
			result.BookmarksRemoved++
			continue
		}
		bookmarks = append(bookmarks, b)
	}

	s.Folders = folders
	s.Bookmarks = bookmarks
	return result, nil
}

// === Bookmarks ===

// AddBookmark creates a bookmark from params and appends it.
func (s *Store) AddBookmark(params NewBookmarkParams) (Bookmark, error) {
	if strings.TrimSpace(params.URL) == "" {
		return Bookmark{}, ErrEmptyURL
	}
	if err := s.requireFolder(params.FolderID); err != nil {
		return Bookmark{}, err
	}

	bookmark := NewBookmark(params)
	bookmark.FolderID = clonePtr(params.FolderID)
	s.Bookmarks = append(s.Bookmarks, bookmark)
	return bookmark, nil
}

// InsertBookmark appends an already built bookmark, keeping its ID.
func (s *Store) InsertBookmark(b Bookmark) error {
	if strings.TrimSpace(b.URL) == "" {
		return ErrEmptyURL
	}
	if err := s.requireFolder(b.FolderID); err != nil {
		return err
	}
	if b.ID == "" {
		b.ID = GenerateUUID()
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
	s.Bookmarks = append(s.Bookmarks, b)
	return nil
}

// UpdateBookmark applies the non-nil fields of update to the bookmark.
func (s *Store) UpdateBookmark(id string, update BookmarkUpdate) (Bookmark, error) {
	bookmark := s.GetBookmarkByID(id)
	if bookmark == nil {
		return Bookmark{}, fmt.Errorf("%w: %s", ErrBookmarkNotFound, id)
	}

	if update.URL != nil {
		url := NormalizeURL(*update.URL)
		if url == "" {
			return Bookmark{}, ErrEmptyURL
		}
		bookmark.URL = url
	}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			title = bookmark.URL
		}
		bookmark.Title = title
	}
	if update.Description != nil {
		bookmark.Description = strings.TrimSpace(*update.Description)
	}
	if update.IsPrivate != nil {
		bookmark.IsPrivate = *update.IsPrivate
	}
	if update.Tags != nil {
		bookmark.Tags = normalizeTags(update.Tags)
	}
	if update.Icon != nil {
		bookmark.Icon = *update.Icon
	}
	if update.Summary != nil {
		bookmark.Summary = *update.Summary
	}
	bookmark.UpdatedAt = time.Now()
	return *bookmark, nil
}

// DeleteBookmark removes a bookmark by ID.
func (s *Store) DeleteBookmark(id string) error {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].ID == id {
			s.Bookmarks = append(s.Bookmarks[:i], s.Bookmarks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrBookmarkNotFound, id)
}

// MoveBookmark reparents a bookmark. Pass nil to move it to root.
func (s *Store) MoveBookmark(id string, folderID *string) error {
	bookmark := s.GetBookmarkByID(id)
	if bookmark == nil {
		return fmt.Errorf("%w: %s", ErrBookmarkNotFound, id)
	}
	if err := s.requireFolder(folderID); err != nil {
		return err
	}
	bookmark.FolderID = clonePtr(folderID)
	bookmark.UpdatedAt = time.Now()
	return nil
}

// ToggleBookmarkPrivate flips the private flag and returns the new value.
func (s *Store) ToggleBookmarkPrivate(id string) (bool, error) {
	bookmark := s.GetBookmarkByID(id)
	if bookmark == nil {
		return false, fmt.Errorf("%w: %s", ErrBookmarkNotFound, id)
	}
	bookmark.IsPrivate = !bookmark.IsPrivate
	bookmark.UpdatedAt = time.Now()
	return bookmark.IsPrivate, nil
}

// MarkVisited records a visit time on the bookmark.
func (s *Store) MarkVisited(id string, at time.Time) error {
	bookmark := s.GetBookmarkByID(id)
	if bookmark == nil {
		return fmt.Errorf("%w: %s", ErrBookmarkNotFound, id)
	}
	bookmark.VisitedAt = &at
	return nil
}

// === Bookmarked bits ===

// IsBitBookmarked reports whether the bit id is in the bookmarked set.
func (s *Store) IsBitBookmarked(bitID string) bool {
	return slices.Contains(s.BookmarkedBits, bitID)
}

// ToggleBitBookmarked adds or removes the bit id and returns the new state.
func (s *Store) ToggleBitBookmarked(bitID string) bool {
	if i := slices.Index(s.BookmarkedBits, bitID); i >= 0 {
		s.BookmarkedBits = slices.Delete(s.BookmarkedBits, i, i+1)
		return false
	}
	s.BookmarkedBits = append(s.BookmarkedBits, bitID)
	return true
}

// === Tags ===

// Tags returns the distinct tags carried by bookmarks, sorted.
func Tags(bookmarks []Bookmark) []string {
	tagSet := make(map[string]bool)
	for _, b := range bookmarks {
		for _, tag := range b.Tags {
			tagSet[tag] = true
		}
	}

	tags := make([]string, 0, len(tagSet))
	for tag := range tagSet {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// normalizeTags lowercases, trims, and dedupes tags, dropping empty ones.
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool)
	result := []string{}
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		result = append(result, tag)
	}
	return result
}

// ParseTags splits a comma separated tag list.
func ParseTags(input string) []string {
	return normalizeTags(strings.Split(input, ","))
}

// ptrEqual compares two string pointers for equality.
func ptrEqual(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
