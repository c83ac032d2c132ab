package model

import "strings"

// Descendants returns the ids of every folder transitively below id.
// The closure is built by repeated linear passes until no new ids appear.
func (s *Store) Descendants(id string) []string {
	seen := map[string]bool{id: true}
	var result []string

	for changed := true; changed; {
		changed = false
		for _, f := range s.Folders {
			if f.ParentID == nil || seen[f.ID] || !seen[*f.ParentID] {
				continue
			}
			seen[f.ID] = true
			result = append(result, f.ID)
			changed = true
		}
	}
	return result
}

// IsDescendant reports whether id lies strictly below ancestorID.
func (s *Store) IsDescendant(ancestorID, id string) bool {
	visited := make(map[string]bool)
	current := s.GetFolderByID(id)
	for current != nil && current.ParentID != nil {
		if visited[current.ID] {
			return false
		}
		visited[current.ID] = true
		if *current.ParentID == ancestorID {
			return true
		}
		current = s.GetFolderByID(*current.ParentID)
	}
	return false
}

// ResolvePath returns the breadcrumb from the root down to the folder.
// The walk stops at a nil parent or a parent that no longer exists.
// Returns nil when id is unknown.
func (s *Store) ResolvePath(id string) []Folder {
	var reversed []Folder
	visited := make(map[string]bool)

	current := s.GetFolderByID(id)
	for current != nil && !visited[current.ID] {
		visited[current.ID] = true
		reversed = append(reversed, *current)
		if current.ParentID == nil {
			break
		}
		current = s.GetFolderByID(*current.ParentID)
	}

	path := make([]Folder, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		path = append(path, reversed[i])
	}
	if len(path) == 0 {
		return nil
	}
	return path
}

// GetFolderPath returns the folder's path like "/Tech/Programming".
// Returns "/" for nil (root).
func (s *Store) GetFolderPath(id *string) string {
	if id == nil {
		return "/"
	}
	path := s.ResolvePath(*id)
	if len(path) == 0 {
		return "/"
	}

	names := make([]string, len(path))
	for i, f := range path {
		names[i] = f.Name
	}
	return "/" + strings.Join(names, "/")
}

// FoldersAtPath returns the ids of every folder whose path is path.
// Sibling names are not unique, so more than one folder can match.
// "/" is root and has no id.
func (s *Store) FoldersAtPath(path string) []string {
	want := "/" + strings.Trim(strings.TrimSpace(path), "/")
	var ids []string
	for i := range s.Folders {
		if s.GetFolderPath(&s.Folders[i].ID) == want {
			ids = append(ids, s.Folders[i].ID)
		}
	}
	return ids
}
