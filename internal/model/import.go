package model

// HasBookmarkURL reports whether a bookmark with the URL already exists.
// Both sides are compared in normalized form.
func (s *Store) HasBookmarkURL(url string) bool {
	url = NormalizeURL(url)
	for _, b := range s.Bookmarks {
		if NormalizeURL(b.URL) == url {
			return true
		}
	}
	return false
}

// ImportMerge merges imported folders and bookmarks into the store.
// Folders with the same name under the same parent are reused. Bookmark URLs
// are normalized, and bookmarks whose URL already exists are skipped. Imported folders must be ordered
// parents first, which is how the importer emits them.
func (s *Store) ImportMerge(folders []Folder, bookmarks []Bookmark) (added, skipped int) {
	idMap := make(map[string]string, len(folders))

	for _, f := range folders {
		parentID := f.ParentID
		if parentID != nil {
			if mapped, ok := idMap[*parentID]; ok {
				parentID = &mapped
			}
		}

		if existing := s.findFolder(f.Name, parentID); existing != nil {
			idMap[f.ID] = existing.ID
			continue
		}

		f.ParentID = clonePtr(parentID)
		s.Folders = append(s.Folders, f)
		idMap[f.ID] = f.ID
	}

	for _, b := range bookmarks {
		b.URL = NormalizeURL(b.URL)
		if b.URL == "" || s.HasBookmarkURL(b.URL) {
			skipped++
			continue
		}
		if b.FolderID != nil {
			if mapped, ok := idMap[*b.FolderID]; ok {
				b.FolderID = &mapped
			}
		}
		if b.Tags == nil {
			b.Tags = []string{}
		}
		s.Bookmarks = append(s.Bookmarks, b)
		added++
	}

	return added, skipped
}

// findFolder returns the first folder with the name under parentID.
func (s *Store) findFolder(name string, parentID *string) *Folder {
	for i := range s.Folders {
		if s.Folders[i].Name == name && ptrEqual(s.Folders[i].ParentID, parentID) {
			return &s.Folders[i]
		}
	}
	return nil
}
