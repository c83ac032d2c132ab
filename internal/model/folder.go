package model

import (
	"strings"
	"time"
)

// Folder represents a container for bookmarks and other folders.
type Folder struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ParentID    *string   `json:"parentId"` // nil = root level
	IsPrivate   bool      `json:"isPrivate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewFolderParams holds parameters for creating a new Folder.
type NewFolderParams struct {
	Name        string
	Description string
	ParentID    *string
	IsPrivate   bool
}

// NewFolder creates a Folder with generated UUID and timestamps.
func NewFolder(params NewFolderParams) Folder {
	now := time.Now()
	return Folder{
		ID:          GenerateUUID(),
		Name:        strings.TrimSpace(params.Name),
		Description: strings.TrimSpace(params.Description),
		ParentID:    params.ParentID,
		IsPrivate:   params.IsPrivate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// FolderUpdate holds the mutable fields of a folder. Nil fields are left as is.
type FolderUpdate struct {
	Name        *string
	Description *string
	IsPrivate   *bool
}
