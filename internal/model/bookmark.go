package model

import (
	"strings"
	"time"
)

// Bookmark represents a saved URL with metadata.
type Bookmark struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Description string     `json:"description,omitempty"`
	FolderID    *string    `json:"folderId"` // nil = root level
	IsPrivate   bool       `json:"isPrivate"`
	Tags        []string   `json:"tags"`
	Icon        string     `json:"icon,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	VisitedAt   *time.Time `json:"visitedAt"` // nil = never visited
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	Title       string
	URL         string
	Description string
	FolderID    *string
	IsPrivate   bool
	Tags        []string
	Icon        string
	Summary     string
}

// NewBookmark creates a Bookmark with generated UUID and timestamps.
// The URL is normalized and an empty title falls back to the URL.
func NewBookmark(params NewBookmarkParams) Bookmark {
	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	url := NormalizeURL(params.URL)
	title := strings.TrimSpace(params.Title)
	if title == "" {
		title = url
	}

	now := time.Now()
	return Bookmark{
		ID:          GenerateUUID(),
		Title:       title,
		URL:         url,
		Description: strings.TrimSpace(params.Description),
		FolderID:    params.FolderID,
		IsPrivate:   params.IsPrivate,
		Tags:        tags,
		Icon:        params.Icon,
		Summary:     params.Summary,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// BookmarkUpdate holds the mutable fields of a bookmark. Nil fields are left as is.
type BookmarkUpdate struct {
	Title       *string
	URL         *string
	Description *string
	IsPrivate   *bool
	Tags        []string
	Icon        *string
	Summary     *string
}
