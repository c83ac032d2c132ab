package model

import (
	"strings"
	"time"
)

// Bit is a short user-authored content card. It is a separate type from
// Bookmark; the two convert into each other explicitly.
type Bit struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Image       string    `json:"image,omitempty"`
	Link        string    `json:"link,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BitToBookmark converts a bit with a link into a new bookmark placed in folderID.
// Returns ErrEmptyURL when the bit has no link.
func BitToBookmark(bit Bit, folderID *string) (Bookmark, error) {
	if strings.TrimSpace(bit.Link) == "" {
		return Bookmark{}, ErrEmptyURL
	}

	tags := append([]string{}, bit.Tags...)
	return NewBookmark(NewBookmarkParams{
		Title:       bit.Title,
		URL:         bit.Link,
		Description: bit.Description,
		FolderID:    folderID,
		Tags:        tags,
		Icon:        bit.Image,
	}), nil
}

// BookmarkToBit converts a bookmark into a new bit. The summary is used when
// the bookmark has no description.
func BookmarkToBit(b Bookmark) Bit {
	description := b.Description
	if description == "" {
		description = b.Summary
	}

	return Bit{
		ID:          GenerateUUID(),
		Title:       b.Title,
		Description: description,
		Tags:        append([]string{}, b.Tags...),
		Image:       b.Icon,
		Link:        b.URL,
		CreatedAt:   time.Now(),
	}
}
