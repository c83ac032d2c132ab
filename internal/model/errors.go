package model

import "errors"

var (
	ErrFolderNotFound   = errors.New("folder not found")
	ErrBookmarkNotFound = errors.New("bookmark not found")
	ErrCycle            = errors.New("folder cannot be moved into its own subtree")
	ErrEmptyName        = errors.New("name is required")
	ErrEmptyURL         = errors.New("url is required")
	ErrAmbiguousPath    = errors.New("path matches more than one folder")
)
