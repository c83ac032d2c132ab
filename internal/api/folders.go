package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wdylt/wdylt/internal/model"
	"github.com/wdylt/wdylt/internal/search"
)

// parseParent reads a folder reference: "" or "root" mean the root (nil).
func parseParent(v string) *string {
	if v == "" || v == "root" {
		return nil
	}
	return &v
}

// canSeeFolder hides private subtrees from anonymous callers.
func canSeeFolder(c *gin.Context, store *model.Store, id string) bool {
	return !principal(c).Anonymous() || search.FolderVisible(store, id)
}

func (s *Server) listFolders(c *gin.Context) {
	parent, filterParent := c.GetQuery("parent")

	out := []model.Folder{}
	s.lib.View(func(store *model.Store) {
		folders := store.Folders
		if filterParent {
			folders = store.GetFoldersInFolder(parseParent(parent))
		}
		for _, f := range folders {
			if canSeeFolder(c, store, f.ID) {
				out = append(out, f)
			}
		}
	})
	c.JSON(http.StatusOK, out)
}

type folderDetail struct {
	Folder    model.Folder     `json:"folder"`
	Path      string           `json:"path"`
	Folders   []model.Folder   `json:"folders"`
	Bookmarks []model.Bookmark `json:"bookmarks"`
}

func (s *Server) getFolder(c *gin.Context) {
	id := c.Param("id")
	opts := search.Options{IncludePrivate: !principal(c).Anonymous()}

	var detail *folderDetail
	s.lib.View(func(store *model.Store) {
		f := store.GetFolderByID(id)
		if f == nil || !canSeeFolder(c, store, id) {
			return
		}
		detail = &folderDetail{
			Folder:    *f,
			Path:      store.GetFolderPath(&f.ID),
			Folders:   []model.Folder{},
			Bookmarks: search.Filter(store, &f.ID, "", opts),
		}
		for _, child := range store.GetFoldersInFolder(&f.ID) {
			if canSeeFolder(c, store, child.ID) {
				detail.Folders = append(detail.Folders, child)
			}
		}
	})
	if detail == nil {
		writeError(c, s.logger, fmt.Errorf("%w: %s", model.ErrFolderNotFound, id))
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) folderPath(c *gin.Context) {
	id := c.Param("id")

	var (
		path    []model.Folder
		display string
	)
	s.lib.View(func(store *model.Store) {
		if !canSeeFolder(c, store, id) {
			return
		}
		path = store.ResolvePath(id)
		display = store.GetFolderPath(&id)
	})
	if path == nil {
		writeError(c, s.logger, fmt.Errorf("%w: %s", model.ErrFolderNotFound, id))
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": display, "folders": path})
}

type createFolderRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ParentID    *string `json:"parentId"`
	IsPrivate   bool    `json:"isPrivate"`
}

func (s *Server) createFolder(c *gin.Context) {
	var req createFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, s.logger, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	folder, err := s.lib.AddFolder(c.Request.Context(), model.NewFolderParams{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusCreated, folder)
}

type updateFolderRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsPrivate   *bool   `json:"isPrivate"`
}

func (s *Server) updateFolder(c *gin.Context) {
	var req updateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, s.logger, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	folder, err := s.lib.UpdateFolder(c.Request.Context(), c.Param("id"), model.FolderUpdate{
		Name:        req.Name,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, folder)
}

type moveFolderRequest struct {
	ParentID *string `json:"parentId"` // null = root
}

func (s *Server) moveFolder(c *gin.Context) {
	var req moveFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, s.logger, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	id := c.Param("id")
	if err := s.lib.MoveFolder(c.Request.Context(), id, req.ParentID); err != nil {
		writeError(c, s.logger, err)
		return
	}
	folder, err := s.lib.Folder(id)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, folder)
}

func (s *Server) deleteFolder(c *gin.Context) {
	result, err := s.lib.DeleteFolder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"deletedFolders":   result.FolderIDs,
		"deletedBookmarks": result.BookmarksRemoved,
	})
}
