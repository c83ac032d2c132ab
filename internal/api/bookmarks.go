package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wdylt/wdylt/internal/model"
	"github.com/wdylt/wdylt/internal/search"
)

func (s *Server) listBookmarks(c *gin.Context) {
	query := c.Query("q")
	folder, scoped := c.GetQuery("folder")
	opts := search.Options{IncludePrivate: !principal(c).Anonymous()}

	var out []model.Bookmark
	s.lib.View(func(store *model.Store) {
		if scoped {
			out = search.Filter(store, parseParent(folder), query, opts)
			return
		}
		out = search.FilterAll(store, query, opts)
	})
	c.JSON(http.StatusOK, out)
}

// listTags returns the tags of every bookmark the caller may see.
func (s *Server) listTags(c *gin.Context) {
	opts := search.Options{IncludePrivate: !principal(c).Anonymous()}

	var tags []string
	s.lib.View(func(store *model.Store) {
		tags = model.Tags(search.FilterAll(store, "", opts))
	})
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (s *Server) getBookmark(c *gin.Context) {
	id := c.Param("id")

	var found *model.Bookmark
	s.lib.View(func(store *model.Store) {
		b := store.GetBookmarkByID(id)
		if b != nil && (!principal(c).Anonymous() || search.Visible(store, *b)) {
			copied := *b
			found = &copied
		}
	})
	if found == nil {
		writeError(c, s.logger, fmt.Errorf("%w: %s", model.ErrBookmarkNotFound, id))
		return
	}
	c.JSON(http.StatusOK, found)
}

type createBookmarkRequest struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	FolderID    *string  `json:"folderId"`
	IsPrivate   bool     `json:"isPrivate"`
	Tags        []string `json:"tags"`
	// FetchMetadata fills empty title, summary and icon from the page.
	FetchMetadata bool `json:"fetchMetadata"`
}

func (s *Server) createBookmark(c *gin.Context) {
	var req createBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, s.logger, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	params := model.NewBookmarkParams{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		FolderID:    req.FolderID,
		IsPrivate:   req.IsPrivate,
		Tags:        req.Tags,
	}
	if req.FetchMetadata {
		s.enrich(c.Request.Context(), &params)
	}

	bookmark, err := s.lib.AddBookmark(c.Request.Context(), params)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusCreated, bookmark)
}

// enrich fills params from page metadata. Fetch failures are logged only.
func (s *Server) enrich(ctx context.Context, params *model.NewBookmarkParams) {
	if s.fetcher == nil || params.URL == "" {
		return
	}
	page, err := s.fetcher.Fetch(ctx, model.NormalizeURL(params.URL))
	if err != nil {
		s.logger.Warn("metadata fetch failed", zap.String("url", params.URL), zap.Error(err))
		return
	}
	if params.Title == "" {
		params.Title = page.Title
	}
	params.Summary = page.Description
	params.Icon = page.Icon
}

type updateBookmarkRequest struct {
	Title       *string  `json:"title"`
	URL         *string  `json:"url"`
	Description *string  `json:"description"`
	IsPrivate   *bool    `json:"isPrivate"`
	Tags        []string `json:"tags"`
}

func (s *Server) updateBookmark(c *gin.Context) {
	var req updateBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, s.logger, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	bookmark, err := s.lib.UpdateBookmark(c.Request.Context(), c.Param("id"), model.BookmarkUpdate{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
		Tags:        req.Tags,
	})
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, bookmark)
}

type moveBookmarkRequest struct {
	FolderID *string `json:"folderId"` // null = root
}

func (s *Server) moveBookmark(c *gin.Context) {
	var req moveBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, s.logger, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	id := c.Param("id")
	if err := s.lib.MoveBookmark(c.Request.Context(), id, req.FolderID); err != nil {
		writeError(c, s.logger, err)
		return
	}
	bookmark, err := s.lib.Bookmark(id)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, bookmark)
}

func (s *Server) toggleBookmarkPrivate(c *gin.Context) {
	private, err := s.lib.ToggleBookmarkPrivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "isPrivate": private})
}

func (s *Server) visitBookmark(c *gin.Context) {
	if err := s.lib.MarkVisited(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, s.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteBookmark(c *gin.Context) {
	if err := s.lib.DeleteBookmark(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, s.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
