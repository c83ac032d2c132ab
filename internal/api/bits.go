package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wdylt/wdylt/internal/model"
)

func (s *Server) bookmarkedBits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"bitIds": s.lib.BookmarkedBits()})
}

func (s *Server) toggleBit(c *gin.Context) {
	id := c.Param("id")
	on, err := s.lib.ToggleBitBookmarked(c.Request.Context(), id)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bitId": id, "bookmarked": on})
}

type convertBitRequest struct {
	Bit      model.Bit `json:"bit"`
	FolderID *string   `json:"folderId"`
}

func (s *Server) convertBit(c *gin.Context) {
	var req convertBitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, s.logger, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	bookmark, err := s.lib.SaveBitAsBookmark(c.Request.Context(), req.Bit, req.FolderID)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusCreated, bookmark)
}

// bookmarkToBit returns a new bit card built from a stored bookmark. The
// bookmark itself is left in place.
func (s *Server) bookmarkToBit(c *gin.Context) {
	bookmark, err := s.lib.Bookmark(c.Param("id"))
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusCreated, model.BookmarkToBit(bookmark))
}
