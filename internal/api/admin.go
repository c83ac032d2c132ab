package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wdylt/wdylt/internal/exporter"
	"github.com/wdylt/wdylt/internal/importer"
	"github.com/wdylt/wdylt/internal/linkcheck"
)

// maxImportSize bounds the uploaded bookmarks file.
const maxImportSize = 16 << 20

func (s *Server) exportHTML(c *gin.Context) {
	filename := fmt.Sprintf("wdylt-export-%s.html", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(exporter.ExportHTML(s.lib.Snapshot())))
}

func (s *Server) importHTML(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)
	folders, bookmarks, err := importer.ParseHTMLBookmarks(body)
	if err != nil {
		writeError(c, s.logger, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	added, skipped, err := s.lib.ImportMerge(c.Request.Context(), folders, bookmarks)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"folders": len(folders), "added": added, "skipped": skipped})
}

// linkCheck checks every bookmark; ?prune=true deletes the dead ones.
func (s *Server) linkCheck(c *gin.Context) {
	results, err := s.checker.Check(c.Request.Context(), s.lib.Bookmarks(), nil)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	for _, r := range results {
		s.metrics.LinkChecks.WithLabelValues(r.Status.String()).Inc()
	}

	response := gin.H{"results": results, "pruned": 0}
	if c.Query("prune") == "true" {
		dead := linkcheck.DeadIDs(results)
		removed, err := s.lib.DeleteBookmarks(c.Request.Context(), dead)
		if err != nil {
			writeError(c, s.logger, err)
			return
		}
		response["pruned"] = removed
	}
	c.JSON(http.StatusOK, response)
}
