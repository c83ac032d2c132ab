// Package api serves the library over HTTP as JSON.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/wdylt/wdylt/internal/authz"
	"github.com/wdylt/wdylt/internal/library"
	"github.com/wdylt/wdylt/internal/linkcheck"
	"github.com/wdylt/wdylt/internal/metadata"
	"github.com/wdylt/wdylt/internal/metrics"
)

// RateLimit is a per-client token bucket. RPS <= 0 disables limiting.
type RateLimit struct {
	RPS   float64
	Burst int
}

// Options wires the server's dependencies. Only Library is required.
type Options struct {
	Library *library.Library
	// Verifier checks bearer tokens; nil treats every caller as anonymous.
	Verifier *authz.Verifier
	Guard    authz.Guard
	Checker  *linkcheck.Checker
	Fetcher  *metadata.Fetcher
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger

	RateLimit RateLimit
}

// Server holds the HTTP handlers.
type Server struct {
	lib      *library.Library
	verifier *authz.Verifier
	guard    authz.Guard
	checker  *linkcheck.Checker
	fetcher  *metadata.Fetcher
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	logger   *zap.Logger
	limiter  *limiterStore

	engine *gin.Engine
}

// New builds a Server and its router.
func New(opts Options) *Server {
	s := &Server{
		lib:      opts.Library,
		verifier: opts.Verifier,
		guard:    opts.Guard,
		checker:  opts.Checker,
		fetcher:  opts.Fetcher,
		metrics:  opts.Metrics,
		gatherer: opts.Gatherer,
		logger:   opts.Logger,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.guard == nil {
		s.guard = authz.RoleGuard()
	}
	if s.checker == nil {
		s.checker = linkcheck.New(linkcheck.Options{Logger: s.logger})
	}
	if s.metrics == nil {
		reg := prometheus.NewRegistry()
		s.metrics = metrics.New(reg)
		s.gatherer = reg
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}
	if opts.RateLimit.RPS > 0 {
		s.limiter = newLimiterStore(opts.RateLimit.RPS, opts.RateLimit.Burst)
	}

	s.engine = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), s.observe(), s.authenticate())
	if s.limiter != nil {
		r.Use(s.rateLimit())
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")

	folders := api.Group("/folders")
	folders.GET("", s.listFolders)
	folders.GET("/:id", s.getFolder)
	folders.GET("/:id/path", s.folderPath)
	folders.POST("", s.requireUser(), s.createFolder)
	folders.PATCH("/:id", s.requireUser(), s.updateFolder)
	folders.POST("/:id/move", s.requireUser(), s.moveFolder)
	folders.DELETE("/:id", s.requireUser(), s.deleteFolder)

	bookmarks := api.Group("/bookmarks")
	bookmarks.GET("", s.listBookmarks)
	bookmarks.GET("/:id", s.getBookmark)
	bookmarks.POST("", s.requireUser(), s.createBookmark)
	bookmarks.PATCH("/:id", s.requireUser(), s.updateBookmark)
	bookmarks.POST("/:id/move", s.requireUser(), s.moveBookmark)
	bookmarks.POST("/:id/private", s.requireUser(), s.toggleBookmarkPrivate)
	bookmarks.POST("/:id/visit", s.requireUser(), s.visitBookmark)
	bookmarks.DELETE("/:id", s.requireUser(), s.deleteBookmark)
	bookmarks.POST("/:id/bit", s.requireUser(), s.bookmarkToBit)

	api.GET("/tags", s.listTags)

	bits := api.Group("/bits", s.requireUser())
	bits.GET("/bookmarked", s.bookmarkedBits)
	bits.POST("/:id/bookmark", s.toggleBit)
	bits.POST("/convert", s.convertBit)

	admin := api.Group("/admin", s.requireAdmin())
	admin.GET("/export", s.exportHTML)
	admin.POST("/import", s.importHTML)
	admin.POST("/linkcheck", s.linkCheck)

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
