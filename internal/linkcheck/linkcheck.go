// Package linkcheck reports which bookmark URLs no longer resolve.
package linkcheck

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wdylt/wdylt/internal/model"
)

// Status represents the health status of a URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, connection refused, etc.
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Dead:
		return "dead"
	default:
		return "unreachable"
	}
}

// Result holds the check result for a single bookmark.
type Result struct {
	Bookmark   model.Bookmark `json:"bookmark"`
	Status     Status         `json:"-"`
	StatusName string         `json:"status"`
	StatusCode int            `json:"statusCode,omitempty"` // 0 if connection failed
	Error      string         `json:"error,omitempty"`
}

// ProgressFunc is called after each URL is checked.
type ProgressFunc func(completed, total int)

// Options configures a Checker.
type Options struct {
	Concurrency int
	Timeout     time.Duration
	// ExcludeDomains lists hosts where a 404 usually means "private" rather
	// than gone, e.g. private repositories.
	ExcludeDomains []string
	Client         *http.Client
	Logger         *zap.Logger
}

// Checker checks bookmark URLs with a bounded number of concurrent requests.
type Checker struct {
	client      *http.Client
	concurrency int
	exclude     map[string]bool
	logger      *zap.Logger
}

// New creates a Checker.
func New(opts Options) *Checker {
	if opts.Concurrency < 1 {
		opts.Concurrency = 10
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}

	exclude := make(map[string]bool, len(opts.ExcludeDomains))
	for _, domain := range opts.ExcludeDomains {
		exclude[strings.ToLower(domain)] = true
	}

	return &Checker{
		client:      client,
		concurrency: opts.Concurrency,
		exclude:     exclude,
		logger:      opts.Logger,
	}
}

// Check checks every bookmark and returns results in input order.
// Cancelling ctx stops outstanding requests; their results are Unreachable.
func (c *Checker) Check(ctx context.Context, bookmarks []model.Bookmark, onProgress ProgressFunc) ([]Result, error) {
	if len(bookmarks) == 0 {
		return nil, nil
	}

	results := make([]Result, len(bookmarks))
	var progressMu sync.Mutex
	completed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i := range bookmarks {
		g.Go(func() error {
			results[i] = c.checkURL(gctx, bookmarks[i])

			if onProgress != nil {
				progressMu.Lock()
				completed++
				onProgress(completed, len(bookmarks))
				progressMu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	dead := 0
	for _, r := range results {
		if r.Status == Dead {
			dead++
		}
	}
	c.logger.Info("link check finished", zap.Int("checked", len(results)), zap.Int("dead", dead))
	return results, ctx.Err()
}

// checkURL checks a single URL and returns the result.
func (c *Checker) checkURL(ctx context.Context, bookmark model.Bookmark) Result {
	result := Result{Bookmark: bookmark}

	// Try HEAD first, some servers only answer GET
	resp, err := c.do(ctx, http.MethodHead, bookmark.URL)
	if err != nil || resp.StatusCode == http.StatusMethodNotAllowed || resp.StatusCode == http.StatusNotImplemented {
		if resp != nil {
			resp.Body.Close()
		}
		resp, err = c.do(ctx, http.MethodGet, bookmark.URL)
		if err != nil {
			result.Status = Unreachable
			result.Error = normalizeError(err.Error())
			result.StatusName = result.Status.String()
			c.logger.Debug("link unreachable", zap.String("url", bookmark.URL), zap.Error(err))
			return result
		}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		if c.isExcludedDomain(bookmark.URL) {
			result.Status = Unreachable
			result.Error = "Possibly private (auth required)"
		} else {
			result.Status = Dead
		}
	default:
		// 403, 5xx and friends may be temporary or need auth
		result.Status = Unreachable
		result.Error = http.StatusText(resp.StatusCode)
	}

	result.StatusName = result.Status.String()
	return result
}

func (c *Checker) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "wdylt-linkcheck/1.0")
	return c.client.Do(req)
}

// isExcludedDomain checks if the URL's host is an excluded domain or below one.
func (c *Checker) isExcludedDomain(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	if c.exclude[host] {
		return true
	}
	for domain := range c.exclude {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// DeadIDs returns the ids of bookmarks found Dead.
func DeadIDs(results []Result) []string {
	var ids []string
	for _, r := range results {
		if r.Status == Dead {
			ids = append(ids, r.Bookmark.ID)
		}
	}
	return ids
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "context canceled"):
		return "Canceled"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return errStr
	}
}
