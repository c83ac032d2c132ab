// Package metadata scrapes page metadata used to prefill new bookmarks.
package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// maxBody caps how much of a page is read.
const maxBody = 2 << 20

// Page is what could be scraped from a URL. Any field may be empty.
type Page struct {
	Title       string
	Description string
	Icon        string // absolute favicon URL
}

// Fetcher downloads pages and extracts their metadata.
type Fetcher struct {
	client *http.Client
}

// NewFetcher returns a Fetcher using client, or a client with timeout when nil.
func NewFetcher(client *http.Client, timeout time.Duration) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Fetcher{client: client}
}

// Fetch downloads rawURL and extracts title, description and icon.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Page{}, err
	}
	req.Header.Set("User-Agent", "wdylt/1.0")
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return Page{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Page{}, fmt.Errorf("fetch %s: %s", rawURL, resp.Status)
	}

	return Parse(io.LimitReader(resp.Body, maxBody), resp.Request.URL)
}

// Parse extracts metadata from an HTML document served at base.
func Parse(r io.Reader, base *url.URL) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Page{}, err
	}

	page := Page{
		Title: firstNonEmpty(
			metaContent(doc, "property", "og:title"),
			doc.Find("head title").First().Text(),
		),
		Description: firstNonEmpty(
			metaContent(doc, "name", "description"),
			metaContent(doc, "property", "og:description"),
		),
	}

	doc.Find("link[rel]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		rel := strings.ToLower(s.AttrOr("rel", ""))
		if !strings.Contains(rel, "icon") {
			return true
		}
		if href := strings.TrimSpace(s.AttrOr("href", "")); href != "" {
			page.Icon = resolve(base, href)
			return false
		}
		return true
	})
	if page.Icon == "" && base != nil {
		page.Icon = resolve(base, "/favicon.ico")
	}

	return page, nil
}

func metaContent(doc *goquery.Document, attr, value string) string {
	var content string
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.EqualFold(s.AttrOr(attr, ""), value) {
			content = s.AttrOr("content", "")
			return false
		}
		return true
	})
	return content
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.Join(strings.Fields(v), " "); v != "" {
			return v
		}
	}
	return ""
}
