package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

const page = `<!doctype html>
<html><head>
  <title>
    The Go Programming Language
  </title>
  <meta name="description" content="Build simple, secure, scalable systems with Go">
  <link rel="stylesheet" href="/main.css">
  <link rel="shortcut icon" href="/images/favicon.png">
</head><body>hello</body></html>`

func TestParse(t *testing.T) {
	base, _ := url.Parse("https://go.dev/doc/")

	got, err := Parse(strings.NewReader(page), base)
	assert.NilError(t, err)
	assert.DeepEqual(t, got, Page{
		Title:       "The Go Programming Language",
		Description: "Build simple, secure, scalable systems with Go",
		Icon:        "https://go.dev/images/favicon.png",
	})
}

func TestParse_OpenGraphAndDefaultIcon(t *testing.T) {
	base, _ := url.Parse("https://example.com/post/1")
	html := `<html><head>
<meta property="og:title" content="OG Title">
<meta property="og:description" content="OG description">
<title>Plain</title></head></html>`

	got, err := Parse(strings.NewReader(html), base)
	assert.NilError(t, err)
	assert.Equal(t, got.Title, "OG Title")
	assert.Equal(t, got.Description, "OG description")
	assert.Equal(t, got.Icon, "https://example.com/favicon.ico")
}

func TestFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), time.Second)

	got, err := f.Fetch(context.Background(), srv.URL+"/")
	assert.NilError(t, err)
	assert.Equal(t, got.Title, "The Go Programming Language")
	assert.Equal(t, got.Icon, srv.URL+"/images/favicon.png")

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "404")
}
