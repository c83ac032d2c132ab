package linkcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/wdylt/wdylt/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/get-only", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/no-head", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusNotImplemented)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(func() {
		srv.CloseClientConnections()
		srv.Close()
	})
	return srv
}

func bookmarksFor(base string, paths ...string) []model.Bookmark {
	out := make([]model.Bookmark, len(paths))
	for i, p := range paths {
		out[i] = model.Bookmark{ID: p, Title: p, URL: base + p}
	}
	return out
}

func TestChecker_ClassifiesResponses(t *testing.T) {
	srv := newServer(t)
	checker := New(Options{Concurrency: 2, Timeout: time.Second, Client: srv.Client()})

	results, err := checker.Check(context.Background(),
		bookmarksFor(srv.URL, "/ok", "/gone", "/missing", "/broken", "/get-only", "/no-head"), nil)
	require.NoError(t, err)
	require.Len(t, results, 6)

	assert.Equal(t, Healthy, results[0].Status)
	assert.Equal(t, Dead, results[1].Status)
	assert.Equal(t, http.StatusGone, results[1].StatusCode)
	assert.Equal(t, Dead, results[2].Status)
	assert.Equal(t, Unreachable, results[3].Status)
	assert.Equal(t, "Internal Server Error", results[3].Error)
	assert.Equal(t, Healthy, results[4].Status)
	assert.Equal(t, Healthy, results[5].Status)
	assert.Equal(t, "dead", results[1].StatusName)

	assert.Equal(t, []string{"/gone", "/missing"}, DeadIDs(results))
}

func TestChecker_Progress(t *testing.T) {
	srv := newServer(t)
	checker := New(Options{Concurrency: 3, Client: srv.Client()})

	var calls atomic.Int32
	var last atomic.Int32
	_, err := checker.Check(context.Background(), bookmarksFor(srv.URL, "/ok", "/ok", "/ok", "/ok"),
		func(completed, total int) {
			calls.Add(1)
			last.Store(int32(completed))
			assert.Equal(t, 4, total)
		})
	require.NoError(t, err)
	assert.EqualValues(t, 4, calls.Load())
	assert.EqualValues(t, 4, last.Load())
}

func TestChecker_Empty(t *testing.T) {
	results, err := New(Options{}).Check(context.Background(), nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, results)
}

func TestChecker_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	results, err := New(Options{Timeout: time.Second}).Check(context.Background(),
		[]model.Bookmark{{ID: "x", URL: addr + "/x"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, Unreachable, results[0].Status)
	assert.Equal(t, "Connection refused", results[0].Error)
}

func TestChecker_Canceled(t *testing.T) {
	srv := newServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := New(Options{Client: srv.Client()}).Check(ctx, bookmarksFor(srv.URL, "/ok"), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Unreachable, results[0].Status)
}

func TestIsExcludedDomain(t *testing.T) {
	checker := New(Options{ExcludeDomains: []string{"GitHub.com"}})

	assert.True(t, checker.isExcludedDomain("https://github.com/me/private"))
	assert.True(t, checker.isExcludedDomain("https://gist.github.com/x"))
	assert.False(t, checker.isExcludedDomain("https://notgithub.com/x"))
	assert.False(t, checker.isExcludedDomain("://bad"))
}

func TestNormalizeError(t *testing.T) {
	assert.Equal(t, "DNS failure", normalizeError("dial tcp: lookup x: no such host"))
	assert.Equal(t, "Timeout", normalizeError("Client.Timeout exceeded while awaiting headers"))
	assert.Equal(t, "something else", normalizeError("something else"))
}
