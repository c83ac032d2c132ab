package search

import (
	"github.com/sahilm/fuzzy"

	"github.com/wdylt/wdylt/internal/model"
)

// SearchResult is one fuzzy hit. MatchedIndexes are byte offsets into the
// bookmark title.
type SearchResult struct {
	Bookmark       *model.Bookmark
	MatchedIndexes []int
	Score          int
}

// titleSource adapts a bookmark slice to fuzzy.Source.
type titleSource []*model.Bookmark

func (t titleSource) String(i int) string { return t[i].Title }
func (t titleSource) Len() int            { return len(t) }

// FuzzySearchBookmarks ranks every bookmark, private ones included, by how
// well its title matches query. Best match first; nil for an empty query.
func FuzzySearchBookmarks(store *model.Store, query string) []SearchResult {
	return Fuzzy(store, query, Options{IncludePrivate: true})
}

// Fuzzy is FuzzySearchBookmarks with visibility options.
func Fuzzy(store *model.Store, query string, opts Options) []SearchResult {
	if query == "" {
		return nil
	}

	candidates := make(titleSource, 0, len(store.Bookmarks))
	for i := range store.Bookmarks {
		if opts.IncludePrivate || Visible(store, store.Bookmarks[i]) {
			candidates = append(candidates, &store.Bookmarks[i])
		}
	}

	hits := fuzzy.FindFrom(query, candidates)
	results := make([]SearchResult, 0, len(hits))
	for _, h := range hits {
		results = append(results, SearchResult{
			Bookmark:       candidates[h.Index],
			MatchedIndexes: h.MatchedIndexes,
			Score:          h.Score,
		})
	}
	return results
}
