// Package picker is the one-shot result chooser behind `wdylt search`.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wdylt/wdylt/internal/model"
	"github.com/wdylt/wdylt/internal/search"
	"github.com/wdylt/wdylt/internal/tui/layout"
)

type styles struct {
	header, title, cursor, match, url, path, footer lipgloss.Style
}

var defaultStyles = styles{
	header: lipgloss.NewStyle().Foreground(lipgloss.Color("179")).Bold(true),
	title:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	cursor: lipgloss.NewStyle().Foreground(lipgloss.Color("215")).Bold(true),
	match:  lipgloss.NewStyle().Foreground(lipgloss.Color("179")).Underline(true),
	url:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
	path:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	footer: lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
}

type keyMap struct {
	up, down, bottom, choose, cancel key.Binding
}

var keys = keyMap{
	up:     key.NewBinding(key.WithKeys("k", "up")),
	down:   key.NewBinding(key.WithKeys("j", "down")),
	bottom: key.NewBinding(key.WithKeys("G")),
	choose: key.NewBinding(key.WithKeys("enter")),
	cancel: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

type outcome int

const (
	choosing outcome = iota
	chosen
	cancelled
)

// Picker lists search results and lets the user choose one.
type Picker struct {
	results []search.SearchResult
	store   *model.Store
	query   string
	cursor  int
	outcome outcome
	width   int
	height  int
	cfg     layout.LayoutConfig
}

// New creates a Picker over results. store supplies each result's folder
// path and may be nil.
func New(results []search.SearchResult, query string, store *model.Store) Picker {
	return Picker{
		results: results,
		store:   store,
		query:   query,
		width:   80,
		height:  24,
		cfg:     layout.DefaultConfig(),
	}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.cancel):
			p.outcome = cancelled
			return p, tea.Quit
		case key.Matches(msg, keys.choose):
			p.outcome = chosen
			if len(p.results) == 0 {
				p.outcome = cancelled
			}
			return p, tea.Quit
		case key.Matches(msg, keys.down):
			p.cursor = min(p.cursor+1, max(len(p.results)-1, 0))
		case key.Matches(msg, keys.up):
			p.cursor = max(p.cursor-1, 0)
		case key.Matches(msg, keys.bottom):
			p.cursor = max(len(p.results)-1, 0)
		}
	}
	return p, nil
}

func (p Picker) View() string {
	var b strings.Builder
	st := defaultStyles

	b.WriteString(st.header.Render(fmt.Sprintf("Search: %s (%d results)", p.query, len(p.results))))
	b.WriteString("\n\n")
	if len(p.results) == 0 {
		b.WriteString(st.url.Render("No bookmarks match.") + "\n")
	}

	width := p.width - 4
	visible := layout.CalculatePickerVisible(p.height, p.cfg.Picker)
	start, end := layout.CalculateVisibleListItems(visible, p.cursor, len(p.results))

	for i, r := range p.results[start:end] {
		marker, base := "  ", st.title
		if start+i == p.cursor {
			marker, base = "> ", st.cursor
		}
		title := layout.TruncateANSIAware(highlight(r.Bookmark.Title, r.MatchedIndexes, base, st.match), width, p.cfg.Text)
		url, _ := layout.TruncateText(r.Bookmark.URL, width, p.cfg.Text)

		b.WriteString(marker + title + "\n")
		b.WriteString("   " + st.url.Render(url) + "\n")
		if p.store != nil {
			path := layout.TruncatePathFromLeft(p.store.GetFolderPath(r.Bookmark.FolderID), width, p.cfg.Text)
			b.WriteString("   " + st.path.Render(path) + "\n")
		}
	}

	b.WriteString("\n" + st.footer.Render("j/k: move  enter: open  q/esc: cancel"))
	return b.String()
}

// highlight renders title with the fuzzy-matched runes emphasised.
// matched holds byte offsets, as reported by the fuzzy matcher.
func highlight(title string, matched []int, base, match lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(title)
	}
	hits := make(map[int]bool, len(matched))
	for _, i := range matched {
		hits[i] = true
	}

	var b strings.Builder
	for i, r := range title {
		style := base
		if hits[i] {
			style = match
		}
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

// SelectedBookmark returns the chosen bookmark, or nil when the picker was
// cancelled or is still open.
func (p Picker) SelectedBookmark() *model.Bookmark {
	if p.outcome != chosen || p.cursor >= len(p.results) {
		return nil
	}
	return p.results[p.cursor].Bookmark
}

func (p Picker) Cancelled() bool { return p.outcome == cancelled }
