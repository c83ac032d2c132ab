package picker_test

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/wdylt/wdylt/internal/model"
	"github.com/wdylt/wdylt/internal/picker"
	"github.com/wdylt/wdylt/internal/search"
)

func gitResults() []search.SearchResult {
	return []search.SearchResult{
		{Bookmark: &model.Bookmark{ID: "b1", Title: "GitHub", URL: "https://github.com"}},
		{Bookmark: &model.Bookmark{ID: "b2", Title: "GitLab", URL: "https://gitlab.com"}},
		{Bookmark: &model.Bookmark{ID: "b3", Title: "Gitea", URL: "https://gitea.io"}},
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press feeds keys to p and returns the final picker and the last command.
func press(p picker.Picker, keys ...string) (picker.Picker, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var m tea.Model
		m, cmd = p.Update(keyMsg(k))
		p = m.(picker.Picker)
	}
	return p, cmd
}

func TestPicker_Choose(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"first by default", []string{"enter"}, "b1"},
		{"j moves down", []string{"j", "enter"}, "b2"},
		{"arrow keys", []string{"down", "down", "up", "enter"}, "b2"},
		{"k stops at the top", []string{"k", "k", "enter"}, "b1"},
		{"j stops at the bottom", []string{"j", "j", "j", "j", "enter"}, "b3"},
		{"G jumps to the last", []string{"G", "enter"}, "b3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, cmd := press(picker.New(gitResults(), "git", nil), tt.keys...)

			if cmd == nil {
				t.Fatal("expected quit command after enter")
			}
			if p.Cancelled() {
				t.Fatal("did not expect cancel")
			}
			got := p.SelectedBookmark()
			if got == nil || got.ID != tt.want {
				t.Errorf("selected %v, want %s", got, tt.want)
			}
		})
	}
}

func TestPicker_Cancel(t *testing.T) {
	for _, k := range []string{"q", "esc", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			p, cmd := press(picker.New(gitResults(), "git", nil), "j", k)

			if !p.Cancelled() {
				t.Errorf("expected %s to cancel", k)
			}
			if cmd == nil {
				t.Error("expected quit command")
			}
			if p.SelectedBookmark() != nil {
				t.Error("cancelled picker must not return a selection")
			}
		})
	}
}

func TestPicker_NothingSelectedWhileOpen(t *testing.T) {
	p, cmd := press(picker.New(gitResults(), "git", nil), "j")

	if cmd != nil {
		t.Error("moving must not quit")
	}
	if p.SelectedBookmark() != nil || p.Cancelled() {
		t.Error("open picker has neither a selection nor a cancel")
	}
}

func TestPicker_EnterWithoutResultsCancels(t *testing.T) {
	p, cmd := press(picker.New(nil, "nothing", nil), "j", "G", "enter")

	if !p.Cancelled() {
		t.Error("expected enter on empty results to cancel")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
	if p.SelectedBookmark() != nil {
		t.Error("expected no selection")
	}
}

func TestPicker_ViewShowsFolderPath(t *testing.T) {
	dev := "dev"
	store := &model.Store{
		Folders: []model.Folder{{ID: dev, Name: "Development"}},
	}
	results := []search.SearchResult{
		{Bookmark: &model.Bookmark{ID: "b1", Title: "Go Docs", URL: "https://go.dev", FolderID: &dev}, MatchedIndexes: []int{0, 1}},
	}

	out := ansi.Strip(picker.New(results, "go", store).View())

	for _, want := range []string{"Search: go (1 results)", "> Go Docs", "https://go.dev", "/Development"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}

func TestPicker_ViewWithoutResults(t *testing.T) {
	out := ansi.Strip(picker.New(nil, "zzz", nil).View())

	if !strings.Contains(out, "No bookmarks match.") {
		t.Errorf("expected empty notice:\n%s", out)
	}
}

func TestPicker_ViewScrollsToCursor(t *testing.T) {
	var results []search.SearchResult
	for i := range 30 {
		title := fmt.Sprintf("Result %02d", i)
		results = append(results, search.SearchResult{
			Bookmark: &model.Bookmark{ID: title, Title: title, URL: "https://example.com"},
		})
	}

	p, _ := press(picker.New(results, "result", nil), "G")

	out := ansi.Strip(p.View())
	if !strings.Contains(out, "> Result 29") {
		t.Errorf("expected last result to be visible:\n%s", out)
	}
	if strings.Contains(out, "Result 00") {
		t.Errorf("expected first result to be scrolled out:\n%s", out)
	}
}

func TestPicker_WindowResizeTruncates(t *testing.T) {
	results := []search.SearchResult{
		{Bookmark: &model.Bookmark{ID: "b1", Title: "The Go Programming Language Specification", URL: "https://go.dev/ref/spec"}},
	}
	m, _ := picker.New(results, "go", nil).Update(tea.WindowSizeMsg{Width: 24, Height: 10})
	out := ansi.Strip(m.(picker.Picker).View())

	if !strings.Contains(out, "> The Go Programmin...") {
		t.Errorf("expected title cut to the window:\n%s", out)
	}
}
