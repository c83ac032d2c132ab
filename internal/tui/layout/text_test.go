package layout

import (
	"strings"
	"testing"
)

func TestVisibleLength(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain", "Go Docs", 7},
		{"styled", "\x1b[1;36mGo Docs\x1b[0m", 7},
		{"tree arrow", "▸ Dev/", 6},
		{"wide runes take two cells", "日本", 4},
		{"empty", "", 0},
		{"escape codes only", "\x1b[1m\x1b[0m", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VisibleLength(tt.input); got != tt.want {
				t.Errorf("VisibleLength(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name      string
		text      string
		maxWidth  int
		want      string
		truncated bool
	}{
		{"fits", "GitHub", 10, "GitHub", false},
		{"exact", "GitHub", 6, "GitHub", false},
		{"cut", "https://go.dev/tour", 12, "https://g...", true},
		{"room for ellipsis only", "GitHub", 3, "...", true},
		{"narrower than ellipsis", "GitHub", 2, "..", true},
		{"zero width", "GitHub", 0, "", true},
		{"empty", "", 5, "", false},
		{"wide runes", "日本語の本", 7, "日本...", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateText(tt.text, tt.maxWidth, cfg)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncateText(%q, %d) = (%q, %v), want (%q, %v)",
					tt.text, tt.maxWidth, got, truncated, tt.want, tt.truncated)
			}
		})
	}
}

func TestTruncateWithPrefixSuffix(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name      string
		text      string
		maxWidth  int
		prefix    string
		suffix    string
		want      string
		truncated bool
	}{
		{"folder fits", "Dev", 10, "▸ ", "/", "▸ Dev/", false},
		{"folder title cut", "Development", 12, "▸ ", "/", "▸ Develo.../", true},
		{"nested bookmark cut", "React Documentation", 14, "    ", "", "    React D...", true},
		{"private marker kept", "Payroll portal", 14, "  ", " [p]", "  Payro... [p]", true},
		{"no decoration", "Development", 8, "", "", "Devel...", true},
		{"overhead leaves no title", "abc", 6, "▸ ", " [p]", "▸ a...", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateWithPrefixSuffix(tt.text, tt.maxWidth, tt.prefix, tt.suffix, cfg)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncateWithPrefixSuffix(%q, %d, %q, %q) = (%q, %v), want (%q, %v)",
					tt.text, tt.maxWidth, tt.prefix, tt.suffix, got, truncated, tt.want, tt.truncated)
			}
			if w := VisibleLength(got); w > tt.maxWidth {
				t.Errorf("width %d exceeds %d: %q", w, tt.maxWidth, got)
			}
		})
	}
}

func TestTruncateANSIAware(t *testing.T) {
	cfg := DefaultConfig().Text
	highlighted := "Go \x1b[1;33mTo\x1b[0mur of Go"

	t.Run("short text unchanged", func(t *testing.T) {
		if got := TruncateANSIAware(highlighted, 20, cfg); got != highlighted {
			t.Errorf("got %q, want input unchanged", got)
		}
	})

	t.Run("cut keeps escapes and resets", func(t *testing.T) {
		got := TruncateANSIAware(highlighted, 8, cfg)
		if w := VisibleLength(got); w > 8 {
			t.Errorf("visible width = %d, want <= 8 (got %q)", w, got)
		}
		if !strings.Contains(got, "\x1b[1;33m") {
			t.Errorf("highlight escape lost: %q", got)
		}
		if !strings.HasSuffix(got, "\x1b[0m") {
			t.Errorf("missing reset after cut: %q", got)
		}
		if !strings.Contains(got, cfg.Ellipsis) {
			t.Errorf("missing ellipsis: %q", got)
		}
	})

	t.Run("zero width", func(t *testing.T) {
		if got := TruncateANSIAware(highlighted, 0, cfg); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})
}

func TestTruncatePathFromLeft(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name     string
		path     string
		maxWidth int
		want     string
	}{
		{"fits", "/Dev/Go", 20, "/Dev/Go"},
		{"keeps the tail", "/Development/Languages/Go", 12, "...guages/Go"},
		{"width below ellipsis", "/abcdef", 2, ".."},
		{"zero width", "/abc", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncatePathFromLeft(tt.path, tt.maxWidth, cfg)
			if got != tt.want {
				t.Errorf("TruncatePathFromLeft(%q, %d) = %q, want %q",
					tt.path, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestIndent(t *testing.T) {
	cfg := DefaultConfig().Pane

	if got := Indent(0, cfg); got != "" {
		t.Errorf("Indent(0) = %q, want empty", got)
	}
	if got := Indent(3, cfg); got != "      " {
		t.Errorf("Indent(3) = %q, want 6 spaces", got)
	}
}
