package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// resetStyle ends any styling left open by a cut.
const resetStyle = "\x1b[0m"

// VisibleLength returns the terminal cell width of s, ignoring escape codes.
func VisibleLength(s string) int {
	return ansi.StringWidth(s)
}

// TruncateText cuts text to maxWidth cells, ending it with the ellipsis.
// The bool reports whether anything was cut.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", text != ""
	}
	if ansi.StringWidth(text) <= maxWidth {
		return text, false
	}
	if ansi.StringWidth(cfg.Ellipsis) >= maxWidth {
		return ansi.Truncate(cfg.Ellipsis, maxWidth, ""), true
	}
	return ansi.Truncate(text, maxWidth, cfg.Ellipsis), true
}

// TruncateWithPrefixSuffix fits a tree row into maxWidth, cutting only the
// title so the indent/arrow prefix and the "/" or " [p]" suffix survive:
// ("Development", 12, "▸ ", "/") -> "▸ Develo.../".
// When prefix and suffix leave no room for a title, the whole row is cut.
func TruncateWithPrefixSuffix(text string, maxWidth int, prefix, suffix string, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	row := prefix + text + suffix
	if ansi.StringWidth(row) <= maxWidth {
		return row, false
	}

	room := maxWidth - ansi.StringWidth(prefix) - ansi.StringWidth(suffix)
	if room <= ansi.StringWidth(cfg.Ellipsis) {
		return TruncateText(row, maxWidth, cfg)
	}

	title, _ := TruncateText(text, room, cfg)
	return prefix + title + suffix, true
}

// TruncateANSIAware cuts highlighted text (search picker matches) without
// splitting escape sequences, and resets styling after the ellipsis.
func TruncateANSIAware(styled string, maxWidth int, cfg TextConfig) string {
	if maxWidth <= 0 {
		return ""
	}
	if ansi.StringWidth(styled) <= maxWidth {
		return styled
	}
	return ansi.Truncate(styled, maxWidth, cfg.Ellipsis) + resetStyle
}

// TruncatePathFromLeft shortens a slash separated path from the left so the
// deepest folders stay visible: "/a/very/long/path" -> ".../long/path".
func TruncatePathFromLeft(path string, maxWidth int, cfg TextConfig) string {
	if maxWidth <= 0 {
		return ""
	}
	runes := []rune(path)
	if len(runes) <= maxWidth {
		return path
	}

	ellipsis := []rune(cfg.Ellipsis)
	keep := maxWidth - len(ellipsis)
	if keep <= 0 {
		return string(ellipsis[:maxWidth])
	}
	return cfg.Ellipsis + string(runes[len(runes)-keep:])
}

// Indent returns the leading whitespace for a tree row at depth.
func Indent(depth int, cfg PaneConfig) string {
	if depth <= 0 || cfg.IndentWidth <= 0 {
		return ""
	}
	return strings.Repeat(" ", depth*cfg.IndentWidth)
}
