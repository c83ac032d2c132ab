package layout

// CalculateViewportOffset returns the first row to draw so that selected
// sits near the middle of the viewport. The tree pane scrolls this way.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}
	offset := selected - viewportHeight/2
	return min(max(offset, 0), total-viewportHeight)
}

// CalculateVisibleListItems returns the window items[start:end] of a list
// that scrolls only once the selection passes the bottom edge.
func CalculateVisibleListItems(maxVisible, selectedIdx, totalItems int) (start, end int) {
	if totalItems <= maxVisible {
		return 0, totalItems
	}
	start = max(selectedIdx-maxVisible+1, 0)
	return start, min(start+maxVisible, totalItems)
}

// CalculatePickerVisible returns how many search results fit on screen.
func CalculatePickerVisible(terminalHeight int, cfg PickerConfig) int {
	return max((terminalHeight-cfg.HeaderReduction)/max(cfg.LinesPerResult, 1), 1)
}
