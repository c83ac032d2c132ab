package layout

// PaneLayout is the width of each side of the split view.
type PaneLayout struct {
	TreeWidth    int
	PreviewWidth int
}

// CalculatePaneHeight returns the rows left for pane content once the
// breadcrumb, borders and footer are taken off.
func CalculatePaneHeight(terminalHeight int, cfg PaneConfig) int {
	return max(terminalHeight-cfg.HeightReduction, cfg.MinHeight)
}

// CalculateSplit gives the tree its percentage of the usable width and the
// preview the rest. Both sides are held to their minimums, so on very
// narrow terminals the total may exceed the terminal width.
func CalculateSplit(terminalWidth int, cfg PaneConfig) PaneLayout {
	usable := terminalWidth - cfg.SplitWidthOffset
	tree := max(usable*cfg.TreeWidthPercent/100, cfg.MinTreeWidth)
	return PaneLayout{
		TreeWidth:    tree,
		PreviewWidth: max(usable-tree, cfg.MinPreviewWidth),
	}
}

func CalculateItemWidth(paneWidth int, cfg PaneConfig) int {
	return paneWidth - cfg.ContentPadding
}

// CalculateVisibleHeight is the number of rows a pane can list below its
// header. Never less than one.
func CalculateVisibleHeight(paneHeight, headerLines int) int {
	return max(paneHeight-headerLines, 1)
}

// CalculateModalWidth sizes a dialog as a share of the terminal, clamped
// to the configured bounds and always leaving a two column margin.
func CalculateModalWidth(terminalWidth, widthPercent int, cfg ModalConfig) int {
	width := min(max(terminalWidth*widthPercent/100, cfg.MinWidth), cfg.MaxWidth)
	return max(min(width, terminalWidth-4), 1)
}
