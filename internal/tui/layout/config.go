// Package layout holds the sizing arithmetic and text fitting used by the
// tree browser and the search picker. Nothing here renders styles.
package layout

// LayoutConfig groups every tunable dimension of the interface.
type LayoutConfig struct {
	Pane   PaneConfig
	Modal  ModalConfig
	Input  InputConfig
	Text   TextConfig
	Picker PickerConfig
}

// PaneConfig sizes the tree and preview panes.
type PaneConfig struct {
	// Rows taken by padding, breadcrumb, pane borders, status line and hints.
	HeightReduction int
	MinHeight       int

	TreeWidthPercent int
	// Columns taken by the borders and padding of both panes.
	SplitWidthOffset int
	MinTreeWidth     int
	MinPreviewWidth  int

	ContentPadding int
	// Columns of indent per folder level.
	IndentWidth int
}

// ModalConfig sizes dialogs and the help overlay.
type ModalConfig struct {
	DefaultWidthPercent int
	MinWidth            int
	MaxWidth            int

	HelpLeftColumnWidth  int
	HelpRightColumnWidth int
}

// InputConfig bounds the dialog text fields.
type InputConfig struct {
	TitleCharLimit       int
	URLCharLimit         int
	DescriptionCharLimit int
	FilterCharLimit      int

	StandardWidth int
	FilterWidth   int
}

type TextConfig struct {
	Ellipsis string
}

// PickerConfig sizes the search picker. Each result spans LinesPerResult
// rows: title, URL and folder path.
type PickerConfig struct {
	HeaderReduction int
	LinesPerResult  int
}

func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction:  7,
			MinHeight:        5,
			TreeWidthPercent: 55,
			SplitWidthOffset: 8,
			MinTreeWidth:     24,
			MinPreviewWidth:  20,
			ContentPadding:   4,
			IndentWidth:      2,
		},
		Modal: ModalConfig{
			DefaultWidthPercent:  40,
			MinWidth:             50,
			MaxWidth:             80,
			HelpLeftColumnWidth:  24,
			HelpRightColumnWidth: 26,
		},
		Input: InputConfig{
			TitleCharLimit:       100,
			URLCharLimit:         500,
			DescriptionCharLimit: 300,
			FilterCharLimit:      50,
			StandardWidth:        40,
			FilterWidth:          30,
		},
		Text:   TextConfig{Ellipsis: "..."},
		Picker: PickerConfig{HeaderReduction: 5, LinesPerResult: 3},
	}
}
