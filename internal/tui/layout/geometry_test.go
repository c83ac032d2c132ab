package layout

import "testing"

func TestCalculatePaneHeight(t *testing.T) {
	cfg := DefaultConfig().Pane

	for height, want := range map[int]int{
		40: 33,
		24: 17,
		12: 5,
		7:  5,
		0:  5,
	} {
		if got := CalculatePaneHeight(height, cfg); got != want {
			t.Errorf("CalculatePaneHeight(%d) = %d, want %d", height, got, want)
		}
	}
}

func TestCalculateSplit(t *testing.T) {
	cfg := DefaultConfig().Pane

	tests := []struct {
		width int
		want  PaneLayout
	}{
		{width: 120, want: PaneLayout{TreeWidth: 61, PreviewWidth: 51}},
		{width: 80, want: PaneLayout{TreeWidth: 39, PreviewWidth: 33}},
		// Both minimums win on a narrow terminal
		{width: 36, want: PaneLayout{TreeWidth: 24, PreviewWidth: 20}},
	}

	for _, tt := range tests {
		if got := CalculateSplit(tt.width, cfg); got != tt.want {
			t.Errorf("CalculateSplit(%d) = %+v, want %+v", tt.width, got, tt.want)
		}
	}
}

func TestCalculateItemWidth(t *testing.T) {
	cfg := DefaultConfig().Pane
	if got := CalculateItemWidth(61, cfg); got != 57 {
		t.Errorf("CalculateItemWidth(61) = %d, want 57", got)
	}
}

func TestCalculateVisibleHeight(t *testing.T) {
	tests := []struct {
		pane, header, want int
	}{
		{pane: 17, header: 2, want: 15},
		{pane: 17, header: 0, want: 17},
		{pane: 3, header: 3, want: 1},
		{pane: 2, header: 6, want: 1},
	}

	for _, tt := range tests {
		if got := CalculateVisibleHeight(tt.pane, tt.header); got != tt.want {
			t.Errorf("CalculateVisibleHeight(%d, %d) = %d, want %d", tt.pane, tt.header, got, tt.want)
		}
	}
}

func TestCalculateModalWidth(t *testing.T) {
	cfg := DefaultConfig().Modal

	tests := []struct {
		name           string
		width, percent int
		want           int
	}{
		{"share of terminal", 150, 40, 60},
		{"raised to minimum", 100, 40, 50},
		{"capped at maximum", 300, 40, 80},
		{"keeps a margin", 52, 40, 48},
		{"never below one", 2, 40, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateModalWidth(tt.width, tt.percent, cfg); got != tt.want {
				t.Errorf("CalculateModalWidth(%d, %d) = %d, want %d", tt.width, tt.percent, got, tt.want)
			}
		})
	}
}
