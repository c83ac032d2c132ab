package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wdylt/wdylt/internal/tui"
)

func (c *cli) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive tree view (default)",
		Args:  cobra.NoArgs,
		RunE:  c.runTUI,
	}
}

// runTUI runs the full interactive tree view. Every change is saved by the
// library as it happens, so there is nothing to flush on exit.
func (c *cli) runTUI(cmd *cobra.Command, _ []string) error {
	app := tui.NewApp(tui.AppParams{
		Library: c.lib,
		Context: cmd.Context(),
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tree view: %w", err)
	}
	return nil
}
