package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/pkcegen/internal/shortcut"
	"github.com/spf13/cobra"
)

func newShortcutsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shortcuts",
		Short: "List the keyboard shortcuts of the interactive generator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := shortcut.DefaultRegistry()
			platform := a.platform()

			var rows [][]string
			for _, g := range registry.Groups() {
				for _, b := range g.Bindings {
					rows = append(rows, []string{g.Category, shortcut.Format(b.Keys, platform), b.Description})
				}
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("CATEGORY", "KEYS", "ACTION").
				Rows(rows...)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return err
		},
	}
}
