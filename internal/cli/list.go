package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/razor-app/archdiagram/pkg/catalog"
	"github.com/razor-app/archdiagram/pkg/diagram"
)

// listCommand creates the list command showing built-in diagrams.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in diagrams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nameStyle := lipgloss.NewStyle().Foreground(colorCyan).Width(24)
			out := cmd.OutOrStdout()

			for _, name := range catalog.Names() {
				d, err := catalog.Get(name)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, nameStyle.Render(name)+" "+StyleValue.Render(d.Title))
				fmt.Fprintln(out, "  "+StyleDim.Render(catalog.Summary(name)))
				fmt.Fprintln(out, "  "+StyleDim.Render(summarize(d)))
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, StyleDim.Render("Render one:")+" "+styleCommand.Render(appName+" render <name>"))
			return nil
		},
	}
}

// summarize describes a diagram's size and default output file.
func summarize(d *diagram.Diagram) string {
	return fmt.Sprintf("%d nodes · %d edges · %d clusters → %s",
		d.NodeCount(), d.EdgeCount(), d.ClusterCount(), d.Filename("png"))
}
