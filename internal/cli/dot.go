package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/razor-app/archdiagram/pkg/diagram"
)

// dotCommand creates the dot command that prints Graphviz source.
func (c *CLI) dotCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "dot <name|file.toml>",
		Short:             "Print a diagram's Graphviz DOT source",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeTargets,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildTarget(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), diagram.ToDOT(d))
			return err
		},
	}
}

// exportCommand creates the export command that prints a TOML definition.
func (c *CLI) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <name|file.toml>",
		Short: "Print a diagram as a TOML definition file",
		Long: `Print a diagram as a TOML definition file.

The output can be edited and rendered again:

  archdiagram export razor-app > stack.toml
  archdiagram render stack.toml`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeTargets,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildTarget(args[0])
			if err != nil {
				return err
			}
			return diagram.Encode(cmd.OutOrStdout(), d)
		},
	}
}

func buildTarget(arg string) (*diagram.Diagram, error) {
	t, err := resolveTarget(arg)
	if err != nil {
		return nil, err
	}
	return t.build()
}
