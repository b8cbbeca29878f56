package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/palettemap/internal/colour"
)

// algorithmDescriptions documents each distance algorithm for --long output.
var algorithmDescriptions = map[colour.Algorithm]string{
	colour.AlgorithmManhattan: "sum of absolute RGB channel differences (fast)",
	colour.AlgorithmCIE76:     "Euclidean distance in CIE L*a*b* (perceptual)",
	colour.AlgorithmCIEHybrid: "blend of Manhattan and CIE76",
}

func newAlgorithmsCmd() *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "algorithms",
		Short: "List distance algorithms",
		Long: `List the implemented colour distance algorithms in a stable order.
The first algorithm is the default.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if !long {
				for _, name := range colour.AlgorithmNames() {
					if _, err := fmt.Fprintln(out, name); err != nil {
						return err
					}
				}
				return nil
			}

			table := NewTable("NAME", "DEFAULT", "DESCRIPTION")
			for _, alg := range colour.Algorithms() {
				def := ""
				if alg == colour.DefaultAlgorithm {
					def = "yes"
				}
				table.AddRow(string(alg), def, algorithmDescriptions[alg])
			}
			return table.Render(out)
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, "show a table with descriptions")

	return cmd
}
