package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/costela/uflcut/ampl"
	"github.com/costela/uflcut/ufl"
)

func newExportCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export-ampl <instance>",
		Short: "Write the AMPL data file and models of an instance",
		Long: `Export-ampl writes <instance>.dat together with ufl.mod (binary model) and
ufl_relaxation.mod (LP relaxation), ready for an external AMPL/GMPL solver.

        $ uflcut export-ampl data/instances/SMALL_UFL/inst_SMALL_UFL_0.txt
        $ glpsol -m ufl.mod -d inst_SMALL_UFL_0.dat
        `,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := ufl.ParseFile(args[0])
			if err != nil {
				return err
			}
			name := instanceName(args[0])
			dir := out
			if dir == "" {
				dir = filepath.Join(a.settings.ResultsDir, "ampl", name)
			}

			paths, err := ampl.Export(dir, name, inst)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (default <results-dir>/ampl/<instance>)")

	return cmd
}
