/*
Copyright © 2015-2022 Leo Antunes <leo@costela.net>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/costela/uflcut/clusters"
	"github.com/costela/uflcut/generator"
)

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the instances of every cluster in the cluster file",
		Long: `Generate writes NUM_INSTANCES random instances per cluster of the cluster
file into <data-dir>/<CLUSTER>/inst_<CLUSTER>_<i>.txt.

        $ uflcut generate --clusters configs/clusters.ini --seed 42
        `,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := clusters.Load(a.settings.Clusters)
			if len(cs) == 0 {
				return err
			}
			if err != nil {
				a.log.WithError(err).Warn("skipping invalid clusters")
			}

			g := generator.New(
				generator.WithSeed(a.settings.Seed),
				generator.WithLogger(printer(a.log.Info)),
			)
			a.log.WithField("seed", g.Seed()).Info("generating instances")

			paths, genErr := g.GenerateAll(cmd.Context(), a.settings.DataDir, cs)
			fmt.Fprintf(cmd.OutOrStdout(), "%d instances written to %s (seed %d)\n", len(paths), a.settings.DataDir, g.Seed())
			return genErr
		},
	}

	cmd.Flags().String("clusters", "", "INI file describing the clusters (default configs/clusters.ini)")
	cmd.Flags().Uint64("seed", 0, "random seed, 0 seeds from the clock")

	return cmd
}
