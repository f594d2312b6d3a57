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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/costela/uflcut/settings"
)

// app carries what every command needs once flags are parsed.
type app struct {
	v          *viper.Viper
	log        *log.Logger
	settings   settings.Settings
	configFile string
	debug      bool
}

func newRootCmd() *cobra.Command {
	a := &app{
		v:   settings.New(),
		log: log.New(),
	}

	rootCmd := &cobra.Command{
		Use:   "uflcut",
		Short: "Gomory cuts on Uncapacitated Facility Location instances",
		Long: `uflcut generates UFL benchmark instances from a cluster file, solves
their LP relaxation, tightens it with rounds of Gomory fractional cuts and
reports how much of the gap to the integer optimum gets closed.`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.log.SetOutput(cmd.ErrOrStderr())
			a.log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
			if a.debug {
				a.log.SetLevel(log.DebugLevel)
			}

			if err := settings.BindFlags(a.v, cmd.Flags()); err != nil {
				return err
			}
			s, err := settings.Load(a.v, a.configFile)
			if err != nil {
				return err
			}
			a.settings = s
			a.log.WithField("settings", fmt.Sprintf("%+v", s)).Debug("configuration loaded")
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "YAML configuration file")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging")
	flags.String("data-dir", "", "directory holding the instances (default data/instances)")
	flags.String("results-dir", "", "directory receiving traces, plots and summaries (default results)")

	rootCmd.AddCommand(
		newGenerateCmd(a),
		newListCmd(a),
		newSolveCmd(a),
		newSolveAllCmd(a),
		newExportCmd(a),
	)

	return rootCmd
}

// printer adapts a logrus level method to the Logger interfaces of the
// library packages.
type printer func(args ...interface{})

func (p printer) Print(v ...interface{}) { p(v...) }
