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

/*
Package settings holds the run configuration of the uflcut command. Values
come, in increasing priority, from built-in defaults, an optional YAML file,
UFLCUT_* environment variables and command-line flags.
*/
package settings

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "UFLCUT"

// Reference optimizers.
const (
	ReferenceBranchAndBound = "bnb"
	ReferenceEnumerate      = "enumerate"
	ReferenceLPSolve        = "lpsolve"
	ReferenceGLPK           = "glpk"
)

// Relaxations bounding the branch-and-bound nodes.
const (
	RelaxationTableau = "tableau"
	RelaxationGonum   = "gonum"
	RelaxationGLPK    = "glpk"
)

type Settings struct {
	DataDir       string        `mapstructure:"data_dir"`
	ResultsDir    string        `mapstructure:"results_dir"`
	Clusters      string        `mapstructure:"clusters"`
	Seed          uint64        `mapstructure:"seed"`
	TimeLimit     time.Duration `mapstructure:"time_limit"`
	GapThreshold  float64       `mapstructure:"gap_threshold"`
	MaxIterations int           `mapstructure:"max_iterations"`
	Tolerance     float64       `mapstructure:"tolerance"`
	MaxCuts       int           `mapstructure:"max_cuts"`
	Workers       int           `mapstructure:"workers"`
	Reference     string        `mapstructure:"reference"`
	Relaxation    string        `mapstructure:"relaxation"`
	NodeLimit     int           `mapstructure:"node_limit"`
	Plots         bool          `mapstructure:"plots"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"data_dir":       "data/instances",
		"results_dir":    "results",
		"clusters":       "configs/clusters.ini",
		"seed":           0,
		"time_limit":     time.Hour,
		"gap_threshold":  1e-9,
		"max_iterations": 1000,
		"tolerance":      1e-6,
		"max_cuts":       50,
		"workers":        runtime.NumCPU(),
		"reference":      ReferenceBranchAndBound,
		"relaxation":     RelaxationTableau,
		"node_limit":     0,
		"plots":          true,
	}
}

// New returns a viper instance carrying the defaults and reading the
// environment.
func New() *viper.Viper {
	v := viper.New()
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds every flag of the set whose name matches a settings key,
// with dashes standing for underscores.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var errs []error
	keys := defaults()
	flags.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if _, ok := keys[key]; !ok {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			errs = append(errs, fmt.Errorf("binding flag %s: %w", f.Name, err))
		}
	})
	return errors.Join(errs...)
}

// Load reads the optional config file and decodes the result.
func Load(v *viper.Viper, configFile string) (Settings, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) Validate() error {
	var errs []error
	if s.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", s.Workers))
	}
	if s.MaxIterations < 0 {
		errs = append(errs, fmt.Errorf("max_iterations must not be negative, got %d", s.MaxIterations))
	}
	if s.MaxCuts < 0 {
		errs = append(errs, fmt.Errorf("max_cuts must not be negative, got %d", s.MaxCuts))
	}
	if s.Tolerance <= 0 || s.Tolerance >= 0.5 {
		errs = append(errs, fmt.Errorf("tolerance must be in (0, 0.5), got %g", s.Tolerance))
	}
	if s.GapThreshold < 0 {
		errs = append(errs, fmt.Errorf("gap_threshold must not be negative, got %g", s.GapThreshold))
	}
	if s.TimeLimit <= 0 {
		errs = append(errs, fmt.Errorf("time_limit must be positive, got %s", s.TimeLimit))
	}
	if s.NodeLimit < 0 {
		errs = append(errs, fmt.Errorf("node_limit must not be negative, got %d", s.NodeLimit))
	}
	switch s.Reference {
	case ReferenceBranchAndBound, ReferenceEnumerate, ReferenceLPSolve, ReferenceGLPK:
	default:
		errs = append(errs, fmt.Errorf("unknown reference optimizer %q", s.Reference))
	}
	switch s.Relaxation {
	case RelaxationTableau, RelaxationGonum, RelaxationGLPK:
	default:
		errs = append(errs, fmt.Errorf("unknown relaxation %q", s.Relaxation))
	}
	return errors.Join(errs...)
}
