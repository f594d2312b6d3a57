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
Package report stores the outcome of cutting-plane runs: one JSON trace and
one convergence chart per instance, and a CSV summary with comparative
charts for a whole batch.

Layout of the results directory:

	<dir>/<instance>/<instance>_trace.json
	<dir>/<instance>/<instance>_convergence.png
	<dir>/_summary_all_instances.csv
	<dir>/_comparative_gap_closure.png
	<dir>/_comparative_computational_cost.png
*/
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/costela/uflcut/gomory"
)

const (
	SummaryFile         = "_summary_all_instances.csv"
	GapClosurePlot      = "_comparative_gap_closure.png"
	ComputationalPlot   = "_comparative_computational_cost.png"
	traceSuffix         = "_trace.json"
	convergencePlotName = "_convergence_plot.png"
)

// InstanceDir is the directory holding the results of a single instance.
func InstanceDir(dir, instance string) string {
	return filepath.Join(dir, instance)
}

// TracePath is where WriteTrace stores the trace of an instance.
func TracePath(dir, instance string) string {
	return filepath.Join(InstanceDir(dir, instance), instance+traceSuffix)
}

// ConvergencePath is the default location of an instance's convergence chart.
func ConvergencePath(dir, instance string) string {
	return filepath.Join(InstanceDir(dir, instance), instance+convergencePlotName)
}

// WriteTrace stores the trace as indented JSON and returns its path.
func WriteTrace(dir string, trace *gomory.Trace) (string, error) {
	path := TracePath(dir, trace.Instance)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(trace, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding trace of %s: %w", trace.Instance, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// ReadTrace loads a trace written by WriteTrace.
func ReadTrace(path string) (*gomory.Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	trace := &gomory.Trace{}
	if err := json.Unmarshal(data, trace); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return trace, nil
}
