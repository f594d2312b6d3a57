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

package gomory

import "math"

// IterationStats describes the relaxation after a round of cuts. Iteration
// 0 is the initial relaxation.
type IterationStats struct {
	InstanceName string  `json:"instance_name"`
	Variables    int     `json:"n_vars"`
	Constraints  int     `json:"n_constraints"`
	OptimalILP   float64 `json:"optimal_ilp"`
	LPSolution   float64 `json:"lp_solution"`
	IsInteger    bool    `json:"is_integer"`
	Status       string  `json:"status"`
	Cuts         int     `json:"n_cuts"`
	ElapsedMS    float64 `json:"elapsed_time_ms"`
	Gap          float64 `json:"gap"`
	RelativeGap  float64 `json:"relative_gap"`
	Iteration    int     `json:"iteration"`
}

// Trace is the full history of a cutting-plane run.
type Trace struct {
	Instance   string           `json:"instance"`
	Optimum    float64          `json:"optimum"`
	Iterations []IterationStats `json:"iterations"`
}

// Summary condenses a trace into a single line of the comparative report.
type Summary struct {
	InstanceName    string  `json:"instance_name"`
	InitialGap      float64 `json:"initial_gap"`
	FinalGap        float64 `json:"final_gap"`
	GapClosure      float64 `json:"gap_closure"`
	TotalCuts       int     `json:"total_cuts"`
	TotalIterations int     `json:"total_iterations"`
	TotalTimeMS     float64 `json:"total_time_ms"`
	FinalStatus     string  `json:"final_status"`
}

func (t *Trace) Summary() Summary {
	s := Summary{InstanceName: t.Instance, FinalStatus: "unknown"}
	if len(t.Iterations) == 0 {
		return s
	}
	first, last := t.Iterations[0], t.Iterations[len(t.Iterations)-1]
	s.InitialGap = first.RelativeGap
	s.FinalGap = last.RelativeGap
	s.GapClosure = first.RelativeGap - last.RelativeGap
	s.TotalCuts = last.Cuts
	s.TotalIterations = last.Iteration
	s.TotalTimeMS = last.ElapsedMS
	s.FinalStatus = last.Status
	return s
}

// Gap returns the absolute and relative distance between a relaxation value
// and the optimum. The relative gap is zero for a zero optimum.
func Gap(value, optimum float64) (gap, relative float64) {
	gap = math.Abs(value - optimum)
	if math.Abs(optimum) > 1e-9 {
		relative = gap / (math.Abs(optimum) + 1e-10)
	}
	return gap, relative
}
