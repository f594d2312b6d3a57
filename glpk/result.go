//go:build glpk

/*
Copyright © 2015 Leo Antunes <leo@costela.net>

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

package glpk

// #include <glpk.h>
import "C"

// Result reads the solution of the last SolveSimplex or SolveBranchCut.
type Result struct {
	model *Model
	mip   bool
}

type Status C.int

const (
	StatusOptimal    = Status(C.GLP_OPT)
	StatusFeasible   = Status(C.GLP_FEAS)
	StatusInfeasible = Status(C.GLP_INFEAS)
	StatusNoFeasible = Status(C.GLP_NOFEAS)
	StatusUnbounded  = Status(C.GLP_UNBND)
	StatusUndefined  = Status(C.GLP_UNDEF)
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusNoFeasible:
		return "no feasible solution"
	case StatusUnbounded:
		return "unbounded"
	default:
		return "undefined"
	}
}

func (res *Result) Status() Status {
	if res.mip {
		return Status(C.glp_mip_status(res.model.prob))
	}
	return Status(C.glp_get_status(res.model.prob))
}

func (res *Result) Value(v *Variable) float64 {
	if res.mip {
		return float64(C.glp_mip_col_val(res.model.prob, v.col()))
	}
	return float64(C.glp_get_col_prim(res.model.prob, v.col()))
}

// DualValue returns the reduced cost of the variable. It is only defined
// for simplex results.
func (res *Result) DualValue(v *Variable) float64 {
	return float64(C.glp_get_col_dual(res.model.prob, v.col()))
}

func (res *Result) ObjectiveValue() float64 {
	if res.mip {
		return float64(C.glp_mip_obj_val(res.model.prob))
	}
	return float64(C.glp_get_obj_val(res.model.prob))
}
