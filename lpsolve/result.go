//go:build lpsolve

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

package lpsolve

// #include <lp_lib.h>
import "C"

import "fmt"

type SolveResult struct {
	model  *Model
	status SolveStatus
}

type SolveStatus C.int

const (
	SolutionOptimal    = SolveStatus(C.OPTIMAL)
	SolutionSuboptimal = SolveStatus(C.SUBOPTIMAL)
)

func (s SolveStatus) String() string {
	if s == SolutionOptimal {
		return "optimal"
	}
	return "suboptimal"
}

type SolveError C.int

const (
	ErrBranchCutBreak   = SolveError(C.PROCBREAK)
	ErrBranchCutFail    = SolveError(C.PROCFAIL)
	ErrFeasibleFound    = SolveError(C.FEASFOUND)
	ErrModelDegenerate  = SolveError(C.DEGENERATE)
	ErrModelInfeasible  = SolveError(C.INFEASIBLE)
	ErrModelUnbounded   = SolveError(C.UNBOUNDED)
	ErrNoFeasibleFound  = SolveError(C.NOFEASFOUND)
	ErrNoMemory         = SolveError(C.NOMEMORY)
	ErrNumericalFailure = SolveError(C.NUMFAILURE)
	ErrPresolved        = SolveError(C.PRESOLVED) // presolve is never enabled, it may remove columns
	ErrTimeout          = SolveError(C.TIMEOUT)
	ErrUserAbort        = SolveError(C.USERABORT)
)

func (e SolveError) Error() string {
	switch e {
	case ErrBranchCutBreak:
		return "branch-and-cut stopped at breakpoint"
	case ErrBranchCutFail:
		return "branch-and-cut failure"
	case ErrFeasibleFound:
		return "feasible but non-integer solution found"
	case ErrModelDegenerate:
		return "model is degenerate"
	case ErrModelInfeasible:
		return "model is infeasible"
	case ErrModelUnbounded:
		return "model is unbounded"
	case ErrNoFeasibleFound:
		return "no feasible solution found"
	case ErrNoMemory:
		return "ran out of memory while solving"
	case ErrNumericalFailure:
		return "numerical failure while solving"
	case ErrPresolved:
		return "model was presolved"
	case ErrTimeout:
		return "timeout occurred before any integer solution could be found"
	case ErrUserAbort:
		return "aborted by user abort function"
	default:
		return fmt.Sprintf("lp_solve returned %d", int(e))
	}
}

// Status reports whether the solution is proven optimal.
func (res *SolveResult) Status() SolveStatus {
	return res.status
}

// Value is a shorthand for PrimalValue.
func (res *SolveResult) Value(v *Variable) float64 {
	return res.PrimalValue(v)
}

// PrimalValue returns the value of the variable in this solution.
func (res *SolveResult) PrimalValue(v *Variable) float64 {
	res.model.mu.RLock()
	defer res.model.mu.RUnlock()

	// result index: 0 is the objective, 1..Nrows the rows, then the columns
	rows := C.get_Nrows(res.model.prob)
	return float64(C.get_var_primalresult(res.model.prob, rows+v.col()))
}

// DualValue returns the reduced cost of the variable.
func (res *SolveResult) DualValue(v *Variable) float64 {
	res.model.mu.RLock()
	defer res.model.mu.RUnlock()

	rows := C.get_Nrows(res.model.prob)
	return float64(C.get_var_dualresult(res.model.prob, rows+v.col()))
}

// ObjectiveValue is only optimal if Status is SolutionOptimal.
func (res *SolveResult) ObjectiveValue() float64 {
	res.model.mu.RLock()
	defer res.model.mu.RUnlock()

	return float64(C.get_objective(res.model.prob))
}
