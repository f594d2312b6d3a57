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

import "math"

// Variable is a column of a model.
type Variable struct {
	model *Model
	index int
}

type VariableType C.int

const (
	ContinuousVariable = VariableType(C.GLP_CV)
	IntegerVariable    = VariableType(C.GLP_IV)
	BinaryVariable     = VariableType(C.GLP_BV)
)

func (t VariableType) String() string {
	switch t {
	case IntegerVariable:
		return "integer"
	case BinaryVariable:
		return "binary"
	default:
		return "continuous"
	}
}

// col is the 1-based GLPK column number.
func (v *Variable) col() C.int {
	return C.int(v.index + 1)
}

func (v *Variable) Name() string {
	return C.GoString(C.glp_get_col_name(v.model.prob, v.col()))
}

func (v *Variable) SetType(t VariableType) {
	C.glp_set_col_kind(v.model.prob, v.col(), C.int(t))
}

func (v *Variable) Type() VariableType {
	return VariableType(C.glp_get_col_kind(v.model.prob, v.col()))
}

// SetBounds sets both bounds. Infinities of either sign stand for a missing
// bound on that side.
func (v *Variable) SetBounds(lower, upper float64) {
	kind, lo, hi := boundType(lower, upper)
	C.glp_set_col_bnds(v.model.prob, v.col(), kind, lo, hi)
}

func (v *Variable) Bounds() (lower, upper float64) {
	lower, upper = math.Inf(-1), math.Inf(1)

	switch C.glp_get_col_type(v.model.prob, v.col()) {
	case C.GLP_UP:
		upper = float64(C.glp_get_col_ub(v.model.prob, v.col()))
	case C.GLP_LO:
		lower = float64(C.glp_get_col_lb(v.model.prob, v.col()))
	case C.GLP_FX:
		// only lb carries the value of a fixed column
		lower = float64(C.glp_get_col_lb(v.model.prob, v.col()))
		upper = lower
	case C.GLP_DB:
		lower = float64(C.glp_get_col_lb(v.model.prob, v.col()))
		upper = float64(C.glp_get_col_ub(v.model.prob, v.col()))
	}
	return lower, upper
}

func (v *Variable) SetObjectiveCoefficient(coef float64) {
	C.glp_set_obj_coef(v.model.prob, v.col(), C.double(coef))
}

func (v *Variable) Coefficient() float64 {
	return float64(C.glp_get_obj_coef(v.model.prob, v.col()))
}
