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

import "math"

// Variable is a column of a model. It must only be used with the model that
// created it.
type Variable struct {
	model *Model
	index int
}

type VariableType int

const (
	ContinuousVariable VariableType = iota
	IntegerVariable
	BinaryVariable
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

// col is the 1-based lp_solve column number.
func (v *Variable) col() C.int {
	return C.int(v.index + 1)
}

func (v *Variable) Name() string {
	v.model.mu.RLock()
	defer v.model.mu.RUnlock()

	return C.GoString(C.get_col_name(v.model.prob, v.col()))
}

// SetType changes the kind of the variable. Binary variables get [0, 1]
// bounds; switching back to continuous keeps the current bounds.
func (v *Variable) SetType(t VariableType) {
	v.model.mu.Lock()
	defer v.model.mu.Unlock()

	switch t {
	case BinaryVariable:
		C.set_binary(v.model.prob, v.col(), C.TRUE)
	case IntegerVariable:
		C.set_int(v.model.prob, v.col(), C.TRUE)
	default:
		C.set_int(v.model.prob, v.col(), C.FALSE)
	}
}

func (v *Variable) Type() VariableType {
	v.model.mu.RLock()
	defer v.model.mu.RUnlock()

	switch {
	case C.is_binary(v.model.prob, v.col()) == C.TRUE:
		return BinaryVariable
	case C.is_int(v.model.prob, v.col()) == C.TRUE:
		return IntegerVariable
	default:
		return ContinuousVariable
	}
}

// SetBounds sets both bounds. Infinities of either sign stand for a missing
// bound on that side.
func (v *Variable) SetBounds(lower, upper float64) {
	v.model.mu.Lock()
	defer v.model.mu.Unlock()

	inf := C.get_infinite(v.model.prob)
	lo, hi := C.REAL(lower), C.REAL(upper)
	if math.IsInf(lower, 0) {
		lo = -inf
	}
	if math.IsInf(upper, 0) {
		hi = inf
	}
	C.set_bounds(v.model.prob, v.col(), lo, hi)
}

// Bounds returns the bounds, with lp_solve's infinity mapped to math.Inf.
func (v *Variable) Bounds() (lower, upper float64) {
	v.model.mu.RLock()
	defer v.model.mu.RUnlock()

	lower = float64(C.get_lowbo(v.model.prob, v.col()))
	upper = float64(C.get_upbo(v.model.prob, v.col()))
	if C.is_infinite(v.model.prob, C.REAL(lower)) == C.TRUE {
		lower = math.Inf(-1)
	}
	if C.is_infinite(v.model.prob, C.REAL(upper)) == C.TRUE {
		upper = math.Inf(1)
	}
	return lower, upper
}

func (v *Variable) SetObjectiveCoefficient(coef float64) {
	v.model.mu.Lock()
	defer v.model.mu.Unlock()

	// row 0 is the objective
	C.set_mat(v.model.prob, 0, v.col(), C.REAL(coef))
}

func (v *Variable) Coefficient() float64 {
	v.model.mu.RLock()
	defer v.model.mu.RUnlock()

	return float64(C.get_mat(v.model.prob, 0, v.col()))
}
