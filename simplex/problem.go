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
Package simplex solves small and medium dense linear programs with an
explicit tableau, so that callers can read the rows of the optimal tableau
and append new rows to it.

A problem is always a minimisation:

	min  c·x
	s.t. a_i·x (<=, >=, =) b_i
	     x >= 0

Solve runs the two-phase primal simplex. Rows appended afterwards with
AddRows make the basis primal infeasible but keep it dual feasible, and
Reoptimize restores optimality with the dual simplex. This is the shape the
gomory package needs for cutting planes.
*/
package simplex

import (
	"fmt"
)

type Sense int

const (
	LessEqual Sense = iota
	GreaterEqual
	Equal
)

func (s Sense) String() string {
	switch s {
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	case Equal:
		return "="
	default:
		return fmt.Sprintf("Sense(%d)", int(s))
	}
}

// Constraint is a sparse row: sum_k Coeffs[k] * x[Index[k]] (Sense) RHS.
// Repeated indices are summed.
type Constraint struct {
	Name   string
	Index  []int
	Coeffs []float64
	Sense  Sense
	RHS    float64
}

type Problem struct {
	Name          string
	Costs         []float64
	VariableNames []string
	Constraints   []Constraint
}

// Validate checks that every constraint only refers to existing variables.
func (p *Problem) Validate() error {
	if len(p.Costs) == 0 {
		return fmt.Errorf("problem %q has no variables", p.Name)
	}
	if len(p.Constraints) == 0 {
		return fmt.Errorf("problem %q has no constraints", p.Name)
	}
	if p.VariableNames != nil && len(p.VariableNames) != len(p.Costs) {
		return fmt.Errorf("inconsistent number of variable names and costs: %d != %d", len(p.VariableNames), len(p.Costs))
	}
	for i, c := range p.Constraints {
		if len(c.Index) != len(c.Coeffs) {
			return fmt.Errorf("constraint %d (%s): inconsistent number of variables and coefficients: %d != %d", i, c.Name, len(c.Index), len(c.Coeffs))
		}
		empty := true
		for k, j := range c.Index {
			if j < 0 || j >= len(p.Costs) {
				return fmt.Errorf("constraint %d (%s): variable index %d out of range", i, c.Name, j)
			}
			if c.Coeffs[k] != 0 {
				empty = false
			}
		}
		if empty {
			return fmt.Errorf("constraint %d (%s) has no nonzero coefficient", i, c.Name)
		}
		switch c.Sense {
		case LessEqual, GreaterEqual, Equal:
		default:
			return fmt.Errorf("constraint %d (%s): unknown sense %v", i, c.Name, c.Sense)
		}
	}
	return nil
}

// Dense returns the coefficients of the constraint as a dense vector over n
// variables.
func (c Constraint) Dense(n int) []float64 {
	row := make([]float64, n)
	for k, j := range c.Index {
		row[j] += c.Coeffs[k]
	}
	return row
}
