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

package ufl

import (
	"fmt"

	"github.com/costela/uflcut/simplex"
)

// Formulation is the linear relaxation of an instance. Variable x_u (open
// facility u) comes first, followed by y_uv (customer v served by u) at
// p + u*r + v.
type Formulation struct {
	simplex.Problem
	Facilities int
	Customers  int
}

// X returns the column of the opening variable of facility u.
func (f *Formulation) X(u int) int { return u }

// Y returns the column of the assignment variable of customer v to facility u.
func (f *Formulation) Y(u, v int) int { return f.Facilities + u*f.Customers + v }

// Formulate builds the minimisation LP of the instance:
//
//	min  sum_u f_u x_u + sum_uv c_uv y_uv
//	s.t. sum_u y_uv = 1          for every customer v   (Assign_v)
//	     y_uv - x_u <= 0         for every u, v         (Link_u_v)
//	     x_u <= 1                for every facility u   (Open_u)
//	     x, y >= 0
func Formulate(name string, inst *Instance) *Formulation {
	p, r := inst.Facilities, inst.Customers
	f := &Formulation{
		Facilities: p,
		Customers:  r,
	}
	f.Name = name

	f.Costs = make([]float64, p+p*r)
	f.VariableNames = make([]string, p+p*r)
	for u := 0; u < p; u++ {
		f.Costs[f.X(u)] = inst.FixedCosts[u]
		f.VariableNames[f.X(u)] = fmt.Sprintf("x%d", u)
		for v := 0; v < r; v++ {
			f.Costs[f.Y(u, v)] = inst.AssignCosts[v][u]
			f.VariableNames[f.Y(u, v)] = fmt.Sprintf("y%d_%d", u, v)
		}
	}

	f.Constraints = make([]simplex.Constraint, 0, r+p*r+p)
	for v := 0; v < r; v++ {
		c := simplex.Constraint{
			Name:   fmt.Sprintf("Assign_%d", v),
			Index:  make([]int, p),
			Coeffs: make([]float64, p),
			Sense:  simplex.Equal,
			RHS:    1,
		}
		for u := 0; u < p; u++ {
			c.Index[u] = f.Y(u, v)
			c.Coeffs[u] = 1
		}
		f.Constraints = append(f.Constraints, c)
	}
	for u := 0; u < p; u++ {
		for v := 0; v < r; v++ {
			f.Constraints = append(f.Constraints, simplex.Constraint{
				Name:   fmt.Sprintf("Link_%d_%d", u, v),
				Index:  []int{f.Y(u, v), f.X(u)},
				Coeffs: []float64{1, -1},
				Sense:  simplex.LessEqual,
				RHS:    0,
			})
		}
	}
	for u := 0; u < p; u++ {
		f.Constraints = append(f.Constraints, simplex.Constraint{
			Name:   fmt.Sprintf("Open_%d", u),
			Index:  []int{f.X(u)},
			Coeffs: []float64{1},
			Sense:  simplex.LessEqual,
			RHS:    1,
		})
	}

	return f
}

// Open returns the facility part of a solution vector.
func (f *Formulation) Open(values []float64) []float64 {
	return values[:f.Facilities]
}
