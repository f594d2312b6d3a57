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

package reference

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/costela/uflcut/simplex"
	"github.com/costela/uflcut/ufl"
)

// Relaxation solves the LP relaxation of an instance and returns its value
// and the opening variables.
type Relaxation func(ctx context.Context, inst *ufl.Instance) (float64, []float64, error)

// TableauRelaxation solves the relaxation with the simplex package.
func TableauRelaxation(ctx context.Context, inst *ufl.Instance) (float64, []float64, error) {
	f := ufl.Formulate("relaxation", inst)
	tab, err := simplex.New(f.Problem)
	if err != nil {
		return 0, nil, err
	}
	if err := tab.Solve(ctx); err != nil {
		return 0, nil, err
	}
	return tab.Objective(), f.Open(tab.Values()), nil
}

// GonumRelaxation solves the relaxation with gonum's simplex, after
// rewriting every inequality as an equality with its own slack column.
func GonumRelaxation(ctx context.Context, inst *ufl.Instance) (float64, []float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}
	f := ufl.Formulate("relaxation", inst)
	c, A, b, err := standardForm(f.Problem)
	if err != nil {
		return 0, nil, err
	}

	z, x, err := lp.Simplex(c, A, b, 0, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("gonum simplex: %w", err)
	}
	return z, f.Open(x), nil
}

// standardForm turns a problem into min c·x s.t. A x = b, x >= 0.
func standardForm(p simplex.Problem) ([]float64, *mat.Dense, []float64, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, nil, err
	}

	n := len(p.Costs)
	slacks := 0
	for _, con := range p.Constraints {
		if con.Sense != simplex.Equal {
			slacks++
		}
	}

	m := len(p.Constraints)
	c := make([]float64, n+slacks)
	copy(c, p.Costs)
	A := mat.NewDense(m, n+slacks, nil)
	b := make([]float64, m)

	next := n
	for i, con := range p.Constraints {
		row := A.RawRowView(i)
		for k, j := range con.Index {
			row[j] += con.Coeffs[k]
		}
		b[i] = con.RHS
		switch con.Sense {
		case simplex.LessEqual:
			row[next] = 1
			next++
		case simplex.GreaterEqual:
			row[next] = -1
			next++
		}
	}
	return c, A, b, nil
}
