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

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/costela/uflcut/reference"
	"github.com/costela/uflcut/ufl"
)

var ErrSuboptimal = errors.New("lp_solve stopped with a suboptimal solution")

// Optimizer finds integer optima of UFL instances with lp_solve's
// branch-and-bound. It implements reference.Optimizer.
type Optimizer struct {
	Logger Logger
}

var _ reference.Optimizer = Optimizer{}

// BuildModel builds the UFL model of the instance: binary opening variables and
// assignment variables in [0, 1]. Assignments need no integrality, they are
// integral in every optimum once the facilities are fixed.
func BuildModel(inst *ufl.Instance, opts ...Option) (*Model, []*Variable, error) {
	if err := inst.Validate(); err != nil {
		return nil, nil, err
	}

	model, err := NewModel("ufl", Minimize, opts...)
	if err != nil {
		return nil, nil, err
	}

	x := make([]*Variable, inst.Facilities)
	for u := range x {
		if x[u], err = model.AddDefinedVariable(fmt.Sprintf("x%d", u), BinaryVariable, inst.FixedCosts[u], 0, 1); err != nil {
			return nil, nil, err
		}
	}

	y := make([][]*Variable, inst.Facilities)
	for u := range y {
		y[u] = make([]*Variable, inst.Customers)
		for v := range y[u] {
			if y[u][v], err = model.AddDefinedVariable(fmt.Sprintf("y%d_%d", u, v), ContinuousVariable, inst.AssignCosts[v][u], 0, 1); err != nil {
				return nil, nil, err
			}
		}
	}

	ones := make([]float64, inst.Facilities)
	for u := range ones {
		ones[u] = 1
	}
	for v := 0; v < inst.Customers; v++ {
		column := make([]*Variable, inst.Facilities)
		for u := range column {
			column[u] = y[u][v]
		}
		if err := model.AddConstraint(1, 1, column, ones); err != nil {
			return nil, nil, fmt.Errorf("Assign_%d: %w", v, err)
		}
	}
	for u := range y {
		for v := range y[u] {
			if err := model.AddConstraint(math.Inf(-1), 0, []*Variable{y[u][v], x[u]}, []float64{1, -1}); err != nil {
				return nil, nil, fmt.Errorf("Link_%d_%d: %w", u, v, err)
			}
		}
	}

	return model, x, nil
}

func (o Optimizer) Optimum(ctx context.Context, inst *ufl.Instance) (reference.Solution, error) {
	var opts []Option
	if o.Logger != nil {
		opts = append(opts, WithLogger(o.Logger))
	}

	model, x, err := BuildModel(inst, opts...)
	if err != nil {
		return reference.Solution{}, err
	}

	res, err := model.SolveWithContext(ctx)
	if err != nil {
		return reference.Solution{}, err
	}
	if res.Status() != SolutionOptimal {
		return reference.Solution{}, ErrSuboptimal
	}

	open := make([]bool, inst.Facilities)
	for u, xu := range x {
		open[u] = res.Value(xu) > 0.5
	}
	cost, assignment := inst.Cost(open)
	return reference.Solution{Objective: cost, Open: open, Assignment: assignment}, nil
}
