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

import (
	"context"
	"fmt"
	"math"

	"github.com/costela/uflcut/reference"
	"github.com/costela/uflcut/ufl"
)

// Optimizer finds integer optima of UFL instances with GLPK's
// branch-and-cut. GLPK cannot be interrupted, so the context is only checked
// before solving.
type Optimizer struct {
	Verbose bool
}

var (
	_ reference.Optimizer  = Optimizer{}
	_ reference.Relaxation = Relaxation
)

// BuildModel builds the UFL model of the instance and returns it with its
// opening variables. With integer unset, the opening variables are
// continuous in [0, 1] and the model is the LP relaxation.
func BuildModel(inst *ufl.Instance, integer bool) (*Model, []*Variable, error) {
	if err := inst.Validate(); err != nil {
		return nil, nil, err
	}

	model := NewModel("ufl", Minimize)
	kind := ContinuousVariable
	if integer {
		kind = BinaryVariable
	}

	var err error
	x := make([]*Variable, inst.Facilities)
	for u := range x {
		if x[u], err = model.AddDefinedVariable(fmt.Sprintf("x%d", u), kind, inst.FixedCosts[u], 0, 1); err != nil {
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
	if err := ctx.Err(); err != nil {
		return reference.Solution{}, err
	}
	model, x, err := BuildModel(inst, true)
	if err != nil {
		return reference.Solution{}, err
	}
	model.Verbose = o.Verbose

	res, err := model.SolveBranchCut()
	if err != nil {
		return reference.Solution{}, err
	}
	if status := res.Status(); status != StatusOptimal {
		return reference.Solution{}, fmt.Errorf("glpk branch-and-cut ended %s", status)
	}

	open := make([]bool, inst.Facilities)
	for u, xu := range x {
		open[u] = res.Value(xu) > 0.5
	}
	cost, assignment := inst.Cost(open)
	return reference.Solution{Objective: cost, Open: open, Assignment: assignment}, nil
}

// Relaxation solves the LP relaxation of the instance with GLPK's simplex.
// It fits reference.WithRelaxation.
func Relaxation(ctx context.Context, inst *ufl.Instance) (float64, []float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}
	model, x, err := BuildModel(inst, false)
	if err != nil {
		return 0, nil, err
	}

	res, err := model.SolveSimplexDual()
	if err != nil {
		return 0, nil, err
	}
	if status := res.Status(); status != StatusOptimal {
		return 0, nil, fmt.Errorf("glpk simplex ended %s", status)
	}

	open := make([]float64, len(x))
	for u, xu := range x {
		open[u] = res.Value(xu)
	}
	return res.ObjectiveValue(), open, nil
}
