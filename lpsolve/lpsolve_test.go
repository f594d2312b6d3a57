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
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costela/uflcut/reference"
	"github.com/costela/uflcut/ufl"
)

const (
	delta = 0.0000001 // acceptable numerical deviation for test results
)

var (
	bigModel     *Model
	bigModelOnce sync.Once
)

func getBigModelCopy(t *testing.T) *Model {
	t.Helper()

	bigModelOnce.Do(func() {
		numVars := 10000
		model, err := NewModel("testBig", Maximize)
		require.NoError(t, err)

		for i := 0; i < numVars; i++ {
			v, err := model.AddIntegerVariable(fmt.Sprintf("x%d", i))
			require.NoError(t, err)
			err = model.AddConstraint(-float64(i), float64(i), []*Variable{v}, []float64{1})
			require.NoError(t, err)
		}

		bigModel = model
	})

	return bigModel.Clone()
}

type recordingLogger struct {
	mu    sync.Mutex
	lines int
}

func (l *recordingLogger) Print(v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines++
}

func TestInstantiation(t *testing.T) {
	name := "test model 1"
	model, err := NewModel(name, Maximize)
	require.NoError(t, err)

	assert.Equal(t, name, model.Name())
	assert.Equal(t, Maximize, model.Direction())
	assert.Equal(t, "maximize", model.Direction().String())
}

func TestClone(t *testing.T) {
	model, err := NewModel("test model 1", Minimize)
	require.NoError(t, err)

	v, err := model.AddDefinedVariable("x", ContinuousVariable, 1, 2, 3)
	require.NoError(t, err)

	err = model.AddConstraint(0, 1, []*Variable{v}, []float64{1})
	require.NoError(t, err)

	modelClone := model.Clone()

	assert.Equal(t, model.Name(), modelClone.Name())
	assert.Equal(t, model.Direction(), modelClone.Direction())
	assert.Equal(t, model.VariableCount(), modelClone.VariableCount())
	assert.Equal(t, model.ConstraintCount(), modelClone.ConstraintCount())
	assert.Equal(t, "x", modelClone.Variables()[0].Name())
}

func TestAddVariableWithDetails(t *testing.T) {
	model, err := NewModel("test", Maximize)
	require.NoError(t, err)

	v1, err := model.AddDefinedVariable("x", BinaryVariable, 3.1416, 0, 1)
	require.NoError(t, err)

	assert.Equal(t, "x", v1.Name())
	assert.Equal(t, BinaryVariable, v1.Type())
	assert.Equal(t, 3.1416, v1.Coefficient())
	l, h := v1.Bounds()
	assert.Equal(t, 0.0, l)
	assert.Equal(t, 1.0, h)

	v2, err := model.AddDefinedVariable("y", ContinuousVariable, -1, math.Inf(-1), 5)
	require.NoError(t, err)

	assert.Equal(t, "y", v2.Name())
	assert.Equal(t, ContinuousVariable, v2.Type())
	assert.Equal(t, -1.0, v2.Coefficient())
	l, h = v2.Bounds()
	assert.Equal(t, math.Inf(-1), l)
	assert.Equal(t, 5.0, h)

	v3, err := model.AddIntegerVariable("")
	require.NoError(t, err)
	assert.Equal(t, "V2", v3.Name())
	assert.Equal(t, IntegerVariable, v3.Type())
}

func TestSetObjectiveFunction(t *testing.T) {
	model, err := NewModel("test", Maximize)
	require.NoError(t, err)

	v1, _ := model.AddVariable("x")
	v2, _ := model.AddVariable("y")
	v2.SetType(IntegerVariable)
	v3, _ := model.AddVariable("z")
	v3.SetType(BinaryVariable)

	vars := []*Variable{v1, v2, v3}
	coefs := []float64{1.3, 2.7182, 3.1416}
	require.NoError(t, model.SetObjectiveFunction(coefs, vars))
	for i, coef := range coefs {
		assert.Equal(t, coef, vars[i].Coefficient())
	}

	assert.Error(t, model.SetObjectiveFunction(coefs[:1], vars))
}

func TestAddConstraintErrors(t *testing.T) {
	model, err := NewModel("test", Minimize)
	require.NoError(t, err)
	other, err := NewModel("other", Minimize)
	require.NoError(t, err)

	x, _ := model.AddVariable("x")
	foreign, _ := other.AddVariable("f")

	assert.Error(t, model.AddConstraint(0, 1, []*Variable{x}, []float64{1, 2}))
	assert.Error(t, model.AddConstraint(0, 1, nil, nil))
	assert.Error(t, model.AddConstraint(0, 1, []*Variable{foreign}, []float64{1}))

	require.NoError(t, model.AddConstraint(math.Inf(-1), math.Inf(1), []*Variable{x}, []float64{1}))
	assert.Equal(t, 0, model.ConstraintCount())
	require.NoError(t, model.AddConstraint(-1, 1, []*Variable{x}, []float64{1}))
	assert.Equal(t, 2, model.ConstraintCount())
}

func TestSolveMIP(t *testing.T) {
	model, err := NewModel("test", Maximize)
	require.NoError(t, err)

	x1, _ := model.AddDefinedVariable("x1", ContinuousVariable, 1, 0, 40)
	x2, _ := model.AddDefinedVariable("x2", ContinuousVariable, 2, 0, math.Inf(1))
	x3, _ := model.AddDefinedVariable("x3", ContinuousVariable, 3, 0, math.Inf(1))
	x4, _ := model.AddDefinedVariable("x4", IntegerVariable, 1, 2, 3)

	require.NoError(t, model.AddConstraint(0, 20, []*Variable{x1, x2, x3, x4}, []float64{-1, 1, 1, 10}))
	require.NoError(t, model.AddConstraint(0, 30, []*Variable{x1, x2, x3}, []float64{1, -3, 1}))
	require.NoError(t, model.AddConstraint(0, 0, []*Variable{x2, x4}, []float64{1, -3.5}))

	res, err := model.Solve()
	require.NoError(t, err)

	expectedXs := []float64{40, 10.5, 19.5, 3}
	expectedObj := 122.5

	assert.Equal(t, SolutionOptimal, res.Status())
	assert.InDelta(t, expectedObj, res.ObjectiveValue(), delta)
	for i, x := range []*Variable{x1, x2, x3, x4} {
		assert.InDelta(t, expectedXs[i], res.Value(x), delta)
	}
}

func TestSolveLP(t *testing.T) {
	model, err := NewModel("test", Maximize)
	require.NoError(t, err)

	x1, _ := model.AddDefinedVariable("x1", ContinuousVariable, 1, 0, math.Inf(1))
	x2, _ := model.AddDefinedVariable("x2", ContinuousVariable, 2, 0, math.Inf(1))
	x3, _ := model.AddDefinedVariable("x3", ContinuousVariable, -1, 0, math.Inf(1))

	require.NoError(t, model.AddConstraint(math.Inf(-1), 14, []*Variable{x1, x2, x3}, []float64{2, 1, 1}))
	require.NoError(t, model.AddConstraint(math.Inf(-1), 28, []*Variable{x1, x2, x3}, []float64{4, 2, 3}))
	require.NoError(t, model.AddConstraint(math.Inf(-1), 30, []*Variable{x1, x2, x3}, []float64{2, 5, 5}))

	res, err := model.Solve()
	require.NoError(t, err)

	expectedXs := []float64{5, 4, 0}
	expectedObj := 13.0

	assert.Equal(t, SolutionOptimal, res.Status())
	assert.InDelta(t, expectedObj, res.ObjectiveValue(), delta)
	for i, x := range []*Variable{x1, x2, x3} {
		assert.InDelta(t, expectedXs[i], res.Value(x), delta)
	}
}

func TestSolveInfeasible(t *testing.T) {
	model, err := NewModel("test", Minimize)
	require.NoError(t, err)

	x, _ := model.AddDefinedVariable("x", ContinuousVariable, 1, 0, 1)
	require.NoError(t, model.AddConstraint(2, math.Inf(1), []*Variable{x}, []float64{1}))

	_, err = model.Solve()
	assert.ErrorIs(t, err, ErrModelInfeasible)
}

func TestLogger(t *testing.T) {
	logger := &recordingLogger{}
	model, err := NewModel("logged", Minimize, WithLogger(logger))
	require.NoError(t, err)

	assert.Equal(t, Logger(logger), model.logger)
	assert.Equal(t, Logger(logger), model.Clone().logger)
}

func rotation() *ufl.Instance {
	return &ufl.Instance{
		Facilities: 3,
		Customers:  3,
		FixedCosts: []float64{1, 1, 1},
		AssignCosts: [][]float64{
			{0, 0, 100},
			{100, 0, 0},
			{0, 100, 0},
		},
	}
}

func TestBuildModel(t *testing.T) {
	model, x, err := BuildModel(rotation())
	require.NoError(t, err)

	assert.Len(t, x, 3)
	assert.Equal(t, 3+9, model.VariableCount())
	assert.Equal(t, 3+9, model.ConstraintCount())
	assert.Equal(t, BinaryVariable, x[0].Type())
	assert.Equal(t, ContinuousVariable, model.Variables()[3].Type())
	assert.Equal(t, "y0_0", model.Variables()[3].Name())
}

func TestOptimizer(t *testing.T) {
	sol, err := Optimizer{}.Optimum(context.Background(), rotation())
	require.NoError(t, err)
	assert.InDelta(t, 2.0, sol.Objective, delta)

	want, err := reference.Enumerator{}.Optimum(context.Background(), rotation())
	require.NoError(t, err)
	assert.InDelta(t, want.Objective, sol.Objective, delta)
}

func TestOptimizerInvalid(t *testing.T) {
	inst := rotation()
	inst.AssignCosts = inst.AssignCosts[:1]
	_, err := Optimizer{}.Optimum(context.Background(), inst)
	assert.Error(t, err)
}

func TestBig(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	model := getBigModelCopy(t)

	res, err := model.Solve()
	require.NoError(t, err)

	expected := 49995000.0
	assert.Equal(t, expected, res.ObjectiveValue())
}

func TestContext(t *testing.T) {
	model := getBigModelCopy(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	<-ctx.Done()

	_, err := model.SolveWithContext(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// Try to detect non-reentrant code in underlying lib
func TestParallel(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	model := getBigModelCopy(t)

	wg := sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		model.Solve()
	}()
	go func() {
		defer wg.Done()
		model.Solve()
	}()
	wg.Wait()
}
