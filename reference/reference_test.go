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
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costela/uflcut/ufl"
)

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

func randomInstance(rng *rand.Rand) *ufl.Instance {
	p, r := 3+rng.IntN(4), 4+rng.IntN(5)
	inst := &ufl.Instance{
		Facilities:  p,
		Customers:   r,
		FixedCosts:  make([]float64, p),
		AssignCosts: make([][]float64, r),
	}
	for u := range inst.FixedCosts {
		inst.FixedCosts[u] = float64(20 + rng.IntN(60))
	}
	for v := range inst.AssignCosts {
		inst.AssignCosts[v] = make([]float64, p)
		for u := range inst.AssignCosts[v] {
			inst.AssignCosts[v][u] = float64(1 + rng.IntN(50))
		}
	}
	return inst
}

type testLogger struct {
	lines int
}

func (l *testLogger) Print(v ...interface{}) { l.lines++ }

func TestEnumerator(t *testing.T) {
	sol, err := Enumerator{}.Optimum(context.Background(), rotation())
	require.NoError(t, err)
	assert.Equal(t, 2.0, sol.Objective)
	assert.Len(t, sol.Open, 3)
	assert.Len(t, sol.Assignment, 3)

	cost, _ := rotation().Cost(sol.Open)
	assert.Equal(t, sol.Objective, cost)
}

func TestEnumeratorTooManyFacilities(t *testing.T) {
	_, err := Enumerator{MaxFacilities: 2}.Optimum(context.Background(), rotation())
	assert.ErrorIs(t, err, ErrTooManyFacilities)
}

func TestEnumeratorInvalid(t *testing.T) {
	inst := rotation()
	inst.FixedCosts = nil
	_, err := Enumerator{}.Optimum(context.Background(), inst)
	assert.Error(t, err)
}

func TestGreedy(t *testing.T) {
	sol := Greedy(rotation())
	assert.Equal(t, 2.0, sol.Objective)

	open := 0
	for _, o := range sol.Open {
		if o {
			open++
		}
	}
	assert.Equal(t, 2, open)
}

func TestGreedySingleFacility(t *testing.T) {
	inst := &ufl.Instance{
		Facilities:  1,
		Customers:   2,
		FixedCosts:  []float64{5},
		AssignCosts: [][]float64{{1}, {2}},
	}
	sol := Greedy(inst)
	assert.Equal(t, 8.0, sol.Objective)
	assert.Equal(t, []bool{true}, sol.Open)
	assert.Equal(t, []int{0, 0}, sol.Assignment)
}

func TestRelaxations(t *testing.T) {
	ctx := context.Background()

	z, x, err := TableauRelaxation(ctx, rotation())
	require.NoError(t, err)
	assert.InDelta(t, 1.5, z, 1e-7)
	assert.Len(t, x, 3)

	z, x, err = GonumRelaxation(ctx, rotation())
	require.NoError(t, err)
	assert.InDelta(t, 1.5, z, 1e-7)
	assert.Len(t, x, 3)
}

func TestRelaxationsAgree(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 5; i++ {
		inst := randomInstance(rng)
		zt, _, err := TableauRelaxation(ctx, inst)
		require.NoError(t, err)
		zg, _, err := GonumRelaxation(ctx, inst)
		require.NoError(t, err)
		assert.InDelta(t, zt, zg, 1e-6, "instance %d", i)
	}
}

func TestStandardForm(t *testing.T) {
	f := ufl.Formulate("rotation", rotation())
	c, A, b, err := standardForm(f.Problem)
	require.NoError(t, err)

	// 3 assign equalities, 9 link and 3 open inequalities
	rows, cols := A.Dims()
	assert.Equal(t, 15, rows)
	assert.Equal(t, 12+12, cols)
	assert.Len(t, c, cols)
	assert.Len(t, b, rows)
	assert.Equal(t, 1.0, A.At(3, 12))
	assert.Equal(t, 1.0, A.At(14, 23))
}

func TestBranchAndBound(t *testing.T) {
	logger := &testLogger{}
	sol, err := NewBranchAndBound(WithLogger(logger)).Optimum(context.Background(), rotation())
	require.NoError(t, err)
	assert.Equal(t, 2.0, sol.Objective)
	assert.NotZero(t, logger.lines)
}

func TestBranchAndBoundGonum(t *testing.T) {
	sol, err := NewBranchAndBound(WithRelaxation(GonumRelaxation)).Optimum(context.Background(), rotation())
	require.NoError(t, err)
	assert.Equal(t, 2.0, sol.Objective)
}

func TestBranchAndBoundMatchesEnumerator(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewPCG(1, 2))
	bnb := NewBranchAndBound()
	for i := 0; i < 8; i++ {
		inst := randomInstance(rng)
		want, err := Enumerator{}.Optimum(ctx, inst)
		require.NoError(t, err)
		got, err := bnb.Optimum(ctx, inst)
		require.NoError(t, err)
		assert.InDelta(t, want.Objective, got.Objective, 1e-6, "instance %d: %s", i, inst)

		cost, _ := inst.Cost(got.Open)
		assert.InDelta(t, got.Objective, cost, 1e-9)
	}
}

func TestBranchAndBoundNodeLimit(t *testing.T) {
	sol, err := NewBranchAndBound(WithNodeLimit(1)).Optimum(context.Background(), rotation())
	require.True(t, errors.Is(err, ErrNodeLimit))
	// greedy already finds the optimum
	assert.Equal(t, 2.0, sol.Objective)
}

func TestBranchAndBoundCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewBranchAndBound().Optimum(ctx, rotation())
	assert.ErrorIs(t, err, context.Canceled)
}
