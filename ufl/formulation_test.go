package ufl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costela/uflcut/simplex"
)

func TestFormulate(t *testing.T) {
	inst := &Instance{
		Facilities:  2,
		Customers:   3,
		FixedCosts:  []float64{10, 20},
		AssignCosts: [][]float64{{1, 2}, {3, 4}, {5, 6}},
	}
	f := Formulate("two-by-three", inst)
	require.NoError(t, f.Validate())

	assert.Equal(t, "two-by-three", f.Name)
	assert.Len(t, f.Costs, 2+2*3)
	assert.Len(t, f.Constraints, 3+2*3+2)

	assert.Equal(t, 1, f.X(1))
	assert.Equal(t, 2, f.Y(0, 0))
	assert.Equal(t, 7, f.Y(1, 2))
	assert.Equal(t, "y1_2", f.VariableNames[f.Y(1, 2)])
	assert.Equal(t, "x0", f.VariableNames[f.X(0)])

	assert.Equal(t, []float64{10, 20, 1, 3, 5, 2, 4, 6}, f.Costs)

	assign := f.Constraints[1]
	assert.Equal(t, "Assign_1", assign.Name)
	assert.Equal(t, simplex.Equal, assign.Sense)
	assert.Equal(t, 1.0, assign.RHS)
	assert.Equal(t, []int{f.Y(0, 1), f.Y(1, 1)}, assign.Index)

	link := f.Constraints[3+1*3+2]
	assert.Equal(t, "Link_1_2", link.Name)
	assert.Equal(t, simplex.LessEqual, link.Sense)
	assert.Equal(t, []float64{0, -1, 0, 0, 0, 0, 0, 1}, link.Dense(len(f.Costs)))

	open := f.Constraints[len(f.Constraints)-1]
	assert.Equal(t, "Open_1", open.Name)
	assert.Equal(t, 1.0, open.RHS)
}

func TestFormulationRelaxation(t *testing.T) {
	f := Formulate("rotation", rotation())
	tab, err := simplex.New(f.Problem)
	require.NoError(t, err)
	require.NoError(t, tab.Solve(t.Context()))

	assert.InDelta(t, 1.5, tab.Objective(), 1e-7)
	for _, x := range f.Open(tab.Values()) {
		assert.InDelta(t, 0.5, x, 1e-7)
	}
}
