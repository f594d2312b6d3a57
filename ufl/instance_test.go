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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rotation has LP relaxation value 1.5 and integer optimum 2.
func rotation() *Instance {
	return &Instance{
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

func TestValidate(t *testing.T) {
	require.NoError(t, rotation().Validate())

	tests := []struct {
		name   string
		mangle func(*Instance)
	}{
		{"no facilities", func(i *Instance) { i.Facilities = 0 }},
		{"no customers", func(i *Instance) { i.Customers = 0 }},
		{"short fixed costs", func(i *Instance) { i.FixedCosts = i.FixedCosts[:2] }},
		{"missing customer row", func(i *Instance) { i.AssignCosts = i.AssignCosts[:2] }},
		{"short customer row", func(i *Instance) { i.AssignCosts[1] = []float64{1} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := rotation()
			tt.mangle(inst)
			assert.Error(t, inst.Validate())
		})
	}
}

func TestCost(t *testing.T) {
	inst := rotation()

	cost, assignment := inst.Cost([]bool{true, true, false})
	assert.Equal(t, 2.0, cost)
	assert.Equal(t, []int{0, 1, 0}, assignment)

	cost, assignment = inst.Cost([]bool{true, false, false})
	assert.Equal(t, 101.0, cost)
	assert.Equal(t, []int{0, 0, 0}, assignment)

	cost, assignment = inst.Cost([]bool{true, true, true})
	assert.Equal(t, 3.0, cost)
	assert.Len(t, assignment, 3)

	cost, assignment = inst.Cost(make([]bool, 3))
	assert.True(t, math.IsInf(cost, 1))
	assert.Nil(t, assignment)
}

func TestRestrict(t *testing.T) {
	inst := rotation()

	sub, offset, index := inst.Restrict([]Fixing{Closed, Opened, Free})
	require.NotNil(t, sub)
	assert.Equal(t, 1.0, offset)
	assert.Equal(t, []int{1, 2}, index)
	assert.Equal(t, 2, sub.Facilities)
	assert.Equal(t, 3, sub.Customers)
	assert.Equal(t, []float64{0, 1}, sub.FixedCosts)
	assert.Equal(t, [][]float64{{0, 100}, {0, 0}, {100, 0}}, sub.AssignCosts)
	require.NoError(t, sub.Validate())

	// the receiver is left alone
	assert.Equal(t, []float64{1, 1, 1}, inst.FixedCosts)

	// costs of the sub-instance plus the offset match the full instance
	subCost, _ := sub.Cost([]bool{true, false})
	fullCost, _ := inst.Cost([]bool{false, true, false})
	assert.Equal(t, fullCost, subCost+offset)
}

func TestRestrictShortFixing(t *testing.T) {
	sub, offset, index := rotation().Restrict([]Fixing{Opened})
	require.NotNil(t, sub)
	assert.Equal(t, 1.0, offset)
	assert.Equal(t, []int{0, 1, 2}, index)
	assert.Equal(t, []float64{0, 1, 1}, sub.FixedCosts)
}

func TestRestrictAllClosed(t *testing.T) {
	sub, offset, index := rotation().Restrict([]Fixing{Closed, Closed, Closed})
	assert.Nil(t, sub)
	assert.Zero(t, offset)
	assert.Nil(t, index)
}
