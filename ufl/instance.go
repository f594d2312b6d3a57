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
Package ufl models instances of the Uncapacitated Facility Location problem:
a set of candidate facilities, each with a fixed opening cost, and a set of
customers, each with a cost for being served by every facility.

An instance can be read from the plain text format produced by the
generator package or from the ORLib capacitated format (capacities are
ignored), evaluated for a given set of open facilities and turned into the
linear programming formulation used by the simplex and gomory packages.
*/
package ufl

import (
	"fmt"
	"math"
)

// Instance is a single UFL problem.
// AssignCosts[v][u] is the cost of serving customer v from facility u.
type Instance struct {
	Facilities  int
	Customers   int
	FixedCosts  []float64
	AssignCosts [][]float64
}

// Validate checks the consistency of the instance dimensions.
func (inst *Instance) Validate() error {
	if inst.Facilities < 1 {
		return fmt.Errorf("instance needs at least one facility, got %d", inst.Facilities)
	}
	if inst.Customers < 1 {
		return fmt.Errorf("instance needs at least one customer, got %d", inst.Customers)
	}
	if len(inst.FixedCosts) != inst.Facilities {
		return fmt.Errorf("fixed costs have %d elements, but there are %d facilities", len(inst.FixedCosts), inst.Facilities)
	}
	if len(inst.AssignCosts) != inst.Customers {
		return fmt.Errorf("assignment costs have %d rows, but there are %d customers", len(inst.AssignCosts), inst.Customers)
	}
	for v, row := range inst.AssignCosts {
		if len(row) != inst.Facilities {
			return fmt.Errorf("assignment cost row %d has %d columns, expected %d", v, len(row), inst.Facilities)
		}
	}
	return nil
}

func (inst *Instance) String() string {
	return fmt.Sprintf("UFL instance: %d facilities, %d customers", inst.Facilities, inst.Customers)
}

// Cost returns the exact cost of opening the given facilities, with every
// customer served by its cheapest open facility, and the chosen facility per
// customer. If no facility is open the cost is +Inf and the assignment nil.
func (inst *Instance) Cost(open []bool) (float64, []int) {
	total := 0.0
	anyOpen := false
	for u, o := range open {
		if o {
			anyOpen = true
			total += inst.FixedCosts[u]
		}
	}
	if !anyOpen {
		return math.Inf(1), nil
	}

	assignment := make([]int, inst.Customers)
	for v, row := range inst.AssignCosts {
		best, bestU := math.Inf(1), -1
		for u, c := range row {
			if open[u] && c < best {
				best, bestU = c, u
			}
		}
		assignment[v] = bestU
		total += best
	}
	return total, assignment
}

// Fixing is the branching state of a single facility.
type Fixing int8

const (
	Free Fixing = iota
	Closed
	Opened
)

// Restrict returns the sub-instance in which closed facilities are removed
// and forced-open facilities cost nothing to open. offset holds the fixed
// costs of the forced-open facilities and index maps every facility of the
// sub-instance back to the receiver. A nil sub-instance means every facility
// was closed.
func (inst *Instance) Restrict(fix []Fixing) (sub *Instance, offset float64, index []int) {
	for u := 0; u < inst.Facilities; u++ {
		f := Free
		if u < len(fix) {
			f = fix[u]
		}
		switch f {
		case Closed:
			continue
		case Opened:
			offset += inst.FixedCosts[u]
		}
		index = append(index, u)
	}
	if len(index) == 0 {
		return nil, offset, nil
	}

	sub = &Instance{
		Facilities:  len(index),
		Customers:   inst.Customers,
		FixedCosts:  make([]float64, len(index)),
		AssignCosts: make([][]float64, inst.Customers),
	}
	for i, u := range index {
		if u < len(fix) && fix[u] == Opened {
			continue
		}
		sub.FixedCosts[i] = inst.FixedCosts[u]
	}
	for v, row := range inst.AssignCosts {
		subRow := make([]float64, len(index))
		for i, u := range index {
			subRow[i] = row[u]
		}
		sub.AssignCosts[v] = subRow
	}
	return sub, offset, index
}
