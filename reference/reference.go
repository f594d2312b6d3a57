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
Package reference computes integer optima of UFL instances. They are the
yardstick the gomory package measures its relaxations against.
*/
package reference

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/costela/uflcut/ufl"
)

// Solution is an integer solution of an instance.
type Solution struct {
	Objective  float64
	Open       []bool
	Assignment []int
}

// Optimizer finds the integer optimum of an instance.
type Optimizer interface {
	Optimum(ctx context.Context, inst *ufl.Instance) (Solution, error)
}

var (
	ErrTooManyFacilities = errors.New("too many facilities for exhaustive enumeration")
	ErrNodeLimit         = errors.New("branch-and-bound node limit reached")
)

type Logger interface {
	Print(v ...interface{})
}

type noopLogger struct{}

func (noopLogger) Print(v ...interface{}) {}

// Enumerator tries every non-empty set of open facilities.
type Enumerator struct {
	MaxFacilities int
}

const defaultMaxEnumerated = 20

func (e Enumerator) Optimum(ctx context.Context, inst *ufl.Instance) (Solution, error) {
	if err := inst.Validate(); err != nil {
		return Solution{}, err
	}
	limit := e.MaxFacilities
	if limit <= 0 {
		limit = defaultMaxEnumerated
	}
	if inst.Facilities > limit {
		return Solution{}, fmt.Errorf("%d facilities, at most %d allowed: %w", inst.Facilities, limit, ErrTooManyFacilities)
	}

	best := Solution{Objective: math.Inf(1)}
	open := make([]bool, inst.Facilities)
	for mask := uint64(1); mask < 1<<uint(inst.Facilities); mask++ {
		if mask&1023 == 0 {
			if err := ctx.Err(); err != nil {
				return best, err
			}
		}
		for u := range open {
			open[u] = mask&(1<<uint(u)) != 0
		}
		if cost, assignment := inst.Cost(open); cost < best.Objective {
			best = Solution{
				Objective:  cost,
				Open:       append([]bool(nil), open...),
				Assignment: assignment,
			}
		}
	}
	return best, nil
}

// Greedy opens facilities one at a time while that lowers the cost, then
// closes facilities while that lowers the cost.
func Greedy(inst *ufl.Instance) Solution {
	open := make([]bool, inst.Facilities)
	best := math.Inf(1)

	for {
		candidate, candidateCost := -1, best
		for u := range open {
			if open[u] {
				continue
			}
			open[u] = true
			if cost, _ := inst.Cost(open); cost < candidateCost {
				candidate, candidateCost = u, cost
			}
			open[u] = false
		}
		if candidate < 0 {
			break
		}
		open[candidate] = true
		best = candidateCost
	}

	for improved := true; improved; {
		improved = false
		for u := range open {
			if !open[u] {
				continue
			}
			open[u] = false
			if cost, _ := inst.Cost(open); cost < best {
				best = cost
				improved = true
				continue
			}
			open[u] = true
		}
	}

	cost, assignment := inst.Cost(open)
	return Solution{Objective: cost, Open: open, Assignment: assignment}
}
