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
	"math"

	"github.com/costela/uflcut/ufl"
)

const (
	defaultIntegrality = 1e-6
	pruneTolerance     = 1e-9
)

// BranchAndBound explores fixings of the opening variables depth-first,
// bounding every node with an LP relaxation of the restricted instance.
type BranchAndBound struct {
	relax       Relaxation
	nodeLimit   int
	integrality float64
	logger      Logger
}

type Option func(*BranchAndBound)

// WithRelaxation replaces the relaxation used for node bounds.
func WithRelaxation(r Relaxation) Option {
	return func(b *BranchAndBound) {
		b.relax = r
	}
}

// WithNodeLimit stops the search after n nodes; 0 means no limit.
func WithNodeLimit(n int) Option {
	return func(b *BranchAndBound) {
		b.nodeLimit = n
	}
}

func WithLogger(logger Logger) Option {
	return func(b *BranchAndBound) {
		b.logger = logger
	}
}

func NewBranchAndBound(opts ...Option) *BranchAndBound {
	b := &BranchAndBound{
		relax:       TableauRelaxation,
		integrality: defaultIntegrality,
		logger:      noopLogger{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Optimum returns the integer optimum. When the node limit is hit, the best
// solution found so far is returned together with ErrNodeLimit.
func (b *BranchAndBound) Optimum(ctx context.Context, inst *ufl.Instance) (Solution, error) {
	if err := inst.Validate(); err != nil {
		return Solution{}, err
	}

	incumbent := Greedy(inst)
	stack := [][]ufl.Fixing{make([]ufl.Fixing, inst.Facilities)}
	nodes := 0

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return incumbent, err
		}
		if b.nodeLimit > 0 && nodes >= b.nodeLimit {
			return incumbent, fmt.Errorf("after %d nodes: %w", nodes, ErrNodeLimit)
		}

		fix := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodes++

		sub, offset, index := inst.Restrict(fix)
		if sub == nil {
			continue
		}
		bound, xs, err := b.relax(ctx, sub)
		if err != nil {
			return incumbent, fmt.Errorf("node %d: %w", nodes, err)
		}
		bound += offset
		if bound >= incumbent.Objective-pruneTolerance*math.Max(1, math.Abs(incumbent.Objective)) {
			continue
		}

		branch, mostFractional := -1, b.integrality
		open := make([]bool, inst.Facilities)
		for i, u := range index {
			if fix[u] == ufl.Opened {
				open[u] = true
				continue
			}
			x := xs[i]
			if frac := math.Min(x-math.Floor(x), math.Ceil(x)-x); frac > mostFractional {
				branch, mostFractional = u, frac
			}
			open[u] = x > 0.5
		}

		if branch < 0 {
			if cost, assignment := inst.Cost(open); cost < incumbent.Objective {
				incumbent = Solution{Objective: cost, Open: open, Assignment: assignment}
				b.logger.Print(fmt.Sprintf("node %d: new incumbent %.4f", nodes, cost))
			}
			continue
		}

		closed := append([]ufl.Fixing(nil), fix...)
		closed[branch] = ufl.Closed
		opened := append([]ufl.Fixing(nil), fix...)
		opened[branch] = ufl.Opened
		stack = append(stack, closed, opened)
	}

	b.logger.Print(fmt.Sprintf("branch-and-bound finished after %d nodes, optimum %.4f", nodes, incumbent.Objective))
	return incumbent, nil
}
