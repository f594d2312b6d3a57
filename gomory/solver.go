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

package gomory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/costela/uflcut/reference"
	"github.com/costela/uflcut/simplex"
	"github.com/costela/uflcut/ufl"
)

const (
	DefaultTimeLimit     = time.Hour
	DefaultGapThreshold  = 1e-9
	DefaultMaxIterations = 1000
	DefaultTolerance     = 1e-6
)

// StatusTimeLimit marks an iteration interrupted by the time limit.
const StatusTimeLimit = "time limit"

// Solver runs the cutting-plane loop on single instances. It holds no
// per-instance state and may be shared between goroutines.
type Solver struct {
	logger        Logger
	optimizer     reference.Optimizer
	timeLimit     time.Duration
	maxIterations int
	gapThreshold  float64
	tolerance     float64
	maxCuts       int
}

func NewSolver(opts ...Option) *Solver {
	s := &Solver{
		logger:        noopLogger{},
		timeLimit:     DefaultTimeLimit,
		maxIterations: DefaultMaxIterations,
		gapThreshold:  DefaultGapThreshold,
		tolerance:     DefaultTolerance,
		maxCuts:       DefaultMaxCuts,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.optimizer == nil {
		s.optimizer = reference.NewBranchAndBound()
	}
	return s
}

// Run solves the relaxation of the instance and adds rounds of cuts until
// the gap to the integer optimum is closed, no cut can be derived, the
// relaxation stops being optimal or a time or iteration limit is reached.
//
// A relaxation that fails to solve ends the run without an error; the trace
// records the failing status. Errors are only returned for invalid input, a
// missing integer optimum or a cancelled context, in which case the trace
// holds the rounds completed so far.
func (s *Solver) Run(ctx context.Context, name string, inst *ufl.Instance) (*Trace, error) {
	if err := inst.Validate(); err != nil {
		return nil, fmt.Errorf("instance %s: %w", name, err)
	}

	s.logger.Print(fmt.Sprintf("%s: computing integer optimum", name))
	best, err := s.optimizer.Optimum(ctx, inst)
	if err != nil {
		return nil, fmt.Errorf("instance %s: integer optimum: %w", name, err)
	}
	s.logger.Print(fmt.Sprintf("%s: integer optimum %.4f", name, best.Objective))

	f := ufl.Formulate(name, inst)
	tab, err := simplex.New(f.Problem)
	if err != nil {
		return nil, fmt.Errorf("instance %s: %w", name, err)
	}

	trace := &Trace{Instance: name, Optimum: best.Objective}
	record := func(iteration, cuts int, elapsed time.Duration) IterationStats {
		var prev *IterationStats
		if n := len(trace.Iterations); n > 0 {
			prev = &trace.Iterations[n-1]
		}
		st := s.stats(name, tab, best.Objective, iteration, cuts, elapsed, prev)
		trace.Iterations = append(trace.Iterations, st)
		return st
	}

	start := time.Now()
	err = tab.Solve(ctx)
	elapsed := time.Since(start)
	st := record(0, 0, elapsed)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return trace, ctxErr
		}
		s.logger.Print(fmt.Sprintf("%s: initial relaxation not solved: %v", name, err))
		return trace, nil
	}
	s.logger.Print(fmt.Sprintf("%s: initial relaxation %.4f, relative gap %.6f", name, st.LPSolution, st.RelativeGap))

	totalCuts := 0
loop:
	for iteration := 1; ; iteration++ {
		switch {
		case elapsed > s.timeLimit:
			s.logger.Print(fmt.Sprintf("%s: time limit reached", name))
			break loop
		case st.RelativeGap <= s.gapThreshold:
			s.logger.Print(fmt.Sprintf("%s: gap closed", name))
			break loop
		case tab.Status() != simplex.Optimal:
			s.logger.Print(fmt.Sprintf("%s: relaxation is %s", name, tab.Status()))
			break loop
		case iteration > s.maxIterations:
			s.logger.Print(fmt.Sprintf("%s: iteration limit reached", name))
			break loop
		}

		roundStart := time.Now()
		cuts := GenerateCuts(tab, s.tolerance, s.maxCuts)
		if len(cuts) == 0 {
			s.logger.Print(fmt.Sprintf("%s: no fractional row left to cut", name))
			break loop
		}
		if err := tab.AddRows(rows(cuts)); err != nil {
			return trace, fmt.Errorf("instance %s: adding cuts: %w", name, err)
		}
		totalCuts += len(cuts)

		// the round may only spend what is left of the time budget
		roundCtx, cancel := context.WithTimeout(ctx, s.timeLimit-elapsed)
		err := tab.Reoptimize(roundCtx)
		cancel()
		elapsed += time.Since(roundStart)
		st = record(iteration, totalCuts, elapsed)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return trace, ctxErr
			}
			if errors.Is(err, context.DeadlineExceeded) {
				trace.Iterations[len(trace.Iterations)-1].Status = StatusTimeLimit
				s.logger.Print(fmt.Sprintf("%s: time limit reached during iteration %d", name, iteration))
				break loop
			}
			var solveErr simplex.SolveError
			if !errors.As(err, &solveErr) {
				return trace, fmt.Errorf("instance %s: %w", name, err)
			}
		}
		s.logger.Print(fmt.Sprintf("%s: iteration %d, %d cuts, relaxation %.4f, relative gap %.6f", name, iteration, len(cuts), st.LPSolution, st.RelativeGap))
	}

	last := trace.Iterations[len(trace.Iterations)-1]
	s.logger.Print(fmt.Sprintf("%s: finished after %d iterations and %d cuts, relaxation %.4f", name, last.Iteration, last.Cuts, last.LPSolution))
	return trace, nil
}

// stats describes the current tableau. A relaxation that is not optimal
// keeps the objective and gaps of the previous iteration.
func (s *Solver) stats(name string, tab *simplex.Tableau, optimum float64, iteration, cuts int, elapsed time.Duration, prev *IterationStats) IterationStats {
	st := IterationStats{
		InstanceName: name,
		Variables:    tab.Structural(),
		Constraints:  tab.Rows(),
		OptimalILP:   optimum,
		Status:       tab.Status().String(),
		Cuts:         cuts,
		ElapsedMS:    float64(elapsed) / float64(time.Millisecond),
		Iteration:    iteration,
	}
	if tab.Status() != simplex.Optimal {
		if prev != nil {
			st.LPSolution, st.Gap, st.RelativeGap = prev.LPSolution, prev.Gap, prev.RelativeGap
		}
		return st
	}

	st.LPSolution = tab.Objective()
	st.Gap, st.RelativeGap = Gap(st.LPSolution, optimum)
	st.IsInteger = true
	for _, x := range tab.Values() {
		if fractional(x, s.tolerance) != 0 {
			st.IsInteger = false
			break
		}
	}
	return st
}
