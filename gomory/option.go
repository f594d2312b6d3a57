package gomory

import (
	"time"

	"github.com/costela/uflcut/reference"
)

type Option func(*Solver)

func WithLogger(logger Logger) Option {
	return func(s *Solver) {
		s.logger = logger
	}
}

// WithOptimizer sets how the integer optimum of each instance is found.
func WithOptimizer(opt reference.Optimizer) Option {
	return func(s *Solver) {
		s.optimizer = opt
	}
}

func WithTimeLimit(d time.Duration) Option {
	return func(s *Solver) {
		s.timeLimit = d
	}
}

func WithMaxIterations(n int) Option {
	return func(s *Solver) {
		s.maxIterations = n
	}
}

// WithGapThreshold stops the loop once the relative gap is at most gap.
func WithGapThreshold(gap float64) Option {
	return func(s *Solver) {
		s.gapThreshold = gap
	}
}

// WithTolerance sets how far from an integer a value must be to count as
// fractional.
func WithTolerance(tol float64) Option {
	return func(s *Solver) {
		s.tolerance = tol
	}
}

func WithMaxCutsPerRound(n int) Option {
	return func(s *Solver) {
		s.maxCuts = n
	}
}
