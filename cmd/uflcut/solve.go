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

package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/costela/uflcut/gomory"
	"github.com/costela/uflcut/report"
	"github.com/costela/uflcut/ufl"
)

func addSolveFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Duration("time-limit", 0, "time limit of the cutting-plane loop per instance (default 1h)")
	flags.Float64("gap-threshold", 0, "relative gap at which the loop stops (default 1e-9)")
	flags.Int("max-iterations", 0, "maximum number of cut rounds (default 1000)")
	flags.Float64("tolerance", 0, "distance to an integer below which a value counts as integral (default 1e-6)")
	flags.Int("max-cuts", 0, "maximum number of cuts per round, 0 for all (default 50)")
	flags.String("reference", "", "integer optimum backend: bnb, enumerate, lpsolve or glpk (default bnb)")
	flags.String("relaxation", "", "node relaxation of bnb: tableau, gonum or glpk (default tableau)")
	flags.Int("node-limit", 0, "maximum number of branch-and-bound nodes, 0 for no limit")
	flags.Bool("plots", true, "draw convergence and comparative charts")
}

func newSolveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <instance>",
		Short: "Run the cutting-plane loop on a single instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			solver, err := a.solver()
			if err != nil {
				return err
			}
			summary, err := a.solveFile(cmd.Context(), solver, args[0])
			if err != nil {
				return err
			}
			printSummary(cmd, summary)
			return nil
		},
	}
	addSolveFlags(cmd)
	return cmd
}

func newSolveAllCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve-all",
		Short: "Run the cutting-plane loop on every instance below the data directory",
		Long: `Solve-all runs the cutting-plane loop on every .txt instance below the
data directory, in parallel. Instances that fail are logged and left out of
the summary, which is written to the results directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			solver, err := a.solver()
			if err != nil {
				return err
			}
			paths, err := findInstances(a.settings.DataDir)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no instances found in %s", a.settings.DataDir)
			}

			summaries, err := a.solveAll(cmd.Context(), solver, paths)
			if err != nil {
				return err
			}
			if err := report.WriteSummary(a.settings.ResultsDir, summaries, a.settings.Plots); err != nil {
				return err
			}
			for _, s := range summaries {
				printSummary(cmd, s)
			}
			a.log.WithFields(log.Fields{
				"solved": len(summaries),
				"failed": len(paths) - len(summaries),
			}).Info("batch finished")
			return nil
		},
	}
	cmd.Flags().Int("workers", 0, "number of instances solved in parallel (default number of CPUs)")
	addSolveFlags(cmd)
	return cmd
}

func (a *app) solver() (*gomory.Solver, error) {
	s := a.settings
	opt, err := newOptimizer(s, a.log)
	if err != nil {
		return nil, err
	}
	return gomory.NewSolver(
		gomory.WithOptimizer(opt),
		gomory.WithLogger(printer(a.log.Debug)),
		gomory.WithTimeLimit(s.TimeLimit),
		gomory.WithGapThreshold(s.GapThreshold),
		gomory.WithMaxIterations(s.MaxIterations),
		gomory.WithTolerance(s.Tolerance),
		gomory.WithMaxCutsPerRound(s.MaxCuts),
	), nil
}

// solveFile runs the solver on one instance file and stores its trace and,
// if enabled, its convergence chart.
func (a *app) solveFile(ctx context.Context, solver *gomory.Solver, path string) (gomory.Summary, error) {
	name := instanceName(path)
	logger := a.log.WithField("instance", name)

	inst, err := ufl.ParseFile(path)
	if err != nil {
		return gomory.Summary{}, err
	}
	logger.Info(inst.String())

	trace, err := solver.Run(ctx, name, inst)
	if err != nil {
		return gomory.Summary{}, err
	}

	tracePath, err := report.WriteTrace(a.settings.ResultsDir, trace)
	if err != nil {
		return gomory.Summary{}, err
	}
	logger.WithField("path", tracePath).Debug("trace written")

	if a.settings.Plots {
		plotPath := report.ConvergencePath(a.settings.ResultsDir, name)
		written, err := report.PlotConvergence(trace, plotPath)
		if err != nil {
			return gomory.Summary{}, err
		}
		if written {
			logger.WithField("path", plotPath).Debug("convergence chart written")
		}
	}

	summary := trace.Summary()
	logger.WithFields(log.Fields{
		"initial_gap": summary.InitialGap,
		"final_gap":   summary.FinalGap,
		"cuts":        summary.TotalCuts,
		"iterations":  summary.TotalIterations,
		"status":      summary.FinalStatus,
	}).Info("instance solved")
	return summary, nil
}

// solveAll solves the instances on a bounded pool of workers. A failing
// instance is logged and skipped; only cancellation aborts the batch.
func (a *app) solveAll(ctx context.Context, solver *gomory.Solver, paths []string) ([]gomory.Summary, error) {
	var (
		mu      sync.Mutex
		results = make([]*gomory.Summary, len(paths))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.settings.Workers)
	for i, path := range paths {
		g.Go(func() error {
			summary, err := a.solveFile(gctx, solver, path)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				a.log.WithError(err).WithField("path", path).Error("instance failed, skipping")
				return nil
			}
			mu.Lock()
			results[i] = &summary
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summaries := make([]gomory.Summary, 0, len(results))
	for _, s := range results {
		if s != nil {
			summaries = append(summaries, *s)
		}
	}
	return summaries, nil
}

func printSummary(cmd *cobra.Command, s gomory.Summary) {
	fmt.Fprintf(cmd.OutOrStdout(), "%-28s gap %8.4f%% -> %8.4f%%  cuts %5d  iterations %4d  %9.1f ms  %s\n",
		s.InstanceName, 100*s.InitialGap, 100*s.FinalGap, s.TotalCuts, s.TotalIterations, s.TotalTimeMS, s.FinalStatus)
}
