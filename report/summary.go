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

package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/costela/uflcut/gomory"
)

var summaryHeader = []string{
	"instance_name",
	"initial_gap",
	"final_gap",
	"gap_closure",
	"total_cuts",
	"total_iterations",
	"total_time_ms",
	"final_status",
}

// WriteSummary stores the summaries, sorted by instance name, as CSV and,
// with charts set, draws the comparative charts next to it. Nothing is
// written for an empty batch.
func WriteSummary(dir string, summaries []gomory.Summary, charts bool) error {
	if len(summaries) == 0 {
		return nil
	}
	sorted := append([]gomory.Summary(nil), summaries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].InstanceName < sorted[j].InstanceName
	})

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, SummaryFile), sorted); err != nil {
		return err
	}
	if !charts {
		return nil
	}
	if err := PlotGapClosure(sorted, filepath.Join(dir, GapClosurePlot)); err != nil {
		return err
	}
	return PlotComputationalCost(sorted, filepath.Join(dir, ComputationalPlot))
}

func writeCSV(path string, summaries []gomory.Summary) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(summaryHeader); err != nil {
		return err
	}
	for _, s := range summaries {
		record := []string{
			s.InstanceName,
			float4(s.InitialGap),
			float4(s.FinalGap),
			float4(s.GapClosure),
			strconv.Itoa(s.TotalCuts),
			strconv.Itoa(s.TotalIterations),
			float4(s.TotalTimeMS),
			s.FinalStatus,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func float4(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
