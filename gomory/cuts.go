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
Package gomory tightens the LP relaxation of UFL instances with Gomory
fractional cuts and records how the gap to the integer optimum closes.

Every column of the relaxation tableau is integer-valued in any integer
solution: the structural variables are binary, the slacks belong to rows
with integer data and the slack of a fractional cut is itself integral.
A cut is therefore derived from any basic row with a fractional value,
over all nonbasic columns, and appended directly to the optimal tableau;
the dual simplex then restores optimality.
*/
package gomory

import (
	"math"
	"sort"

	"github.com/costela/uflcut/simplex"
)

const DefaultMaxCuts = 50

// Cut is a Gomory fractional cut in tableau space, stored as a <= row:
//
//	-sum_j frac(a_rj) x_j <= -frac(b_r)
type Cut struct {
	Row       int
	Column    int
	Coeffs    []float64
	RHS       float64
	Violation float64
}

// fractional returns the fractional part of v, snapped to zero when v is
// within tol of an integer.
func fractional(v, tol float64) float64 {
	f := v - math.Floor(v)
	if f < tol || f > 1-tol {
		return 0
	}
	return f
}

// GenerateCuts derives one cut from every basic row of the tableau whose
// value is fractional, most violated first, keeping at most max of them
// (all of them if max <= 0).
func GenerateCuts(t *simplex.Tableau, tol float64, max int) []Cut {
	var cuts []Cut
	n := t.Columns()

	for i := 0; i < t.Rows(); i++ {
		f0 := fractional(t.RHS(i), tol)
		if f0 == 0 {
			continue
		}

		row := t.RowView(i)
		coeffs := make([]float64, n)
		empty := true
		for j, a := range row {
			if t.IsBasic(j) {
				continue
			}
			if fj := fractional(a, tol); fj > 0 {
				coeffs[j] = -fj
				empty = false
			}
		}
		if empty {
			continue
		}

		cuts = append(cuts, Cut{
			Row:       i,
			Column:    t.BasicColumn(i),
			Coeffs:    coeffs,
			RHS:       -f0,
			Violation: f0,
		})
	}

	sort.SliceStable(cuts, func(a, b int) bool {
		return cuts[a].Violation > cuts[b].Violation
	})
	if max > 0 && len(cuts) > max {
		cuts = cuts[:max]
	}
	return cuts
}

func rows(cuts []Cut) []simplex.Row {
	out := make([]simplex.Row, len(cuts))
	for i, c := range cuts {
		out[i] = simplex.Row{Coeffs: c.Coeffs, RHS: c.RHS}
	}
	return out
}
