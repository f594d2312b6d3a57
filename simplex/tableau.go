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

package simplex

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	defaultTolerance      = 1e-9
	defaultFeasibilityTol = 1e-7
	defaultPivotLimit     = 200000
	defaultDegenerateRun  = 50
	zeroClamp             = 1e-12
)

type Tableau struct {
	name string

	body     *mat.Dense
	rhs      []float64
	reduced  []float64
	objConst float64
	costs    []float64

	basis    []int // basic column of every row
	position []int // row of every basic column, -1 if nonbasic
	kinds    []ColumnKind

	structural int
	status     Status
	pivots     int

	tol        float64
	feasTol    float64
	pivotLimit int
}

type Option func(*Tableau)

// WithTolerance sets the tolerance used for pivot elements and reduced costs.
func WithTolerance(tol float64) Option {
	return func(t *Tableau) {
		if tol > 0 {
			t.tol = tol
		}
	}
}

// WithPivotLimit bounds the number of pivots of a single Solve or Reoptimize.
func WithPivotLimit(n int) Option {
	return func(t *Tableau) {
		if n > 0 {
			t.pivotLimit = n
		}
	}
}

// New builds the initial tableau of the problem, adding a slack column for
// every <= row, a surplus and an artificial column for every >= row and an
// artificial column for every equality. Rows with a negative right-hand side
// are negated first.
func New(p Problem, opts ...Option) (*Tableau, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := len(p.Costs)
	m := len(p.Constraints)

	senses := make([]Sense, m)
	extra := 0
	for i, c := range p.Constraints {
		s := c.Sense
		if c.RHS < 0 {
			s = flip(s)
		}
		senses[i] = s
		if s == GreaterEqual {
			extra += 2
		} else {
			extra++
		}
	}

	cols := n + extra
	t := &Tableau{
		name:       p.Name,
		body:       mat.NewDense(m, cols, nil),
		rhs:        make([]float64, m),
		reduced:    make([]float64, cols),
		costs:      make([]float64, cols),
		basis:      make([]int, m),
		position:   make([]int, cols),
		kinds:      make([]ColumnKind, cols),
		structural: n,
		tol:        defaultTolerance,
		feasTol:    defaultFeasibilityTol,
		pivotLimit: defaultPivotLimit,
	}
	for _, opt := range opts {
		opt(t)
	}
	copy(t.costs, p.Costs)
	for j := range t.position {
		t.position[j] = -1
	}

	next := n
	for i, c := range p.Constraints {
		sign := 1.0
		if c.RHS < 0 {
			sign = -1
		}
		row := t.body.RawRowView(i)
		for k, j := range c.Index {
			row[j] += sign * c.Coeffs[k]
		}
		t.rhs[i] = sign * c.RHS

		switch senses[i] {
		case LessEqual:
			row[next] = 1
			t.kinds[next] = SlackColumn
			t.setBasic(i, next)
			next++
		case GreaterEqual:
			row[next] = -1
			t.kinds[next] = SurplusColumn
			row[next+1] = 1
			t.kinds[next+1] = ArtificialColumn
			t.setBasic(i, next+1)
			next += 2
		case Equal:
			row[next] = 1
			t.kinds[next] = ArtificialColumn
			t.setBasic(i, next)
			next++
		}
	}

	return t, nil
}

func flip(s Sense) Sense {
	switch s {
	case LessEqual:
		return GreaterEqual
	case GreaterEqual:
		return LessEqual
	default:
		return s
	}
}

func (t *Tableau) setBasic(row, col int) {
	if old := t.basis[row]; t.position[old] == row {
		t.position[old] = -1
	}
	t.basis[row] = col
	t.position[col] = row
}

// Solve finds an optimal basis with the two-phase primal simplex.
func (t *Tableau) Solve(ctx context.Context) error {
	t.pivots = 0

	if t.hasArtificials() {
		if err := t.phaseOne(ctx); err != nil {
			return err
		}
	}

	t.loadObjective()
	return t.finish(t.primal(ctx))
}

// Reoptimize restores optimality after rows were added, using the dual
// simplex followed by a primal cleanup pass.
func (t *Tableau) Reoptimize(ctx context.Context) error {
	t.pivots = 0
	if err := t.dual(ctx); err != nil {
		return t.finish(err)
	}
	return t.finish(t.primal(ctx))
}

func (t *Tableau) finish(err error) error {
	switch e := err.(type) {
	case nil:
		t.status = Optimal
	case SolveError:
		t.status = e.Status()
	default:
		t.status = Aborted
	}
	return err
}

func (t *Tableau) hasArtificials() bool {
	for _, k := range t.kinds {
		if k == ArtificialColumn {
			return true
		}
	}
	return false
}

func (t *Tableau) phaseOne(ctx context.Context) error {
	m, _ := t.body.Dims()

	for j := range t.reduced {
		t.reduced[j] = 0
		if t.kinds[j] == ArtificialColumn {
			t.reduced[j] = 1
		}
	}
	t.objConst = 0
	for i := 0; i < m; i++ {
		if t.kinds[t.basis[i]] != ArtificialColumn {
			continue
		}
		floats.Sub(t.reduced, t.body.RawRowView(i))
		t.objConst += t.rhs[i]
	}

	if err := t.primal(ctx); err != nil {
		return t.finish(err)
	}
	if t.objConst > t.feasTol {
		t.status = Infeasible
		return ErrInfeasible
	}

	t.dropArtificials()
	return nil
}

// dropArtificials pivots basic artificials (all at zero after phase one) out
// of the basis, deletes the rows where that is impossible because they are
// redundant, then deletes every artificial column.
func (t *Tableau) dropArtificials() {
	m, n := t.body.Dims()

	keepRow := make([]bool, m)
	for i := 0; i < m; i++ {
		keepRow[i] = true
		if t.kinds[t.basis[i]] != ArtificialColumn {
			continue
		}
		row := t.body.RawRowView(i)
		col, best := -1, t.tol
		for j := 0; j < n; j++ {
			if t.kinds[j] != ArtificialColumn && t.position[j] < 0 && math.Abs(row[j]) > best {
				col, best = j, math.Abs(row[j])
			}
		}
		if col < 0 {
			keepRow[i] = false
			continue
		}
		t.pivot(i, col)
	}

	var rows, cols []int
	for i, keep := range keepRow {
		if keep {
			rows = append(rows, i)
		}
	}
	for j := 0; j < n; j++ {
		if t.kinds[j] != ArtificialColumn {
			cols = append(cols, j)
		}
	}
	t.compact(rows, cols)
}

// compact keeps only the given rows and columns of the tableau.
func (t *Tableau) compact(rows, cols []int) {
	body := mat.NewDense(len(rows), len(cols), nil)
	rhs := make([]float64, len(rows))
	basis := make([]int, len(rows))
	newIndex := make([]int, len(t.kinds))
	for j := range newIndex {
		newIndex[j] = -1
	}
	for nj, j := range cols {
		newIndex[j] = nj
	}
	for ni, i := range rows {
		src := t.body.RawRowView(i)
		dst := body.RawRowView(ni)
		for nj, j := range cols {
			dst[nj] = src[j]
		}
		rhs[ni] = t.rhs[i]
		basis[ni] = newIndex[t.basis[i]]
	}

	kinds := make([]ColumnKind, len(cols))
	costs := make([]float64, len(cols))
	for nj, j := range cols {
		kinds[nj] = t.kinds[j]
		costs[nj] = t.costs[j]
	}

	t.body = body
	t.rhs = rhs
	t.kinds = kinds
	t.costs = costs
	t.reduced = make([]float64, len(cols))
	t.basis = basis
	t.position = make([]int, len(cols))
	for j := range t.position {
		t.position[j] = -1
	}
	for i, j := range basis {
		t.position[j] = i
	}
}

// loadObjective prices out the basic columns of the real objective.
func (t *Tableau) loadObjective() {
	copy(t.reduced, t.costs)
	t.objConst = 0
	for i, j := range t.basis {
		cb := t.costs[j]
		if cb == 0 {
			continue
		}
		floats.AddScaled(t.reduced, -cb, t.body.RawRowView(i))
		t.objConst += cb * t.rhs[i]
	}
	for _, j := range t.basis {
		t.reduced[j] = 0
	}
}

func (t *Tableau) primal(ctx context.Context) error {
	degenerate := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if t.pivots >= t.pivotLimit {
			return ErrIterLimit
		}

		col := t.entering(degenerate >= defaultDegenerateRun)
		if col < 0 {
			return nil
		}
		row := t.leaving(col)
		if row < 0 {
			return ErrUnbounded
		}
		if t.rhs[row] <= t.tol {
			degenerate++
		} else {
			degenerate = 0
		}
		t.pivot(row, col)
	}
}

// entering picks the column with the most negative reduced cost, or the
// first improving one under Bland's rule.
func (t *Tableau) entering(bland bool) int {
	best, col := -t.tol, -1
	for j, d := range t.reduced {
		if t.position[j] >= 0 || t.kinds[j] == ArtificialColumn {
			continue
		}
		if d < best {
			if bland {
				return j
			}
			best, col = d, j
		}
	}
	return col
}

// leaving runs the ratio test on the given column. Ties go to the row whose
// basic column has the lowest index.
func (t *Tableau) leaving(col int) int {
	m, _ := t.body.Dims()
	best, row := math.Inf(1), -1
	for i := 0; i < m; i++ {
		a := t.body.At(i, col)
		if a <= t.tol {
			continue
		}
		ratio := math.Max(t.rhs[i], 0) / a
		switch {
		case ratio < best-t.tol:
			best, row = ratio, i
		case ratio <= best+t.tol && t.basis[i] < t.basis[row]:
			best, row = math.Min(best, ratio), i
		}
	}
	return row
}

// dual runs the dual simplex until every row is primal feasible. After a
// run of degenerate pivots it switches to Bland's rule: the infeasible row
// whose basic column has the lowest index leaves, and ratio ties go to the
// lowest column.
func (t *Tableau) dual(ctx context.Context) error {
	degenerate := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if t.pivots >= t.pivotLimit {
			return ErrIterLimit
		}

		row := t.dualLeaving(degenerate >= defaultDegenerateRun)
		if row < 0 {
			return nil
		}
		col, ratio := t.dualEntering(row)
		if col < 0 {
			return ErrInfeasible
		}
		if ratio <= t.tol {
			degenerate++
		} else {
			degenerate = 0
		}
		t.pivot(row, col)
	}
}

// dualLeaving picks the row with the most negative value, or under Bland's
// rule the infeasible row with the lowest basic column.
func (t *Tableau) dualLeaving(bland bool) int {
	row, worst := -1, -t.tol
	for i, b := range t.rhs {
		if b >= -t.tol {
			continue
		}
		switch {
		case bland:
			if row < 0 || t.basis[i] < t.basis[row] {
				row = i
			}
		case b < worst:
			row, worst = i, b
		}
	}
	return row
}

// dualEntering runs the dual ratio test on the given row. Ties within the
// tolerance keep the lowest column.
func (t *Tableau) dualEntering(row int) (int, float64) {
	r := t.body.RawRowView(row)
	col, best := -1, math.Inf(1)
	for j, a := range r {
		if t.position[j] >= 0 || t.kinds[j] == ArtificialColumn || a >= -t.tol {
			continue
		}
		ratio := math.Max(t.reduced[j], 0) / -a
		if ratio < best-t.tol {
			col, best = j, ratio
		}
	}
	return col, best
}

func (t *Tableau) pivot(row, col int) {
	m, _ := t.body.Dims()
	r := t.body.RawRowView(row)

	p := r[col]
	floats.Scale(1/p, r)
	r[col] = 1
	t.rhs[row] /= p

	for i := 0; i < m; i++ {
		if i == row {
			continue
		}
		other := t.body.RawRowView(i)
		f := other[col]
		if f == 0 {
			continue
		}
		floats.AddScaled(other, -f, r)
		other[col] = 0
		t.rhs[i] -= f * t.rhs[row]
		if math.Abs(t.rhs[i]) < zeroClamp {
			t.rhs[i] = 0
		}
	}

	if f := t.reduced[col]; f != 0 {
		floats.AddScaled(t.reduced, -f, r)
		t.objConst += f * t.rhs[row]
	}
	t.reduced[col] = 0

	t.setBasic(row, col)
	t.pivots++
}

// Row is a tableau row to append, with one coefficient per current column.
type Row struct {
	Coeffs []float64
	RHS    float64
}

// AddRows appends <= rows, each with its own basic slack column of kind
// AddedColumn. Coefficients on basic columns are eliminated so the basis
// stays valid; the resulting tableau may be primal infeasible until
// Reoptimize is called.
func (t *Tableau) AddRows(rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	m, n := t.body.Dims()
	for i, r := range rows {
		if len(r.Coeffs) != n {
			return fmt.Errorf("row %d has %d coefficients, tableau has %d columns", i, len(r.Coeffs), n)
		}
	}

	k := len(rows)
	body := mat.NewDense(m+k, n+k, nil)
	body.Slice(0, m, 0, n).(*mat.Dense).Copy(t.body)

	t.body = body
	for i, r := range rows {
		ri := m + i
		dst := body.RawRowView(ri)
		copy(dst, r.Coeffs)
		rhs := r.RHS
		for j := 0; j < n; j++ {
			if dst[j] == 0 || t.position[j] < 0 {
				continue
			}
			pr := t.position[j]
			f := dst[j]
			floats.AddScaled(dst[:n], -f, body.RawRowView(pr)[:n])
			dst[j] = 0
			rhs -= f * t.rhs[pr]
		}
		dst[n+i] = 1

		t.rhs = append(t.rhs, rhs)
		t.basis = append(t.basis, n+i)
		t.kinds = append(t.kinds, AddedColumn)
		t.costs = append(t.costs, 0)
		t.reduced = append(t.reduced, 0)
		t.position = append(t.position, ri)
	}
	t.status = NotSolved
	return nil
}

func (t *Tableau) Name() string { return t.name }

func (t *Tableau) Status() Status { return t.status }

func (t *Tableau) Rows() int {
	m, _ := t.body.Dims()
	return m
}

func (t *Tableau) Columns() int {
	_, n := t.body.Dims()
	return n
}

// Structural returns the number of columns of the original problem.
func (t *Tableau) Structural() int { return t.structural }

// Objective returns the objective value of the current basis.
func (t *Tableau) Objective() float64 { return t.objConst }

// Pivots returns the number of pivots of the last Solve or Reoptimize.
func (t *Tableau) Pivots() int { return t.pivots }

func (t *Tableau) Kind(col int) ColumnKind { return t.kinds[col] }

func (t *Tableau) IsBasic(col int) bool { return t.position[col] >= 0 }

// BasicColumn returns the basic column of the given row.
func (t *Tableau) BasicColumn(row int) int { return t.basis[row] }

// RowView returns the coefficients of a tableau row. The slice aliases the
// tableau and must not be modified.
func (t *Tableau) RowView(row int) []float64 { return t.body.RawRowView(row) }

func (t *Tableau) RHS(row int) float64 { return t.rhs[row] }

// Solution returns the value of every column in the current basis.
func (t *Tableau) Solution() []float64 {
	x := make([]float64, len(t.kinds))
	for i, j := range t.basis {
		x[j] = t.rhs[i]
	}
	return x
}

// Values returns the value of the structural columns.
func (t *Tableau) Values() []float64 {
	return t.Solution()[:t.structural]
}
