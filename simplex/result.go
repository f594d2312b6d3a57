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

import "fmt"

type Status int

const (
	NotSolved Status = iota
	Optimal
	Infeasible
	Unbounded
	IterationLimit
	Aborted
)

func (s Status) String() string {
	switch s {
	case NotSolved:
		return "not solved"
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case Unbounded:
		return "unbounded"
	case IterationLimit:
		return "iteration limit"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

type SolveError int

const (
	ErrInfeasible = SolveError(Infeasible)
	ErrUnbounded  = SolveError(Unbounded)
	ErrIterLimit  = SolveError(IterationLimit)
)

// Error returns a string representation of the given error value.
func (e SolveError) Error() string {
	switch e {
	case ErrInfeasible:
		return "model is infeasible"
	case ErrUnbounded:
		return "model is unbounded"
	case ErrIterLimit:
		return "pivot limit reached before an optimal basis was found"
	default:
		return fmt.Sprintf("simplex failure %d", int(e))
	}
}

// Status maps the error back to the tableau status it stands for.
func (e SolveError) Status() Status {
	return Status(e)
}

// ColumnKind tells where a tableau column comes from.
type ColumnKind int8

const (
	StructuralColumn ColumnKind = iota
	SlackColumn
	SurplusColumn
	ArtificialColumn
	AddedColumn
)

func (k ColumnKind) String() string {
	switch k {
	case StructuralColumn:
		return "structural"
	case SlackColumn:
		return "slack"
	case SurplusColumn:
		return "surplus"
	case ArtificialColumn:
		return "artificial"
	case AddedColumn:
		return "added"
	default:
		return fmt.Sprintf("ColumnKind(%d)", int(k))
	}
}
