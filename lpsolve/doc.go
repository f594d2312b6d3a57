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
Package lpsolve solves UFL instances to integer optimality with lp_solve 5.5
through cgo. It needs the lpsolve55 library and headers and is only built
with the lpsolve build tag:

	go build -tags lpsolve ./...

A Model wraps a single lp_solve problem:

	model, _ := lpsolve.NewModel("ufl", lpsolve.Minimize)
	x, _ := model.AddBinaryVariable("x0")
	y, _ := model.AddDefinedVariable("y0_0", lpsolve.BinaryVariable, 4, 0, 1)
	model.AddConstraint(math.Inf(-1), 0, []*lpsolve.Variable{y, x}, []float64{1, -1})

	res, err := model.SolveWithContext(ctx)
	if err != nil {
		// inspect lpsolve.SolveError or the context error
	}
	fmt.Println(res.ObjectiveValue(), res.Value(x))

Optimizer builds the binary UFL model of an instance and plugs into the
reference package as an alternative source of integer optima.
*/
package lpsolve
