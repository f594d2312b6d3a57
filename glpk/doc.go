/*
Copyright © 2015 Leo Antunes <leo@costela.net>

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
Package glpk solves UFL instances and their LP relaxations with GLPK through
cgo. It needs libglpk and its header and is only built with the glpk build
tag:

	go build -tags glpk ./...

Optimizer implements reference.Optimizer with GLPK's branch-and-cut, and
Relaxation can bound the nodes of reference.BranchAndBound in place of the
built-in simplex.
*/
package glpk
