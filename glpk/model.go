//go:build glpk

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

package glpk

// #cgo LDFLAGS: -lglpk
// #include <glpk.h>
// #include <stdlib.h>
import "C"

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"unsafe"
)

// Model is a GLPK problem. The constraint matrix is collected in triplets
// and only handed to GLPK right before solving.
type Model struct {
	prob *C.glp_prob
	vars []*Variable

	ia []C.int
	ja []C.int
	ar []C.double

	// Verbose lets GLPK print its progress on the terminal.
	Verbose bool
	// Presolve enables the LP presolver.
	Presolve bool
}

type Direction C.int

const (
	Minimize = Direction(C.GLP_MIN)
	Maximize = Direction(C.GLP_MAX)
)

func (d Direction) String() string {
	if d == Maximize {
		return "maximize"
	}
	return "minimize"
}

func NewModel(name string, dir Direction) *Model {
	prob := C.glp_create_prob()

	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	C.glp_set_prob_name(prob, cName)
	C.glp_set_obj_dir(prob, C.int(dir))

	// triplet index 0 is ignored by glp_load_matrix
	model := &Model{
		prob:     prob,
		ia:       []C.int{0},
		ja:       []C.int{0},
		ar:       []C.double{0},
		Presolve: true,
	}

	runtime.SetFinalizer(model, finalizeModel)

	return model
}

func finalizeModel(model *Model) {
	C.glp_delete_prob(model.prob)
}

func (model *Model) Name() string {
	return C.GoString(C.glp_get_prob_name(model.prob))
}

func (model *Model) Direction() Direction {
	return Direction(C.glp_get_obj_dir(model.prob))
}

func (model *Model) VariableCount() int {
	return int(C.glp_get_num_cols(model.prob))
}

func (model *Model) Variables() []*Variable {
	return model.vars
}

// AddVariable adds a free continuous variable with objective coefficient 1.
func (model *Model) AddVariable(name string) (*Variable, error) {
	return model.AddDefinedVariable(name, ContinuousVariable, 1, math.Inf(-1), math.Inf(1))
}

// AddBinaryVariable adds a 0/1 variable with objective coefficient 1.
func (model *Model) AddBinaryVariable(name string) (*Variable, error) {
	return model.AddDefinedVariable(name, BinaryVariable, 1, 0, 1)
}

// AddDefinedVariable adds a variable with all its attributes. The bounds of
// binary variables are always [0, 1].
func (model *Model) AddDefinedVariable(name string, varType VariableType, coefficient, lowerBound, upperBound float64) (*Variable, error) {
	index := model.VariableCount()
	if C.glp_add_cols(model.prob, 1) < 1 {
		return nil, fmt.Errorf("adding column %d", index)
	}
	v := &Variable{model: model, index: index}
	model.vars = append(model.vars, v)

	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	C.glp_set_col_name(model.prob, v.col(), cName)

	v.SetType(varType)
	v.SetObjectiveCoefficient(coefficient)
	if varType != BinaryVariable {
		v.SetBounds(lowerBound, upperBound)
	}
	return v, nil
}

func (model *Model) ConstraintCount() int {
	return int(C.glp_get_num_rows(model.prob))
}

// AddConstraint adds the row lower <= sum coefs[i]*vars[i] <= upper.
// Infinite bounds drop the corresponding side.
func (model *Model) AddConstraint(lower, upper float64, vars []*Variable, coefs []float64) error {
	if len(vars) != len(coefs) {
		return fmt.Errorf("inconsistent number of variables and coefficients: %d != %d", len(vars), len(coefs))
	}
	for i, v := range vars {
		if v.model != model {
			return fmt.Errorf("variable %d belongs to another model", i)
		}
	}

	row := C.glp_add_rows(model.prob, 1)
	if row < 1 {
		return errors.New("adding row")
	}
	kind, lo, hi := boundType(lower, upper)
	C.glp_set_row_bnds(model.prob, row, kind, lo, hi)

	for i, v := range vars {
		model.ia = append(model.ia, row)
		model.ja = append(model.ja, v.col())
		model.ar = append(model.ar, C.double(coefs[i]))
	}
	return nil
}

// boundType maps a pair of bounds to GLPK's bound kinds. Infinities of
// either sign stand for a missing bound on that side.
func boundType(lower, upper float64) (C.int, C.double, C.double) {
	switch {
	case math.IsInf(lower, 0) && math.IsInf(upper, 0):
		return C.GLP_FR, 0, 0
	case math.IsInf(lower, 0):
		return C.GLP_UP, 0, C.double(upper)
	case math.IsInf(upper, 0):
		return C.GLP_LO, C.double(lower), 0
	case lower == upper:
		return C.GLP_FX, C.double(lower), C.double(upper)
	default:
		return C.GLP_DB, C.double(lower), C.double(upper)
	}
}

func (model *Model) loadMatrix() {
	C.glp_load_matrix(model.prob, C.int(len(model.ia)-1), &model.ia[0], &model.ja[0], &model.ar[0])
}

func (model *Model) messageLevel() C.int {
	if model.Verbose {
		return C.GLP_MSG_ON
	}
	return C.GLP_MSG_OFF
}

func onOff(b bool) C.int {
	if b {
		return C.GLP_ON
	}
	return C.GLP_OFF
}

// SolveSimplex solves the LP, ignoring integrality, with the primal simplex.
func (model *Model) SolveSimplex() (*Result, error) {
	return model.solveSimplex(C.GLP_PRIMAL)
}

// SolveSimplexDual solves the LP, ignoring integrality, with the dual
// simplex falling back to the primal one.
func (model *Model) SolveSimplexDual() (*Result, error) {
	return model.solveSimplex(C.GLP_DUALP)
}

func (model *Model) solveSimplex(method C.int) (*Result, error) {
	model.loadMatrix()

	var parm C.glp_smcp
	C.glp_init_smcp(&parm)
	parm.msg_lev = model.messageLevel()
	parm.meth = method
	parm.presolve = onOff(model.Presolve)

	if err := glpkError(C.glp_simplex(model.prob, &parm)); err != nil {
		return nil, err
	}
	return &Result{model: model}, nil
}

// SolveBranchCut solves the model with GLPK's branch-and-cut, honouring the
// integrality of the variables.
func (model *Model) SolveBranchCut() (*Result, error) {
	model.loadMatrix()

	var parm C.glp_iocp
	C.glp_init_iocp(&parm)
	parm.msg_lev = model.messageLevel()
	// glp_intopt needs an optimal LP basis unless it presolves itself
	parm.presolve = C.GLP_ON

	if err := glpkError(C.glp_intopt(model.prob, &parm)); err != nil {
		return nil, err
	}
	return &Result{model: model, mip: true}, nil
}

// Error is a failure code of glp_simplex or glp_intopt.
type Error C.int

const (
	ErrBadBasis        = Error(C.GLP_EBADB)
	ErrSingularBasis   = Error(C.GLP_ESING)
	ErrBadBounds       = Error(C.GLP_EBOUND)
	ErrEmptyModel      = Error(C.GLP_EFAIL)
	ErrIterationLimit  = Error(C.GLP_EITLIM)
	ErrTimeLimit       = Error(C.GLP_ETMLIM)
	ErrNoRootBasis     = Error(C.GLP_EROOT)
	ErrPrimalInfeasible = Error(C.GLP_ENOPFS)
	ErrDualInfeasible  = Error(C.GLP_ENODFS)
	ErrMIPGap          = Error(C.GLP_EMIPGAP)
)

func (e Error) Error() string {
	switch e {
	case ErrBadBasis:
		return "initial basis invalid"
	case ErrSingularBasis:
		return "initial basis is exactly singular"
	case ErrBadBounds:
		return "double-bounded variable has incorrect bounds"
	case ErrEmptyModel:
		return "problem instance has no rows/columns"
	case ErrIterationLimit:
		return "simplex iteration limit exceeded"
	case ErrTimeLimit:
		return "time limit exceeded"
	case ErrNoRootBasis:
		return "optimal basis for initial LP relaxation not provided and presolver not used"
	case ErrPrimalInfeasible:
		return "LP relaxation has no primal feasible solution"
	case ErrDualInfeasible:
		return "LP relaxation has no dual feasible solution"
	case ErrMIPGap:
		return "MIP gap tolerance exceeded"
	default:
		return fmt.Sprintf("glpk returned %d", int(e))
	}
}

func glpkError(code C.int) error {
	if code == 0 {
		return nil
	}
	return Error(code)
}
