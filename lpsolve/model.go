//go:build lpsolve

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

package lpsolve

// #cgo linux CFLAGS: -I/usr/include/lpsolve
// #cgo linux LDFLAGS: -llpsolve55 -lm -ldl -lcolamd
// #cgo darwin LDFLAGS: -L/usr/local/lib -llpsolve55
// #cgo darwin CFLAGS: -I/usr/local/include
// #include <lp_lib.h>
// #include <stdlib.h>
/*
// https://golang.org/issue/19837
extern int abortCallback(lprec *lp, void *userhandle);
extern void logCallback(lprec *lp, void *userhandle, char *buf);
*/
import "C"

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"
	"unsafe"
)

type Model struct {
	mu     sync.RWMutex
	prob   *C.lprec
	vars   []*Variable
	logger Logger
	ref    unsafe.Pointer
}

type Direction C.uchar

const (
	Minimize = Direction(C.FALSE)
	Maximize = Direction(C.TRUE)
)

func (d Direction) String() string {
	if d == Maximize {
		return "maximize"
	}
	return "minimize"
}

// NewModel creates an empty model. The name is purely informational.
func NewModel(name string, dir Direction, opts ...Option) (*Model, error) {
	prob := C.make_lp(0, 0)
	if prob == nil {
		return nil, errors.New("lp_solve could not allocate a model")
	}

	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	C.set_lp_name(prob, cName)
	C.set_sense(prob, C.uchar(dir))

	model := &Model{
		prob:   prob,
		logger: noopLogger{},
	}

	for _, opt := range opts {
		if err := opt(model); err != nil {
			C.delete_lp(prob)
			return nil, fmt.Errorf("applying model option: %w", err)
		}
	}

	model.finishInitialization()

	return model, nil
}

// finishInitialization redirects lp_solve's output to the model logger and
// ties the C problem's lifetime to the Go value. The callback only gets hold
// of the logger, so the model itself stays collectable.
func (model *Model) finishInitialization() {
	model.ref = saveRef(model.logger)
	C.put_logfunc(model.prob, (*C.lphandlestr_func)(C.logCallback), model.ref)

	empty := C.CString("")
	defer C.free(unsafe.Pointer(empty))
	C.set_outputfile(model.prob, empty)

	runtime.SetFinalizer(model, finalizeModel)
}

//export logCallback
func logCallback(prob *C.lprec, loggerPtr unsafe.Pointer, msg *C.char) {
	logger, ok := loadRef(loggerPtr).(Logger)
	if !ok {
		return
	}

	logger.Print(C.GoString(msg))
}

func finalizeModel(model *Model) {
	C.delete_lp(model.prob)
	releaseRef(model.ref)
}

// Clone returns an independent copy of the model.
func (model *Model) Clone() *Model {
	model.mu.RLock()
	defer model.mu.RUnlock()

	newModel := &Model{
		prob:   C.copy_lp(model.prob),
		logger: model.logger,
		vars:   make([]*Variable, len(model.vars)),
	}
	for i, v := range model.vars {
		newModel.vars[i] = &Variable{model: newModel, index: v.index}
	}

	newModel.finishInitialization()

	return newModel
}

func (model *Model) Name() string {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return C.GoString(C.get_lp_name(model.prob))
}

func (model *Model) Direction() Direction {
	model.mu.RLock()
	defer model.mu.RUnlock()

	if C.is_maxim(model.prob) == C.TRUE {
		return Maximize
	}
	return Minimize
}

func (model *Model) VariableCount() int {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return int(C.get_Ncolumns(model.prob))
}

// Variables returns the model's variables in creation order. The slice must
// not be modified.
func (model *Model) Variables() []*Variable {
	model.mu.RLock()
	defer model.mu.RUnlock()

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

// AddIntegerVariable adds a free integer variable with objective
// coefficient 1.
func (model *Model) AddIntegerVariable(name string) (*Variable, error) {
	return model.AddDefinedVariable(name, IntegerVariable, 1, math.Inf(-1), math.Inf(1))
}

// AddDefinedVariable adds a variable with all its attributes. The bounds of
// binary variables are always [0, 1]. An empty name is replaced by a unique
// one.
func (model *Model) AddDefinedVariable(name string, varType VariableType, coefficient, lowerBound, upperBound float64) (*Variable, error) {
	model.mu.Lock()

	index := int(C.get_Ncolumns(model.prob))
	if C.add_columnex(model.prob, 0, nil, nil) != C.TRUE {
		model.mu.Unlock()
		return nil, fmt.Errorf("adding column %d", index)
	}

	v := &Variable{model: model, index: index}
	model.vars = append(model.vars, v)

	if name == "" {
		name = fmt.Sprintf("V%d", index)
	}
	cName := C.CString(name)
	C.set_col_name(model.prob, v.col(), cName)
	C.free(unsafe.Pointer(cName))

	model.mu.Unlock()

	v.SetType(varType)
	v.SetObjectiveCoefficient(coefficient)
	if varType != BinaryVariable {
		v.SetBounds(lowerBound, upperBound)
	}

	return v, nil
}

// SetObjectiveFunction sets the objective coefficient of every given
// variable, leaving the others untouched.
func (model *Model) SetObjectiveFunction(coefs []float64, vars []*Variable) error {
	if len(vars) != len(coefs) {
		return fmt.Errorf("inconsistent number of variables and coefficients: %d != %d", len(vars), len(coefs))
	}
	for i, v := range vars {
		v.SetObjectiveCoefficient(coefs[i])
	}
	return nil
}

func (model *Model) ConstraintCount() int {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return int(C.get_Nrows(model.prob))
}

// AddConstraint adds lower <= sum coefs[i]*vars[i] <= upper. Infinite bounds
// drop the corresponding side; a range becomes two rows.
func (model *Model) AddConstraint(lower, upper float64, vars []*Variable, coefs []float64) error {
	if len(vars) != len(coefs) {
		return fmt.Errorf("inconsistent number of variables and coefficients: %d != %d", len(vars), len(coefs))
	}
	if len(vars) == 0 {
		return errors.New("constraint without variables")
	}

	row := make([]C.REAL, len(vars))
	colno := make([]C.int, len(vars))
	for i, v := range vars {
		if v.model != model {
			return fmt.Errorf("variable %d belongs to another model", i)
		}
		colno[i] = v.col()
		row[i] = C.REAL(coefs[i])
	}

	model.mu.Lock()
	defer model.mu.Unlock()

	add := func(kind C.int, rhs float64) error {
		if C.add_constraintex(model.prob, C.int(len(vars)), &row[0], &colno[0], kind, C.REAL(rhs)) != C.TRUE {
			return fmt.Errorf("adding constraint %d", int(C.get_Nrows(model.prob))+1)
		}
		return nil
	}

	switch {
	case math.IsInf(lower, 0) && math.IsInf(upper, 0):
		return nil
	case math.IsInf(lower, 0):
		return add(C.LE, upper)
	case math.IsInf(upper, 0):
		return add(C.GE, lower)
	case upper == lower:
		return add(C.EQ, upper)
	default:
		if err := add(C.LE, upper); err != nil {
			return err
		}
		return add(C.GE, lower)
	}
}

// Solve searches for an optimal solution. Failures are reported as
// SolveError.
func (model *Model) Solve() (*SolveResult, error) {
	model.mu.Lock()
	defer model.mu.Unlock()

	ret := C.solve(model.prob)

	switch ret {
	case C.OPTIMAL, C.SUBOPTIMAL:
		return &SolveResult{model: model, status: SolveStatus(ret)}, nil
	default:
		return nil, SolveError(ret)
	}
}

//export abortCallback
func abortCallback(prob *C.lprec, ctxPtr unsafe.Pointer) C.int {
	ctx, ok := loadRef(ctxPtr).(context.Context)
	if ok && ctx.Err() != nil {
		return C.TRUE
	}

	return C.FALSE
}

// SolveWithContext is Solve, aborted when the context is done. The context
// error is returned in that case.
func (model *Model) SolveWithContext(ctx context.Context) (*SolveResult, error) {
	ref := saveRef(ctx)
	defer releaseRef(ref)

	C.put_abortfunc(model.prob, (*C.lphandle_intfunc)(C.abortCallback), ref)
	defer C.put_abortfunc(model.prob, nil, nil)

	res, err := model.Solve()
	if errors.Is(err, ErrUserAbort) {
		return res, ctx.Err()
	}

	return res, err
}
