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
Package ampl exports UFL instances for external AMPL/GMPL solvers.

The binary model and its LP relaxation are embedded; both read the same
parameters:

	p, r                      facility and customer counts
	setup{1..p}               fixed opening costs
	allocation{1..p, 1..r}    cost of serving customer v from facility u

WriteData produces the matching data section.
*/
package ampl

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/costela/uflcut/ufl"
)

//go:embed models/*.mod
var models embed.FS

type Kind int

const (
	Binary Kind = iota
	Relaxation
)

func (k Kind) String() string {
	switch k {
	case Binary:
		return "binary"
	case Relaxation:
		return "relaxation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// FileName is the name under which the model of kind k is embedded and
// exported.
func (k Kind) FileName() string {
	switch k {
	case Binary:
		return "ufl.mod"
	case Relaxation:
		return "ufl_relaxation.mod"
	default:
		return ""
	}
}

// Model returns the text of the embedded model.
func Model(k Kind) ([]byte, error) {
	name := k.FileName()
	if name == "" {
		return nil, fmt.Errorf("unknown model kind %v", k)
	}
	return models.ReadFile("models/" + name)
}

// ErrNegativeCost is returned for instances the models cannot accept: they
// declare setup and allocation costs >= 0.
var ErrNegativeCost = errors.New("negative cost")

func checkInstance(inst *ufl.Instance) error {
	if err := inst.Validate(); err != nil {
		return err
	}
	for u, c := range inst.FixedCosts {
		if c < 0 {
			return fmt.Errorf("setup[%d] = %s: %w", u+1, number(c), ErrNegativeCost)
		}
	}
	for v, row := range inst.AssignCosts {
		for u, c := range row {
			if c < 0 {
				return fmt.Errorf("allocation[%d, %d] = %s: %w", u+1, v+1, number(c), ErrNegativeCost)
			}
		}
	}
	return nil
}

// WriteData writes the instance as an AMPL data section with 1-based indices.
func WriteData(w io.Writer, inst *ufl.Instance) error {
	if err := checkInstance(inst); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "param p := %d;\n", inst.Facilities)
	fmt.Fprintf(bw, "param r := %d;\n\n", inst.Customers)

	bw.WriteString("param setup :=\n")
	for u, c := range inst.FixedCosts {
		fmt.Fprintf(bw, "  %d %s\n", u+1, number(c))
	}
	bw.WriteString(";\n\n")

	bw.WriteString("param allocation:")
	for v := 1; v <= inst.Customers; v++ {
		fmt.Fprintf(bw, " %d", v)
	}
	bw.WriteString(" :=\n")
	for u := 0; u < inst.Facilities; u++ {
		fmt.Fprintf(bw, "  %d", u+1)
		for v := 0; v < inst.Customers; v++ {
			fmt.Fprintf(bw, " %s", number(inst.AssignCosts[v][u]))
		}
		bw.WriteByte('\n')
	}
	bw.WriteString(";\n")

	return bw.Flush()
}

// Export writes <name>.dat and both models into dir and returns the paths
// written.
func Export(dir, name string, inst *ufl.Instance) ([]string, error) {
	if err := checkInstance(inst); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dataPath := filepath.Join(dir, name+".dat")
	f, err := os.Create(dataPath)
	if err != nil {
		return nil, err
	}
	if err := WriteData(f, inst); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing %s: %w", dataPath, err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	paths := []string{dataPath}
	for _, k := range []Kind{Binary, Relaxation} {
		text, err := Model(k)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, k.FileName())
		if err := os.WriteFile(path, text, 0o644); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func number(c float64) string {
	return strconv.FormatFloat(c, 'g', -1, 64)
}
