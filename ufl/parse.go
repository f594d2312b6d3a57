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

package ufl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrTruncated is returned when an instance file ends before all declared
// costs were read.
var ErrTruncated = errors.New("instance file ended prematurely")

type line struct {
	number int
	fields []string
}

// ParseFile reads an instance from the named file.
func ParseFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	inst, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return inst, nil
}

// Parse reads an instance in either the plain format written by Write or the
// ORLib capacitated format. Blank lines are ignored.
func Parse(r io.Reader) (*Instance, error) {
	var lines []line
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for n := 1; scanner.Scan(); n++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		lines = append(lines, line{number: n, fields: fields})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty instance: %w", ErrTruncated)
	}

	header := lines[0]
	if len(header.fields) < 2 {
		return nil, fmt.Errorf("line %d: expected facility and customer counts, got %q", header.number, strings.Join(header.fields, " "))
	}
	m, err := strconv.Atoi(header.fields[0])
	if err != nil {
		return nil, fmt.Errorf("line %d: facility count: %w", header.number, err)
	}
	n, err := strconv.Atoi(header.fields[1])
	if err != nil {
		return nil, fmt.Errorf("line %d: customer count: %w", header.number, err)
	}
	if m < 1 || n < 1 {
		return nil, fmt.Errorf("line %d: counts must be positive, got %d facilities and %d customers", header.number, m, n)
	}

	inst := &Instance{
		Facilities:  m,
		Customers:   n,
		FixedCosts:  make([]float64, 0, m),
		AssignCosts: make([][]float64, 0, n),
	}

	idx := 1
	orlib := idx < len(lines) && (len(lines[idx].fields) == 2 || strings.EqualFold(lines[idx].fields[0], "capacity"))

	for len(inst.FixedCosts) < m {
		if idx >= len(lines) {
			return nil, fmt.Errorf("reading fixed costs, got %d of %d: %w", len(inst.FixedCosts), m, ErrTruncated)
		}
		l := lines[idx]
		token := l.fields[0]
		if orlib {
			token = l.fields[len(l.fields)-1]
		}
		cost, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: fixed cost: %w", l.number, err)
		}
		inst.FixedCosts = append(inst.FixedCosts, cost)
		idx++
	}

	for len(inst.AssignCosts) < n {
		if idx >= len(lines) {
			return nil, fmt.Errorf("reading assignment costs, got %d of %d customers: %w", len(inst.AssignCosts), n, ErrTruncated)
		}

		// demand line opening a customer block
		if l := lines[idx]; len(l.fields) == 1 && (orlib || m > 1) {
			if isDemand(l.fields[0], orlib) {
				idx++
				continue
			}
		}

		row := make([]float64, 0, m)
		for len(row) < m {
			if idx >= len(lines) {
				return nil, fmt.Errorf("reading costs of customer %d: %w", len(inst.AssignCosts)+1, ErrTruncated)
			}
			l := lines[idx]
			for _, field := range l.fields {
				cost, err := strconv.ParseFloat(field, 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: assignment cost: %w", l.number, err)
				}
				row = append(row, cost)
			}
			idx++
		}
		if len(row) != m {
			return nil, fmt.Errorf("customer %d has %d costs, expected %d", len(inst.AssignCosts)+1, len(row), m)
		}
		inst.AssignCosts = append(inst.AssignCosts, row)
	}

	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// Write stores the instance in the plain format: the counts, one fixed cost
// per line and one row of assignment costs per customer.
func (inst *Instance) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", inst.Facilities, inst.Customers)
	for _, c := range inst.FixedCosts {
		fmt.Fprintln(bw, formatCost(c))
	}
	for _, row := range inst.AssignCosts {
		for u, c := range row {
			if u > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(formatCost(c))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// isDemand reports whether a lone token at the start of a customer block is a
// demand. ORLib demands may be written as floats.
func isDemand(token string, orlib bool) bool {
	if _, err := strconv.Atoi(token); err == nil {
		return true
	}
	if orlib {
		_, err := strconv.ParseFloat(token, 64)
		return err == nil
	}
	return false
}

func formatCost(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}
