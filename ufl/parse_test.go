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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlain(t *testing.T) {
	input := `2 3
10
20.5

1 2
3 4
5 6
`
	inst, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	want := &Instance{
		Facilities:  2,
		Customers:   3,
		FixedCosts:  []float64{10, 20.5},
		AssignCosts: [][]float64{{1, 2}, {3, 4}, {5, 6}},
	}
	if diff := cmp.Diff(want, inst); diff != "" {
		t.Errorf("instance mismatch (-want +got):\n%s", diff)
	}
}

func TestParseORLib(t *testing.T) {
	input := ` 3 2
 5000 7500
 5000 7500.5
 5000 7600
 146
 6739.725 10355.05 7650.2
 87.5
 1000 2000 3000
`
	inst, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	want := &Instance{
		Facilities:  3,
		Customers:   2,
		FixedCosts:  []float64{7500, 7500.5, 7600},
		AssignCosts: [][]float64{{6739.725, 10355.05, 7650.2}, {1000, 2000, 3000}},
	}
	if diff := cmp.Diff(want, inst); diff != "" {
		t.Errorf("instance mismatch (-want +got):\n%s", diff)
	}
}

func TestParseORLibCapacityKeyword(t *testing.T) {
	input := `2 1
capacity 100
capacity 200
4
7 8
`
	inst, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 200}, inst.FixedCosts)
	assert.Equal(t, [][]float64{{7, 8}}, inst.AssignCosts)
}

func TestParseCostsSpanningLines(t *testing.T) {
	input := `3 1
1
2
3
4 5
6
`
	inst, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{4, 5, 6}}, inst.AssignCosts)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		truncated bool
		contains  string
	}{
		{"empty", "", true, "empty"},
		{"short header", "3\n", false, "line 1"},
		{"bad count", "x 2\n", false, "facility count"},
		{"zero customers", "2 0\n", false, "positive"},
		{"missing fixed costs", "2 1\n1\n", true, "fixed costs"},
		{"missing customers", "2 2\n1\n2\n3 4\n", true, "assignment costs"},
		{"bad cost", "2 1\n1\n2\n3 y\n", false, "line 4"},
		{"row too long", "2 1\n1\n2\n3 4 5\n", false, "has 3 costs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Equal(t, tt.truncated, errors.Is(err, ErrTruncated), err.Error())
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestWriteParseRoundTrip(t *testing.T) {
	inst := rotation()
	inst.FixedCosts[2] = 12.75

	var buf bytes.Buffer
	require.NoError(t, inst.Write(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "3 3\n1\n1\n12.75\n0 0 100\n"))

	got, err := Parse(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(inst, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inst.txt")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, rotation().Write(f))
	require.NoError(t, f.Close())

	inst, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, rotation(), inst)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
