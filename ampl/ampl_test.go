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

package ampl

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costela/uflcut/ufl"
)

func instance() *ufl.Instance {
	return &ufl.Instance{
		Facilities:  2,
		Customers:   3,
		FixedCosts:  []float64{10, 20.5},
		AssignCosts: [][]float64{{1, 2}, {3, 4}, {5, 6}},
	}
}

func TestModels(t *testing.T) {
	for _, k := range []Kind{Binary, Relaxation} {
		t.Run(k.String(), func(t *testing.T) {
			text, err := Model(k)
			require.NoError(t, err)
			s := string(text)
			for _, decl := range []string{"param p", "param r", "param setup", "param allocation", "minimize TotalCost", "subject to Assign", "subject to Link"} {
				assert.Contains(t, s, decl)
			}
		})
	}

	bin, _ := Model(Binary)
	assert.Contains(t, string(bin), "binary")
	relax, _ := Model(Relaxation)
	assert.NotContains(t, string(relax), "binary")

	_, err := Model(Kind(9))
	assert.Error(t, err)
}

func TestWriteData(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteData(&buf, instance()))

	want := `param p := 2;
param r := 3;

param setup :=
  1 10
  2 20.5
;

param allocation: 1 2 3 :=
  1 1 3 5
  2 2 4 6
;
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteDataInvalid(t *testing.T) {
	inst := instance()
	inst.FixedCosts = inst.FixedCosts[:1]
	assert.Error(t, WriteData(&bytes.Buffer{}, inst))
}

func TestNegativeCosts(t *testing.T) {
	inst := instance()
	inst.FixedCosts[1] = -1
	err := WriteData(&bytes.Buffer{}, inst)
	assert.ErrorIs(t, err, ErrNegativeCost)
	assert.ErrorContains(t, err, "setup[2]")

	inst = instance()
	inst.AssignCosts[2][0] = -0.5
	assert.ErrorIs(t, WriteData(&bytes.Buffer{}, inst), ErrNegativeCost)

	dir := filepath.Join(t.TempDir(), "ampl")
	_, err = Export(dir, "negative", inst)
	assert.ErrorIs(t, err, ErrNegativeCost)
	assert.NoDirExists(t, dir)
}

func TestExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ampl")
	paths, err := Export(dir, "inst_SMALL_UFL_1", instance())
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "inst_SMALL_UFL_1.dat"),
		filepath.Join(dir, "ufl.mod"),
		filepath.Join(dir, "ufl_relaxation.mod"),
	}, paths)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "param p := 2;"))

	model, err := os.ReadFile(paths[2])
	require.NoError(t, err)
	embedded, _ := Model(Relaxation)
	assert.Equal(t, embedded, model)
}
