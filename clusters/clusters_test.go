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

package clusters

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoClusters = `
[SMALL_UFL]
MIN_FACILITIES = 2
MAX_FACILITIES = 4
MIN_CUSTOMERS = 3
MAX_CUSTOMERS = 5
NUM_INSTANCES = 2
MIN_FIXED_COST = 10
MAX_FIXED_COST = 20
MIN_ASSIGN_COST = 1
MAX_ASSIGN_COST = 9

[MEDIUM_UFL]
MIN_FACILITIES = 5
MAX_FACILITIES = 5
MIN_CUSTOMERS = 6
MAX_CUSTOMERS = 8
NUM_INSTANCES = 1
MIN_FIXED_COST = 0
MAX_FIXED_COST = 0
MIN_ASSIGN_COST = 3
MAX_ASSIGN_COST = 3
`

func TestLoadBytes(t *testing.T) {
	got, err := LoadBytes([]byte(twoClusters))
	require.NoError(t, err)

	want := []Cluster{
		{
			Name:       "SMALL_UFL",
			Facilities: Range{2, 4},
			Customers:  Range{3, 5},
			Instances:  2,
			FixedCost:  Range{10, 20},
			AssignCost: Range{1, 9},
		},
		{
			Name:       "MEDIUM_UFL",
			Facilities: Range{5, 5},
			Customers:  Range{6, 8},
			Instances:  1,
			FixedCost:  Range{0, 0},
			AssignCost: Range{3, 3},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("clusters mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadShippedFile(t *testing.T) {
	got, err := Load(filepath.Join("..", "configs", "clusters.ini"))
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "SMALL_UFL", got[0].Name)
	assert.Equal(t, "MEDIUM_UFL", got[1].Name)
	assert.Equal(t, "LARGE_UFL", got[2].Name)
	for _, c := range got {
		assert.NoError(t, c.Validate())
	}
}

func TestLoadKeepsValidClusters(t *testing.T) {
	content := twoClusters + `
[BROKEN]
MIN_FACILITIES = 2
MAX_FACILITIES = lots
`
	got, err := LoadBytes([]byte(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BROKEN")
	assert.Contains(t, err.Error(), "MAX_FACILITIES")
	assert.Len(t, got, 2)
}

func TestLoadMissingKey(t *testing.T) {
	_, err := LoadBytes([]byte("[ONLY]\nMIN_FACILITIES = 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing key MAX_FACILITIES")
}

func TestLoadEmpty(t *testing.T) {
	_, err := LoadBytes([]byte("; nothing here\n"))
	assert.ErrorIs(t, err, ErrNoClusters)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.ini"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Cluster{
		Name:       "X",
		Facilities: Range{1, 2},
		Customers:  Range{1, 2},
		Instances:  1,
		FixedCost:  Range{0, 1},
		AssignCost: Range{0, 1},
	}
	require.NoError(t, base.Validate())

	c := base
	c.Facilities = Range{3, 2}
	assert.Error(t, c.Validate())

	c = base
	c.Customers = Range{0, 2}
	assert.Error(t, c.Validate())

	c = base
	c.AssignCost = Range{-1, 2}
	assert.Error(t, c.Validate())

	c = base
	c.Instances = -1
	assert.Error(t, c.Validate())
}
