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
Package clusters reads the INI file describing families of generated
instances. Every section is one cluster:

	[SMALL_UFL]
	MIN_FACILITIES = 5
	MAX_FACILITIES = 10
	MIN_CUSTOMERS = 10
	MAX_CUSTOMERS = 20
	NUM_INSTANCES = 10
	MIN_FIXED_COST = 100
	MAX_FIXED_COST = 400
	MIN_ASSIGN_COST = 1
	MAX_ASSIGN_COST = 120
*/
package clusters

import (
	"errors"
	"fmt"

	"gopkg.in/ini.v1"
)

// Range is an inclusive integer interval.
type Range struct {
	Min int
	Max int
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Min, r.Max)
}

type Cluster struct {
	Name       string
	Facilities Range
	Customers  Range
	Instances  int
	FixedCost  Range
	AssignCost Range
}

var ErrNoClusters = errors.New("no clusters defined")

// Validate checks that every range is ordered and within its domain.
func (c Cluster) Validate() error {
	ranges := []struct {
		name     string
		r        Range
		minValue int
	}{
		{"facilities", c.Facilities, 1},
		{"customers", c.Customers, 1},
		{"fixed cost", c.FixedCost, 0},
		{"assignment cost", c.AssignCost, 0},
	}
	for _, rr := range ranges {
		if rr.r.Min < rr.minValue {
			return fmt.Errorf("cluster %s: minimum %s %d is below %d", c.Name, rr.name, rr.r.Min, rr.minValue)
		}
		if rr.r.Min > rr.r.Max {
			return fmt.Errorf("cluster %s: %s range %s is empty", c.Name, rr.name, rr.r)
		}
	}
	if c.Instances < 0 {
		return fmt.Errorf("cluster %s: negative instance count %d", c.Name, c.Instances)
	}
	return nil
}

// Load parses the cluster file. Clusters with missing or malformed keys are
// reported in the returned error, joined, while every valid cluster is still
// returned in file order.
func Load(path string) ([]Cluster, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading cluster file: %w", err)
	}
	return parse(cfg)
}

// LoadBytes is Load for in-memory content.
func LoadBytes(data []byte) ([]Cluster, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading cluster file: %w", err)
	}
	return parse(cfg)
}

func parse(cfg *ini.File) ([]Cluster, error) {
	var (
		out  []Cluster
		errs []error
	)
	for _, sec := range cfg.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		c, err := fromSection(sec)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 && len(errs) == 0 {
		return nil, ErrNoClusters
	}
	return out, errors.Join(errs...)
}

func fromSection(sec *ini.Section) (Cluster, error) {
	c := Cluster{Name: sec.Name()}

	fields := []struct {
		key string
		dst *int
	}{
		{"MIN_FACILITIES", &c.Facilities.Min},
		{"MAX_FACILITIES", &c.Facilities.Max},
		{"MIN_CUSTOMERS", &c.Customers.Min},
		{"MAX_CUSTOMERS", &c.Customers.Max},
		{"NUM_INSTANCES", &c.Instances},
		{"MIN_FIXED_COST", &c.FixedCost.Min},
		{"MAX_FIXED_COST", &c.FixedCost.Max},
		{"MIN_ASSIGN_COST", &c.AssignCost.Min},
		{"MAX_ASSIGN_COST", &c.AssignCost.Max},
	}
	for _, f := range fields {
		if !sec.HasKey(f.key) {
			return c, fmt.Errorf("cluster %s: missing key %s", c.Name, f.key)
		}
		v, err := sec.Key(f.key).Int()
		if err != nil {
			return c, fmt.Errorf("cluster %s: key %s: %w", c.Name, f.key, err)
		}
		*f.dst = v
	}

	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}
