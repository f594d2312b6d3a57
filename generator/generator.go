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

// Package generator writes random UFL instances for the clusters of a
// cluster file.
package generator

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/costela/uflcut/clusters"
	"github.com/costela/uflcut/ufl"
)

type Logger interface {
	Print(v ...interface{})
}

type noopLogger struct{}

func (noopLogger) Print(v ...interface{}) {}

// Generator draws instances from a seeded random stream.
type Generator struct {
	seed   uint64
	logger Logger
}

type Option func(*Generator)

// WithSeed fixes the seed of every cluster stream. 0 seeds from the clock.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

func WithLogger(logger Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

func New(opts ...Option) *Generator {
	g := &Generator{logger: noopLogger{}}
	for _, opt := range opts {
		opt(g)
	}
	if g.seed == 0 {
		g.seed = uint64(time.Now().UnixNano())
	}
	return g
}

// Seed returns the seed in use, so that clock-seeded runs can be repeated.
func (g *Generator) Seed() uint64 { return g.seed }

// Instance draws a single instance with sizes and costs uniform in the
// cluster's inclusive ranges.
func Instance(c clusters.Cluster, rng *rand.Rand) *ufl.Instance {
	p := uniform(rng, c.Facilities)
	r := uniform(rng, c.Customers)

	inst := &ufl.Instance{
		Facilities:  p,
		Customers:   r,
		FixedCosts:  make([]float64, p),
		AssignCosts: make([][]float64, r),
	}
	for u := range inst.FixedCosts {
		inst.FixedCosts[u] = float64(uniform(rng, c.FixedCost))
	}
	for v := range inst.AssignCosts {
		row := make([]float64, p)
		for u := range row {
			row[u] = float64(uniform(rng, c.AssignCost))
		}
		inst.AssignCosts[v] = row
	}
	return inst
}

func uniform(rng *rand.Rand, r clusters.Range) int {
	return r.Min + rng.IntN(r.Max-r.Min+1)
}

// InstanceName is the base name of the i-th instance of a cluster, counted
// from 0.
func InstanceName(cluster string, i int) string {
	return fmt.Sprintf("inst_%s_%d", cluster, i)
}

// GenerateCluster writes the cluster's instances to dir/<cluster>/ and
// returns the paths written.
func GenerateCluster(ctx context.Context, dir string, c clusters.Cluster, rng *rand.Rand) ([]string, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	clusterDir := filepath.Join(dir, c.Name)
	if err := os.MkdirAll(clusterDir, 0o755); err != nil {
		return nil, fmt.Errorf("cluster %s: %w", c.Name, err)
	}

	paths := make([]string, 0, c.Instances)
	for i := 0; i < c.Instances; i++ {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path := filepath.Join(clusterDir, InstanceName(c.Name, i)+".txt")
		if err := writeInstance(path, Instance(c, rng)); err != nil {
			return paths, fmt.Errorf("cluster %s: %w", c.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeInstance(path string, inst *ufl.Instance) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return inst.Write(f)
}

// GenerateAll writes every cluster. Each cluster draws from its own stream,
// derived from the seed and the cluster name, so adding or reordering
// clusters leaves the others unchanged. A failing cluster does not stop the
// rest; all failures are returned joined.
func (g *Generator) GenerateAll(ctx context.Context, dir string, cs []clusters.Cluster) ([]string, error) {
	var (
		paths []string
		errs  []error
	)
	for _, c := range cs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		written, err := GenerateCluster(ctx, dir, c, g.stream(c.Name))
		paths = append(paths, written...)
		if err != nil {
			g.logger.Print(fmt.Sprintf("cluster %s failed: %v", c.Name, err))
			errs = append(errs, err)
			continue
		}
		g.logger.Print(fmt.Sprintf("cluster %s: %d instances written to %s", c.Name, len(written), filepath.Join(dir, c.Name)))
	}
	return paths, errors.Join(errs...)
}

func (g *Generator) stream(cluster string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(cluster))
	return rand.New(rand.NewPCG(g.seed, h.Sum64()))
}
