// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package stenciltest provides utilities for testing distributed grid
// computations over an in-process mesh. The utilities here are not
// optimized for performance; they are strictly intended for unit
// testing.
package stenciltest

import (
	"context"
	"testing"

	"github.com/grailbio/stencil"
	"github.com/grailbio/stencil/comm"
	"golang.org/x/sync/errgroup"
)

// Run builds a mesh of n workers over an in-process fabric and invokes
// fn once per worker, each on its own goroutine, waiting for all to
// finish. The root worker is given a freshly allocated global field.
// The returned slice holds the workers indexed by rank, for
// post-mortem inspection. Errors are reported as fatal to t.
func Run(t *testing.T, n int, grid [2]int, fn func(ctx context.Context, w *stencil.Worker) error) []*stencil.Worker {
	t.Helper()
	ctx := context.Background()
	endpoints := comm.NewLocal(n)
	workers := make([]*stencil.Worker, n)
	for rank := range workers {
		workers[rank] = stencil.NewWorker(grid, endpoints[rank])
	}
	workers[0].Global = stencil.NewGlobal(grid)
	g, ctx := errgroup.WithContext(ctx)
	for _, w := range workers {
		w := w
		g.Go(func() error { return fn(ctx, w) })
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	return workers
}
