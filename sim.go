// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package stencil

import (
	"context"
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/must"
	"github.com/grailbio/base/status"
	"github.com/grailbio/stencil/comm"
	"golang.org/x/sync/errgroup"
)

// rootRank identifies the worker that owns the global field and acts
// as the hub of scatter and gather operations.
const rootRank = 0

// Message tags. The halo phases share one tag per axis because an
// exchange with a north neighbor pairs with that neighbor's south
// exchange; directed channels disambiguate the rest.
const (
	tagHaloVert = iota + 1
	tagHaloHoriz
	tagScatterMaterial
	tagScatterTemp
	tagGatherTemp
)

// Params configures a simulation run.
type Params struct {
	// Grid is the extent of the global grid. Both axes must divide
	// evenly by the mesh the worker count factors into.
	Grid [2]int
	// Workers is the number of workers in the mesh.
	Workers int
	// Steps is the number of timesteps to run.
	Steps int
	// Cutoff is the step at which the external heat source switches
	// off. Heat is applied for steps < Cutoff.
	Cutoff int
	// SnapshotEvery is the snapshot cadence in steps; 0 disables
	// snapshotting entirely.
	SnapshotEvery int
	// Init populates the root's global field before the initial
	// scatter. Material values must already be pre-scaled by
	// alpha*dt/h². May be nil, leaving the field zeroed.
	Init func(*Global)
	// Heat, if non-nil, stamps externally imposed temperatures into a
	// worker's current buffer at the start of each step below Cutoff.
	Heat func(*Worker, int)
	// Snapshot, if non-nil, is invoked on the root worker with the
	// freshly gathered global field at every snapshot step.
	Snapshot func(*Global, int) error
	// Status optionally receives per-worker progress.
	Status *status.Status
}

// A Worker is one member of the mesh: its topology and layout context,
// its subdomain, and its endpoint on the transport. The root worker
// additionally holds the global field and the displacement table.
type Worker struct {
	Mesh   Mesh
	Layout Layout
	Sub    *Subdomain
	// Global is the global field; nil on every worker but the root.
	Global *Global

	trans   comm.Transport
	regions Regions
	displs  *DisplacementTable

	// Scratch buffers for the halo exchange, sized once.
	rowSend, rowRecv []float32
	colSend, colRecv []float32
}

// NewWorker builds the worker owning rank t.Rank() of a grid-sized
// computation over t's mesh. The caller provides the root worker's
// global field separately, since only one worker holds it.
func NewWorker(grid [2]int, t comm.Transport) *Worker {
	w := &Worker{
		Mesh:  NewMesh(t.Size(), t.Rank()),
		trans: t,
	}
	w.Layout = NewLayout(grid, w.Mesh)
	w.Sub = NewSubdomain(w.Layout)
	w.regions = MakeRegions(w.Layout)
	if w.Mesh.Rank == rootRank {
		w.displs = NewDisplacementTable(w.Mesh, w.Layout)
	}
	w.rowSend = make([]float32, w.regions.BorderRow.Len())
	w.rowRecv = make([]float32, w.regions.BorderRow.Len())
	w.colSend = make([]float32, w.regions.BorderCol.Len())
	w.colRecv = make([]float32, w.regions.BorderCol.Len())
	return w
}

// Run executes a complete simulation over an in-process mesh: it
// allocates the transport fabric, starts one goroutine per worker, and
// runs the step loop on each until Steps have completed or a worker
// fails. A worker failure cancels the shared context, aborting the
// rest of the mesh at its next transport operation.
func Run(ctx context.Context, p Params) error {
	must.Truef(p.Workers > 0, "run: invalid worker count %d", p.Workers)
	must.Truef(p.Steps >= 0, "run: invalid step count %d", p.Steps)
	endpoints := comm.NewLocal(p.Workers)
	var group *status.Group
	if p.Status != nil {
		group = p.Status.Group("stencil")
	}
	g, ctx := errgroup.WithContext(ctx)
	for rank := 0; rank < p.Workers; rank++ {
		trans := endpoints[rank]
		g.Go(func() error {
			w := NewWorker(p.Grid, trans)
			if w.Mesh.Rank == rootRank {
				w.Global = NewGlobal(p.Grid)
				if p.Init != nil {
					p.Init(w.Global)
				}
			}
			return w.run(ctx, p, group)
		})
	}
	return g.Wait()
}

// run is the per-worker driver loop: seed the subdomain from the root,
// then per step impose external heat, exchange halos, advance the
// stencil, and at snapshot intervals join the collective gather.
func (w *Worker) run(ctx context.Context, p Params, group *status.Group) error {
	var task *status.Task
	if group != nil {
		task = group.Start()
		task.Title(fmt.Sprintf("worker %d (%d,%d)", w.Mesh.Rank, w.Mesh.Coords[0], w.Mesh.Coords[1]))
		task.Print("scattering")
		defer task.Done()
	}
	if err := w.ScatterMaterial(ctx); err != nil {
		return errors.E(fmt.Sprintf("worker %d: scatter material", w.Mesh.Rank), err)
	}
	if err := w.ScatterTemp(ctx); err != nil {
		return errors.E(fmt.Sprintf("worker %d: scatter temperature", w.Mesh.Rank), err)
	}
	for step := 0; step < p.Steps; step++ {
		if p.Heat != nil && step < p.Cutoff {
			p.Heat(w, step)
		}
		if err := w.ExchangeHalo(ctx, step); err != nil {
			return errors.E(fmt.Sprintf("worker %d: halo exchange at step %d", w.Mesh.Rank, step), err)
		}
		w.Step(step)
		if p.SnapshotEvery > 0 && step%p.SnapshotEvery == 0 {
			// Gather the buffer the step just wrote, so the snapshot
			// reflects the post-step state.
			if err := w.GatherTemp(ctx, step+1); err != nil {
				return errors.E(fmt.Sprintf("worker %d: gather at step %d", w.Mesh.Rank, step), err)
			}
			if w.Mesh.Rank == rootRank && p.Snapshot != nil {
				if err := p.Snapshot(w.Global, step); err != nil {
					return errors.E(fmt.Sprintf("snapshot at step %d", step), err)
				}
				log.Debug.Printf("snapshot at step %d", step)
			}
			if task != nil {
				task.Printf("step %d/%d", step, p.Steps)
			}
		}
	}
	return nil
}
