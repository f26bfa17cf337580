// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package stencil

import (
	"context"

	"github.com/grailbio/base/traverse"
)

// A DisplacementTable records, for each worker, the linear offset into
// the flattened global field at which its block begins. Each worker
// owns exactly one block in this decomposition, recorded in Counts for
// fidelity with the wire-level scatter/gather shape. The table is
// computed once, on the root, by walking the mesh in row-major order.
type DisplacementTable struct {
	Offsets []int
	Counts  []int
}

// NewDisplacementTable builds the displacement table for a mesh of m's
// shape over l's grid.
func NewDisplacementTable(m Mesh, l Layout) *DisplacementTable {
	t := &DisplacementTable{
		Offsets: make([]int, m.Dims[0]*m.Dims[1]),
		Counts:  make([]int, m.Dims[0]*m.Dims[1]),
	}
	for y := 0; y < m.Dims[1]; y++ {
		for x := 0; x < m.Dims[0]; x++ {
			rank := m.RankAt(x, y)
			t.Offsets[rank] = y*l.Local[1]*l.Grid[0] + x*l.Local[0]
			t.Counts[rank] = 1
		}
	}
	return t
}

// ScatterMaterial distributes the root's global material field into
// every worker's dense local material buffer. The operation is
// collective: all workers must call it, and none returns before all
// have received their block.
func (w *Worker) ScatterMaterial(ctx context.Context) error {
	err := w.scatter(ctx, tagScatterMaterial, func() []float32 { return w.Global.Material },
		func(packed []float32) {
			w.regions.LocalMaterial.Unpack(w.Sub.Material, 0, packed)
		})
	if err != nil {
		return err
	}
	return w.trans.Barrier(ctx)
}

// ScatterTemp distributes the root's global temperature field into
// every worker's step-0 current buffer, at the ghost-aware offset.
// After seeding the interior, ghost cells on mesh-edge sides, which no
// halo exchange will ever write, are filled by replicating the adjacent
// interior line; both double buffers start from the same seeded state.
// Collective, like ScatterMaterial.
func (w *Worker) ScatterTemp(ctx context.Context) error {
	err := w.scatter(ctx, tagScatterTemp, func() []float32 { return w.Global.Temp },
		func(packed []float32) {
			w.regions.LocalTemp.Unpack(w.Sub.Temp[0], w.Layout.LocalTemp(0, 0), packed)
			w.seedEdgeGhosts(w.Sub.Temp[0])
			copy(w.Sub.Temp[1], w.Sub.Temp[0])
		})
	if err != nil {
		return err
	}
	return w.trans.Barrier(ctx)
}

// scatter moves one global field from the root to all workers: the
// root packs each worker's block at its displacement and sends it;
// every worker installs its packed block with install. The root's own
// block never touches the transport.
func (w *Worker) scatter(ctx context.Context, tag int, global func() []float32, install func(packed []float32)) error {
	if w.Mesh.Rank == rootRank {
		src := global()
		return traverse.Each(w.trans.Size(), func(rank int) error {
			packed := make([]float32, w.regions.GlobalBlock.Len())
			w.regions.GlobalBlock.Pack(packed, src, w.displs.Offsets[rank])
			if rank == rootRank {
				install(packed)
				return nil
			}
			return w.trans.Send(ctx, rank, tag, packed)
		})
	}
	packed := make([]float32, w.regions.GlobalBlock.Len())
	if err := w.trans.Recv(ctx, rootRank, tag, packed); err != nil {
		return err
	}
	install(packed)
	return nil
}

// GatherTemp collects every worker's current buffer for the given step
// back into the root's global temperature field, each block landing at
// its displacement. Collective; after it returns, the root's global
// field is an exactly consistent snapshot of the whole mesh. A scatter
// followed immediately by a gather reproduces the original field
// bit-for-bit, since only data movement occurs.
func (w *Worker) GatherTemp(ctx context.Context, step int) error {
	var (
		cur  = w.Sub.Cur(step)
		base = w.Layout.LocalTemp(0, 0)
	)
	if w.Mesh.Rank == rootRank {
		err := traverse.Each(w.trans.Size(), func(rank int) error {
			packed := make([]float32, w.regions.GlobalBlock.Len())
			if rank == rootRank {
				w.regions.LocalTemp.Pack(packed, cur, base)
			} else if err := w.trans.Recv(ctx, rank, tagGatherTemp, packed); err != nil {
				return err
			}
			w.regions.GlobalBlock.Unpack(w.Global.Temp, w.displs.Offsets[rank], packed)
			return nil
		})
		if err != nil {
			return err
		}
	} else {
		packed := make([]float32, w.regions.LocalTemp.Len())
		w.regions.LocalTemp.Pack(packed, cur, base)
		if err := w.trans.Send(ctx, rootRank, tagGatherTemp, packed); err != nil {
			return err
		}
	}
	return w.trans.Barrier(ctx)
}

// seedEdgeGhosts fills the ghost lines on sides that have no neighbor
// by replicating the adjacent interior line. Interior-facing ghosts are
// overwritten by every halo exchange; mesh-edge ghosts keep these
// seeded values for the whole run, so the global boundary is held at
// its initial border temperatures. Corner ghosts are never read by the
// five-point stencil and are left alone.
func (w *Worker) seedEdgeGhosts(buf []float32) {
	var (
		l  = w.Layout
		nx = l.Local[0]
		ny = l.Local[1]
	)
	if w.Mesh.North == NoNeighbor {
		for x := 0; x < nx; x++ {
			buf[l.LocalTemp(x, -1)] = buf[l.LocalTemp(x, 0)]
		}
	}
	if w.Mesh.South == NoNeighbor {
		for x := 0; x < nx; x++ {
			buf[l.LocalTemp(x, ny)] = buf[l.LocalTemp(x, ny-1)]
		}
	}
	if w.Mesh.West == NoNeighbor {
		for y := 0; y < ny; y++ {
			buf[l.LocalTemp(-1, y)] = buf[l.LocalTemp(0, y)]
		}
	}
	if w.Mesh.East == NoNeighbor {
		for y := 0; y < ny; y++ {
			buf[l.LocalTemp(nx, y)] = buf[l.LocalTemp(nx-1, y)]
		}
	}
}
