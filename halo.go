// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package stencil

import (
	"context"
)

// ExchangeHalo synchronizes the ghost border of the current buffer with
// the four cardinal neighbors: each direction sends the adjacent
// interior line and receives the neighbor's into the ghost line. The
// north and south pairs complete before the east and west pairs begin.
// Directions with no neighbor are skipped outright; they neither block
// nor touch the buffer. ExchangeHalo returns only when every direction
// has completed, so the following stencil update never reads a stale
// ghost value.
//
// Each direction is a single simultaneous exchange with the peer (the
// send and the receive are issued together), so the protocol cannot
// deadlock on an unbuffered transport the way a sequential
// send-then-receive per direction would.
func (w *Worker) ExchangeHalo(ctx context.Context, step int) error {
	var (
		cur = w.Sub.Cur(step)
		l   = w.Layout
		nx  = l.Local[0]
		ny  = l.Local[1]
	)
	// Top interior row with north, then bottom with south.
	if err := w.exchangeBorder(ctx, w.Mesh.North, tagHaloVert, w.regions.BorderRow,
		cur, l.LocalTemp(0, 0), l.LocalTemp(0, -1), w.rowSend, w.rowRecv); err != nil {
		return err
	}
	if err := w.exchangeBorder(ctx, w.Mesh.South, tagHaloVert, w.regions.BorderRow,
		cur, l.LocalTemp(0, ny-1), l.LocalTemp(0, ny), w.rowSend, w.rowRecv); err != nil {
		return err
	}
	// Left interior column with west, then right with east.
	if err := w.exchangeBorder(ctx, w.Mesh.West, tagHaloHoriz, w.regions.BorderCol,
		cur, l.LocalTemp(0, 0), l.LocalTemp(-1, 0), w.colSend, w.colRecv); err != nil {
		return err
	}
	return w.exchangeBorder(ctx, w.Mesh.East, tagHaloHoriz, w.regions.BorderCol,
		cur, l.LocalTemp(nx-1, 0), l.LocalTemp(nx, 0), w.colSend, w.colRecv)
}

// exchangeBorder performs one direction of the halo protocol: pack the
// interior line at sendBase, swap it with peer, and unpack the received
// line at recvBase. With no peer it is a no-op.
func (w *Worker) exchangeBorder(ctx context.Context, peer, tag int, r Region, buf []float32, sendBase, recvBase int, send, recv []float32) error {
	if peer == NoNeighbor {
		return nil
	}
	r.Pack(send, buf, sendBase)
	if err := w.trans.Exchange(ctx, peer, tag, send, recv); err != nil {
		return err
	}
	r.Unpack(buf, recvBase, recv)
	return nil
}
