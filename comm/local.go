// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package comm

import (
	"context"
	"fmt"

	"github.com/grailbio/base/errors"
	"golang.org/x/sync/errgroup"
)

// A Local is one endpoint of an in-process transport fabric. The fabric
// runs a whole mesh inside a single process, one goroutine per worker,
// with an unbuffered channel per directed rank pair: a send rendezvouses
// with the matching receive, like a synchronous message-passing system.
type Local struct {
	rank int
	f    *fabric
}

type message struct {
	tag     int
	payload []float32
}

type fabric struct {
	n     int
	pipes []chan message // pipes[from*n+to]
	bar   *barrier
}

// NewLocal creates an in-process fabric connecting n workers and
// returns its endpoints, indexed by rank.
func NewLocal(n int) []*Local {
	f := &fabric{
		n:     n,
		pipes: make([]chan message, n*n),
		bar:   newBarrier(n),
	}
	for i := range f.pipes {
		f.pipes[i] = make(chan message)
	}
	endpoints := make([]*Local, n)
	for rank := range endpoints {
		endpoints[rank] = &Local{rank: rank, f: f}
	}
	return endpoints
}

// Rank implements Transport.
func (l *Local) Rank() int { return l.rank }

// Size implements Transport.
func (l *Local) Size() int { return l.f.n }

// Send implements Transport. The payload is copied before delivery so
// the caller may reuse p immediately.
func (l *Local) Send(ctx context.Context, to, tag int, p []float32) error {
	if to == NoPeer {
		return nil
	}
	if to < 0 || to >= l.f.n {
		return errors.E(errors.Invalid, fmt.Sprintf("send from %d: no such rank %d", l.rank, to))
	}
	q := make([]float32, len(p))
	copy(q, p)
	select {
	case l.f.pipes[l.rank*l.f.n+to] <- message{tag: tag, payload: q}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Recv implements Transport.
func (l *Local) Recv(ctx context.Context, from, tag int, p []float32) error {
	if from == NoPeer {
		return nil
	}
	if from < 0 || from >= l.f.n {
		return errors.E(errors.Invalid, fmt.Sprintf("recv at %d: no such rank %d", l.rank, from))
	}
	select {
	case m := <-l.f.pipes[from*l.f.n+l.rank]:
		if m.tag != tag {
			return errors.E(errors.Invalid, fmt.Sprintf("recv at %d from %d: tag %d, want %d", l.rank, from, m.tag, tag))
		}
		if len(m.payload) != len(p) {
			return errors.E(errors.Invalid, fmt.Sprintf("recv at %d from %d: %d values, want %d", l.rank, from, len(m.payload), len(p)))
		}
		copy(p, m.payload)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Exchange implements Transport by issuing the send and the receive
// concurrently and waiting for both.
func (l *Local) Exchange(ctx context.Context, peer, tag int, send, recv []float32) error {
	if peer == NoPeer {
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return l.Send(ctx, peer, tag, send) })
	g.Go(func() error { return l.Recv(ctx, peer, tag, recv) })
	return g.Wait()
}

// Barrier implements Transport.
func (l *Local) Barrier(ctx context.Context) error {
	return l.f.bar.wait(ctx)
}
