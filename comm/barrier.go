// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package comm

import (
	"context"
	"sync"
)

// A barrier is a reusable rendezvous for n workers: wait returns once
// all n have arrived. Generations let the barrier be reused across
// collective operations without a reset step.
type barrier struct {
	mu      sync.Mutex
	cond    *cond
	n       int
	arrived int
	gen     int
}

func newBarrier(n int) *barrier {
	b := &barrier{n: n}
	b.cond = newCond(&b.mu)
	return b
}

// wait blocks until all n workers have entered the current generation,
// or until the context is done. A context error leaves the barrier
// unusable for the remaining workers, which is acceptable: transport
// errors abort the whole run.
func (b *barrier) wait(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	gen := b.gen
	b.arrived++
	if b.arrived == b.n {
		b.arrived = 0
		b.gen++
		b.cond.Broadcast()
		return nil
	}
	for gen == b.gen {
		if err := b.cond.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// A cond is a condition variable whose Wait can be abandoned when a
// context completes, which sync.Cond cannot do. Waiters of one
// generation share a channel that Broadcast closes.
type cond struct {
	l     sync.Locker
	waitc chan struct{}
}

func newCond(l sync.Locker) *cond {
	return &cond{l: l}
}

// Broadcast releases the current generation of waiters. The caller
// must hold the cond's lock.
func (c *cond) Broadcast() {
	if c.waitc != nil {
		close(c.waitc)
		c.waitc = nil
	}
}

// Wait blocks until the next Broadcast, releasing the cond's lock
// while blocked and reacquiring it before returning. The caller must
// hold the lock. If the context completes first, Wait returns its
// error; as with sync.Cond, a waiter must recheck its condition after
// Wait returns.
func (c *cond) Wait(ctx context.Context) error {
	if c.waitc == nil {
		c.waitc = make(chan struct{})
	}
	waitc := c.waitc
	c.l.Unlock()
	var err error
	select {
	case <-waitc:
	case <-ctx.Done():
		err = ctx.Err()
	}
	c.l.Lock()
	return err
}
