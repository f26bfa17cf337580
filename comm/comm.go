// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package comm provides the message-passing transport that connects the
// workers of a stencil mesh. Workers are identified by dense ranks
// [0, Size); all communication is point-to-point between rank pairs,
// plus a collective barrier. There is no shared memory: a payload is
// copied on send, so sender and receiver never alias a buffer.
//
// Transport failures are fatal to a run. A lock-stepped stencil
// computation has no meaningful partial-failure semantics: any
// straggler corrupts every subsequent step, so errors propagate and
// the whole mesh aborts. Accordingly there are no retries and no
// timeouts here; cancellation arrives only through the context.
package comm

import "context"

// NoPeer is the rank denoting an absent peer. Send, Recv and Exchange
// aimed at NoPeer are no-ops: they return immediately, never block, and
// leave receive buffers untouched.
const NoPeer = -1

// A Transport carries tagged messages of float32 payloads between the
// workers of one mesh. Implementations must allow concurrent calls from
// distinct ranks; calls from a single rank are issued from that
// worker's one control goroutine and need not be concurrency-safe with
// each other.
type Transport interface {
	// Rank returns the caller's rank.
	Rank() int
	// Size returns the number of workers on the transport.
	Size() int
	// Send delivers p to the worker with rank to, blocking until the
	// receiver has accepted it or the context is done.
	Send(ctx context.Context, to, tag int, p []float32) error
	// Recv fills p with a message from the worker with rank from,
	// blocking until one arrives or the context is done. The arriving
	// message must carry the given tag and exactly len(p) values.
	Recv(ctx context.Context, from, tag int, p []float32) error
	// Exchange performs a simultaneous bidirectional transfer with
	// peer: send is delivered to peer and recv is filled from it, with
	// neither direction waiting on the other locally. Both sides of a
	// pair must call Exchange with the same tag. This is the primitive
	// the halo protocol requires to stay deadlock-free on unbuffered
	// transports.
	Exchange(ctx context.Context, peer, tag int, send, recv []float32) error
	// Barrier blocks until every worker on the transport has entered
	// it. It is reusable: each rendezvous admits exactly Size workers.
	Barrier(ctx context.Context) error
}
