// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package stencil

// Step advances the subdomain one FTCS (forward-time, centered-space)
// timestep: for every interior cell,
//
//	out = in + mat*(E + W + N + S - 4*in)
//
// where mat is the per-cell material coefficient, pre-scaled to
// alpha*dt/h² at initialization. The update reads the current buffer
// and writes only the next one; callers must have exchanged halos for
// this step first, since the edge cells read their ghost neighbors.
//
// The explicit scheme is stable only while every material coefficient
// is at most 0.25. That is a property of the initial conditions, not
// checked here.
func (w *Worker) Step(step int) {
	var (
		in  = w.Sub.Cur(step)
		out = w.Sub.Next(step)
		mat = w.Sub.Material
		l   = w.Layout
	)
	for y := 0; y < l.Local[1]; y++ {
		for x := 0; x < l.Local[0]; x++ {
			t := in[l.LocalTemp(x, y)]
			out[l.LocalTemp(x, y)] = t + mat[l.LocalMaterial(x, y)]*
				(in[l.LocalTemp(x+1, y)]+
					in[l.LocalTemp(x-1, y)]+
					in[l.LocalTemp(x, y+1)]+
					in[l.LocalTemp(x, y-1)]-
					4*t)
		}
	}
}
