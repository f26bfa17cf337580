// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package stencil

import (
	"fmt"
	"strings"
)

// A Global holds the full-grid material and temperature fields. It
// exists only on the root worker; no other worker ever holds a
// reference to one, so access needs no locking. Neither buffer carries
// a ghost border. Buffers are addressed exclusively through Layout's
// GlobalTemp and GlobalMaterial mappers.
type Global struct {
	Grid     [2]int
	Material []float32
	Temp     []float32
}

// NewGlobal allocates a zeroed global field of the given extent.
func NewGlobal(grid [2]int) *Global {
	n := grid[0] * grid[1]
	return &Global{
		Grid:     grid,
		Material: make([]float32, n),
		Temp:     make([]float32, n),
	}
}

// A Subdomain holds one worker's share of the fields: a dense material
// buffer and a pair of temperature buffers that alternate roles as
// current and next by step parity. The temperature buffers carry a
// ghost border of width 1 on every side; the material buffer carries
// none. Ownership is exclusive to the worker.
type Subdomain struct {
	Layout   Layout
	Material []float32
	Temp     [2][]float32
}

// NewSubdomain allocates zeroed local buffers for layout l.
func NewSubdomain(l Layout) *Subdomain {
	halo := (l.Local[0] + 2) * (l.Local[1] + 2)
	return &Subdomain{
		Layout:   l,
		Material: make([]float32, l.Local[0]*l.Local[1]),
		Temp:     [2][]float32{make([]float32, halo), make([]float32, halo)},
	}
}

// DebugString renders the current temperature buffer at the given
// step, ghost border included, one row per line. It is meant for
// debugging small meshes.
func (s *Subdomain) DebugString(step int) string {
	var (
		b   strings.Builder
		l   = s.Layout
		cur = s.Cur(step)
	)
	for y := -1; y <= l.Local[1]; y++ {
		for x := -1; x <= l.Local[0]; x++ {
			fmt.Fprintf(&b, "%5.1f ", cur[l.LocalTemp(x, y)])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Cur returns the temperature buffer holding the current state at the
// given step.
func (s *Subdomain) Cur(step int) []float32 {
	return s.Temp[step%2]
}

// Next returns the temperature buffer the given step writes into.
func (s *Subdomain) Next(step int) []float32 {
	return s.Temp[(step+1)%2]
}
