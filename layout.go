// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package stencil

import "github.com/grailbio/base/must"

// A Layout describes how one worker's subdomain sits inside the global
// grid, and maps (x, y) coordinates to linear offsets in the various
// flat buffers the solver addresses. All grid storage is flat and
// row-major; the index mappers here are the only sanctioned way to
// address it, so that ghost-border offsets stay correct in one place.
//
// Local temperature buffers carry a ghost border of width 1 on every
// side; material buffers carry none. Like Mesh, a Layout is computed
// once at startup and never changes.
type Layout struct {
	// Grid is the extent of the global grid.
	Grid [2]int
	// Local is the extent of this worker's subdomain,
	// Grid[i]/Dims[i] per axis.
	Local [2]int
	// Origin is the global coordinate of the subdomain's (0, 0).
	Origin [2]int
}

// NewLayout derives the subdomain layout for the worker at m's position
// in the mesh. The grid must divide evenly along both mesh axes; an
// uneven decomposition would silently drop cells, so it aborts the
// process instead.
func NewLayout(grid [2]int, m Mesh) Layout {
	must.Truef(grid[0]%m.Dims[0] == 0 && grid[1]%m.Dims[1] == 0,
		"layout: grid %dx%d not divisible by mesh %dx%d",
		grid[0], grid[1], m.Dims[0], m.Dims[1])
	l := Layout{Grid: grid}
	l.Local[0] = grid[0] / m.Dims[0]
	l.Local[1] = grid[1] / m.Dims[1]
	l.Origin[0] = m.Coords[0] * l.Local[0]
	l.Origin[1] = m.Coords[1] * l.Local[1]
	return l
}

// GlobalTemp returns the offset of global coordinate (x, y) in the
// global temperature buffer.
func (l Layout) GlobalTemp(x, y int) int {
	return y*l.Grid[0] + x
}

// GlobalMaterial returns the offset of global coordinate (x, y) in the
// global material buffer. Material carries no ghost border at either
// level, so the mapping coincides with GlobalTemp; it is kept distinct
// so each buffer has exactly one mapper.
func (l Layout) GlobalMaterial(x, y int) int {
	return y*l.Grid[0] + x
}

// LocalMaterial returns the offset of local coordinate (x, y) in the
// worker's material buffer.
func (l Layout) LocalMaterial(x, y int) int {
	return y*l.Local[0] + x
}

// LocalTemp returns the offset of local coordinate (x, y) in a local
// temperature buffer, compensating for the ghost border. Coordinates
// -1 and Local[i] address the ghost cells.
func (l Layout) LocalTemp(x, y int) int {
	return (y+1)*(l.Local[0]+2) + x + 1
}

// Inside reports whether the global coordinate (x, y) falls within this
// worker's subdomain.
func (l Layout) Inside(x, y int) bool {
	return x >= l.Origin[0] && x < l.Origin[0]+l.Local[0] &&
		y >= l.Origin[1] && y < l.Origin[1]+l.Local[1]
}
