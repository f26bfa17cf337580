// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package stencil

import "github.com/grailbio/base/must"

// NoNeighbor is the rank reported for a neighbor direction that falls
// outside of the mesh. The boundaries are not periodic, so workers on a
// mesh edge have no neighbor on that side; exchange operations aimed at
// NoNeighbor are no-ops.
const NoNeighbor = -1

// A Mesh describes one worker's place in the 2D arrangement of
// cooperating workers: the mesh extent, the worker's coordinates within
// it, and the ranks of its four cardinal neighbors. A Mesh is computed
// once at startup and is immutable thereafter.
type Mesh struct {
	// Dims is the extent of the mesh; Dims[0]*Dims[1] equals the
	// total worker count.
	Dims [2]int
	// Coords is this worker's coordinate pair within the mesh.
	Coords [2]int
	// Rank is this worker's rank, the row-major linearization of
	// Coords.
	Rank int
	// North, South, East and West are the ranks of the neighbors one
	// step along each axis, or NoNeighbor at a mesh edge. North is
	// toward smaller y, west toward smaller x.
	North, South, East, West int
}

// meshDims factors nproc into a near-square 2D mesh: the largest
// divisor no greater than √nproc, paired with its cofactor, wider axis
// first.
func meshDims(nproc int) [2]int {
	d := 1
	for i := 2; i*i <= nproc; i++ {
		if nproc%i == 0 {
			d = i
		}
	}
	return [2]int{nproc / d, d}
}

// NewMesh arranges nproc workers into a 2D mesh and returns the mesh as
// seen by the worker with the given rank.
func NewMesh(nproc, rank int) Mesh {
	must.Truef(nproc > 0, "mesh: invalid worker count %d", nproc)
	must.Truef(0 <= rank && rank < nproc, "mesh: rank %d out of range [0,%d)", rank, nproc)
	m := Mesh{Dims: meshDims(nproc), Rank: rank}
	m.Coords[0] = rank % m.Dims[0]
	m.Coords[1] = rank / m.Dims[0]
	m.North = m.neighbor(0, -1)
	m.South = m.neighbor(0, 1)
	m.West = m.neighbor(-1, 0)
	m.East = m.neighbor(1, 0)
	return m
}

// RankAt returns the rank of the worker at mesh coordinates (x, y).
func (m Mesh) RankAt(x, y int) int {
	return y*m.Dims[0] + x
}

func (m Mesh) neighbor(dx, dy int) int {
	x, y := m.Coords[0]+dx, m.Coords[1]+dy
	if x < 0 || x >= m.Dims[0] || y < 0 || y >= m.Dims[1] {
		return NoNeighbor
	}
	return m.RankAt(x, y)
}
