// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package stencil

import "testing"

func TestMeshDims(t *testing.T) {
	for _, c := range []struct {
		nproc int
		dims  [2]int
	}{
		{1, [2]int{1, 1}},
		{2, [2]int{2, 1}},
		{3, [2]int{3, 1}},
		{4, [2]int{2, 2}},
		{6, [2]int{3, 2}},
		{8, [2]int{4, 2}},
		{12, [2]int{4, 3}},
		{16, [2]int{4, 4}},
	} {
		if got := meshDims(c.nproc); got != c.dims {
			t.Errorf("meshDims(%d): got %v, want %v", c.nproc, got, c.dims)
		}
	}
}

func TestMeshCoords(t *testing.T) {
	for rank := 0; rank < 8; rank++ {
		m := NewMesh(8, rank)
		if got, want := m.Dims, [2]int{4, 2}; got != want {
			t.Fatalf("rank %d: dims %v, want %v", rank, got, want)
		}
		if got := m.RankAt(m.Coords[0], m.Coords[1]); got != rank {
			t.Errorf("rank %d: coords %v resolve to rank %d", rank, m.Coords, got)
		}
	}
}

func TestMeshNeighbors(t *testing.T) {
	// 2x2 mesh:
	//	0 1
	//	2 3
	for _, c := range []struct {
		rank                     int
		north, south, east, west int
	}{
		{0, NoNeighbor, 2, 1, NoNeighbor},
		{1, NoNeighbor, 3, NoNeighbor, 0},
		{2, 0, NoNeighbor, 3, NoNeighbor},
		{3, 1, NoNeighbor, NoNeighbor, 2},
	} {
		m := NewMesh(4, c.rank)
		if m.North != c.north || m.South != c.south || m.East != c.east || m.West != c.west {
			t.Errorf("rank %d: neighbors (n,s,e,w)=(%d,%d,%d,%d), want (%d,%d,%d,%d)",
				c.rank, m.North, m.South, m.East, m.West, c.north, c.south, c.east, c.west)
		}
	}
}

func TestMeshSingle(t *testing.T) {
	m := NewMesh(1, 0)
	for _, n := range []int{m.North, m.South, m.East, m.West} {
		if n != NoNeighbor {
			t.Errorf("1x1 mesh has neighbor %d", n)
		}
	}
}
