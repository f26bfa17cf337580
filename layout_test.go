// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package stencil

import "testing"

func TestLayout(t *testing.T) {
	m := NewMesh(4, 3) // coords (1,1) of a 2x2 mesh
	l := NewLayout([2]int{8, 8}, m)
	if got, want := l.Local, [2]int{4, 4}; got != want {
		t.Errorf("local size %v, want %v", got, want)
	}
	if got, want := l.Origin, [2]int{4, 4}; got != want {
		t.Errorf("origin %v, want %v", got, want)
	}
}

func TestLayoutIndexing(t *testing.T) {
	l := NewLayout([2]int{8, 8}, NewMesh(4, 0))
	// Global buffers are dense 8x8.
	if got, want := l.GlobalTemp(3, 2), 19; got != want {
		t.Errorf("GlobalTemp(3,2) = %d, want %d", got, want)
	}
	if got, want := l.GlobalMaterial(3, 2), 19; got != want {
		t.Errorf("GlobalMaterial(3,2) = %d, want %d", got, want)
	}
	// Local material is dense 4x4.
	if got, want := l.LocalMaterial(1, 2), 9; got != want {
		t.Errorf("LocalMaterial(1,2) = %d, want %d", got, want)
	}
	// Local temperature rows are 6 wide including ghosts; (0,0) sits
	// one row and one column in.
	if got, want := l.LocalTemp(0, 0), 7; got != want {
		t.Errorf("LocalTemp(0,0) = %d, want %d", got, want)
	}
	if got, want := l.LocalTemp(-1, -1), 0; got != want {
		t.Errorf("LocalTemp(-1,-1) = %d, want %d", got, want)
	}
	if got, want := l.LocalTemp(4, 3), 29; got != want {
		t.Errorf("LocalTemp(4,3) = %d, want %d", got, want)
	}
}

func TestLayoutInside(t *testing.T) {
	m := NewMesh(4, 3) // coords (1,1), origin (4,4)
	l := NewLayout([2]int{8, 8}, m)
	for _, c := range []struct {
		x, y int
		in   bool
	}{
		{4, 4, true},
		{7, 7, true},
		{3, 4, false},
		{4, 3, false},
		{8, 4, false},
		{0, 0, false},
	} {
		if got := l.Inside(c.x, c.y); got != c.in {
			t.Errorf("Inside(%d,%d) = %v, want %v", c.x, c.y, got, c.in)
		}
	}
}
