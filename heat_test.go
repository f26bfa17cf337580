// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package stencil

import (
	"math"
	"testing"

	"github.com/grailbio/stencil/comm"
)

func TestCoeff(t *testing.T) {
	// With the default discretization dt/h² is 1 up to rounding, so
	// the coefficient is the diffusivity.
	if got := Coeff(Mercury, DefaultDt, DefaultH); math.Abs(float64(got-Mercury)) > 1e-7 {
		t.Errorf("got %v, want ~%v", got, Mercury)
	}
	// Stability bound for the explicit scheme.
	for _, alpha := range []float32{Mercury, Copper, Tin, Aluminium} {
		if c := Coeff(alpha, DefaultDt, DefaultH); c > 0.25 {
			t.Errorf("coefficient %v exceeds stability bound", c)
		}
	}
}

// TestInitTempMaterial checks the standard scenario's block geometry
// and Coeff-scaled material values at representative cells of a 16x16
// grid: copper block [10,14)x[2,6), tin block [2,6)x[10,14), heating
// element [4,12]x[7,9] with inclusive ends, mercury elsewhere.
func TestInitTempMaterial(t *testing.T) {
	var (
		g  = NewGlobal([2]int{16, 16})
		dt = DefaultDt
		h  = DefaultH
		l  = Layout{Grid: g.Grid}
	)
	InitTempMaterial(g, dt, h)
	for _, c := range []struct {
		x, y  int
		temp  float32
		alpha float32
	}{
		{0, 0, 20, Mercury},     // background
		{15, 15, 20, Mercury},   // background, far corner
		{10, 2, 60, Copper},     // copper block, min corner
		{13, 5, 60, Copper},     // copper block, max corner
		{14, 2, 20, Mercury},    // just east of copper
		{10, 6, 20, Mercury},    // just south of copper
		{2, 10, 60, Tin},        // tin block, min corner
		{5, 13, 60, Tin},        // tin block, max corner
		{6, 10, 20, Mercury},    // just east of tin
		{4, 7, 100, Aluminium},  // heating element, min corner
		{12, 9, 100, Aluminium}, // heating element, max corner (inclusive)
		{3, 8, 20, Mercury},     // just west of the element
		{13, 8, 20, Mercury},    // just east of the element
		{8, 6, 20, Mercury},     // just north of the element
		{8, 10, 20, Mercury},    // just south of the element
	} {
		if got := g.Temp[l.GlobalTemp(c.x, c.y)]; got != c.temp {
			t.Errorf("temp(%d,%d): got %v, want %v", c.x, c.y, got, c.temp)
		}
		if got, want := g.Material[l.GlobalMaterial(c.x, c.y)], Coeff(c.alpha, dt, h); got != want {
			t.Errorf("material(%d,%d): got %v, want %v", c.x, c.y, got, want)
		}
	}
	// The element spans 9x3 cells.
	var hot int
	for _, v := range g.Temp {
		if v == 100 {
			hot++
		}
	}
	if want := 9 * 3; hot != want {
		t.Errorf("%d cells at 100°, want %d", hot, want)
	}
}

// TestExternalHeat checks that a corner worker stamps exactly the cells
// of the heating element that fall inside its subdomain.
func TestExternalHeat(t *testing.T) {
	grid := [2]int{16, 16}
	w := NewWorker(grid, comm.NewLocal(4)[3]) // coords (1,1), origin (8,8)
	fill(w.Sub.Temp[0], 20)
	fill(w.Sub.Temp[1], 20)
	ExternalHeat(w, 0)
	var (
		l       = w.Layout
		cur     = w.Sub.Cur(0)
		stamped int
	)
	for y := 0; y < l.Local[1]; y++ {
		for x := 0; x < l.Local[0]; x++ {
			var (
				gx           = l.Origin[0] + x
				gy           = l.Origin[1] + y
				want float32 = 20
			)
			if gx >= 4 && gx <= 12 && gy >= 7 && gy <= 9 {
				want = 100
			}
			got := cur[l.LocalTemp(x, y)]
			if got != want {
				t.Errorf("(%d,%d): got %v, want %v", x, y, got, want)
			}
			if got == 100 {
				stamped++
			}
		}
	}
	// The element's overlap with this subdomain: x in [8,12], y in
	// [8,9].
	if want := 5 * 2; stamped != want {
		t.Errorf("stamped %d cells, want %d", stamped, want)
	}
	// Only the current buffer is written.
	for i, v := range w.Sub.Temp[1] {
		if v != 20 {
			t.Fatalf("next buffer mutated at %d: %v", i, v)
		}
	}
}
