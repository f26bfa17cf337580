// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package stencil

import (
	"testing"

	"github.com/grailbio/stencil/comm"
)

func singleWorker(grid [2]int) *Worker {
	return NewWorker(grid, comm.NewLocal(1)[0])
}

func fill(buf []float32, v float32) {
	for i := range buf {
		buf[i] = v
	}
}

// TestStepUniform checks that the discrete Laplacian of a constant
// field is zero: a uniform field with uniform material is unchanged by
// a step.
func TestStepUniform(t *testing.T) {
	w := singleWorker([2]int{8, 8})
	fill(w.Sub.Temp[0], 20)
	fill(w.Sub.Material, 0.1)
	w.Step(0)
	l := w.Layout
	for y := 0; y < l.Local[1]; y++ {
		for x := 0; x < l.Local[0]; x++ {
			if got := w.Sub.Temp[1][l.LocalTemp(x, y)]; got != 20 {
				t.Fatalf("(%d,%d): got %v, want 20", x, y, got)
			}
		}
	}
	// The current buffer is read-only during the step.
	for i, v := range w.Sub.Temp[0] {
		if v != 20 {
			t.Fatalf("current buffer mutated at %d: %v", i, v)
		}
	}
}

// TestStepImpulse advances a single perturbed cell one step and checks
// the update against hand-computed values. The material coefficient
// 0.25 and the chosen temperatures make every intermediate exactly
// representable, so comparisons are exact.
func TestStepImpulse(t *testing.T) {
	w := singleWorker([2]int{8, 8})
	l := w.Layout
	fill(w.Sub.Temp[0], 20)
	fill(w.Sub.Material, 0.25)
	w.Sub.Temp[0][l.LocalTemp(3, 3)] = 30
	w.Step(0)
	out := w.Sub.Temp[1]
	// Center: 30 + 0.25*(4*20 - 4*30) = 20.
	if got := out[l.LocalTemp(3, 3)]; got != 20 {
		t.Errorf("center: got %v, want 20", got)
	}
	// Each cardinal neighbor: 20 + 0.25*(30+3*20 - 4*20) = 22.5.
	for _, p := range [][2]int{{2, 3}, {4, 3}, {3, 2}, {3, 4}} {
		if got := out[l.LocalTemp(p[0], p[1])]; got != 22.5 {
			t.Errorf("(%d,%d): got %v, want 22.5", p[0], p[1], got)
		}
	}
	// Diagonals are untouched by the five-point stencil.
	if got := out[l.LocalTemp(2, 2)]; got != 20 {
		t.Errorf("diagonal: got %v, want 20", got)
	}
}

// TestStepParity checks the ping-pong buffer roles: step s reads s%2
// and writes (s+1)%2.
func TestStepParity(t *testing.T) {
	w := singleWorker([2]int{4, 4})
	fill(w.Sub.Temp[0], 20)
	fill(w.Sub.Temp[1], 20)
	fill(w.Sub.Material, 0.25)
	l := w.Layout
	w.Sub.Temp[1][l.LocalTemp(1, 1)] = 24
	w.Step(1)
	// Buffer 0 is "next" at step 1.
	if got := w.Sub.Temp[0][l.LocalTemp(1, 1)]; got != 20 {
		t.Errorf("next(1,1): got %v, want 20", got)
	}
	if got := w.Sub.Temp[1][l.LocalTemp(1, 1)]; got != 24 {
		t.Errorf("cur(1,1): got %v, want 24", got)
	}
}
