// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package stencil

// Thermal diffusivities, alpha = k/(rho*cp) [m²/s]:
//
//	mercury:   cp = 0.140, rho = 13506, k = 8.69  => ~0.0619
//	copper:    cp = 0.385, rho = 8960,  k = 401   => ~0.116
//	tin:       cp = 0.227, rho = 7300,  k = 67    => ~0.040
//	aluminium: cp = 0.897, rho = 2700,  k = 237   => ~0.098
const (
	Mercury   float32 = 0.0619
	Copper    float32 = 0.116
	Tin       float32 = 0.040
	Aluminium float32 = 0.098
)

// Default discretization: 5cm square cells, 2.5ms time intervals.
const (
	DefaultH  float32 = 5e-2
	DefaultDt float32 = 2.5e-3
)

// Coeff returns the pre-scaled per-cell material coefficient
// alpha*dt/h² the stencil consumes directly.
func Coeff(alpha, dt, h float32) float32 {
	return alpha * dt / (h * h)
}

// InitTempMaterial fills a global field with the standard scenario:
// a mercury medium at 20°, a copper and a tin block at 60°, and an
// aluminium heating element at 100° across the middle. All material
// values are pre-scaled by Coeff.
func InitTempMaterial(g *Global, dt, h float32) {
	var (
		gx = g.Grid[0]
		gy = g.Grid[1]
		l  = Layout{Grid: g.Grid}
	)
	for y := 0; y < gy; y++ {
		for x := 0; x < gx; x++ {
			g.Temp[l.GlobalTemp(x, y)] = 20.0
			g.Material[l.GlobalMaterial(x, y)] = Coeff(Mercury, dt, h)
		}
	}
	// The two blocks of copper and tin.
	for y := gy / 8; y < 3*gy/8; y++ {
		for x := 5 * gx / 8; x < 7*gx/8; x++ {
			g.Temp[l.GlobalTemp(x, y)] = 60.0
			g.Material[l.GlobalMaterial(x, y)] = Coeff(Copper, dt, h)
		}
	}
	for y := 5 * gy / 8; y < 7*gy/8; y++ {
		for x := gx / 8; x < gx/2-gx/8; x++ {
			g.Temp[l.GlobalTemp(x, y)] = 60.0
			g.Material[l.GlobalMaterial(x, y)] = Coeff(Tin, dt, h)
		}
	}
	// The heating element in the middle.
	for y := gy/2 - gy/16; y <= gy/2+gy/16; y++ {
		for x := gx / 4; x <= 3*gx/4; x++ {
			g.Temp[l.GlobalTemp(x, y)] = 100.0
			g.Material[l.GlobalMaterial(x, y)] = Coeff(Aluminium, dt, h)
		}
	}
}

// ExternalHeat stamps the heating-element region back to 100° in the
// worker's current buffer. The driver applies it each step below the
// cutoff, before the halo exchange, so neighbors observe the imposed
// values the same step.
func ExternalHeat(w *Worker, step int) {
	var (
		l   = w.Layout
		gx  = l.Grid[0]
		gy  = l.Grid[1]
		cur = w.Sub.Cur(step)
	)
	for y := gy/2 - gy/16; y <= gy/2+gy/16; y++ {
		for x := gx / 4; x <= 3*gx/4; x++ {
			if l.Inside(x, y) {
				cur[l.LocalTemp(x-l.Origin[0], y-l.Origin[1])] = 100.0
			}
		}
	}
}
