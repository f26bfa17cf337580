// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

/*
	Package stencil implements a distributed explicit finite-difference
	solver for the 2D heat-diffusion equation. A fleet of equal-role
	workers, arranged in a 2D mesh, cooperatively advances a fixed-size
	temperature grid: each worker owns one rectangular subdomain and
	keeps its borders consistent with its four cardinal neighbors by
	exchanging ghost-cell halos before every timestep.

	The global field lives on a single root worker. At startup the root
	scatters the field into per-worker blocks; at snapshot intervals it
	gathers them back so a consistent global state can be rendered or
	inspected. All movement of grid data between differently-strided
	storage layouts is described by region transfer descriptors (package
	stencil's Region), computed once from the decomposition geometry.

	Workers communicate only by message passing through the transport
	abstraction in package comm. The in-process transport comm.Local
	runs a whole mesh inside one process, one goroutine per worker;
	the Run driver uses it to execute complete simulations, and it is
	also the substrate for the package's tests.
*/
package stencil
