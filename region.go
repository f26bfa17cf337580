// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package stencil

// A Region describes how a rectangular sub-block of a flat, row-major
// buffer is laid out: Count blocks of Block contiguous values, with the
// start of consecutive blocks Stride values apart. A Region carries no
// data itself; it is pure geometric metadata, computed once from the
// decomposition and used to pack strided views into contiguous wire
// buffers and back.
//
// A Region with the wrong stride or count does not fail: it silently
// moves the wrong cells. Descriptor geometry is therefore covered
// exhaustively by tests rather than runtime checks.
type Region struct {
	Count  int // number of blocks
	Block  int // contiguous values per block
	Stride int // distance between block starts in the strided buffer
}

// Len returns the number of values the region covers.
func (r Region) Len() int {
	return r.Count * r.Block
}

// Pack copies the region rooted at offset base in the strided buffer
// src into the contiguous buffer dst, which must hold Len() values.
func (r Region) Pack(dst, src []float32, base int) {
	for i := 0; i < r.Count; i++ {
		copy(dst[i*r.Block:(i+1)*r.Block], src[base+i*r.Stride:])
	}
}

// Unpack copies the contiguous buffer src, holding Len() values, into
// the region rooted at offset base in the strided buffer dst. It is the
// inverse of Pack.
func (r Region) Unpack(dst []float32, base int, src []float32) {
	for i := 0; i < r.Count; i++ {
		copy(dst[base+i*r.Stride:base+i*r.Stride+r.Block], src[i*r.Block:])
	}
}

// Regions holds the transfer descriptors a worker needs: border lines
// for the halo exchange, and block descriptors for scattering the
// global field into subdomains and gathering it back. All are derived
// from the layout once at startup.
type Regions struct {
	// BorderRow covers one interior row of the local temperature
	// buffer: a single contiguous run of Local[0] values.
	BorderRow Region
	// BorderCol covers one interior column: Local[1] single values
	// separated by the local row stride, which includes the two ghost
	// columns.
	BorderCol Region
	// GlobalBlock covers one worker's block inside the global field:
	// Local[1] rows of Local[0] values, strided by the global row
	// length.
	GlobalBlock Region
	// LocalTemp covers the interior of a local temperature buffer,
	// strided by the ghost-inclusive local row length.
	LocalTemp Region
	// LocalMaterial covers the whole local material buffer, which has
	// no ghost border and is therefore dense.
	LocalMaterial Region
}

// MakeRegions builds the transfer descriptors for layout l.
func MakeRegions(l Layout) Regions {
	return Regions{
		BorderRow:     Region{Count: 1, Block: l.Local[0], Stride: l.Local[0]},
		BorderCol:     Region{Count: l.Local[1], Block: 1, Stride: l.Local[0] + 2},
		GlobalBlock:   Region{Count: l.Local[1], Block: l.Local[0], Stride: l.Grid[0]},
		LocalTemp:     Region{Count: l.Local[1], Block: l.Local[0], Stride: l.Local[0] + 2},
		LocalMaterial: Region{Count: l.Local[1], Block: l.Local[0], Stride: l.Local[0]},
	}
}
