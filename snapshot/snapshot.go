// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package snapshot renders gathered temperature fields as 24-bit BMP
// images. It is a consumer of the solver's only output guarantee: at
// snapshot time the root's global field is an exactly consistent copy
// of every worker's current buffer.
package snapshot

import (
	"context"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/spaolacci/murmur3"
)

// Write encodes the w-by-h temperature field temp as a BMP image and
// writes it to path, which may name a local file or any registered
// file implementation (e.g. an s3 URL).
func Write(ctx context.Context, path string, temp []float32, w, h int) error {
	buf := Encode(temp, w, h)
	f, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	if _, err = f.Writer(ctx).Write(buf); err != nil {
		f.Discard(context.Background())
		return err
	}
	if err = f.Close(ctx); err != nil {
		return err
	}
	log.Debug.Printf("snapshot %s: %d bytes, checksum %08x", path, len(buf), murmur3.Sum32(buf))
	return nil
}

// Encode renders temp as a 24-bit uncompressed BMP. BMP stores rows
// bottom-up and pixels as BGR triples.
func Encode(temp []float32, w, h int) []byte {
	buf := make([]byte, 54+w*h*3)
	size := uint32(len(buf))
	header := []byte{
		'B', 'M',
		byte(size), byte(size >> 8), byte(size >> 16), byte(size >> 24),
		0, 0, 0, 0, 54, 0, 0, 0, 40, 0, 0, 0,
		byte(w), byte(w >> 8), 0, 0,
		byte(h), byte(h >> 8), 0, 0,
		1, 0, 24, 0,
	}
	copy(buf, header)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := 54 + ((h-y-1)*w+x)*3
			ramp(buf[p:p+3], temp[y*w+x])
		}
	}
	return buf
}

// ramp maps a temperature in [0, 100] onto a blue→green→yellow→red
// color scale, writing a BGR triple into p.
func ramp(p []byte, t float32) {
	switch {
	case t <= 25:
		p[2] = 0
		p[1] = byte(t / 25 * 255)
		p[0] = 255
	case t <= 50:
		p[2] = 0
		p[1] = 255
		p[0] = 255 - byte((t-25)/25*255)
	case t <= 75:
		p[2] = byte((t - 50) / 25 * 255)
		p[1] = 255
		p[0] = 0
	default:
		p[2] = 255
		p[1] = 255 - byte((t-75)/25*255)
		p[0] = 0
	}
}
