// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Heatsim runs a distributed explicit finite-difference simulation of
// the 2D heat equation: a mesh of workers advances a shared temperature
// grid in lock step, exchanging ghost-cell halos every timestep, and
// periodically writes BMP snapshots of the gathered global field.
//
// Snapshot output may name a local directory or an s3:// prefix.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/file/s3file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/stencil"
	"github.com/grailbio/stencil/snapshot"
)

func init() {
	file.RegisterImplementation("s3", func() file.Implementation {
		return s3file.NewImplementation(
			s3file.NewDefaultProvider(session.Options{}), s3file.Options{})
	})
}

var (
	width    = flag.Int("width", 256, "global grid width")
	height   = flag.Int("height", 256, "global grid height")
	workers  = flag.Int("p", runtime.GOMAXPROCS(0), "number of workers in the mesh")
	steps    = flag.Int("steps", 10000, "number of timesteps to run")
	cutoff   = flag.Int("cutoff", 5000, "step at which the external heat source switches off")
	cadence  = flag.Int("snapshot", 500, "snapshot cadence in steps (0 disables)")
	out      = flag.String("out", "data", "snapshot output prefix (directory or URL)")
	cellsize = flag.Float64("h", float64(stencil.DefaultH), "cell size in meters")
	timestep = flag.Float64("dt", float64(stencil.DefaultDt), "time interval in seconds")
)

func main() {
	log.AddFlags()
	flag.Parse()
	if *cadence > 0 && !strings.Contains(*out, "://") {
		if err := os.MkdirAll(*out, 0777); err != nil {
			log.Fatal(err)
		}
	}
	ctx := context.Background()
	dt, h := float32(*timestep), float32(*cellsize)
	params := stencil.Params{
		Grid:          [2]int{*width, *height},
		Workers:       *workers,
		Steps:         *steps,
		Cutoff:        *cutoff,
		SnapshotEvery: *cadence,
		Init: func(g *stencil.Global) {
			stencil.InitTempMaterial(g, dt, h)
		},
		Heat: stencil.ExternalHeat,
		Snapshot: func(g *stencil.Global, step int) error {
			path := fmt.Sprintf("%s/%04d.bmp", *out, step / *cadence)
			if err := snapshot.Write(ctx, path, g.Temp, g.Grid[0], g.Grid[1]); err != nil {
				return err
			}
			log.Printf("snapshot at step %d: %s", step, path)
			return nil
		},
	}
	if err := stencil.Run(ctx, params); err != nil {
		log.Fatal(err)
	}
}
