// cmd/skymap/bench.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"
	"io"
	"maps"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/mmp/skymap/pkg/declutter"
	"github.com/mmp/skymap/pkg/log"
	"github.com/mmp/skymap/pkg/math"
	"github.com/mmp/skymap/pkg/rand"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

var benchZooms = []int{2, 5, 10, 20, 30}

type benchResult struct {
	zoom    int
	elapsed [2]time.Duration // brute force, rtree
	moved   int
	match   bool
}

// benchEntities returns n entities grouped into a handful of tight
// clusters so that the declutter engine has real work to do.
func benchEntities(n int, seed int64) []declutter.Entity {
	r := rand.NewSeeded(seed)

	nc := max(1, n/50)
	centers := make([]math.Point2LL, nc)
	for i := range centers {
		centers[i] = math.Point2LL{r.Uniform(-170, 170), r.Uniform(-60, 70)}
	}

	ents := make([]declutter.Entity, n)
	for i := range ents {
		c := centers[r.Intn(nc)]
		ents[i] = declutter.Entity{
			ID:       fmt.Sprintf("B%05d", i),
			Position: math.Point2LL{c[0] + r.Uniform(-3, 3), c[1] + r.Uniform(-2, 2)},
		}
	}
	return ents
}

func runBench(w io.Writer, engine *declutter.Engine, n int, seed int64, lg *log.Logger) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	ents := benchEntities(n, seed)

	engines := [2]*declutter.Engine{
		declutter.NewEngine(declutter.Options{Iterations: engine.Iterations(), Index: declutter.IndexBruteForce}),
		declutter.NewEngine(declutter.Options{Iterations: engine.Iterations(), Index: declutter.IndexRTree}),
	}

	var results []benchResult
	for _, z := range benchZooms {
		res := benchResult{zoom: z}
		var layouts [2]declutter.Layout
		for i, e := range engines {
			start := time.Now()
			layouts[i] = e.Layout(z, ents)
			res.elapsed[i] = time.Since(start)
		}
		res.match = maps.Equal(layouts[0], layouts[1])
		for _, o := range layouts[0] {
			if o != (declutter.Offset{}) {
				res.moved++
			}
		}
		results = append(results, res)

		lg.Debug("bench", "zoom", z, "bruteforce", res.elapsed[0], "rtree", res.elapsed[1], "match", res.match)
	}

	writeHostInfo(w, lg)
	fmt.Fprintf(w, "%d entities, %d iterations, seed %d\n\n", n, engine.Iterations(), seed)

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "zoom\tbruteforce\trtree\tmoved\tmatch\t")
	mismatch := false
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%v\t\n", r.zoom, r.elapsed[0].Round(time.Microsecond),
			r.elapsed[1].Round(time.Microsecond), r.moved, r.match)
		mismatch = mismatch || !r.match
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if mismatch {
		return fmt.Errorf("bench: spatial index layouts differ from brute force")
	}
	return nil
}

func writeHostInfo(w io.Writer, lg *log.Logger) {
	model := "unknown"
	if info, err := cpu.Info(); err != nil {
		lg.Warnf("cpu info: %v", err)
	} else if len(info) > 0 {
		model = info[0].ModelName
	}

	cores, err := cpu.Counts(true)
	if err != nil {
		lg.Warnf("cpu counts: %v", err)
		cores = runtime.NumCPU()
	}

	var totalMB uint64
	if vm, err := mem.VirtualMemory(); err != nil {
		lg.Warnf("virtual memory: %v", err)
	} else {
		totalMB = vm.Total / (1024 * 1024)
	}

	lg.Info("bench host", "cpu", model, "cores", cores, "memory_mb", totalMB, "go", runtime.Version())
	fmt.Fprintf(w, "%s, %d cores, %d MB, %s/%s %s\n", model, cores, totalMB,
		runtime.GOOS, runtime.GOARCH, runtime.Version())
}
