// cmd/skymap/main.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// This file contains the implementation of the main() function, which
// loads the configuration, generates traffic, and then either runs the
// interactive map or one of the batch modes.

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mmp/skymap/pkg/declutter"
	"github.com/mmp/skymap/pkg/flight"
	"github.com/mmp/skymap/pkg/log"
	"github.com/mmp/skymap/pkg/math"
	"github.com/mmp/skymap/pkg/rand"
	"github.com/mmp/skymap/pkg/util"

	"github.com/goforj/godump"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	logLevel    = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir      = flag.String("logdir", "", "log file directory")
	configFile  = flag.String("config", "", "JSON configuration file (default: user config directory)")
	dotenvFile  = flag.String("env", ".env", "file with SKYMAP_* environment overrides")
	seed        = flag.Int64("seed", 0, "random seed for simulated traffic (0: random)")
	zoom        = flag.Int("zoom", 0, "initial zoom level")
	index       = flag.String("index", "", "declutter spatial index: bruteforce, rtree")
	home        = flag.String("home", "", "home position, e.g. \"40.64, -73.78\"")
	exportFile  = flag.String("export", "", "write the decluttered layout to the given .json, .msgpack, or .msgpack.zst file and exit")
	search      = flag.String("search", "", "callsign or flight id to center the map on at startup")
	benchCount  = flag.Int("bench", 0, "benchmark the declutter engine with the given number of aircraft and exit")
	metricsFile = flag.String("metrics", "", "write declutter metrics to the given file on exit")
	showConfig  = flag.Bool("showconfig", false, "print the effective configuration and exit")
	cpuprofile  = flag.String("cpuprofile", "", "write CPU profile to file")
	memprofile  = flag.String("memprofile", "", "write memory profile to this file")
)

func main() {
	flag.Parse()

	// Initialize the logging system first and foremost.
	lg := log.New(*logLevel, *logDir)

	if err := run(lg); err != nil {
		lg.Errorf("%v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(lg *log.Logger) error {
	profiler, err := util.CreateProfiler(*cpuprofile, *memprofile)
	if err != nil {
		lg.Errorf("%v", err)
	}
	defer profiler.Cleanup()

	config, err := loadConfig(lg)
	if err != nil {
		return err
	}

	if *showConfig {
		godump.Fdump(os.Stdout, config)
		return nil
	}

	if *metricsFile != "" {
		defer func() {
			if err := prometheus.WriteToTextfile(*metricsFile, prometheus.DefaultGatherer); err != nil {
				lg.Errorf("%s: %v", *metricsFile, err)
			}
		}()
	}

	engine := declutter.NewEngine(config.EngineOptions(lg))

	if *benchCount > 0 {
		return runBench(os.Stdout, engine, *benchCount, config.Seed, lg)
	}

	s := config.Seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	flights := config.Filter.Apply(flight.Generate(rand.NewSeeded(s)))
	lg.Info("generated traffic", "seed", s, "flights", len(flights))

	if *exportFile != "" {
		format, err := ExportFormatForFilename(*exportFile)
		if err != nil {
			return err
		}
		ex := MakeExport(engine, config.Zoom, s, flights)
		return WriteExportFile(*exportFile, format, ex, lg)
	}

	cache, err := declutter.NewCache(engine, config.CacheSize)
	if err != nil {
		return err
	}
	return runMap(config, flights, cache, *search, lg)
}

// loadConfig returns the configuration after applying the config file,
// environment, and command-line overrides, in that order.
func loadConfig(lg *log.Logger) (*Config, error) {
	fn, required := *configFile, true
	if fn == "" {
		fn, required = configFilePath(lg), false
	}
	config, err := LoadConfig(fn, required, lg)
	if err != nil {
		return nil, err
	}

	var e util.ErrorLogger

	if env, err := LoadEnv(*dotenvFile); err != nil {
		e.Error(err)
	} else {
		config.ApplyEnv(env, &e)
	}

	e.Push("command line")
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			config.Seed = *seed
		case "zoom":
			config.Zoom = *zoom
		case "index":
			if k, err := declutter.ParseIndex(*index); err != nil {
				e.Error(err)
			} else {
				config.Index = k
			}
		case "home":
			if p, err := math.ParseLatLong([]byte(*home)); err != nil {
				e.ErrorString("-home: %v", err)
			} else {
				config.Home = p
			}
		}
	})
	e.Pop()

	config.Validate(&e)

	if e.HaveErrors() {
		e.PrintErrors(os.Stderr, lg)
		return nil, errors.New("invalid configuration")
	}

	lg.Debug("loaded config", "zoom", config.Zoom, "seed", strconv.FormatInt(config.Seed, 10),
		"index", config.Index.String(), "cache_size", config.CacheSize)
	return config, nil
}
