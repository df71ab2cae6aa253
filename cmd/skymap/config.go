// cmd/skymap/config.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mmp/skymap/pkg/declutter"
	"github.com/mmp/skymap/pkg/flight"
	"github.com/mmp/skymap/pkg/log"
	"github.com/mmp/skymap/pkg/math"
	"github.com/mmp/skymap/pkg/util"
	"github.com/mmp/skymap/pkg/viewport"
	"github.com/mmp/skymap/pkg/wx"

	"github.com/brunoga/deep"
	"github.com/joho/godotenv"
)

// Config holds the user's settings. It is only ever read; the map view
// does not write it back.
type Config struct {
	Zoom       int
	Seed       int64 // 0: pick a new seed each run
	Index      declutter.IndexKind
	Iterations int
	CacheSize  int

	// Home is where the 'h' key centers the map, if set.
	Home math.Point2LL

	Filter flight.Filter
	Layers wx.Layers
}

var defaultConfig = Config{
	Zoom:       viewport.DefaultZoom,
	Index:      declutter.IndexBruteForce,
	Iterations: declutter.DefaultIterations,
	CacheSize:  declutter.DefaultCacheSize,
	Filter:     flight.DefaultFilter(),
}

func DefaultConfig() *Config {
	c := deep.MustCopy(defaultConfig)
	return &c
}

func configFilePath(lg *log.Logger) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		lg.Errorf("Unable to find user config dir: %v", err)
		dir = "."
	}
	return filepath.Join(dir, "Skymap", "config.json")
}

// LoadConfig returns the configuration from the given file, starting from
// the defaults. A missing file is only an error if required is set.
func LoadConfig(fn string, required bool, lg *log.Logger) (*Config, error) {
	config := DefaultConfig()

	contents, err := os.ReadFile(fn)
	if errors.Is(err, fs.ErrNotExist) && !required {
		lg.Infof("%s: no config file; using defaults", fn)
		return config, nil
	} else if err != nil {
		return nil, err
	}

	lg.Infof("Loading config from: %s", fn)
	if err := util.UnmarshalJSON(contents, config); err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return config, nil
}

const envPrefix = "SKYMAP_"

// LoadEnv returns the SKYMAP_ settings from the given .env file (if it
// exists) and the process environment; the latter take precedence.
func LoadEnv(dotenv string) (map[string]string, error) {
	env := make(map[string]string)
	if dotenv != "" {
		if m, err := godotenv.Read(dotenv); err == nil {
			maps.Copy(env, m)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", dotenv, err)
		}
	}

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, envPrefix) {
			env[k] = v
		}
	}
	return env, nil
}

// ApplyEnv overrides configuration settings with environment variables.
func (c *Config) ApplyEnv(env map[string]string, e *util.ErrorLogger) {
	defer e.CheckDepth(e.CurrentDepth())

	e.Push("environment")
	defer e.Pop()

	atoi := func(key string, set func(int)) {
		if v, ok := env[key]; ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err != nil {
				e.ErrorString("%s: %q: not an integer", key, v)
			} else {
				set(n)
			}
		}
	}

	atoi(envPrefix+"ZOOM", func(z int) { c.Zoom = z })
	atoi(envPrefix+"CACHE_SIZE", func(n int) { c.CacheSize = n })
	atoi(envPrefix+"ITERATIONS", func(n int) { c.Iterations = n })

	if v, ok := env[envPrefix+"SEED"]; ok {
		if s, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err != nil {
			e.ErrorString("%sSEED: %q: not an integer", envPrefix, v)
		} else {
			c.Seed = s
		}
	}
	if v, ok := env[envPrefix+"INDEX"]; ok {
		if k, err := declutter.ParseIndex(v); err != nil {
			e.Error(err)
		} else {
			c.Index = k
		}
	}
	if v, ok := env[envPrefix+"HOME"]; ok {
		if p, err := math.ParseLatLong([]byte(v)); err != nil {
			e.ErrorString("%sHOME: %v", envPrefix, err)
		} else {
			c.Home = p
		}
	}
}

func (c *Config) Validate(e *util.ErrorLogger) {
	defer e.CheckDepth(e.CurrentDepth())

	e.Push("config")
	defer e.Pop()

	if c.Zoom < viewport.MinZoom || c.Zoom > viewport.MaxZoom {
		e.ErrorString("zoom %d must be between %d and %d", c.Zoom, viewport.MinZoom, viewport.MaxZoom)
	}
	if c.CacheSize <= 0 {
		e.ErrorString("cache size %d must be positive", c.CacheSize)
	}
	if c.Iterations < 0 {
		e.ErrorString("iterations %d must not be negative", c.Iterations)
	}
	if c.Index != declutter.IndexBruteForce && c.Index != declutter.IndexRTree {
		e.ErrorString("%s: %v", c.Index, declutter.ErrUnknownIndex)
	}
	if lat := c.Home.Latitude(); lat < -90 || lat > 90 {
		e.ErrorString("home latitude %f out of range", lat)
	}
	if lng := c.Home.Longitude(); lng < -180 || lng > 180 {
		e.ErrorString("home longitude %f out of range", lng)
	}

	c.Filter.Validate(e)
}

func (c *Config) EngineOptions(lg *log.Logger) declutter.Options {
	return declutter.Options{Iterations: c.Iterations, Index: c.Index, Logger: lg}
}
