// cmd/skymap/config_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mmp/skymap/pkg/declutter"
	"github.com/mmp/skymap/pkg/math"
	"github.com/mmp/skymap/pkg/util"
	"github.com/mmp/skymap/pkg/viewport"
)

func writeTestFile(t *testing.T, name, contents string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(contents), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return fn
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.Zoom != viewport.DefaultZoom || c.Iterations != declutter.DefaultIterations ||
		c.CacheSize != declutter.DefaultCacheSize || c.Index != declutter.IndexBruteForce {
		t.Errorf("unexpected defaults %+v", *c)
	}

	c.Zoom = 17
	c.Filter.Airlines = append(c.Filter.Airlines, "Delta")
	if d := DefaultConfig(); d.Zoom != viewport.DefaultZoom || len(d.Filter.Airlines) != 0 {
		t.Errorf("modifying a config changed the defaults: %+v", *d)
	}

	var e util.ErrorLogger
	DefaultConfig().Validate(&e)
	if e.HaveErrors() {
		t.Errorf("default config is invalid: %s", e.String())
	}
}

func TestLoadConfig(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "config.json")
	c, err := LoadConfig(missing, false, nil)
	if err != nil {
		t.Fatalf("unexpected error for missing optional file: %v", err)
	}
	if !reflect.DeepEqual(c, DefaultConfig()) {
		t.Errorf("got %+v, expected defaults", *c)
	}
	if _, err := LoadConfig(missing, true, nil); err == nil {
		t.Errorf("expected error for missing required file")
	}

	fn := writeTestFile(t, "config.json", `{
  "Zoom": 7,
  "Index": "rtree",
  "Home": "51.47, -0.45",
  "Layers": {"Volcanic": true},
  "Filter": {"MinAltitude": 20000}
}`)
	c, err = LoadConfig(fn, true, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Zoom != 7 || c.Index != declutter.IndexRTree || !c.Layers.Volcanic || c.Layers.Cloud {
		t.Errorf("unexpected config %+v", *c)
	}
	if c.Home != (math.Point2LL{-0.45, 51.47}) {
		t.Errorf("got home %v", c.Home)
	}
	// Unspecified fields keep their defaults.
	if c.Filter.MinAltitude != 20000 || c.Filter.MaxAltitude != DefaultConfig().Filter.MaxAltitude ||
		c.CacheSize != declutter.DefaultCacheSize {
		t.Errorf("unexpected config %+v", *c)
	}

	for _, tc := range []struct {
		name, contents, errSubstr string
	}{
		{"Syntax", "{\n  \"Zoom\": 7,\n}", "line 3"},
		{"Type", "{\n  \"Zoom\": \"close\"\n}", "line 2"},
		{"Index", `{"Index": "quadtree"}`, "quadtree"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fn := writeTestFile(t, "config.json", tc.contents)
			_, err := LoadConfig(fn, true, nil)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.errSubstr) {
				t.Errorf("error %q does not mention %q", err, tc.errSubstr)
			}
		})
	}
}

func TestLoadEnv(t *testing.T) {
	fn := writeTestFile(t, ".env", "SKYMAP_ZOOM=9\nSKYMAP_SEED=5\n")
	t.Setenv("SKYMAP_ZOOM", "11")

	env, err := LoadEnv(fn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env["SKYMAP_ZOOM"] != "11" {
		t.Errorf("process environment did not take precedence: got %q", env["SKYMAP_ZOOM"])
	}
	if env["SKYMAP_SEED"] != "5" {
		t.Errorf("got seed %q from .env file", env["SKYMAP_SEED"])
	}

	env, err = LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Errorf("unexpected error for missing .env file: %v", err)
	}
	if env["SKYMAP_ZOOM"] != "11" {
		t.Errorf("got %q", env["SKYMAP_ZOOM"])
	}
}

func TestApplyEnv(t *testing.T) {
	var e util.ErrorLogger
	c := DefaultConfig()
	c.ApplyEnv(map[string]string{
		"SKYMAP_ZOOM":       "12",
		"SKYMAP_CACHE_SIZE": " 16 ",
		"SKYMAP_ITERATIONS": "20",
		"SKYMAP_SEED":       "8675309",
		"SKYMAP_INDEX":      "RTree",
		"SKYMAP_HOME":       "N40.37.58.400, W073.46.17.000",
		"UNRELATED":         "x",
	}, &e)
	if e.HaveErrors() {
		t.Fatalf("unexpected errors: %s", e.String())
	}
	if c.Zoom != 12 || c.CacheSize != 16 || c.Iterations != 20 || c.Seed != 8675309 ||
		c.Index != declutter.IndexRTree || c.Home != (math.Point2LL{-73.771385, 40.6328888}) {
		t.Errorf("unexpected config %+v", *c)
	}

	for _, env := range []map[string]string{
		{"SKYMAP_ZOOM": "big"},
		{"SKYMAP_CACHE_SIZE": "1.5"},
		{"SKYMAP_SEED": "seed"},
		{"SKYMAP_INDEX": "kdtree"},
		{"SKYMAP_HOME": "home"},
	} {
		var e util.ErrorLogger
		c := DefaultConfig()
		c.ApplyEnv(env, &e)
		if !e.HaveErrors() {
			t.Errorf("%v: expected error", env)
		} else if !strings.Contains(e.String(), "environment") {
			t.Errorf("%v: error %q missing context", env, e.String())
		}
		if !reflect.DeepEqual(c, DefaultConfig()) {
			t.Errorf("%v: invalid value modified the config", env)
		}
	}
}

func TestValidateConfig(t *testing.T) {
	for _, tc := range []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"Default", func(c *Config) {}, true},
		{"MaxZoom", func(c *Config) { c.Zoom = viewport.MaxZoom }, true},
		{"ZoomTooLow", func(c *Config) { c.Zoom = 0 }, false},
		{"ZoomTooHigh", func(c *Config) { c.Zoom = viewport.MaxZoom + 1 }, false},
		{"ZeroCache", func(c *Config) { c.CacheSize = 0 }, false},
		{"NegativeIterations", func(c *Config) { c.Iterations = -1 }, false},
		{"ZeroIterations", func(c *Config) { c.Iterations = 0 }, true},
		{"BadIndex", func(c *Config) { c.Index = declutter.IndexKind(17) }, false},
		{"BadLatitude", func(c *Config) { c.Home = math.Point2LL{0, 95} }, false},
		{"BadLongitude", func(c *Config) { c.Home = math.Point2LL{-200, 0} }, false},
		{"BadFilter", func(c *Config) { c.Filter.MinAltitude = 50000 }, false},
		{"UnknownAirline", func(c *Config) { c.Filter.Airlines = []string{"Pan Am"} }, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var e util.ErrorLogger
			c := DefaultConfig()
			tc.modify(c)
			c.Validate(&e)
			if e.HaveErrors() == tc.valid {
				t.Errorf("valid = %v, got errors %q", tc.valid, e.String())
			}
		})
	}
}
