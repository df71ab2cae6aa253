// cmd/skymap/export_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mmp/skymap/pkg/declutter"
	"github.com/mmp/skymap/pkg/flight"
	"github.com/mmp/skymap/pkg/math"
	"github.com/mmp/skymap/pkg/util"
)

func testFlights() []flight.Flight {
	return []flight.Flight{
		{ID: "zz9", Callsign: "UAL123", Position: math.Point2LL{-73.78, 40.64}, Altitude: 36000},
		{ID: "aa1", Callsign: "DAL45", Position: math.Point2LL{-73.78, 40.64}, Altitude: 12000},
		{ID: "mm5", Callsign: "BAW9", Position: math.Point2LL{-0.45, 51.47}, Altitude: 24000},
	}
}

func TestExportFormatForFilename(t *testing.T) {
	for _, tc := range []struct {
		fn   string
		want ExportFormat
	}{
		{"layout.json", ExportJSON},
		{"LAYOUT.JSON", ExportJSON},
		{"layout.msgpack", ExportMsgpack},
		{"layout.msgpack.zst", ExportMsgpackZstd},
		{"layout.zst", ExportMsgpackZstd},
	} {
		if f, err := ExportFormatForFilename(tc.fn); err != nil {
			t.Errorf("%s: unexpected error %v", tc.fn, err)
		} else if f != tc.want {
			t.Errorf("%s: got format %d, expected %d", tc.fn, f, tc.want)
		}
	}

	for _, fn := range []string{"layout.txt", "layout", "json"} {
		if _, err := ExportFormatForFilename(fn); !errors.Is(err, ErrUnknownExportFormat) {
			t.Errorf("%s: expected ErrUnknownExportFormat, got %v", fn, err)
		}
	}
}

func TestMakeExport(t *testing.T) {
	e := declutter.NewEngine(declutter.Options{})
	ex := MakeExport(e, 5, 42, testFlights())

	if ex.Zoom != 5 || ex.Seed != 42 || ex.Index != "bruteforce" {
		t.Errorf("unexpected header %+v", ex)
	}
	if ex.MinDistance != declutter.MinDistance(5) || ex.SeparationForce != declutter.SeparationForce(5) {
		t.Errorf("got parameters %f/%f", ex.MinDistance, ex.SeparationForce)
	}
	if len(ex.Flights) != 3 {
		t.Fatalf("expected 3 flights, got %d", len(ex.Flights))
	}
	if ex.Flights[0].ID != "zz9" || ex.Flights[2].ID != "mm5" {
		t.Errorf("flight order not preserved: %+v", ex.Flights)
	}
	// The two coincident flights are pushed in opposite directions.
	a, b := ex.Flights[0].Offset, ex.Flights[1].Offset
	if math.Length2f(a) < 0.5 || math.Abs(a[0]+b[0]) > 1e-3 || math.Abs(a[1]+b[1]) > 1e-3 {
		t.Errorf("expected equal and opposite offsets, got %v and %v", a, b)
	}
	if ex.Flights[2].Offset != ([2]float32{}) {
		t.Errorf("isolated flight moved: %v", ex.Flights[2].Offset)
	}
	if ex.Flights[0].Color != flight.AltitudeColor(36000) {
		t.Errorf("got color %s", ex.Flights[0].Color)
	}
}

func TestWriteExportJSON(t *testing.T) {
	ex := MakeExport(declutter.NewEngine(declutter.Options{}), 3, 7, testFlights())

	var buf bytes.Buffer
	if err := WriteExport(&buf, ExportJSON, ex); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := buf.String()

	// Keys come out in insertion order, not sorted.
	order := []string{`"zoom"`, `"seed"`, `"index"`, `"minDistance"`, `"separationForce"`, `"flights"`,
		`"zz9"`, `"aa1"`, `"mm5"`}
	last := -1
	for _, k := range order {
		idx := strings.Index(s, k)
		if idx == -1 {
			t.Fatalf("%s: missing from output:\n%s", k, s)
		}
		if idx < last {
			t.Errorf("%s: out of order in output:\n%s", k, s)
		}
		last = idx
	}
}

func TestWriteExportMsgpack(t *testing.T) {
	ex := MakeExport(declutter.NewEngine(declutter.Options{Index: declutter.IndexRTree}), 12, 99, testFlights())

	for _, tc := range []struct {
		name   string
		format ExportFormat
		read   func(*bytes.Buffer, any) error
	}{
		{"Plain", ExportMsgpack, func(b *bytes.Buffer, v any) error { return util.ReadMsgpack(b, v) }},
		{"Zstd", ExportMsgpackZstd, func(b *bytes.Buffer, v any) error { return util.ReadMsgpackZstd(b, v) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteExport(&buf, tc.format, ex); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var back Export
			if err := tc.read(&buf, &back); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(ex, back) {
				t.Errorf("got %+v, expected %+v", back, ex)
			}
		})
	}
}

func TestWriteExportFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "layout.json")
	ex := MakeExport(declutter.NewEngine(declutter.Options{}), 4, 1, testFlights())
	if err := WriteExportFile(fn, ExportJSON, ex, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := os.ReadFile(fn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Contains(b, []byte(`"UAL123"`)) {
		t.Errorf("export file missing flight:\n%s", b)
	}

	if err := WriteExportFile(filepath.Join(t.TempDir(), "no", "such", "dir.json"), ExportJSON, ex, nil); err == nil {
		t.Errorf("expected error writing to missing directory")
	}
}
