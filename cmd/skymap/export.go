// cmd/skymap/export.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mmp/skymap/pkg/declutter"
	"github.com/mmp/skymap/pkg/flight"
	"github.com/mmp/skymap/pkg/log"
	"github.com/mmp/skymap/pkg/math"
	"github.com/mmp/skymap/pkg/util"

	"github.com/iancoleman/orderedmap"
)

var ErrUnknownExportFormat = errors.New("unknown export format")

type ExportFormat int

const (
	ExportJSON ExportFormat = iota
	ExportMsgpack
	ExportMsgpackZstd
)

func ExportFormatForFilename(fn string) (ExportFormat, error) {
	switch lf := strings.ToLower(fn); {
	case strings.HasSuffix(lf, ".json"):
		return ExportJSON, nil
	case strings.HasSuffix(lf, ".msgpack"):
		return ExportMsgpack, nil
	case strings.HasSuffix(lf, ".msgpack.zst"), strings.HasSuffix(lf, ".zst"):
		return ExportMsgpackZstd, nil
	default:
		return ExportJSON, fmt.Errorf("%s: %w (expected .json, .msgpack, or .msgpack.zst)", fn, ErrUnknownExportFormat)
	}
}

// ExportedFlight is a single flight's placement in an exported layout.
// Map positions and offsets are in normalized map coordinates.
type ExportedFlight struct {
	ID       string     `msgpack:"id"`
	Callsign string     `msgpack:"callsign"`
	Lat      float32    `msgpack:"lat"`
	Lng      float32    `msgpack:"lng"`
	Altitude int        `msgpack:"alt"`
	Color    string     `msgpack:"color"`
	Map      [2]float32 `msgpack:"map"`
	Offset   [2]float32 `msgpack:"offset"`
}

type Export struct {
	Zoom            int              `msgpack:"zoom"`
	Seed            int64            `msgpack:"seed"`
	Index           string           `msgpack:"index"`
	MinDistance     float32          `msgpack:"min_distance"`
	SeparationForce float32          `msgpack:"separation_force"`
	Flights         []ExportedFlight `msgpack:"flights"`
}

func MakeExport(e *declutter.Engine, zoom int, seed int64, flights []flight.Flight) Export {
	layout := e.Layout(zoom, flight.Entities(flights))

	ex := Export{
		Zoom:            zoom,
		Seed:            seed,
		Index:           e.Index().String(),
		MinDistance:     declutter.MinDistance(zoom),
		SeparationForce: declutter.SeparationForce(zoom),
	}
	for _, f := range flights {
		ex.Flights = append(ex.Flights, ExportedFlight{
			ID:       f.ID,
			Callsign: f.Callsign,
			Lat:      f.Position.Latitude(),
			Lng:      f.Position.Longitude(),
			Altitude: f.Altitude,
			Color:    flight.AltitudeColor(f.Altitude),
			Map:      math.MapFromLatLong(f.Position),
			Offset:   layout.Get(f.ID),
		})
	}
	return ex
}

// orderedJSON returns the export as an ordered map so that the JSON
// lists flights in traffic order rather than sorted by id.
func (ex Export) orderedJSON() *orderedmap.OrderedMap {
	o := orderedmap.New()
	o.Set("zoom", ex.Zoom)
	o.Set("seed", ex.Seed)
	o.Set("index", ex.Index)
	o.Set("minDistance", ex.MinDistance)
	o.Set("separationForce", ex.SeparationForce)

	fl := orderedmap.New()
	for _, f := range ex.Flights {
		m := orderedmap.New()
		m.Set("callsign", f.Callsign)
		m.Set("lat", f.Lat)
		m.Set("lng", f.Lng)
		m.Set("altitude", f.Altitude)
		m.Set("color", f.Color)
		m.Set("map", f.Map)
		m.Set("offset", f.Offset)
		fl.Set(f.ID, m)
	}
	o.Set("flights", fl)
	return o
}

func WriteExport(w io.Writer, format ExportFormat, ex Export) error {
	switch format {
	case ExportJSON:
		b, err := json.MarshalIndent(ex.orderedJSON(), "", "  ")
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	case ExportMsgpack:
		return util.WriteMsgpack(w, ex)
	case ExportMsgpackZstd:
		return util.WriteMsgpackZstd(w, ex)
	default:
		return ErrUnknownExportFormat
	}
}

func WriteExportFile(fn string, format ExportFormat, ex Export, lg *log.Logger) error {
	f, err := os.Create(fn)
	if err != nil {
		return err
	}

	cw := &util.CountingWriter{Writer: f}
	if err := WriteExport(cw, format, ex); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", fn, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%s: %w", fn, err)
	}

	lg.Info("exported layout", "file", fn, "flights", len(ex.Flights), "zoom", ex.Zoom, "bytes", cw.N)
	return nil
}
