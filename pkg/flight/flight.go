// pkg/flight/flight.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package flight provides simulated air traffic and the queries that the
// map runs over it: search, filtering, and altitude banding.
package flight

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mmp/skymap/pkg/declutter"
	"github.com/mmp/skymap/pkg/math"
	"github.com/mmp/skymap/pkg/util"
)

var ErrNoMatch = errors.New("no matching flight")

type Flight struct {
	ID           string
	Callsign     string
	Origin       string
	Destination  string
	Aircraft     string
	Airline      string
	AirlineColor string
	Position     math.Point2LL
	Heading      float32 // degrees
	Altitude     int     // feet
	Speed        int     // knots
	FlightTime   string
	Departure    string // HH:MM
	Arrival      string // HH:MM
}

func (f Flight) Entity() declutter.Entity {
	return declutter.Entity{ID: f.ID, Position: f.Position}
}

func (f Flight) String() string {
	return fmt.Sprintf("%s (%s) %s-%s %s %s", f.Callsign, f.ID, f.Origin, f.Destination,
		f.Aircraft, AltitudeLabel(f.Altitude))
}

// Entities returns the declutter entities for the given flights, in the
// same order.
func Entities(flights []Flight) []declutter.Entity {
	return util.MapSlice(flights, Flight.Entity)
}

// Find returns the index of the first flight whose callsign or id matches
// the query, ignoring case and surrounding whitespace. ErrNoMatch is
// returned if there is no such flight or the query is blank.
func Find(flights []Flight, query string) (int, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return -1, ErrNoMatch
	}

	for i, f := range flights {
		if strings.EqualFold(f.Callsign, query) || strings.EqualFold(f.ID, query) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%q: %w", query, ErrNoMatch)
}
