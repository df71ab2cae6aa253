// pkg/flight/flight_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package flight

import (
	"errors"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/mmp/skymap/pkg/math"
	"github.com/mmp/skymap/pkg/rand"
	"github.com/mmp/skymap/pkg/util"
)

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(rand.NewSeeded(17))
	b := Generate(rand.NewSeeded(17))
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed gave different flights")
	}

	c := Generate(rand.NewSeeded(18))
	if reflect.DeepEqual(a, c) {
		t.Errorf("different seeds gave the same flights")
	}
}

func TestGenerate(t *testing.T) {
	flights := Generate(rand.NewSeeded(3))
	if len(flights) != TotalFlights() {
		t.Fatalf("expected %d flights, got %d", TotalFlights(), len(flights))
	}

	hhmm := regexp.MustCompile(`^[0-2][0-9]:[0-5][0-9]$`)
	ids := make(map[string]bool)
	i := 0
	for _, region := range Regions {
		for range region.Count {
			f := flights[i]
			i++

			if ids[f.ID] {
				t.Errorf("%s: duplicate id", f.ID)
			}
			ids[f.ID] = true

			if dlng := math.Abs(f.Position[0] - region.Center[0]); dlng > regionLongitudeJitter+1e-4 {
				t.Errorf("%s: longitude %f too far from %s", f.ID, f.Position[0], region.Name)
			}
			if dlat := math.Abs(f.Position[1] - region.Center[1]); dlat > regionLatitudeJitter+1e-4 {
				t.Errorf("%s: latitude %f too far from %s", f.ID, f.Position[1], region.Name)
			}
			if f.Altitude < 10000 || f.Altitude >= 45000 {
				t.Errorf("%s: altitude %d out of range", f.ID, f.Altitude)
			}
			if f.Speed < 450 || f.Speed >= 600 {
				t.Errorf("%s: speed %d out of range", f.ID, f.Speed)
			}
			if f.Heading < 0 || f.Heading > 360 {
				t.Errorf("%s: heading %f out of range", f.ID, f.Heading)
			}
			if !hhmm.MatchString(f.Departure) || !hhmm.MatchString(f.Arrival) {
				t.Errorf("%s: bad times %q %q", f.ID, f.Departure, f.Arrival)
			}

			var airline *Airline
			for j := range Airlines {
				if Airlines[j].Name == f.Airline {
					airline = &Airlines[j]
				}
			}
			if airline == nil {
				t.Errorf("%s: unknown airline %q", f.ID, f.Airline)
			} else if !strings.HasPrefix(f.Callsign, airline.Code) || len(f.Callsign) != len(airline.Code)+3 {
				t.Errorf("%s: callsign %q doesn't match airline %s", f.ID, f.Callsign, airline.Code)
			} else if f.AirlineColor != airline.Color {
				t.Errorf("%s: color %q doesn't match airline", f.ID, f.AirlineColor)
			}
		}
	}

	if flights[0].ID != "FL1" || flights[len(flights)-1].ID != "FL"+strconv.Itoa(len(flights)) {
		t.Errorf("unexpected id numbering: %s ... %s", flights[0].ID, flights[len(flights)-1].ID)
	}
}

func TestFind(t *testing.T) {
	flights := []Flight{
		{ID: "FL1", Callsign: "EK201"},
		{ID: "FL2", Callsign: "BA117"},
		{ID: "FL3", Callsign: "FL1"},
	}

	for _, tc := range []struct {
		query string
		want  int
	}{
		{"EK201", 0},
		{"ek201", 0},
		{"  ba117 ", 1},
		{"fl2", 1},
		{"FL1", 0}, // first match wins
		{"FL3", 2},
	} {
		t.Run(tc.query, func(t *testing.T) {
			i, err := Find(flights, tc.query)
			if err != nil || i != tc.want {
				t.Errorf("got %d, %v; expected %d", i, err, tc.want)
			}
		})
	}

	for _, q := range []string{"", "   ", "EK20", "EK2011", "XX999"} {
		if i, err := Find(flights, q); !errors.Is(err, ErrNoMatch) || i != -1 {
			t.Errorf("%q: expected ErrNoMatch, got %d, %v", q, i, err)
		}
	}
}

func TestEntities(t *testing.T) {
	flights := Generate(rand.NewSeeded(5))
	entities := Entities(flights)
	if len(entities) != len(flights) {
		t.Fatalf("got %d entities for %d flights", len(entities), len(flights))
	}
	for i, e := range entities {
		if e.ID != flights[i].ID || e.Position != flights[i].Position {
			t.Errorf("entity %d: %+v doesn't match flight %s", i, e, flights[i].ID)
		}
	}
}

func TestFilter(t *testing.T) {
	flights := []Flight{
		{ID: "FL1", Airline: "Emirates", Altitude: 0},
		{ID: "FL2", Airline: "Qantas", Altitude: 12000},
		{ID: "FL3", Airline: "Emirates", Altitude: 30000},
		{ID: "FL4", Airline: "Lufthansa", Altitude: 45000},
		{ID: "FL5", Airline: "Delta", Altitude: 45001},
	}

	ids := func(fl []Flight) []string {
		return util.MapSlice(fl, func(f Flight) string { return f.ID })
	}

	for _, tc := range []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"Default", DefaultFilter(), []string{"FL1", "FL2", "FL3", "FL4"}},
		{"InclusiveBounds", Filter{MinAltitude: 12000, MaxAltitude: 30000}, []string{"FL2", "FL3"}},
		{"Airline", Filter{MinAltitude: 0, MaxAltitude: 45000, Airlines: []string{"Emirates"}}, []string{"FL1", "FL3"}},
		{"AirlineAndAltitude", Filter{MinAltitude: 1, MaxAltitude: 45000, Airlines: []string{"Emirates", "Lufthansa"}},
			[]string{"FL3", "FL4"}},
		{"Nothing", Filter{MinAltitude: 20000, MaxAltitude: 25000}, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := ids(tc.filter.Apply(flights)); !slices.Equal(got, tc.want) {
				t.Errorf("got %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestFilterValidate(t *testing.T) {
	var e util.ErrorLogger
	DefaultFilter().Validate(&e)
	if e.HaveErrors() {
		t.Errorf("default filter is invalid: %s", e.String())
	}

	Filter{MinAltitude: 30000, MaxAltitude: 50000, Airlines: []string{"Pan Am"}}.Validate(&e)
	s := e.String()
	for _, want := range []string{"maximum altitude 50000", "\"Pan Am\": unknown airline"} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %q in errors %q", want, s)
		}
	}

	var e2 util.ErrorLogger
	Filter{MinAltitude: 30000, MaxAltitude: 20000}.Validate(&e2)
	if !strings.Contains(e2.String(), "filter: minimum altitude 30000 is above") {
		t.Errorf("unexpected errors %q", e2.String())
	}
}

func TestAltitudeColor(t *testing.T) {
	for _, tc := range []struct {
		alt  int
		want string
	}{
		{0, "#FF00FF"}, {9999, "#FF00FF"},
		{10000, "#FF1493"}, {19999, "#FF1493"},
		{20000, "#00BFFF"}, {29999, "#00BFFF"},
		{30000, "#1E90FF"}, {34999, "#1E90FF"},
		{35000, "#8A2BE2"}, {45000, "#8A2BE2"},
	} {
		if c := AltitudeColor(tc.alt); c != tc.want {
			t.Errorf("AltitudeColor(%d) = %s, expected %s", tc.alt, c, tc.want)
		}
	}
}

func TestAltitudeLabel(t *testing.T) {
	for _, tc := range []struct {
		alt  int
		want string
	}{
		{0, "0k ft"}, {499, "0k ft"}, {500, "1k ft"}, {34499, "34k ft"}, {34500, "35k ft"}, {45000, "45k ft"},
	} {
		if l := AltitudeLabel(tc.alt); l != tc.want {
			t.Errorf("AltitudeLabel(%d) = %q, expected %q", tc.alt, l, tc.want)
		}
	}
}
