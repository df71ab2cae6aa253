// pkg/flight/filter.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package flight

import (
	gomath "math"
	"slices"
	"strconv"

	"github.com/mmp/skymap/pkg/util"
)

const (
	FilterMinAltitude = 0
	FilterMaxAltitude = 45000
)

// Filter selects the flights that are shown on the map. Altitude bounds
// are inclusive; an empty Airlines list matches all airlines.
type Filter struct {
	MinAltitude int
	MaxAltitude int
	Airlines    []string
}

func DefaultFilter() Filter {
	return Filter{MinAltitude: FilterMinAltitude, MaxAltitude: FilterMaxAltitude}
}

func (f Filter) Match(fl Flight) bool {
	if fl.Altitude < f.MinAltitude || fl.Altitude > f.MaxAltitude {
		return false
	}
	return len(f.Airlines) == 0 || slices.Contains(f.Airlines, fl.Airline)
}

// Apply returns the flights that match the filter, preserving order.
func (f Filter) Apply(flights []Flight) []Flight {
	return util.FilterSlice(flights, f.Match)
}

func (f Filter) Validate(e *util.ErrorLogger) {
	defer e.CheckDepth(e.CurrentDepth())

	e.Push("filter")
	defer e.Pop()

	if f.MinAltitude < FilterMinAltitude || f.MinAltitude > FilterMaxAltitude {
		e.ErrorString("minimum altitude %d must be between %d and %d", f.MinAltitude, FilterMinAltitude, FilterMaxAltitude)
	}
	if f.MaxAltitude < FilterMinAltitude || f.MaxAltitude > FilterMaxAltitude {
		e.ErrorString("maximum altitude %d must be between %d and %d", f.MaxAltitude, FilterMinAltitude, FilterMaxAltitude)
	}
	if f.MinAltitude > f.MaxAltitude {
		e.ErrorString("minimum altitude %d is above maximum altitude %d", f.MinAltitude, f.MaxAltitude)
	}
	for _, name := range f.Airlines {
		if !slices.ContainsFunc(Airlines, func(al Airline) bool { return al.Name == name }) {
			e.ErrorString("%q: unknown airline", name)
		}
	}
}

var altitudeBands = []struct {
	below int
	color string
}{
	{10000, "#FF00FF"},
	{20000, "#FF1493"},
	{30000, "#00BFFF"},
	{35000, "#1E90FF"},
}

// AltitudeColor returns the hex color used to draw a flight at the given
// altitude.
func AltitudeColor(alt int) string {
	for _, b := range altitudeBands {
		if alt < b.below {
			return b.color
		}
	}
	return "#8A2BE2"
}

// AltitudeLabel returns the altitude rounded to thousands of feet, e.g.
// "35k ft".
func AltitudeLabel(alt int) string {
	k := int(gomath.Floor(float64(alt)/1000 + 0.5))
	return strconv.Itoa(k) + "k ft"
}
