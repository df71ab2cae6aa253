// pkg/wx/wx.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package wx provides the weather layers and volcanic ash alerts shown
// over the map.
package wx

import (
	"fmt"

	"github.com/mmp/skymap/pkg/math"
)

type Kind int

const (
	Volcanic Kind = iota
	Cloud
	Precipitation
)

func (k Kind) String() string {
	switch k {
	case Volcanic:
		return "volcanic"
	case Cloud:
		return "cloud"
	case Precipitation:
		return "precipitation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type Severity int

const (
	Low Severity = iota
	Medium
	High
)

func (s Severity) String() string {
	return [...]string{"low", "medium", "high"}[s]
}

// Alert is a volcanic ash advisory.
type Alert struct {
	ID       string
	Title    string
	Region   string
	Position math.Point2LL
	Severity Severity
}

var Alerts = []Alert{
	{"w1", "Volcanic Ash Cloud", "Mount Merapi, Indonesia", math.Point2LL{110.45, -7.54}, High},
	{"w2", "Volcanic Ash Cloud", "Mount Etna, Italy", math.Point2LL{15.00, 37.75}, High},
	{"w3", "Volcanic Ash Cloud", "Klyuchevskoy, Russia", math.Point2LL{160.64, 56.06}, Medium},
	{"w4", "Volcanic Ash Cloud", "Popocatépetl, Mexico", math.Point2LL{-98.62, 19.02}, Medium},
	{"w5", "Volcanic Ash Cloud", "Mount Nyiragongo, DR Congo", math.Point2LL{29.25, -1.52}, High},
}

// Layers records which weather overlays are enabled.
type Layers struct {
	Volcanic      bool
	Cloud         bool
	Precipitation bool
}

func (l Layers) Enabled(k Kind) bool {
	switch k {
	case Volcanic:
		return l.Volcanic
	case Cloud:
		return l.Cloud
	case Precipitation:
		return l.Precipitation
	default:
		return false
	}
}

// AlertIndex returns the 1-based index into Alerts of the alert to show,
// or 0 if there is none. Alerts are only shown with the volcanic layer
// enabled.
func (l Layers) AlertIndex() int {
	if l.Volcanic {
		return 1
	}
	return 0
}

// ActiveAlert returns the alert to display given the enabled layers and
// whether the user has dismissed it.
func ActiveAlert(l Layers, dismissed bool) (Alert, bool) {
	idx := l.AlertIndex()
	if dismissed || idx <= 0 || idx > len(Alerts) {
		return Alert{}, false
	}
	return Alerts[idx-1], true
}

// Region is an area of weather drawn as an ellipse on the map.
type Region struct {
	ID        string
	Kind      Kind
	Position  math.Point2LL
	Intensity int
}

var Regions = []Region{
	{"volcano-merapi", Volcanic, math.Point2LL{110.45, -7.54}, 3},
	{"volcano-etna", Volcanic, math.Point2LL{15.00, 37.75}, 3},
	{"volcano-klyuchevskoy", Volcanic, math.Point2LL{160.64, 56.06}, 2},
	{"volcano-popocatepetl", Volcanic, math.Point2LL{-98.62, 19.02}, 2},
	{"volcano-nyiragongo", Volcanic, math.Point2LL{29.25, -1.52}, 3},
	{"cloud-1", Cloud, math.Point2LL{-0.1278, 51.5074}, 2},
	{"cloud-2", Cloud, math.Point2LL{2.3522, 48.8566}, 3},
	{"cloud-3", Cloud, math.Point2LL{-122.4194, 37.7749}, 1},
	{"precip-1", Precipitation, math.Point2LL{-118.2437, 34.0522}, 2},
	{"precip-2", Precipitation, math.Point2LL{-87.6298, 41.8781}, 3},
}

// ActiveRegions returns the weather regions of all enabled layers.
func (l Layers) ActiveRegions() []Region {
	var r []Region
	for _, reg := range Regions {
		if l.Enabled(reg.Kind) {
			r = append(r, reg)
		}
	}
	return r
}

// Footprint returns the region's bounding box in normalized map
// coordinates.
func (r Region) Footprint() math.Extent2D {
	w := float32(8 + 4*r.Intensity)
	return math.Extent2DAround(math.MapFromLatLong(r.Position), w, 0.8*w)
}

// Contains reports whether the normalized map position p is inside the
// region's ellipse.
func (r Region) Contains(p [2]float32) bool {
	e := r.Footprint()
	c := e.Center()
	rx, ry := e.Width()/2, e.Height()/2
	return math.Sqr((p[0]-c[0])/rx)+math.Sqr((p[1]-c[1])/ry) <= 1
}
