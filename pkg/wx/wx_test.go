// pkg/wx/wx_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

import (
	"testing"

	"github.com/mmp/skymap/pkg/math"
	"github.com/mmp/skymap/pkg/viewport"
)

func TestActiveAlert(t *testing.T) {
	if _, ok := ActiveAlert(Layers{}, false); ok {
		t.Errorf("expected no alert with no layers enabled")
	}
	if _, ok := ActiveAlert(Layers{Cloud: true, Precipitation: true}, false); ok {
		t.Errorf("expected no alert without the volcanic layer")
	}

	a, ok := ActiveAlert(Layers{Volcanic: true}, false)
	if !ok || a.ID != "w1" || a.Severity != High {
		t.Errorf("got %+v, %v; expected Merapi alert", a, ok)
	}

	if _, ok := ActiveAlert(Layers{Volcanic: true}, true); ok {
		t.Errorf("dismissed alert was returned")
	}
}

func TestActiveRegions(t *testing.T) {
	for _, tc := range []struct {
		name   string
		layers Layers
		want   int
	}{
		{"None", Layers{}, 0},
		{"Volcanic", Layers{Volcanic: true}, 5},
		{"Cloud", Layers{Cloud: true}, 3},
		{"Precipitation", Layers{Precipitation: true}, 2},
		{"All", Layers{true, true, true}, 10},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := tc.layers.ActiveRegions()
			if len(r) != tc.want {
				t.Errorf("got %d regions, expected %d", len(r), tc.want)
			}
			for _, reg := range r {
				if !tc.layers.Enabled(reg.Kind) {
					t.Errorf("%s: region of disabled kind %s", reg.ID, reg.Kind)
				}
			}
		})
	}
}

func TestFootprint(t *testing.T) {
	r := Region{ID: "test", Kind: Cloud, Position: math.Point2LL{0, 0}, Intensity: 3}
	e := r.Footprint()
	if e.Width() != 20 || math.Abs(e.Height()-16) > 1e-5 {
		t.Errorf("got %f x %f, expected 20 x 16", e.Width(), e.Height())
	}
	if c := e.Center(); c != [2]float32{50, 50} {
		t.Errorf("got center %v", c)
	}

	if !r.Contains([2]float32{50, 50}) || !r.Contains([2]float32{59.9, 50}) || !r.Contains([2]float32{50, 57.9}) {
		t.Errorf("Contains returned false for points inside the region")
	}
	// Inside the bounding box but outside the ellipse.
	if r.Contains([2]float32{59, 57}) {
		t.Errorf("Contains returned true for a corner of the bounding box")
	}
	if r.Contains([2]float32{70, 50}) {
		t.Errorf("Contains returned true for a distant point")
	}
}

func TestAlertsMatchVolcanicRegions(t *testing.T) {
	for _, a := range Alerts {
		found := false
		for _, r := range Regions {
			if r.Kind == Volcanic && r.Position == a.Position {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: no volcanic region at %v", a.Region, a.Position)
		}
	}
}

func TestCenterOnAlert(t *testing.T) {
	v := viewport.New([2]float32{1200, 800})
	v.SetZoom(8)
	for _, a := range Alerts {
		v.CenterOnLatLong(a.Position)
		w := v.WindowFromMap(math.MapFromLatLong(a.Position))
		if math.Abs(w[0]-600) > 0.01 || math.Abs(w[1]-400) > 0.01 {
			t.Errorf("%s: centered alert at %v", a.Region, w)
		}
	}
}

func TestStrings(t *testing.T) {
	if Volcanic.String() != "volcanic" || Precipitation.String() != "precipitation" {
		t.Errorf("unexpected Kind strings")
	}
	if Medium.String() != "medium" {
		t.Errorf("unexpected Severity string")
	}
}
