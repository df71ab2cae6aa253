// pkg/viewport/viewport.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package viewport implements the transformation from normalized map
// coordinates to window coordinates for a zoomable, pannable map.
package viewport

import (
	"github.com/mmp/skymap/pkg/math"
)

const (
	MinZoom      = 1
	MaxZoom      = 30
	DefaultZoom  = 4
	ScalePerZoom = 0.3

	// The backing map is larger than the window so that panning at low
	// zoom levels never exposes space beyond its edges.
	MapWidthFactor  = 2.4
	MapHeightFactor = 1.4
)

// Viewport represents the visible window into the oversized backing map.
// Pan is in map pixels, before scaling; a pan of (0,0) puts the center of
// the map at the center of the window.
type Viewport struct {
	ZoomLevel  int
	Pan        [2]float32
	MapSize    [2]float32
	WindowSize [2]float32
}

// New returns a Viewport for a window of the given size at the default
// zoom level with no pan.
func New(windowSize [2]float32) *Viewport {
	v := &Viewport{ZoomLevel: DefaultZoom}
	v.Resize(windowSize)
	return v
}

// ScaleForZoom returns the scale factor applied to the map at the given
// zoom level.
func ScaleForZoom(z int) float32 {
	return 1 + float32(z)*ScalePerZoom
}

func (v *Viewport) Scale() float32 {
	return ScaleForZoom(v.ZoomLevel)
}

// MaxPan returns the largest allowed pan magnitude along each axis at the
// current zoom level. It is zero along axes where the map is no larger
// than the window.
func (v *Viewport) MaxPan() [2]float32 {
	s := v.Scale()
	return [2]float32{
		max(0, (v.MapSize[0]-v.WindowSize[0])/(2*s)),
		max(0, (v.MapSize[1]-v.WindowSize[1])/(2*s)),
	}
}

// ClampPan returns the given pan clamped to the allowed range.
func (v *Viewport) ClampPan(p [2]float32) [2]float32 {
	m := v.MaxPan()
	return [2]float32{math.Clamp(p[0], -m[0], m[0]), math.Clamp(p[1], -m[1], m[1])}
}

func (v *Viewport) SetPan(p [2]float32) {
	v.Pan = v.ClampPan(p)
}

// Drag offsets the pan by the given delta, clamping the result.
func (v *Viewport) Drag(delta [2]float32) {
	v.SetPan(math.Add2f(v.Pan, delta))
}

// SetZoom sets the zoom level if it is in [MinZoom, MaxZoom] and returns
// true; otherwise the viewport is unchanged and false is returned. The
// pan is not re-clamped.
func (v *Viewport) SetZoom(z int) bool {
	if z < MinZoom || z > MaxZoom {
		return false
	}
	v.ZoomLevel = z
	return true
}

func (v *Viewport) ZoomIn() bool {
	return v.SetZoom(v.ZoomLevel + 1)
}

func (v *Viewport) ZoomOut() bool {
	return v.SetZoom(v.ZoomLevel - 1)
}

// CenterOn sets the pan so that the given normalized map position is at
// the center of the window. The pan is not clamped.
func (v *Viewport) CenterOn(p [2]float32) {
	for i := range 2 {
		pixel := p[i] / 100 * v.MapSize[i]
		v.Pan[i] = -(pixel - v.MapSize[i]/2)
	}
}

func (v *Viewport) CenterOnLatLong(p math.Point2LL) {
	v.CenterOn(math.MapFromLatLong(p))
}

// WindowFromMap returns the window position in pixels of the given
// normalized map position.
func (v *Viewport) WindowFromMap(p [2]float32) [2]float32 {
	s := v.Scale()
	var w [2]float32
	for i := range 2 {
		w[i] = v.WindowSize[i]/2 + s*(p[i]/100*v.MapSize[i]-v.MapSize[i]/2+v.Pan[i])
	}
	return w
}

// MapFromWindow is the inverse of WindowFromMap.
func (v *Viewport) MapFromWindow(w [2]float32) [2]float32 {
	s := v.Scale()
	var p [2]float32
	for i := range 2 {
		if v.MapSize[i] == 0 {
			continue
		}
		p[i] = ((w[i]-v.WindowSize[i]/2)/s - v.Pan[i] + v.MapSize[i]/2) / v.MapSize[i] * 100
	}
	return p
}

// VisibleExtent returns the region of normalized map coordinates that is
// currently visible in the window.
func (v *Viewport) VisibleExtent() math.Extent2D {
	return math.Extent2DFromPoints([][2]float32{
		v.MapFromWindow([2]float32{0, 0}),
		v.MapFromWindow(v.WindowSize),
	})
}

// Resize updates the window size, resizes the backing map to match, and
// re-clamps the pan.
func (v *Viewport) Resize(windowSize [2]float32) {
	v.WindowSize = windowSize
	v.MapSize = [2]float32{windowSize[0] * MapWidthFactor, windowSize[1] * MapHeightFactor}
	v.SetPan(v.Pan)
}
