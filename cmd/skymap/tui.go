// cmd/skymap/tui.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mmp/skymap/pkg/declutter"
	"github.com/mmp/skymap/pkg/flight"
	"github.com/mmp/skymap/pkg/log"
	"github.com/mmp/skymap/pkg/math"
	"github.com/mmp/skymap/pkg/util"
	"github.com/mmp/skymap/pkg/viewport"
	"github.com/mmp/skymap/pkg/wx"

	"github.com/gdamore/tcell/v2"
)

// Action is returned by the event handlers to tell the main loop what to
// do next.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
)

type inputMode int

const (
	modeNormal inputMode = iota
	modeSearch
	modeCoordinate
)

const (
	// Number of terminal cells that an arrow key pans the map by.
	panStep = 4

	// Callsigns are drawn next to every aircraft at this zoom and above.
	labelZoom = 10

	statusDuration = 2500 * time.Millisecond
	historySize    = 16
)

type mapView struct {
	screen tcell.Screen
	lg     *log.Logger

	vp       *viewport.Viewport
	cache    *declutter.Cache
	flights  []flight.Flight
	entities []declutter.Entity

	layers    wx.Layers
	dismissed bool
	home      math.Point2LL

	highlight int // index into flights, or -1
	mode      inputMode
	input     string

	status  *util.TransientMap[string, string]
	history *util.RingBuffer[string]
}

func newMapView(screen tcell.Screen, config *Config, flights []flight.Flight, cache *declutter.Cache,
	lg *log.Logger) *mapView {
	v := &mapView{
		screen:    screen,
		lg:        lg,
		vp:        viewport.New([2]float32{}),
		cache:     cache,
		flights:   flights,
		entities:  flight.Entities(flights),
		layers:    config.Layers,
		home:      config.Home,
		highlight: -1,
		status:    util.NewTransientMap[string, string](),
		history:   util.NewRingBuffer[string](historySize),
	}
	v.resize()
	v.vp.SetZoom(config.Zoom)
	if !config.Home.IsZero() {
		v.vp.CenterOnLatLong(config.Home)
	}
	return v
}

// runMap runs the interactive map until the user quits.
func runMap(config *Config, flights []flight.Flight, cache *declutter.Cache, search string,
	lg *log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault.
		Background(tcell.ColorReset).
		Foreground(tcell.ColorReset))

	v := newMapView(screen, config, flights, cache, lg)
	if search != "" {
		v.submitSearch(search)
	}

	// Warm the cache for the zoom levels the user is most likely to step
	// to next.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		z := v.vp.ZoomLevel
		zooms := []int{z, z + 1, z - 1, z + 2, z - 2}
		if err := cache.Precompute(ctx, zooms, v.entities); err != nil && !errors.Is(err, context.Canceled) {
			lg.Warnf("precompute: %v", err)
		}
	}()

	for {
		v.render()
		screen.Show()

		if v.handleEvent(screen.PollEvent()) == ActionQuit {
			lg.Info("exiting map view", "zoom", v.vp.ZoomLevel, "pan", v.vp.Pan)
			return nil
		}
	}
}

func (v *mapView) resize() {
	w, h := v.screen.Size()
	// The top row is the alert banner and the bottom is the status line.
	v.vp.Resize([2]float32{float32(w), float32(max(0, h-2))})
}

func (v *mapView) setStatus(msg string, args ...any) {
	v.status.Add("status", fmt.Sprintf(msg, args...), statusDuration)
}

func (v *mapView) layout() declutter.Layout {
	return v.cache.Layout(v.vp.ZoomLevel, v.entities)
}

// flightMapPosition returns the decluttered map position of the i'th
// flight.
func (v *mapView) flightMapPosition(i int, layout declutter.Layout) [2]float32 {
	f := v.flights[i]
	return math.Add2f(math.MapFromLatLong(f.Position), layout.Get(f.ID))
}

// centerLatLong returns the position at the center of the window.
func (v *mapView) centerLatLong() math.Point2LL {
	return math.LatLongFromMap(v.vp.MapFromWindow(math.Scale2f(v.vp.WindowSize, 0.5)))
}

///////////////////////////////////////////////////////////////////////////
// Event handling

func (v *mapView) handleEvent(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.resize()
		v.screen.Sync()
	case *tcell.EventKey:
		return v.handleKey(ev.Key(), ev.Rune())
	}
	return ActionNone
}

func (v *mapView) handleKey(k tcell.Key, r rune) Action {
	if v.mode != modeNormal {
		v.handleInputKey(k, r)
		return ActionNone
	}

	step := panStep / v.vp.Scale()
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyUp:
		v.vp.Drag([2]float32{0, step})
	case tcell.KeyDown:
		v.vp.Drag([2]float32{0, -step})
	case tcell.KeyLeft:
		v.vp.Drag([2]float32{step, 0})
	case tcell.KeyRight:
		v.vp.Drag([2]float32{-step, 0})
	case tcell.KeyTab:
		v.cycleHighlight()
	case tcell.KeyRune:
		return v.handleRune(r)
	}
	return ActionNone
}

func (v *mapView) handleRune(r rune) Action {
	switch r {
	case 'q', 'Q':
		return ActionQuit
	case '+', '=':
		if !v.vp.ZoomIn() {
			v.setStatus("maximum zoom")
		}
	case '-', '_':
		if !v.vp.ZoomOut() {
			v.setStatus("minimum zoom")
		}
	case '/':
		v.mode, v.input = modeSearch, ""
	case 'c':
		v.mode, v.input = modeCoordinate, ""
	case 'n':
		// Repeat the most recent search.
		if n := v.history.Size(); n > 0 {
			v.submitSearch(v.history.Get(n - 1))
		}
	case 'w':
		v.layers.Volcanic = !v.layers.Volcanic
		if v.layers.Volcanic {
			v.dismissed = false
		}
		v.setStatus("volcanic layer %s", onOff(v.layers.Volcanic))
	case 'l':
		v.layers.Cloud = !v.layers.Cloud
		v.setStatus("cloud layer %s", onOff(v.layers.Cloud))
	case 'r':
		v.layers.Precipitation = !v.layers.Precipitation
		v.setStatus("precipitation layer %s", onOff(v.layers.Precipitation))
	case 'a':
		if alert, ok := wx.ActiveAlert(v.layers, v.dismissed); ok {
			v.vp.CenterOnLatLong(alert.Position)
			v.setStatus("%s: %s", alert.Title, alert.Region)
		} else {
			v.setStatus("no active alert")
		}
	case 'd':
		v.dismissed = true
	case 'h':
		if v.home.IsZero() {
			v.setStatus("no home position set")
		} else {
			v.vp.CenterOnLatLong(v.home)
		}
	}
	return ActionNone
}

func (v *mapView) handleInputKey(k tcell.Key, r rune) {
	switch k {
	case tcell.KeyEscape:
		v.mode, v.input = modeNormal, ""
	case tcell.KeyEnter:
		mode, input := v.mode, v.input
		v.mode, v.input = modeNormal, ""
		if mode == modeSearch {
			v.submitSearch(input)
		} else {
			v.submitCoordinate(input)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(v.input) > 0 {
			rs := []rune(v.input)
			v.input = string(rs[:len(rs)-1])
		}
	case tcell.KeyRune:
		v.input += string(r)
	}
}

// submitSearch highlights the first flight matching the query and
// centers the map on it.
func (v *mapView) submitSearch(query string) {
	query = strings.TrimSpace(query)
	idx, err := flight.Find(v.flights, query)
	if err != nil {
		v.lg.Debug("search", "query", query, "error", err)
		v.setStatus("%v", err)
		return
	}
	v.history.Add(query)

	v.highlight = idx
	v.vp.CenterOnLatLong(v.flights[idx].Position)
	v.setStatus("%s", v.flights[idx])
}

func (v *mapView) submitCoordinate(s string) {
	p, err := math.ParseLatLong([]byte(strings.TrimSpace(s)))
	if err != nil {
		v.setStatus("%v", err)
		return
	}
	v.vp.CenterOnLatLong(p)
	v.setStatus("centered on %s", p.DDString())
}

func (v *mapView) cycleHighlight() {
	if len(v.flights) == 0 {
		return
	}
	v.highlight = (v.highlight + 1) % len(v.flights)
	v.setStatus("%s", v.flights[v.highlight])
}

func onOff(b bool) string {
	return util.Select(b, "on", "off")
}

///////////////////////////////////////////////////////////////////////////
// Rendering

var (
	styleMap       = tcell.StyleDefault
	styleGraticule = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleBanner    = tcell.StyleDefault.Background(tcell.ColorDarkRed).Foreground(tcell.ColorWhite).Bold(true)
	styleTitle     = tcell.StyleDefault.Bold(true).Reverse(true)
	styleStatus    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleInput     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)

	weatherStyles = map[wx.Kind]tcell.Style{
		wx.Volcanic:      tcell.StyleDefault.Foreground(tcell.ColorOrangeRed),
		wx.Cloud:         tcell.StyleDefault.Foreground(tcell.ColorSilver),
		wx.Precipitation: tcell.StyleDefault.Foreground(tcell.ColorSteelBlue),
	}
)

func (v *mapView) render() {
	v.screen.Clear()
	w, h := v.screen.Size()
	if w <= 0 || h < 3 {
		return
	}

	v.drawWeather(w, h)
	v.drawGraticule()
	v.drawFlights(w, h)
	v.drawBanner(w)
	v.drawStatus(w, h)
}

// setMapContent draws r at the given window position if it falls inside
// the map area.
func (v *mapView) setMapContent(x, y int, r rune, style tcell.Style) bool {
	w, h := v.screen.Size()
	if x < 0 || x >= w || y < 0 || y >= h-2 {
		return false
	}
	v.screen.SetContent(x, y+1, r, nil, style)
	return true
}

func (v *mapView) drawGraticule() {
	for lat := float32(-60); lat <= 60; lat += 30 {
		for lng := float32(-150); lng <= 180; lng += 30 {
			p := v.vp.WindowFromMap(math.MapFromLatLong(math.Point2LL{lng, lat}))
			v.setMapContent(int(p[0]), int(p[1]), '+', styleGraticule)
		}
	}
}

func (v *mapView) drawWeather(w, h int) {
	regions := v.layers.ActiveRegions()
	if len(regions) == 0 {
		return
	}

	for y := 0; y < h-2; y++ {
		for x := 0; x < w; x++ {
			p := v.vp.MapFromWindow([2]float32{float32(x) + 0.5, float32(y) + 0.5})
			for _, r := range regions {
				if r.Contains(p) {
					v.setMapContent(x, y, '░', weatherStyles[r.Kind])
					break
				}
			}
		}
	}
}

func (v *mapView) drawFlights(w, h int) {
	layout := v.layout()
	labels := v.vp.ZoomLevel >= labelZoom

	for i, f := range v.flights {
		p := v.vp.WindowFromMap(v.flightMapPosition(i, layout))
		x, y := int(p[0]), int(p[1])

		style := styleMap.Foreground(tcell.GetColor(flight.AltitudeColor(f.Altitude)))
		if i == v.highlight {
			style = style.Reverse(true)
		}
		if !v.setMapContent(x, y, headingRune(f.Heading), style) {
			continue
		}
		if labels || i == v.highlight {
			for j, r := range []rune(f.Callsign) {
				v.setMapContent(x+2+j, y, r, style)
			}
		}
	}
}

var headingRunes = []rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

// headingRune returns the arrow pointing closest to the given heading in
// degrees.
func headingRune(hdg float32) rune {
	hdg -= 360 * math.Floor(hdg/360)
	return headingRunes[int((hdg+22.5)/45)%len(headingRunes)]
}

func (v *mapView) drawBanner(w int) {
	if alert, ok := wx.ActiveAlert(v.layers, v.dismissed); ok {
		drawText(v.screen, 0, 0, w, styleBanner,
			fmt.Sprintf(" ⚠ %s: %s (%s)  [a]=Center  [d]=Dismiss", alert.Title, alert.Region, alert.Severity))
	} else {
		drawText(v.screen, 0, 0, w, styleTitle,
			" skymap  [/]=Search  [c]=Coordinate  [+/-]=Zoom  [w/l/r]=Weather  [q]=Quit")
	}
}

func (v *mapView) drawStatus(w, h int) {
	switch v.mode {
	case modeSearch:
		drawText(v.screen, 0, h-1, w, styleInput, "/"+v.input)
		return
	case modeCoordinate:
		drawText(v.screen, 0, h-1, w, styleInput, "lat, long: "+v.input)
		return
	}

	if msg, ok := v.status.Get("status"); ok {
		drawText(v.screen, 0, h-1, w, styleStatus, msg)
		return
	}

	layers := ""
	for _, k := range []wx.Kind{wx.Volcanic, wx.Cloud, wx.Precipitation} {
		if v.layers.Enabled(k) {
			layers += " " + k.String()
		}
	}
	drawText(v.screen, 0, h-1, w, styleStatus,
		fmt.Sprintf("zoom %d  pan %.0f,%.0f  center %s  %d flights%s", v.vp.ZoomLevel,
			v.vp.Pan[0], v.vp.Pan[1], v.centerLatLong().DDString(), len(v.flights), layers))
}

// drawText draws a string at the given position, padding it with spaces
// to maxWidth.
func drawText(screen tcell.Screen, x, y, maxWidth int, style tcell.Style, text string) {
	col := 0
	for _, r := range text {
		if col >= maxWidth {
			break
		}
		screen.SetContent(x+col, y, r, nil, style)
		col++
	}
	for col < maxWidth {
		screen.SetContent(x+col, y, ' ', nil, style)
		col++
	}
}
