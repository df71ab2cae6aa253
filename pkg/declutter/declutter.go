// pkg/declutter/declutter.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package declutter computes per-entity offsets that spread apart
// aircraft whose map icons would otherwise overlap at the current zoom
// level.
package declutter

import (
	gomath "math"
	"strconv"
	"time"

	"github.com/mmp/skymap/pkg/log"
	"github.com/mmp/skymap/pkg/math"

	"github.com/cespare/xxhash/v2"
)

const (
	DefaultIterations = 12

	// Pairs of entities closer than this in normalized map units are
	// treated as coincident.
	CoincidenceEpsilon = 0.001
)

// Entity is something with a position that is to be placed on the map.
type Entity struct {
	ID       string
	Position math.Point2LL
}

// Offset is a displacement in normalized map units.
type Offset [2]float32

func (o Offset) Length() float32 {
	return math.Length2f(o)
}

// Layout maps entity ids to offsets. Entities that are not present have
// a zero offset.
type Layout map[string]Offset

func (l Layout) Get(id string) Offset {
	return l[id]
}

// MinDistance returns the separation in normalized map units below which
// two entities repel each other at the given zoom level.
func MinDistance(zoom int) float32 {
	return 0.8 + float32(zoom)*0.15
}

// SeparationForce returns the repulsion strength at the given zoom level.
func SeparationForce(zoom int) float32 {
	return float32(zoom) * 0.18
}

type Options struct {
	// Iterations is the number of relaxation steps; DefaultIterations is
	// used if it is zero or negative.
	Iterations int
	Index      IndexKind
	Logger     *log.Logger
}

// Engine computes layouts. It holds no state between calls to Layout and
// may be used concurrently.
type Engine struct {
	iterations int
	index      IndexKind
	lg         *log.Logger
}

func NewEngine(opts Options) *Engine {
	e := &Engine{iterations: opts.Iterations, index: opts.Index, lg: opts.Logger}
	if e.iterations <= 0 {
		e.iterations = DefaultIterations
	}
	return e
}

func (e *Engine) Iterations() int { return e.iterations }
func (e *Engine) Index() IndexKind { return e.index }

var defaultEngine = NewEngine(Options{})

// Compute returns the layout for the given entities at the given zoom
// level using the default engine options.
func Compute(zoom int, entities []Entity) Layout {
	return defaultEngine.Layout(zoom, entities)
}

// Layout computes offsets for all of the given entities at the given zoom
// level. The result depends only on the zoom level and the ordered entity
// set; it is recomputed from scratch on every call. At zoom levels of 1
// and below, an empty layout is returned.
//
// The relaxation is semi-synchronous: in each iteration every entity's
// displacement is computed from the positions at the start of the
// iteration and all of them are applied at its end.
func (e *Engine) Layout(zoom int, entities []Entity) Layout {
	start := time.Now()
	defer func() {
		layoutRuns.WithLabelValues(e.index.String()).Inc()
		layoutDuration.WithLabelValues(e.index.String()).Observe(float64(time.Since(start).Microseconds()) / 1000)
		layoutEntities.Observe(float64(len(entities)))
	}()

	if zoom <= 1 {
		return Layout{}
	}

	n := len(entities)
	orig := make([][2]float32, n)
	for i, ent := range entities {
		orig[i] = math.MapFromLatLong(ent.Position)
	}
	pos := make([][2]float32, n)
	copy(pos, orig)
	next := make([][2]float32, n)

	minDist, force := MinDistance(zoom), SeparationForce(zoom)
	nf := newNeighborFinder(e.index)
	var neighbors []int
	coincident := 0

	for range e.iterations {
		nf.Build(pos, minDist)

		for i := range pos {
			var push [2]float32
			neighbors = nf.Neighbors(i, pos, minDist, neighbors[:0])
			for _, j := range neighbors {
				v := math.Sub2f(pos[i], pos[j])
				d := math.Length2f(v)
				if d >= minDist {
					continue
				}

				if d <= CoincidenceEpsilon {
					push = math.Add2f(push, coincidentPush(entities, i, j, minDist))
					coincident++
				} else {
					push = math.Add2f(push, math.Scale2f(v, (minDist-d)/d*force))
				}
			}
			next[i] = math.Add2f(pos[i], push)
		}

		pos, next = next, pos
	}

	layout := make(Layout, n)
	for i, ent := range entities {
		layout[ent.ID] = Offset(math.Sub2f(pos[i], orig[i]))
	}

	if e.lg != nil {
		e.lg.Debug("declutter layout", "zoom", zoom, "entities", n, "index", e.index.String(),
			"coincident_pushes", coincident, "elapsed", time.Since(start))
	}

	return layout
}

// coincidentPush returns the displacement of entity i away from entity j
// when the two are at effectively the same position. The direction is
// derived from a hash of the pair's ids so that it is reproducible; the
// two entities are pushed in opposite directions by half the minimum
// distance each, leaving them exactly minDist apart.
func coincidentPush(entities []Entity, i, j int, minDist float32) [2]float32 {
	lo, hi := i, j
	if !entityLess(entities, i, j) {
		lo, hi = j, i
	}

	dir := math.Unit2f(pairAngle(entities[lo].ID, entities[hi].ID))
	if lo != i {
		dir = math.Scale2f(dir, -1)
	}
	return math.Scale2f(dir, minDist/2)
}

// entityLess orders entities by id, falling back to their index in the
// entity slice so that entities with duplicate ids are still ordered.
func entityLess(entities []Entity, i, j int) bool {
	if entities[i].ID != entities[j].ID {
		return entities[i].ID < entities[j].ID
	}
	return i < j
}

// pairAngle returns an angle in degrees in [0,360) for the ordered pair
// of ids.
func pairAngle(lo, hi string) float32 {
	d := xxhash.New()
	d.WriteString(lo)
	d.WriteString("\x00")
	d.WriteString(hi)
	return float32(d.Sum64()%3600) / 10
}

// Fingerprint returns a hash of the ordered entity set. Layouts of
// entity sets with equal fingerprints are identical.
func Fingerprint(entities []Entity) uint64 {
	d := xxhash.New()
	var buf []byte
	for _, ent := range entities {
		buf = buf[:0]
		buf = strconv.AppendQuote(buf, ent.ID)
		buf = strconv.AppendUint(buf, uint64(gomath.Float32bits(ent.Position[0])), 16)
		buf = append(buf, ',')
		buf = strconv.AppendUint(buf, uint64(gomath.Float32bits(ent.Position[1])), 16)
		buf = append(buf, ';')
		d.Write(buf)
	}
	return d.Sum64()
}
