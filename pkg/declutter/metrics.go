// pkg/declutter/metrics.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package declutter

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	layoutRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skymap_declutter_runs_total",
		Help: "Total number of declutter layout computations",
	}, []string{"index"})
	layoutDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skymap_declutter_duration_ms",
		Help:    "Declutter layout duration in milliseconds",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000},
	}, []string{"index"})
	layoutEntities = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "skymap_declutter_entities",
		Help:    "Number of entities per declutter layout",
		Buckets: []float64{1, 10, 50, 100, 250, 500, 1000, 5000},
	})
	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skymap_declutter_cache_hits_total",
		Help: "Total declutter layout cache hits",
	})
	cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skymap_declutter_cache_misses_total",
		Help: "Total declutter layout cache misses",
	})
)

func init() {
	prometheus.MustRegister(layoutRuns)
	prometheus.MustRegister(layoutDuration)
	prometheus.MustRegister(layoutEntities)
	prometheus.MustRegister(cacheHits)
	prometheus.MustRegister(cacheMisses)
}
