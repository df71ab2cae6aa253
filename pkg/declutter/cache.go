// pkg/declutter/cache.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package declutter

import (
	"context"
	"fmt"
	"runtime"

	"github.com/mmp/skymap/pkg/util"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
)

const DefaultCacheSize = 64

type cacheKey struct {
	zoom        int
	iterations  int
	fingerprint uint64
}

// Cache memoizes layouts computed by an Engine, keyed by zoom level and
// the fingerprint of the entity set. Layouts returned from the cache are
// copies, so callers may modify them freely.
type Cache struct {
	engine *Engine
	lru    *lru.Cache[cacheKey, Layout]
}

// NewCache returns a Cache holding up to size layouts.
func NewCache(e *Engine, size int) (*Cache, error) {
	c, err := lru.New[cacheKey, Layout](size)
	if err != nil {
		return nil, fmt.Errorf("declutter cache: %w", err)
	}
	return &Cache{engine: e, lru: c}, nil
}

func (c *Cache) Engine() *Engine { return c.engine }

// Layout returns the layout for the entities at the given zoom level,
// computing it if it is not already cached.
func (c *Cache) Layout(zoom int, entities []Entity) Layout {
	if zoom <= 1 {
		return Layout{}
	}

	key := cacheKey{zoom: zoom, iterations: c.engine.iterations, fingerprint: Fingerprint(entities)}
	if l, ok := c.lru.Get(key); ok {
		cacheHits.Inc()
		return util.DuplicateMap(l)
	}

	cacheMisses.Inc()
	l := c.engine.Layout(zoom, entities)
	c.lru.Add(key, util.DuplicateMap(l))
	return l
}

// Precompute fills the cache with layouts for each of the given zoom
// levels, running the computations concurrently.
func (c *Cache) Precompute(ctx context.Context, zooms []int, entities []Entity) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for _, z := range zooms {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.Layout(z, entities)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("declutter precompute: %w", err)
	}
	c.engine.lg.Debug("precomputed layouts", "zooms", len(zooms), "entities", len(entities), "cached", c.lru.Len())
	return nil
}

func (c *Cache) Len() int {
	return c.lru.Len()
}

func (c *Cache) Purge() {
	c.lru.Purge()
}
