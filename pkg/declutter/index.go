// pkg/declutter/index.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package declutter

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dhconnelly/rtreego"
)

var ErrUnknownIndex = errors.New("unknown spatial index")

// IndexKind selects how candidate neighbors are found in each relaxation
// step.
type IndexKind int

const (
	// IndexBruteForce considers all pairs of entities.
	IndexBruteForce IndexKind = iota
	// IndexRTree rebuilds an R-tree of entity positions each iteration
	// and only considers entities within the minimum distance's bounding
	// box.
	IndexRTree
)

func (k IndexKind) String() string {
	switch k {
	case IndexBruteForce:
		return "bruteforce"
	case IndexRTree:
		return "rtree"
	default:
		return fmt.Sprintf("IndexKind(%d)", int(k))
	}
}

// ParseIndex returns the IndexKind with the given name.
func ParseIndex(s string) (IndexKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bruteforce", "brute":
		return IndexBruteForce, nil
	case "rtree":
		return IndexRTree, nil
	default:
		return IndexBruteForce, fmt.Errorf("%q: %w", s, ErrUnknownIndex)
	}
}

func (k IndexKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *IndexKind) UnmarshalText(b []byte) error {
	var err error
	*k, err = ParseIndex(string(b))
	return err
}

// neighborFinder returns candidate neighbors for an entity. Candidates
// may be farther than the minimum distance away but all entities closer
// than it must be returned; they are returned in increasing index order
// so that displacements are summed in the same order regardless of the
// index used.
type neighborFinder interface {
	Build(pos [][2]float32, minDist float32)
	Neighbors(i int, pos [][2]float32, minDist float32, result []int) []int
}

func newNeighborFinder(k IndexKind) neighborFinder {
	if k == IndexRTree {
		return &rtreeFinder{}
	}
	return bruteForceFinder{}
}

type bruteForceFinder struct{}

func (bruteForceFinder) Build([][2]float32, float32) {}

func (bruteForceFinder) Neighbors(i int, pos [][2]float32, minDist float32, result []int) []int {
	for j := range pos {
		if j != i {
			result = append(result, j)
		}
	}
	return result
}

// Point entities are given a tiny extent since the R-tree requires
// non-degenerate rectangles.
const rtreePointSize = 1e-6

type indexedPoint struct {
	index int
	rect  rtreego.Rect
}

func (p *indexedPoint) Bounds() rtreego.Rect {
	return p.rect
}

type rtreeFinder struct {
	tree *rtreego.Rtree
}

func (r *rtreeFinder) Build(pos [][2]float32, minDist float32) {
	// 2D, min=25 children, max=50 children
	r.tree = rtreego.NewTree(2, 25, 50)
	for i, p := range pos {
		rect, err := rtreego.NewRect(rtreego.Point{float64(p[0]), float64(p[1])},
			[]float64{rtreePointSize, rtreePointSize})
		if err != nil {
			// Only possible with non-positive lengths.
			panic(err)
		}
		r.tree.Insert(&indexedPoint{index: i, rect: rect})
	}
}

func (r *rtreeFinder) Neighbors(i int, pos [][2]float32, minDist float32, result []int) []int {
	// Padded slightly to allow for float32 rounding.
	ext := float64(minDist) * 1.01
	p := pos[i]
	q, err := rtreego.NewRect(rtreego.Point{float64(p[0]) - ext, float64(p[1]) - ext},
		[]float64{2 * ext, 2 * ext})
	if err != nil {
		panic(err)
	}

	start := len(result)
	for _, s := range r.tree.SearchIntersect(q) {
		if ip := s.(*indexedPoint); ip.index != i {
			result = append(result, ip.index)
		}
	}
	slices.Sort(result[start:])
	return result
}
