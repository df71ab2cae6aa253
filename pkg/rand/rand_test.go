// pkg/rand/rand_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rand

import (
	"testing"
)

func TestPermutationElement(t *testing.T) {
	for _, n := range []int{8, 31, 10523} {
		for _, h := range []uint32{0, 0xff, 0xfeedface} {
			m := make(map[int]int)

			for i := 0; i < n; i++ {
				perm := PermutationElement(i, n, h)
				if _, ok := m[perm]; ok {
					t.Errorf("%d: appeared multiple times", perm)
				}
				m[perm] = i
			}
		}
	}
}

func TestSeeded(t *testing.T) {
	a, b := NewSeeded(1234), NewSeeded(1234)
	for i := 0; i < 100; i++ {
		if va, vb := a.Uint32(), b.Uint32(); va != vb {
			t.Fatalf("%d: same seed gave %d and %d", i, va, vb)
		}
	}

	c := NewSeeded(4321)
	same := 0
	a.Seed(1234)
	for i := 0; i < 100; i++ {
		if a.Uint32() == c.Uint32() {
			same++
		}
	}
	if same > 5 {
		t.Errorf("different seeds gave %d identical values out of 100", same)
	}
}

func TestUniform(t *testing.T) {
	r := NewSeeded(7)
	for i := 0; i < 10000; i++ {
		if v := r.Uniform(-5, 10); v < -5 || v > 10 {
			t.Fatalf("Uniform gave out of range value %f", v)
		}
		if v := r.Intn(13); v < 0 || v >= 13 {
			t.Fatalf("Intn gave out of range value %d", v)
		}
	}
}

func TestSampleFiltered(t *testing.T) {
	r := NewSeeded(0)
	if SampleFiltered(r, []int{}, func(int) bool { return true }) != -1 {
		t.Errorf("Returned non-zero for empty slice")
	}
	if SampleFiltered(r, []int{0, 1, 2, 3, 4}, func(int) bool { return false }) != -1 {
		t.Errorf("Returned non-zero for fully filtered")
	}
	if idx := SampleFiltered(r, []int{0, 1, 2, 3, 4}, func(v int) bool { return v == 3 }); idx != 3 {
		t.Errorf("Returned %d rather than 3 for filtered slice", idx)
	}

	var counts [5]int
	for i := 0; i < 9000; i++ {
		idx := SampleFiltered(r, []int{0, 1, 2, 3, 4}, func(v int) bool { return v&1 == 0 })
		counts[idx]++
	}
	if counts[1] != 0 || counts[3] != 0 {
		t.Errorf("Incorrectly sampled odd items. Counts: %+v", counts)
	}

	slop := 300
	if counts[0] < 3000-slop || counts[0] > 3000+slop ||
		counts[2] < 3000-slop || counts[2] > 3000+slop ||
		counts[4] < 3000-slop || counts[4] > 3000+slop {
		t.Errorf("Didn't find roughly 3000 samples for the even items. Counts: %+v", counts)
	}
}

func TestShuffle(t *testing.T) {
	r := NewSeeded(99)
	s := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	Shuffle(r, s)

	seen := make(map[int]bool)
	for _, v := range s {
		if seen[v] {
			t.Errorf("%d appeared multiple times after shuffle: %v", v, s)
		}
		seen[v] = true
	}
	if len(seen) != 10 {
		t.Errorf("lost elements during shuffle: %v", s)
	}
}
