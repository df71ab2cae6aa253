// pkg/math/projection.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

///////////////////////////////////////////////////////////////////////////
// Map projection

// The world map is a plate carrée image: longitude maps linearly to x and
// latitude to y with no great-circle correction. Map coordinates are
// percentages of the map's bounding box, with (0,0) at the upper left
// (180W, 90N) and (100,100) at the lower right (180E, 90S).

// MapFromLatLong returns the normalized map position of the given
// point. Inputs are not range-checked; positions outside of the valid
// latitude/longitude ranges give coordinates outside of [0,100].
func MapFromLatLong(p Point2LL) [2]float32 {
	return [2]float32{
		(p[0] + 180) / 360 * 100,
		(90 - p[1]) / 180 * 100,
	}
}

// LatLongFromMap is the inverse of MapFromLatLong.
func LatLongFromMap(p [2]float32) Point2LL {
	return Point2LL{
		p[0]/100*360 - 180,
		90 - p[1]/100*180,
	}
}
