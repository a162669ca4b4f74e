package raster

import "iter"

// Point is an integer pixel coordinate.
type Point struct {
	X int
	Y int
}

// Collect drains a coordinate sequence into a slice.
// Mostly useful in tests and for tools that need random access.
func Collect(seq iter.Seq[Point]) []Point {
	var pts []Point
	for p := range seq {
		pts = append(pts, p)
	}
	return pts
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
