package raster

import "iter"

// Line returns the Bresenham walk from (x0,y0) to (x1,y1).
//
// The sequence always includes both endpoints, visits each pixel once, and
// is 8-connected: consecutive pixels differ by at most one step on each
// axis. Coordinates are yielded in walk order starting at (x0,y0).
func Line(x0, y0, x1, y1 int) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		dx := abs(x1 - x0)
		dy := -abs(y1 - y0)

		sx := 1
		if x0 > x1 {
			sx = -1
		}
		sy := 1
		if y0 > y1 {
			sy = -1
		}

		x, y := x0, y0
		err := dx + dy

		for {
			if !yield(Point{X: x, Y: y}) {
				return
			}
			if x == x1 && y == y1 {
				return
			}
			e2 := 2 * err
			if e2 >= dy {
				err += dy
				x += sx
			}
			if e2 <= dx {
				err += dx
				y += sy
			}
		}
	}
}
