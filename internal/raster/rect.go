package raster

import "iter"

// RectOutline returns the perimeter of the axis-aligned rectangle spanned
// by (x0,y0) and (x1,y1), in either corner order.
//
// The walk proceeds clockwise from the top-left corner: top edge, right
// edge, bottom edge, left edge. Each pixel, corners included, is visited
// exactly once. Degenerate rectangles collapse to a line or a single point.
func RectOutline(x0, y0, x1, y1 int) iter.Seq[Point] {
	left, right := x0, x1
	if left > right {
		left, right = right, left
	}
	top, bottom := y0, y1
	if top > bottom {
		top, bottom = bottom, top
	}

	return func(yield func(Point) bool) {
		// Single row or column: one straight run, no second pass.
		if top == bottom {
			for x := left; x <= right; x++ {
				if !yield(Point{X: x, Y: top}) {
					return
				}
			}
			return
		}
		if left == right {
			for y := top; y <= bottom; y++ {
				if !yield(Point{X: left, Y: y}) {
					return
				}
			}
			return
		}

		for x := left; x <= right; x++ {
			if !yield(Point{X: x, Y: top}) {
				return
			}
		}
		for y := top + 1; y <= bottom; y++ {
			if !yield(Point{X: right, Y: y}) {
				return
			}
		}
		for x := right - 1; x >= left; x-- {
			if !yield(Point{X: x, Y: bottom}) {
				return
			}
		}
		for y := bottom - 1; y >= top+1; y-- {
			if !yield(Point{X: left, Y: y}) {
				return
			}
		}
	}
}
