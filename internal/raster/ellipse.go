package raster

import "iter"

// EllipseOutline returns the midpoint-algorithm outline of the ellipse
// inscribed in the box spanned by (x0,y0) and (x1,y1), in either corner
// order.
//
// An odd span on either axis is snapped outward by one pixel on its high
// bound, so the effective box always has even spans and the outline is
// exactly 4-fold symmetric about the box center. Degenerate boxes produce
// a single point (zero width and height), a vertical line (zero width), or
// a horizontal line (zero height).
//
// The symmetric plot can revisit pixels near the axis extremes; those are
// deduplicated within a single call, so no coordinate is yielded twice.
func EllipseOutline(x0, y0, x1, y1 int) iter.Seq[Point] {
	left, right := x0, x1
	if left > right {
		left, right = right, left
	}
	top, bottom := y0, y1
	if top > bottom {
		top, bottom = bottom, top
	}

	// Snap odd spans outward on the high bound.
	if (right-left)%2 != 0 {
		right++
	}
	if (bottom-top)%2 != 0 {
		bottom++
	}

	rx := (right - left) / 2
	ry := (bottom - top) / 2
	cx := left + rx
	cy := top + ry

	return func(yield func(Point) bool) {
		switch {
		case rx == 0 && ry == 0:
			yield(Point{X: cx, Y: cy})
			return
		case rx == 0:
			for y := top; y <= bottom; y++ {
				if !yield(Point{X: cx, Y: y}) {
					return
				}
			}
			return
		case ry == 0:
			for x := left; x <= right; x++ {
				if !yield(Point{X: x, Y: cy}) {
					return
				}
			}
			return
		}

		seen := make(map[Point]struct{}, 4*(rx+ry))
		emit := func(x, y int) bool {
			p := Point{X: x, Y: y}
			if _, dup := seen[p]; dup {
				return true
			}
			seen[p] = struct{}{}
			return yield(p)
		}
		// Mirror one quadrant point into all four quadrants.
		plot4 := func(dx, dy int) bool {
			return emit(cx+dx, cy+dy) &&
				emit(cx-dx, cy+dy) &&
				emit(cx+dx, cy-dy) &&
				emit(cx-dx, cy-dy)
		}

		twoRx2 := 2 * rx * rx
		twoRy2 := 2 * ry * ry

		// Region 1: slope > -1, step along x from (rx, 0).
		x, y := rx, 0
		xChange := ry * ry * (1 - 2*rx)
		yChange := rx * rx
		errAcc := 0
		stopX := twoRy2 * rx
		stopY := 0
		for stopX >= stopY {
			if !plot4(x, y) {
				return
			}
			y++
			stopY += twoRx2
			errAcc += yChange
			yChange += twoRx2
			if 2*errAcc+xChange > 0 {
				x--
				stopX -= twoRy2
				errAcc += xChange
				xChange += twoRy2
			}
		}

		// Region 2: slope < -1, step along y from (0, ry).
		x, y = 0, ry
		xChange = ry * ry
		yChange = rx * rx * (1 - 2*ry)
		errAcc = 0
		stopX = 0
		stopY = twoRx2 * ry
		for stopX <= stopY {
			if !plot4(x, y) {
				return
			}
			x++
			stopX += twoRy2
			errAcc += xChange
			xChange += twoRy2
			if 2*errAcc+yChange > 0 {
				y--
				stopY -= twoRx2
				errAcc += yChange
				yChange += twoRx2
			}
		}
	}
}
