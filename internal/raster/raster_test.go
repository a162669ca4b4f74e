package raster

import "testing"

func TestLineIncludesBothEndpoints(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
	}{
		{"diagonal", 0, 0, 3, 3},
		{"shallow", 0, 0, 7, 2},
		{"steep", 2, 9, 4, 1},
		{"reverse", 5, 5, 0, 0},
		{"horizontal", 1, 4, 8, 4},
		{"vertical", 3, 0, 3, 6},
		{"single point", 2, 2, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := Collect(Line(tt.x0, tt.y0, tt.x1, tt.y1))
			if len(pts) == 0 {
				t.Fatal("empty line")
			}
			if pts[0] != (Point{tt.x0, tt.y0}) {
				t.Errorf("first point = %v, want (%d,%d)", pts[0], tt.x0, tt.y0)
			}
			last := pts[len(pts)-1]
			if last != (Point{tt.x1, tt.y1}) {
				t.Errorf("last point = %v, want (%d,%d)", last, tt.x1, tt.y1)
			}
		})
	}
}

func TestLineIsEightConnected(t *testing.T) {
	pts := Collect(Line(0, 0, 13, 5))
	for i := 1; i < len(pts); i++ {
		dx := abs(pts[i].X - pts[i-1].X)
		dy := abs(pts[i].Y - pts[i-1].Y)
		if dx > 1 || dy > 1 || (dx == 0 && dy == 0) {
			t.Errorf("step %d: %v -> %v is not 8-connected", i, pts[i-1], pts[i])
		}
	}
}

func TestLineDiagonalPixels(t *testing.T) {
	pts := Collect(Line(0, 0, 3, 3))
	want := []Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}
	if len(pts) != len(want) {
		t.Fatalf("got %d points, want %d", len(pts), len(want))
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, pts[i], want[i])
		}
	}
}

func TestLineIsRestartable(t *testing.T) {
	seq := Line(1, 2, 9, 5)
	first := Collect(seq)
	second := Collect(seq)
	if len(first) != len(second) {
		t.Fatalf("restarted length %d, want %d", len(second), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("point %d differs on restart: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestRectOutlineCornersOnce(t *testing.T) {
	pts := Collect(RectOutline(1, 1, 5, 4))

	counts := make(map[Point]int)
	for _, p := range pts {
		counts[p]++
	}
	for p, n := range counts {
		if n != 1 {
			t.Errorf("pixel %v visited %d times", p, n)
		}
	}

	corners := []Point{{1, 1}, {5, 1}, {1, 4}, {5, 4}}
	for _, c := range corners {
		if counts[c] != 1 {
			t.Errorf("corner %v visited %d times, want 1", c, counts[c])
		}
	}

	// Perimeter of a 5x4-pixel rect.
	wantLen := 2*(5-1) + 2*(4-1)
	if len(pts) != wantLen {
		t.Errorf("perimeter has %d pixels, want %d", len(pts), wantLen)
	}
}

func TestRectOutlineDegenerate(t *testing.T) {
	row := Collect(RectOutline(2, 3, 6, 3))
	if len(row) != 5 {
		t.Errorf("single-row rect has %d pixels, want 5", len(row))
	}
	col := Collect(RectOutline(4, 0, 4, 3))
	if len(col) != 4 {
		t.Errorf("single-column rect has %d pixels, want 4", len(col))
	}
	pt := Collect(RectOutline(7, 7, 7, 7))
	if len(pt) != 1 || pt[0] != (Point{7, 7}) {
		t.Errorf("point rect = %v, want [(7,7)]", pt)
	}
}

func TestRectOutlineUnorderedCorners(t *testing.T) {
	a := Collect(RectOutline(5, 4, 1, 1))
	b := Collect(RectOutline(1, 1, 5, 4))
	if len(a) != len(b) {
		t.Fatalf("corner order changed pixel count: %d vs %d", len(a), len(b))
	}
}

func TestEllipseOutlineSymmetry(t *testing.T) {
	// Odd width 5 snaps to 6; effective box (0,0)-(6,4), center (3,2).
	pts := Collect(EllipseOutline(0, 0, 5, 4))

	set := make(map[Point]struct{}, len(pts))
	for _, p := range pts {
		if _, dup := set[p]; dup {
			t.Errorf("duplicate pixel %v", p)
		}
		set[p] = struct{}{}
	}

	const cx, cy = 3, 2
	for p := range set {
		mx := Point{X: 2*cx - p.X, Y: p.Y}
		my := Point{X: p.X, Y: 2*cy - p.Y}
		if _, ok := set[mx]; !ok {
			t.Errorf("missing X mirror of %v: %v", p, mx)
		}
		if _, ok := set[my]; !ok {
			t.Errorf("missing Y mirror of %v: %v", p, my)
		}
	}
}

func TestEllipseOutlineTouchesExtremes(t *testing.T) {
	pts := Collect(EllipseOutline(0, 0, 8, 6))
	set := make(map[Point]struct{}, len(pts))
	for _, p := range pts {
		set[p] = struct{}{}
	}
	for _, want := range []Point{{0, 3}, {8, 3}, {4, 0}, {4, 6}} {
		if _, ok := set[want]; !ok {
			t.Errorf("extreme %v missing from outline", want)
		}
	}
}

func TestEllipseOutlineDegenerate(t *testing.T) {
	pt := Collect(EllipseOutline(3, 3, 3, 3))
	if len(pt) != 1 || pt[0] != (Point{3, 3}) {
		t.Errorf("point ellipse = %v, want [(3,3)]", pt)
	}

	vert := Collect(EllipseOutline(2, 0, 2, 4))
	if len(vert) != 5 {
		t.Fatalf("vertical ellipse has %d pixels, want 5", len(vert))
	}
	for i, p := range vert {
		if p.X != 2 || p.Y != i {
			t.Errorf("vertical ellipse pixel %d = %v", i, p)
		}
	}

	horiz := Collect(EllipseOutline(0, 5, 6, 5))
	if len(horiz) != 7 {
		t.Errorf("horizontal ellipse has %d pixels, want 7", len(horiz))
	}
}

func TestEllipseOutlineRestartable(t *testing.T) {
	seq := EllipseOutline(0, 0, 10, 6)
	first := Collect(seq)
	second := Collect(seq)
	if len(first) != len(second) {
		t.Fatalf("restarted length %d, want %d", len(second), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("point %d differs on restart: %v vs %v", i, first[i], second[i])
		}
	}
}
