// Package label implements the declutter placement engine for map
// labels: which places get a label at the current zoom, and where each
// label goes so that it does not cover the ones already placed.
package label

// Rect is an axis-aligned bounding rectangle in screen space.
// X1/Y1 is the top-left corner, X2/Y2 the bottom-right.
type Rect struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

// RectAround builds a width×height rectangle centered on (x, y)
func RectAround(x, y, width, height float64) Rect {
	return Rect{
		X1: x - width/2,
		Y1: y - height/2,
		X2: x + width/2,
		Y2: y + height/2,
	}
}

// Overlaps reports whether two rectangles intersect. Touching edges
// count as overlapping.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.X2 < o.X1 || r.X1 > o.X2 || r.Y2 < o.Y1 || r.Y1 > o.Y2)
}

// CountOverlaps returns how many rectangles in occupied intersect r
func CountOverlaps(r Rect, occupied []Rect) int {
	n := 0
	for _, o := range occupied {
		if r.Overlaps(o) {
			n++
		}
	}
	return n
}
