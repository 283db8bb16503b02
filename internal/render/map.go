package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"asciiatlas/internal/authors"
	"asciiatlas/internal/geo"
	"asciiatlas/internal/label"
)

// MapRenderer draws the atlas layers onto a canvas. It implements the
// view.Surface capability, so the refresh controller can stay ignorant
// of tcell.
type MapRenderer struct {
	projection *geo.Projection
	canvas     *Canvas
	styles     *Styles
}

// NewMapRenderer creates a map renderer
func NewMapRenderer(projection *geo.Projection, canvas *Canvas, styles *Styles) *MapRenderer {
	return &MapRenderer{
		projection: projection,
		canvas:     canvas,
		styles:     styles,
	}
}

// Clear discards the previous pass
func (m *MapRenderer) Clear() {
	m.canvas.Clear()
}

// AddLabel draws a placed label: a marker at the place's true
// projection and the name centered on the accepted anchor, which the
// engine may have pushed away from the marker.
func (m *MapRenderer) AddLabel(p label.Placement) {
	truePt := m.projection.ProjectLatLon(p.Place.Position)
	m.canvas.Set(truePt.X, truePt.Y, '●', m.styles.Marker)
	m.canvas.DrawTextCentered(p.Anchor.X, p.Anchor.Y, p.Place.Name, m.styles.Label(p.Class))
}

// AddShape traces a physical feature's polylines
func (m *MapRenderer) AddShape(f *geo.PhysicalFeature, lines [][]geo.Point) {
	style := m.styles.Shape(f.Kind)
	char := ShapeChar(f.Kind)
	for _, line := range lines {
		for i := 0; i < len(line)-1; i++ {
			m.drawLine(line[i].X, line[i].Y, line[i+1].X, line[i+1].Y, char, style)
		}
	}
}

// AddSeaLabel draws a sea-region name at its centroid anchor
func (m *MapRenderer) AddSeaLabel(name string, at geo.Point) {
	m.canvas.DrawTextCentered(at.X, at.Y, name, m.styles.Sea)
}

// RenderAuthors draws author marks on top of the map layers. Authors
// are not decluttered; there are few of them per year and they always
// win over place labels.
func (m *MapRenderer) RenderAuthors(active []*authors.Author, selectedQID string) {
	for _, a := range active {
		loc, ok := a.PrimaryLocation()
		if !ok {
			continue
		}
		pt := m.projection.ProjectLatLon(loc.Position)

		style := m.styles.Author
		if a.QID == selectedQID {
			style = m.styles.Selected
		}
		m.canvas.Set(pt.X, pt.Y, '◆', style)
		if a.QID == selectedQID {
			m.canvas.DrawText(pt.X+2, pt.Y, a.Name, style)
		}
	}
}

// RenderStatus draws the status line with the current view settings
func (m *MapRenderer) RenderStatus(zoom, year int, occupation string, labels int, errMsg string) {
	y := m.canvas.Height() - 1
	for x := 0; x < m.canvas.Width(); x++ {
		m.canvas.Set(x, y, ' ', m.styles.Status)
	}

	if errMsg != "" {
		m.canvas.DrawText(1, y, "error: "+errMsg, m.styles.Selected)
		return
	}

	era := "CE"
	displayYear := year
	if year < 0 {
		era = "BCE"
		displayYear = -year
	}
	occ := occupation
	if occ == "" {
		occ = "all"
	}
	status := fmt.Sprintf(" z%d  %d %s  occupation:%s  labels:%d ", zoom, displayYear, era, occ, labels)
	m.canvas.DrawText(1, y, status, m.styles.Status)
}

// drawLine implements Bresenham's line algorithm on the canvas
func (m *MapRenderer) drawLine(x0, y0, x1, y1 int, char rune, style tcell.Style) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}

	err := dx - dy
	for {
		m.canvas.Set(x0, y0, char, style)

		if x0 == x1 && y0 == y1 {
			return
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// UpdateProjection updates the renderer's projection
func (m *MapRenderer) UpdateProjection(projection *geo.Projection) {
	m.projection = projection
}

// UpdateCanvas updates the renderer's canvas
func (m *MapRenderer) UpdateCanvas(canvas *Canvas) {
	m.canvas = canvas
}
