package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"asciiatlas/internal/authors"
	"asciiatlas/internal/render"
)

// DetailView displays detailed information about a selected author
type DetailView struct {
	author        *authors.Author
	x, y          int
	width, height int
	styles        *render.Styles
}

// NewDetailView creates a new detail view
func NewDetailView(x, y, width, height int, styles *render.Styles) *DetailView {
	return &DetailView{
		x:      x,
		y:      y,
		width:  width,
		height: height,
		styles: styles,
	}
}

// SetAuthor sets the author to display
func (d *DetailView) SetAuthor(a *authors.Author) {
	d.author = a
}

// Draw renders the detail view to the screen
func (d *DetailView) Draw(screen tcell.Screen) {
	clearPanel(screen, d.x, d.y, d.width, d.height)
	drawBorder(screen, d.x, d.y, d.width, d.height, d.styles.Status)

	if d.author == nil {
		drawTitle(screen, d.x, d.y, d.width, "Author", d.styles.Status)
		d.drawLine(d.x+2, d.y+d.height/2, "No author selected", screen)
		return
	}

	a := d.author
	drawTitle(screen, d.x, d.y, d.width, a.Name, d.styles.Status)

	lines := []string{
		fmt.Sprintf("Active:      %s to %s", formatYear(a.Start), formatYear(a.End)),
		fmt.Sprintf("Wikidata:    %s", a.QID),
		fmt.Sprintf("Occupations: %s", strings.Join(a.Occupations, ", ")),
	}
	for _, loc := range a.Locations {
		lines = append(lines, fmt.Sprintf("  %s %s (%.2f, %.2f)",
			loc.Property, loc.Place, loc.Position.Lat, loc.Position.Lon))
	}
	if a.WikipediaURL != "" {
		lines = append(lines, a.WikipediaURL)
	}

	y := d.y + 1
	for i, line := range lines {
		if y+i >= d.y+d.height-1 {
			break
		}
		d.drawLine(d.x+2, y+i, line, screen)
	}

	instructions := "Press ESC to return"
	instX := d.x + (d.width-len(instructions))/2
	for i, ch := range instructions {
		screen.SetContent(instX+i, d.y+d.height-1, ch, nil, d.styles.Status.Dim(true))
	}
}

// formatYear renders a signed year as BCE/CE
func formatYear(year int) string {
	if year < 0 {
		return fmt.Sprintf("%d BCE", -year)
	}
	return fmt.Sprintf("%d CE", year)
}

// drawLine draws a single clipped line of text
func (d *DetailView) drawLine(x, y int, text string, screen tcell.Screen) {
	for i := 0; i < min(len(text), d.width-4); i++ {
		screen.SetContent(x+i, y, rune(text[i]), nil, d.styles.Status)
	}
}

// UpdateDimensions updates the view dimensions
func (d *DetailView) UpdateDimensions(x, y, width, height int) {
	d.x = x
	d.y = y
	d.width = width
	d.height = height
}
