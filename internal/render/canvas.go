package render

import (
	"github.com/gdamore/tcell/v2"
)

// Canvas is a 2D grid of character cells the map is composed into
// before being blitted to the terminal.
type Canvas struct {
	width  int
	height int
	cells  []Cell
}

// Cell is a single character cell with style
type Cell struct {
	Char  rune
	Style tcell.Style
}

var blank = Cell{Char: ' ', Style: tcell.StyleDefault}

// NewCanvas creates a new blank canvas
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	c.Clear()
	return c
}

// Set sets the character and style at the given position.
// Out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int, char rune, style tcell.Style) {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		c.cells[y*c.width+x] = Cell{Char: char, Style: style}
	}
}

// Get retrieves the cell at the given position
func (c *Canvas) Get(x, y int) Cell {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		return c.cells[y*c.width+x]
	}
	return blank
}

// Clear resets the entire canvas to spaces with default style
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = blank
	}
}

// DrawText draws a string at the given position, clipped at the edges
func (c *Canvas) DrawText(x, y int, text string, style tcell.Style) {
	for i, char := range []rune(text) {
		c.Set(x+i, y, char, style)
	}
}

// DrawTextCentered draws a string centered on x
func (c *Canvas) DrawTextCentered(x, y int, text string, style tcell.Style) {
	c.DrawText(x-len([]rune(text))/2, y, text, style)
}

// Width returns the canvas width
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height
func (c *Canvas) Height() int {
	return c.height
}

// Blit renders the canvas to a tcell screen
func (c *Canvas) Blit(screen tcell.Screen, offsetX, offsetY int) {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			cell := c.cells[y*c.width+x]
			screen.SetContent(offsetX+x, offsetY+y, cell.Char, nil, cell.Style)
		}
	}
}
