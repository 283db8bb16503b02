package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"asciiatlas/internal/authors"
	"asciiatlas/internal/render"
)

// ListView displays a scrollable list of the authors active in the
// current year window.
type ListView struct {
	authors       []*authors.Author
	selectedIndex int
	scrollOffset  int
	maxVisible    int
	x, y          int
	width, height int
	styles        *render.Styles
}

// NewListView creates a new author list view
func NewListView(x, y, width, height int, styles *render.Styles) *ListView {
	maxVisible := height - 2 // border rows
	if maxVisible < 1 {
		maxVisible = 1
	}

	return &ListView{
		selectedIndex: 0,
		scrollOffset:  0,
		maxVisible:    maxVisible,
		x:             x,
		y:             y,
		width:         width,
		height:        height,
		styles:        styles,
	}
}

// Update refreshes the author list
func (l *ListView) Update(active []*authors.Author) {
	l.authors = active

	if l.selectedIndex >= len(l.authors) {
		l.selectedIndex = len(l.authors) - 1
	}
	if l.selectedIndex < 0 {
		l.selectedIndex = 0
	}

	l.adjustScroll()
}

// SelectNext moves selection down
func (l *ListView) SelectNext() {
	if l.selectedIndex < len(l.authors)-1 {
		l.selectedIndex++
		l.adjustScroll()
	}
}

// SelectPrev moves selection up
func (l *ListView) SelectPrev() {
	if l.selectedIndex > 0 {
		l.selectedIndex--
		l.adjustScroll()
	}
}

// adjustScroll keeps the selected row visible
func (l *ListView) adjustScroll() {
	if l.selectedIndex >= l.scrollOffset+l.maxVisible {
		l.scrollOffset = l.selectedIndex - l.maxVisible + 1
	}
	if l.selectedIndex < l.scrollOffset {
		l.scrollOffset = l.selectedIndex
	}
	if l.scrollOffset < 0 {
		l.scrollOffset = 0
	}
}

// Selected returns the currently selected author
func (l *ListView) Selected() *authors.Author {
	if l.selectedIndex >= 0 && l.selectedIndex < len(l.authors) {
		return l.authors[l.selectedIndex]
	}
	return nil
}

// rowText formats one list row: lifespan then name
func rowText(a *authors.Author) string {
	return fmt.Sprintf("%5d %s", a.Start, a.Name)
}

// Draw renders the list view to the screen
func (l *ListView) Draw(screen tcell.Screen) {
	clearPanel(screen, l.x, l.y, l.width, l.height)
	drawBorder(screen, l.x, l.y, l.width, l.height, l.styles.Status)
	drawTitle(screen, l.x, l.y, l.width, fmt.Sprintf("Authors (%d)", len(l.authors)), l.styles.Status)

	visibleCount := min(l.maxVisible, len(l.authors)-l.scrollOffset)
	for i := 0; i < visibleCount; i++ {
		idx := l.scrollOffset + i
		if idx >= len(l.authors) {
			break
		}

		style := l.styles.Status
		if idx == l.selectedIndex {
			style = l.styles.Selected
		}

		text := rowText(l.authors[idx])
		x := l.x + 1
		y := l.y + i + 1
		for j := 0; j < l.width-2; j++ {
			ch := ' '
			if j < len(text) {
				ch = rune(text[j])
			}
			screen.SetContent(x+j, y, ch, nil, style)
		}
	}

	if len(l.authors) > l.maxVisible {
		screen.SetContent(l.x+l.width-2, l.y, '↕', nil, l.styles.Status)
	}
}

// UpdateDimensions updates the view dimensions
func (l *ListView) UpdateDimensions(x, y, width, height int) {
	l.x = x
	l.y = y
	l.width = width
	l.height = height
	l.maxVisible = height - 2
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
	l.adjustScroll()
}

// clearPanel blanks a panel interior so the map does not bleed through
func clearPanel(screen tcell.Screen, x, y, width, height int) {
	for row := y + 1; row < y+height-1; row++ {
		for col := x + 1; col < x+width-1; col++ {
			screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
		}
	}
}

// drawBorder draws a box border
func drawBorder(screen tcell.Screen, x, y, width, height int, style tcell.Style) {
	screen.SetContent(x, y, '┌', nil, style)
	screen.SetContent(x+width-1, y, '┐', nil, style)
	screen.SetContent(x, y+height-1, '└', nil, style)
	screen.SetContent(x+width-1, y+height-1, '┘', nil, style)

	for i := 1; i < width-1; i++ {
		screen.SetContent(x+i, y, '─', nil, style)
		screen.SetContent(x+i, y+height-1, '─', nil, style)
	}
	for i := 1; i < height-1; i++ {
		screen.SetContent(x, y+i, '│', nil, style)
		screen.SetContent(x+width-1, y+i, '│', nil, style)
	}
}

// drawTitle centers a title on a panel's top border
func drawTitle(screen tcell.Screen, x, y, width int, title string, style tcell.Style) {
	titleX := x + (width-len(title))/2
	for i, ch := range title {
		screen.SetContent(titleX+i, y, ch, nil, style)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
