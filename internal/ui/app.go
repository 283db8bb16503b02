package ui

import (
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/rotisserie/eris"

	"asciiatlas/internal/authors"
	"asciiatlas/internal/geo"
	"asciiatlas/internal/label"
	"asciiatlas/internal/render"
)

// ViewMode represents the current view mode
type ViewMode int

const (
	ViewModeMap ViewMode = iota
	ViewModeDetail
)

// Options bundles the startup view settings
type Options struct {
	CenterLat   float64
	CenterLon   float64
	Zoom        int
	AspectRatio float64
}

// App is the main application controller. Everything is event driven:
// a pan, zoom or toggle key triggers one synchronous refresh pass,
// after which the frame is redrawn.
type App struct {
	screen      tcell.Screen
	mapView     *MapView
	listView    *ListView
	detailView  *DetailView
	currentView ViewMode

	authors     []*authors.Author
	occupations []string
	occIdx      int // 0 = all
	tags        []string
	tagIdx      int // 0 = all
}

// NewApp creates the application over the loaded datasets
func NewApp(engine *label.Engine, places []*geo.Place, physical []*geo.PhysicalFeature, authorList []*authors.Author, styles *render.Styles, opts Options) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, eris.Wrap(err, "ui: create screen")
	}
	if err := screen.Init(); err != nil {
		return nil, eris.Wrap(err, "ui: initialize screen")
	}

	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	width, height := screen.Size()

	mapView := NewMapView(width, height, engine, places, physical, styles,
		opts.CenterLat, opts.CenterLon, opts.Zoom, opts.AspectRatio)

	listWidth := 34
	listHeight := 12
	listView := NewListView(0, height-listHeight, listWidth, listHeight, styles)

	detailWidth := 56
	detailHeight := 14
	detailView := NewDetailView(0, height-detailHeight, detailWidth, detailHeight, styles)

	return &App{
		screen:      screen,
		mapView:     mapView,
		listView:    listView,
		detailView:  detailView,
		currentView: ViewModeMap,
		authors:     authorList,
		occupations: authors.Occupations(authorList),
		tags:        collectTags(places),
	}, nil
}

// SetError surfaces a data-loading problem on the status line
func (a *App) SetError(msg string) {
	a.mapView.SetError(msg)
}

// Run starts the application main loop. The loop blocks on input;
// every view-changing key triggers one refresh pass before the next
// frame is drawn.
func (a *App) Run() error {
	defer a.cleanup()

	a.refresh()
	a.render()

	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !a.handleEvent(ev) {
			return nil
		}
		a.render()
	}
}

// activeAuthors returns the authors visible under the current year and
// occupation filter.
func (a *App) activeAuthors() []*authors.Author {
	state := a.mapView.State()
	return authors.FilterActive(a.authors, state.Year, state.Occupation)
}

// refresh recomputes the author list and re-runs the placement pass
func (a *App) refresh() {
	active := a.activeAuthors()
	a.listView.Update(active)

	selectedQID := ""
	if sel := a.listView.Selected(); sel != nil {
		selectedQID = sel.QID
	}
	a.mapView.Refresh(active, selectedQID)
}

// render redraws the current frame
func (a *App) render() {
	a.screen.Clear()
	a.mapView.Draw(a.screen)

	switch a.currentView {
	case ViewModeMap:
		a.listView.Draw(a.screen)
	case ViewModeDetail:
		a.detailView.Draw(a.screen)
	}

	a.screen.Show()
}

// handleEvent processes keyboard events; returns false to quit
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape:
			if a.currentView == ViewModeDetail {
				a.currentView = ViewModeMap
				return true
			}
			return false

		case tcell.KeyEnter:
			if a.currentView == ViewModeMap {
				a.currentView = ViewModeDetail
				a.detailView.SetAuthor(a.listView.Selected())
			}

		case tcell.KeyUp:
			a.mapView.Pan(0, -2)
			a.refresh()
		case tcell.KeyDown:
			a.mapView.Pan(0, 2)
			a.refresh()
		case tcell.KeyLeft:
			a.mapView.Pan(-4, 0)
			a.refresh()
		case tcell.KeyRight:
			a.mapView.Pan(4, 0)
			a.refresh()

		case tcell.KeyRune:
			return a.handleRune(ev.Rune())
		}

	case *tcell.EventResize:
		a.handleResize()
	}

	return true
}

// handleRune processes letter keys; returns false to quit
func (a *App) handleRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		return false

	case '+', '=':
		a.mapView.ZoomIn()
		a.refresh()
	case '-', '_':
		a.mapView.ZoomOut()
		a.refresh()

	case 'p', 'P':
		a.mapView.TogglePlaces()
		a.refresh()
	case 'f', 'F':
		a.mapView.TogglePhysical()
		a.refresh()
	case 's', 'S':
		a.mapView.ToggleSeaLabels()
		a.refresh()

	case 'o', 'O':
		a.occIdx = (a.occIdx + 1) % (len(a.occupations) + 1)
		if a.occIdx == 0 {
			a.mapView.SetOccupation("")
		} else {
			a.mapView.SetOccupation(a.occupations[a.occIdx-1])
		}
		a.refresh()

	case 'g', 'G':
		a.tagIdx = (a.tagIdx + 1) % (len(a.tags) + 1)
		if a.tagIdx == 0 {
			a.mapView.SetTagFilter("")
		} else {
			a.mapView.SetTagFilter(a.tags[a.tagIdx-1])
		}
		a.refresh()

	case '[':
		a.mapView.ShiftYear(-25)
		a.refresh()
	case ']':
		a.mapView.ShiftYear(25)
		a.refresh()

	case 'k', 'K':
		a.listView.SelectPrev()
		a.refresh()
	case 'j', 'J':
		a.listView.SelectNext()
		a.refresh()

	case 'c', 'C':
		if sel := a.listView.Selected(); sel != nil {
			if loc, ok := sel.PrimaryLocation(); ok {
				a.mapView.CenterOn(loc.Position)
				a.refresh()
			}
		}

	case 'r', 'R':
		a.refresh()
	}

	return true
}

// handleResize handles terminal resize events
func (a *App) handleResize() {
	a.screen.Sync()
	width, height := a.screen.Size()

	a.mapView.UpdateDimensions(width, height)

	listWidth := 34
	listHeight := 12
	a.listView.UpdateDimensions(0, height-listHeight, listWidth, listHeight)

	detailWidth := 56
	detailHeight := 14
	a.detailView.UpdateDimensions(0, height-detailHeight, detailWidth, detailHeight)

	a.refresh()
}

// cleanup restores the terminal
func (a *App) cleanup() {
	if a.screen != nil {
		a.screen.Fini()
	}
}

// collectTags returns the sorted unique tags across all places
func collectTags(places []*geo.Place) []string {
	seen := make(map[string]struct{})
	for _, p := range places {
		for _, t := range p.Tags {
			seen[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
