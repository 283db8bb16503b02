package ui

import (
	"github.com/gdamore/tcell/v2"

	"asciiatlas/internal/authors"
	"asciiatlas/internal/geo"
	"asciiatlas/internal/label"
	"asciiatlas/internal/render"
	"asciiatlas/internal/view"
)

// MapView owns the map canvas, the projection and the refresh
// controller. All recomputation happens in Refresh, driven by discrete
// events; Draw only blits the last composed frame.
type MapView struct {
	projection *geo.Projection
	canvas     *render.Canvas
	renderer   *render.MapRenderer
	controller *view.Controller
	state      view.ViewState

	width       int
	height      int
	aspectRatio float64

	placedCount int
	errMsg      string
}

// NewMapView creates the map view over the loaded datasets
func NewMapView(width, height int, engine *label.Engine, places []*geo.Place, physical []*geo.PhysicalFeature, styles *render.Styles, centerLat, centerLon float64, zoom int, aspectRatio float64) *MapView {
	projection := geo.NewProjection(centerLat, centerLon, zoom, width, height, aspectRatio)
	canvas := render.NewCanvas(width, height)
	renderer := render.NewMapRenderer(projection, canvas, styles)
	controller := view.NewController(engine, places, physical, renderer)

	return &MapView{
		projection:  projection,
		canvas:      canvas,
		renderer:    renderer,
		controller:  controller,
		state:       view.DefaultState(),
		width:       width,
		height:      height,
		aspectRatio: aspectRatio,
	}
}

// Refresh re-runs the full placement pipeline against the current view
// and composes the frame: map layers, author marks, status line.
func (m *MapView) Refresh(active []*authors.Author, selectedQID string) {
	m.state.Zoom = m.projection.Zoom()
	m.state.Bounds = *m.projection.Bounds()

	placed := m.controller.OnViewChanged(m.state, m.projection.ProjectLatLon)
	m.placedCount = len(placed)

	m.renderer.RenderAuthors(active, selectedQID)
	m.renderer.RenderStatus(m.state.Zoom, m.state.Year, m.state.Occupation, m.placedCount, m.errMsg)
}

// Draw blits the composed frame to the screen
func (m *MapView) Draw(screen tcell.Screen) {
	m.canvas.Blit(screen, 0, 0)
}

// State returns a copy of the current view state
func (m *MapView) State() view.ViewState {
	return m.state
}

// SetError sets a persistent error message on the status line
func (m *MapView) SetError(msg string) {
	m.errMsg = msg
}

// Pan shifts the view by screen cells
func (m *MapView) Pan(dx, dy int) {
	m.projection.Pan(dx, dy)
}

// ZoomIn increases the zoom level by one
func (m *MapView) ZoomIn() {
	m.projection.SetZoom(m.projection.Zoom() + 1)
}

// ZoomOut decreases the zoom level by one
func (m *MapView) ZoomOut() {
	m.projection.SetZoom(m.projection.Zoom() - 1)
}

// CenterOn moves the view center to a position
func (m *MapView) CenterOn(ll geo.LatLon) {
	m.projection.SetCenter(ll.Lat, ll.Lon)
}

// TogglePlaces flips the place-label layer
func (m *MapView) TogglePlaces() {
	m.state.ShowPlaces = !m.state.ShowPlaces
}

// TogglePhysical flips the physical-feature layer
func (m *MapView) TogglePhysical() {
	m.state.ShowPhysical = !m.state.ShowPhysical
}

// ToggleSeaLabels flips the sea-label layer
func (m *MapView) ToggleSeaLabels() {
	m.state.ShowSeaLabels = !m.state.ShowSeaLabels
}

// SetTagFilter sets the place tag filter. Empty tag shows everything.
func (m *MapView) SetTagFilter(tag string) {
	if tag == "" {
		m.state.Filter = label.TagFilter{Mode: label.FilterAll}
	} else {
		m.state.Filter = label.TagFilter{Mode: label.FilterRequireTag, Tag: tag}
	}
}

// SetOccupation sets the author occupation filter
func (m *MapView) SetOccupation(occ string) {
	m.state.Occupation = occ
}

// ShiftYear moves the timeline cursor
func (m *MapView) ShiftYear(delta int) {
	m.state.Year += delta
}

// UpdateDimensions resizes the view when the terminal is resized
func (m *MapView) UpdateDimensions(width, height int) {
	m.width = width
	m.height = height

	m.projection.UpdateDimensions(width, height)

	m.canvas = render.NewCanvas(width, height)
	m.renderer.UpdateCanvas(m.canvas)
}
