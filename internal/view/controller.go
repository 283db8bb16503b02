package view

import (
	"go.uber.org/zap"

	"asciiatlas/internal/geo"
	"asciiatlas/internal/label"
)

// Surface is the rendering capability the controller draws through.
// Whoever owns the screen implements it; the controller never touches
// a UI framework directly.
type Surface interface {
	// Clear discards everything drawn by the previous pass.
	Clear()
	// AddLabel draws one placed label.
	AddLabel(p label.Placement)
	// AddShape draws a physical feature as projected polylines.
	AddShape(f *geo.PhysicalFeature, lines [][]geo.Point)
	// AddSeaLabel draws a sea-region name at its centroid anchor.
	AddSeaLabel(name string, at geo.Point)
}

// Controller re-runs the placement pipeline on every view change and
// swaps the rendered set wholesale: clear, then add. No incremental
// patching, so stale positions cannot survive a pass.
type Controller struct {
	engine   *label.Engine
	places   []*geo.Place
	physical []*geo.PhysicalFeature
	surface  Surface
}

// NewController creates a refresh controller over the loaded datasets
func NewController(engine *label.Engine, places []*geo.Place, physical []*geo.PhysicalFeature, surface Surface) *Controller {
	return &Controller{
		engine:   engine,
		places:   places,
		physical: physical,
		surface:  surface,
	}
}

// OnViewChanged is the single entry point the host calls after any
// pan, zoom or toggle event. project maps geographic positions into
// the current viewport. It returns the placements of the pass so the
// host can hit-test or inspect them.
func (c *Controller) OnViewChanged(state ViewState, project func(geo.LatLon) geo.Point) []label.Placement {
	c.surface.Clear()

	if state.ShowPhysical {
		c.refreshPhysical(state, project)
	}
	if state.ShowSeaLabels {
		c.refreshSeaLabels(state, project)
	}

	var placed []label.Placement
	if state.ShowPlaces {
		placed = c.engine.Place(c.places, label.View{
			Zoom:    state.Zoom,
			Bounds:  state.Bounds,
			Filter:  state.Filter,
			Project: project,
		})
		for _, p := range placed {
			c.surface.AddLabel(p)
		}
	}

	zap.L().Debug("view refreshed",
		zap.Int("zoom", state.Zoom),
		zap.Int("labels", len(placed)))
	return placed
}

// refreshPhysical redraws the line/area features admitted at this
// zoom. Sea regions are label-only and handled separately.
func (c *Controller) refreshPhysical(state ViewState, project func(geo.LatLon) geo.Point) {
	policy := c.engine.Config().Policy
	for _, f := range c.physical {
		if f.Kind == geo.KindSeaRegion {
			continue
		}
		if state.Zoom < policy.PhysicalMinZoom(f) {
			continue
		}
		if !f.InBounds(&state.Bounds) {
			continue
		}

		lines := make([][]geo.Point, 0, len(f.Lines))
		for _, line := range f.Lines {
			pts := make([]geo.Point, len(line))
			for i, ll := range line {
				pts[i] = project(ll)
			}
			lines = append(lines, pts)
		}
		c.surface.AddShape(f, lines)
	}
}

// refreshSeaLabels draws sea-region names anchored at the average of
// all polygon vertices.
func (c *Controller) refreshSeaLabels(state ViewState, project func(geo.LatLon) geo.Point) {
	policy := c.engine.Config().Policy
	for _, f := range c.physical {
		if f.Kind != geo.KindSeaRegion || f.Name == "" {
			continue
		}
		if state.Zoom < policy.PhysicalMinZoom(f) {
			continue
		}
		centroid, ok := f.Centroid()
		if !ok || !state.Bounds.ContainsPoint(centroid) {
			continue
		}
		c.surface.AddSeaLabel(f.Name, project(centroid))
	}
}
