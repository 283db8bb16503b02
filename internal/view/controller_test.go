package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asciiatlas/internal/geo"
	"asciiatlas/internal/label"
)

// fakeSurface records every draw call in order.
type fakeSurface struct {
	clears    int
	labels    []label.Placement
	shapes    []*geo.PhysicalFeature
	seaLabels map[string]geo.Point
	order     []string
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{seaLabels: map[string]geo.Point{}}
}

func (s *fakeSurface) Clear() {
	s.clears++
	s.order = append(s.order, "clear")
}

func (s *fakeSurface) AddLabel(p label.Placement) {
	s.labels = append(s.labels, p)
	s.order = append(s.order, "label")
}

func (s *fakeSurface) AddShape(f *geo.PhysicalFeature, lines [][]geo.Point) {
	s.shapes = append(s.shapes, f)
	s.order = append(s.order, "shape")
}

func (s *fakeSurface) AddSeaLabel(name string, at geo.Point) {
	s.seaLabels[name] = at
	s.order = append(s.order, "sea")
}

func project(ll geo.LatLon) geo.Point {
	return geo.Point{X: int(ll.Lon * 4), Y: int(ll.Lat * 4)}
}

func testState(zoom int) ViewState {
	state := DefaultState()
	state.Zoom = zoom
	state.Bounds = geo.Bounds{MinLat: 30, MaxLat: 45, MinLon: 15, MaxLon: 30}
	return state
}

func testPlaces() []*geo.Place {
	return []*geo.Place{
		{ID: "a", Name: "Athenae", Bucket: geo.BucketS, Tier: geo.TierLow,
			Position: geo.LatLon{Lat: 37.97, Lon: 23.72}},
		{ID: "b", Name: "Thebae", Bucket: geo.BucketA, Tier: geo.TierMid,
			Position: geo.LatLon{Lat: 38.32, Lon: 23.31}},
	}
}

func testPhysical() []*geo.PhysicalFeature {
	return []*geo.PhysicalFeature{
		{
			Kind: geo.KindCoastline, Tier: geo.TierLow,
			Lines: [][]geo.LatLon{{{Lat: 36, Lon: 22}, {Lat: 38, Lon: 24}}},
		},
		{
			Kind: geo.KindRiver, Name: "Eurotas", Tier: geo.TierHigh,
			Lines: [][]geo.LatLon{{{Lat: 36.8, Lon: 22.5}, {Lat: 37.1, Lon: 22.4}}},
		},
		{
			Kind: geo.KindSeaRegion, Name: "Mare Aegaeum", Tier: geo.TierLow,
			Lines: [][]geo.LatLon{{{Lat: 36, Lon: 24}, {Lat: 40, Lon: 26}}},
		},
	}
}

func newTestController(surface Surface) *Controller {
	cfg := label.Config{
		LabelWidth:           12,
		LabelHeight:          1,
		MaxRadius:            36,
		RadialStep:           12,
		AngleStep:            45,
		ForceOffsetOnOverlap: true,
		Policy:               label.DefaultZoomPolicy(),
	}
	return NewController(label.NewEngine(cfg), testPlaces(), testPhysical(), surface)
}

func TestOnViewChangedClearsBeforeDrawing(t *testing.T) {
	surface := newFakeSurface()
	ctrl := newTestController(surface)

	ctrl.OnViewChanged(testState(6), project)
	ctrl.OnViewChanged(testState(6), project)

	assert.Equal(t, 2, surface.clears)
	require.NotEmpty(t, surface.order)
	assert.Equal(t, "clear", surface.order[0], "every pass starts from a blank surface")
}

func TestOnViewChangedDrawsAllLayers(t *testing.T) {
	surface := newFakeSurface()
	ctrl := newTestController(surface)

	placed := ctrl.OnViewChanged(testState(6), project)

	assert.Len(t, placed, 2)
	assert.Len(t, surface.labels, 2, "returned placements mirror the drawn ones")

	// Zoom 6 admits the low-tier coastline but not the high-tier river.
	require.Len(t, surface.shapes, 1)
	assert.Equal(t, geo.KindCoastline, surface.shapes[0].Kind)

	at, ok := surface.seaLabels["Mare Aegaeum"]
	require.True(t, ok)
	assert.Equal(t, project(geo.LatLon{Lat: 38, Lon: 25}), at, "sea label anchors at the vertex average")
}

func TestOnViewChangedLayerToggles(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ViewState)
		check  func(*testing.T, *fakeSurface, []label.Placement)
	}{
		{
			name:   "places off",
			mutate: func(s *ViewState) { s.ShowPlaces = false },
			check: func(t *testing.T, s *fakeSurface, placed []label.Placement) {
				assert.Empty(t, placed)
				assert.Empty(t, s.labels)
				assert.NotEmpty(t, s.shapes)
			},
		},
		{
			name:   "physical off",
			mutate: func(s *ViewState) { s.ShowPhysical = false },
			check: func(t *testing.T, s *fakeSurface, placed []label.Placement) {
				assert.Empty(t, s.shapes)
				assert.NotEmpty(t, s.labels)
				assert.NotEmpty(t, s.seaLabels, "sea labels toggle independently of shapes")
			},
		},
		{
			name:   "sea labels off",
			mutate: func(s *ViewState) { s.ShowSeaLabels = false },
			check: func(t *testing.T, s *fakeSurface, placed []label.Placement) {
				assert.Empty(t, s.seaLabels)
				assert.NotEmpty(t, s.shapes)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surface := newFakeSurface()
			ctrl := newTestController(surface)

			state := testState(8)
			tt.mutate(&state)

			placed := ctrl.OnViewChanged(state, project)
			tt.check(t, surface, placed)
		})
	}
}

func TestPhysicalZoomGating(t *testing.T) {
	surface := newFakeSurface()
	ctrl := newTestController(surface)

	// At zoom 8 the high-tier river joins the coastline.
	ctrl.OnViewChanged(testState(8), project)

	require.Len(t, surface.shapes, 2)
	names := []string{surface.shapes[0].Kind.String(), surface.shapes[1].Kind.String()}
	assert.Contains(t, names, "river")
}

func TestSeaLabelOutOfBoundsSkipped(t *testing.T) {
	surface := newFakeSurface()
	ctrl := newTestController(surface)

	state := testState(6)
	state.Bounds = geo.Bounds{MinLat: 30, MaxLat: 36, MinLon: 15, MaxLon: 23}

	ctrl.OnViewChanged(state, project)
	assert.Empty(t, surface.seaLabels, "centroid outside the view draws nothing")
}

func TestTagFilterReachesEngine(t *testing.T) {
	surface := newFakeSurface()

	places := testPlaces()
	places[0].Tags = []string{"sanctuary"}

	cfg := label.Config{
		LabelWidth: 12, LabelHeight: 1, MaxRadius: 36, RadialStep: 12, AngleStep: 45,
		ForceOffsetOnOverlap: true, Policy: label.DefaultZoomPolicy(),
	}
	ctrl := NewController(label.NewEngine(cfg), places, nil, surface)

	state := testState(8)
	state.Filter = label.TagFilter{Mode: label.FilterRequireTag, Tag: "sanctuary"}

	placed := ctrl.OnViewChanged(state, project)
	require.Len(t, placed, 1)
	assert.Equal(t, "Athenae", placed[0].Place.Name)
}

func TestDefaultState(t *testing.T) {
	state := DefaultState()

	assert.True(t, state.ShowPlaces)
	assert.True(t, state.ShowPhysical)
	assert.True(t, state.ShowSeaLabels)
	assert.Equal(t, -430, state.Year)
}
