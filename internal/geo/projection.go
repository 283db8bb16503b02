package geo

import (
	"math"
)

// baseCellsPerDegree is the horizontal scale at zoom zero. Each zoom
// level doubles it, mirroring tile-map zoom semantics.
const baseCellsPerDegree = 1.0

// Zoom level limits for the terminal view
const (
	MinZoomLevel = 1
	MaxZoomLevel = 12
)

// Projection converts lat/lon to terminal cell coordinates using an
// equirectangular projection centered on the current view.
// aspectRatio compensates for character cells being taller than wide
// (typically 2.0).
type Projection struct {
	centerLat    float64
	centerLon    float64
	zoom         int
	screenWidth  int
	screenHeight int
	aspectRatio  float64
	scaleX       float64
	scaleY       float64
}

// NewProjection creates a projection for a given center, zoom level and
// screen size.
func NewProjection(centerLat, centerLon float64, zoom, screenWidth, screenHeight int, aspectRatio float64) *Projection {
	p := &Projection{
		centerLat:    centerLat,
		centerLon:    centerLon,
		zoom:         zoom,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		aspectRatio:  aspectRatio,
	}
	p.calculateScale()
	return p
}

// calculateScale computes the cells-per-degree scaling factors.
// Longitude degrees shrink by cos(latitude) so ground distances stay
// roughly square; latitude is divided by the aspect ratio because a
// cell is taller than it is wide.
func (p *Projection) calculateScale() {
	ground := baseCellsPerDegree * math.Pow(2, float64(p.zoom))

	p.scaleX = ground * math.Cos(p.centerLat*math.Pi/180.0)
	if p.scaleX < 1e-9 {
		p.scaleX = 1e-9
	}
	p.scaleY = ground / p.aspectRatio
}

// Project converts lat/lon to screen coordinates with (0, 0) at top-left.
// Y is inverted: latitude grows upward, screen Y grows downward.
func (p *Projection) Project(lat, lon float64) Point {
	x := (lon - p.centerLon) * p.scaleX
	y := -(lat - p.centerLat) * p.scaleY

	x += float64(p.screenWidth) / 2
	y += float64(p.screenHeight) / 2

	return Point{X: int(math.Round(x)), Y: int(math.Round(y))}
}

// ProjectLatLon is Project over a LatLon value
func (p *Projection) ProjectLatLon(ll LatLon) Point {
	return p.Project(ll.Lat, ll.Lon)
}

// Unproject converts screen coordinates back to lat/lon
func (p *Projection) Unproject(x, y int) (lat, lon float64) {
	dx := float64(x) - float64(p.screenWidth)/2
	dy := float64(y) - float64(p.screenHeight)/2

	lon = p.centerLon + dx/p.scaleX
	lat = p.centerLat - dy/p.scaleY
	return lat, lon
}

// Bounds returns the geographic bounds visible on screen
func (p *Projection) Bounds() *Bounds {
	topLat, leftLon := p.Unproject(0, 0)
	bottomLat, rightLon := p.Unproject(p.screenWidth-1, p.screenHeight-1)

	return &Bounds{
		MinLat: math.Min(topLat, bottomLat),
		MaxLat: math.Max(topLat, bottomLat),
		MinLon: math.Min(leftLon, rightLon),
		MaxLon: math.Max(leftLon, rightLon),
	}
}

// IsInBounds checks if a lat/lon point would be visible on screen
func (p *Projection) IsInBounds(lat, lon float64) bool {
	pt := p.Project(lat, lon)
	return pt.X >= 0 && pt.X < p.screenWidth &&
		pt.Y >= 0 && pt.Y < p.screenHeight
}

// Zoom returns the current zoom level
func (p *Projection) Zoom() int {
	return p.zoom
}

// SetZoom updates the zoom level, clamped to [MinZoomLevel, MaxZoomLevel]
func (p *Projection) SetZoom(zoom int) {
	if zoom < MinZoomLevel {
		zoom = MinZoomLevel
	}
	if zoom > MaxZoomLevel {
		zoom = MaxZoomLevel
	}
	p.zoom = zoom
	p.calculateScale()
}

// Center returns the current center point
func (p *Projection) Center() (lat, lon float64) {
	return p.centerLat, p.centerLon
}

// SetCenter recalculates the projection around a new center point
func (p *Projection) SetCenter(lat, lon float64) {
	p.centerLat = lat
	p.centerLon = lon
	p.calculateScale()
}

// Pan shifts the center by a number of screen cells
func (p *Projection) Pan(dx, dy int) {
	p.centerLon += float64(dx) / p.scaleX
	p.centerLat -= float64(dy) / p.scaleY
	p.calculateScale()
}

// UpdateDimensions updates the screen dimensions and recalculates scaling
func (p *Projection) UpdateDimensions(width, height int) {
	p.screenWidth = width
	p.screenHeight = height
	p.calculateScale()
}
