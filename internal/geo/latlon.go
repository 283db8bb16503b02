package geo

import "math"

// LatLon represents a geographic coordinate in degrees (WGS84).
type LatLon struct {
	Lat float64
	Lon float64
}

// Valid reports whether both coordinates are finite and within range.
func (ll LatLon) Valid() bool {
	return !math.IsNaN(ll.Lat) && !math.IsInf(ll.Lat, 0) &&
		!math.IsNaN(ll.Lon) && !math.IsInf(ll.Lon, 0) &&
		ll.Lat >= -90 && ll.Lat <= 90 &&
		ll.Lon >= -180 && ll.Lon <= 180
}

// Point represents a screen coordinate in cells
type Point struct {
	X int
	Y int
}

// Bounds represents a geographic bounding box
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains checks if a point is within the bounds
func (b *Bounds) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lon >= b.MinLon && lon <= b.MaxLon
}

// ContainsPoint checks if a coordinate pair is within the bounds
func (b *Bounds) ContainsPoint(ll LatLon) bool {
	return b.Contains(ll.Lat, ll.Lon)
}
