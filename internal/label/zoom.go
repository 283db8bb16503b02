package label

import (
	"asciiatlas/internal/geo"
)

// Category selects which threshold band applies to a feature
type Category int

const (
	CategoryPlaces Category = iota
	CategoryPhysical
)

// Thresholds maps the named importance tiers to minimum zoom levels
type Thresholds struct {
	Low  int
	Mid  int
	High int
}

// Class buckets a place by how early it becomes visible. Used purely
// for styling, never by the placement algorithm.
type Class int

const (
	ClassMajor Class = iota
	ClassMid
	ClassMinor
)

// String returns the class name
func (c Class) String() string {
	switch c {
	case ClassMajor:
		return "major"
	case ClassMid:
		return "mid"
	default:
		return "minor"
	}
}

// LabelCap is one band of the per-zoom label budget: at zoom levels
// below MaxZoom, at most Cap labels are rendered.
type LabelCap struct {
	MaxZoom int `yaml:"max_zoom" mapstructure:"max_zoom"`
	Cap     int `yaml:"cap" mapstructure:"cap"`
}

// ZoomPolicy holds the threshold tables deciding visibility by zoom.
// The numbers are configuration; the monotonic-by-zoom shape is what
// the rest of the engine relies on.
type ZoomPolicy struct {
	Places   Thresholds
	Physical Thresholds

	// BucketZoom is the zoom at which each bucket is first admitted.
	BucketZoom map[geo.Bucket]int

	// Caps must be sorted ascending by MaxZoom. FallbackCap applies
	// past the last band.
	Caps        []LabelCap
	FallbackCap int
}

// DefaultZoomPolicy returns the stock thresholds
func DefaultZoomPolicy() ZoomPolicy {
	return ZoomPolicy{
		Places:   Thresholds{Low: 4, Mid: 6, High: 8},
		Physical: Thresholds{Low: 3, Mid: 5, High: 7},
		BucketZoom: map[geo.Bucket]int{
			geo.BucketS: 0,
			geo.BucketA: 4,
			geo.BucketB: 6,
			geo.BucketC: 8,
		},
		Caps: []LabelCap{
			{MaxZoom: 5, Cap: 150},
			{MaxZoom: 7, Cap: 400},
			{MaxZoom: 9, Cap: 800},
		},
		FallbackCap: 1600,
	}
}

func (zp ZoomPolicy) thresholds(cat Category) Thresholds {
	if cat == CategoryPhysical {
		return zp.Physical
	}
	return zp.Places
}

// MinZoomFor returns the minimum zoom at which a feature becomes
// visible. An explicit per-feature override wins verbatim; a missing
// tier defaults to the category's most restrictive band.
func (zp ZoomPolicy) MinZoomFor(tier geo.Tier, override *int, cat Category) int {
	if override != nil {
		return *override
	}
	t := zp.thresholds(cat)
	switch tier {
	case geo.TierLow:
		return t.Low
	case geo.TierMid:
		return t.Mid
	case geo.TierHigh:
		return t.High
	default:
		return t.High
	}
}

// PlaceMinZoom is MinZoomFor applied to a place
func (zp ZoomPolicy) PlaceMinZoom(p *geo.Place) int {
	return zp.MinZoomFor(p.Tier, p.MinZoom, CategoryPlaces)
}

// PhysicalMinZoom is MinZoomFor applied to a physical feature
func (zp ZoomPolicy) PhysicalMinZoom(f *geo.PhysicalFeature) int {
	return zp.MinZoomFor(f.Tier, f.MinZoom, CategoryPhysical)
}

// VisibilityClass buckets a place into major/mid/minor by comparing
// its minimum zoom to the places low and mid thresholds.
func (zp ZoomPolicy) VisibilityClass(p *geo.Place) Class {
	mz := zp.PlaceMinZoom(p)
	switch {
	case mz <= zp.Places.Low:
		return ClassMajor
	case mz <= zp.Places.Mid:
		return ClassMid
	default:
		return ClassMinor
	}
}

// BucketAllowed reports whether a priority bucket is admitted at the
// given zoom. Lower-priority buckets join progressively as the zoom
// increases, so the allowed set at z1 < z2 is always a subset of the
// set at z2.
func (zp ZoomPolicy) BucketAllowed(b geo.Bucket, zoom int) bool {
	min, ok := zp.BucketZoom[b]
	if !ok {
		// Unconfigured buckets only appear fully zoomed in.
		return zoom >= zp.Places.High
	}
	return zoom >= min
}

// MaxLabels returns the label budget for a zoom level
func (zp ZoomPolicy) MaxLabels(zoom int) int {
	for _, band := range zp.Caps {
		if zoom < band.MaxZoom {
			return band.Cap
		}
	}
	return zp.FallbackCap
}
