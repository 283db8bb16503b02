package geo

import (
	"fmt"
	"strings"
)

// Bucket is the coarse priority tier controlling at which zoom a place
// becomes a label candidate. Higher values rank higher.
type Bucket int

const (
	BucketC Bucket = iota
	BucketB
	BucketA
	BucketS
)

// ParseBucket maps a bucket letter to a Bucket. Unknown or empty input
// falls back to the lowest bucket.
func ParseBucket(s string) Bucket {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "S":
		return BucketS
	case "A":
		return BucketA
	case "B":
		return BucketB
	default:
		return BucketC
	}
}

// String returns the bucket letter
func (b Bucket) String() string {
	switch b {
	case BucketS:
		return "S"
	case BucketA:
		return "A"
	case BucketB:
		return "B"
	default:
		return "C"
	}
}

// Rank returns the numeric rank used in the placement ordering key
func (b Bucket) Rank() int {
	return int(b)
}

// Tier is a named importance level mapped to a numeric minimum zoom via
// the threshold table in the label package.
type Tier int

const (
	TierNone Tier = iota
	TierLow
	TierMid
	TierHigh
)

// ParseTier maps a tier name to a Tier. Unknown input yields TierNone,
// which the classifier treats as the most restrictive band.
func ParseTier(s string) Tier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return TierLow
	case "mid":
		return TierMid
	case "high":
		return TierHigh
	default:
		return TierNone
	}
}

// String returns the tier name
func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMid:
		return "mid"
	case TierHigh:
		return "high"
	default:
		return "none"
	}
}

// Place is a named point of interest from the gazetteer.
type Place struct {
	ID       string
	Position LatLon
	Name     string
	Bucket   Bucket
	Tier     Tier
	MinZoom  *int // explicit override; wins over the tier table
	Score    float64
	Tags     []string
}

// HasTag reports whether the place carries the given category tag
func (p *Place) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// PlaceID derives a stable identifier: gazetteer id first, then the
// knowledge-base id, then the rounded coordinate pair.
func PlaceID(pleiades, qid string, pos LatLon) string {
	if pleiades != "" {
		return "pleiades:" + pleiades
	}
	if qid != "" {
		return "wd:" + qid
	}
	return fmt.Sprintf("%.3f,%.3f", pos.Lat, pos.Lon)
}

// FeatureKind classifies a physical feature
type FeatureKind int

const (
	KindCoastline FeatureKind = iota
	KindRiver
	KindLake
	KindSeaRegion
)

// ParseFeatureKind maps a feature_type property to a FeatureKind
func ParseFeatureKind(s string) (FeatureKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "coastline":
		return KindCoastline, true
	case "river":
		return KindRiver, true
	case "lake":
		return KindLake, true
	case "sea_region":
		return KindSeaRegion, true
	default:
		return 0, false
	}
}

// String returns the feature_type name
func (k FeatureKind) String() string {
	switch k {
	case KindCoastline:
		return "coastline"
	case KindRiver:
		return "river"
	case KindLake:
		return "lake"
	case KindSeaRegion:
		return "sea_region"
	default:
		return "unknown"
	}
}

// PhysicalFeature is an area or line feature (coastline, river, lake,
// sea region). Polygon rings are stored as outlines; only the zoom-tier
// classifier applies to these, never the placement engine.
type PhysicalFeature struct {
	Kind    FeatureKind
	Name    string
	Lines   [][]LatLon
	Tier    Tier
	MinZoom *int
}

// Centroid averages every vertex of the feature. Not a true area
// centroid; good enough to anchor a sea-region label.
func (f *PhysicalFeature) Centroid() (LatLon, bool) {
	var sumLat, sumLon float64
	n := 0
	for _, line := range f.Lines {
		for _, ll := range line {
			sumLat += ll.Lat
			sumLon += ll.Lon
			n++
		}
	}
	if n == 0 {
		return LatLon{}, false
	}
	return LatLon{Lat: sumLat / float64(n), Lon: sumLon / float64(n)}, true
}

// InBounds reports whether any vertex of the feature falls inside b
func (f *PhysicalFeature) InBounds(b *Bounds) bool {
	for _, line := range f.Lines {
		for _, ll := range line {
			if b.ContainsPoint(ll) {
				return true
			}
		}
	}
	return false
}
