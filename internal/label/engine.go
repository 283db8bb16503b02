package label

import (
	"math"
	"sort"
	"strings"

	"asciiatlas/internal/geo"
)

// FilterMode selects how the tag filter treats place tags
type FilterMode int

const (
	// FilterAll admits every place regardless of tags
	FilterAll FilterMode = iota
	// FilterRequireTag admits only places carrying the filter tag
	FilterRequireTag
)

// TagFilter is the optional category filter applied before placement
type TagFilter struct {
	Mode FilterMode
	Tag  string
}

// Pass reports whether a place passes the filter
func (f TagFilter) Pass(p *geo.Place) bool {
	if f.Mode == FilterAll || f.Tag == "" {
		return true
	}
	return p.HasTag(f.Tag)
}

// Config holds the placement engine tunables. The original map shipped
// several hand-tuned variants of these numbers; they are configuration
// here, not behavior.
type Config struct {
	// LabelWidth and LabelHeight are the fixed bounding-box size of
	// every label, in the same units the projection produces.
	LabelWidth  float64
	LabelHeight float64

	// Radial search parameters for displaced top-tier placement.
	MaxRadius  float64
	RadialStep float64
	AngleStep  float64 // degrees

	// ForceOffsetOnOverlap makes top-tier labels take the least-bad
	// probed position when no overlap-free one exists, instead of
	// falling back to the unshifted anchor.
	ForceOffsetOnOverlap bool

	Policy ZoomPolicy
}

// DefaultConfig returns the stock engine configuration
func DefaultConfig() Config {
	return Config{
		LabelWidth:           90,
		LabelHeight:          18,
		MaxRadius:            72,
		RadialStep:           12,
		AngleStep:            45,
		ForceOffsetOnOverlap: true,
		Policy:               DefaultZoomPolicy(),
	}
}

// View is the frozen view state a placement pass runs against. Project
// maps a geographic position into the viewport's pixel space.
type View struct {
	Zoom    int
	Bounds  geo.Bounds
	Filter  TagFilter
	Project func(geo.LatLon) geo.Point
}

// Placement is one accepted label: the place, the screen anchor its
// label is drawn at (possibly offset from the true projection), and
// the styling class.
type Placement struct {
	Place  *geo.Place
	Anchor geo.Point
	Class  Class
}

// Engine selects which places get labels at the current view and
// assigns each a non-overlapping screen anchor. A pass is pure: the
// occupied-rectangle list lives and dies inside one call.
type Engine struct {
	cfg Config
}

// NewEngine creates a placement engine
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// Place runs one full placement pass and returns the labels to render,
// in placement order. Deterministic for identical inputs; never
// returns more than the zoom's label budget.
func (e *Engine) Place(places []*geo.Place, view View) []Placement {
	candidates := e.filter(places, view)
	sortByPriority(candidates)

	budget := e.cfg.Policy.MaxLabels(view.Zoom)
	if len(candidates) > budget {
		candidates = candidates[:budget]
	}

	var top, rest []*geo.Place
	for _, p := range candidates {
		if p.Bucket == geo.BucketS {
			top = append(top, p)
		} else {
			rest = append(rest, p)
		}
	}

	placed := make([]Placement, 0, len(candidates))
	occupied := make([]Rect, 0, len(candidates))

	// Top-tier places are guaranteed a label; search outward for a
	// clear spot when the true anchor is taken.
	for _, p := range top {
		anchor := view.Project(p.Position)
		pos := e.searchPosition(float64(anchor.X), float64(anchor.Y), occupied)
		occupied = append(occupied, RectAround(pos.x, pos.y, e.cfg.LabelWidth, e.cfg.LabelHeight))
		placed = append(placed, Placement{
			Place:  p,
			Anchor: geo.Point{X: int(math.Round(pos.x)), Y: int(math.Round(pos.y))},
			Class:  e.cfg.Policy.VisibilityClass(p),
		})
	}

	// Everything else is cheap to drop: no offset search, first
	// conflict loses.
	for _, p := range rest {
		if len(placed) >= budget {
			break
		}
		anchor := view.Project(p.Position)
		box := RectAround(float64(anchor.X), float64(anchor.Y), e.cfg.LabelWidth, e.cfg.LabelHeight)
		if CountOverlaps(box, occupied) > 0 {
			continue
		}
		occupied = append(occupied, box)
		placed = append(placed, Placement{
			Place:  p,
			Anchor: anchor,
			Class:  e.cfg.Policy.VisibilityClass(p),
		})
	}

	return placed
}

// filter keeps places whose bucket is admitted at this zoom, whose
// tags pass the filter and whose position lies inside the viewport.
// Places with unusable coordinates are dropped here.
func (e *Engine) filter(places []*geo.Place, view View) []*geo.Place {
	out := make([]*geo.Place, 0, len(places))
	for _, p := range places {
		if p == nil || !p.Position.Valid() {
			continue
		}
		if p.MinZoom != nil {
			// Explicit override replaces the bucket admission rule.
			if view.Zoom < *p.MinZoom {
				continue
			}
		} else if !e.cfg.Policy.BucketAllowed(p.Bucket, view.Zoom) {
			continue
		}
		if !view.Filter.Pass(p) {
			continue
		}
		if !view.Bounds.ContainsPoint(p.Position) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// sortByPriority orders descending by bucketRank*10000 + score, ties
// broken by case-insensitive name so output is reproducible.
func sortByPriority(places []*geo.Place) {
	sort.Slice(places, func(i, j int) bool {
		ki := priorityKey(places[i])
		kj := priorityKey(places[j])
		if ki != kj {
			return ki > kj
		}
		return strings.ToLower(places[i].Name) < strings.ToLower(places[j].Name)
	})
}

func priorityKey(p *geo.Place) float64 {
	return float64(p.Bucket.Rank())*10000 + p.Score
}

type probed struct {
	x, y float64
}

// searchPosition finds a screen position for a top-tier label. The
// true anchor wins if it is clear; otherwise candidate offsets are
// probed ring by ring, each ring swept by angle, and the first clear
// position is taken. With no clear position anywhere, the fallback is
// either the least-overlapping probe (largest radius on ties, which
// spreads crowded labels outward) or the plain anchor.
func (e *Engine) searchPosition(x, y float64, occupied []Rect) probed {
	origin := RectAround(x, y, e.cfg.LabelWidth, e.cfg.LabelHeight)
	originCount := CountOverlaps(origin, occupied)
	if originCount == 0 {
		return probed{x, y}
	}

	best := probed{x, y}
	bestCount := originCount
	bestRadius := 0.0

	if e.cfg.RadialStep > 0 && e.cfg.AngleStep > 0 {
		for r := e.cfg.RadialStep; r <= e.cfg.MaxRadius; r += e.cfg.RadialStep {
			for a := 0.0; a < 360.0; a += e.cfg.AngleStep {
				rad := a * math.Pi / 180.0
				ox := x + r*math.Cos(rad)
				oy := y + r*math.Sin(rad)
				count := CountOverlaps(RectAround(ox, oy, e.cfg.LabelWidth, e.cfg.LabelHeight), occupied)
				if count == 0 {
					return probed{ox, oy}
				}
				if count < bestCount || (count == bestCount && r >= bestRadius) {
					best = probed{ox, oy}
					bestCount = count
					bestRadius = r
				}
			}
		}
	}

	if e.cfg.ForceOffsetOnOverlap {
		return best
	}
	return probed{x, y}
}
