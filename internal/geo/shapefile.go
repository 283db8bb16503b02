package geo

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ShapefileLoader imports Natural Earth shapefiles as physical
// background features. Used when the curated physical GeoJSON is not
// available; the ancient coastline differs little from the modern one
// at the zooms a terminal can show.
type ShapefileLoader struct {
	dataDir string
}

// NewShapefileLoader creates a loader rooted at the data directory
func NewShapefileLoader(dataDir string) *ShapefileLoader {
	return &ShapefileLoader{dataDir: dataDir}
}

// LoadBackground loads coastlines, rivers and lakes from the cached
// Natural Earth 50m datasets. Missing files are skipped with a warning;
// the atlas can run with places alone.
func (s *ShapefileLoader) LoadBackground() []*PhysicalFeature {
	var features []*PhysicalFeature

	sets := []struct {
		base string
		kind FeatureKind
		tier Tier
	}{
		{"ne_50m_coastline", KindCoastline, TierLow},
		{"ne_50m_rivers_lake_centerlines", KindRiver, TierMid},
		{"ne_50m_lakes", KindLake, TierMid},
	}

	for _, set := range sets {
		loaded, err := s.loadShapefile(s.dataDir+"/"+set.base+".shp", set.kind, set.tier)
		if err != nil {
			zap.L().Warn("skipping physical dataset",
				zap.String("dataset", set.base), zap.Error(err))
			continue
		}
		features = append(features, loaded...)
	}

	zap.L().Info("loaded physical background", zap.Int("count", len(features)))
	return features
}

// loadShapefile converts every polyline or polygon outline in a
// shapefile to a PhysicalFeature of the given kind.
func (s *ShapefileLoader) loadShapefile(path string, kind FeatureKind, tier Tier) ([]*PhysicalFeature, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geo: open shapefile %s", path)
	}
	defer shape.Close()

	var features []*PhysicalFeature
	for shape.Next() {
		_, p := shape.Shape()

		var pts []shp.Point
		switch geom := p.(type) {
		case *shp.PolyLine:
			pts = geom.Points
		case *shp.Polygon:
			pts = geom.Points
		default:
			continue
		}

		line := make([]LatLon, 0, len(pts))
		for _, pt := range pts {
			ll := LatLon{Lat: pt.Y, Lon: pt.X}
			if ll.Valid() {
				line = append(line, ll)
			}
		}
		if len(line) < 2 {
			continue
		}

		features = append(features, &PhysicalFeature{
			Kind:  kind,
			Lines: [][]LatLon{line},
			Tier:  tier,
		})
	}

	return features, nil
}
