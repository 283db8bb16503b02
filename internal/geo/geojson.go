package geo

import (
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// LoadPlaces reads a GeoJSON feature collection of point features and
// converts it to Place records. Features with missing or malformed
// coordinates are excluded here, never reported as errors.
func LoadPlaces(path string) ([]*Place, error) {
	fc, err := readCollection(path)
	if err != nil {
		return nil, err
	}

	places := make([]*Place, 0, len(fc.Features))
	skipped := 0
	for _, f := range fc.Features {
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			skipped++
			continue
		}
		pos := LatLon{Lat: pt.Y(), Lon: pt.X()}
		if !pos.Valid() {
			skipped++
			continue
		}

		name := stringProp(f.Properties, "name", "name_modern")
		if name == "" {
			skipped++
			continue
		}

		p := &Place{
			ID:       PlaceID(stringProp(f.Properties, "pleiades"), stringProp(f.Properties, "qid", "wikidata"), pos),
			Position: pos,
			Name:     name,
			Bucket:   ParseBucket(stringProp(f.Properties, "bucket")),
			Tier:     ParseTier(stringProp(f.Properties, "tier")),
			Score:    floatProp(f.Properties, "score"),
			Tags:     tagsProp(f.Properties, "tags"),
		}
		if mz, ok := intProp(f.Properties, "min_zoom"); ok {
			p.MinZoom = &mz
		}
		places = append(places, p)
	}

	if skipped > 0 {
		zap.L().Debug("skipped unmappable place features",
			zap.String("path", path), zap.Int("skipped", skipped))
	}
	zap.L().Info("loaded places", zap.String("path", path), zap.Int("count", len(places)))
	return places, nil
}

// LoadPhysical reads a GeoJSON collection of line/polygon features
// carrying a feature_type property (coastline, river, lake, sea_region).
func LoadPhysical(path string) ([]*PhysicalFeature, error) {
	fc, err := readCollection(path)
	if err != nil {
		return nil, err
	}

	features := make([]*PhysicalFeature, 0, len(fc.Features))
	for _, f := range fc.Features {
		kind, ok := ParseFeatureKind(stringProp(f.Properties, "feature_type"))
		if !ok {
			continue
		}

		lines := flattenGeometry(f.Geometry)
		if len(lines) == 0 {
			continue
		}

		pf := &PhysicalFeature{
			Kind:  kind,
			Name:  stringProp(f.Properties, "name", "name_modern"),
			Lines: lines,
			Tier:  ParseTier(stringProp(f.Properties, "tier")),
		}
		if mz, ok := intProp(f.Properties, "min_zoom"); ok {
			pf.MinZoom = &mz
		}
		features = append(features, pf)
	}

	zap.L().Info("loaded physical features", zap.String("path", path), zap.Int("count", len(features)))
	return features, nil
}

func readCollection(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geo: read %s", path)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, eris.Wrapf(err, "geo: parse %s", path)
	}
	return fc, nil
}

// flattenGeometry recursively flattens any line or area geometry into
// polylines, dropping vertices with out-of-range coordinates.
func flattenGeometry(g orb.Geometry) [][]LatLon {
	switch geom := g.(type) {
	case orb.LineString:
		if line := toLine(geom); len(line) > 1 {
			return [][]LatLon{line}
		}
	case orb.MultiLineString:
		var lines [][]LatLon
		for _, ls := range geom {
			lines = append(lines, flattenGeometry(ls)...)
		}
		return lines
	case orb.Ring:
		if line := toLine(orb.LineString(geom)); len(line) > 1 {
			return [][]LatLon{line}
		}
	case orb.Polygon:
		var lines [][]LatLon
		for _, ring := range geom {
			lines = append(lines, flattenGeometry(ring)...)
		}
		return lines
	case orb.MultiPolygon:
		var lines [][]LatLon
		for _, poly := range geom {
			lines = append(lines, flattenGeometry(poly)...)
		}
		return lines
	case orb.Collection:
		var lines [][]LatLon
		for _, sub := range geom {
			lines = append(lines, flattenGeometry(sub)...)
		}
		return lines
	}
	return nil
}

func toLine(ls orb.LineString) []LatLon {
	line := make([]LatLon, 0, len(ls))
	for _, pt := range ls {
		ll := LatLon{Lat: pt.Y(), Lon: pt.X()}
		if ll.Valid() {
			line = append(line, ll)
		}
	}
	return line
}

// stringProp returns the first non-empty string property among keys
func stringProp(props geojson.Properties, keys ...string) string {
	for _, key := range keys {
		if v, ok := props[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// floatProp returns a numeric property, tolerating JSON's float-only
// numbers as well as pre-typed ints.
func floatProp(props geojson.Properties, key string) float64 {
	switch v := props[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func intProp(props geojson.Properties, key string) (int, bool) {
	switch v := props[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

func tagsProp(props geojson.Properties, key string) []string {
	raw, ok := props[key].([]interface{})
	if !ok {
		return nil
	}
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		if s, ok := t.(string); ok && s != "" {
			tags = append(tags, s)
		}
	}
	return tags
}
