package geo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const placesFixture = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [23.7267, 37.9716]},
      "properties": {
        "name": "Athenae",
        "pleiades": "579885",
        "qid": "Q1524",
        "bucket": "S",
        "tier": "low",
        "score": 95.5,
        "tags": ["polis", "sanctuary"]
      }
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [22.4917, 37.0733]},
      "properties": {"name_modern": "Sparti", "bucket": "A", "min_zoom": 3}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [500.0, 37.0]},
      "properties": {"name": "Nowhere"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [21.0, 38.0]},
      "properties": {"bucket": "B"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "LineString", "coordinates": [[20, 38], [21, 39]]},
      "properties": {"name": "not a point"}
    }
  ]
}`

func TestLoadPlaces(t *testing.T) {
	path := writeFixture(t, "places.geojson", placesFixture)

	places, err := LoadPlaces(path)
	require.NoError(t, err)

	// Out-of-range coordinates, nameless features and non-point
	// geometries are dropped silently.
	require.Len(t, places, 2)

	athens := places[0]
	assert.Equal(t, "pleiades:579885", athens.ID)
	assert.Equal(t, "Athenae", athens.Name)
	assert.Equal(t, BucketS, athens.Bucket)
	assert.Equal(t, TierLow, athens.Tier)
	assert.InDelta(t, 95.5, athens.Score, 1e-9)
	assert.Equal(t, []string{"polis", "sanctuary"}, athens.Tags)
	assert.InDelta(t, 37.9716, athens.Position.Lat, 1e-9)
	assert.InDelta(t, 23.7267, athens.Position.Lon, 1e-9)
	assert.Nil(t, athens.MinZoom)

	sparta := places[1]
	assert.Equal(t, "Sparti", sparta.Name, "modern name fallback")
	assert.Equal(t, BucketA, sparta.Bucket)
	assert.Equal(t, TierNone, sparta.Tier)
	require.NotNil(t, sparta.MinZoom)
	assert.Equal(t, 3, *sparta.MinZoom)
	assert.Equal(t, "37.073,22.492", sparta.ID, "coordinate fallback when ids are absent")
}

func TestLoadPlacesMissingFile(t *testing.T) {
	_, err := LoadPlaces(filepath.Join(t.TempDir(), "absent.geojson"))
	assert.Error(t, err)
}

func TestLoadPlacesMalformed(t *testing.T) {
	path := writeFixture(t, "broken.geojson", `{"type": "FeatureCollection", "features": [`)
	_, err := LoadPlaces(path)
	assert.Error(t, err)
}

const physicalFixture = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "LineString", "coordinates": [[23, 37], [24, 38], [25, 38]]},
      "properties": {"feature_type": "river", "name": "Eurotas", "tier": "mid"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Polygon", "coordinates": [[[24, 36], [26, 36], [26, 38], [24, 38], [24, 36]]]},
      "properties": {"feature_type": "sea_region", "name": "Mare Myrtoum"}
    },
    {
      "type": "Feature",
      "geometry": {
        "type": "MultiLineString",
        "coordinates": [[[20, 39], [21, 39]], [[22, 40], [23, 40]]]
      },
      "properties": {"feature_type": "coastline", "min_zoom": 2}
    },
    {
      "type": "Feature",
      "geometry": {"type": "LineString", "coordinates": [[10, 45], [11, 46]]},
      "properties": {"feature_type": "mountain_range", "name": "Alpes"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [23, 37]},
      "properties": {"feature_type": "river", "name": "degenerate"}
    }
  ]
}`

func TestLoadPhysical(t *testing.T) {
	path := writeFixture(t, "physical.geojson", physicalFixture)

	features, err := LoadPhysical(path)
	require.NoError(t, err)

	// Unknown feature types and geometries with no usable polyline are
	// skipped.
	require.Len(t, features, 3)

	river := features[0]
	assert.Equal(t, KindRiver, river.Kind)
	assert.Equal(t, "Eurotas", river.Name)
	assert.Equal(t, TierMid, river.Tier)
	require.Len(t, river.Lines, 1)
	assert.Len(t, river.Lines[0], 3)

	sea := features[1]
	assert.Equal(t, KindSeaRegion, sea.Kind)
	require.Len(t, sea.Lines, 1, "polygon ring flattened to one outline")
	assert.Len(t, sea.Lines[0], 5)

	coast := features[2]
	assert.Equal(t, KindCoastline, coast.Kind)
	assert.Len(t, coast.Lines, 2)
	require.NotNil(t, coast.MinZoom)
	assert.Equal(t, 2, *coast.MinZoom)
}

func TestLoadPhysicalDropsBadVertices(t *testing.T) {
	const fixture = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "LineString", "coordinates": [[23, 37], [500, 90], [24, 38]]},
      "properties": {"feature_type": "river", "name": "Glitch"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "LineString", "coordinates": [[500, 90], [600, 91]]},
      "properties": {"feature_type": "river", "name": "AllBad"}
    }
  ]
}`
	path := writeFixture(t, "vertices.geojson", fixture)

	features, err := LoadPhysical(path)
	require.NoError(t, err)

	// The salvageable line survives with its bad vertex removed; a line
	// left with fewer than two points is dropped entirely.
	require.Len(t, features, 1)
	assert.Equal(t, "Glitch", features[0].Name)
	assert.Len(t, features[0].Lines[0], 2)
}
