package cache

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	var zipBuf bytes.Buffer
	zw := zip.NewWriter(&zipBuf)
	f, err := zw.Create("bundle/data.shp")
	require.NoError(t, err)
	_, err = f.Write([]byte("shapefile bytes"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	mux := http.NewServeMux()
	mux.HandleFunc("/places.geojson", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	})
	mux.HandleFunc("/bundle.zip", func(w http.ResponseWriter, r *http.Request) {
		w.Write(zipBuf.Bytes())
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestManagerPaths(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir, "")
	require.NoError(t, err)

	assert.Equal(t, dir, m.Dir())
	assert.Equal(t, filepath.Join(dir, "places.geojson"), m.Path("places.geojson"))
	assert.False(t, m.Has("places.geojson"))

	require.NoError(t, os.WriteFile(m.Path("places.geojson"), []byte("{}"), 0644))
	assert.True(t, m.Has("places.geojson"))
}

func TestEnsureFileDownloads(t *testing.T) {
	server := newTestServer(t)
	m, err := NewManager(t.TempDir(), server.URL)
	require.NoError(t, err)

	err = m.ensureFile(DataFile{
		Name: "places",
		URL:  server.URL + "/places.geojson",
		File: "places.geojson",
	})
	require.NoError(t, err)
	assert.True(t, m.Has("places.geojson"))

	// A second call is a no-op hit on the cache.
	require.NoError(t, m.ensureFile(DataFile{Name: "places", File: "places.geojson"}))
}

func TestEnsureFileExtractsZip(t *testing.T) {
	server := newTestServer(t)
	m, err := NewManager(t.TempDir(), "")
	require.NoError(t, err)

	err = m.ensureFile(DataFile{
		Name: "bundle",
		URL:  server.URL + "/bundle.zip",
		File: "data.shp",
		Zip:  true,
	})
	require.NoError(t, err)

	// Archive entries land flat in the cache dir.
	assert.True(t, m.Has("data.shp"))
	data, err := os.ReadFile(m.Path("data.shp"))
	require.NoError(t, err)
	assert.Equal(t, "shapefile bytes", string(data))
}

func TestEnsureFileNoSource(t *testing.T) {
	m, err := NewManager(t.TempDir(), "")
	require.NoError(t, err)

	err = m.ensureFile(DataFile{Name: "orphan", File: "orphan.json"})
	assert.Error(t, err)
}

func TestEnsureFileNotFound(t *testing.T) {
	server := newTestServer(t)
	m, err := NewManager(t.TempDir(), "")
	require.NoError(t, err)

	err = m.ensureFile(DataFile{
		Name: "missing",
		URL:  server.URL + "/nope.json",
		File: "nope.json",
	})
	assert.Error(t, err)
	assert.False(t, m.Has("nope.json"))
}

func TestEnsureDataSkipsOptionalFailures(t *testing.T) {
	m, err := NewManager(t.TempDir(), "")
	require.NoError(t, err)

	// Pre-seed the background shapefiles so nothing reaches for the
	// network.
	for _, f := range NaturalEarthFiles {
		require.NoError(t, os.WriteFile(m.Path(f.File), []byte("stub"), 0644))
	}

	// The curated file has no source and cannot download, but it is
	// optional here; load-time checks catch what matters.
	assert.NoError(t, m.EnsureData("places.geojson"))
}
