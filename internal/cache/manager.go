// Package cache downloads and caches the atlas datasets: the curated
// places/physical/author files plus the Natural Earth shapefiles used
// as the physical background fallback.
package cache

import (
	"archive/zip"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const userAgent = "asciiatlas/1.0 (terminal atlas of classical authors)"

// DataFile describes one downloadable dataset
type DataFile struct {
	Name     string // friendly name
	URL      string // download URL; empty means local-only
	File     string // target filename in the cache dir
	Zip      bool   // archive that must be extracted
	Optional bool   // failure to download won't stop the app
}

// NaturalEarthFiles are the background shapefile datasets, 1:50m
var NaturalEarthFiles = []DataFile{
	{
		Name:     "Coastlines",
		URL:      "https://naciscdn.org/naturalearth/50m/physical/ne_50m_coastline.zip",
		File:     "ne_50m_coastline.shp",
		Zip:      true,
		Optional: true,
	},
	{
		Name:     "Rivers",
		URL:      "https://naciscdn.org/naturalearth/50m/physical/ne_50m_rivers_lake_centerlines.zip",
		File:     "ne_50m_rivers_lake_centerlines.shp",
		Zip:      true,
		Optional: true,
	},
	{
		Name:     "Lakes",
		URL:      "https://naciscdn.org/naturalearth/50m/physical/ne_50m_lakes.zip",
		File:     "ne_50m_lakes.shp",
		Zip:      true,
		Optional: true,
	},
}

// Manager handles downloading and caching dataset files
type Manager struct {
	cacheDir string
	baseURL  string
}

// NewManager creates a cache manager. If cacheDir is empty, uses
// ~/.asciiatlas/data. baseURL is the source of the curated datasets;
// empty means they must already be present locally.
func NewManager(cacheDir, baseURL string) (*Manager, error) {
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, eris.Wrap(err, "cache: home directory")
		}
		cacheDir = filepath.Join(home, ".asciiatlas", "data")
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, eris.Wrap(err, "cache: create directory")
	}

	return &Manager{
		cacheDir: cacheDir,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Dir returns the cache directory
func (m *Manager) Dir() string {
	return m.cacheDir
}

// Path returns the local path of a dataset file
func (m *Manager) Path(file string) string {
	return filepath.Join(m.cacheDir, file)
}

// Has reports whether a dataset file is present locally
func (m *Manager) Has(file string) bool {
	_, err := os.Stat(m.Path(file))
	return err == nil
}

// EnsureData ensures every dataset is available, downloading what is
// missing. Curated files come from the configured base URL; the
// Natural Earth background is fetched from its CDN. Optional files
// that fail are skipped with a warning.
func (m *Manager) EnsureData(curated ...string) error {
	files := make([]DataFile, 0, len(curated)+len(NaturalEarthFiles))
	for _, name := range curated {
		// Curated files are optional at this stage; a dataset the app
		// cannot run without fails loudly at load time instead.
		f := DataFile{Name: name, File: name, Optional: true}
		if m.baseURL != "" {
			f.URL = m.baseURL + "/" + name
		}
		files = append(files, f)
	}
	files = append(files, NaturalEarthFiles...)

	for _, file := range files {
		if err := m.ensureFile(file); err != nil {
			if file.Optional {
				zap.L().Warn("skipping optional dataset",
					zap.String("dataset", file.Name), zap.Error(err))
				continue
			}
			return eris.Wrapf(err, "cache: ensure %s", file.Name)
		}
	}
	return nil
}

// ensureFile checks if a data file exists, downloads if needed
func (m *Manager) ensureFile(file DataFile) error {
	if m.Has(file.File) {
		return nil
	}
	if file.URL == "" {
		return eris.Errorf("%s missing from %s and no download source configured", file.File, m.cacheDir)
	}

	zap.L().Info("downloading dataset", zap.String("dataset", file.Name), zap.String("url", file.URL))

	req, err := http.NewRequest(http.MethodGet, file.URL, nil)
	if err != nil {
		return eris.Wrap(err, "build request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return eris.Wrap(err, "download")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("download failed with status %s", resp.Status)
	}

	if file.Zip {
		return m.saveZip(resp.Body)
	}
	return m.saveFile(resp.Body, file.File)
}

// saveFile writes a download to the cache dir via a temp file so a
// broken transfer never leaves a truncated dataset behind.
func (m *Manager) saveFile(r io.Reader, name string) error {
	tmp, err := os.CreateTemp(m.cacheDir, ".download_*")
	if err != nil {
		return eris.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return eris.Wrap(err, "save download")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "close temp file")
	}

	return os.Rename(tmp.Name(), m.Path(name))
}

// saveZip extracts every file of a zip archive flat into the cache dir
func (m *Manager) saveZip(r io.Reader) error {
	tmp, err := os.CreateTemp("", "atlas_*.zip")
	if err != nil {
		return eris.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return eris.Wrap(err, "save download")
	}
	tmp.Close()

	zr, err := zip.OpenReader(tmp.Name())
	if err != nil {
		return eris.Wrap(err, "open archive")
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(filepath.Base(f.Name), ".") {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return eris.Wrap(err, "open archive entry")
		}
		err = m.saveFile(rc, filepath.Base(f.Name))
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
