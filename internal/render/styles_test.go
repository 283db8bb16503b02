package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asciiatlas/internal/geo"
)

func TestLoadThemeFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("coastline: red\nsea: navy\n"), 0644))

	theme, err := LoadTheme(path)
	require.NoError(t, err)

	assert.Equal(t, "red", theme.Coastline)
	assert.Equal(t, "navy", theme.Sea)
	// Everything unset keeps the built-in palette.
	assert.Equal(t, DefaultTheme().River, theme.River)
	assert.Equal(t, DefaultTheme().LabelMajor, theme.LabelMajor)
}

func TestLoadThemeMissingFile(t *testing.T) {
	theme, err := LoadTheme(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
	assert.Equal(t, DefaultTheme(), theme, "errors still hand back a usable palette")
}

func TestShapeChar(t *testing.T) {
	assert.Equal(t, '-', ShapeChar(geo.KindCoastline))
	assert.Equal(t, '~', ShapeChar(geo.KindRiver))
	assert.Equal(t, '~', ShapeChar(geo.KindLake))
	assert.Equal(t, '·', ShapeChar(geo.KindSeaRegion))
}

func TestStylesFallbacks(t *testing.T) {
	s := NewStyles(DefaultTheme())

	assert.NotEqual(t, s.Shape(geo.KindCoastline), s.Shape(geo.KindSeaRegion),
		"unmapped kinds get the default style")
}
