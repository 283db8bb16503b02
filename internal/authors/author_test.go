package authors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const authorsFixture = `{
  "Q41406": {
    "name": "Aeschylus",
    "start": -499,
    "end": -456,
    "wikipedia_url": "https://en.wikipedia.org/wiki/Aeschylus",
    "occupations": ["playwright", "poet"],
    "locations": [
      {"property": "P20", "place": "Gela", "lat": 37.066, "lon": 14.25},
      {"property": "P19", "place": "Eleusis", "lat": 38.041, "lon": 23.545}
    ]
  },
  "Q859": {
    "name": "Plato",
    "start": -423,
    "end": -348,
    "occupations": ["philosopher"],
    "locations": [
      {"property": "P19", "place": "Nowhere", "lat": 0, "lon": 0},
      {"property": "P937", "place": "Athens", "lat": 37.971, "lon": 23.726}
    ]
  },
  "Q868": {
    "name": "Aristotle",
    "start": -384,
    "end": -322,
    "occupations": ["Philosopher"],
    "locations": []
  },
  "Q999999": {
    "name": "",
    "start": -100,
    "end": -50
  }
}`

func writeAuthors(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "authors.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	all, err := Load(writeAuthors(t, authorsFixture))
	require.NoError(t, err)

	// The nameless entry is dropped; the rest come back sorted by start
	// year regardless of map order.
	require.Len(t, all, 3)
	assert.Equal(t, "Aeschylus", all[0].Name)
	assert.Equal(t, "Plato", all[1].Name)
	assert.Equal(t, "Aristotle", all[2].Name)

	assert.Equal(t, "Q41406", all[0].QID)

	// The 0,0 placeholder location is dropped, the real one kept.
	plato := all[1]
	require.Len(t, plato.Locations, 1)
	assert.Equal(t, "Athens", plato.Locations[0].Place)
	assert.InDelta(t, 37.971, plato.Locations[0].Position.Lat, 1e-9)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeAuthors(t, `{"Q1": `))
	assert.Error(t, err)
}

func TestActiveIn(t *testing.T) {
	a := &Author{Start: -499, End: -456}

	assert.True(t, a.ActiveIn(-499))
	assert.True(t, a.ActiveIn(-470))
	assert.True(t, a.ActiveIn(-456))
	assert.False(t, a.ActiveIn(-500))
	assert.False(t, a.ActiveIn(-455))
}

func TestHasOccupation(t *testing.T) {
	a := &Author{Occupations: []string{"Playwright", "poet"}}

	assert.True(t, a.HasOccupation(""), "empty filter matches everyone")
	assert.True(t, a.HasOccupation("playwright"), "case insensitive")
	assert.True(t, a.HasOccupation("POET"))
	assert.False(t, a.HasOccupation("historian"))
}

func TestPrimaryLocation(t *testing.T) {
	all, err := Load(writeAuthors(t, authorsFixture))
	require.NoError(t, err)

	loc, ok := all[0].PrimaryLocation()
	require.True(t, ok)
	assert.Equal(t, "Gela", loc.Place, "first mappable statement wins")

	_, ok = all[2].PrimaryLocation()
	assert.False(t, ok, "no locations at all")
}

func TestFilterActive(t *testing.T) {
	all, err := Load(writeAuthors(t, authorsFixture))
	require.NoError(t, err)

	active := FilterActive(all, -350, "")
	require.Len(t, active, 2)
	assert.Equal(t, "Plato", active[0].Name)
	assert.Equal(t, "Aristotle", active[1].Name)

	philosophers := FilterActive(all, -350, "philosopher")
	require.Len(t, philosophers, 2)

	playwrights := FilterActive(all, -350, "playwright")
	assert.Empty(t, playwrights)

	none := FilterActive(all, 500, "")
	assert.Empty(t, none)
}

func TestOccupations(t *testing.T) {
	all, err := Load(writeAuthors(t, authorsFixture))
	require.NoError(t, err)

	// Lowercased, deduplicated, sorted.
	assert.Equal(t, []string{"philosopher", "playwright", "poet"}, Occupations(all))
}
