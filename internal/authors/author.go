// Package authors loads the enriched author dataset: classical authors
// keyed by Wikidata QID, with lifespan years, occupations and mappable
// location statements.
package authors

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"asciiatlas/internal/geo"
)

// Location is one mappable statement about an author (work location,
// residence, birth or death place).
type Location struct {
	Property string     `json:"property"`
	Place    string     `json:"place"`
	Position geo.LatLon `json:"-"`

	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Author is one classical author with an active range in years
// (negative is BCE).
type Author struct {
	QID          string     `json:"-"`
	Name         string     `json:"name"`
	Start        int        `json:"start"`
	End          int        `json:"end"`
	WikipediaURL string     `json:"wikipedia_url"`
	Occupations  []string   `json:"occupations"`
	Locations    []Location `json:"locations"`
}

// ActiveIn reports whether the author's active range covers the year
func (a *Author) ActiveIn(year int) bool {
	return year >= a.Start && year <= a.End
}

// HasOccupation reports whether the author carries the occupation.
// Empty matches everyone.
func (a *Author) HasOccupation(occ string) bool {
	if occ == "" {
		return true
	}
	for _, o := range a.Occupations {
		if strings.EqualFold(o, occ) {
			return true
		}
	}
	return false
}

// PrimaryLocation returns the author's best mappable location: the
// first statement with resolvable coordinates, in dataset order.
func (a *Author) PrimaryLocation() (Location, bool) {
	for _, loc := range a.Locations {
		if loc.Position.Valid() {
			return loc, true
		}
	}
	return Location{}, false
}

// Load reads the author dataset, a JSON object keyed by QID. Authors
// without any mappable location are kept (they still appear in the
// list view); locations with malformed coordinates are dropped.
func Load(path string) ([]*Author, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "authors: read %s", path)
	}

	var raw map[string]*Author
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, eris.Wrapf(err, "authors: parse %s", path)
	}

	authors := make([]*Author, 0, len(raw))
	for qid, a := range raw {
		if a == nil || a.Name == "" {
			continue
		}
		a.QID = qid

		kept := a.Locations[:0]
		for _, loc := range a.Locations {
			loc.Position = geo.LatLon{Lat: loc.Lat, Lon: loc.Lon}
			if loc.Position.Valid() && (loc.Lat != 0 || loc.Lon != 0) {
				kept = append(kept, loc)
			}
		}
		a.Locations = kept
		authors = append(authors, a)
	}

	// Dataset order is map order; sort so every run lists authors the
	// same way.
	sort.Slice(authors, func(i, j int) bool {
		if authors[i].Start != authors[j].Start {
			return authors[i].Start < authors[j].Start
		}
		return authors[i].Name < authors[j].Name
	})

	zap.L().Info("loaded authors", zap.String("path", path), zap.Int("count", len(authors)))
	return authors, nil
}

// FilterActive returns the authors active in the year and matching the
// occupation filter, preserving input order.
func FilterActive(all []*Author, year int, occupation string) []*Author {
	out := make([]*Author, 0, len(all))
	for _, a := range all {
		if a.ActiveIn(year) && a.HasOccupation(occupation) {
			out = append(out, a)
		}
	}
	return out
}

// Occupations returns the sorted unique occupations across the
// dataset, for cycling the filter in the UI.
func Occupations(all []*Author) []string {
	seen := make(map[string]struct{})
	for _, a := range all {
		for _, o := range a.Occupations {
			seen[strings.ToLower(o)] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for o := range seen {
		out = append(out, o)
	}
	sort.Strings(out)
	return out
}
