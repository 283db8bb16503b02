package render

import (
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"asciiatlas/internal/geo"
	"asciiatlas/internal/label"
)

// Theme maps feature kinds and label classes to terminal colors.
// Loadable from a small YAML file so the palette is not baked in.
type Theme struct {
	Coastline  string `yaml:"coastline"`
	River      string `yaml:"river"`
	Lake       string `yaml:"lake"`
	Sea        string `yaml:"sea"`
	LabelMajor string `yaml:"label_major"`
	LabelMid   string `yaml:"label_mid"`
	LabelMinor string `yaml:"label_minor"`
	Marker     string `yaml:"marker"`
	Author     string `yaml:"author"`
	Selected   string `yaml:"selected"`
	Status     string `yaml:"status"`
}

// DefaultTheme returns the built-in palette
func DefaultTheme() Theme {
	return Theme{
		Coastline:  "darkblue",
		River:      "darkcyan",
		Lake:       "darkcyan",
		Sea:        "blue",
		LabelMajor: "white",
		LabelMid:   "silver",
		LabelMinor: "gray",
		Marker:     "olive",
		Author:     "green",
		Selected:   "yellow",
		Status:     "silver",
	}
}

// LoadTheme reads a theme file, filling missing entries from the
// default palette.
func LoadTheme(path string) (Theme, error) {
	theme := DefaultTheme()
	data, err := os.ReadFile(path)
	if err != nil {
		return theme, eris.Wrapf(err, "render: read theme %s", path)
	}
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return theme, eris.Wrapf(err, "render: parse theme %s", path)
	}
	return theme, nil
}

// Styles is the resolved tcell style set
type Styles struct {
	shapes   map[geo.FeatureKind]tcell.Style
	labels   map[label.Class]tcell.Style
	Sea      tcell.Style
	Marker   tcell.Style
	Author   tcell.Style
	Selected tcell.Style
	Status   tcell.Style
}

// NewStyles resolves a theme into tcell styles
func NewStyles(theme Theme) *Styles {
	fg := func(name string) tcell.Style {
		return tcell.StyleDefault.Foreground(tcell.GetColor(name))
	}
	return &Styles{
		shapes: map[geo.FeatureKind]tcell.Style{
			geo.KindCoastline: fg(theme.Coastline),
			geo.KindRiver:     fg(theme.River),
			geo.KindLake:      fg(theme.Lake),
		},
		labels: map[label.Class]tcell.Style{
			label.ClassMajor: fg(theme.LabelMajor).Bold(true),
			label.ClassMid:   fg(theme.LabelMid),
			label.ClassMinor: fg(theme.LabelMinor),
		},
		Sea:      fg(theme.Sea).Italic(true),
		Marker:   fg(theme.Marker),
		Author:   fg(theme.Author).Bold(true),
		Selected: fg(theme.Selected).Bold(true).Reverse(true),
		Status:   fg(theme.Status),
	}
}

// Shape returns the style for a physical feature kind
func (s *Styles) Shape(kind geo.FeatureKind) tcell.Style {
	if st, ok := s.shapes[kind]; ok {
		return st
	}
	return tcell.StyleDefault
}

// Label returns the style for a visibility class
func (s *Styles) Label(class label.Class) tcell.Style {
	if st, ok := s.labels[class]; ok {
		return st
	}
	return tcell.StyleDefault
}

// ShapeChar returns the character used to trace a feature kind
func ShapeChar(kind geo.FeatureKind) rune {
	switch kind {
	case geo.KindCoastline:
		return '-'
	case geo.KindRiver:
		return '~'
	case geo.KindLake:
		return '~'
	default:
		return '·'
	}
}
