// Package config loads the application configuration from config.yaml
// and ATLAS_* environment variables, and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"asciiatlas/internal/geo"
	"asciiatlas/internal/label"
)

// Config holds the full application configuration.
type Config struct {
	Data  DataConfig  `yaml:"data" mapstructure:"data"`
	Map   MapConfig   `yaml:"map" mapstructure:"map"`
	Label LabelConfig `yaml:"label" mapstructure:"label"`
	Zoom  ZoomConfig  `yaml:"zoom" mapstructure:"zoom"`
	Log   LogConfig   `yaml:"log" mapstructure:"log"`
}

// DataConfig configures dataset locations and the download source.
type DataConfig struct {
	Dir          string `yaml:"dir" mapstructure:"dir"`
	BaseURL      string `yaml:"base_url" mapstructure:"base_url"`
	PlacesFile   string `yaml:"places_file" mapstructure:"places_file"`
	PhysicalFile string `yaml:"physical_file" mapstructure:"physical_file"`
	AuthorsFile  string `yaml:"authors_file" mapstructure:"authors_file"`
}

// MapConfig configures the initial view.
type MapConfig struct {
	CenterLat   float64 `yaml:"center_lat" mapstructure:"center_lat"`
	CenterLon   float64 `yaml:"center_lon" mapstructure:"center_lon"`
	Zoom        int     `yaml:"zoom" mapstructure:"zoom"`
	AspectRatio float64 `yaml:"aspect_ratio" mapstructure:"aspect_ratio"`
	Theme       string  `yaml:"theme" mapstructure:"theme"`
}

// LabelConfig configures the placement engine.
type LabelConfig struct {
	Width                float64 `yaml:"width" mapstructure:"width"`
	Height               float64 `yaml:"height" mapstructure:"height"`
	MaxRadius            float64 `yaml:"max_radius" mapstructure:"max_radius"`
	RadialStep           float64 `yaml:"radial_step" mapstructure:"radial_step"`
	AngleStep            float64 `yaml:"angle_step" mapstructure:"angle_step"`
	ForceOffsetOnOverlap bool    `yaml:"force_offset_on_overlap" mapstructure:"force_offset_on_overlap"`
}

// ZoomConfig configures the visibility threshold tables.
type ZoomConfig struct {
	PlacesLow    int `yaml:"places_low" mapstructure:"places_low"`
	PlacesMid    int `yaml:"places_mid" mapstructure:"places_mid"`
	PlacesHigh   int `yaml:"places_high" mapstructure:"places_high"`
	PhysicalLow  int `yaml:"physical_low" mapstructure:"physical_low"`
	PhysicalMid  int `yaml:"physical_mid" mapstructure:"physical_mid"`
	PhysicalHigh int `yaml:"physical_high" mapstructure:"physical_high"`

	BucketS int `yaml:"bucket_s" mapstructure:"bucket_s"`
	BucketA int `yaml:"bucket_a" mapstructure:"bucket_a"`
	BucketB int `yaml:"bucket_b" mapstructure:"bucket_b"`
	BucketC int `yaml:"bucket_c" mapstructure:"bucket_c"`

	// Caps overrides the per-zoom label budget bands when non-empty.
	Caps        []label.LabelCap `yaml:"caps" mapstructure:"caps"`
	FallbackCap int              `yaml:"fallback_cap" mapstructure:"fallback_cap"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	File   string `yaml:"file" mapstructure:"file"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.asciiatlas")

	// Environment
	v.SetEnvPrefix("ATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.places_file", "places.geojson")
	v.SetDefault("data.physical_file", "physical.geojson")
	v.SetDefault("data.authors_file", "authors_geo.json")
	v.SetDefault("map.center_lat", 38.0)
	v.SetDefault("map.center_lon", 23.7)
	v.SetDefault("map.zoom", 5)
	v.SetDefault("map.aspect_ratio", 2.0)
	v.SetDefault("label.width", 12)
	v.SetDefault("label.height", 1)
	v.SetDefault("label.max_radius", 72)
	v.SetDefault("label.radial_step", 12)
	v.SetDefault("label.angle_step", 45)
	v.SetDefault("label.force_offset_on_overlap", true)
	v.SetDefault("zoom.places_low", 4)
	v.SetDefault("zoom.places_mid", 6)
	v.SetDefault("zoom.places_high", 8)
	v.SetDefault("zoom.physical_low", 3)
	v.SetDefault("zoom.physical_mid", 5)
	v.SetDefault("zoom.physical_high", 7)
	v.SetDefault("zoom.bucket_s", 0)
	v.SetDefault("zoom.bucket_a", 4)
	v.SetDefault("zoom.bucket_b", 6)
	v.SetDefault("zoom.bucket_c", 8)
	v.SetDefault("zoom.fallback_cap", 1600)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// ZoomPolicy builds the label visibility policy from the config.
func (c *Config) ZoomPolicy() label.ZoomPolicy {
	policy := label.ZoomPolicy{
		Places:   label.Thresholds{Low: c.Zoom.PlacesLow, Mid: c.Zoom.PlacesMid, High: c.Zoom.PlacesHigh},
		Physical: label.Thresholds{Low: c.Zoom.PhysicalLow, Mid: c.Zoom.PhysicalMid, High: c.Zoom.PhysicalHigh},
		BucketZoom: map[geo.Bucket]int{
			geo.BucketS: c.Zoom.BucketS,
			geo.BucketA: c.Zoom.BucketA,
			geo.BucketB: c.Zoom.BucketB,
			geo.BucketC: c.Zoom.BucketC,
		},
		Caps:        c.Zoom.Caps,
		FallbackCap: c.Zoom.FallbackCap,
	}
	if len(policy.Caps) == 0 {
		policy.Caps = label.DefaultZoomPolicy().Caps
	}
	return policy
}

// EngineConfig builds the placement engine configuration.
func (c *Config) EngineConfig() label.Config {
	return label.Config{
		LabelWidth:           c.Label.Width,
		LabelHeight:          c.Label.Height,
		MaxRadius:            c.Label.MaxRadius,
		RadialStep:           c.Label.RadialStep,
		AngleStep:            c.Label.AngleStep,
		ForceOffsetOnOverlap: c.Label.ForceOffsetOnOverlap,
		Policy:               c.ZoomPolicy(),
	}
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	// A fullscreen TUI owns stderr; logs go to a file or nowhere.
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
