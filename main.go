package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"asciiatlas/internal/authors"
	"asciiatlas/internal/cache"
	"asciiatlas/internal/config"
	"asciiatlas/internal/geo"
	"asciiatlas/internal/label"
	"asciiatlas/internal/render"
	"asciiatlas/internal/ui"
)

var cfg *config.Config

var (
	flagCacheDir  string
	flagCenterLat float64
	flagCenterLon float64
	flagZoom      int
	flagAspect    float64
)

var rootCmd = &cobra.Command{
	Use:   "asciiatlas",
	Short: "Terminal atlas of the classical world",
	Long:  "Renders ancient places, physical geography and classical authors on a pan/zoom terminal map, decluttering labels per zoom level.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		// The fullscreen UI owns the terminal; without an explicit log
		// file, logs are dropped rather than smeared over the map.
		if cmd.Name() == cmd.Root().Name() && cfg.Log.File == "" {
			cfg.Log.File = os.DevNull
		}

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAtlas()
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the atlas datasets into the cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir := flagCacheDir
		if dataDir == "" {
			dataDir = cfg.Data.Dir
		}
		manager, err := cache.NewManager(dataDir, cfg.Data.BaseURL)
		if err != nil {
			return err
		}
		return manager.EnsureData(cfg.Data.PlacesFile, cfg.Data.PhysicalFile, cfg.Data.AuthorsFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagCacheDir, "cache", "", "cache directory for map data (default: ~/.asciiatlas/data)")
	rootCmd.Flags().Float64Var(&flagCenterLat, "lat", 0, "initial center latitude (default from config)")
	rootCmd.Flags().Float64Var(&flagCenterLon, "lon", 0, "initial center longitude (default from config)")
	rootCmd.Flags().IntVar(&flagZoom, "zoom", 0, "initial zoom level (default from config)")
	rootCmd.Flags().Float64Var(&flagAspect, "aspect", 0, "character aspect ratio, 1.0-4.0 (default from config)")
	rootCmd.AddCommand(fetchCmd)
}

func runAtlas() error {
	opts := ui.Options{
		CenterLat:   cfg.Map.CenterLat,
		CenterLon:   cfg.Map.CenterLon,
		Zoom:        cfg.Map.Zoom,
		AspectRatio: cfg.Map.AspectRatio,
	}
	if flagCenterLat != 0 {
		opts.CenterLat = flagCenterLat
	}
	if flagCenterLon != 0 {
		opts.CenterLon = flagCenterLon
	}
	if flagZoom != 0 {
		opts.Zoom = flagZoom
	}
	if flagAspect != 0 {
		opts.AspectRatio = flagAspect
	}
	if opts.AspectRatio < 1.0 || opts.AspectRatio > 4.0 {
		return fmt.Errorf("aspect ratio must be between 1.0 and 4.0")
	}

	dataDir := flagCacheDir
	if dataDir == "" {
		dataDir = cfg.Data.Dir
	}
	manager, err := cache.NewManager(dataDir, cfg.Data.BaseURL)
	if err != nil {
		return err
	}
	if err := manager.EnsureData(cfg.Data.PlacesFile, cfg.Data.PhysicalFile, cfg.Data.AuthorsFile); err != nil {
		zap.L().Warn("dataset download incomplete", zap.Error(err))
	}

	// Places are the one dataset the atlas cannot run without. A load
	// failure is surfaced and the placement engine is never invoked.
	places, err := geo.LoadPlaces(manager.Path(cfg.Data.PlacesFile))
	if err != nil {
		return fmt.Errorf("load places: %w", err)
	}

	// Physical background: curated GeoJSON first, Natural Earth
	// shapefiles as fallback.
	var physical []*geo.PhysicalFeature
	if manager.Has(cfg.Data.PhysicalFile) {
		physical, err = geo.LoadPhysical(manager.Path(cfg.Data.PhysicalFile))
		if err != nil {
			zap.L().Warn("physical dataset unreadable, using background fallback", zap.Error(err))
		}
	}
	if len(physical) == 0 {
		physical = geo.NewShapefileLoader(manager.Dir()).LoadBackground()
	}

	loadErr := ""
	authorList, err := authors.Load(manager.Path(cfg.Data.AuthorsFile))
	if err != nil {
		zap.L().Warn("author dataset unavailable", zap.Error(err))
		loadErr = "author dataset unavailable"
	}

	engine := label.NewEngine(cfg.EngineConfig())

	theme := render.DefaultTheme()
	if cfg.Map.Theme != "" {
		theme, err = render.LoadTheme(cfg.Map.Theme)
		if err != nil {
			zap.L().Warn("theme unreadable, using defaults", zap.Error(err))
		}
	}

	app, err := ui.NewApp(engine, places, physical, authorList, render.NewStyles(theme), opts)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	if loadErr != "" {
		app.SetError(loadErr)
	}

	// Run with panic recovery so the terminal is always restored.
	var runErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				runErr = fmt.Errorf("panic: %v", r)
			}
		}()
		runErr = app.Run()
	}()

	return runErr
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
