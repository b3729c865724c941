package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"gopkg.in/yaml.v3"

	"basket3d/internal/basket"
	"basket3d/internal/commands"
	"basket3d/internal/config"
	"basket3d/internal/debug"
	"basket3d/internal/graphics"
	"basket3d/internal/logger"
	"basket3d/internal/sim"
	"basket3d/internal/viewport"
)

func main() {
	reg := commands.NewRegistry("run")
	registerRun(reg)
	registerSimulate(reg)
	registerCatalog(reg)

	if err := reg.Execute(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "basket3d: %v\n\ncommands:\n%s", err, reg.Usage())
		os.Exit(1)
	}
}

func registerRun(reg *commands.Registry) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	var (
		configPath = fs.String("config", config.DefaultPath, "path to the YAML config")
		seed       = fs.Int64("seed", 0, "placement seed (0 = time-derived)")
		width      = fs.Int("width", 480, "window width")
		height     = fs.Int("height", 400, "window height")
		fps        = fs.Int("fps", 60, "target frames per second")
		rateInd    = fs.Bool("rate-independent", false, "scale animation by elapsed time")
		maxDrift   = fs.Float64("max-drift", 0, "clamp bounce/sway drift per axis (0 = unbounded)")
		showFPS    = fs.Bool("show-fps", false, "draw the FPS counter")
		showStats  = fs.Bool("show-stats", false, "draw frame, time and item count")
		logLevel   = fs.String("log-level", "info", "log level")
	)
	reg.Register("run", "open the window and animate the baskets (default)", fs, func() error {
		cfg, cfgErr := config.Load(*configPath)

		// Flags win only when given explicitly.
		if commands.Visited(fs, "seed") {
			cfg.Scene.Seed = *seed
		}
		if commands.Visited(fs, "width") {
			cfg.Window.Width = *width
		}
		if commands.Visited(fs, "height") {
			cfg.Window.Height = *height
		}
		if commands.Visited(fs, "fps") {
			cfg.Window.TargetFPS = *fps
		}
		if commands.Visited(fs, "rate-independent") {
			cfg.Animation.RateIndependent = *rateInd
		}
		if commands.Visited(fs, "max-drift") {
			cfg.Animation.MaxDrift = float32(*maxDrift)
		}
		if commands.Visited(fs, "show-fps") {
			cfg.Debug.ShowFPS = *showFPS
		}
		if commands.Visited(fs, "show-stats") {
			cfg.Debug.ShowStats = *showStats
		}
		if commands.Visited(fs, "log-level") {
			cfg.Log.Level = *logLevel
		}

		log, err := logger.New(logger.Options{Level: cfg.Log.Level, File: cfg.Log.File})
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.Log.File).Msg("log file unavailable; logging to console only")
		}
		defer log.Close()
		if cfgErr != nil {
			log.Warn().Err(cfgErr).Str("path", *configPath).Msg("config load failed; using defaults")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return run(cfg, *configPath, log.Logger)
	})
}

func run(cfg config.Config, configPath string, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rng, seed := basket.NewRand(cfg.Scene.Seed)
	log.Info().Int64("seed", seed).Msg("starting")

	overlay := debug.New()
	overlay.SetShowFPS(cfg.Debug.ShowFPS)
	overlay.SetShowStats(cfg.Debug.ShowStats)

	var v *viewport.Viewport
	overlay.Source = func() (debug.Stats, bool) {
		if v == nil || !v.Mounted() {
			return debug.Stats{}, false
		}
		d := v.Driver()
		return debug.Stats{Frames: d.Frames(), Time: d.Time(), Items: v.World().ItemCount()}, true
	}

	err := graphics.Run(ctx, graphics.Options{
		Title:       cfg.Window.Title,
		Width:       cfg.Window.Width,
		Height:      cfg.Window.Height,
		TargetFPS:   cfg.Window.TargetFPS,
		Resizable:   cfg.Window.Resizable,
		Transparent: cfg.Window.Transparent,
		MSAA:        cfg.Window.MSAA,
		Log:         log,
	}, graphics.Hooks{
		Mount: func(h viewport.Host) error {
			var err error
			v, err = viewport.Mount(h, viewport.Options{
				Rand: rng,
				Animation: basket.Options{
					RateIndependent: cfg.Animation.RateIndependent,
					MaxDrift:        cfg.Animation.MaxDrift,
				},
				Log: log,
			})
			return err
		},
		Unmount: func() {
			if v != nil {
				v.Unmount()
			}
		},
		Overlay: func() {
			if overlay.HandleInput() {
				toggles := config.Debug{ShowFPS: overlay.ShowFPS, ShowStats: overlay.ShowStats}
				if err := config.SaveDebug(configPath, toggles); err != nil {
					log.Warn().Err(err).Str("path", configPath).Msg("overlay toggles not saved")
				}
			}
			overlay.Draw()
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("viewer stopped")
	}
	return err
}

func registerSimulate(reg *commands.Registry) {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	var (
		seed     = fs.Int64("seed", 1, "placement seed (0 = time-derived)")
		frames   = fs.Int("frames", 600, "frames to apply")
		out      = fs.String("o", "-", "report path (- = stdout)")
		maxDrift = fs.Float64("max-drift", 0, "clamp bounce/sway drift per axis (0 = unbounded)")
		progress = fs.Bool("progress", false, "show a progress bar on stderr")
	)
	reg.Register("simulate", "animate headless and write a YAML report", fs, func() error {
		opts := sim.Options{
			Seed:      *seed,
			Frames:    *frames,
			Animation: basket.Options{MaxDrift: float32(*maxDrift)},
		}
		if *progress {
			bar := progressbar.Default(int64(*frames), "simulating")
			defer bar.Finish()
			opts.Progress = func() { _ = bar.Add(1) }
		}
		report, err := sim.Run(opts)
		if err != nil {
			return err
		}

		var w io.Writer = os.Stdout
		if *out != "-" {
			f, err := os.Create(*out)
			if err != nil {
				return fmt.Errorf("simulate: %w", err)
			}
			defer f.Close()
			w = f
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("simulate: encode report: %w", err)
		}
		return enc.Close()
	})
}

func registerCatalog(reg *commands.Registry) {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	reg.Register("catalog", "list the item catalogs", fs, func() error {
		groups := []struct {
			name    string
			entries []basket.Entry
		}{
			{"fruit", basket.FruitCatalog},
			{"vegetable", basket.VegetableCatalog},
			{"fish", basket.FishCatalog},
			{"leaf", basket.LeafCatalog},
			{"ice", basket.IceCatalog},
		}
		for _, g := range groups {
			fmt.Printf("%s (%d)\n", g.name, len(g.entries))
			for _, e := range g.entries {
				fmt.Printf("  %-14s #%06x  %s\n", e.Name, uint32(e.Color), e.Geometry.Key())
			}
		}
		return nil
	})
}
