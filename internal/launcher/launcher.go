package launcher

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gldemos/internal/app"
	"gldemos/internal/config"
	"gldemos/internal/input"
	"gldemos/internal/logging"
	"gldemos/internal/metrics"
	"gldemos/internal/platform"
	"gldemos/internal/profiling"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/xlab/closer"
)

// Build constructs a demo scene from the shared pieces.
type Build func(cfg *config.Config, im *input.InputManager, window *platform.Window, logger *slog.Logger) app.Scene

// Run is the whole main of a demo binary: flags, config, logging, window, then
// the game loop. It must be called from the main goroutine with the OS thread
// locked. Any init failure exits the process with a non-zero code.
func Run(name string, build Build) {
	configPath := flag.String("config", "", "YAML config file; built-in defaults when empty")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		os.Exit(1)
	}
	if cfg.Window.Title == config.Default().Window.Title {
		cfg.Window.Title = cfg.Window.Title + " - " + name
	}

	// Validated by config.Load.
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := logging.New(level)
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	frameMetrics := metrics.NewCollectors(reg).ForDemo(name)
	profiler := profiling.New()

	im := input.NewInputManager()
	window := platform.NewWindow(im, logger.With("module", "platform"))
	scene := build(cfg, im, window, logger.With("module", name))

	game := app.New(window, scene, logger.With("module", "app"),
		app.WithProfiler(profiler),
		app.WithMetrics(frameMetrics),
		app.WithFPSLimit(cfg.FPSLimit),
		app.WithSession(app.NewSession(cfg.Game)),
	)

	closer.Bind(func() {
		summary, err := frameMetrics.Summary()
		if err != nil {
			logger.Error("could not read frame metrics", "err", err)
			return
		}
		logger.Info("shutting down", "demo", name, "summary", summary.String())
	})

	closer.Checked(func() error {
		defer game.Clean()

		if err := game.Init(cfg.Window); err != nil {
			logger.Error("initialization failed", "status", app.StatusOf(err).String(), "err", err)
			return err
		}
		if err := game.Run(); err != nil {
			logger.Error("game loop failed", "err", err)
			return err
		}
		return nil
	}, false)
	closer.Close()
}
