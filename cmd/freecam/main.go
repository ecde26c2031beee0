package main

import (
	"log/slog"
	"runtime"

	"gldemos/internal/app"
	"gldemos/internal/config"
	"gldemos/internal/demo/freecam"
	"gldemos/internal/input"
	"gldemos/internal/launcher"
	"gldemos/internal/platform"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	launcher.Run("freecam", func(cfg *config.Config, im *input.InputManager, window *platform.Window, logger *slog.Logger) app.Scene {
		return freecam.New(cfg, im, window, logger)
	})
}
