package main

import (
	"log/slog"
	"runtime"

	"gldemos/internal/app"
	"gldemos/internal/config"
	"gldemos/internal/demo/loadimage"
	"gldemos/internal/input"
	"gldemos/internal/launcher"
	"gldemos/internal/platform"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	launcher.Run("loadimage", func(cfg *config.Config, im *input.InputManager, _ *platform.Window, logger *slog.Logger) app.Scene {
		return loadimage.New(cfg, im, logger)
	})
}
