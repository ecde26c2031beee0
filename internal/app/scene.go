package app

import "gldemos/internal/config"

// Frame is the timing handed to a scene each iteration.
type Frame struct {
	Index  uint64
	DT     float64 // seconds since the previous frame
	Time   float64 // seconds since the platform opened
	Width  int
	Height int
}

// Scene is one demo: everything between window creation and teardown.
// Init runs with the graphics context current and must upload all GPU
// resources the scene renders with.
type Scene interface {
	Init() error
	Update(f Frame)
	Render(f Frame)
	Resize(width, height int)
	Dispose()
}

// Platform owns the OS window and the graphics context. Open returns an error
// wrapping ErrPlatformInit, ErrWindowInit or ErrContextInit on failure.
type Platform interface {
	Open(cfg config.WindowCfg) error
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	RequestClose()
	Time() float64
	FramebufferSize() (int, int)
	OnResize(fn func(width, height int))
	Close()
}
