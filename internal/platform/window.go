package platform

import (
	"fmt"
	"log/slog"

	"gldemos/internal/app"
	"gldemos/internal/config"
	"gldemos/internal/input"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is the GLFW implementation of app.Platform. It owns the OS window and
// the GL 3.3 core context, and feeds window events into an InputManager.
type Window struct {
	im     *input.InputManager
	logger *slog.Logger

	window     *glfw.Window
	glfwReady  bool
	start      float64
	onResize   func(width, height int)
	cursorMode int
}

var _ app.Platform = (*Window)(nil)

// NewWindow returns an unopened window. Nothing touches GLFW until Open.
func NewWindow(im *input.InputManager, logger *slog.Logger) *Window {
	return &Window{im: im, logger: logger, cursorMode: glfw.CursorNormal}
}

// Open initializes GLFW, creates the window and makes a 3.3 core context
// current on the calling thread. The caller must have locked the OS thread.
func (w *Window) Open(cfg config.WindowCfg) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("%w: %v", app.ErrPlatformInit, err)
	}
	w.glfwReady = true

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", app.ErrWindowInit, err)
	}
	w.window = window
	w.position(cfg)

	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return fmt.Errorf("%w: %v", app.ErrContextInit, err)
	}

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w.im.SetCallbacks(window)
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	fbw, fbh := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))

	window.Show()
	w.start = glfw.GetTime()

	w.logger.Info("window opened",
		"title", cfg.Title,
		"width", cfg.Width,
		"height", cfg.Height,
		"gl_version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)
	return nil
}

// position places the window at cfg.X/cfg.Y, or centres it on the primary
// monitor when either is negative.
func (w *Window) position(cfg config.WindowCfg) {
	x, y := cfg.X, cfg.Y
	if x < 0 || y < 0 {
		monitor := glfw.GetPrimaryMonitor()
		if monitor == nil {
			return
		}
		mode := monitor.GetVideoMode()
		if mode == nil {
			return
		}
		mx, my := monitor.GetPos()
		if x < 0 {
			x = mx + (mode.Width-cfg.Width)/2
		}
		if y < 0 {
			y = my + (mode.Height-cfg.Height)/2
		}
	}
	w.window.SetPos(x, y)
}

// PollEvents clears the previous frame's input edges and then pumps the OS
// event queue, so callbacks fired here are visible to the next update. The quit
// action closes the window.
func (w *Window) PollEvents() {
	w.im.PostUpdate()
	glfw.PollEvents()
	if w.im.JustPressed(input.ActionQuit) {
		w.window.SetShouldClose(true)
	}
}

func (w *Window) SwapBuffers() {
	w.window.SwapBuffers()
}

func (w *Window) ShouldClose() bool {
	return w.window == nil || w.window.ShouldClose()
}

func (w *Window) RequestClose() {
	if w.window != nil {
		w.window.SetShouldClose(true)
	}
}

// Time returns seconds since Open.
func (w *Window) Time() float64 {
	return glfw.GetTime() - w.start
}

func (w *Window) FramebufferSize() (int, int) {
	if w.window == nil {
		return 0, 0
	}
	return w.window.GetFramebufferSize()
}

// Size returns the window size in screen coordinates, which is what cursor
// positions are measured in.
func (w *Window) Size() (int, int) {
	if w.window == nil {
		return 0, 0
	}
	return w.window.GetSize()
}

func (w *Window) OnResize(fn func(width, height int)) {
	w.onResize = fn
}

// WarpCursor moves the cursor to x, y without producing a motion delta.
func (w *Window) WarpCursor(x, y float64) {
	if w.window == nil {
		return
	}
	w.window.SetCursorPos(x, y)
	w.im.ResetCursor(x, y)
}

// CenterCursor warps the cursor to the middle of the window.
func (w *Window) CenterCursor() {
	width, height := w.Size()
	w.WarpCursor(float64(width)/2, float64(height)/2)
}

// SetCursorCaptured hides and locks the cursor for mouse-look, or releases it.
func (w *Window) SetCursorCaptured(captured bool) {
	mode := glfw.CursorNormal
	if captured {
		mode = glfw.CursorDisabled
	}
	if w.window == nil || mode == w.cursorMode {
		return
	}
	w.window.SetInputMode(glfw.CursorMode, mode)
	w.cursorMode = mode
	w.im.ResetCursor(w.window.GetCursorPos())
}

// Close destroys the window and terminates GLFW. Safe to call after a failed
// Open and more than once.
func (w *Window) Close() {
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	if w.glfwReady {
		glfw.Terminate()
		w.glfwReady = false
		w.logger.Info("window closed")
	}
}
