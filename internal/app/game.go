package app

import (
	"fmt"
	"log/slog"
	"time"

	"gldemos/internal/config"
	"gldemos/internal/metrics"
	"gldemos/internal/profiling"
)

// State is where a Game is in its lifecycle.
type State int

const (
	StateCreated State = iota
	StateReady
	StateRunning
	StateStopped
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

const defaultSlowFrame = 16 * time.Millisecond

// Game drives a Scene on a Platform: init, then poll/update/render/swap until
// the platform asks to close or Quit is called, then Clean.
type Game struct {
	platform Platform
	scene    Scene
	logger   *slog.Logger

	profiler  *profiling.Profiler
	metrics   *metrics.FrameMetrics
	limiter   *FPSLimiter
	session   *Session
	slowFrame time.Duration

	state      State
	running    bool
	sceneReady bool
	cleaned    bool

	width, height int
	frames        uint64
	lastTime      float64
}

// Option configures a Game.
type Option func(*Game)

// WithProfiler shares a profiler with the caller.
func WithProfiler(p *profiling.Profiler) Option {
	return func(g *Game) { g.profiler = p }
}

// WithMetrics records every frame into m.
func WithMetrics(m *metrics.FrameMetrics) Option {
	return func(g *Game) { g.metrics = m }
}

// WithFPSLimit caps the loop rate. Zero leaves pacing to the buffer swap.
func WithFPSLimit(limit int) Option {
	return func(g *Game) { g.limiter = NewFPSLimiter(limit) }
}

// WithSession attaches session bookkeeping.
func WithSession(s *Session) Option {
	return func(g *Game) { g.session = s }
}

// WithSlowFrame sets the processing time above which a frame is logged as slow.
func WithSlowFrame(d time.Duration) Option {
	return func(g *Game) { g.slowFrame = d }
}

// New wires a game together. Nothing touches the platform until Init.
func New(p Platform, s Scene, logger *slog.Logger, opts ...Option) *Game {
	g := &Game{
		platform:  p,
		scene:     s,
		logger:    logger,
		profiler:  profiling.New(),
		limiter:   NewFPSLimiter(0),
		session:   &Session{},
		slowFrame: defaultSlowFrame,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Init opens the window and context, then initializes the scene. Any error is
// fatal for this Game: it moves to StateFailed and Run will refuse to start.
func (g *Game) Init(cfg config.WindowCfg) error {
	if g.state != StateCreated {
		return fmt.Errorf("init called while %s", g.state)
	}
	g.width, g.height = cfg.Width, cfg.Height

	if err := g.platform.Open(cfg); err != nil {
		g.state = StateFailed
		return err
	}
	g.platform.OnResize(g.resize)
	if w, h := g.platform.FramebufferSize(); w > 0 && h > 0 {
		g.width, g.height = w, h
	}

	if err := g.scene.Init(); err != nil {
		g.state = StateFailed
		return fmt.Errorf("scene init: %w", err)
	}
	g.sceneReady = true
	g.scene.Resize(g.width, g.height)

	g.state = StateReady
	g.running = true
	g.logger.Info("initialization successful", "width", g.width, "height", g.height)
	return nil
}

// Run loops until the platform wants to close or Quit is called.
func (g *Game) Run() error {
	if g.state != StateReady {
		return fmt.Errorf("%w (state %s)", ErrNotInitialized, g.state)
	}
	g.state = StateRunning
	g.lastTime = g.platform.Time()

	for g.running && !g.platform.ShouldClose() {
		g.tick()
	}

	g.state = StateStopped
	g.logger.Info("loop finished", "frames", g.frames)
	return nil
}

func (g *Game) tick() {
	g.profiler.Reset()
	start := time.Now()

	now := g.platform.Time()
	f := Frame{
		Index:  g.frames,
		DT:     now - g.lastTime,
		Time:   now,
		Width:  g.width,
		Height: g.height,
	}
	g.lastTime = now

	func() { defer g.profiler.Track("platform.PollEvents")(); g.platform.PollEvents() }()
	func() { defer g.profiler.Track("scene.Update")(); g.scene.Update(f) }()
	func() { defer g.profiler.Track("scene.Render")(); g.scene.Render(f) }()
	func() { defer g.profiler.Track("platform.SwapBuffers")(); g.platform.SwapBuffers() }()
	g.frames++

	// The swap blocks on vsync, so it does not count towards processing time.
	processing := time.Since(start) - g.profiler.SumWithPrefix("platform.SwapBuffers")
	slow := g.slowFrame > 0 && processing > g.slowFrame
	if slow {
		g.logger.Warn("slow frame", "took", profiling.FormatMs(processing), "top", g.profiler.TopN(3))
	}

	// Recorded before the limiter so the histogram shows work, not the cap.
	if g.metrics != nil {
		g.metrics.ObserveFrame(time.Since(start), slow)
	}

	g.limiter.Wait()
}

func (g *Game) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	g.width, g.height = width, height
	if g.sceneReady {
		g.scene.Resize(width, height)
	}
}

// Quit stops the loop after the current frame.
func (g *Game) Quit() {
	g.running = false
}

// Running reports whether the loop would keep going.
func (g *Game) Running() bool {
	return g.running
}

// Clean releases the scene and then the platform. It is safe to call more than
// once and after a failed Init.
func (g *Game) Clean() {
	if g.cleaned {
		return
	}
	g.cleaned = true
	g.running = false
	g.logger.Info("cleaning game")

	if g.sceneReady {
		g.scene.Dispose()
		g.sceneReady = false
	}
	g.platform.Close()
	if g.state != StateFailed {
		g.state = StateStopped
	}
}

func (g *Game) State() State { return g.state }
func (g *Game) Width() int { return g.width }
func (g *Game) Height() int { return g.height }
func (g *Game) Frames() uint64 { return g.frames }
func (g *Game) Session() *Session { return g.session }
func (g *Game) Profiler() *profiling.Profiler { return g.profiler }
