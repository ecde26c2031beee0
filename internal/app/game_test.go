package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"gldemos/internal/config"
	"gldemos/internal/metrics"
)

type fakePlatform struct {
	openErr   error
	closeAt   int // ShouldClose reports true once this many polls happened; 0 never
	polls     int
	swaps     int
	closes    int
	requested bool
	now       float64
	fbW, fbH  int
	onResize  func(int, int)
	calls     *[]string
}

func (p *fakePlatform) Open(config.WindowCfg) error {
	p.record("open")
	return p.openErr
}

func (p *fakePlatform) PollEvents() {
	p.polls++
	p.now += 0.016
	p.record("poll")
}

func (p *fakePlatform) SwapBuffers() {
	p.swaps++
	p.record("swap")
}

func (p *fakePlatform) ShouldClose() bool {
	return p.requested || (p.closeAt > 0 && p.polls >= p.closeAt)
}

func (p *fakePlatform) RequestClose() { p.requested = true }
func (p *fakePlatform) Time() float64 { return p.now }
func (p *fakePlatform) FramebufferSize() (int, int) { return p.fbW, p.fbH }
func (p *fakePlatform) OnResize(fn func(width, height int)) { p.onResize = fn }

func (p *fakePlatform) Close() {
	p.closes++
	p.record("close")
}

func (p *fakePlatform) record(s string) {
	if p.calls != nil {
		*p.calls = append(*p.calls, s)
	}
}

type fakeScene struct {
	initErr  error
	inits    int
	updates  int
	renders  int
	disposes int
	sizes    [][2]int
	frames   []Frame
	onUpdate func(f Frame)
	calls    *[]string
}

func (s *fakeScene) Init() error {
	s.inits++
	s.record("init")
	return s.initErr
}

func (s *fakeScene) Update(f Frame) {
	s.updates++
	s.frames = append(s.frames, f)
	s.record("update")
	if s.onUpdate != nil {
		s.onUpdate(f)
	}
}

func (s *fakeScene) Render(Frame) {
	s.renders++
	s.record("render")
}

func (s *fakeScene) Resize(w, h int) {
	s.sizes = append(s.sizes, [2]int{w, h})
}

func (s *fakeScene) Dispose() {
	s.disposes++
	s.record("dispose")
}

func (s *fakeScene) record(c string) {
	if s.calls != nil {
		*s.calls = append(*s.calls, c)
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func windowCfg() config.WindowCfg {
	return config.Default().Window
}

func TestGameRunsFramesInOrder(t *testing.T) {
	var calls []string
	p := &fakePlatform{closeAt: 2, calls: &calls}
	s := &fakeScene{calls: &calls}
	g := New(p, s, quietLogger())

	if err := g.Init(windowCfg()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if g.State() != StateReady {
		t.Fatalf("state after Init = %s, want ready", g.State())
	}
	if err := g.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	g.Clean()

	want := []string{
		"open", "init",
		"poll", "update", "render", "swap",
		"poll", "update", "render", "swap",
		"dispose", "close",
	}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	if g.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", g.Frames())
	}
	if g.State() != StateStopped {
		t.Errorf("state after Clean = %s, want stopped", g.State())
	}
}

func TestGameFrameTiming(t *testing.T) {
	p := &fakePlatform{closeAt: 3, now: 1}
	s := &fakeScene{}
	g := New(p, s, quietLogger())
	if err := g.Init(windowCfg()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := g.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(s.frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(s.frames))
	}
	for i, f := range s.frames {
		if f.Index != uint64(i) {
			t.Errorf("frame %d has index %d", i, f.Index)
		}
		if f.DT < 0 {
			t.Errorf("frame %d has negative dt %v", i, f.DT)
		}
		if i > 0 && f.Time < s.frames[i-1].Time {
			t.Errorf("frame %d time went backwards", i)
		}
	}
}

func TestGameInitFailureNeverRenders(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status Status
	}{
		{"platform", fmt.Errorf("glfw: %w", ErrPlatformInit), StatusPlatformInitFail},
		{"window", fmt.Errorf("create window: %w", ErrWindowInit), StatusWindowInitFail},
		{"context", fmt.Errorf("gl: %w", ErrContextInit), StatusContextInitFail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &fakePlatform{openErr: tc.err, closeAt: 5}
			s := &fakeScene{}
			g := New(p, s, quietLogger())

			err := g.Init(windowCfg())
			if !errors.Is(err, tc.err) {
				t.Fatalf("Init error = %v, want %v", err, tc.err)
			}
			if got := StatusOf(err); got != tc.status {
				t.Errorf("StatusOf = %s, want %s", got, tc.status)
			}
			if g.State() != StateFailed {
				t.Errorf("state = %s, want failed", g.State())
			}
			if err := g.Run(); !errors.Is(err, ErrNotInitialized) {
				t.Errorf("Run after failed Init = %v, want ErrNotInitialized", err)
			}
			g.Clean()

			if s.inits != 0 || s.renders != 0 || s.disposes != 0 {
				t.Errorf("scene touched: inits=%d renders=%d disposes=%d", s.inits, s.renders, s.disposes)
			}
			if p.polls != 0 || p.swaps != 0 {
				t.Errorf("loop ran: polls=%d swaps=%d", p.polls, p.swaps)
			}
			if p.closes != 1 {
				t.Errorf("platform closed %d times, want 1", p.closes)
			}
		})
	}
}

func TestGameSceneInitFailure(t *testing.T) {
	sceneErr := errors.New("shader compile failed")
	p := &fakePlatform{closeAt: 5}
	s := &fakeScene{initErr: sceneErr}
	g := New(p, s, quietLogger())

	err := g.Init(windowCfg())
	if !errors.Is(err, sceneErr) {
		t.Fatalf("Init error = %v, want wrapped %v", err, sceneErr)
	}
	if StatusOf(err) != StatusFailure {
		t.Errorf("StatusOf = %s, want failure", StatusOf(err))
	}
	if err := g.Run(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Run = %v, want ErrNotInitialized", err)
	}
	g.Clean()
	if s.renders != 0 {
		t.Errorf("render called %d times", s.renders)
	}
	if s.disposes != 0 {
		t.Errorf("dispose called on a scene that never initialized")
	}
}

func TestGameRunBeforeInit(t *testing.T) {
	p := &fakePlatform{closeAt: 1}
	s := &fakeScene{}
	g := New(p, s, quietLogger())

	if err := g.Run(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Run = %v, want ErrNotInitialized", err)
	}
	if s.renders != 0 || p.polls != 0 {
		t.Errorf("loop ran without Init")
	}
}

func TestGameInitTwice(t *testing.T) {
	g := New(&fakePlatform{}, &fakeScene{}, quietLogger())
	if err := g.Init(windowCfg()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := g.Init(windowCfg()); err == nil {
		t.Fatal("second Init succeeded")
	}
}

func TestGameQuitStopsLoop(t *testing.T) {
	p := &fakePlatform{}
	s := &fakeScene{}
	g := New(p, s, quietLogger())
	s.onUpdate = func(f Frame) {
		if f.Index == 4 {
			g.Quit()
		}
	}
	if err := g.Init(windowCfg()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := g.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.renders != 5 {
		t.Errorf("rendered %d frames, want 5", s.renders)
	}
	if g.Running() {
		t.Error("Running() still true after Quit")
	}
}

func TestGamePlatformCloseStopsLoop(t *testing.T) {
	p := &fakePlatform{}
	s := &fakeScene{}
	s.onUpdate = func(f Frame) {
		if f.Index == 2 {
			p.RequestClose()
		}
	}
	g := New(p, s, quietLogger())
	if err := g.Init(windowCfg()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := g.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.renders != 3 {
		t.Errorf("rendered %d frames, want 3", s.renders)
	}
}

func TestGameCleanIsIdempotent(t *testing.T) {
	p := &fakePlatform{closeAt: 1}
	s := &fakeScene{}
	g := New(p, s, quietLogger())
	if err := g.Init(windowCfg()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := g.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	g.Clean()
	g.Clean()
	if s.disposes != 1 {
		t.Errorf("scene disposed %d times, want 1", s.disposes)
	}
	if p.closes != 1 {
		t.Errorf("platform closed %d times, want 1", p.closes)
	}
}

func TestGameResize(t *testing.T) {
	p := &fakePlatform{fbW: 800, fbH: 600}
	s := &fakeScene{}
	g := New(p, s, quietLogger())
	if err := g.Init(windowCfg()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if g.Width() != 800 || g.Height() != 600 {
		t.Fatalf("size = %dx%d, want framebuffer size 800x600", g.Width(), g.Height())
	}

	p.onResize(1280, 720)
	p.onResize(0, 0) // minimized
	if g.Width() != 1280 || g.Height() != 720 {
		t.Errorf("size = %dx%d, want 1280x720", g.Width(), g.Height())
	}
	want := [][2]int{{800, 600}, {1280, 720}}
	if !reflect.DeepEqual(s.sizes, want) {
		t.Errorf("scene sizes = %v, want %v", s.sizes, want)
	}
}

func TestGameRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	fm := metrics.NewCollectors(reg).ForDemo("test")

	p := &fakePlatform{closeAt: 4}
	g := New(p, &fakeScene{}, quietLogger(), WithMetrics(fm), WithSlowFrame(time.Hour))
	if err := g.Init(windowCfg()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := g.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	sum, err := fm.Summary()
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Frames != 4 {
		t.Errorf("frames = %d, want 4", sum.Frames)
	}
	if sum.Slow != 0 {
		t.Errorf("slow = %d, want 0", sum.Slow)
	}
}

func TestGameFrameMetricsExcludeLimiterWait(t *testing.T) {
	reg := prometheus.NewRegistry()
	fm := metrics.NewCollectors(reg).ForDemo("capped")

	// 20fps: every limiter wait is about 50ms.
	p := &fakePlatform{closeAt: 2}
	g := New(p, &fakeScene{}, quietLogger(), WithMetrics(fm), WithFPSLimit(20), WithSlowFrame(time.Hour))
	if err := g.Init(windowCfg()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	start := time.Now()
	if err := g.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 90*time.Millisecond {
		t.Fatalf("limiter did not wait: run took %v", elapsed)
	}

	sum, err := fm.Summary()
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Frames != 2 {
		t.Fatalf("frames = %d, want 2", sum.Frames)
	}
	if sum.MeanFrame >= 25*time.Millisecond {
		t.Errorf("mean frame %v includes the limiter wait", sum.MeanFrame)
	}
}

func TestGameSessionOption(t *testing.T) {
	sess := NewSession(config.GameCfg{Lives: 3, Level: 1, ScrollSpeed: 0.8})
	g := New(&fakePlatform{}, &fakeScene{}, quietLogger(), WithSession(sess))
	if g.Session() != sess {
		t.Fatal("session option ignored")
	}

	sess.SetLevelComplete(true)
	sess.SetLevel(2)
	if sess.Level() != 2 || sess.LevelComplete() {
		t.Errorf("SetLevel: level=%d complete=%v", sess.Level(), sess.LevelComplete())
	}
	sess.SetLives(sess.Lives() - 1)
	if sess.Lives() != 2 {
		t.Errorf("lives = %d, want 2", sess.Lives())
	}
	if sess.ScrollSpeed() != 0.8 {
		t.Errorf("scroll speed = %v", sess.ScrollSpeed())
	}
}

func TestStatusOf(t *testing.T) {
	if StatusOf(nil) != StatusSuccess {
		t.Error("nil error is not success")
	}
	if StatusOf(errors.New("boom")) != StatusFailure {
		t.Error("unknown error is not failure")
	}
	if got := StatusOf(fmt.Errorf("a: %w", fmt.Errorf("b: %w", ErrContextInit))); got != StatusContextInitFail {
		t.Errorf("nested context error = %s", got)
	}
	if StatusWindowInitFail.String() != "window init failed" {
		t.Errorf("String() = %q", StatusWindowInitFail.String())
	}
}

// fakeClock advances only when the limiter sleeps or spins.
type fakeClock struct {
	t     time.Time
	slept time.Duration
	spins int
}

func (c *fakeClock) now() time.Time {
	c.spins++
	c.t = c.t.Add(time.Microsecond)
	return c.t
}

func (c *fakeClock) sleep(d time.Duration) {
	c.slept += d
	c.t = c.t.Add(d)
}

func TestFPSLimiterPacesFrames(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	l := NewFPSLimiter(100)
	l.now, l.sleep = clk.now, clk.sleep

	start := clk.t
	for i := 0; i < 10; i++ {
		l.Wait()
	}
	elapsed := clk.t.Sub(start)
	if elapsed < 100*time.Millisecond {
		t.Errorf("10 frames at 100fps took %v, want at least 100ms", elapsed)
	}
	if elapsed > 105*time.Millisecond {
		t.Errorf("10 frames at 100fps took %v, limiter overshot", elapsed)
	}
	if clk.slept == 0 {
		t.Error("limiter never slept")
	}
}

func TestFPSLimiterDisabled(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	l := NewFPSLimiter(0)
	l.now, l.sleep = clk.now, clk.sleep
	l.Wait()
	if clk.slept != 0 || clk.spins != 0 {
		t.Errorf("disabled limiter waited: slept=%v spins=%d", clk.slept, clk.spins)
	}
	if l.Limit() != 0 {
		t.Errorf("Limit() = %d", l.Limit())
	}
}

func TestFPSLimiterResyncsAfterHitch(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	l := NewFPSLimiter(100)
	l.now, l.sleep = clk.now, clk.sleep

	l.Wait()
	clk.t = clk.t.Add(time.Second) // long stall
	before := clk.t
	l.Wait()
	l.Wait()
	// Without a resync the limiter would return immediately for ~100 frames.
	if clk.t.Sub(before) < 10*time.Millisecond {
		t.Errorf("limiter raced after hitch: %v", clk.t.Sub(before))
	}
}
