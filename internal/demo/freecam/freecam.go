package freecam

import (
	"log/slog"

	"gldemos/internal/app"
	"gldemos/internal/camera"
	"gldemos/internal/config"
	"gldemos/internal/graphics/renderables/ripple"
	"gldemos/internal/graphics/renderables/skybox"
	renderer "gldemos/internal/graphics/renderer"
	"gldemos/internal/input"
	"gldemos/internal/platform"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	nearPlane = 0.1
	farPlane  = 1000
)

// Demo flies a free camera over the ripple grid inside the skybox.
type Demo struct {
	cfg    *config.Config
	im     *input.InputManager
	window *platform.Window
	logger *slog.Logger

	pilot    *Pilot
	renderer *renderer.Renderer
}

var _ app.Scene = (*Demo)(nil)

func New(cfg *config.Config, im *input.InputManager, window *platform.Window, logger *slog.Logger) *Demo {
	aspect := float32(cfg.Window.Width) / float32(cfg.Window.Height)
	cam := camera.NewFree(cfg.FreeCam.FOV, aspect, nearPlane, farPlane)
	cam.Position = mgl32.Vec3(cfg.FreeCam.Start)
	cam.Face(mgl32.Vec3{})

	return &Demo{
		cfg:    cfg,
		im:     im,
		window: window,
		logger: logger,
		pilot:  NewPilot(cam, cfg.FreeCam),
	}
}

func (d *Demo) Init() error {
	var faces [6]string
	for i, p := range d.cfg.Skybox.Faces {
		faces[i] = d.cfg.AssetPath(p)
	}
	skyVert, skyFrag := d.cfg.ShaderPaths("skybox")
	sky := skybox.NewSkybox(skyVert, skyFrag, faces, d.cfg.Skybox.Scale)

	rc := d.cfg.Ripple
	rippleVert, rippleFrag := d.cfg.ShaderPaths("ripple")
	grid := ripple.NewRipple(rippleVert, rippleFrag, rc.NumX, rc.NumZ, rc.SizeX, rc.SizeZ)

	d.renderer = renderer.NewRenderer(
		[]renderer.Renderable{sky, grid},
		renderer.WithWireframe(d.cfg.Window.Wireframe),
	)
	if err := d.renderer.Init(); err != nil {
		return err
	}

	d.window.SetCursorCaptured(true)
	d.pilot.filter.Reset()
	pos := d.pilot.cam.Position
	d.logger.Info("free camera ready", "x", pos.X(), "y", pos.Y(), "z", pos.Z())
	return nil
}

func (d *Demo) Update(f app.Frame) {
	d.pilot.Steer(d.im, float32(f.DT))

	if d.im.JustPressed(input.ActionToggleWireframe) {
		d.logger.Debug("wireframe toggled", "on", d.renderer.ToggleWireframe())
	}
}

func (d *Demo) Render(f app.Frame) {
	cam := d.pilot.cam
	d.renderer.Render(renderer.RenderContext{
		View:  cam.View(),
		Proj:  cam.Projection(),
		Model: mgl32.Ident4(),
		Eye:   cam.Position,
		Time:  float32(f.Time) * d.cfg.Ripple.Speed,
		DT:    float32(f.DT),
	})
}

func (d *Demo) Resize(width, height int) {
	d.pilot.cam.SetAspect(width, height)
}

func (d *Demo) Dispose() {
	if d.renderer != nil {
		d.renderer.Dispose()
	}
	d.window.SetCursorCaptured(false)
}
