package ripple

import (
	"log/slog"

	"gldemos/internal/app"
	"gldemos/internal/camera"
	"gldemos/internal/config"
	"gldemos/internal/graphics"
	ripplemesh "gldemos/internal/graphics/renderables/ripple"
	renderer "gldemos/internal/graphics/renderer"
	"gldemos/internal/input"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	nearPlane = 1
	farPlane  = 1000
)

// Demo animates a grid with a radial sine wave. Dragging with the left mouse
// button orbits the view.
type Demo struct {
	cfg    *config.Config
	im     *input.InputManager
	logger *slog.Logger

	orbit      *camera.Orbit
	projection *graphics.Projection
	renderer   *renderer.Renderer
}

var _ app.Scene = (*Demo)(nil)

func New(cfg *config.Config, im *input.InputManager, logger *slog.Logger) *Demo {
	o := cfg.Ripple.Orbit
	return &Demo{
		cfg:        cfg,
		im:         im,
		logger:     logger,
		orbit:      camera.NewOrbit(o.RX, o.RY, o.Dist),
		projection: graphics.NewProjection(cfg.Ripple.FOV, cfg.Window.Width, cfg.Window.Height, nearPlane, farPlane),
	}
}

func (d *Demo) Init() error {
	rc := d.cfg.Ripple
	vert, frag := d.cfg.ShaderPaths("ripple")
	mesh := ripplemesh.NewRipple(vert, frag, rc.NumX, rc.NumZ, rc.SizeX, rc.SizeZ)

	d.renderer = renderer.NewRenderer(
		[]renderer.Renderable{mesh},
		renderer.WithWireframe(true),
	)
	if err := d.renderer.Init(); err != nil {
		return err
	}
	d.logger.Info("ripple grid ready", "nx", rc.NumX, "nz", rc.NumZ)
	return nil
}

func (d *Demo) Update(f app.Frame) {
	if d.im.IsActive(input.ActionMouseLeft) {
		d.orbit.Track(d.im.CursorPos())
	} else {
		d.orbit.Release()
	}

	if d.im.JustPressed(input.ActionToggleWireframe) {
		d.logger.Debug("wireframe toggled", "on", d.renderer.ToggleWireframe())
	}
}

func (d *Demo) Render(f app.Frame) {
	d.renderer.Render(renderer.RenderContext{
		View:  d.orbit.View(),
		Proj:  d.projection.Matrix(),
		Model: mgl32.Ident4(),
		Time:  float32(f.Time) * d.cfg.Ripple.Speed,
		DT:    float32(f.DT),
	})
}

func (d *Demo) Resize(width, height int) {
	d.projection.SetAspect(width, height)
}

func (d *Demo) Dispose() {
	if d.renderer != nil {
		d.renderer.Dispose()
	}
}
