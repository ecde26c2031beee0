package skybox

import (
	"log/slog"

	"gldemos/internal/app"
	"gldemos/internal/camera"
	"gldemos/internal/config"
	"gldemos/internal/graphics"
	skyboxmesh "gldemos/internal/graphics/renderables/skybox"
	"gldemos/internal/graphics/renderables/water"
	renderer "gldemos/internal/graphics/renderer"
	"gldemos/internal/input"
	"gldemos/internal/platform"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	nearPlane = 0.1
	farPlane  = 1000
)

// Demo draws an ocean skybox over a reflective water surface. Moving the mouse
// orbits the view.
type Demo struct {
	cfg    *config.Config
	im     *input.InputManager
	window *platform.Window
	logger *slog.Logger

	orbit      *camera.Orbit
	projection *graphics.Projection
	renderer   *renderer.Renderer
}

var _ app.Scene = (*Demo)(nil)

func New(cfg *config.Config, im *input.InputManager, window *platform.Window, logger *slog.Logger) *Demo {
	o := cfg.Skybox.Orbit
	return &Demo{
		cfg:        cfg,
		im:         im,
		window:     window,
		logger:     logger,
		orbit:      camera.NewOrbit(o.RX, o.RY, o.Dist),
		projection: graphics.NewProjection(cfg.Skybox.FOV, cfg.Window.Width, cfg.Window.Height, nearPlane, farPlane),
	}
}

func (d *Demo) Init() error {
	sc := d.cfg.Skybox
	var faces [6]string
	for i, p := range sc.Faces {
		faces[i] = d.cfg.AssetPath(p)
	}

	skyVert, skyFrag := d.cfg.ShaderPaths("skybox")
	sky := skyboxmesh.NewSkybox(skyVert, skyFrag, faces, sc.Scale)
	waterVert, waterFrag := d.cfg.ShaderPaths("water")
	surface := water.NewWater(waterVert, waterFrag, sc.WaterNumX, sc.WaterNumZ, sc.WaterSizeX, sc.WaterSizeZ, sky)

	d.renderer = renderer.NewRenderer(
		[]renderer.Renderable{sky, surface},
		renderer.WithWireframe(d.cfg.Window.Wireframe),
	)
	if err := d.renderer.Init(); err != nil {
		return err
	}

	d.window.CenterCursor()
	d.orbit.Anchor(d.im.CursorPos())
	d.logger.Info("skybox ready", "water_nx", sc.WaterNumX, "water_nz", sc.WaterNumZ)
	return nil
}

func (d *Demo) Update(f app.Frame) {
	d.orbit.Track(d.im.CursorPos())

	if d.im.JustPressed(input.ActionToggleWireframe) {
		d.logger.Debug("wireframe toggled", "on", d.renderer.ToggleWireframe())
	}
}

func (d *Demo) Render(f app.Frame) {
	view := d.orbit.View()
	model := mgl32.Ident4()
	d.renderer.Render(renderer.RenderContext{
		View:  view,
		Proj:  d.projection.Matrix(),
		Model: model,
		Eye:   camera.EyePosition(view.Mul4(model)),
		Time:  float32(f.Time) * d.cfg.Skybox.TimeScale,
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
