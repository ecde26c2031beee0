package loadimage

import (
	"log/slog"

	"gldemos/internal/app"
	"gldemos/internal/config"
	"gldemos/internal/graphics"
	"gldemos/internal/graphics/renderables/texquad"
	renderer "gldemos/internal/graphics/renderer"
	"gldemos/internal/input"

	"github.com/go-gl/mathgl/mgl32"
)

// Demo shows one image stretched over the window.
type Demo struct {
	cfg    *config.Config
	im     *input.InputManager
	logger *slog.Logger

	textures *graphics.TextureCache
	renderer *renderer.Renderer
}

var _ app.Scene = (*Demo)(nil)

func New(cfg *config.Config, im *input.InputManager, logger *slog.Logger) *Demo {
	return &Demo{
		cfg:      cfg,
		im:       im,
		logger:   logger,
		textures: graphics.NewTextureCache(),
	}
}

func (d *Demo) Init() error {
	vert, frag := d.cfg.ShaderPaths("texquad")
	image := d.cfg.AssetPath(d.cfg.Image.Path)
	quad := texquad.NewTexQuad(vert, frag, image, d.textures)

	d.renderer = renderer.NewRenderer(
		[]renderer.Renderable{quad},
		renderer.WithDepthTest(false),
		renderer.WithWireframe(d.cfg.Window.Wireframe),
	)
	if err := d.renderer.Init(); err != nil {
		return err
	}
	d.logger.Info("image loaded", "path", image)
	return nil
}

func (d *Demo) Update(f app.Frame) {
	if d.im.JustPressed(input.ActionToggleWireframe) {
		d.logger.Debug("wireframe toggled", "on", d.renderer.ToggleWireframe())
	}
}

func (d *Demo) Render(f app.Frame) {
	d.renderer.Render(renderer.RenderContext{
		View:  mgl32.Ident4(),
		Proj:  mgl32.Ident4(),
		Model: mgl32.Ident4(),
		Time:  float32(f.Time),
		DT:    float32(f.DT),
	})
}

// Resize is a no-op: the quad always covers the viewport.
func (d *Demo) Resize(width, height int) {}

func (d *Demo) Dispose() {
	if d.renderer != nil {
		d.renderer.Dispose()
	}
}
