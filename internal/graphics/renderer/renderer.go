package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	renderables []Renderable

	clearColor mgl32.Vec4
	depthTest  bool
	wireframe  bool
	ready      int
}

// Option configures a Renderer
type Option func(*Renderer)

func WithClearColor(c mgl32.Vec4) Option {
	return func(r *Renderer) { r.clearColor = c }
}

func WithDepthTest(enabled bool) Option {
	return func(r *Renderer) { r.depthTest = enabled }
}

func WithWireframe(enabled bool) Option {
	return func(r *Renderer) { r.wireframe = enabled }
}

// NewRenderer creates a renderer for the given renderables. Nothing is uploaded
// until Init.
func NewRenderer(rs []Renderable, opts ...Option) *Renderer {
	r := &Renderer{
		renderables: rs,
		clearColor:  mgl32.Vec4{0, 0, 0, 1},
		depthTest:   true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Init configures GL state and initializes all renderables in order. On failure
// the renderables that did initialize are disposed again.
func (r *Renderer) Init() error {
	if r.depthTest {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	for i, rb := range r.renderables {
		if err := rb.Init(); err != nil {
			r.Dispose()
			return fmt.Errorf("renderable %d: %w", i, err)
		}
		r.ready = i + 1
	}
	return nil
}

// Render clears the framebuffer and draws all renderables in order
func (r *Renderer) Render(ctx RenderContext) {
	gl.ClearColor(r.clearColor[0], r.clearColor[1], r.clearColor[2], r.clearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	for _, rb := range r.renderables[:r.ready] {
		rb.Render(ctx)
	}
}

// SetWireframe switches polygon rasterization between lines and fill.
func (r *Renderer) SetWireframe(enabled bool) {
	r.wireframe = enabled
}

// ToggleWireframe flips wireframe mode and returns the new state.
func (r *Renderer) ToggleWireframe() bool {
	r.wireframe = !r.wireframe
	return r.wireframe
}

func (r *Renderer) Wireframe() bool {
	return r.wireframe
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := r.ready - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
	r.ready = 0
}
