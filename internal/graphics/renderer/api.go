package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// RenderContext provides shared per-frame state for all renderables
type RenderContext struct {
	View  mgl32.Mat4
	Proj  mgl32.Mat4
	Model mgl32.Mat4
	Eye   mgl32.Vec3
	Time  float32
	DT    float32
}

// MVP returns Proj * View * Model.
func (c RenderContext) MVP() mgl32.Mat4 {
	return c.Proj.Mul4(c.View).Mul4(c.Model)
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
}
