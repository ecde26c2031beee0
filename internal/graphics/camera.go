package graphics

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Projection holds the perspective parameters of a view
type Projection struct {
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32
}

func NewProjection(fov float32, width, height int, near, far float32) *Projection {
	p := &Projection{
		AspectRatio: 1,
		FOV:         fov,
		NearPlane:   near,
		FarPlane:    far,
	}
	p.SetAspect(width, height)
	return p
}

// SetAspect updates the aspect ratio; a zero-sized framebuffer is ignored.
func (p *Projection) SetAspect(width, height int) {
	if width > 0 && height > 0 {
		p.AspectRatio = float32(width) / float32(height)
	}
}

func (p *Projection) Matrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(p.FOV), p.AspectRatio, p.NearPlane, p.FarPlane)
}

// SetViewport resizes the GL viewport and updates the aspect ratio to match.
func (p *Projection) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	p.SetAspect(width, height)
}
