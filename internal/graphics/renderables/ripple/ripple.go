package ripple

import (
	"fmt"

	"gldemos/internal/geometry"
	"gldemos/internal/graphics"
	renderer "gldemos/internal/graphics/renderer"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Ripple is a flat grid displaced in the vertex shader by a radial sine wave
// that advances with the time uniform.
type Ripple struct {
	vertPath, fragPath string
	numX, numZ         int
	sizeX, sizeZ       float32

	program *graphics.Program
	mesh    *graphics.Mesh
}

// NewRipple creates a ripple over a numX by numZ cell grid of sizeX by sizeZ
// world units centred on the origin.
func NewRipple(vertPath, fragPath string, numX, numZ int, sizeX, sizeZ float32) *Ripple {
	return &Ripple{
		vertPath: vertPath,
		fragPath: fragPath,
		numX:     numX,
		numZ:     numZ,
		sizeX:    sizeX,
		sizeZ:    sizeZ,
	}
}

func (r *Ripple) Init() error {
	vertices, indices, err := geometry.GenerateGrid(r.numX, r.numZ, r.sizeX, r.sizeZ)
	if err != nil {
		return fmt.Errorf("ripple grid: %w", err)
	}

	r.program, err = graphics.NewProgram(r.vertPath, r.fragPath)
	if err != nil {
		return err
	}
	attrib := r.program.AddAttribute("vVertex")
	r.program.AddUniform("MVP")
	r.program.AddUniform("time")
	if attrib < 0 {
		r.program.Delete()
		return fmt.Errorf("ripple: vVertex attribute missing from %s", r.vertPath)
	}

	r.mesh, err = graphics.NewIndexedMesh(geometry.Flatten(vertices), 3, indices, uint32(attrib))
	if err != nil {
		r.program.Delete()
		return err
	}
	return nil
}

func (r *Ripple) Render(ctx renderer.RenderContext) {
	r.program.Use()
	r.program.SetMatrix4("MVP", ctx.MVP())
	r.program.SetFloat("time", ctx.Time)
	r.mesh.Draw(gl.TRIANGLES)
	r.program.Unuse()
}

func (r *Ripple) Dispose() {
	if r.mesh != nil {
		r.mesh.Delete()
	}
	if r.program != nil {
		r.program.Delete()
	}
}
