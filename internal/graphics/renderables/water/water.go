package water

import (
	"fmt"

	"gldemos/internal/geometry"
	"gldemos/internal/graphics"
	renderer "gldemos/internal/graphics/renderer"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// CubemapSource supplies the environment the water reflects.
type CubemapSource interface {
	Cubemap() uint32
}

// Water is a large grid surface animated in the vertex shader. It reflects the
// environment cube map and is alpha blended over what is behind it.
type Water struct {
	vertPath, fragPath string
	numX, numZ         int
	sizeX, sizeZ       float32
	env                CubemapSource

	program *graphics.Program
	mesh    *graphics.Mesh
}

func NewWater(vertPath, fragPath string, numX, numZ int, sizeX, sizeZ float32, env CubemapSource) *Water {
	return &Water{
		vertPath: vertPath,
		fragPath: fragPath,
		numX:     numX,
		numZ:     numZ,
		sizeX:    sizeX,
		sizeZ:    sizeZ,
		env:      env,
	}
}

func (w *Water) Init() error {
	vertices, indices, err := geometry.GenerateGrid(w.numX, w.numZ, w.sizeX, w.sizeZ)
	if err != nil {
		return fmt.Errorf("water grid: %w", err)
	}

	w.program, err = graphics.NewProgram(w.vertPath, w.fragPath)
	if err != nil {
		return err
	}
	w.program.Use()
	attrib := w.program.AddAttribute("vVertex")
	w.program.AddUniform("MVP")
	w.program.AddUniform("time")
	w.program.AddUniform("eyePos")
	w.program.AddUniform("cubeMap")
	w.program.SetInt("cubeMap", 0)
	w.program.Unuse()
	if attrib < 0 {
		w.program.Delete()
		return fmt.Errorf("water: vVertex attribute missing from %s", w.vertPath)
	}

	w.mesh, err = graphics.NewIndexedMesh(geometry.Flatten(vertices), 3, indices, uint32(attrib))
	if err != nil {
		w.program.Delete()
		return err
	}
	return nil
}

// Render draws the surface. ctx.Eye must be the eye in the water's model space.
func (w *Water) Render(ctx renderer.RenderContext) {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	w.program.Use()
	w.program.SetMatrix4("MVP", ctx.MVP())
	w.program.SetFloat("time", ctx.Time)
	w.program.SetVec3("eyePos", ctx.Eye)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, w.env.Cubemap())
	w.mesh.Draw(gl.TRIANGLES)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	w.program.Unuse()

	gl.Disable(gl.BLEND)
}

func (w *Water) Dispose() {
	if w.mesh != nil {
		w.mesh.Delete()
	}
	if w.program != nil {
		w.program.Delete()
	}
}
