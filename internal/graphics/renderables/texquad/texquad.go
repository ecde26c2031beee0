package texquad

import (
	"fmt"

	"gldemos/internal/geometry"
	"gldemos/internal/graphics"
	renderer "gldemos/internal/graphics/renderer"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// TexQuad draws one texture over the whole viewport.
type TexQuad struct {
	vertPath, fragPath string
	imagePath          string
	textures           *graphics.TextureCache

	program *graphics.Program
	mesh    *graphics.Mesh
	texture uint32
}

// NewTexQuad creates a quad renderable for the image at imagePath. The texture
// is taken from textures so demos can share it.
func NewTexQuad(vertPath, fragPath, imagePath string, textures *graphics.TextureCache) *TexQuad {
	return &TexQuad{
		vertPath:  vertPath,
		fragPath:  fragPath,
		imagePath: imagePath,
		textures:  textures,
	}
}

// Init compiles the program, uploads the quad and loads the texture
func (q *TexQuad) Init() error {
	var err error
	q.program, err = graphics.NewProgram(q.vertPath, q.fragPath)
	if err != nil {
		return err
	}

	q.program.Use()
	attrib := q.program.AddAttribute("vVertex")
	q.program.AddUniform("textureMap")
	q.program.SetInt("textureMap", 0)
	q.program.Unuse()
	if attrib < 0 {
		q.program.Delete()
		return fmt.Errorf("texquad: vVertex attribute missing from %s", q.vertPath)
	}

	vertices, indices := geometry.Quad()
	q.mesh, err = graphics.NewIndexedMesh(vertices, 2, indices, uint32(attrib))
	if err != nil {
		q.program.Delete()
		return err
	}

	q.texture, err = q.textures.Get(q.imagePath)
	if err != nil {
		q.mesh.Delete()
		q.program.Delete()
		return err
	}
	return nil
}

// Render draws the quad with the texture on unit 0
func (q *TexQuad) Render(ctx renderer.RenderContext) {
	q.program.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, q.texture)
	q.mesh.Draw(gl.TRIANGLES)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	q.program.Unuse()
}

// Dispose cleans up OpenGL resources
func (q *TexQuad) Dispose() {
	if q.mesh != nil {
		q.mesh.Delete()
	}
	if q.program != nil {
		q.program.Delete()
	}
	if q.texture != 0 {
		q.textures.Release(q.imagePath)
		q.texture = 0
	}
}
