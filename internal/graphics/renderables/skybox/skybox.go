package skybox

import (
	"fmt"

	"gldemos/internal/geometry"
	"gldemos/internal/graphics"
	renderer "gldemos/internal/graphics/renderer"
	"gldemos/internal/imaging"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Skybox draws a cube map around the viewer. Only the rotation of the view is
// used, so the sky never moves with the eye.
type Skybox struct {
	vertPath, fragPath string
	faces              [imaging.CubeFaceCount]string
	scale              float32

	program *graphics.Program
	mesh    *graphics.Mesh
	cubemap uint32
}

// NewSkybox creates a skybox from six face images ordered +X, -X, +Y, -Y, +Z, -Z.
func NewSkybox(vertPath, fragPath string, faces [imaging.CubeFaceCount]string, scale float32) *Skybox {
	return &Skybox{
		vertPath: vertPath,
		fragPath: fragPath,
		faces:    faces,
		scale:    scale,
	}
}

func (s *Skybox) Init() error {
	var err error
	s.program, err = graphics.NewProgram(s.vertPath, s.fragPath)
	if err != nil {
		return err
	}
	s.program.Use()
	attrib := s.program.AddAttribute("vVertex")
	s.program.AddUniform("MVP")
	s.program.AddUniform("cubeMap")
	s.program.SetInt("cubeMap", 0)
	s.program.Unuse()
	if attrib < 0 {
		s.program.Delete()
		return fmt.Errorf("skybox: vVertex attribute missing from %s", s.vertPath)
	}

	vertices, indices := geometry.SkyboxCube()
	s.mesh, err = graphics.NewIndexedMesh(vertices, 3, indices, uint32(attrib))
	if err != nil {
		s.program.Delete()
		return err
	}

	s.cubemap, err = graphics.LoadCubemap(s.faces)
	if err != nil {
		s.mesh.Delete()
		s.program.Delete()
		return err
	}
	return nil
}

// Cubemap returns the cube map texture, for surfaces that reflect the sky.
func (s *Skybox) Cubemap() uint32 {
	return s.cubemap
}

func (s *Skybox) Render(ctx renderer.RenderContext) {
	rotation := ctx.View.Mat3().Mat4()
	mvp := ctx.Proj.Mul4(rotation).Mul4(mgl32.Scale3D(s.scale, s.scale, s.scale))

	cull := gl.IsEnabled(gl.CULL_FACE)
	gl.Disable(gl.CULL_FACE)
	gl.DepthMask(false)
	gl.DepthFunc(gl.LEQUAL)

	s.program.Use()
	s.program.SetMatrix4("MVP", mvp)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, s.cubemap)
	s.mesh.Draw(gl.TRIANGLES)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	s.program.Unuse()

	gl.DepthFunc(gl.LESS)
	gl.DepthMask(true)
	if cull {
		gl.Enable(gl.CULL_FACE)
	}
}

func (s *Skybox) Dispose() {
	if s.mesh != nil {
		s.mesh.Delete()
	}
	if s.program != nil {
		s.program.Delete()
	}
	graphics.DeleteTexture(s.cubemap)
	s.cubemap = 0
}
