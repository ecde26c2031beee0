package graphics

import (
	"fmt"
	"image"

	"gldemos/internal/imaging"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// LoadTexture2D loads a 2D texture from a file. With flip set the image is
// mirrored vertically so that texture coordinate (0,0) is its bottom-left corner.
func LoadTexture2D(path string, flip bool) (uint32, int, int, error) {
	rgba, err := imaging.Load(path)
	if err != nil {
		return 0, 0, 0, err
	}
	if flip {
		imaging.FlipVertical(rgba)
	}
	tex := UploadTexture2D(rgba)
	return tex, rgba.Rect.Size().X, rgba.Rect.Size().Y, nil
}

// UploadTexture2D creates a linearly filtered, edge-clamped texture from rgba.
func UploadTexture2D(rgba *image.RGBA) uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(rgba.Rect.Size().X),
		int32(rgba.Rect.Size().Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texture
}

// LoadCubemap loads six faces ordered +X, -X, +Y, -Y, +Z, -Z into a cube map
// texture.
func LoadCubemap(paths [imaging.CubeFaceCount]string) (uint32, error) {
	faces, err := imaging.LoadCubeFaces(paths)
	if err != nil {
		return 0, err
	}

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, texture)

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	for i, face := range faces {
		size := face.Rect.Size()
		gl.TexImage2D(
			gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i),
			0,
			gl.RGBA,
			int32(size.X),
			int32(size.Y),
			0,
			gl.RGBA,
			gl.UNSIGNED_BYTE,
			gl.Ptr(face.Pix),
		)
	}

	if e := gl.GetError(); e != gl.NO_ERROR {
		gl.DeleteTextures(1, &texture)
		return 0, fmt.Errorf("cubemap upload failed: gl error 0x%x", e)
	}

	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return texture, nil
}

// DeleteTexture releases a texture created by this package.
func DeleteTexture(tex uint32) {
	if tex != 0 {
		gl.DeleteTextures(1, &tex)
	}
}
