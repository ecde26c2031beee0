package imaging

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// CubeFaceCount is the number of faces in a cubemap, ordered +X, -X, +Y, -Y, +Z, -Z.
const CubeFaceCount = 6

// Load decodes the image at path into tightly packed RGBA.
func Load(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return ToRGBA(img), nil
}

// ToRGBA converts img to an *image.RGBA whose bounds start at the origin.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == 4*b.Dx() {
		return rgba
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// FlipVertical mirrors img top to bottom in place. OpenGL expects the first row
// of texel data to be the bottom of the image.
func FlipVertical(img *image.RGBA) {
	h := img.Bounds().Dy()
	rowLen := img.Bounds().Dx() * 4
	tmp := make([]byte, rowLen)
	for top, bottom := 0, h-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := img.Pix[top*img.Stride : top*img.Stride+rowLen]
		b := img.Pix[bottom*img.Stride : bottom*img.Stride+rowLen]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

// Resize scales img to w x h with bilinear filtering.
func Resize(img *image.RGBA, w, h int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return out
}

// LoadCubeFaces loads the six cubemap faces. Faces whose size differs from the
// first face are rescaled to match it, since every face of a cubemap must share
// one size.
func LoadCubeFaces(paths [CubeFaceCount]string) ([CubeFaceCount]*image.RGBA, error) {
	var faces [CubeFaceCount]*image.RGBA
	for i, p := range paths {
		img, err := Load(p)
		if err != nil {
			return faces, fmt.Errorf("cubemap face %d: %w", i, err)
		}
		faces[i] = img
	}

	w, h := faces[0].Bounds().Dx(), faces[0].Bounds().Dy()
	for i := 1; i < CubeFaceCount; i++ {
		b := faces[i].Bounds()
		if b.Dx() != w || b.Dy() != h {
			faces[i] = Resize(faces[i], w, h)
		}
	}
	return faces, nil
}
