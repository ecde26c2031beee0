package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// GenerateGrid builds an nx by nz cell plane centred on the origin in the XZ plane.
// Vertices are laid out row by row along X. Each cell is split into two triangles
// whose shared diagonal alternates in a checkerboard so the mesh has no directional bias.
func GenerateGrid(nx, nz int, sizeX, sizeZ float32) ([]mgl32.Vec3, []uint32, error) {
	if nx < 1 || nz < 1 {
		return nil, nil, fmt.Errorf("grid needs at least one cell per axis, got %dx%d", nx, nz)
	}
	if sizeX <= 0 || sizeZ <= 0 {
		return nil, nil, fmt.Errorf("grid size must be positive, got %gx%g", sizeX, sizeZ)
	}

	halfX := sizeX / 2
	halfZ := sizeZ / 2

	vertices := make([]mgl32.Vec3, 0, (nx+1)*(nz+1))
	for j := 0; j <= nz; j++ {
		z := (float32(j)/float32(nz)*2 - 1) * halfZ
		for i := 0; i <= nx; i++ {
			x := (float32(i)/float32(nx)*2 - 1) * halfX
			vertices = append(vertices, mgl32.Vec3{x, 0, z})
		}
	}

	row := uint32(nx + 1)
	indices := make([]uint32, 0, nx*nz*6)
	for i := 0; i < nz; i++ {
		for j := 0; j < nx; j++ {
			i0 := uint32(i)*row + uint32(j)
			i1 := i0 + 1
			i2 := i0 + row
			i3 := i2 + 1
			if (i+j)%2 == 1 {
				indices = append(indices, i0, i2, i1, i1, i2, i3)
			} else {
				indices = append(indices, i0, i2, i3, i0, i3, i1)
			}
		}
	}

	return vertices, indices, nil
}

// Flatten packs positions into a tightly laid out float slice for a vertex buffer.
func Flatten(vertices []mgl32.Vec3) []float32 {
	out := make([]float32, 0, len(vertices)*3)
	for _, v := range vertices {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}
