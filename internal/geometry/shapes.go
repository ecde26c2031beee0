package geometry

// Quad returns the unit quad in [0,1]^2 as 2D positions and its two triangles.
// The positions double as texture coordinates.
func Quad() ([]float32, []uint32) {
	vertices := []float32{
		0, 0,
		1, 0,
		1, 1,
		0, 1,
	}
	indices := []uint32{
		0, 1, 2,
		0, 2, 3,
	}
	return vertices, indices
}

// SkyboxCube returns the corners of the [-1,1]^3 cube and indices wound
// counter-clockwise when seen from inside the cube.
func SkyboxCube() ([]float32, []uint32) {
	vertices := []float32{
		-1, -1, -1,
		1, -1, -1,
		1, 1, -1,
		-1, 1, -1,
		-1, -1, 1,
		1, -1, 1,
		1, 1, 1,
		-1, 1, 1,
	}
	indices := []uint32{
		// -Z
		0, 1, 2,
		2, 3, 0,
		// +X
		1, 5, 6,
		6, 2, 1,
		// +Z
		7, 6, 5,
		5, 4, 7,
		// -X
		4, 0, 3,
		3, 7, 4,
		// -Y
		4, 5, 1,
		1, 0, 4,
		// +Y
		3, 2, 6,
		6, 7, 3,
	}
	return vertices, indices
}
