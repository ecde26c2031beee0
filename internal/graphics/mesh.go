package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Mesh is an indexed, static vertex buffer with its VAO. Geometry is uploaded
// once and never modified.
type Mesh struct {
	vao, vbo, ebo uint32
	count         int32
}

// NewIndexedMesh uploads tightly packed float vertices with the given number of
// components per vertex, bound to attribute location attrib.
func NewIndexedMesh(vertices []float32, components int, indices []uint32, attrib uint32) (*Mesh, error) {
	if components < 1 || components > 4 {
		return nil, fmt.Errorf("invalid component count %d", components)
	}
	if len(vertices) == 0 || len(vertices)%components != 0 {
		return nil, fmt.Errorf("vertex data length %d is not a multiple of %d", len(vertices), components)
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("mesh has no indices")
	}

	m := &Mesh{count: int32(len(indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(attrib)
	gl.VertexAttribPointerWithOffset(attrib, int32(components), gl.FLOAT, false, int32(components*4), 0)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return m, nil
}

// Draw issues one indexed draw call.
func (m *Mesh) Draw(mode uint32) {
	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(mode, m.count, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Count returns the number of indices drawn.
func (m *Mesh) Count() int32 {
	return m.count
}

// Delete cleans up OpenGL resources
func (m *Mesh) Delete() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
}
