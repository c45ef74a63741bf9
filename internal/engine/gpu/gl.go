package gpu

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/glimmer/pkg/geom"
	"github.com/Faultbox/glimmer/pkg/math"
)

// GL is a Device backed by the current OpenGL context.
// gl.Init must have run before any method is called.
type GL struct{}

// CreateIndexed uploads vertices and indices as static data.
func (GL) CreateIndexed(vertices []geom.Vertex, indices []uint32) Handle {
	var h Handle
	gl.GenVertexArrays(1, &h.VAO)
	gl.BindVertexArray(h.VAO)

	gl.GenBuffers(1, &h.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*geom.VertexSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, geom.VertexSize, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, geom.VertexSize, 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, geom.VertexSize, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &h.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, h.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return h
}

// CreateLines uploads points as dynamic position-only data. Lines are
// rebuilt every frame, so the normal and texcoord slots are left disabled
// and read their constant defaults.
func (GL) CreateLines(points []math.Vec3) Handle {
	var h Handle
	gl.GenVertexArrays(1, &h.VAO)
	gl.BindVertexArray(h.VAO)

	gl.GenBuffers(1, &h.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(points)*3*4, unsafe.Pointer(&points[0]), gl.DYNAMIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttrib3f(1, 0, 1, 0)

	gl.BindVertexArray(0)
	return h
}

// DrawIndexed draws indexCount indices as triangles.
func (GL) DrawIndexed(h Handle, indexCount int) {
	gl.BindVertexArray(h.VAO)
	gl.DrawElements(gl.TRIANGLES, int32(indexCount), gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// DrawLineStrip draws vertexCount points as a connected strip.
func (GL) DrawLineStrip(h Handle, vertexCount int) {
	gl.BindVertexArray(h.VAO)
	gl.DrawArrays(gl.LINE_STRIP, 0, int32(vertexCount))
	gl.BindVertexArray(0)
}

// Destroy deletes the objects behind h.
func (GL) Destroy(h Handle) {
	if h.VAO != 0 {
		gl.DeleteVertexArrays(1, &h.VAO)
	}
	if h.VBO != 0 {
		gl.DeleteBuffers(1, &h.VBO)
	}
	if h.EBO != 0 {
		gl.DeleteBuffers(1, &h.EBO)
	}
}
