// Package gpu manages geometry buffers on the rendering context.
//
// A Buffer holds either indexed triangles or a line strip. Upload calls
// replace the contents and mode wholesale; the previous GPU objects are
// destroyed first. All calls must come from the thread that owns the
// context.
package gpu

import (
	"github.com/Faultbox/glimmer/pkg/geom"
	"github.com/Faultbox/glimmer/pkg/math"
)

// Mode is the primitive layout currently stored in a Buffer.
type Mode int

const (
	// ModeEmpty means nothing has been uploaded.
	ModeEmpty Mode = iota
	// ModeTriangles is an indexed triangle list.
	ModeTriangles
	// ModeLines is a connected line strip.
	ModeLines
)

func (m Mode) String() string {
	switch m {
	case ModeTriangles:
		return "triangles"
	case ModeLines:
		return "lines"
	default:
		return "empty"
	}
}

// Handle names the GPU objects behind one upload. The zero Handle is none.
type Handle struct {
	VAO uint32
	VBO uint32
	EBO uint32
}

// IsZero reports whether h refers to nothing.
func (h Handle) IsZero() bool {
	return h == Handle{}
}

// Device is the rendering context a Buffer lives on.
type Device interface {
	CreateIndexed(vertices []geom.Vertex, indices []uint32) Handle
	CreateLines(points []math.Vec3) Handle
	DrawIndexed(h Handle, indexCount int)
	DrawLineStrip(h Handle, vertexCount int)
	Destroy(h Handle)
}

// Buffer owns the GPU storage for one mesh or line strip.
// Copying a Buffer value would alias the handle; use Take to move it.
type Buffer struct {
	device      Device
	handle      Handle
	mode        Mode
	indexCount  int
	vertexCount int
}

// NewBuffer returns an empty buffer bound to device.
func NewBuffer(device Device) *Buffer {
	return &Buffer{device: device}
}

// Upload stores an indexed triangle list. Indices are not range checked.
func (b *Buffer) Upload(vertices []geom.Vertex, indices []uint32) {
	b.Release()
	if b.device == nil || len(vertices) == 0 || len(indices) == 0 {
		return
	}
	b.handle = b.device.CreateIndexed(vertices, indices)
	b.mode = ModeTriangles
	b.indexCount = len(indices)
	b.vertexCount = len(vertices)
}

// UploadMesh is Upload for a generated or assembled mesh.
func (b *Buffer) UploadMesh(m geom.Mesh) {
	b.Upload(m.Vertices, m.Indices)
}

// UploadLines stores a line strip through points.
func (b *Buffer) UploadLines(points []math.Vec3) {
	b.Release()
	if b.device == nil || len(points) == 0 {
		return
	}
	b.handle = b.device.CreateLines(points)
	b.mode = ModeLines
	b.vertexCount = len(points)
}

// Draw renders the triangle list. It does nothing unless the buffer holds
// triangles.
func (b *Buffer) Draw() {
	if b.mode != ModeTriangles {
		return
	}
	b.device.DrawIndexed(b.handle, b.indexCount)
}

// DrawLines renders the line strip. It does nothing unless the buffer holds
// at least two points in line mode.
func (b *Buffer) DrawLines() {
	if b.mode != ModeLines || b.vertexCount < 2 {
		return
	}
	b.device.DrawLineStrip(b.handle, b.vertexCount)
}

// Take moves the contents into a new Buffer and leaves b empty.
func (b *Buffer) Take() *Buffer {
	moved := *b
	b.handle = Handle{}
	b.mode = ModeEmpty
	b.indexCount = 0
	b.vertexCount = 0
	return &moved
}

// Release destroys the GPU objects. The buffer stays usable for new uploads.
func (b *Buffer) Release() {
	if b.mode != ModeEmpty && b.device != nil {
		b.device.Destroy(b.handle)
	}
	b.handle = Handle{}
	b.mode = ModeEmpty
	b.indexCount = 0
	b.vertexCount = 0
}

// IsUploaded reports whether the buffer holds anything drawable.
func (b *Buffer) IsUploaded() bool {
	return b.mode != ModeEmpty
}

// Mode returns the current primitive layout.
func (b *Buffer) Mode() Mode {
	return b.mode
}

// IndexCount returns the index count of a triangle upload.
func (b *Buffer) IndexCount() int {
	return b.indexCount
}

// VertexCount returns the vertex or point count of the last upload.
func (b *Buffer) VertexCount() int {
	return b.vertexCount
}
