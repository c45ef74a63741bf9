// Package geom holds the vertex record shared by every mesh in the library and
// the procedural generators for the built-in primitives.
package geom

import (
	"fmt"

	"github.com/Faultbox/glimmer/pkg/math"
)

// Vertex is a mesh vertex with position, normal, and texture coordinates.
// The field order is the GPU attribute layout: slot 0, 1, 2, tightly packed.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// VertexSize is the byte stride of a packed Vertex.
const VertexSize = (3 + 3 + 2) * 4

// Mesh holds vertex and index data ready for GPU upload.
// Indices are triangle triples wound counter-clockwise when front facing.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the middle of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Union returns the smallest box containing both.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Bounds returns the axis-aligned box of all vertex positions.
// An empty mesh yields the zero box.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	first := math.V3(m.Vertices[0].Position)
	b := Bounds{Min: first, Max: first}
	for _, v := range m.Vertices[1:] {
		p := math.V3(v.Position)
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// Validate checks the index buffer: a whole number of triangles, every index
// inside the vertex slice.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(m.Indices))
	}
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("index %d at position %d out of range (%d vertices)", idx, i, n)
		}
	}
	return nil
}
