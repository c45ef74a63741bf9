// Package gputest provides an in-memory gpu.Device for tests.
package gputest

import (
	"github.com/Faultbox/glimmer/internal/engine/gpu"
	"github.com/Faultbox/glimmer/pkg/geom"
	"github.com/Faultbox/glimmer/pkg/math"
)

// Call is one recorded draw.
type Call struct {
	Op     string // "triangles" or "lines"
	Handle gpu.Handle
	Count  int
}

// Device records every call and hands out increasing handles.
type Device struct {
	next      uint32
	Live      map[gpu.Handle]bool
	Destroyed []gpu.Handle
	Draws     []Call
	Vertices  map[gpu.Handle][]geom.Vertex
	Points    map[gpu.Handle][]math.Vec3
}

// New returns an empty recording device.
func New() *Device {
	return &Device{
		Live:     make(map[gpu.Handle]bool),
		Vertices: make(map[gpu.Handle][]geom.Vertex),
		Points:   make(map[gpu.Handle][]math.Vec3),
	}
}

func (d *Device) alloc(indexed bool) gpu.Handle {
	d.next++
	h := gpu.Handle{VAO: d.next, VBO: d.next}
	if indexed {
		h.EBO = d.next
	}
	d.Live[h] = true
	return h
}

func (d *Device) CreateIndexed(vertices []geom.Vertex, indices []uint32) gpu.Handle {
	h := d.alloc(true)
	d.Vertices[h] = append([]geom.Vertex(nil), vertices...)
	return h
}

func (d *Device) CreateLines(points []math.Vec3) gpu.Handle {
	h := d.alloc(false)
	d.Points[h] = append([]math.Vec3(nil), points...)
	return h
}

func (d *Device) DrawIndexed(h gpu.Handle, indexCount int) {
	d.Draws = append(d.Draws, Call{Op: "triangles", Handle: h, Count: indexCount})
}

func (d *Device) DrawLineStrip(h gpu.Handle, vertexCount int) {
	d.Draws = append(d.Draws, Call{Op: "lines", Handle: h, Count: vertexCount})
}

func (d *Device) Destroy(h gpu.Handle) {
	delete(d.Live, h)
	d.Destroyed = append(d.Destroyed, h)
}

// LiveCount returns the number of handles created and not yet destroyed.
func (d *Device) LiveCount() int {
	return len(d.Live)
}
