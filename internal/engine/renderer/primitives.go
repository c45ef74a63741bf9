package renderer

import (
	"github.com/Faultbox/glimmer/internal/engine/gpu"
	"github.com/Faultbox/glimmer/pkg/geom"
)

// Resolution sets the tessellation of the built-in primitives.
type Resolution struct {
	CircleSegments   int
	SphereRings      int
	SphereSectors    int
	CylinderSegments int
}

// DefaultResolution matches the geom defaults.
func DefaultResolution() Resolution {
	return Resolution{
		CircleSegments:   geom.DefaultSegments,
		SphereRings:      geom.DefaultRings,
		SphereSectors:    geom.DefaultSectors,
		CylinderSegments: geom.DefaultSegments,
	}
}

// Primitives holds one uploaded buffer per built-in shape.
type Primitives struct {
	Circle   *gpu.Buffer
	Quad     *gpu.Buffer
	Cube     *gpu.Buffer
	Sphere   *gpu.Buffer
	Cylinder *gpu.Buffer
}

// NewPrimitives generates and uploads every shape on device.
func NewPrimitives(device gpu.Device, res Resolution) *Primitives {
	upload := func(m geom.Mesh) *gpu.Buffer {
		b := gpu.NewBuffer(device)
		b.UploadMesh(m)
		return b
	}
	return &Primitives{
		Circle:   upload(geom.Circle(res.CircleSegments)),
		Quad:     upload(geom.Quad()),
		Cube:     upload(geom.Cube()),
		Sphere:   upload(geom.Sphere(res.SphereRings, res.SphereSectors)),
		Cylinder: upload(geom.Cylinder(res.CylinderSegments)),
	}
}

// Release frees every buffer.
func (p *Primitives) Release() {
	for _, b := range []*gpu.Buffer{p.Circle, p.Quad, p.Cube, p.Sphere, p.Cylinder} {
		if b != nil {
			b.Release()
		}
	}
}
