package geom

import (
	gomath "math"
)

// Default tessellation used for the built-in primitive meshes.
const (
	DefaultSegments = 32
	DefaultRings    = 16
	DefaultSectors  = 32
)

// Minimum tessellation. Lower requests are raised to these values.
const (
	MinSegments = 3
	MinRings    = 2
	MinSectors  = 3
)

// radius of every round primitive: unit diameter, centered at the origin.
const radius = 0.5

// ringPoint returns (cos, sin) of step i of n around a full turn. The closing
// step i == n reuses step 0 so the duplicated seam vertex matches exactly.
func ringPoint(i, n int) (c, s float32) {
	angle := 2 * gomath.Pi * float64(i%n) / float64(n)
	return float32(gomath.Cos(angle)), float32(gomath.Sin(angle))
}

// Circle builds a flat disc in the XY plane facing +Z: one center vertex plus
// segments+1 rim vertices, the last rim vertex duplicating the first.
func Circle(segments int) Mesh {
	segments = max(segments, MinSegments)

	m := Mesh{
		Vertices: make([]Vertex, 0, segments+2),
		Indices:  make([]uint32, 0, segments*3),
	}

	m.Vertices = append(m.Vertices, Vertex{Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{0.5, 0.5}})

	for i := 0; i <= segments; i++ {
		c, s := ringPoint(i, segments)
		m.Vertices = append(m.Vertices, Vertex{
			Position: [3]float32{c * radius, s * radius, 0},
			Normal:   [3]float32{0, 0, 1},
			TexCoord: [2]float32{(c + 1) * 0.5, (s + 1) * 0.5},
		})
	}

	for i := uint32(1); i <= uint32(segments); i++ {
		m.Indices = append(m.Indices, 0, i, i+1)
	}
	return m
}

// Quad builds the unit square in the XY plane facing +Z.
func Quad() Mesh {
	n := [3]float32{0, 0, 1}
	return Mesh{
		Vertices: []Vertex{
			{Position: [3]float32{-0.5, -0.5, 0}, Normal: n, TexCoord: [2]float32{0, 0}},
			{Position: [3]float32{0.5, -0.5, 0}, Normal: n, TexCoord: [2]float32{1, 0}},
			{Position: [3]float32{0.5, 0.5, 0}, Normal: n, TexCoord: [2]float32{1, 1}},
			{Position: [3]float32{-0.5, 0.5, 0}, Normal: n, TexCoord: [2]float32{0, 1}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// cubeFaces lists each face's outward normal and its four corners wound
// counter-clockwise as seen from outside.
var cubeFaces = [6]struct {
	normal  [3]float32
	corners [4][3]float32
}{
	{[3]float32{0, 0, 1}, [4][3]float32{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}},
	{[3]float32{0, 0, -1}, [4][3]float32{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}},
	{[3]float32{1, 0, 0}, [4][3]float32{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}}},
	{[3]float32{-1, 0, 0}, [4][3]float32{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}}},
	{[3]float32{0, 1, 0}, [4][3]float32{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}}},
	{[3]float32{0, -1, 0}, [4][3]float32{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}},
}

var faceUVs = [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// Cube builds the unit cube with 4 vertices per face, so every face keeps its
// own flat normal. 24 vertices, 36 indices.
func Cube() Mesh {
	m := Mesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}

	for _, face := range cubeFaces {
		base := uint32(len(m.Vertices))
		for v, corner := range face.corners {
			m.Vertices = append(m.Vertices, Vertex{
				Position: corner,
				Normal:   face.normal,
				TexCoord: faceUVs[v],
			})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// Sphere builds a UV sphere of radius 0.5. Rings run pole to pole (polar angle
// 0..pi), sectors run around Y (azimuth 0..2pi). Each pole still carries a full
// ring of coincident vertices; their cells produce zero-area triangles.
func Sphere(rings, sectors int) Mesh {
	rings = max(rings, MinRings)
	sectors = max(sectors, MinSectors)

	m := Mesh{
		Vertices: make([]Vertex, 0, (rings+1)*(sectors+1)),
		Indices:  make([]uint32, 0, rings*sectors*6),
	}

	for r := 0; r <= rings; r++ {
		phi := gomath.Pi * float64(r) / float64(rings)
		y := float32(gomath.Cos(phi))
		ringRadius := float32(gomath.Sin(phi))

		for s := 0; s <= sectors; s++ {
			c, sn := ringPoint(s, sectors)
			// (x, y, z) is already unit length.
			x, z := ringRadius*c, ringRadius*sn
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{x * radius, y * radius, z * radius},
				Normal:   [3]float32{x, y, z},
				TexCoord: [2]float32{float32(s) / float32(sectors), float32(r) / float32(rings)},
			})
		}
	}

	stride := uint32(sectors + 1)
	for r := uint32(0); r < uint32(rings); r++ {
		for s := uint32(0); s < uint32(sectors); s++ {
			cur := r*stride + s
			next := cur + stride

			m.Indices = append(m.Indices,
				cur, cur+1, next,
				cur+1, next+1, next,
			)
		}
	}
	return m
}

// Cylinder builds a cylinder of radius 0.5 and height 1 along Y.
//
// Caps and side use separate vertex rings: the caps need flat +Y/-Y normals,
// the side needs radial ones. Vertex layout: top center, top ring, bottom
// center, bottom ring, side top ring, side bottom ring.
func Cylinder(segments int) Mesh {
	segments = max(segments, MinSegments)
	const half = 0.5
	ring := segments + 1

	m := Mesh{
		Vertices: make([]Vertex, 0, 2+4*ring),
		Indices:  make([]uint32, 0, segments*12),
	}

	addCap := func(y, ny float32) (center, start uint32) {
		center = uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices, Vertex{
			Position: [3]float32{0, y, 0},
			Normal:   [3]float32{0, ny, 0},
			TexCoord: [2]float32{0.5, 0.5},
		})
		start = uint32(len(m.Vertices))
		for i := 0; i < ring; i++ {
			c, s := ringPoint(i, segments)
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{c * radius, y, s * radius},
				Normal:   [3]float32{0, ny, 0},
				TexCoord: [2]float32{(c + 1) * 0.5, (s + 1) * 0.5},
			})
		}
		return center, start
	}

	topCenter, topStart := addCap(half, 1)
	for i := uint32(0); i < uint32(segments); i++ {
		m.Indices = append(m.Indices, topCenter, topStart+i+1, topStart+i)
	}

	// Reversed winding so the bottom faces -Y.
	bottomCenter, bottomStart := addCap(-half, -1)
	for i := uint32(0); i < uint32(segments); i++ {
		m.Indices = append(m.Indices, bottomCenter, bottomStart+i, bottomStart+i+1)
	}

	side := func(y, v float32) uint32 {
		start := uint32(len(m.Vertices))
		for i := 0; i < ring; i++ {
			c, s := ringPoint(i, segments)
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{c * radius, y, s * radius},
				Normal:   [3]float32{c, 0, s},
				TexCoord: [2]float32{float32(i) / float32(segments), v},
			})
		}
		return start
	}

	sideTop := side(half, 1)
	sideBottom := side(-half, 0)
	for i := uint32(0); i < uint32(segments); i++ {
		top0, top1 := sideTop+i, sideTop+i+1
		bot0, bot1 := sideBottom+i, sideBottom+i+1
		m.Indices = append(m.Indices,
			top0, bot1, bot0,
			top0, top1, bot1,
		)
	}
	return m
}
