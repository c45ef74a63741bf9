package geom

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/glimmer/pkg/math"
)

const eps = 1e-5

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < eps
}

func allPrimitives() map[string]Mesh {
	return map[string]Mesh{
		"circle":   Circle(DefaultSegments),
		"quad":     Quad(),
		"cube":     Cube(),
		"sphere":   Sphere(DefaultRings, DefaultSectors),
		"cylinder": Cylinder(DefaultSegments),
	}
}

func TestPrimitives_IndicesInRange(t *testing.T) {
	for name, m := range allPrimitives() {
		t.Run(name, func(t *testing.T) {
			if len(m.Indices) == 0 {
				t.Fatal("no indices")
			}
			if err := m.Validate(); err != nil {
				t.Error(err)
			}
		})
	}
}

// Every non-degenerate triangle must be counter-clockwise seen from the side
// its vertex normals point to.
func TestPrimitives_WindingMatchesNormals(t *testing.T) {
	for name, m := range allPrimitives() {
		t.Run(name, func(t *testing.T) {
			for tri := 0; tri < m.TriangleCount(); tri++ {
				a := m.Vertices[m.Indices[tri*3]]
				b := m.Vertices[m.Indices[tri*3+1]]
				c := m.Vertices[m.Indices[tri*3+2]]

				pa, pb, pc := math.V3(a.Position), math.V3(b.Position), math.V3(c.Position)
				face := pb.Sub(pa).Cross(pc.Sub(pa))
				if face.Length() < 1e-7 {
					continue // pole cells of the sphere
				}
				avg := math.V3(a.Normal).Add(math.V3(b.Normal)).Add(math.V3(c.Normal))
				if face.Dot(avg) <= 0 {
					t.Fatalf("triangle %d wound against its normals (face %v, normal %v)", tri, face, avg)
				}
			}
		})
	}
}

func TestCircle_Layout(t *testing.T) {
	const segments = 12
	m := Circle(segments)

	if got, want := len(m.Vertices), segments+2; got != want {
		t.Fatalf("vertex count = %d, want %d", got, want)
	}
	if got, want := m.TriangleCount(), segments; got != want {
		t.Errorf("triangle count = %d, want %d", got, want)
	}
	for i, v := range m.Vertices {
		if v.Normal != [3]float32{0, 0, 1} {
			t.Errorf("vertex %d normal = %v, want +Z", i, v.Normal)
		}
	}

	first, last := m.Vertices[1], m.Vertices[segments+1]
	if first.Position != last.Position {
		t.Errorf("rim does not close: first %v, last %v", first.Position, last.Position)
	}
	if r := math.V3(first.Position).Length(); !near(r, 0.5) {
		t.Errorf("rim radius = %v, want 0.5", r)
	}
}

func TestQuad_Layout(t *testing.T) {
	m := Quad()
	if len(m.Vertices) != 4 || m.TriangleCount() != 2 {
		t.Fatalf("got %d vertices / %d triangles, want 4 / 2", len(m.Vertices), m.TriangleCount())
	}
	b := m.Bounds()
	if b.Min != (math.Vec3{X: -0.5, Y: -0.5}) || b.Max != (math.Vec3{X: 0.5, Y: 0.5}) {
		t.Errorf("bounds = %+v", b)
	}
}

func TestCube_Layout(t *testing.T) {
	m := Cube()

	if len(m.Vertices) != 24 {
		t.Errorf("vertex count = %d, want 24", len(m.Vertices))
	}
	if len(m.Indices) != 36 {
		t.Errorf("index count = %d, want 36", len(m.Indices))
	}

	for face := 0; face < 6; face++ {
		n := m.Vertices[face*4].Normal
		for v := 1; v < 4; v++ {
			if got := m.Vertices[face*4+v].Normal; got != n {
				t.Errorf("face %d vertex %d normal = %v, want %v", face, v, got, n)
			}
		}
	}

	b := m.Bounds()
	if b.Min != math.Splat(-0.5) || b.Max != math.Splat(0.5) {
		t.Errorf("bounds = %+v, want unit cube", b)
	}
}

func TestSphere_Surface(t *testing.T) {
	const rings, sectors = 8, 10
	m := Sphere(rings, sectors)

	if got, want := len(m.Vertices), (rings+1)*(sectors+1); got != want {
		t.Fatalf("vertex count = %d, want %d", got, want)
	}
	if got, want := m.TriangleCount(), rings*sectors*2; got != want {
		t.Errorf("triangle count = %d, want %d", got, want)
	}

	for i, v := range m.Vertices {
		if l := math.V3(v.Normal).Length(); !near(l, 1) {
			t.Errorf("vertex %d normal length = %v, want 1", i, l)
		}
		if r := math.V3(v.Position).Length(); !near(r, 0.5) {
			t.Errorf("vertex %d radius = %v, want 0.5", i, r)
		}
	}
}

func TestSphere_SeamDuplicated(t *testing.T) {
	const rings, sectors = 4, 6
	m := Sphere(rings, sectors)

	for r := 0; r <= rings; r++ {
		first := m.Vertices[r*(sectors+1)]
		last := m.Vertices[r*(sectors+1)+sectors]
		if first.Position != last.Position || first.Normal != last.Normal {
			t.Errorf("ring %d seam: first %v, last %v", r, first.Position, last.Position)
		}
		if first.TexCoord[0] != 0 || last.TexCoord[0] != 1 {
			t.Errorf("ring %d seam u: first %v, last %v, want 0 and 1", r, first.TexCoord[0], last.TexCoord[0])
		}
	}
}

func TestCylinder_Layout(t *testing.T) {
	const segments = 8
	m := Cylinder(segments)

	ring := segments + 1
	if got, want := len(m.Vertices), 2+4*ring; got != want {
		t.Fatalf("vertex count = %d, want %d", got, want)
	}
	if got, want := m.TriangleCount(), segments*4; got != want {
		t.Errorf("triangle count = %d, want %d", got, want)
	}

	topCenter := m.Vertices[0]
	bottomCenter := m.Vertices[1+ring]
	if topCenter.Normal != [3]float32{0, 1, 0} || bottomCenter.Normal != [3]float32{0, -1, 0} {
		t.Errorf("cap normals: top %v, bottom %v", topCenter.Normal, bottomCenter.Normal)
	}

	sideTop := 2 + 2*ring
	for i := 0; i < ring; i++ {
		v := m.Vertices[sideTop+i]
		if v.Normal[1] != 0 {
			t.Errorf("side vertex %d normal %v is not radial", i, v.Normal)
		}
		if l := math.V3(v.Normal).Length(); !near(l, 1) {
			t.Errorf("side vertex %d normal length = %v", i, l)
		}
	}

	first, last := m.Vertices[sideTop], m.Vertices[sideTop+segments]
	if first.Position != last.Position {
		t.Errorf("side ring does not close: %v vs %v", first.Position, last.Position)
	}
	if first.TexCoord[0] != 0 || last.TexCoord[0] != 1 {
		t.Errorf("side seam u: first %v, last %v, want 0 and 1", first.TexCoord[0], last.TexCoord[0])
	}

	b := m.Bounds()
	if !near(b.Min.Y, -0.5) || !near(b.Max.Y, 0.5) || !near(b.Max.X, 0.5) {
		t.Errorf("bounds = %+v", b)
	}
}

func TestPrimitives_MinimumTessellation(t *testing.T) {
	if got := len(Circle(0).Vertices); got != MinSegments+2 {
		t.Errorf("Circle(0) vertices = %d, want %d", got, MinSegments+2)
	}
	if got := len(Sphere(1, 1).Vertices); got != (MinRings+1)*(MinSectors+1) {
		t.Errorf("Sphere(1, 1) vertices = %d", got)
	}
	if got := len(Cylinder(-4).Vertices); got != 2+4*(MinSegments+1) {
		t.Errorf("Cylinder(-4) vertices = %d", got)
	}
}

func TestPrimitives_Deterministic(t *testing.T) {
	a, b := Sphere(5, 7), Sphere(5, 7)
	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			t.Fatalf("vertex %d differs between calls", i)
		}
	}
}

func TestMeshValidate(t *testing.T) {
	tests := []struct {
		name    string
		mesh    Mesh
		wantErr bool
	}{
		{"valid", Mesh{Vertices: make([]Vertex, 3), Indices: []uint32{0, 1, 2}}, false},
		{"partial triangle", Mesh{Vertices: make([]Vertex, 3), Indices: []uint32{0, 1}}, true},
		{"out of range", Mesh{Vertices: make([]Vertex, 3), Indices: []uint32{0, 1, 3}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.mesh.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
