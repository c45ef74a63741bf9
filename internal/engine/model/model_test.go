package model

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/glimmer/internal/engine/gpu/gputest"
	"github.com/Faultbox/glimmer/pkg/formats"
	"github.com/Faultbox/glimmer/pkg/math"
)

const unitTriangle = `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

const twoRedGroups = `mtllib colors.mtl
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
usemtl red
f 1 2 3
usemtl blue
f 2 4 3
usemtl red
f 1 2 4
`

const colorsMTL = `newmtl red
Kd 1 0 0
newmtl blue
Kd 0 0 1
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func parse(t *testing.T, src string) *formats.OBJ {
	t.Helper()
	obj, err := formats.ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	return obj
}

func TestLoad_UnitTriangleDefaults(t *testing.T) {
	dir := writeFiles(t, map[string]string{"tri.obj": unitTriangle})

	var m Model
	if err := m.Load(filepath.Join(dir, "tri.obj")); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !m.IsLoaded() {
		t.Fatal("model should be loaded")
	}

	subs := m.SubMeshes()
	if len(subs) != 1 {
		t.Fatalf("expected 1 submesh, got %d", len(subs))
	}
	mesh := subs[0].Mesh
	if len(mesh.Vertices) != 3 || mesh.TriangleCount() != 1 {
		t.Fatalf("got %d vertices, %d triangles", len(mesh.Vertices), mesh.TriangleCount())
	}
	for i, v := range mesh.Vertices {
		if v.Normal != [3]float32{0, 1, 0} {
			t.Errorf("vertex %d normal = %v, want (0,1,0)", i, v.Normal)
		}
		if v.TexCoord != [2]float32{0, 0} {
			t.Errorf("vertex %d uv = %v, want (0,0)", i, v.TexCoord)
		}
	}
	if subs[0].Material != formats.DefaultMaterial() {
		t.Errorf("material = %+v, want default", subs[0].Material)
	}
	if err := mesh.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestAssemble_NegativeIndexFace(t *testing.T) {
	obj := parse(t, "v 0 0 0\nv 1 0 0\nv 2 0 0\nv 3 0 0\nf -1 -2 -3\n")

	parts, err := Assemble(obj, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	got := parts[0].Mesh.Vertices
	want := []float32{3, 2, 1}
	for i := range want {
		if got[i].Position[0] != want[i] {
			t.Errorf("vertex %d x = %f, want %f", i, got[i].Position[0], want[i])
		}
	}
}

func TestAssemble_HandBuiltNegativeCorner(t *testing.T) {
	obj := &formats.OBJ{
		Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}},
		Normals:   [][3]float32{{0, 0, 1}},
		Groups: []formats.FaceGroup{{Triangles: []formats.Triangle{
			{{Position: -1, Normal: -1}, {Position: -2}, {Position: -3, Normal: -5}},
		}}},
	}

	parts, err := Assemble(obj, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	v := parts[0].Mesh.Vertices
	if v[0].Position[0] != 2 || v[2].Position[0] != 0 {
		t.Errorf("positions = %v, %v", v[0].Position, v[2].Position)
	}
	if v[0].Normal != [3]float32{0, 0, 1} {
		t.Errorf("tail-relative normal = %v", v[0].Normal)
	}
	if v[2].Normal != [3]float32{0, 1, 0} {
		t.Errorf("out of range normal should default, got %v", v[2].Normal)
	}
}

func TestAssemble_AttributeFallback(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vt 0.5 0.5
vn 0 0 1
f 1/1/1 2/9/9 3
`
	parts, err := Assemble(parse(t, src), nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	v := parts[0].Mesh.Vertices

	tests := []struct {
		name   string
		uv     [2]float32
		normal [3]float32
		idx    int
	}{
		{"present", [2]float32{0.5, 0.5}, [3]float32{0, 0, 1}, 0},
		{"out of range", [2]float32{}, [3]float32{0, 1, 0}, 1},
		{"absent", [2]float32{}, [3]float32{0, 1, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if v[tt.idx].TexCoord != tt.uv || v[tt.idx].Normal != tt.normal {
				t.Errorf("vertex = %+v", v[tt.idx])
			}
		})
	}
}

func TestAssemble_InvalidPositionFails(t *testing.T) {
	obj := parse(t, "v 0 0 0\nv 1 0 0\nf 1 2 3\n")

	parts, err := Assemble(obj, nil)
	if !errors.Is(err, formats.ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
	if parts != nil {
		t.Error("failed assembly should return no parts")
	}

	var m Model
	if err := m.LoadFrom(obj, nil); err == nil {
		t.Fatal("LoadFrom should fail")
	}
	if m.IsLoaded() || m.Err() == nil {
		t.Error("failed load should leave the model unloaded with an error")
	}
}

func TestAssemble_SkipsEmptyGroups(t *testing.T) {
	obj := parse(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl a\nusemtl b\nf 1 2 3\nusemtl c\n")

	parts, err := Assemble(obj, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(parts) != 1 || parts[0].Group != "b" {
		t.Errorf("parts = %+v", parts)
	}
}

func TestLoad_RepeatedMaterialNotMerged(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"scene.obj":  twoRedGroups,
		"colors.mtl": colorsMTL,
	})

	var m Model
	if err := m.Load(filepath.Join(dir, "scene.obj")); err != nil {
		t.Fatalf("Load: %v", err)
	}

	subs := m.SubMeshes()
	wantGroups := []string{"red", "blue", "red"}
	if len(subs) != len(wantGroups) {
		t.Fatalf("expected %d submeshes, got %d", len(wantGroups), len(subs))
	}
	for i, want := range wantGroups {
		if subs[i].Group != want {
			t.Errorf("submesh %d group = %q, want %q", i, subs[i].Group, want)
		}
	}
	red := [3]float32{1, 0, 0}
	if subs[0].Material.Diffuse != red || subs[2].Material.Diffuse != red {
		t.Errorf("red submeshes diffuse = %v, %v", subs[0].Material.Diffuse, subs[2].Material.Diffuse)
	}
	if subs[1].Material.Diffuse != [3]float32{0, 0, 1} {
		t.Errorf("blue diffuse = %v", subs[1].Material.Diffuse)
	}
	if m.TriangleCount() != 3 {
		t.Errorf("triangles = %d, want 3", m.TriangleCount())
	}
}

func TestLoad_MissingMaterialLibrary(t *testing.T) {
	dir := writeFiles(t, map[string]string{"scene.obj": twoRedGroups})

	var m Model
	if err := m.Load(filepath.Join(dir, "scene.obj")); err != nil {
		t.Fatalf("Load should succeed without the material library: %v", err)
	}
	for i, sm := range m.SubMeshes() {
		if sm.Material != formats.DefaultMaterial() {
			t.Errorf("submesh %d material = %+v, want default", i, sm.Material)
		}
		if sm.Group == "" {
			t.Errorf("submesh %d should keep its usemtl name", i)
		}
	}
}

func TestLoad_ZeroVertexFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{"empty.obj": "f 1 2 3\nf 1 3 4\n"})

	var m Model
	err := m.Load(filepath.Join(dir, "empty.obj"))
	if err == nil || err.Error() == "" {
		t.Fatalf("expected a descriptive error, got %v", err)
	}
	if !errors.Is(err, formats.ErrNoVertices) {
		t.Errorf("expected ErrNoVertices, got %v", err)
	}
	if m.IsLoaded() {
		t.Error("model should not be loaded")
	}
	if m.Err() == nil || m.Err().Error() == "" {
		t.Error("error should be retrievable")
	}
}

func TestLoad_FailureReplacesPreviousModel(t *testing.T) {
	dir := writeFiles(t, map[string]string{"tri.obj": unitTriangle})
	dev := gputest.New()

	var m Model
	if err := m.Load(filepath.Join(dir, "tri.obj")); err != nil {
		t.Fatalf("Load: %v", err)
	}
	m.Upload(dev)

	if err := m.Load(filepath.Join(dir, "missing.obj")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if m.IsLoaded() || len(m.SubMeshes()) != 0 {
		t.Error("failed reload should leave the model unloaded")
	}
	if dev.LiveCount() != 0 {
		t.Errorf("old buffers should be released, %d live", dev.LiveCount())
	}
	if m.Path() != filepath.Join(dir, "missing.obj") {
		t.Errorf("path = %q", m.Path())
	}
}

func TestModel_UploadAndRelease(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"scene.obj":  twoRedGroups,
		"colors.mtl": colorsMTL,
	})
	dev := gputest.New()

	var m Model
	if m.IsUploaded() {
		t.Error("unloaded model cannot be uploaded")
	}
	if err := m.Load(filepath.Join(dir, "scene.obj")); err != nil {
		t.Fatalf("Load: %v", err)
	}

	m.Upload(dev)
	if !m.IsUploaded() {
		t.Fatal("model should be uploaded")
	}
	if dev.LiveCount() != 3 {
		t.Errorf("expected 3 live buffers, got %d", dev.LiveCount())
	}

	m.Upload(dev)
	if dev.LiveCount() != 3 {
		t.Errorf("re-upload should replace buffers, %d live", dev.LiveCount())
	}

	m.Release()
	if dev.LiveCount() != 0 {
		t.Errorf("expected all buffers released, %d live", dev.LiveCount())
	}
	if !m.IsLoaded() {
		t.Error("release should keep CPU meshes loaded")
	}
}

func TestModel_Bounds(t *testing.T) {
	obj := parse(t, "v -1 0 0\nv 1 0 0\nv 0 2 0\nv 0 0 -3\nusemtl a\nf 1 2 3\nusemtl b\nf 1 2 4\n")

	var m Model
	if err := m.LoadFrom(obj, nil); err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	b := m.Bounds()
	if b.Min != (math.Vec3{X: -1, Y: 0, Z: -3}) || b.Max != (math.Vec3{X: 1, Y: 2, Z: 0}) {
		t.Errorf("bounds = %+v", b)
	}
}
