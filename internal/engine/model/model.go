package model

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/glimmer/internal/engine/gpu"
	"github.com/Faultbox/glimmer/internal/logger"
	"github.com/Faultbox/glimmer/pkg/formats"
	"github.com/Faultbox/glimmer/pkg/geom"
)

// SubMesh is a drawable Part. Buffer is nil until Upload.
type SubMesh struct {
	Part
	Buffer *gpu.Buffer
}

// Model is a polygon file loaded into sub-meshes. The zero value is an
// unloaded model; drawing it draws nothing.
type Model struct {
	path      string
	subMeshes []SubMesh
	bounds    geom.Bounds
	loaded    bool
	err       error
}

// Load reads an OBJ file and the material libraries it names, resolved
// relative to the file's directory. Material library problems are logged
// and the affected groups use the default material.
//
// On failure the model is left unloaded and the error is also kept for Err.
func (m *Model) Load(path string) error {
	obj, err := formats.LoadOBJ(path)
	if err != nil {
		m.Release()
		m.reset()
		m.err = err
	} else {
		table := loadMaterialLibs(filepath.Dir(path), obj.MaterialLibs)
		err = m.LoadFrom(obj, table)
	}
	m.path = path
	return err
}

// LoadFrom assembles an already parsed file. table may be nil.
func (m *Model) LoadFrom(obj *formats.OBJ, table *formats.MaterialTable) error {
	m.Release()
	m.reset()

	log := logger.Named("model")

	parts, err := Assemble(obj, table)
	if err != nil {
		m.err = fmt.Errorf("assembling model: %w", err)
		return m.err
	}

	for i, p := range parts {
		if p.Group != "" {
			if _, ok := table.Lookup(p.Group); !ok {
				log.Warn("material not found, using default", zap.String("material", p.Group))
			}
		}
		m.subMeshes = append(m.subMeshes, SubMesh{Part: p})

		b := p.Mesh.Bounds()
		if i == 0 {
			m.bounds = b
		} else {
			m.bounds = m.bounds.Union(b)
		}
	}

	m.loaded = true
	log.Debug("model assembled",
		zap.Int("submeshes", len(m.subMeshes)),
		zap.Int("triangles", obj.TriangleCount()))
	return nil
}

func loadMaterialLibs(dir string, libs []string) *formats.MaterialTable {
	table := formats.NewMaterialTable()
	for _, lib := range libs {
		path := lib
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, lib)
		}
		t, err := formats.LoadMTL(path)
		if err != nil {
			logger.Named("model").Warn("material library unavailable", zap.String("path", path), zap.Error(err))
			continue
		}
		table.Merge(t)
	}
	return table
}

func (m *Model) reset() {
	m.path = ""
	m.subMeshes = nil
	m.bounds = geom.Bounds{}
	m.loaded = false
	m.err = nil
}

// Upload creates one buffer per sub-mesh on device, replacing earlier ones.
func (m *Model) Upload(device gpu.Device) {
	for i := range m.subMeshes {
		sm := &m.subMeshes[i]
		if sm.Buffer == nil {
			sm.Buffer = gpu.NewBuffer(device)
		}
		sm.Buffer.UploadMesh(sm.Mesh)
	}
}

// IsUploaded reports whether every sub-mesh has GPU storage.
func (m *Model) IsUploaded() bool {
	if !m.loaded {
		return false
	}
	for _, sm := range m.subMeshes {
		if sm.Buffer == nil || !sm.Buffer.IsUploaded() {
			return false
		}
	}
	return true
}

// Release frees all sub-mesh buffers. The CPU-side meshes stay loaded.
func (m *Model) Release() {
	for i := range m.subMeshes {
		if b := m.subMeshes[i].Buffer; b != nil {
			b.Release()
			m.subMeshes[i].Buffer = nil
		}
	}
}

// IsLoaded reports whether the last load succeeded.
func (m *Model) IsLoaded() bool {
	return m.loaded
}

// Err returns the error from the last failed load.
func (m *Model) Err() error {
	return m.err
}

// Path returns the file passed to the last Load.
func (m *Model) Path() string {
	return m.path
}

// SubMeshes returns the sub-meshes in first-usemtl order.
func (m *Model) SubMeshes() []SubMesh {
	return m.subMeshes
}

// Bounds returns the axis-aligned bounds over all sub-meshes.
func (m *Model) Bounds() geom.Bounds {
	return m.bounds
}

// TriangleCount returns the total triangle count.
func (m *Model) TriangleCount() int {
	n := 0
	for _, sm := range m.subMeshes {
		n += sm.Mesh.TriangleCount()
	}
	return n
}
