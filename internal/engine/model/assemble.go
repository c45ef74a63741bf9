// Package model turns parsed polygon files into drawable sub-meshes.
package model

import (
	"fmt"

	"github.com/Faultbox/glimmer/pkg/formats"
	"github.com/Faultbox/glimmer/pkg/geom"
)

// Part is the mesh and material assembled from one face group.
type Part struct {
	// Group is the usemtl name the faces were listed under. It is kept even
	// when Material fell back to the default.
	Group    string
	Material formats.Material
	Mesh     geom.Mesh
}

var (
	defaultTexCoord = [2]float32{0, 0}
	defaultNormal   = [3]float32{0, 1, 0}
)

// Assemble builds one Part per face group that has triangles, in group
// order. Every corner becomes its own vertex; nothing is deduplicated.
//
// A position index outside the position list fails the whole assembly with
// formats.ErrInvalidIndex. Missing or out of range texcoords and normals
// fall back to (0,0) and (0,1,0).
func Assemble(obj *formats.OBJ, table *formats.MaterialTable) ([]Part, error) {
	var parts []Part

	for gi, group := range obj.Groups {
		if len(group.Triangles) == 0 {
			continue
		}

		mesh := geom.Mesh{
			Vertices: make([]geom.Vertex, 0, len(group.Triangles)*3),
			Indices:  make([]uint32, 0, len(group.Triangles)*3),
		}

		for ti, tri := range group.Triangles {
			for ci, corner := range tri {
				v, err := vertexAt(obj, corner)
				if err != nil {
					return nil, fmt.Errorf("group %d (%q) triangle %d corner %d: %w", gi, group.Material, ti, ci, err)
				}
				mesh.Indices = append(mesh.Indices, uint32(len(mesh.Vertices)))
				mesh.Vertices = append(mesh.Vertices, v)
			}
		}

		parts = append(parts, Part{
			Group:    group.Material,
			Material: table.Material(group.Material),
			Mesh:     mesh,
		})
	}

	return parts, nil
}

// vertexAt dereferences one face corner.
func vertexAt(obj *formats.OBJ, c formats.Corner) (geom.Vertex, error) {
	pi, ok := lookup(c.Position, len(obj.Positions))
	if !ok {
		return geom.Vertex{}, fmt.Errorf("%w: position %d of %d", formats.ErrInvalidIndex, c.Position, len(obj.Positions))
	}

	v := geom.Vertex{
		Position: obj.Positions[pi],
		Normal:   defaultNormal,
		TexCoord: defaultTexCoord,
	}
	if ti, ok := lookup(c.TexCoord, len(obj.TexCoords)); ok {
		v.TexCoord = obj.TexCoords[ti]
	}
	if ni, ok := lookup(c.Normal, len(obj.Normals)); ok {
		v.Normal = obj.Normals[ni]
	}
	return v, nil
}

// lookup maps a 1-based or tail-relative index to a slice position.
// Zero means absent.
func lookup(i, count int) (int, bool) {
	switch {
	case i > 0:
		i--
	case i < 0:
		i += count
	default:
		return 0, false
	}
	return i, i >= 0 && i < count
}
