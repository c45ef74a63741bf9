package formats

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Material holds the flat surface attributes of an MTL entry.
type Material struct {
	Name      string
	Diffuse   [3]float32
	Ambient   [3]float32
	Specular  [3]float32
	Shininess float32
}

// NewMaterial returns a material with default attributes.
func NewMaterial(name string) Material {
	return Material{
		Name:      name,
		Diffuse:   [3]float32{0.8, 0.8, 0.8},
		Ambient:   [3]float32{0.2, 0.2, 0.2},
		Specular:  [3]float32{1, 1, 1},
		Shininess: 32,
	}
}

// DefaultMaterial is the unnamed mid-grey material used when a referenced
// name is missing from the table.
func DefaultMaterial() Material {
	return NewMaterial("")
}

// MaterialTable maps names to materials. Entries live in a slice and the name
// index stores slot numbers, so handing out a slot never aliases storage that
// a later insert may move.
type MaterialTable struct {
	materials []Material
	slots     map[string]int
}

// NewMaterialTable returns an empty table.
func NewMaterialTable() *MaterialTable {
	return &MaterialTable{slots: make(map[string]int)}
}

// Define opens the named entry with default attributes, replacing any
// existing entry of that name in place, and returns its slot.
func (t *MaterialTable) Define(name string) int {
	if slot, ok := t.slots[name]; ok {
		t.materials[slot] = NewMaterial(name)
		return slot
	}
	slot := len(t.materials)
	t.materials = append(t.materials, NewMaterial(name))
	t.slots[name] = slot
	return slot
}

// Slot returns the material stored at slot for in-place edits.
// The pointer is valid until the next Define.
func (t *MaterialTable) Slot(slot int) *Material {
	return &t.materials[slot]
}

// Lookup returns the named material.
func (t *MaterialTable) Lookup(name string) (Material, bool) {
	if t == nil {
		return Material{}, false
	}
	slot, ok := t.slots[name]
	if !ok {
		return Material{}, false
	}
	return t.materials[slot], true
}

// Material returns the named material, or DefaultMaterial if it is absent.
func (t *MaterialTable) Material(name string) Material {
	if m, ok := t.Lookup(name); ok {
		return m
	}
	return DefaultMaterial()
}

// Merge copies every entry of other into t. Later definitions win.
func (t *MaterialTable) Merge(other *MaterialTable) {
	if other == nil {
		return
	}
	for _, m := range other.materials {
		slot := t.Define(m.Name)
		t.materials[slot] = m
	}
}

// Len returns the number of materials.
func (t *MaterialTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.materials)
}

// Names returns material names in first-definition order.
func (t *MaterialTable) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, len(t.materials))
	for i, m := range t.materials {
		names[i] = m.Name
	}
	return names
}

// ParseMTL reads a material library.
//
// Attribute lines before the first newmtl have nothing to apply to and are
// skipped.
func ParseMTL(r io.Reader) (*MaterialTable, error) {
	table := NewMaterialTable()
	current := -1

	err := scanDirectives(r, func(line int, keyword string, args []string) error {
		if keyword == "newmtl" {
			if len(args) == 0 {
				return malformed(line, keyword, errors.New("missing material name"))
			}
			current = table.Define(args[0])
			return nil
		}
		if current < 0 {
			return nil
		}

		mat := table.Slot(current)
		var err error
		switch keyword {
		case "Kd":
			mat.Diffuse, err = parseVec3(args)
		case "Ka":
			mat.Ambient, err = parseVec3(args)
		case "Ks":
			mat.Specular, err = parseVec3(args)
		case "Ns":
			var ns [1]float32
			err = parseFloats(args, ns[:])
			mat.Shininess = ns[0]
		}
		if err != nil {
			return malformed(line, keyword, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

// LoadMTL reads a material library from disk.
func LoadMTL(path string) (*MaterialTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	table, err := ParseMTL(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return table, nil
}
