package formats

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// OBJ is a parsed Wavefront polygon file. Attribute lists are kept in file
// order and faces reference them by 1-based index.
type OBJ struct {
	Positions    [][3]float32
	Normals      [][3]float32
	TexCoords    [][2]float32
	Groups       []FaceGroup
	MaterialLibs []string
}

// FaceGroup is a run of triangles sharing one usemtl name.
// The implicit group opened by faces before any usemtl has an empty name.
type FaceGroup struct {
	Material  string
	Triangles []Triangle
}

// Triangle is three face corners.
type Triangle [3]Corner

// Corner references attribute entries by 1-based index. Zero means unset.
// Negative indices are resolved while parsing, so a parsed Corner only holds
// them if the caller built it by hand.
type Corner struct {
	Position int
	TexCoord int
	Normal   int
}

// Stats summarizes a parsed file.
type Stats struct {
	Positions int
	Normals   int
	TexCoords int
	Groups    int
	Triangles int
}

// TriangleCount returns the total triangle count over all groups.
func (o *OBJ) TriangleCount() int {
	n := 0
	for _, g := range o.Groups {
		n += len(g.Triangles)
	}
	return n
}

// Stats returns attribute and face counts.
func (o *OBJ) Stats() Stats {
	return Stats{
		Positions: len(o.Positions),
		Normals:   len(o.Normals),
		TexCoords: len(o.TexCoords),
		Groups:    len(o.Groups),
		Triangles: o.TriangleCount(),
	}
}

// ParseOBJ reads a polygon file.
//
// Faces with more than three corners are fan triangulated from the first
// corner. A file without any vertex position fails with ErrNoVertices.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}
	var current *FaceGroup

	openGroup := func(name string) {
		obj.Groups = append(obj.Groups, FaceGroup{Material: name})
		current = &obj.Groups[len(obj.Groups)-1]
	}

	err := scanDirectives(r, func(line int, keyword string, args []string) error {
		switch keyword {
		case "v":
			v, err := parseVec3(args)
			if err != nil {
				return malformed(line, keyword, err)
			}
			obj.Positions = append(obj.Positions, v)

		case "vn":
			n, err := parseVec3(args)
			if err != nil {
				return malformed(line, keyword, err)
			}
			obj.Normals = append(obj.Normals, n)

		case "vt":
			var uv [2]float32
			if len(args) == 1 {
				if err := parseFloats(args, uv[:1]); err != nil {
					return malformed(line, keyword, err)
				}
			} else if err := parseFloats(args, uv[:]); err != nil {
				return malformed(line, keyword, err)
			}
			obj.TexCoords = append(obj.TexCoords, uv)

		case "mtllib":
			obj.MaterialLibs = append(obj.MaterialLibs, args...)

		case "usemtl":
			name := ""
			if len(args) > 0 {
				name = strings.Join(args, " ")
			}
			openGroup(name)

		case "f":
			if current == nil {
				openGroup("")
			}
			corners := make([]Corner, 0, len(args))
			for _, tok := range args {
				c, err := obj.parseCorner(tok)
				if err != nil {
					if errors.Is(err, ErrInvalidIndex) {
						return fmt.Errorf("line %d: %w", line, err)
					}
					return malformed(line, keyword, err)
				}
				corners = append(corners, c)
			}
			for i := 1; i+1 < len(corners); i++ {
				current.Triangles = append(current.Triangles, Triangle{corners[0], corners[i], corners[i+1]})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(obj.Positions) == 0 {
		return nil, ErrNoVertices
	}
	return obj, nil
}

// parseCorner reads a pos[/uv][/normal] token, resolving negative indices
// against the lists read so far.
func (o *OBJ) parseCorner(tok string) (Corner, error) {
	parts := strings.Split(tok, "/")
	if len(parts) > 3 {
		return Corner{}, fmt.Errorf("corner %q has too many components", tok)
	}

	var idx [3]int
	for i, p := range parts {
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Corner{}, err
		}
		idx[i] = n
	}

	pos := resolveIndex(idx[0], len(o.Positions))
	if pos <= 0 {
		return Corner{}, fmt.Errorf("%w: position %q", ErrInvalidIndex, tok)
	}
	return Corner{
		Position: pos,
		TexCoord: max(resolveIndex(idx[1], len(o.TexCoords)), 0),
		Normal:   max(resolveIndex(idx[2], len(o.Normals)), 0),
	}, nil
}

// resolveIndex turns a relative index into its 1-based absolute form.
// The result is <= 0 when a relative index reaches before the list start.
func resolveIndex(i, count int) int {
	if i < 0 {
		return count + i + 1
	}
	return i
}

// LoadOBJ reads a polygon file from disk.
func LoadOBJ(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	obj, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return obj, nil
}
