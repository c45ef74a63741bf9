// objinfo is a CLI utility for inspecting Wavefront OBJ/MTL files and the
// built-in primitive meshes.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/glimmer/internal/engine/model"
	"github.com/Faultbox/glimmer/internal/logger"
	"github.com/Faultbox/glimmer/pkg/formats"
	"github.com/Faultbox/glimmer/pkg/geom"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "materials", "mtl":
		cmdMaterials(args)
	case "primitives", "prims":
		cmdPrimitives(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objinfo - Wavefront OBJ/MTL inspection utility

Usage:
  objinfo <command> [options]

Commands:
  info [-v] <file.obj>            Show counts, groups and bounds
  materials <file.obj|file.mtl>   List materials and their colors
  primitives [-segments N]        Show built-in primitive mesh sizes

Examples:
  objinfo info teapot.obj
  objinfo info -v scene.obj
  objinfo materials scene.mtl
  objinfo primitives -segments 16`)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Enable debug logging")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objinfo info [-v] <file.obj>")
		os.Exit(1)
	}
	initLogger(*verbose)
	defer logger.Sync()

	path := fs.Arg(0)
	obj, err := formats.LoadOBJ(path)
	if err != nil {
		fail(err)
	}
	table := loadLibs(path, obj.MaterialLibs)

	parts, err := model.Assemble(obj, table)
	if err != nil {
		fail(err)
	}

	stats := obj.Stats()
	fmt.Printf("File:       %s\n", path)
	fmt.Printf("Positions:  %d\n", stats.Positions)
	fmt.Printf("Normals:    %d\n", stats.Normals)
	fmt.Printf("TexCoords:  %d\n", stats.TexCoords)
	fmt.Printf("Groups:     %d\n", stats.Groups)
	fmt.Printf("Triangles:  %d\n", stats.Triangles)
	fmt.Printf("Materials:  %d\n", table.Len())
	fmt.Println()

	if len(parts) == 0 {
		fmt.Println("No faces.")
		return
	}

	fmt.Println("Sub-meshes:")
	var bounds geom.Bounds
	for i, p := range parts {
		name := p.Group
		if name == "" {
			name = "(default)"
		}
		status := ""
		if _, ok := table.Lookup(p.Group); p.Group != "" && !ok {
			status = " [missing material]"
		}
		if err := p.Mesh.Validate(); err != nil {
			status += " [invalid: " + err.Error() + "]"
		}
		fmt.Printf("  %-24s %6d tris %7d verts%s\n", name, p.Mesh.TriangleCount(), len(p.Mesh.Vertices), status)

		if i == 0 {
			bounds = p.Mesh.Bounds()
		} else {
			bounds = bounds.Union(p.Mesh.Bounds())
		}
	}

	size := bounds.Size()
	center := bounds.Center()
	fmt.Println()
	fmt.Printf("Bounds:     (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
		bounds.Min.X, bounds.Min.Y, bounds.Min.Z, bounds.Max.X, bounds.Max.Y, bounds.Max.Z)
	fmt.Printf("Size:       %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
	fmt.Printf("Center:     (%.3f, %.3f, %.3f)\n", center.X, center.Y, center.Z)
}

func cmdMaterials(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objinfo materials <file.obj|file.mtl>")
		os.Exit(1)
	}
	initLogger(false)
	defer logger.Sync()

	path := args[0]
	var table *formats.MaterialTable
	if filepath.Ext(path) == ".mtl" {
		t, err := formats.LoadMTL(path)
		if err != nil {
			fail(err)
		}
		table = t
	} else {
		obj, err := formats.LoadOBJ(path)
		if err != nil {
			fail(err)
		}
		table = loadLibs(path, obj.MaterialLibs)
	}

	names := table.Names()
	sort.Strings(names)
	if len(names) == 0 {
		fmt.Println("No materials.")
		return
	}

	fmt.Printf("%-24s %-20s %-20s %-20s %s\n", "Name", "Diffuse", "Ambient", "Specular", "Shininess")
	for _, name := range names {
		m := table.Material(name)
		fmt.Printf("%-24s %-20s %-20s %-20s %.1f\n",
			name, rgb(m.Diffuse), rgb(m.Ambient), rgb(m.Specular), m.Shininess)
	}
}

func rgb(c [3]float32) string {
	return fmt.Sprintf("%.2f %.2f %.2f", c[0], c[1], c[2])
}

func cmdPrimitives(args []string) {
	fs := flag.NewFlagSet("primitives", flag.ExitOnError)
	segments := fs.Int("segments", geom.DefaultSegments, "Circle and cylinder segments")
	rings := fs.Int("rings", geom.DefaultRings, "Sphere rings")
	sectors := fs.Int("sectors", geom.DefaultSectors, "Sphere sectors")
	fs.Parse(args)

	prims := []struct {
		name string
		mesh geom.Mesh
	}{
		{"circle", geom.Circle(*segments)},
		{"quad", geom.Quad()},
		{"cube", geom.Cube()},
		{"sphere", geom.Sphere(*rings, *sectors)},
		{"cylinder", geom.Cylinder(*segments)},
	}

	fmt.Printf("%-10s %8s %8s %8s\n", "Primitive", "Verts", "Indices", "Tris")
	for _, p := range prims {
		status := ""
		if err := p.mesh.Validate(); err != nil {
			status = " [invalid: " + err.Error() + "]"
		}
		fmt.Printf("%-10s %8d %8d %8d%s\n", p.name, len(p.mesh.Vertices), len(p.mesh.Indices), p.mesh.TriangleCount(), status)
	}
}

// loadLibs reads every material library next to objPath. Unreadable
// libraries are logged and skipped.
func loadLibs(objPath string, libs []string) *formats.MaterialTable {
	table := formats.NewMaterialTable()
	dir := filepath.Dir(objPath)
	for _, lib := range libs {
		path := lib
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, lib)
		}
		t, err := formats.LoadMTL(path)
		if err != nil {
			logger.Warn("skipping material library", zap.String("path", path), zap.Error(err))
			continue
		}
		table.Merge(t)
	}
	return table
}

func initLogger(verbose bool) {
	level := "warn"
	if verbose {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
}
