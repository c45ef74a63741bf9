package debug

import "github.com/Faultbox/glimmer/pkg/math"

// Segment is one straight line.
type Segment struct {
	Start, End math.Vec3
}

// GridLines returns the lines of a square grid on the XZ plane at height y,
// centered on the origin, cells by cells squares of the given spacing.
// Lines along X come first.
func GridLines(cells int, spacing, y float32) []Segment {
	if cells < 1 {
		return nil
	}
	half := float32(cells) * spacing / 2

	segs := make([]Segment, 0, 2*(cells+1))
	for i := 0; i <= cells; i++ {
		z := -half + float32(i)*spacing
		segs = append(segs, Segment{
			Start: math.Vec3{X: -half, Y: y, Z: z},
			End:   math.Vec3{X: half, Y: y, Z: z},
		})
	}
	for i := 0; i <= cells; i++ {
		x := -half + float32(i)*spacing
		segs = append(segs, Segment{
			Start: math.Vec3{X: x, Y: y, Z: half},
			End:   math.Vec3{X: x, Y: y, Z: -half},
		})
	}
	return segs
}
