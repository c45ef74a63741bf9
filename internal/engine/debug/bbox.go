// Package debug provides debug visualization helpers.
package debug

import (
	"github.com/Faultbox/glimmer/pkg/geom"
	"github.com/Faultbox/glimmer/pkg/math"
)

// BoundsStripLen is the number of points BoundsStrip returns.
const BoundsStripLen = 16

// DefaultBoundsPadding keeps the wireframe off the surface it encloses.
const DefaultBoundsPadding = 0.02

// BoundsStrip traces all 12 edges of a box as one line strip. Some edges are
// walked twice so the strip never needs a break.
func BoundsStrip(b geom.Bounds) []math.Vec3 {
	lo, hi := b.Min, b.Max
	c := func(x, y, z float32) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }

	return []math.Vec3{
		// Bottom face
		c(lo.X, lo.Y, lo.Z), c(hi.X, lo.Y, lo.Z), c(hi.X, lo.Y, hi.Z), c(lo.X, lo.Y, hi.Z), c(lo.X, lo.Y, lo.Z),
		// Top face, leaving through the first vertical edge
		c(lo.X, hi.Y, lo.Z), c(hi.X, hi.Y, lo.Z), c(hi.X, hi.Y, hi.Z), c(lo.X, hi.Y, hi.Z), c(lo.X, hi.Y, lo.Z),
		// Remaining verticals
		c(hi.X, hi.Y, lo.Z), c(hi.X, lo.Y, lo.Z), c(hi.X, lo.Y, hi.Z), c(hi.X, hi.Y, hi.Z), c(lo.X, hi.Y, hi.Z), c(lo.X, lo.Y, hi.Z),
	}
}

// TransformBounds maps a local box through a uniform-or-not scale and a
// translation, then pads it. Negative scales are handled.
func TransformBounds(b geom.Bounds, position, scale math.Vec3, padding float32) geom.Bounds {
	lo := b.Min.Mul(scale)
	hi := b.Max.Mul(scale)
	lo, hi = lo.Min(hi), lo.Max(hi)

	pad := math.Splat(padding)
	return geom.Bounds{
		Min: lo.Sub(pad).Add(position),
		Max: hi.Add(pad).Add(position),
	}
}
