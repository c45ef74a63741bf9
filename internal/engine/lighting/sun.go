// Package lighting holds the single directional light of the renderer.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/glimmer/pkg/math"
)

// DefaultDirection points up and slightly towards the viewer.
var DefaultDirection = math.Vec3{X: 0.5, Y: 1.0, Z: 0.3}.Normalize()

// Directional is a light infinitely far away. Direction points from the
// surface towards the light and is always unit length.
type Directional struct {
	Enabled   bool
	direction math.Vec3
}

// NewDirectional returns an enabled light along DefaultDirection.
func NewDirectional() *Directional {
	return &Directional{Enabled: true, direction: DefaultDirection}
}

// Direction returns the unit direction towards the light.
func (d *Directional) Direction() math.Vec3 {
	return d.direction
}

// SetDirection normalizes and stores dir. A zero vector is ignored.
func (d *Directional) SetDirection(dir math.Vec3) bool {
	if dir.IsZero() {
		return false
	}
	d.direction = dir.Normalize()
	return true
}

// SunDirection converts compass angles in degrees to a direction towards the
// sun. Azimuth turns around +Y starting at +Z, elevation rises from the
// horizon.
func SunDirection(azimuth, elevation float32) math.Vec3 {
	az := float64(math.Radians(azimuth))
	el := float64(math.Radians(elevation))

	return math.Vec3{
		X: float32(gomath.Cos(el) * gomath.Sin(az)),
		Y: float32(gomath.Sin(el)),
		Z: float32(gomath.Cos(el) * gomath.Cos(az)),
	}
}
