// Package camera provides the look-at camera used by the immediate-mode
// renderer and an orbit controller for it.
package camera

import (
	gomath "math"

	"github.com/Faultbox/glimmer/pkg/math"
)

// Camera is a perspective look-at camera. FOV is the vertical field of view
// in degrees.
type Camera struct {
	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3
	FOV      float32
	Near     float32
	Far      float32
}

// New returns a camera at (0,2,8) looking at the origin.
func New() *Camera {
	return &Camera{
		Position: math.Vec3{X: 0, Y: 2, Z: 8},
		Up:       math.Vec3{X: 0, Y: 1, Z: 0},
		FOV:      45,
		Near:     0.1,
		Far:      100,
	}
}

// ViewMatrix returns the world-to-view transform.
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the perspective projection for aspect.
// A non-positive aspect is treated as square.
func (c *Camera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(math.Radians(c.FOV), aspect, c.Near, c.Far)
}

// Forward returns the unit view direction.
func (c *Camera) Forward() math.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// Orbit rotates and zooms a Camera around its target.
type Orbit struct {
	// DragSensitivity is radians per pixel of mouse drag.
	DragSensitivity float32
	// ZoomStep is the distance moved per scroll notch.
	ZoomStep float32
	// MinPolar and MaxPolar bound the angle from +Y so the camera never flips.
	MinPolar float32
	MaxPolar float32
	// MinDistance keeps zoom from passing through the target.
	MinDistance float32
}

// NewOrbit returns a controller with the default feel.
func NewOrbit() *Orbit {
	return &Orbit{
		DragSensitivity: 0.005,
		ZoomStep:        0.5,
		MinPolar:        0.1,
		MaxPolar:        3.04,
		MinDistance:     0.1,
	}
}

// HandleDrag rotates the camera around its target by a mouse delta in pixels.
// The distance to the target is preserved.
func (o *Orbit) HandleDrag(c *Camera, deltaX, deltaY float32) {
	offset := c.Position.Sub(c.Target)
	radius := offset.Length()
	if radius == 0 {
		return
	}

	theta := float32(gomath.Atan2(float64(offset.X), float64(offset.Z)))
	phi := float32(gomath.Acos(float64(math.Clamp(offset.Y/radius, -1, 1))))

	theta -= deltaX * o.DragSensitivity
	phi -= deltaY * o.DragSensitivity
	phi = math.Clamp(phi, o.MinPolar, o.MaxPolar)

	sinPhi := float32(gomath.Sin(float64(phi)))
	c.Position = c.Target.Add(math.Vec3{
		X: radius * sinPhi * float32(gomath.Sin(float64(theta))),
		Y: radius * float32(gomath.Cos(float64(phi))),
		Z: radius * sinPhi * float32(gomath.Cos(float64(theta))),
	})
}

// HandleZoom moves the camera along the view direction by scroll notches.
// Positive delta moves closer.
func (o *Orbit) HandleZoom(c *Camera, delta float32) {
	if delta == 0 {
		return
	}
	offset := c.Position.Sub(c.Target)
	radius := offset.Length()
	if radius == 0 {
		return
	}

	dist := radius - delta*o.ZoomStep
	if dist < o.MinDistance {
		dist = o.MinDistance
	}
	c.Position = c.Target.Add(offset.Scale(dist / radius))
}

// Fit points the camera at the center of a box and backs off so the box
// fills roughly the view, keeping the current direction.
func (o *Orbit) Fit(c *Camera, min, max math.Vec3) {
	center := min.Add(max).Scale(0.5)
	size := max.Sub(min).Length()
	if size == 0 {
		size = 1
	}

	dir := c.Position.Sub(c.Target).Normalize()
	if dir.IsZero() {
		dir = math.Vec3{X: 0, Y: 0, Z: 1}
	}

	halfFOV := math.Radians(c.FOV) / 2
	dist := size / float32(gomath.Tan(float64(halfFOV)))
	if dist < o.MinDistance {
		dist = o.MinDistance
	}

	c.Target = center
	c.Position = center.Add(dir.Scale(dist))
}
