// Package picking provides ray casting from screen coordinates into the scene.
package picking

import (
	gomath "math"

	"github.com/Faultbox/glimmer/internal/engine/camera"
	"github.com/Faultbox/glimmer/pkg/geom"
	"github.com/Faultbox/glimmer/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay converts window coordinates to a world-space ray leaving the
// camera. x, y are pixels from the top-left; width, height is the window size
// in the same units.
func ScreenToRay(c *camera.Camera, x, y, width, height float32) Ray {
	if width <= 0 || height <= 0 {
		return Ray{Origin: c.Position, Direction: c.Forward()}
	}

	// Normalized device coords (-1 to 1), Y up
	ndcX := 2*x/width - 1
	ndcY := 1 - 2*y/height

	forward := c.Forward()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward)

	tanHalf := float32(gomath.Tan(float64(math.Radians(c.FOV) / 2)))
	aspect := width / height

	dir := forward.
		Add(right.Scale(ndcX * tanHalf * aspect)).
		Add(up.Scale(ndcY * tanHalf))
	return Ray{Origin: c.Position, Direction: dir.Normalize()}
}

// IntersectPlaneY intersects a ray with a horizontal plane at the given Y level.
// Hits behind the origin and rays parallel to the plane report false.
func (r Ray) IntersectPlaneY(planeY float32) (math.Vec3, bool) {
	if gomath.Abs(float64(r.Direction.Y)) < 0.001 {
		return math.Vec3{}, false
	}

	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return math.Vec3{}, false
	}
	return r.At(t), true
}

// IntersectBounds tests the ray against an axis-aligned box using the slab
// method. It returns the entry distance, or the exit distance when the ray
// starts inside the box.
func (r Ray) IntersectBounds(box geom.Bounds) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	origin := r.Origin.Arr()
	dir := r.Direction.Arr()
	lo := box.Min.Arr()
	hi := box.Max.Arr()

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
