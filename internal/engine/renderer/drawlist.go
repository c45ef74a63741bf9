package renderer

import (
	gomath "math"

	"github.com/Faultbox/glimmer/internal/engine/debug"
	"github.com/Faultbox/glimmer/internal/engine/gpu"
	"github.com/Faultbox/glimmer/internal/engine/model"
	"github.com/Faultbox/glimmer/pkg/geom"
	"github.com/Faultbox/glimmer/pkg/math"
)

// Uniforms receives per-draw shader state. *shader.Program implements it.
type Uniforms interface {
	SetMat4(name string, m math.Mat4)
	SetVec3(name string, v math.Vec3)
	SetBool(name string, b bool)
}

// Arrow head proportions.
const (
	arrowHeadFraction = 0.1
	arrowHeadMaxRatio = 0.5
	arrowHeadAspect   = 3
	arrowHeadSegments = 12
	minArrowLength    = 1e-4
)

var (
	yAxis     = math.Vec3{X: 0, Y: 1, Z: 0}
	identityQ = math.QuatIdentity()
	identityM = math.Identity()
)

type commandKind int

const (
	drawMesh commandKind = iota
	drawLines
)

// Command is one recorded draw.
type Command struct {
	kind   commandKind
	buffer *gpu.Buffer
	points []math.Vec3

	Model math.Mat4
	Color math.Vec3
	Unlit bool
	Width float32
}

// IsLines reports whether the command draws a line strip.
func (c Command) IsLines() bool {
	return c.kind == drawLines
}

// Points returns the line strip of a line command.
func (c Command) Points() []math.Vec3 {
	return c.points
}

// DrawList records draw calls for one frame and replays them in order.
type DrawList struct {
	prims *Primitives
	cmds  []Command
}

// NewDrawList returns an empty list drawing shapes from prims.
func NewDrawList(prims *Primitives) *DrawList {
	return &DrawList{prims: prims}
}

// Commands returns the recorded commands.
func (d *DrawList) Commands() []Command {
	return d.cmds
}

// Len returns the number of recorded commands.
func (d *DrawList) Len() int {
	return len(d.cmds)
}

// Reset drops all recorded commands.
func (d *DrawList) Reset() {
	clear(d.cmds)
	d.cmds = d.cmds[:0]
}

func (d *DrawList) mesh(b *gpu.Buffer, m math.Mat4, color math.Vec3, unlit bool) {
	if b == nil {
		return
	}
	d.cmds = append(d.cmds, Command{kind: drawMesh, buffer: b, Model: m, Color: color, Unlit: unlit})
}

func (d *DrawList) lines(points []math.Vec3, color math.Vec3, width float32) {
	if len(points) < 2 {
		return
	}
	d.cmds = append(d.cmds, Command{kind: drawLines, points: points, Model: identityM, Color: color, Unlit: true, Width: width})
}

// DrawCircle draws an unlit disc facing +Z.
func (d *DrawList) DrawCircle(pos math.Vec3, radius float32, color math.Vec3) {
	d.DrawCircleRotated(pos, radius, identityQ, color)
}

// DrawCircleRotated draws an unlit disc rotated from facing +Z.
func (d *DrawList) DrawCircleRotated(pos math.Vec3, radius float32, rot math.Quat, color math.Vec3) {
	d.mesh(d.prims.Circle, math.TRS(pos, rot, math.Splat(2*radius)), color, true)
}

// DrawRect draws an unlit width by height rectangle in the XY plane.
func (d *DrawList) DrawRect(pos math.Vec3, width, height float32, color math.Vec3) {
	d.DrawRectRotated(pos, width, height, identityQ, color)
}

// DrawRectRotated draws a rotated unlit rectangle.
func (d *DrawList) DrawRectRotated(pos math.Vec3, width, height float32, rot math.Quat, color math.Vec3) {
	d.mesh(d.prims.Quad, math.TRS(pos, rot, math.Vec3{X: width, Y: height, Z: 1}), color, true)
}

// DrawLine draws one unlit segment.
func (d *DrawList) DrawLine(start, end math.Vec3, color math.Vec3, width float32) {
	d.lines([]math.Vec3{start, end}, color, width)
}

// DrawPolyline draws a connected unlit strip. The points are copied.
func (d *DrawList) DrawPolyline(points []math.Vec3, color math.Vec3, width float32) {
	d.lines(append([]math.Vec3(nil), points...), color, width)
}

// DrawArrow draws a shaft from start to end with a wireframe cone head at
// end. Near-zero arrows are skipped.
func (d *DrawList) DrawArrow(start, end math.Vec3, color math.Vec3, width float32) {
	dir := end.Sub(start)
	length := dir.Length()
	if length <= minArrowLength {
		return
	}
	dir = dir.Scale(1 / length)

	headLength := min(length*arrowHeadFraction, length*arrowHeadMaxRatio)
	headRadius := headLength / arrowHeadAspect
	base := end.Sub(dir.Scale(headLength))

	d.DrawLine(start, base, color, width)
	d.lines(arrowHead(base, end, dir, headRadius), color, width)
}

// arrowHead traces the cone base ring and then zigzags between the tip and
// the ring so every side edge is covered by one strip.
func arrowHead(base, tip, dir math.Vec3, radius float32) []math.Vec3 {
	ref := math.Vec3{X: 1}
	if gomath.Abs(float64(dir.X)) >= 0.9 {
		ref = yAxis
	}
	b1 := dir.Cross(ref).Normalize()
	b2 := dir.Cross(b1)

	ring := make([]math.Vec3, arrowHeadSegments+1)
	for i := range ring {
		a := float64(i%arrowHeadSegments) / arrowHeadSegments * 2 * gomath.Pi
		off := b1.Scale(float32(gomath.Cos(a))).Add(b2.Scale(float32(gomath.Sin(a))))
		ring[i] = base.Add(off.Scale(radius))
	}

	pts := make([]math.Vec3, 0, 3*arrowHeadSegments+1)
	pts = append(pts, ring...)
	for i := 1; i < arrowHeadSegments; i++ {
		pts = append(pts, tip, ring[i])
	}
	return append(pts, tip)
}

// DrawSphere draws a lit sphere.
func (d *DrawList) DrawSphere(pos math.Vec3, radius float32, color math.Vec3) {
	d.DrawSphereRotated(pos, radius, identityQ, color)
}

// DrawSphereRotated draws a rotated lit sphere.
func (d *DrawList) DrawSphereRotated(pos math.Vec3, radius float32, rot math.Quat, color math.Vec3) {
	d.mesh(d.prims.Sphere, math.TRS(pos, rot, math.Splat(2*radius)), color, false)
}

// DrawCube draws a lit cube with edge length size.
func (d *DrawList) DrawCube(pos math.Vec3, size float32, color math.Vec3) {
	d.DrawBoxRotated(pos, math.Splat(size), identityQ, color)
}

// DrawCubeRotated draws a rotated lit cube.
func (d *DrawList) DrawCubeRotated(pos math.Vec3, size float32, rot math.Quat, color math.Vec3) {
	d.DrawBoxRotated(pos, math.Splat(size), rot, color)
}

// DrawBox draws a lit box with per-axis size.
func (d *DrawList) DrawBox(pos, size math.Vec3, color math.Vec3) {
	d.DrawBoxRotated(pos, size, identityQ, color)
}

// DrawBoxRotated draws a rotated lit box.
func (d *DrawList) DrawBoxRotated(pos, size math.Vec3, rot math.Quat, color math.Vec3) {
	d.mesh(d.prims.Cube, math.TRS(pos, rot, size), color, false)
}

// DrawCylinder draws a lit cylinder centered on pos along +Y.
func (d *DrawList) DrawCylinder(pos math.Vec3, radius, length float32, color math.Vec3) {
	d.DrawCylinderRotated(pos, radius, length, identityQ, color)
}

// DrawCylinderRotated draws a rotated lit cylinder.
func (d *DrawList) DrawCylinderRotated(pos math.Vec3, radius, length float32, rot math.Quat, color math.Vec3) {
	d.mesh(d.prims.Cylinder, math.TRS(pos, rot, cylinderScale(radius, length)), color, false)
}

// DrawCylinderAxis draws a cylinder whose length runs along axis, then
// applies rot. A zero axis means +Y.
func (d *DrawList) DrawCylinderAxis(pos math.Vec3, radius, length float32, axis math.Vec3, rot math.Quat, color math.Vec3) {
	align := identityQ
	if !axis.IsZero() {
		align = math.QuatBetween(yAxis, axis.Normalize())
	}
	d.mesh(d.prims.Cylinder, math.TRS(pos, rot.Mul(align), cylinderScale(radius, length)), color, false)
}

func cylinderScale(radius, length float32) math.Vec3 {
	return math.Vec3{X: 2 * radius, Y: length, Z: 2 * radius}
}

// DrawModel draws every uploaded sub-mesh in its material's diffuse color.
// Unloaded models draw nothing.
func (d *DrawList) DrawModel(m *model.Model, pos, scale math.Vec3, rot math.Quat) {
	d.drawModel(m, pos, scale, rot, nil)
}

// DrawModelColor draws a model with one color for all sub-meshes.
func (d *DrawList) DrawModelColor(m *model.Model, pos, scale math.Vec3, rot math.Quat, color math.Vec3) {
	d.drawModel(m, pos, scale, rot, &color)
}

func (d *DrawList) drawModel(m *model.Model, pos, scale math.Vec3, rot math.Quat, override *math.Vec3) {
	if m == nil || !m.IsLoaded() {
		return
	}
	mat := math.TRS(pos, rot, scale)
	for _, sm := range m.SubMeshes() {
		if sm.Buffer == nil {
			continue
		}
		color := math.V3(sm.Material.Diffuse)
		if override != nil {
			color = *override
		}
		d.mesh(sm.Buffer, mat, color, false)
	}
}

// DrawBounds draws the wireframe of a box.
func (d *DrawList) DrawBounds(b geom.Bounds, color math.Vec3, width float32) {
	d.lines(debug.BoundsStrip(b), color, width)
}

// Flush replays the recorded commands in order and empties the list.
// lines is the scratch buffer re-uploaded for every line command;
// setLineWidth may be nil.
func (d *DrawList) Flush(u Uniforms, lines *gpu.Buffer, lighting bool, setLineWidth func(float32)) {
	for _, c := range d.cmds {
		u.SetBool("useLighting", lighting && !c.Unlit)
		u.SetMat4("model", c.Model)
		u.SetVec3("color", c.Color)

		switch c.kind {
		case drawMesh:
			c.buffer.Draw()
		case drawLines:
			if setLineWidth != nil {
				setLineWidth(c.Width)
			}
			lines.UploadLines(c.points)
			lines.DrawLines()
		}
	}
	d.Reset()
}
