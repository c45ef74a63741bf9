// Package renderer draws the immediate-mode shapes and models of a frame.
//
// Draw calls are recorded into a DrawList and replayed at EndFrame with the
// default shader. All methods must be called on the thread that owns the
// GL context.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/glimmer/internal/engine/camera"
	"github.com/Faultbox/glimmer/internal/engine/gpu"
	"github.com/Faultbox/glimmer/internal/engine/lighting"
	"github.com/Faultbox/glimmer/internal/engine/shader"
	"github.com/Faultbox/glimmer/internal/logger"
	"github.com/Faultbox/glimmer/pkg/math"
)

// Config holds renderer settings.
type Config struct {
	Width      int
	Height     int
	ClearColor math.Vec3
	Resolution Resolution
}

// Renderer owns the GL state, the default program and the primitive buffers.
type Renderer struct {
	*DrawList

	config  Config
	device  gpu.GL
	program *shader.Program
	prims   *Primitives
	lines   *gpu.Buffer

	lighting bool
}

// New initializes OpenGL on the current context.
// It must be called after the window has created the context.
func New(cfg Config) (*Renderer, error) {
	log := logger.Named("renderer")

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	program, err := shader.CompileDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r := &Renderer{
		config:  cfg,
		program: program,
	}
	r.prims = NewPrimitives(r.device, cfg.Resolution)
	r.lines = gpu.NewBuffer(r.device)
	r.DrawList = NewDrawList(r.prims)
	r.Resize(cfg.Width, cfg.Height)

	log.Debug("primitives uploaded",
		zap.Int("circle_segments", cfg.Resolution.CircleSegments),
		zap.Int("sphere_rings", cfg.Resolution.SphereRings),
		zap.Int("sphere_sectors", cfg.Resolution.SphereSectors),
		zap.Int("cylinder_segments", cfg.Resolution.CylinderSegments),
	)
	return r, nil
}

// Device returns the GL device for uploading model buffers.
func (r *Renderer) Device() gpu.Device {
	return r.device
}

// Close releases buffers and the program. The context must still be alive.
func (r *Renderer) Close() {
	logger.Named("renderer").Info("closing renderer")
	r.prims.Release()
	r.lines.Release()
	r.program.Delete()
}

// Resize sets the viewport to the drawable size in pixels.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Aspect returns width over height of the viewport.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// BeginFrame clears the framebuffer and uploads the per-frame uniforms.
func (r *Renderer) BeginFrame(cam *camera.Camera, light *lighting.Directional) {
	c := r.config.ClearColor
	gl.ClearColor(c.X, c.Y, c.Z, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.program.Use()
	r.program.SetMat4("view", cam.ViewMatrix())
	r.program.SetMat4("projection", cam.ProjectionMatrix(r.Aspect()))
	r.program.SetVec3("lightDir", light.Direction())
	r.program.SetVec3("viewPos", cam.Position)
	r.lighting = light.Enabled
}

// EndFrame replays the draw list. The caller swaps buffers afterwards.
func (r *Renderer) EndFrame() {
	r.program.Use()
	r.Flush(r.program, r.lines, r.lighting, setLineWidth)
}

func setLineWidth(w float32) {
	if w <= 0 {
		w = 1
	}
	gl.LineWidth(w)
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}
