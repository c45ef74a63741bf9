// Package gui ties the window, renderer, camera and input together into the
// immediate-mode drawing surface used by the demo.
//
//	g, err := gui.New(cfg)
//	defer g.Close()
//	for !g.ShouldClose() {
//		g.BeginFrame()
//		g.DrawCube(pos, 1, color)
//		g.EndFrame()
//	}
package gui

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/glimmer/internal/engine/camera"
	"github.com/Faultbox/glimmer/internal/engine/debug"
	"github.com/Faultbox/glimmer/internal/engine/input"
	"github.com/Faultbox/glimmer/internal/engine/lighting"
	"github.com/Faultbox/glimmer/internal/engine/model"
	"github.com/Faultbox/glimmer/internal/engine/renderer"
	"github.com/Faultbox/glimmer/internal/engine/window"
	"github.com/Faultbox/glimmer/internal/logger"
	"github.com/Faultbox/glimmer/pkg/math"
)

// Config holds everything New needs.
type Config struct {
	Window     window.Config
	ClearColor math.Vec3
	Resolution renderer.Resolution
	Lighting   bool
	LightDir   math.Vec3
}

// GUI is a window with a per-frame draw list. Draw methods come from the
// embedded DrawList and input queries from the embedded State.
type GUI struct {
	*renderer.DrawList
	*input.State

	Camera *camera.Camera

	window   *window.Window
	renderer *renderer.Renderer
	poller   *input.Poller
	light    *lighting.Directional
	models   []*model.Model
	log      *zap.Logger

	frames   int
	fpsTimer time.Time
}

// New opens the window and prepares the renderer.
func New(cfg Config) (*GUI, error) {
	log := logger.Named("gui")

	win, err := window.New(cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	dw, dh := win.DrawableSize()
	r, err := renderer.New(renderer.Config{
		Width:      dw,
		Height:     dh,
		ClearColor: cfg.ClearColor,
		Resolution: cfg.Resolution,
	})
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	state := input.NewState()
	ww, wh := win.Size()
	state.Resize(ww, wh, dw, dh)
	state.BeginFrame()

	light := lighting.NewDirectional()
	light.Enabled = cfg.Lighting
	light.SetDirection(cfg.LightDir)

	g := &GUI{
		DrawList: r.DrawList,
		State:    state,
		Camera:   camera.New(),
		window:   win,
		renderer: r,
		poller:   input.NewPoller(state, win),
		light:    light,
		log:      log,
		fpsTimer: time.Now(),
	}
	log.Info("gui initialized")
	return g, nil
}

// ShouldClose reports whether the user asked to quit.
func (g *GUI) ShouldClose() bool {
	return g.QuitRequested()
}

// BeginFrame clears the screen and uploads camera and light uniforms.
func (g *GUI) BeginFrame() {
	g.renderer.BeginFrame(g.Camera, g.light)
}

// EndFrame draws everything recorded since BeginFrame, presents the frame,
// then resets per-frame input and polls new events.
func (g *GUI) EndFrame() {
	g.renderer.EndFrame()
	g.window.SwapBuffers()

	g.State.BeginFrame()
	g.poller.Poll()
	if resized, w, h := g.Resized(); resized {
		g.renderer.Resize(w, h)
	}

	g.frames++
	if time.Since(g.fpsTimer) >= time.Second {
		g.log.Debug("fps", zap.Int("count", g.frames))
		g.frames = 0
		g.fpsTimer = time.Now()
	}
}

// SetLighting turns the directional light on or off for lit shapes.
func (g *GUI) SetLighting(enabled bool) {
	g.light.Enabled = enabled
}

// Lighting reports whether lighting is on.
func (g *GUI) Lighting() bool {
	return g.light.Enabled
}

// SetLightDirection points the light along dir. A zero vector is ignored.
func (g *GUI) SetLightDirection(dir math.Vec3) {
	if !g.light.SetDirection(dir) {
		g.log.Debug("ignoring zero light direction")
	}
}

// LoadModel loads and uploads an OBJ file. The GUI releases the model's
// buffers on Close. On failure the returned model is unloaded and carries
// the error.
func (g *GUI) LoadModel(path string) (*model.Model, error) {
	m := &model.Model{}
	if err := g.ReloadModel(m, path); err != nil {
		return m, err
	}
	return m, nil
}

// ReloadModel loads path into an existing model, replacing its contents.
func (g *GUI) ReloadModel(m *model.Model, path string) error {
	g.track(m)
	if err := m.Load(path); err != nil {
		g.log.Warn("failed to load model", zap.String("path", path), zap.Error(err))
		return err
	}
	m.Upload(g.renderer.Device())
	g.log.Info("model loaded",
		zap.String("path", path),
		zap.Int("submeshes", len(m.SubMeshes())),
		zap.Int("triangles", m.TriangleCount()))
	return nil
}

func (g *GUI) track(m *model.Model) {
	for _, known := range g.models {
		if known == m {
			return
		}
	}
	g.models = append(g.models, m)
}

// Screenshot saves the current framebuffer.
func (g *GUI) Screenshot(sc *debug.ScreenshotCapture) (string, error) {
	pixels, w, h := g.renderer.ReadPixels()
	return sc.CaptureFromPixels(pixels, w, h)
}

// Aspect returns the viewport aspect ratio.
func (g *GUI) Aspect() float32 {
	return g.renderer.Aspect()
}

// SetTitle sets the window title.
func (g *GUI) SetTitle(title string) {
	g.window.SetTitle(title)
}

// Close releases model buffers, then renderer resources, then the window.
func (g *GUI) Close() {
	for _, m := range g.models {
		m.Release()
	}
	g.models = nil
	g.renderer.Close()
	g.window.Close()
}
