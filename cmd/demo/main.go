// Package main is the Glimmer demo: a small scene drawn through the
// immediate-mode API with an orbit camera and an optional OBJ model.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/glimmer/internal/config"
	"github.com/Faultbox/glimmer/internal/engine/camera"
	"github.com/Faultbox/glimmer/internal/engine/debug"
	"github.com/Faultbox/glimmer/internal/engine/input"
	"github.com/Faultbox/glimmer/internal/engine/lighting"
	"github.com/Faultbox/glimmer/internal/engine/model"
	"github.com/Faultbox/glimmer/internal/engine/picking"
	"github.com/Faultbox/glimmer/internal/engine/renderer"
	"github.com/Faultbox/glimmer/internal/engine/window"
	"github.com/Faultbox/glimmer/internal/gui"
	"github.com/Faultbox/glimmer/internal/logger"
	"github.com/Faultbox/glimmer/pkg/geom"
	"github.com/Faultbox/glimmer/pkg/math"
)

const (
	cubeSpeed    = 0.05
	sunStep      = 15 // degrees per key press
	sunElevation = 45
)

var (
	white  = math.Vec3{X: 1, Y: 1, Z: 1}
	gray   = math.Vec3{X: 0.35, Y: 0.35, Z: 0.35}
	red    = math.Vec3{X: 0.9, Y: 0.2, Z: 0.2}
	green  = math.Vec3{X: 0.2, Y: 0.8, Z: 0.3}
	blue   = math.Vec3{X: 0.2, Y: 0.4, Z: 0.9}
	yellow = math.Vec3{X: 0.95, Y: 0.85, Z: 0.2}
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Glimmer demo ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := gui.New(guiConfig(cfg))
	if err != nil {
		logger.Error("failed to create gui", zap.Error(err))
		os.Exit(1)
	}
	defer g.Close()

	d := newDemo(g, cfg)
	if cfg.Assets.Model != "" {
		d.open(cfg.Assets.Model)
	}
	d.run()

	logger.Info("demo closed normally")
}

func guiConfig(cfg *config.Config) gui.Config {
	return gui.Config{
		Window: window.Config{
			Title:      cfg.Window.Title,
			Width:      cfg.Window.Width,
			Height:     cfg.Window.Height,
			Fullscreen: cfg.Window.Fullscreen,
			VSync:      cfg.Window.VSync,
		},
		ClearColor: math.V3(cfg.Render.ClearColor),
		Resolution: renderer.Resolution{
			CircleSegments:   cfg.Render.CircleSegments,
			SphereRings:      cfg.Render.SphereRings,
			SphereSectors:    cfg.Render.SphereSectors,
			CylinderSegments: cfg.Render.CylinderSegments,
		},
		Lighting: cfg.Render.Lighting,
		LightDir: math.V3(cfg.Render.LightDir),
	}
}

type demo struct {
	g     *gui.GUI
	cfg   *config.Config
	orbit *camera.Orbit
	shots *debug.ScreenshotCapture
	log   *zap.Logger

	model      *model.Model
	showBounds bool
	cubePos    math.Vec3
	lastMouse  math.Vec2
	angle      float32
	sunAzimuth float32

	// pending receives paths picked in the file dialog. The dialog runs on
	// its own goroutine; loading happens on the main thread.
	pending chan string
}

func newDemo(g *gui.GUI, cfg *config.Config) *demo {
	g.Camera.Position = math.V3(cfg.Camera.Position)
	g.Camera.Target = math.V3(cfg.Camera.Target)
	g.Camera.FOV = cfg.Camera.FOV
	g.Camera.Near = cfg.Camera.Near
	g.Camera.Far = cfg.Camera.Far

	orbit := camera.NewOrbit()
	orbit.DragSensitivity = cfg.Camera.DragSensitivity
	orbit.ZoomStep = cfg.Camera.ZoomStep

	return &demo{
		g:          g,
		cfg:        cfg,
		orbit:      orbit,
		shots:      debug.NewScreenshotCapture("screenshots", "glimmer"),
		log:        logger.Named("demo"),
		showBounds: true,
		cubePos:    math.Vec3{X: 2, Y: 0.5, Z: 0},
		lastMouse:  g.MousePosition(),
		pending:    make(chan string, 1),
	}
}

func (d *demo) run() {
	for !d.g.ShouldClose() {
		d.g.BeginFrame()
		d.handleInput()
		d.drawScene()
		d.g.EndFrame()
	}
}

func (d *demo) handleInput() {
	g := d.g

	mouse := g.MousePosition()
	if g.IsMouseButtonPressed(input.MouseLeft) {
		delta := mouse.Sub(d.lastMouse)
		d.orbit.HandleDrag(g.Camera, delta.X, delta.Y)
	}
	d.lastMouse = mouse
	d.orbit.HandleZoom(g.Camera, g.ScrollDelta().Y)

	if g.IsMouseButtonJustPressed(input.MouseRight) {
		d.pick(mouse)
	}

	if g.IsKeyPressed(sdl.K_LEFT) {
		d.cubePos.X -= cubeSpeed
	}
	if g.IsKeyPressed(sdl.K_RIGHT) {
		d.cubePos.X += cubeSpeed
	}
	if g.IsKeyPressed(sdl.K_UP) {
		d.cubePos.Z -= cubeSpeed
	}
	if g.IsKeyPressed(sdl.K_DOWN) {
		d.cubePos.Z += cubeSpeed
	}

	if g.IsKeyJustPressed(sdl.K_l) {
		g.SetLighting(!g.Lighting())
		d.log.Info("lighting toggled", zap.Bool("enabled", g.Lighting()))
	}
	if g.IsKeyJustPressed(sdl.K_LEFTBRACKET) {
		d.turnSun(-sunStep)
	}
	if g.IsKeyJustPressed(sdl.K_RIGHTBRACKET) {
		d.turnSun(sunStep)
	}
	if g.IsKeyJustPressed(sdl.K_F5) {
		d.saveConfig()
	}
	if g.IsKeyJustPressed(sdl.K_b) {
		d.showBounds = !d.showBounds
	}
	if g.IsKeyJustPressed(sdl.K_f) && d.model != nil && d.model.IsLoaded() {
		b := d.modelBounds()
		d.orbit.Fit(g.Camera, b.Min, b.Max)
	}
	if g.IsKeyJustPressed(sdl.K_o) {
		d.openFileDialog()
	}
	if g.IsKeyJustPressed(sdl.K_F12) {
		d.screenshot()
	}
	if g.IsKeyJustPressed(sdl.K_ESCAPE) {
		g.RequestQuit()
	}

	select {
	case path := <-d.pending:
		d.open(path)
	default:
	}
}

func (d *demo) drawScene() {
	g := d.g
	lineWidth := d.cfg.Render.LineWidth

	for _, s := range debug.GridLines(10, 1, 0) {
		g.DrawLine(s.Start, s.End, gray, lineWidth)
	}

	// Axes
	origin := math.Vec3{}
	g.DrawArrow(origin, math.Vec3{X: 1.5}, red, lineWidth*2)
	g.DrawArrow(origin, math.Vec3{Y: 1.5}, green, lineWidth*2)
	g.DrawArrow(origin, math.Vec3{Z: 1.5}, blue, lineWidth*2)

	d.angle += 0.01
	spin := math.QuatFromAxisAngle(math.Vec3{Y: 1}, d.angle)

	g.DrawCubeRotated(d.cubePos, 1, spin, red)
	g.DrawSphere(math.Vec3{X: -2, Y: 0.75}, 0.75, blue)
	g.DrawCylinder(math.Vec3{X: 0, Y: 0.5, Z: -2}, 0.4, 1, green)
	g.DrawCylinderAxis(math.Vec3{X: -2, Y: 0.3, Z: -2}, 0.2, 1.5, math.Vec3{X: 1, Y: 0, Z: 1}, spin, yellow)
	g.DrawBox(math.Vec3{X: 2, Y: 0.25, Z: -2}, math.Vec3{X: 1.5, Y: 0.5, Z: 0.75}, white)
	g.DrawCircle(math.Vec3{X: 0, Y: 2.5, Z: 0}, 0.5, yellow)
	g.DrawRectRotated(math.Vec3{X: 0, Y: 0.01, Z: 2}, 2, 1,
		math.QuatFromAxisAngle(math.Vec3{X: 1}, -math.Radians(90)), gray)
	g.DrawPolyline([]math.Vec3{
		{X: -3, Y: 0.1, Z: 3},
		{X: -2, Y: 0.6, Z: 3},
		{X: -1, Y: 0.1, Z: 3},
		{X: 0, Y: 0.6, Z: 3},
	}, white, lineWidth)

	if d.model == nil || !d.model.IsLoaded() {
		return
	}
	scale := d.cfg.Assets.ModelScale
	g.DrawModel(d.model, origin, math.Vec3{X: scale, Y: scale, Z: scale}, math.QuatIdentity())
	if d.showBounds {
		g.DrawBounds(d.modelBounds(), yellow, lineWidth)
	}
}

func (d *demo) modelBounds() geom.Bounds {
	scale := d.cfg.Assets.ModelScale
	return debug.TransformBounds(d.model.Bounds(), math.Vec3{},
		math.Vec3{X: scale, Y: scale, Z: scale}, debug.DefaultBoundsPadding)
}

// pick toggles the model bounds when the click lands on the model, otherwise
// moves the cube to the clicked spot on the ground.
func (d *demo) pick(mouse math.Vec2) {
	w, h := d.g.WindowSize()
	ray := picking.ScreenToRay(d.g.Camera, mouse.X, mouse.Y, float32(w), float32(h))

	if d.model != nil && d.model.IsLoaded() {
		if _, hit := ray.IntersectBounds(d.modelBounds()); hit {
			d.showBounds = !d.showBounds
			return
		}
	}
	if p, ok := ray.IntersectPlaneY(0); ok {
		d.cubePos = math.Vec3{X: p.X, Y: d.cubePos.Y, Z: p.Z}
	}
}

// open loads path into the demo's model, replacing whatever was shown.
func (d *demo) open(path string) {
	if d.model == nil {
		d.model = &model.Model{}
	}
	if err := d.g.ReloadModel(d.model, path); err != nil {
		d.g.SetTitle(fmt.Sprintf("%s - failed to load %s", d.cfg.Window.Title, filepath.Base(path)))
		return
	}
	d.g.SetTitle(fmt.Sprintf("%s - %s (%d triangles)",
		d.cfg.Window.Title, filepath.Base(path), d.model.TriangleCount()))
	b := d.modelBounds()
	d.orbit.Fit(d.g.Camera, b.Min, b.Max)
}

// openFileDialog shows a native file dialog to select an OBJ file.
func (d *demo) openFileDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Wavefront OBJ", "obj").
			Filter("All Files", "*").
			Title("Open Model").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				d.log.Warn("file dialog error", zap.Error(err))
			}
			return
		}

		select {
		case d.pending <- filename:
		default:
			d.log.Debug("dropping dialog result, load already pending", zap.String("path", filename))
		}
	}()
}

func (d *demo) turnSun(step float32) {
	d.sunAzimuth += step
	dir := lighting.SunDirection(d.sunAzimuth, sunElevation)
	d.g.SetLightDirection(dir)
	d.cfg.Render.LightDir = dir.Arr()
}

// saveConfig writes the current camera and light back to the user config.
func (d *demo) saveConfig() {
	c := d.g.Camera
	d.cfg.Camera.Position = c.Position.Arr()
	d.cfg.Camera.Target = c.Target.Arr()
	d.cfg.Render.Lighting = d.g.Lighting()
	if err := d.cfg.Save(); err != nil {
		d.log.Error("failed to save config", zap.Error(err))
		return
	}
	d.log.Info("config saved", zap.String("dir", config.ConfigDir()))
}

func (d *demo) screenshot() {
	path, err := d.g.Screenshot(d.shots)
	if err != nil {
		d.log.Error("screenshot failed", zap.Error(err))
		return
	}
	d.log.Info("screenshot saved", zap.String("path", path))
}
