// Package config handles viewer configuration loading and management.
package config

import "github.com/Faultbox/glimmer/pkg/geom"

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Render  RenderConfig  `yaml:"render"`
	Camera  CameraConfig  `yaml:"camera"`
	Assets  AssetsConfig  `yaml:"assets"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// RenderConfig holds renderer and tessellation settings.
type RenderConfig struct {
	ClearColor       [3]float32 `yaml:"clear_color"`
	Lighting         bool       `yaml:"lighting"`
	LightDir         [3]float32 `yaml:"light_dir"` // points toward the light
	LineWidth        float32    `yaml:"line_width"`
	CircleSegments   int        `yaml:"circle_segments"`
	SphereRings      int        `yaml:"sphere_rings"`
	SphereSectors    int        `yaml:"sphere_sectors"`
	CylinderSegments int        `yaml:"cylinder_segments"`
}

// CameraConfig holds the initial camera and orbit controller settings.
type CameraConfig struct {
	Position        [3]float32 `yaml:"position"`
	Target          [3]float32 `yaml:"target"`
	FOV             float32    `yaml:"fov"` // degrees
	Near            float32    `yaml:"near"`
	Far             float32    `yaml:"far"`
	DragSensitivity float32    `yaml:"drag_sensitivity"`
	ZoomStep        float32    `yaml:"zoom_step"`
}

// AssetsConfig holds the model shown at startup.
type AssetsConfig struct {
	Model      string  `yaml:"model"` // OBJ path, empty for none
	ModelScale float32 `yaml:"model_scale"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Glimmer",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Render: RenderConfig{
			ClearColor:       [3]float32{0.1, 0.1, 0.12},
			Lighting:         true,
			LightDir:         [3]float32{0.5, 1, 0.3},
			LineWidth:        1,
			CircleSegments:   geom.DefaultSegments,
			SphereRings:      geom.DefaultRings,
			SphereSectors:    geom.DefaultSectors,
			CylinderSegments: geom.DefaultSegments,
		},
		Camera: CameraConfig{
			Position:        [3]float32{0, 2, 8},
			Target:          [3]float32{0, 0, 0},
			FOV:             45,
			Near:            0.1,
			Far:             100,
			DragSensitivity: 0.005,
			ZoomStep:        0.5,
		},
		Assets: AssetsConfig{
			ModelScale: 1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate raises out-of-range values to usable ones. Tessellation below the
// generator minimums is clamped, and non-positive sizes fall back to defaults.
func (c *Config) Validate() {
	def := Default()

	if c.Window.Width <= 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = def.Window.Height
	}

	c.Render.CircleSegments = max(c.Render.CircleSegments, geom.MinSegments)
	c.Render.SphereRings = max(c.Render.SphereRings, geom.MinRings)
	c.Render.SphereSectors = max(c.Render.SphereSectors, geom.MinSectors)
	c.Render.CylinderSegments = max(c.Render.CylinderSegments, geom.MinSegments)
	if c.Render.LineWidth <= 0 {
		c.Render.LineWidth = def.Render.LineWidth
	}

	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		c.Camera.FOV = def.Camera.FOV
	}
	if c.Camera.Near <= 0 {
		c.Camera.Near = def.Camera.Near
	}
	if c.Camera.Far <= c.Camera.Near {
		c.Camera.Far = c.Camera.Near * 1000
	}
	if c.Camera.DragSensitivity <= 0 {
		c.Camera.DragSensitivity = def.Camera.DragSensitivity
	}
	if c.Camera.ZoomStep <= 0 {
		c.Camera.ZoomStep = def.Camera.ZoomStep
	}

	if c.Assets.ModelScale <= 0 {
		c.Assets.ModelScale = def.Assets.ModelScale
	}
}
