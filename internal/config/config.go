// Package config handles terrain viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all settings.
type Config struct {
	Terrain  TerrainConfig  `yaml:"terrain"`
	Camera   CameraConfig   `yaml:"camera"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Bench    BenchConfig    `yaml:"bench"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// TerrainConfig holds heightmap and quadtree settings.
type TerrainConfig struct {
	Heightmap string         `yaml:"heightmap"` // Image file; empty generates one
	Depth     int            `yaml:"depth"`     // Quadtree levels below the root
	TileSize  float32        `yaml:"tile_size"` // World units between samples
	MaxHeight float32        `yaml:"max_height"`
	Workers   int            `yaml:"workers"` // Culling goroutines; 1 is sequential
	Generate  GenerateConfig `yaml:"generate"`
}

// GenerateConfig holds procedural heightmap settings.
type GenerateConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Seed      int64   `yaml:"seed"`
	Frequency float64 `yaml:"frequency"`
	Octaves   int     `yaml:"octaves"`
}

// CameraConfig holds camera and projection settings.
type CameraConfig struct {
	Position   [3]float32 `yaml:"position"`
	Direction  [3]float32 `yaml:"direction"` // View direction, need not be unit length
	FovY       float32    `yaml:"fov_y"`     // Degrees
	Aspect     float32    `yaml:"aspect"`
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
	Speed      float32    `yaml:"speed"`
	BoostSpeed float32    `yaml:"boost_speed"`
	Path       string     `yaml:"path"` // fly, orbit or static
}

// GraphicsConfig holds window settings for the view command.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	Wireframe  bool `yaml:"wireframe"`
}

// BenchConfig holds benchmark run settings.
type BenchConfig struct {
	Frames int    `yaml:"frames"`
	Report string `yaml:"report"` // JSON report path; empty prints to stdout
}

// MetricsConfig holds Prometheus exporter settings.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // Listen address for /metrics; empty disables it
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level    string `yaml:"level"`
	LogFile  string `yaml:"log_file"`
	Encoding string `yaml:"encoding"` // console or json
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			Depth:     5,
			TileSize:  2,
			MaxHeight: 100,
			Workers:   1,
			Generate: GenerateConfig{
				Width:     2048,
				Height:    2048,
				Seed:      56,
				Frequency: 0.004,
				Octaves:   4,
			},
		},
		Camera: CameraConfig{
			Position:   [3]float32{-500, 500, -500},
			Direction:  [3]float32{1, 0, 1},
			FovY:       60,
			Aspect:     1980.0 / 1080.0,
			Near:       2,
			Far:        8000,
			Speed:      5,
			BoostSpeed: 25,
			Path:       "fly",
		},
		Graphics: GraphicsConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Bench: BenchConfig{
			Frames: 600,
		},
		Logging: LoggingConfig{
			Level:    "info",
			LogFile:  "",
			Encoding: "console",
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	t := c.Terrain
	check(t.Depth >= 0, "terrain.depth must not be negative, got %d", t.Depth)
	check(t.TileSize > 0, "terrain.tile_size must be positive, got %v", t.TileSize)
	check(t.MaxHeight > 0, "terrain.max_height must be positive, got %v", t.MaxHeight)
	check(t.Workers >= 0, "terrain.workers must not be negative, got %d", t.Workers)
	if t.Heightmap == "" {
		check(t.Generate.Width > 0 && t.Generate.Height > 0,
			"terrain.generate size must be positive, got %dx%d", t.Generate.Width, t.Generate.Height)
		check(t.Generate.Frequency > 0, "terrain.generate.frequency must be positive, got %v", t.Generate.Frequency)
		check(t.Generate.Octaves > 0, "terrain.generate.octaves must be positive, got %d", t.Generate.Octaves)
	}

	cam := c.Camera
	check(cam.FovY > 0 && cam.FovY < 180, "camera.fov_y must be in (0, 180), got %v", cam.FovY)
	check(cam.Aspect > 0, "camera.aspect must be positive, got %v", cam.Aspect)
	check(cam.Near > 0, "camera.near must be positive, got %v", cam.Near)
	check(cam.Far > cam.Near, "camera.far (%v) must be beyond camera.near (%v)", cam.Far, cam.Near)
	check(cam.Direction != [3]float32{}, "camera.direction must not be zero")
	check(cam.Path == "fly" || cam.Path == "orbit" || cam.Path == "static",
		"camera.path must be fly, orbit or static, got %q", cam.Path)

	check(c.Graphics.Width > 0 && c.Graphics.Height > 0,
		"graphics size must be positive, got %dx%d", c.Graphics.Width, c.Graphics.Height)
	check(c.Bench.Frames >= 0, "bench.frames must not be negative, got %d", c.Bench.Frames)
	check(c.Logging.Encoding == "" || c.Logging.Encoding == "console" || c.Logging.Encoding == "json",
		"logging.encoding must be console or json, got %q", c.Logging.Encoding)

	return errors.Join(errs...)
}
