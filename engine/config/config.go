// Package config holds the settings an application can keep in a TOML file: the window,
// engine timing, rendering defaults and where assets are loaded from. Values absent
// from a file keep their defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid value")

// WindowConfig configures the OS window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	VSync  bool   `toml:"vsync"`
}

// EngineConfig configures the main loop.
type EngineConfig struct {
	// TickRate is the number of fixed input and update steps per second.
	TickRate float64 `toml:"tick_rate"`
	// FrameLimit caps rendered frames per second; 0 renders once per loop iteration.
	FrameLimit float64 `toml:"frame_limit"`
	// MaxStepsPerFrame bounds the catch-up steps run before a frame is rendered.
	MaxStepsPerFrame int  `toml:"max_steps_per_frame"`
	Profiling        bool `toml:"profiling"`
}

// RenderConfig holds rendering defaults.
type RenderConfig struct {
	Ambient    [3]float32 `toml:"ambient"`
	ClearColor [4]float32 `toml:"clear_color"`
	// Fov is the vertical field of view in degrees.
	Fov  float32 `toml:"fov"`
	Near float32 `toml:"near"`
	Far  float32 `toml:"far"`
	// TextureFilter is "linear" or "nearest".
	TextureFilter string `toml:"texture_filter"`
}

// AssetsConfig says where assets are found.
type AssetsConfig struct {
	Models   string `toml:"models"`
	Textures string `toml:"textures"`
	// Shaders is a directory of programs; empty uses the built-in programs.
	Shaders       string `toml:"shaders"`
	DecodeWorkers int    `toml:"decode_workers"`
}

// Config is the complete application configuration.
type Config struct {
	Window WindowConfig `toml:"window"`
	Engine EngineConfig `toml:"engine"`
	Render RenderConfig `toml:"render"`
	Assets AssetsConfig `toml:"assets"`
}

// Default returns the configuration used when no file is given.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "oxy-forward",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Engine: EngineConfig{
			TickRate:         60,
			MaxStepsPerFrame: 5,
		},
		Render: RenderConfig{
			Ambient:       [3]float32{0.1, 0.1, 0.1},
			ClearColor:    [4]float32{0, 0, 0, 0},
			Fov:           70,
			Near:          0.01,
			Far:           1000,
			TextureFilter: "linear",
		},
		Assets: AssetsConfig{
			Models:   "res/models",
			Textures: "res/textures",
		},
	}
}

// Parse decodes TOML over the defaults and validates the result. Unknown keys are
// errors.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Config: the configuration
//   - error: a decode error or an error wrapping ErrInvalid
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("config: %s", strict.String())
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a TOML file.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - Config: the configuration
//   - error: a read, decode or validation error
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as TOML.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - error: an encode or write error
func (c Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports the first value that cannot be used.
//
// Returns:
//   - error: an error wrapping ErrInvalid, or nil
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Engine.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate %v", ErrInvalid, c.Engine.TickRate)
	case c.Engine.FrameLimit < 0:
		return fmt.Errorf("%w: frame_limit %v", ErrInvalid, c.Engine.FrameLimit)
	case c.Engine.MaxStepsPerFrame < 1:
		return fmt.Errorf("%w: max_steps_per_frame %d", ErrInvalid, c.Engine.MaxStepsPerFrame)
	case c.Render.Fov <= 0 || c.Render.Fov >= 180:
		return fmt.Errorf("%w: fov %v", ErrInvalid, c.Render.Fov)
	case c.Render.Near <= 0 || c.Render.Far <= c.Render.Near:
		return fmt.Errorf("%w: near %v far %v", ErrInvalid, c.Render.Near, c.Render.Far)
	case c.Render.TextureFilter != "linear" && c.Render.TextureFilter != "nearest":
		return fmt.Errorf("%w: texture_filter %q", ErrInvalid, c.Render.TextureFilter)
	case c.Assets.DecodeWorkers < 0:
		return fmt.Errorf("%w: decode_workers %d", ErrInvalid, c.Assets.DecodeWorkers)
	}
	return nil
}

// AmbientColor returns the ambient setting as a vector.
func (c Config) AmbientColor() mgl32.Vec3 {
	return mgl32.Vec3(c.Render.Ambient)
}

// ClearColor returns the clear color setting as a vector.
func (c Config) ClearColor() mgl32.Vec4 {
	return mgl32.Vec4(c.Render.ClearColor)
}

// FovRadians returns the field of view in radians.
func (c Config) FovRadians() float32 {
	return mgl32.DegToRad(c.Render.Fov)
}
