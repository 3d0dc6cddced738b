// Package config loads the TOML scene files that describe a reflection demo: window, engine
// loop, logging, camera, light, reflecting surface and the objects around it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-mirror/engine/device"
	"github.com/Carmen-Shannon/oxy-mirror/logging"
	"github.com/pelletier/go-toml/v2"
)

// Reflection variants.
const (
	// VariantClipPlane reflects into the framebuffer behind a user clip plane.
	VariantClipPlane = "clip_plane"
	// VariantTexture renders the reflection into a texture mapped onto a mirror quad.
	VariantTexture = "texture"
)

// Object shapes.
const (
	ShapeCube        = "cube"
	ShapeTetrahedron = "tetrahedron"
	ShapeSphere      = "sphere"
	ShapeTorus       = "torus"
	ShapeAxes        = "axes"
)

var (
	// ErrUnknownVariant is returned for a reflection variant other than VariantClipPlane or VariantTexture.
	ErrUnknownVariant = errors.New("unknown reflection variant")
	// ErrUnknownShape is returned for an object shape with no model.
	ErrUnknownShape = errors.New("unknown object shape")
	// ErrInvalidConfig wraps every other validation failure.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config is a complete demo description. Angles are in degrees; they are converted to
// radians where the engine consumes them.
type Config struct {
	Window     WindowConfig     `toml:"window"`
	Engine     EngineConfig     `toml:"engine"`
	Log        LogConfig        `toml:"log"`
	Camera     CameraConfig     `toml:"camera"`
	Light      LightConfig      `toml:"light"`
	Reflection ReflectionConfig `toml:"reflection"`
	Objects    []ObjectConfig   `toml:"objects"`
}

type WindowConfig struct {
	Title   string `toml:"title"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	VSync   bool   `toml:"vsync"`
	Samples int    `toml:"samples"`
}

type EngineConfig struct {
	// TickRate is the number of fixed animation ticks per second.
	TickRate float64 `toml:"tick_rate"`
	// FrameLimit caps rendered frames per second; zero is uncapped.
	FrameLimit float64 `toml:"frame_limit"`
	Profiling  bool    `toml:"profiling"`
	// Workers sizes the pool that updates object transforms; zero picks the default.
	Workers int `toml:"workers"`
}

type LogConfig struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

type CameraConfig struct {
	Position [3]float32 `toml:"position"`
	Yaw      float32    `toml:"yaw"`
	Pitch    float32    `toml:"pitch"`
	Roll     float32    `toml:"roll"`
	Fov      float32    `toml:"fov"`
	Near     float32    `toml:"near"`
	Far      float32    `toml:"far"`
	// Orbit starts the camera circling the surface instead of standing still.
	Orbit bool `toml:"orbit"`
	// OrbitSpeed is the orbit rate in degrees per second.
	OrbitSpeed float32 `toml:"orbit_speed"`
}

type LightConfig struct {
	Ambient   [3]float32 `toml:"ambient"`
	Direction [3]float32 `toml:"direction"`
	Color     [3]float32 `toml:"color"`
}

type ReflectionConfig struct {
	Variant  string     `toml:"variant"`
	Position [3]float32 `toml:"position"`
	// Normal faces the reflected side of the surface when Spin is zero.
	Normal [3]float32 `toml:"normal"`
	Width  float32    `toml:"width"`
	Height float32    `toml:"height"`
	// TextureWidth and TextureHeight size the capture texture of the texture variant.
	TextureWidth   int     `toml:"texture_width"`
	TextureHeight  int     `toml:"texture_height"`
	Reflectivity   float32 `toml:"reflectivity"`
	FrustumCulling bool    `toml:"frustum_culling"`
	ClipPlane      int     `toml:"clip_plane"`
	// Spin holds the seconds per revolution about X, Y and Z; zero disables an axis.
	Spin [3]float32 `toml:"spin"`
}

type ObjectConfig struct {
	Shape    string     `toml:"shape"`
	Position [3]float32 `toml:"position"`
	// Size is the cube edge, the tetrahedron and sphere radius, the torus outer radius or
	// the axes length.
	Size float32 `toml:"size"`
	// Inner is the torus tube radius.
	Inner float32    `toml:"inner"`
	Color [4]float32 `toml:"color"`
	Spin  [3]float32 `toml:"spin"`
}

// Default returns the scene of the classic reflection demo: a 20 x 20 surface at
// (10, 10, 10) facing +Z, slowly tumbling, with a spinning cube, tetrahedron and torus and a
// still sphere around the origin.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{Title: "Reflection", Width: 800, Height: 600, VSync: true},
		Engine: EngineConfig{TickRate: 60},
		Log:    LogConfig{Level: "info"},
		Camera: CameraConfig{
			Position:   [3]float32{0, 0, 30},
			Fov:        60,
			Near:       1,
			Far:        1000,
			OrbitSpeed: 10,
		},
		Light: LightConfig{
			Ambient:   [3]float32{0.2, 0.2, 0.3},
			Direction: [3]float32{-0.6, 0.4, -0.7},
			Color:     [3]float32{0.8, 0.8, 0.7},
		},
		Reflection: ReflectionConfig{
			Variant:       VariantClipPlane,
			Position:      [3]float32{10, 10, 10},
			Normal:        [3]float32{0, 0, 1},
			Width:         20,
			Height:        20,
			TextureWidth:  256,
			TextureHeight: 256,
			Reflectivity:  0.5,
			Spin:          [3]float32{97, -101, 103},
		},
		Objects: DefaultObjects(),
	}
}

// DefaultObjects returns the four objects of the classic demo.
func DefaultObjects() []ObjectConfig {
	return []ObjectConfig{
		{Shape: ShapeTetrahedron, Position: [3]float32{0, 0, 8}, Size: 1, Color: [4]float32{0, 0, 1, 1}, Spin: [3]float32{-79, 83, -89}},
		{Shape: ShapeCube, Size: 1, Color: [4]float32{0, 1, 0, 1}, Spin: [3]float32{67, -71, 73}},
		{Shape: ShapeSphere, Position: [3]float32{0, 8, 0}, Size: 0.5, Color: [4]float32{1, 1, 0, 1}},
		{Shape: ShapeTorus, Position: [3]float32{8, 0, 0}, Size: 0.5, Inner: 0.2, Color: [4]float32{1, 0, 0, 1}, Spin: [3]float32{-53, 59, -61}},
	}
}

// Parse decodes a TOML document over the defaults and validates the result. Keys the
// document leaves out keep their default values; an objects array replaces the default
// objects entirely. Unknown keys are rejected.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Config: the parsed configuration
//   - error: error if the document is malformed, has unknown keys or fails validation
func Parse(data []byte) (Config, error) {
	cfg := Default()
	cfg.Objects = nil

	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("failed to parse config: %w\n%s", err, strict.String())
		}
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Objects == nil {
		cfg.Objects = DefaultObjects()
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a TOML file.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - Config: the parsed configuration
//   - error: error if the file cannot be read or parsed
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes the configuration as TOML.
//
// Returns:
//   - []byte: the TOML document
//   - error: error if encoding fails
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate reports every problem with the configuration at once.
//
// Returns:
//   - error: the joined validation errors, or nil
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		invalid("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.Samples < 0 {
		invalid("window samples %d", c.Window.Samples)
	}

	if c.Engine.TickRate <= 0 {
		invalid("engine tick_rate %g must be positive", c.Engine.TickRate)
	}
	if c.Engine.FrameLimit < 0 {
		invalid("engine frame_limit %g must not be negative", c.Engine.FrameLimit)
	}
	if c.Engine.Workers < 0 {
		invalid("engine workers %d must not be negative", c.Engine.Workers)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		invalid("log: %v", err)
	}

	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		invalid("camera fov %g must be in (0, 180)", c.Camera.Fov)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		invalid("camera clip range [%g, %g]", c.Camera.Near, c.Camera.Far)
	}

	if c.Light.Direction == [3]float32{} {
		invalid("light direction must not be zero")
	}

	r := c.Reflection
	switch r.Variant {
	case VariantClipPlane:
		if r.Normal == [3]float32{} {
			invalid("reflection normal must not be zero")
		}
		if r.ClipPlane < 0 || r.ClipPlane >= device.MaxClipPlanes {
			invalid("reflection clip_plane %d out of range [0, %d)", r.ClipPlane, device.MaxClipPlanes)
		}
	case VariantTexture:
		if r.TextureWidth <= 0 || r.TextureHeight <= 0 {
			invalid("reflection texture size %dx%d", r.TextureWidth, r.TextureHeight)
		}
		if r.TextureWidth > c.Window.Width || r.TextureHeight > c.Window.Height {
			invalid("reflection texture %dx%d larger than window %dx%d", r.TextureWidth, r.TextureHeight, c.Window.Width, c.Window.Height)
		}
	default:
		errs = append(errs, fmt.Errorf("%w %q", ErrUnknownVariant, r.Variant))
	}
	if r.Width <= 0 || r.Height <= 0 {
		invalid("reflection size %gx%g", r.Width, r.Height)
	}
	if r.Reflectivity < 0 || r.Reflectivity > 1 {
		invalid("reflectivity %g must be in [0, 1]", r.Reflectivity)
	}

	for i, o := range c.Objects {
		switch o.Shape {
		case ShapeCube, ShapeTetrahedron, ShapeSphere, ShapeAxes:
		case ShapeTorus:
			if o.Inner <= 0 || o.Inner >= o.Size {
				invalid("objects[%d] torus inner radius %g must be in (0, %g)", i, o.Inner, o.Size)
			}
		default:
			errs = append(errs, fmt.Errorf("objects[%d]: %w %q", i, ErrUnknownShape, o.Shape))
			continue
		}
		if o.Size <= 0 {
			invalid("objects[%d] size %g must be positive", i, o.Size)
		}
	}

	return errors.Join(errs...)
}
