package light

import (
	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/Carmen-Shannon/oxy-mirror/engine/device"
	"github.com/go-gl/mathgl/mgl32"
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	direction mgl32.Vec3
	ambient   common.Color
	color     common.Color
	specular  common.Color
	intensity float32
	enabled   bool
}

// Light defines the interface for a directional light source.
//
// Directional lights have no position; they model a distant source such as the sun and
// light every surface from the same direction with no attenuation. The device transforms
// the direction by the model-view matrix current when the light is applied, so a light
// applied inside a reflection pass is reflected along with the geometry.
type Light interface {
	// Direction returns the normalized direction the light travels, in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the unit direction
	Direction() mgl32.Vec3

	// Color returns the diffuse color of the light.
	//
	// Returns:
	//   - common.Color: the diffuse color
	Color() common.Color

	// Ambient returns the ambient contribution of this light.
	//
	// Returns:
	//   - common.Color: the ambient color
	Ambient() common.Color

	// Specular returns the specular color of the light.
	//
	// Returns:
	//   - common.Color: the specular color
	Specular() common.Color

	// Intensity returns the scalar multiplier applied to the diffuse and specular colors.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Enabled returns whether this light is active for rendering.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// SetDirection sets the direction of the light and normalizes it.
	// A zero vector is ignored.
	//
	// Parameters:
	//   - x, y, z: direction components (will be normalized)
	SetDirection(x, y, z float32)

	// SetColor sets the diffuse color of the light.
	//
	// Parameters:
	//   - color: the diffuse color
	SetColor(color common.Color)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// State returns the device description of the light with intensity applied.
	//
	// Returns:
	//   - device.LightState: the fixed-function light parameters
	State() device.LightState
}

var _ Light = &lightImpl{}

// NewLight creates a new white directional light pointing straight down, with any
// provided options applied.
//
// Parameters:
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(opts ...LightBuilderOption) Light {
	l := &lightImpl{
		direction: mgl32.Vec3{0, -1, 0},
		ambient:   common.ColorBlack,
		color:     common.ColorWhite,
		specular:  common.ColorWhite,
		intensity: 1.0,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	return l.direction
}

func (l *lightImpl) Color() common.Color {
	return l.color
}

func (l *lightImpl) Ambient() common.Color {
	return l.ambient
}

func (l *lightImpl) Specular() common.Color {
	return l.specular
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetDirection(x, y, z float32) {
	if d, ok := normalize3(x, y, z); ok {
		l.direction = d
	}
}

func (l *lightImpl) SetColor(color common.Color) {
	l.color = color
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) State() device.LightState {
	return device.LightState{
		Enabled:   l.enabled,
		Direction: l.direction,
		Ambient:   l.ambient,
		Diffuse:   scale(l.color, l.intensity),
		Specular:  scale(l.specular, l.intensity),
	}
}

// scale multiplies the RGB channels of c by k and keeps its alpha.
func scale(c common.Color, k float32) common.Color {
	return common.Color{c[0] * k, c[1] * k, c[2] * k, c[3]}
}
