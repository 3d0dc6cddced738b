package material

import (
	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/Carmen-Shannon/oxy-mirror/engine/device"
)

// material is the implementation of the Material interface.
type material struct {
	name      string
	color     common.Color
	specular  common.Color
	shininess float32
	emission  common.Color
	texture   device.Texture
	envMode   device.EnvMode
	shade     device.ShadeModel
}

// Material defines the interface for a fixed-function surface material: the reflectance
// colors used by lighting, an optional texture and how it combines with the lit color,
// and the shading model.
//
// The color is mutable so that blended surfaces can change their opacity between frames.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Color retrieves the ambient and diffuse reflectance of the material. It is also the
	// current color for unlit drawing.
	//
	// Returns:
	//   - common.Color: the RGBA color
	Color() common.Color

	// SetColor replaces the ambient and diffuse reflectance.
	//
	// Parameters:
	//   - c: the new RGBA color
	SetColor(c common.Color)

	// Specular retrieves the specular reflectance.
	//
	// Returns:
	//   - common.Color: the specular color
	Specular() common.Color

	// Shininess retrieves the specular exponent.
	//
	// Returns:
	//   - float32: the exponent in [0, 128]
	Shininess() float32

	// Emission retrieves the emitted color.
	//
	// Returns:
	//   - common.Color: the emission color
	Emission() common.Color

	// Texture retrieves the surface texture, or nil if the material is untextured.
	//
	// Returns:
	//   - device.Texture: the texture, or nil
	Texture() device.Texture

	// EnvMode retrieves how the texture combines with the lit color.
	//
	// Returns:
	//   - device.EnvMode: the texture environment mode
	EnvMode() device.EnvMode

	// ShadeModel retrieves the shading model.
	//
	// Returns:
	//   - device.ShadeModel: flat or smooth
	ShadeModel() device.ShadeModel

	// State returns the device-level description of the material.
	//
	// Returns:
	//   - device.MaterialState: the material state
	State() device.MaterialState

	// Apply makes this the current material on dev. Texturing is enabled and the texture bound
	// when the material is textured, and disabled otherwise.
	//
	// Parameters:
	//   - dev: the device to apply the material to
	Apply(dev device.Device)
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// The default is an untextured, smooth-shaded white material with no specular highlight.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		color:    common.ColorWhite,
		specular: common.ColorBlack,
		emission: common.ColorBlack,
		envMode:  device.EnvModulate,
		shade:    device.ShadeSmooth,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Color() common.Color {
	return m.color
}

func (m *material) SetColor(c common.Color) {
	m.color = c
}

func (m *material) Specular() common.Color {
	return m.specular
}

func (m *material) Shininess() float32 {
	return m.shininess
}

func (m *material) Emission() common.Color {
	return m.emission
}

func (m *material) Texture() device.Texture {
	return m.texture
}

func (m *material) EnvMode() device.EnvMode {
	return m.envMode
}

func (m *material) ShadeModel() device.ShadeModel {
	return m.shade
}

func (m *material) State() device.MaterialState {
	return device.MaterialState{
		AmbientDiffuse: m.color,
		Specular:       m.specular,
		Shininess:      m.shininess,
		Emission:       m.emission,
		Texture:        m.texture,
		EnvMode:        m.envMode,
		Shade:          m.shade,
	}
}

func (m *material) Apply(dev device.Device) {
	dev.ApplyMaterial(m.State())
}
