package material

import (
	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/Carmen-Shannon/oxy-mirror/engine/device"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithColor is an option builder that sets the ambient and diffuse reflectance of the material.
//
// Parameters:
//   - color: the RGBA color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColor(color common.Color) MaterialBuilderOption {
	return func(m *material) {
		m.color = color
	}
}

// WithSpecular is an option builder that sets the specular reflectance and exponent.
//
// Parameters:
//   - color: the specular color
//   - shininess: the specular exponent, clamped to [0, 128]
//
// Returns:
//   - MaterialBuilderOption: a function that applies the specular option to a material
func WithSpecular(color common.Color, shininess float32) MaterialBuilderOption {
	return func(m *material) {
		m.specular = color
		m.shininess = common.Clamp(shininess, 0, 128)
	}
}

// WithEmission is an option builder that sets the emitted color.
//
// Parameters:
//   - color: the emission color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the emission option to a material
func WithEmission(color common.Color) MaterialBuilderOption {
	return func(m *material) {
		m.emission = color
	}
}

// WithTexture is an option builder that textures the material.
//
// Parameters:
//   - tex: the texture to bind when the material is applied
//   - mode: how the texel combines with the lit color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option to a material
func WithTexture(tex device.Texture, mode device.EnvMode) MaterialBuilderOption {
	return func(m *material) {
		m.texture = tex
		m.envMode = mode
	}
}

// WithShadeModel is an option builder that sets flat or smooth shading.
//
// Parameters:
//   - shade: the shading model
//
// Returns:
//   - MaterialBuilderOption: a function that applies the shading option to a material
func WithShadeModel(shade device.ShadeModel) MaterialBuilderOption {
	return func(m *material) {
		m.shade = shade
	}
}
