package light

import (
	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithDirection is an option builder that sets the direction of the light.
// The direction is normalized before storing; a zero vector is ignored.
//
// Parameters:
//   - x: the x direction component
//   - y: the y direction component
//   - z: the z direction component
//
// Returns:
//   - LightBuilderOption: a function that applies the direction option to a lightImpl
func WithDirection(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.SetDirection(x, y, z)
	}
}

// WithColor is an option builder that sets the diffuse color of the light.
//
// Parameters:
//   - color: the diffuse color
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(color common.Color) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = color
	}
}

// WithAmbient is an option builder that sets the light's own ambient contribution.
//
// Parameters:
//   - ambient: the ambient color
//
// Returns:
//   - LightBuilderOption: a function that applies the ambient option to a lightImpl
func WithAmbient(ambient common.Color) LightBuilderOption {
	return func(l *lightImpl) {
		l.ambient = ambient
	}
}

// WithSpecular is an option builder that sets the specular color of the light.
//
// Parameters:
//   - specular: the specular color
//
// Returns:
//   - LightBuilderOption: a function that applies the specular option to a lightImpl
func WithSpecular(specular common.Color) LightBuilderOption {
	return func(l *lightImpl) {
		l.specular = specular
	}
}

// WithIntensity is an option builder that sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithEnabled is an option builder that sets whether the light is initially enabled.
//
// Parameters:
//   - enabled: true to enable the light
//
// Returns:
//   - LightBuilderOption: a function that applies the enabled option to a lightImpl
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}

func normalize3(x, y, z float32) (mgl32.Vec3, bool) {
	length := math32.Sqrt(x*x + y*y + z*z)
	if length == 0 {
		return mgl32.Vec3{}, false
	}
	return mgl32.Vec3{x / length, y / length, z / length}, true
}
