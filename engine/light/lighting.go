package light

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/Carmen-Shannon/oxy-mirror/engine/device"
)

// ErrTooManyLights is returned when a Lighting already uses every device light slot.
var ErrTooManyLights = errors.New("too many lights")

// Lighting is the fixed-function light setup of a scene: a global ambient color plus up
// to device.MaxLights directional lights, which occupy device slots in insertion order.
type Lighting struct {
	ambient common.Color
	lights  []Light
}

// LightingBuilderOption is a function that configures a Lighting during construction.
type LightingBuilderOption func(*Lighting)

// WithGlobalAmbient sets the global ambient light color.
func WithGlobalAmbient(ambient common.Color) LightingBuilderOption {
	return func(l *Lighting) {
		l.ambient = ambient
	}
}

// NewLighting creates a Lighting with the GL default ambient of (0.2, 0.2, 0.2) and no lights.
//
// Parameters:
//   - opts: functional options to configure the lighting
//
// Returns:
//   - *Lighting: the newly created lighting
func NewLighting(opts ...LightingBuilderOption) *Lighting {
	l := &Lighting{ambient: common.Color{0.2, 0.2, 0.2, 1}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Ambient returns the global ambient color.
func (l *Lighting) Ambient() common.Color {
	return l.ambient
}

// SetAmbient replaces the global ambient color. It takes effect on the next Apply.
func (l *Lighting) SetAmbient(ambient common.Color) {
	l.ambient = ambient
}

// Lights returns the lights in slot order.
func (l *Lighting) Lights() []Light {
	return l.lights
}

// Add appends a light in the next free device slot.
//
// Parameters:
//   - light: the light to add
//
// Returns:
//   - error: ErrTooManyLights if every slot is in use
func (l *Lighting) Add(light Light) error {
	if len(l.lights) >= device.MaxLights {
		return fmt.Errorf("%w: limit is %d", ErrTooManyLights, device.MaxLights)
	}
	l.lights = append(l.lights, light)
	return nil
}

// Enable turns on fixed-function lighting.
func (l *Lighting) Enable(dev device.Device) {
	dev.SetEnabled(device.Lighting, true)
}

// Disable turns off fixed-function lighting.
func (l *Lighting) Disable(dev device.Device) {
	dev.SetEnabled(device.Lighting, false)
}

// Apply uploads the ambient color and every light slot. Light directions are transformed
// by the current model-view matrix, so Apply is called after the view is loaded. Slots
// past the last light are disabled.
//
// Parameters:
//   - dev: the device to configure
func (l *Lighting) Apply(dev device.Device) {
	dev.SetAmbientLight(l.ambient)
	for i := range device.MaxLights {
		if i < len(l.lights) {
			dev.SetLight(i, l.lights[i].State())
			continue
		}
		dev.SetLight(i, device.LightState{})
	}
}
