package game_object

import (
	"github.com/Carmen-Shannon/oxy-mirror/engine/model"
	"github.com/Carmen-Shannon/oxy-mirror/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// GameObjectBuilderOption is a function that configures a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithModel sets the Model drawn by the object.
//
// Parameters:
//   - m: the Model to associate
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the model option
func WithModel(m model.Model) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.mdl = m
	}
}

// WithMaterial sets the Material applied before drawing.
//
// Parameters:
//   - m: the Material to associate
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the material option
func WithMaterial(m material.Material) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.mat = m
	}
}

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - position: the initial position
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the position option
func WithPosition(position mgl32.Vec3) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.position = position
	}
}

// WithOrientation sets the resting orientation.
//
// Parameters:
//   - orientation: the resting orientation
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the orientation option
func WithOrientation(orientation mgl32.Quat) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.base = orientation.Normalize()
	}
}

// WithScale sets the initial per-axis scale.
//
// Parameters:
//   - scale: the scale factors
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the scale option
func WithScale(scale mgl32.Vec3) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.scale = scale
	}
}

// WithSpinPeriods sets the seconds per revolution about local X, Y and Z.
//
// Parameters:
//   - periods: the spin periods; zero disables an axis
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the spin option
func WithSpinPeriods(periods mgl32.Vec3) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.spin = periods
	}
}

// WithEnabled sets whether the object starts enabled.
//
// Parameters:
//   - enabled: true to enable
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the enabled option
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.enabled.Store(enabled)
	}
}
