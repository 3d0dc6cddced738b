package scene

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/Carmen-Shannon/oxy-mirror/engine/game_object"
	"github.com/Carmen-Shannon/oxy-mirror/engine/light"
	"github.com/Carmen-Shannon/oxy-mirror/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: true to make the scene active
//
// Returns:
//   - SceneBuilderOption: a function that applies the active state
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithZIndex sets the draw order of the scene among the engine's scenes.
//
// Parameters:
//   - z: the draw order; lower values render first
//
// Returns:
//   - SceneBuilderOption: a function that applies the z-index
func WithZIndex(z int) SceneBuilderOption {
	return func(s *scene) {
		s.zIndex = z
	}
}

// WithObjects adds initial objects to the scene.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: a function that registers the objects
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.add(obj)
		}
	}
}

// WithLighting sets the scene's lighting. Defaults to light.NewLighting() with no lights.
//
// Parameters:
//   - lighting: the lighting to use
//
// Returns:
//   - SceneBuilderOption: a function that applies the lighting
func WithLighting(lighting *light.Lighting) SceneBuilderOption {
	return func(s *scene) {
		s.lighting = lighting
	}
}

// WithReflectivity sets the initial reflectivity, clamped to [0, 1]. Defaults to 0.5.
//
// Parameters:
//   - r: the reflectivity
//
// Returns:
//   - SceneBuilderOption: a function that applies the reflectivity
func WithReflectivity(r float32) SceneBuilderOption {
	return func(s *scene) {
		s.reflectivity = common.Clamp(r, 0, 1)
	}
}

// WithOverlay sets the material blended over a clip-plane reflection. Its alpha is
// replaced by 1 - reflectivity.
//
// Parameters:
//   - m: the overlay material, usually a texture in modulate mode
//
// Returns:
//   - SceneBuilderOption: a function that applies the overlay material
func WithOverlay(m material.Material) SceneBuilderOption {
	return func(s *scene) {
		s.overlay = m
	}
}

// WithSurface sets the pose and size of a clip-plane scene's reflecting surface. The
// surface lies in its local XY plane facing +Z. Mirror scenes take the pose from the Mirror
// and ignore this option.
//
// Parameters:
//   - position: the surface center
//   - orientation: the surface orientation
//   - w, h: the surface size
//
// Returns:
//   - SceneBuilderOption: a function that applies the surface pose
func WithSurface(position mgl32.Vec3, orientation mgl32.Quat, w, h float32) SceneBuilderOption {
	return func(s *scene) {
		s.surfacePosition = position
		s.surfaceBase = orientation.Normalize()
		s.surfaceWidth = w
		s.surfaceHeight = h
		s.surfaceSet = true
	}
}

// WithSurfaceSpin sets the seconds per revolution of the surface about its local X, Y and Z.
//
// Parameters:
//   - periods: the spin periods; zero disables an axis
//
// Returns:
//   - SceneBuilderOption: a function that applies the spin
func WithSurfaceSpin(periods mgl32.Vec3) SceneBuilderOption {
	return func(s *scene) {
		s.surfaceSpin = periods
	}
}

// WithBackground sets the color the framebuffer is cleared to after a Mirror capture.
//
// Parameters:
//   - c: the background color
//
// Returns:
//   - SceneBuilderOption: a function that applies the background color
func WithBackground(c common.Color) SceneBuilderOption {
	return func(s *scene) {
		s.background = c
	}
}

// WithComputeWorkers sets the number of worker goroutines used to update object transforms
// each tick. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of compute workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: a function that applies the worker count
func WithComputeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.computeWorkers = n
	}
}

// WithLogger sets the logger for surface and reflector warnings. Defaults to slog.Default().
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - SceneBuilderOption: a function that applies the logger
func WithLogger(logger *slog.Logger) SceneBuilderOption {
	return func(s *scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}
