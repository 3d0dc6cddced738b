package model

import "github.com/Carmen-Shannon/oxy-mirror/common"

// ModelBuilderOption is a function that configures a model instance during construction.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the model.
//
// Parameters:
//   - name: the identifier for the model
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithBoundingRadius is an option builder that overrides the computed bounding sphere radius.
//
// Parameters:
//   - radius: the bounding sphere radius in model units
//
// Returns:
//   - ModelBuilderOption: a function that applies the bounding radius option to a model
func WithBoundingRadius(radius float32) ModelBuilderOption {
	return func(m *model) {
		m.boundingRadius = radius
	}
}

// WithColor is an option builder that sets a per-vertex color on every vertex, overriding
// the material color while the model is drawn unlit.
//
// Parameters:
//   - color: the vertex color
//
// Returns:
//   - ModelBuilderOption: a function that applies the color option to a model
func WithColor(color common.Color) ModelBuilderOption {
	return func(m *model) {
		for i := range m.vertices {
			m.vertices[i].Color = color
		}
	}
}
