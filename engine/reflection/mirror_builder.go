package reflection

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-mirror/engine/renderer/material"
)

// MirrorBuilderOption is a function that configures a Mirror during construction.
type MirrorBuilderOption func(*Mirror)

// WithMaterial is an option builder that adjusts the mirror material. The options are
// applied after the defaults: white, flat shaded, textured with the capture texture in
// replace mode.
//
// Parameters:
//   - options: material options applied on top of the defaults
//
// Returns:
//   - MirrorBuilderOption: a function that applies the material option
func WithMaterial(options ...material.MaterialBuilderOption) MirrorBuilderOption {
	return func(m *Mirror) {
		m.materialOptions = append(m.materialOptions, options...)
	}
}

// WithFrustumCulling is an option builder that skips captures when the mirror quad lies
// entirely outside the viewer's frustum. Only viewers exposing ViewProjectionMatrix are
// culled.
//
// Parameters:
//   - enabled: whether to cull
//
// Returns:
//   - MirrorBuilderOption: a function that applies the culling option
func WithFrustumCulling(enabled bool) MirrorBuilderOption {
	return func(m *Mirror) {
		m.frustumCulling = enabled
	}
}

// WithMirrorLogger is an option builder that sets the logger for skipped captures.
//
// Parameters:
//   - logger: the structured logger; nil keeps slog.Default()
//
// Returns:
//   - MirrorBuilderOption: a function that applies the logger option
func WithMirrorLogger(logger *slog.Logger) MirrorBuilderOption {
	return func(m *Mirror) {
		if logger != nil {
			m.logger = logger
		}
	}
}
