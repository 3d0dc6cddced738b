package reflection

import "log/slog"

// ClipPlaneReflectorBuilderOption is a function that configures a ClipPlaneReflector during construction.
type ClipPlaneReflectorBuilderOption func(*ClipPlaneReflector)

// WithClipPlaneIndex is an option builder that selects which user clip plane the reflector
// uses. The default is 0.
//
// Parameters:
//   - index: the clip plane slot, in [0, device.MaxClipPlanes)
//
// Returns:
//   - ClipPlaneReflectorBuilderOption: a function that applies the clip plane option
func WithClipPlaneIndex(index int) ClipPlaneReflectorBuilderOption {
	return func(r *ClipPlaneReflector) {
		r.clipIndex = index
	}
}

// WithClipPlaneLogger is an option builder that sets the logger for skipped passes.
//
// Parameters:
//   - logger: the structured logger; nil keeps slog.Default()
//
// Returns:
//   - ClipPlaneReflectorBuilderOption: a function that applies the logger option
func WithClipPlaneLogger(logger *slog.Logger) ClipPlaneReflectorBuilderOption {
	return func(r *ClipPlaneReflector) {
		if logger != nil {
			r.logger = logger
		}
	}
}
