package loader

import (
	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/Carmen-Shannon/oxy-mirror/engine/device"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithFormat sets the texel layout of loaded textures.
//
// Parameters:
//   - format: RGB or RGBA
//
// Returns:
//   - LoaderBuilderOption: a function that applies the format option to a loader
func WithFormat(format common.TextureFormat) LoaderBuilderOption {
	return func(l *loader) {
		l.opts.Format = format
	}
}

// WithWrap sets the addressing mode of loaded textures.
//
// Parameters:
//   - wrap: clamp or repeat
//
// Returns:
//   - LoaderBuilderOption: a function that applies the wrap option to a loader
func WithWrap(wrap common.WrapMode) LoaderBuilderOption {
	return func(l *loader) {
		l.opts.Wrap = wrap
	}
}

// WithLinear sets whether loaded textures use linear filtering.
//
// Parameters:
//   - linear: true for linear, false for nearest
//
// Returns:
//   - LoaderBuilderOption: a function that applies the filter option to a loader
func WithLinear(linear bool) LoaderBuilderOption {
	return func(l *loader) {
		l.opts.Linear = linear
	}
}

// WithPowerOfTwo rescales loaded images up to power-of-two sizes, for devices without
// non-power-of-two texture support.
//
// Parameters:
//   - enabled: true to rescale
//
// Returns:
//   - LoaderBuilderOption: a function that applies the rescale option to a loader
func WithPowerOfTwo(enabled bool) LoaderBuilderOption {
	return func(l *loader) {
		l.opts.PowerOfTwo = enabled
	}
}

// WithMaxSize limits the width and height of loaded textures.
//
// Parameters:
//   - size: the largest allowed dimension; zero removes the limit
//
// Returns:
//   - LoaderBuilderOption: a function that applies the size limit to a loader
func WithMaxSize(size int) LoaderBuilderOption {
	return func(l *loader) {
		l.opts.MaxSize = size
	}
}

// WithTexture is an option builder that pre-populates the texture cache.
//
// Parameters:
//   - key: the cache key for the texture
//   - tex: the texture to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the texture option to a loader
func WithTexture(key string, tex device.Texture) LoaderBuilderOption {
	return func(l *loader) {
		l.textureCache[key] = tex
	}
}
