package loader

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/Carmen-Shannon/oxy-mirror/engine/device"
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	dev  device.Device
	opts ImageOptions

	textureCache map[string]device.Texture
}

// Loader uploads textures to a device and caches them by name.
type Loader interface {
	// LoadImage converts img with the loader's image options, uploads it and caches it
	// under name, replacing and releasing any texture already cached there.
	//
	// Parameters:
	//   - name: the cache key for the texture
	//   - img: the source image
	//
	// Returns:
	//   - device.Texture: the uploaded texture
	//   - error: error if the device rejects the texture
	LoadImage(name string, img image.Image) (device.Texture, error)

	// LoadDescriptor uploads a prepared texture and caches it under name, replacing and
	// releasing any texture already cached there.
	//
	// Parameters:
	//   - name: the cache key for the texture
	//   - desc: the texture to upload
	//
	// Returns:
	//   - device.Texture: the uploaded texture
	//   - error: error if the device rejects the texture
	LoadDescriptor(name string, desc common.TextureDescriptor) (device.Texture, error)

	// Get retrieves a cached texture by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - device.Texture: the cached texture or nil
	Get(name string) device.Texture

	// Textures returns a copy of the texture cache.
	//
	// Returns:
	//   - map[string]device.Texture: all cached textures keyed by name
	Textures() map[string]device.Texture

	// Close releases every cached texture and empties the cache.
	//
	// Returns:
	//   - error: the joined errors from releasing the textures
	Close() error
}

var _ Loader = &loader{}

// NewLoader creates a new Loader uploading to dev. Textures default to clamped, linearly
// filtered RGB at their source size.
//
// Parameters:
//   - dev: the device textures are created on
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader
func NewLoader(dev device.Device, options ...LoaderBuilderOption) Loader {
	l := &loader{
		dev:          dev,
		opts:         ImageOptions{Format: common.TextureFormatRGB, Wrap: common.WrapClamp, Linear: true},
		textureCache: make(map[string]device.Texture),
	}
	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) LoadImage(name string, img image.Image) (device.Texture, error) {
	return l.LoadDescriptor(name, ImageDescriptor(img, l.opts))
}

func (l *loader) LoadDescriptor(name string, desc common.TextureDescriptor) (device.Texture, error) {
	tex, err := l.dev.NewTexture(desc)
	if err != nil {
		return nil, fmt.Errorf("failed to create texture %s: %w", name, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if old, ok := l.textureCache[name]; ok && old != tex {
		_ = old.Close()
	}
	l.textureCache[name] = tex
	return tex, nil
}

func (l *loader) Get(name string) device.Texture {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.textureCache[name]
}

func (l *loader) Textures() map[string]device.Texture {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]device.Texture, len(l.textureCache))
	for k, v := range l.textureCache {
		out[k] = v
	}
	return out
}

func (l *loader) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var errs []error
	for name, tex := range l.textureCache {
		if err := tex.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	clear(l.textureCache)
	return errors.Join(errs...)
}
