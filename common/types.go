// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidTextureSize is returned when a texture descriptor has a non-positive dimension.
var ErrInvalidTextureSize = errors.New("invalid texture size")

// TextureFormat is the texel layout of a device texture.
type TextureFormat int

const (
	// TextureFormatRGB stores three 8-bit channels per texel.
	TextureFormatRGB TextureFormat = iota
	// TextureFormatRGBA stores four 8-bit channels per texel.
	TextureFormatRGBA
)

// String returns the format name.
func (f TextureFormat) String() string {
	switch f {
	case TextureFormatRGB:
		return "rgb"
	case TextureFormatRGBA:
		return "rgba"
	default:
		return fmt.Sprintf("TextureFormat(%d)", int(f))
	}
}

// BytesPerTexel returns the size of a single texel in bytes.
func (f TextureFormat) BytesPerTexel() int {
	if f == TextureFormatRGBA {
		return 4
	}
	return 3
}

// WrapMode controls texture coordinate addressing outside [0, 1].
type WrapMode int

const (
	// WrapClamp clamps texture coordinates to the edge.
	WrapClamp WrapMode = iota
	// WrapRepeat tiles the texture.
	WrapRepeat
)

// TextureDescriptor describes a texture to allocate on a device.
type TextureDescriptor struct {
	// Width is the texture width in texels.
	Width int
	// Height is the texture height in texels.
	Height int
	// Format is the texel layout.
	Format TextureFormat
	// Wrap is applied to both the S and T coordinates.
	Wrap WrapMode
	// Linear selects linear filtering; nearest filtering is used otherwise.
	Linear bool
	// Pixels is optional initial data, tightly packed rows of Format texels. A nil slice
	// leaves the contents undefined.
	Pixels []byte
}

// Validate checks the descriptor dimensions and, when present, the size of the pixel data.
//
// Returns:
//   - error: an error wrapping ErrInvalidTextureSize, or nil
func (d TextureDescriptor) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidTextureSize, d.Width, d.Height)
	}
	if d.Pixels != nil {
		want := d.Width * d.Height * d.Format.BytesPerTexel()
		if len(d.Pixels) != want {
			return fmt.Errorf("%w: %d bytes of pixel data for %dx%d %s, want %d",
				ErrInvalidTextureSize, len(d.Pixels), d.Width, d.Height, d.Format, want)
		}
	}
	return nil
}

// Color is a linear RGBA color with components in [0, 1].
type Color [4]float32

// Named colors used by the demo scenes.
var (
	ColorBlack  = Color{0, 0, 0, 1}
	ColorWhite  = Color{1, 1, 1, 1}
	ColorRed    = Color{1, 0, 0, 1}
	ColorGreen  = Color{0, 1, 0, 1}
	ColorBlue   = Color{0, 0, 1, 1}
	ColorYellow = Color{1, 1, 0, 1}
	ColorGray   = Color{0.5, 0.5, 0.5, 1}
)

// RGB returns a fully opaque color.
func RGB(r, g, b float32) Color {
	return Color{r, g, b, 1}
}

// WithAlpha returns a copy of c with its alpha replaced.
func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Vec4 returns the color as an mgl32 vector.
func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4(c)
}

// IsZero reports whether every component is zero.
func (c Color) IsZero() bool {
	return c == Color{}
}
