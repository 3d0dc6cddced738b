package loader

import (
	"image"
	"math/bits"

	"github.com/Carmen-Shannon/oxy-mirror/common"
	"golang.org/x/image/draw"
)

// ImageOptions controls how an image is turned into a texture descriptor.
type ImageOptions struct {
	// Format is the texel layout of the resulting texture.
	Format common.TextureFormat
	// Wrap is the addressing mode of the resulting texture.
	Wrap common.WrapMode
	// Linear selects linear filtering.
	Linear bool
	// PowerOfTwo rescales the image up to the next power-of-two size in each dimension.
	PowerOfTwo bool
	// MaxSize, when positive, limits both dimensions after PowerOfTwo is applied.
	MaxSize int
}

// ImageDescriptor converts img to a texture descriptor, resampling it bilinearly when the
// options change its size. Rows are stored bottom-up, the order fixed-function texture
// uploads expect.
//
// Parameters:
//   - img: the source image
//   - opts: conversion options
//
// Returns:
//   - common.TextureDescriptor: the texture ready to upload
func ImageDescriptor(img image.Image, opts ImageOptions) common.TextureDescriptor {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	tw, th := w, h
	if opts.PowerOfTwo {
		tw, th = nextPowerOfTwo(w), nextPowerOfTwo(h)
	}
	if opts.MaxSize > 0 {
		tw, th = min(tw, opts.MaxSize), min(th, opts.MaxSize)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, tw, th))
	if tw == w && th == h {
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	} else {
		draw.BiLinear.Scale(rgba, rgba.Bounds(), img, bounds, draw.Src, nil)
	}

	bpt := opts.Format.BytesPerTexel()
	pixels := make([]byte, tw*th*bpt)
	for y := range th {
		src := rgba.Pix[(th-1-y)*rgba.Stride:]
		for x := range tw {
			copy(pixels[(y*tw+x)*bpt:(y*tw+x+1)*bpt], src[x*4:x*4+bpt])
		}
	}

	return common.TextureDescriptor{
		Width:  tw,
		Height: th,
		Format: opts.Format,
		Wrap:   opts.Wrap,
		Linear: opts.Linear,
		Pixels: pixels,
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
