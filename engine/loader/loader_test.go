package loader_test

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/Carmen-Shannon/oxy-mirror/engine/device"
	"github.com/Carmen-Shannon/oxy-mirror/engine/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoRowImage is 2x2 with a red top row and a blue bottom row.
func twoRowImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{255, 0, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 255, 255})
	return img
}

func TestImageDescriptorFlipsRows(t *testing.T) {
	desc := loader.ImageDescriptor(twoRowImage(), loader.ImageOptions{})
	require.NoError(t, desc.Validate())

	assert.Equal(t, 2, desc.Width)
	assert.Equal(t, 2, desc.Height)
	assert.Equal(t, common.TextureFormatRGB, desc.Format)
	// The bottom image row comes first.
	assert.Equal(t, []byte{0, 0, 255}, desc.Pixels[0:3])
	assert.Equal(t, []byte{255, 0, 0}, desc.Pixels[6:9])
}

func TestImageDescriptorRGBAKeepsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{255, 255, 255, 255})
	desc := loader.ImageDescriptor(img, loader.ImageOptions{Format: common.TextureFormatRGBA, Wrap: common.WrapRepeat})
	assert.Equal(t, []byte{255, 255, 255, 255}, desc.Pixels)
	assert.Equal(t, common.WrapRepeat, desc.Wrap)
}

func TestImageDescriptorSubImageOrigin(t *testing.T) {
	sub := twoRowImage().SubImage(image.Rect(0, 1, 2, 2))
	desc := loader.ImageDescriptor(sub, loader.ImageOptions{})
	assert.Equal(t, 1, desc.Height)
	assert.Equal(t, []byte{0, 0, 255, 0, 0, 255}, desc.Pixels)
}

func TestImageDescriptorResize(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		opts         loader.ImageOptions
		wantW, wantH int
	}{
		{"unchanged", 3, 5, loader.ImageOptions{}, 3, 5},
		{"power of two", 3, 5, loader.ImageOptions{PowerOfTwo: true}, 4, 8},
		{"already power of two", 64, 32, loader.ImageOptions{PowerOfTwo: true}, 64, 32},
		{"max size", 300, 100, loader.ImageOptions{MaxSize: 128}, 128, 100},
		{"power of two then max size", 300, 100, loader.ImageOptions{PowerOfTwo: true, MaxSize: 256}, 256, 128},
		{"single texel", 1, 1, loader.ImageOptions{PowerOfTwo: true}, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
			desc := loader.ImageDescriptor(img, tt.opts)
			assert.Equal(t, tt.wantW, desc.Width)
			assert.Equal(t, tt.wantH, desc.Height)
			assert.NoError(t, desc.Validate())
		})
	}
}

func TestImageDescriptorResampleKeepsSolidColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	for i := 0; i < len(img.Pix); i += 4 {
		copy(img.Pix[i:], []byte{10, 200, 30, 255})
	}
	desc := loader.ImageDescriptor(img, loader.ImageOptions{PowerOfTwo: true})
	require.Equal(t, 4, desc.Width)
	want := []byte{10, 200, 30}
	for i, v := range desc.Pixels {
		assert.InDelta(t, want[i%3], v, 1)
	}
}

func TestCheckerboard(t *testing.T) {
	img := loader.Checkerboard(8, 2, common.ColorWhite, common.ColorBlack)
	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())

	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}
	assert.Equal(t, white, img.RGBAAt(0, 0))
	assert.Equal(t, black, img.RGBAAt(4, 0))
	assert.Equal(t, black, img.RGBAAt(0, 4))
	assert.Equal(t, white, img.RGBAAt(7, 7))
}

func TestRipple(t *testing.T) {
	base := common.Color{0, 0.2, 0.4, 1}
	img := loader.Ripple(16, 2, base)
	for y := range 16 {
		for x := range 16 {
			c := img.RGBAAt(x, y)
			// Crests only ever lighten the base color.
			assert.GreaterOrEqual(t, c.B, c.G)
			assert.GreaterOrEqual(t, c.B, uint8(102))
			assert.Equal(t, uint8(255), c.A)
		}
	}
}

func TestLoaderCachesByName(t *testing.T) {
	dev := device.NewStateDevice(64, 64)
	l := loader.NewLoader(dev, loader.WithFormat(common.TextureFormatRGBA), loader.WithWrap(common.WrapRepeat), loader.WithLinear(false))

	tex, err := l.LoadImage("floor", loader.Checkerboard(8, 2, common.ColorWhite, common.ColorBlack))
	require.NoError(t, err)
	assert.Equal(t, common.TextureFormatRGBA, tex.Format())
	assert.Equal(t, 1, dev.LiveTextures())
	assert.Same(t, tex, l.Get("floor"))
	assert.Nil(t, l.Get("water"))
	assert.Len(t, l.Textures(), 1)
}

func TestLoaderPowerOfTwo(t *testing.T) {
	dev := device.NewStateDevice(64, 64)
	l := loader.NewLoader(dev, loader.WithPowerOfTwo(true), loader.WithMaxSize(16))

	tex, err := l.LoadImage("water", loader.Ripple(20, 2, common.ColorBlue))
	require.NoError(t, err)
	assert.Equal(t, 16, tex.Width())
	assert.Equal(t, 16, tex.Height())
}

func TestLoaderReplacesAndCloses(t *testing.T) {
	dev := device.NewStateDevice(1, 1)
	l := loader.NewLoader(dev)

	first, err := l.LoadImage("water", loader.Ripple(8, 1, common.ColorBlue))
	require.NoError(t, err)
	second, err := l.LoadImage("water", loader.Ripple(8, 2, common.ColorBlue))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID(), second.ID())
	assert.Equal(t, 1, dev.LiveTextures())

	_, err = l.LoadDescriptor("blank", common.TextureDescriptor{Width: 4, Height: 4})
	require.NoError(t, err)
	assert.Equal(t, 2, dev.LiveTextures())

	require.NoError(t, l.Close())
	assert.Zero(t, dev.LiveTextures())
	assert.Empty(t, l.Textures())
}

func TestLoaderPrepopulated(t *testing.T) {
	dev := device.NewStateDevice(1, 1)
	tex, err := dev.NewTexture(common.TextureDescriptor{Width: 2, Height: 2})
	require.NoError(t, err)

	l := loader.NewLoader(dev, loader.WithTexture("capture", tex))
	assert.Same(t, tex, l.Get("capture"))
}

func TestLoaderDeviceFailure(t *testing.T) {
	dev := device.NewStateDevice(1, 1)
	boom := errors.New("out of texture memory")
	dev.FailTextures(boom)

	l := loader.NewLoader(dev)
	_, err := l.LoadImage("checker", loader.Checkerboard(4, 2, common.ColorWhite, common.ColorBlack))
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, l.Get("checker"))
}
