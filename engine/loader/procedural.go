package loader

import (
	"image"
	"image/color"

	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/chewxy/math32"
)

// Checkerboard draws a size x size image of cells x cells alternating squares, with a in
// the top-left corner.
//
// Parameters:
//   - size: the image width and height in pixels
//   - cells: the number of squares along each side
//   - a, b: the two square colors
//
// Returns:
//   - *image.RGBA: the opaque checkerboard
func Checkerboard(size, cells int, a, b common.Color) *image.RGBA {
	cells = max(cells, 1)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	ca, cb := toRGBA(a), toRGBA(b)
	for y := range size {
		for x := range size {
			c := ca
			if (x*cells/size+y*cells/size)%2 == 1 {
				c = cb
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// Ripple draws a size x size image of interfering sine waves tinted toward base, used as
// the water texture on the reflecting surface.
//
// Parameters:
//   - size: the image width and height in pixels
//   - waves: the number of wave periods across the image
//   - base: the color at the wave troughs; crests blend toward white
//
// Returns:
//   - *image.RGBA: the opaque ripple pattern
func Ripple(size, waves int, base common.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	k := 2 * math32.Pi * float32(waves) / float32(size)
	for y := range size {
		for x := range size {
			fx, fy := float32(x), float32(y)
			v := 0.5 + 0.25*(math32.Sin(k*fx+0.7*math32.Sin(k*fy))+math32.Sin(k*(fx+fy)*0.5))
			v = common.Clamp(v, 0, 1) * 0.5
			img.SetRGBA(x, y, toRGBA(common.Color{
				base[0] + (1-base[0])*v,
				base[1] + (1-base[1])*v,
				base[2] + (1-base[2])*v,
				1,
			}))
		}
	}
	return img
}

func toRGBA(c common.Color) color.RGBA {
	var out [4]uint8
	for i, v := range c {
		out[i] = uint8(common.Clamp(v, 0, 1)*255 + 0.5)
	}
	return color.RGBA{out[0], out[1], out[2], out[3]}
}
