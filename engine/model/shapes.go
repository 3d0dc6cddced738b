package model

import (
	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/Carmen-Shannon/oxy-mirror/engine/device"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Cube returns a solid axis-aligned cube centered on the origin with the given edge length.
// Each face is a quad with an outward normal and counter-clockwise winding seen from outside.
func Cube(size float32) Model {
	h := size * 0.5
	faces := []struct{ n, u, v mgl32.Vec3 }{
		{common.XAxis, common.YAxis, common.ZAxis},
		{common.XAxis.Mul(-1), common.ZAxis, common.YAxis},
		{common.YAxis, common.ZAxis, common.XAxis},
		{common.YAxis.Mul(-1), common.XAxis, common.ZAxis},
		{common.ZAxis, common.XAxis, common.YAxis},
		{common.ZAxis.Mul(-1), common.YAxis, common.XAxis},
	}
	vertices := make([]device.Vertex, 0, 24)
	for _, f := range faces {
		c := f.n.Mul(h)
		u := f.u.Mul(h)
		v := f.v.Mul(h)
		for _, corner := range [4]mgl32.Vec3{
			c.Sub(u).Sub(v),
			c.Add(u).Sub(v),
			c.Add(u).Add(v),
			c.Sub(u).Add(v),
		} {
			vertices = append(vertices, device.Vertex{Position: corner, Normal: f.n})
		}
	}
	return NewModel(device.Quads, vertices, WithName("cube"))
}

// Tetrahedron returns a solid regular tetrahedron centered on the origin whose vertices lie
// at the given radius.
func Tetrahedron(radius float32) Model {
	s := radius / math32.Sqrt(3)
	corners := [4]mgl32.Vec3{{s, s, s}, {-s, -s, s}, {-s, s, -s}, {s, -s, -s}}
	faces := [4][3]int{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2}}

	vertices := make([]device.Vertex, 0, 12)
	for _, f := range faces {
		a, b, c := corners[f[0]], corners[f[1]], corners[f[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Dot(a.Add(b).Add(c)) < 0 {
			b, c = c, b
			n = n.Mul(-1)
		}
		n = n.Normalize()
		vertices = append(vertices,
			device.Vertex{Position: a, Normal: n},
			device.Vertex{Position: b, Normal: n},
			device.Vertex{Position: c, Normal: n},
		)
	}
	return NewModel(device.Triangles, vertices, WithName("tetrahedron"))
}

// Sphere returns a smooth UV sphere centered on the origin. The poles lie on the Y axis.
// slices divides the sphere around Y and stacks from pole to pole.
func Sphere(radius float32, slices, stacks int) Model {
	slices = max(slices, 3)
	stacks = max(stacks, 2)

	point := func(i, j int) device.Vertex {
		phi := math32.Pi * float32(i) / float32(stacks)
		theta := 2 * math32.Pi * float32(j) / float32(slices)
		n := mgl32.Vec3{
			math32.Sin(phi) * math32.Sin(theta),
			math32.Cos(phi),
			math32.Sin(phi) * math32.Cos(theta),
		}
		return device.Vertex{
			Position: n.Mul(radius),
			Normal:   n,
			TexCoord: mgl32.Vec2{float32(j) / float32(slices), 1 - float32(i)/float32(stacks)},
		}
	}

	vertices := make([]device.Vertex, 0, 6*slices*(stacks-1))
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a, b, c, d := point(i, j), point(i+1, j), point(i+1, j+1), point(i, j+1)
			// The triangle touching a pole would be degenerate.
			if i != stacks-1 {
				vertices = append(vertices, a, b, c)
			}
			if i != 0 {
				vertices = append(vertices, a, c, d)
			}
		}
	}
	return NewModel(device.Triangles, vertices, WithName("sphere"), WithBoundingRadius(radius))
}

// Torus returns a smooth torus centered on the origin and lying in the XY plane.
// inner is the radius of the tube and outer the distance from the center to the middle of
// the tube. sides divides the tube cross-section and rings divides the ring.
func Torus(inner, outer float32, sides, rings int) Model {
	sides = max(sides, 3)
	rings = max(rings, 3)

	point := func(ring, side int) device.Vertex {
		theta := 2 * math32.Pi * float32(ring) / float32(rings)
		phi := 2 * math32.Pi * float32(side) / float32(sides)
		n := mgl32.Vec3{
			math32.Cos(phi) * math32.Cos(theta),
			math32.Cos(phi) * math32.Sin(theta),
			math32.Sin(phi),
		}
		center := mgl32.Vec3{outer * math32.Cos(theta), outer * math32.Sin(theta), 0}
		return device.Vertex{Position: center.Add(n.Mul(inner)), Normal: n}
	}

	vertices := make([]device.Vertex, 0, 6*sides*rings)
	for r := 0; r < rings; r++ {
		for s := 0; s < sides; s++ {
			a, b, c, d := point(r, s), point(r+1, s), point(r+1, s+1), point(r, s+1)
			vertices = append(vertices, a, b, c, a, c, d)
		}
	}
	return NewModel(device.Triangles, vertices, WithName("torus"), WithBoundingRadius(outer+inner))
}

// Quad returns a w x h rectangle in the XY plane centered on the origin, facing +Z, with
// texture coordinates spanning [0, 1].
func Quad(w, h float32) Model {
	hw, hh := w*0.5, h*0.5
	n := common.ZAxis
	vertices := []device.Vertex{
		{Position: mgl32.Vec3{-hw, -hh, 0}, Normal: n, TexCoord: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec3{hw, -hh, 0}, Normal: n, TexCoord: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec3{hw, hh, 0}, Normal: n, TexCoord: mgl32.Vec2{1, 1}},
		{Position: mgl32.Vec3{-hw, hh, 0}, Normal: n, TexCoord: mgl32.Vec2{0, 1}},
	}
	return NewModel(device.Quads, vertices, WithName("quad"))
}

// Back returns the w x h backing of a Quad, offset to z and facing -Z.
func Back(w, h, z float32, color common.Color) Model {
	hw, hh := w*0.5, h*0.5
	n := common.ZAxis.Mul(-1)
	vertices := []device.Vertex{
		{Position: mgl32.Vec3{-hw, hh, z}, Normal: n},
		{Position: mgl32.Vec3{hw, hh, z}, Normal: n},
		{Position: mgl32.Vec3{hw, -hh, z}, Normal: n},
		{Position: mgl32.Vec3{-hw, -hh, z}, Normal: n},
	}
	return NewModel(device.Quads, vertices, WithName("back"), WithColor(color))
}

// Outline returns a line loop around a w x h rectangle grown by margin on every side, at z.
func Outline(w, h, margin, z float32, color common.Color) Model {
	hw, hh := w*0.5+margin, h*0.5+margin
	vertices := []device.Vertex{
		{Position: mgl32.Vec3{-hw, -hh, z}},
		{Position: mgl32.Vec3{hw, -hh, z}},
		{Position: mgl32.Vec3{hw, hh, z}},
		{Position: mgl32.Vec3{-hw, hh, z}},
	}
	return NewModel(device.LineLoop, vertices, WithName("outline"), WithColor(color))
}

// Axes returns three line segments from the origin: X in red, Y in green and Z in blue.
func Axes(length float32) Model {
	var vertices []device.Vertex
	for _, axis := range []struct {
		dir   mgl32.Vec3
		color common.Color
	}{
		{common.XAxis, common.ColorRed},
		{common.YAxis, common.ColorGreen},
		{common.ZAxis, common.ColorBlue},
	} {
		vertices = append(vertices,
			device.Vertex{Color: axis.color},
			device.Vertex{Position: axis.dir.Mul(length), Color: axis.color},
		)
	}
	return NewModel(device.Lines, vertices, WithName("axes"))
}
