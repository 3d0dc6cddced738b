package model

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/Carmen-Shannon/oxy-mirror/engine/device"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertOutwardTriangles checks that every triangle winds counter-clockwise seen from
// outside, taking "outside" as away from center.
func assertOutwardTriangles(t *testing.T, vertices []device.Vertex, center func(mgl32.Vec3) mgl32.Vec3) {
	t.Helper()
	require.Zero(t, len(vertices)%3)
	for i := 0; i < len(vertices); i += 3 {
		a, b, c := vertices[i].Position, vertices[i+1].Position, vertices[i+2].Position
		n := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Mul(1.0 / 3)
		assert.Greater(t, n.Dot(centroid.Sub(center(centroid))), float32(0), "triangle %d", i/3)
	}
}

func origin(mgl32.Vec3) mgl32.Vec3 { return mgl32.Vec3{} }

func TestShapeCounts(t *testing.T) {
	tests := []struct {
		name      string
		model     Model
		primitive device.Primitive
		count     int
	}{
		{"cube", Cube(1), device.Quads, 24},
		{"tetrahedron", Tetrahedron(1), device.Triangles, 12},
		{"sphere", Sphere(0.5, 8, 4), device.Triangles, 144},
		{"torus", Torus(0.2, 0.5, 6, 10), device.Triangles, 360},
		{"quad", Quad(20, 20), device.Quads, 4},
		{"back", Back(20, 20, -0.01, common.ColorBlack), device.Quads, 4},
		{"outline", Outline(20, 20, 0.1, -0.01, common.ColorRed), device.LineLoop, 4},
		{"axes", Axes(5), device.Lines, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.model.Name())
			assert.Equal(t, tt.primitive, tt.model.Primitive())
			assert.Equal(t, tt.count, tt.model.VertexCount())
		})
	}
}

func TestCubeFacesPointOutward(t *testing.T) {
	v := Cube(2).Vertices()
	for i := 0; i < len(v); i += 4 {
		n := v[i+1].Position.Sub(v[i].Position).Cross(v[i+2].Position.Sub(v[i].Position))
		want := n.Normalize()
		assert.InDeltaSlice(t, want[:], v[i].Normal[:], 1e-5, "face %d", i/4)
		assert.InDelta(t, 1, v[i].Position.Dot(v[i].Normal), 1e-5)
	}
	assert.InDelta(t, 1.7320508, Cube(2).BoundingRadius(), 1e-5)
}

func TestClosedMeshesWindOutward(t *testing.T) {
	assertOutwardTriangles(t, Tetrahedron(1).Vertices(), origin)
	assertOutwardTriangles(t, Sphere(1, 12, 6).Vertices(), origin)

	const outer = 0.5
	tubeCenter := func(p mgl32.Vec3) mgl32.Vec3 {
		ring := mgl32.Vec3{p[0], p[1], 0}
		return ring.Normalize().Mul(outer)
	}
	assertOutwardTriangles(t, Torus(0.2, outer, 8, 12).Vertices(), tubeCenter)
}

func TestSphereVerticesOnSurface(t *testing.T) {
	m := Sphere(2, 10, 5)
	for _, v := range m.Vertices() {
		assert.InDelta(t, 2, v.Position.Len(), 1e-4)
		assert.InDelta(t, 1, v.Normal.Len(), 1e-4)
	}
	assert.Equal(t, float32(2), m.BoundingRadius())
}

func TestTetrahedronRadius(t *testing.T) {
	for _, v := range Tetrahedron(1).Vertices() {
		assert.InDelta(t, 1, v.Position.Len(), 1e-5)
	}
}

func TestQuadLayout(t *testing.T) {
	v := Quad(20, 10).Vertices()
	assert.Equal(t, mgl32.Vec3{-10, -5, 0}, v[0].Position)
	assert.Equal(t, mgl32.Vec2{0, 0}, v[0].TexCoord)
	assert.Equal(t, mgl32.Vec3{10, 5, 0}, v[2].Position)
	assert.Equal(t, mgl32.Vec2{1, 1}, v[2].TexCoord)
	for _, vert := range v {
		assert.Equal(t, common.ZAxis, vert.Normal)
	}
}

func TestOutlineAndBack(t *testing.T) {
	outline := Outline(20, 20, 0.1, -0.01, common.ColorRed).Vertices()
	assert.InDelta(t, -10.1, outline[0].Position[0], 1e-5)
	assert.InDelta(t, -0.01, outline[0].Position[2], 1e-6)
	assert.Equal(t, common.ColorRed, outline[0].Color)

	back := Back(20, 20, -0.01, common.ColorBlack).Vertices()
	n := back[1].Position.Sub(back[0].Position).Cross(back[2].Position.Sub(back[0].Position))
	assert.Less(t, n[2], float32(0))
	assert.Equal(t, common.ColorBlack, back[3].Color)
}

func TestModelDraw(t *testing.T) {
	dev := device.NewStateDevice(1, 1)
	Axes(1).Draw(dev)
	NewModel(device.Triangles, nil).Draw(dev)

	require.Len(t, dev.Draws(), 1)
	assert.Equal(t, device.Lines, dev.Draws()[0].Primitive)
	assert.Equal(t, 6, dev.Draws()[0].VertexCount)
}
