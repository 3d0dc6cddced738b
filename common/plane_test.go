package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func transformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], eps, "component %d of %v", i, got)
	}
}

// assertMat4 compares element-wise with an absolute tolerance.
func assertMat4(t *testing.T, want, got mgl32.Mat4) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], eps, "got %v", got)
}

// assertSameRotation treats q and -q as the same rotation.
func assertSameRotation(t *testing.T, want, got mgl32.Quat) {
	t.Helper()
	assert.InDelta(t, 1, mgl32.Abs(want.Normalize().Dot(got.Normalize())), 1e-5, "got %v", got)
}

func testPlanes() []Plane {
	return []Plane{
		MakePlane(mgl32.Vec3{0, 0, 0}, ZAxis),
		MakePlane(mgl32.Vec3{0, 0, 5}, ZAxis),
		MakePlane(mgl32.Vec3{10, 10, 10}, mgl32.Vec3{1, 1, 1}.Normalize()),
		MakePlane(mgl32.Vec3{-3, 2, 7}, mgl32.Vec3{0.3, -0.4, 0.866}.Normalize()),
		MakePlane(mgl32.Vec3{4, -1, 0}, mgl32.Vec3{0, -1, 0}),
	}
}

func TestMakePlane(t *testing.T) {
	p := MakePlane(mgl32.Vec3{1, 2, 5}, ZAxis)
	assert.Equal(t, ZAxis, p.Normal)
	assert.InDelta(t, 5, p.D, eps)
	assert.NoError(t, p.Validate())
}

func TestPlaneValidate(t *testing.T) {
	p := Plane{Normal: mgl32.Vec3{0, 0, 2}, D: 1}
	err := p.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonUnitNormal)
}

func TestSignedDistance(t *testing.T) {
	p := MakePlane(mgl32.Vec3{0, 0, 5}, ZAxis)

	tests := []struct {
		name  string
		point mgl32.Vec3
		want  float32
	}{
		{"on plane", mgl32.Vec3{3, -4, 5}, 0},
		{"front", mgl32.Vec3{0, 0, 30}, 25},
		{"behind", mgl32.Vec3{1, 1, 2}, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, p.SignedDistance(tt.point), eps)
		})
	}
}

func TestSignedDistanceZeroOnPlane(t *testing.T) {
	for _, p := range testPlanes() {
		onPlane := p.Normal.Mul(p.D)
		assert.InDelta(t, 0, p.SignedDistance(onPlane), eps)
	}
}

func TestProjectLiesOnPlane(t *testing.T) {
	points := []mgl32.Vec3{{0, 0, 0}, {10, 10, 30}, {-5, 8, 2}, {100, -50, 3}}
	for _, p := range testPlanes() {
		for _, pt := range points {
			proj := p.Project(pt)
			assert.InDelta(t, 0, p.SignedDistance(proj), eps)
			// The offset from the projection is parallel to the normal.
			offset := pt.Sub(proj)
			assert.InDelta(t, 0, offset.Cross(p.Normal).Len(), eps)
		}
	}
}

func TestReflectionMatrixScenario(t *testing.T) {
	p := MakePlane(mgl32.Vec3{}, ZAxis)
	got := transformPoint(p.ReflectionMatrix(), mgl32.Vec3{1, 2, 3})
	assertVec3(t, mgl32.Vec3{1, 2, -3}, got)

	offset := MakePlane(mgl32.Vec3{0, 0, 5}, ZAxis)
	got = transformPoint(offset.ReflectionMatrix(), mgl32.Vec3{1, 2, 3})
	assertVec3(t, mgl32.Vec3{1, 2, 7}, got)
}

func TestReflectionMatrixInvolution(t *testing.T) {
	for _, p := range testPlanes() {
		r := p.ReflectionMatrix()
		assertMat4(t, mgl32.Ident4(), r.Mul4(r))
	}
}

func TestReflectionMatrixFixesPlanePoints(t *testing.T) {
	for _, p := range testPlanes() {
		r := p.ReflectionMatrix()
		for _, pt := range []mgl32.Vec3{{0, 0, 0}, {7, -2, 4}, {-9, 3, 11}} {
			onPlane := p.Project(pt)
			assertVec3(t, onPlane, transformPoint(r, onPlane))
		}
	}
}

func TestReflectionMatrixNegatesDistance(t *testing.T) {
	for _, p := range testPlanes() {
		pt := mgl32.Vec3{3, 14, -6}
		mirrored := transformPoint(p.ReflectionMatrix(), pt)
		assert.InDelta(t, -p.SignedDistance(pt), p.SignedDistance(mirrored), eps)
	}
}

func TestEquationKeepsPositiveSide(t *testing.T) {
	p := MakePlane(mgl32.Vec3{0, 0, 5}, ZAxis)
	eq := p.Equation()
	assert.Equal(t, [4]float64{0, 0, 1, -5}, eq)

	eval := func(v mgl32.Vec3) float64 {
		return eq[0]*float64(v[0]) + eq[1]*float64(v[1]) + eq[2]*float64(v[2]) + eq[3]
	}
	assert.Greater(t, eval(mgl32.Vec3{0, 0, 6}), 0.0)
	assert.Less(t, eval(mgl32.Vec3{0, 0, 4}), 0.0)
}
