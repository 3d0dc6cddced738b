package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestIsUnit(t *testing.T) {
	assert.True(t, IsUnit(XAxis))
	assert.True(t, IsUnit(mgl32.Vec3{1, 1, 1}.Normalize()))
	assert.False(t, IsUnit(mgl32.Vec3{1, 1, 1}))
	assert.False(t, IsUnit(mgl32.Vec3{}))
}

func TestYawPitchRoll(t *testing.T) {
	forward := mgl32.Vec3{0, 0, -1}
	up := YAxis

	tests := []struct {
		name             string
		yaw, pitch, roll float32
		wantForward      mgl32.Vec3
		wantUp           mgl32.Vec3
	}{
		{"identity", 0, 0, 0, forward, up},
		{"yaw left", 90, 0, 0, mgl32.Vec3{-1, 0, 0}, up},
		{"pitch up", 0, 90, 0, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
		{"roll", 0, 0, 90, forward, mgl32.Vec3{-1, 0, 0}},
		{"yaw then pitch", 90, 90, 0, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := YawPitchRoll(mgl32.DegToRad(tt.yaw), mgl32.DegToRad(tt.pitch), mgl32.DegToRad(tt.roll))
			assertVec3(t, tt.wantForward, q.Rotate(forward))
			assertVec3(t, tt.wantUp, q.Rotate(up))
		})
	}
}

func TestRotationAxisAngle(t *testing.T) {
	axis, angle := RotationAxisAngle(mgl32.QuatRotate(1.2, YAxis))
	assertVec3(t, YAxis, axis)
	assert.InDelta(t, 1.2, angle, eps)

	axis, angle = RotationAxisAngle(mgl32.QuatIdent())
	assert.Equal(t, XAxis, axis)
	assert.Zero(t, angle)
}

func TestModelMatrix(t *testing.T) {
	m := ModelMatrix(mgl32.Vec3{1, 2, 3}, mgl32.QuatRotate(mgl32.DegToRad(90), ZAxis), mgl32.Vec3{2, 2, 2})
	assertVec3(t, mgl32.Vec3{1, 4, 3}, transformPoint(m, XAxis))
}

func TestSpinRotation(t *testing.T) {
	q := SpinRotation(mgl32.Vec3{4, 0, 0}, 1)
	assertVec3(t, ZAxis, q.Rotate(YAxis))

	assertSameRotation(t, mgl32.QuatIdent(), SpinRotation(mgl32.Vec3{}, 10))

	// A negative period spins the other way.
	q = SpinRotation(mgl32.Vec3{0, 0, -4}, 1)
	assertVec3(t, mgl32.Vec3{0, -1, 0}, q.Rotate(XAxis))
}

func TestClampAndCoalesce(t *testing.T) {
	assert.Equal(t, float32(1), Clamp[float32](1.5, 0, 1))
	assert.Equal(t, float32(0), Clamp[float32](-0.2, 0, 1))
	assert.Equal(t, 3, Clamp(3, 0, 5))
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}

func TestTextureDescriptorValidate(t *testing.T) {
	assert.NoError(t, TextureDescriptor{Width: 256, Height: 256}.Validate())
	assert.ErrorIs(t, TextureDescriptor{Width: 0, Height: 256}.Validate(), ErrInvalidTextureSize)
	assert.ErrorIs(t, TextureDescriptor{Width: 2, Height: 2, Pixels: make([]byte, 4)}.Validate(), ErrInvalidTextureSize)
	assert.NoError(t, TextureDescriptor{Width: 2, Height: 2, Format: TextureFormatRGBA, Pixels: make([]byte, 16)}.Validate())
}
