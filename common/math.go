package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// unitTolerance is how far |v|² may drift from 1 before a vector stops counting as unit length.
const unitTolerance = 1e-3

// Axis unit vectors.
var (
	XAxis = mgl32.Vec3{1, 0, 0}
	YAxis = mgl32.Vec3{0, 1, 0}
	ZAxis = mgl32.Vec3{0, 0, 1}
)

// IsUnit reports whether v is unit length within a small tolerance.
//
// Parameters:
//   - v: the vector to test
//
// Returns:
//   - bool: true if |v| is approximately 1
func IsUnit(v mgl32.Vec3) bool {
	return math32.Abs(v.LenSqr()-1) <= unitTolerance
}

// YawPitchRoll composes a rotation from yaw (about +Y), pitch (about +X) and roll (about +Z),
// applied in that order: Q = Qyaw * Qpitch * Qroll.
//
// Parameters:
//   - yaw, pitch, roll: rotation angles in radians
//
// Returns:
//   - mgl32.Quat: the composed unit quaternion
func YawPitchRoll(yaw, pitch, roll float32) mgl32.Quat {
	return mgl32.QuatRotate(yaw, YAxis).
		Mul(mgl32.QuatRotate(pitch, XAxis)).
		Mul(mgl32.QuatRotate(roll, ZAxis))
}

// RotationAxisAngle decomposes a rotation into a unit axis and an angle in radians.
// The identity rotation returns the X axis and an angle of zero.
//
// Parameters:
//   - q: the rotation to decompose
//
// Returns:
//   - axis: the unit rotation axis
//   - angle: the rotation angle in radians, in [0, 2π]
func RotationAxisAngle(q mgl32.Quat) (axis mgl32.Vec3, angle float32) {
	q = q.Normalize()
	w := Clamp(q.W, -1, 1)
	angle = 2 * math32.Acos(w)
	s := math32.Sqrt(1 - w*w)
	if s < 1e-6 {
		return XAxis, 0
	}
	return q.V.Mul(1 / s), angle
}

// ModelMatrix builds T * R * S from a position, a rotation and a per-axis scale.
//
// Parameters:
//   - position: translation in world space
//   - rotation: orientation quaternion
//   - scale: scale factors along each local axis
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func ModelMatrix(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(position[0], position[1], position[2]).
		Mul4(rotation.Mat4()).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// SpinRotation returns the orientation after elapsed seconds for an object spinning about
// X, Y and Z with the given periods (seconds per revolution; 0 disables an axis).
// The per-axis rotations compose as Rx * Ry * Rz.
//
// Parameters:
//   - periods: seconds per full revolution about X, Y and Z (sign sets direction)
//   - elapsed: seconds since the animation started
//
// Returns:
//   - mgl32.Quat: the orientation at elapsed
func SpinRotation(periods mgl32.Vec3, elapsed float32) mgl32.Quat {
	q := mgl32.QuatIdent()
	axes := [3]mgl32.Vec3{XAxis, YAxis, ZAxis}
	for i, period := range periods {
		if period == 0 {
			continue
		}
		q = q.Mul(mgl32.QuatRotate(2*math32.Pi/period*elapsed, axes[i]))
	}
	return q
}
