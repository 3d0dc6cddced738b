package reflection

import (
	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/go-gl/mathgl/mgl32"
)

// FrustumBounds are the arguments of an off-axis perspective frustum. Left, Right, Bottom
// and Top are measured on the near plane.
type FrustumBounds struct {
	Left, Right, Bottom, Top, Near, Far float32
}

// Matrix returns the projection matrix for the bounds.
func (b FrustumBounds) Matrix() mgl32.Mat4 {
	return mgl32.Frustum(b.Left, b.Right, b.Bottom, b.Top, b.Near, b.Far)
}

// MirrorOffset returns the offset from the camera's projection onto the plane to the mirror
// center, expressed in the mirror's local axes.
//
// Parameters:
//   - plane: the mirror plane
//   - mirrorPos: the mirror center in world space
//   - orientation: the mirror orientation; its local +Z is the plane normal
//   - cameraPos: the camera position in world space
//
// Returns:
//   - mgl32.Vec3: the offset in mirror space; Z is zero up to rounding
func MirrorOffset(plane common.Plane, mirrorPos mgl32.Vec3, orientation mgl32.Quat, cameraPos mgl32.Vec3) mgl32.Vec3 {
	return orientation.Inverse().Rotate(mirrorPos.Sub(plane.Project(cameraPos)))
}

// OffAxisBounds returns the frustum that looks from the camera, along the mirror's -Z, through
// a w x h mirror whose center is offset from the camera's foot point on the plane.
//
// Parameters:
//   - offset: the result of MirrorOffset
//   - w, h: the mirror size in world units
//   - distance: the camera's signed distance to the plane
//   - near, far: the camera's clip distances
//
// Returns:
//   - FrustumBounds: the bounds, with Near = max(distance, near)
func OffAxisBounds(offset mgl32.Vec3, w, h, distance, near, far float32) FrustumBounds {
	return FrustumBounds{
		Left:   offset[0] - w*0.5,
		Right:  offset[0] + w*0.5,
		Bottom: offset[1] - h*0.5,
		Top:    offset[1] + h*0.5,
		Near:   max(distance, near),
		Far:    far,
	}
}

// ReflectedView returns the model-view matrix used while capturing a mirror: the world is
// reflected across the plane, moved so the camera is at the origin and rotated into the
// mirror's axes.
//
// Parameters:
//   - plane: the mirror plane
//   - orientation: the mirror orientation
//   - cameraPos: the camera position in world space
//
// Returns:
//   - mgl32.Mat4: inverse(orientation) * translate(-cameraPos) * reflection
func ReflectedView(plane common.Plane, orientation mgl32.Quat, cameraPos mgl32.Vec3) mgl32.Mat4 {
	return orientation.Inverse().Mat4().
		Mul4(mgl32.Translate3D(-cameraPos[0], -cameraPos[1], -cameraPos[2])).
		Mul4(plane.ReflectionMatrix())
}
