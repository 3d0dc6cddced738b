// Package reflection renders planar reflections on a fixed-function device.
//
// A Reflector brackets a pass that draws the scene mirrored across a plane:
//
//	if r.Begin(camera) {
//		drawScene()
//	}
//	r.End()
//
// ClipPlaneReflector draws the mirrored scene straight into the framebuffer, clipped to
// the space in front of the plane, to be blended under a translucent surface. Mirror
// renders the mirrored scene from an off-axis frustum through a rectangular quad and copies
// it into a texture that the quad is drawn with.
package reflection

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrCaptureTarget is returned when a Mirror cannot allocate its capture texture.
var ErrCaptureTarget = errors.New("failed to allocate reflection capture texture")

// State is the lifecycle state of a Reflector.
type State int

const (
	// StateIdle is the state outside a reflection pass.
	StateIdle State = iota
	// StateReflecting is a ClipPlaneReflector pass in progress.
	StateReflecting
	// StateCapturing is a Mirror pass in progress.
	StateCapturing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReflecting:
		return "reflecting"
	case StateCapturing:
		return "capturing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Viewer is the camera a reflection is rendered for.
type Viewer interface {
	// Position returns the eye position in world space.
	Position() mgl32.Vec3
	// Near returns the near clip distance.
	Near() float32
	// Far returns the far clip distance.
	Far() float32
}

// frustumViewer is implemented by viewers that can report their view-projection matrix,
// which Mirror uses to skip captures of an off-screen quad.
type frustumViewer interface {
	ViewProjectionMatrix() mgl32.Mat4
}

// Reflector renders the reflection of a scene across a plane.
type Reflector interface {
	// Begin prepares the device for drawing the reflected scene as seen by viewer. It returns
	// false, leaving the device untouched, when the viewer cannot see the reflection.
	Begin(viewer Viewer) bool
	// End restores the device state changed by Begin. It does nothing when no pass is active.
	End()
	// State returns the current lifecycle state.
	State() State
	// IsReflecting reports whether a pass is active.
	IsReflecting() bool
	// Plane returns the reflecting plane in world space.
	Plane() common.Plane
}
