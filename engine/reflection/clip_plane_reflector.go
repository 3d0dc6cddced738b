package reflection

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/Carmen-Shannon/oxy-mirror/engine/device"
	"github.com/go-gl/mathgl/mgl32"
)

// ClipPlaneReflector draws the reflected scene directly into the framebuffer. While active,
// the model-view matrix is post-multiplied by the plane's reflection, a user clip plane
// discards everything behind the plane and front faces wind clockwise.
type ClipPlaneReflector struct {
	dev       device.Device
	plane     common.Plane
	clipIndex int
	state     State
	logger    *slog.Logger

	savedWinding     device.Winding
	savedClipEnabled bool
}

var _ Reflector = &ClipPlaneReflector{}

// NewClipPlaneReflector creates a reflector for the plane through position with the given
// normal. The reflection is visible from the side the normal points toward.
//
// Parameters:
//   - dev: the device the reflection is drawn on
//   - position: any point on the plane
//   - normal: the unit plane normal
//   - options: variadic list of ClipPlaneReflectorBuilderOption functions
//
// Returns:
//   - *ClipPlaneReflector: the reflector, idle
//   - error: error wrapping common.ErrNonUnitNormal, or an invalid clip plane index
func NewClipPlaneReflector(dev device.Device, position, normal mgl32.Vec3, options ...ClipPlaneReflectorBuilderOption) (*ClipPlaneReflector, error) {
	r := &ClipPlaneReflector{
		dev:    dev,
		logger: slog.Default(),
	}
	for _, opt := range options {
		opt(r)
	}
	if r.clipIndex < 0 || r.clipIndex >= device.MaxClipPlanes {
		return nil, fmt.Errorf("clip plane index %d out of range [0, %d)", r.clipIndex, device.MaxClipPlanes)
	}
	if err := r.SetPlane(common.Plane{Normal: normal, D: normal.Dot(position)}); err != nil {
		return nil, err
	}
	return r, nil
}

// SetPlane replaces the reflecting plane. It takes effect at the next Begin.
//
// Parameters:
//   - plane: the new plane
//
// Returns:
//   - error: error wrapping common.ErrNonUnitNormal
func (r *ClipPlaneReflector) SetPlane(plane common.Plane) error {
	if err := plane.Validate(); err != nil {
		return err
	}
	r.plane = plane
	return nil
}

func (r *ClipPlaneReflector) Plane() common.Plane {
	return r.plane
}

func (r *ClipPlaneReflector) State() State {
	return r.state
}

func (r *ClipPlaneReflector) IsReflecting() bool {
	return r.state == StateReflecting
}

// Begin starts the reflection pass when the viewer is strictly in front of the plane.
func (r *ClipPlaneReflector) Begin(viewer Viewer) bool {
	if r.state != StateIdle {
		common.Assert(false, "ClipPlaneReflector.Begin called while %s", r.state)
		return true
	}

	distance := r.plane.SignedDistance(viewer.Position())
	if distance <= 0 {
		r.logger.Debug("reflection skipped", "component", "ClipPlaneReflector", "distance", distance)
		return false
	}

	r.savedWinding = r.dev.FrontFace()
	r.savedClipEnabled = r.dev.ClipPlaneEnabled(r.clipIndex)

	r.dev.PushMatrix(device.ModelView)
	r.dev.MultMatrix(device.ModelView, r.plane.ReflectionMatrix())
	// Specified under the reflected model-view so it clips in world coordinates.
	r.dev.SetClipPlane(r.clipIndex, r.plane)
	r.dev.EnableClipPlane(r.clipIndex, true)
	r.dev.SetFrontFace(r.savedWinding.Opposite())

	r.state = StateReflecting
	return true
}

// End finishes the pass: the clip plane enable and the winding go back to their values
// before Begin, the depth buffer is cleared with depth writes enabled and the model-view
// is restored.
func (r *ClipPlaneReflector) End() {
	if r.state != StateReflecting {
		return
	}

	r.dev.EnableClipPlane(r.clipIndex, r.savedClipEnabled)
	r.dev.SetDepthMask(true)
	r.dev.ClearDepth()
	r.dev.PopMatrix(device.ModelView)
	r.dev.SetFrontFace(r.savedWinding)

	r.state = StateIdle
}
