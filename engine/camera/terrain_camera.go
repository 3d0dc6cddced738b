package camera

import (
	"github.com/Carmen-Shannon/oxy-mirror/common"
)

type terrainCameraImpl struct {
	*cameraImpl
}

// TerrainCamera is a Camera with flight controls. Yaw turns about the world Y axis so the
// horizon stays level; Pitch and Roll turn about the camera's own X and Z axes.
type TerrainCamera interface {
	Camera

	// Yaw turns the camera left (positive) or right (negative) about world +Y.
	//
	// Parameters:
	//   - angle: rotation in radians
	Yaw(angle float32)

	// Pitch tilts the camera up (positive) or down (negative) about its +X axis.
	//
	// Parameters:
	//   - angle: rotation in radians
	Pitch(angle float32)

	// Roll banks the camera counter-clockwise (positive) or clockwise (negative) about its +Z axis.
	//
	// Parameters:
	//   - angle: rotation in radians
	Roll(angle float32)
}

var _ TerrainCamera = &terrainCameraImpl{}

// NewTerrainCamera creates a TerrainCamera whose initial orientation applies yaw, pitch and
// roll in that order to the unrotated camera. Options are applied first, and the
// yaw/pitch/roll orientation replaces any orientation they set.
//
// Parameters:
//   - yaw, pitch, roll: the initial angles in radians
//   - options: functional options to configure the camera
//
// Returns:
//   - TerrainCamera: the newly created camera
func NewTerrainCamera(yaw, pitch, roll float32, options ...CameraBuilderOption) TerrainCamera {
	c := newCameraImpl(options...)
	c.orientation = common.YawPitchRoll(yaw, pitch, roll)
	return &terrainCameraImpl{cameraImpl: c}
}

func (t *terrainCameraImpl) Yaw(angle float32) {
	t.turnWorld(angle, common.YAxis)
}

func (t *terrainCameraImpl) Pitch(angle float32) {
	t.Turn(angle, common.XAxis)
}

func (t *terrainCameraImpl) Roll(angle float32) {
	t.Turn(angle, common.ZAxis)
}
