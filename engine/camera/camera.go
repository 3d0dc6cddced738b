package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/Carmen-Shannon/oxy-mirror/engine/device"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	position    mgl32.Vec3
	orientation mgl32.Quat

	fov    float32
	aspect float32
	near   float32
	far    float32
}

// Camera defines the interface for a perspective camera with a free orientation.
// The unrotated camera faces -Z with +Y up and +X to the right. Moves and turns are
// relative to the camera's own axes.
type Camera interface {
	// Position returns the eye position in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Position() mgl32.Vec3

	// SetPosition moves the eye to position.
	//
	// Parameters:
	//   - position: the new eye position in world space
	SetPosition(position mgl32.Vec3)

	// Orientation returns the rotation from camera space to world space.
	//
	// Returns:
	//   - mgl32.Quat: the unit orientation
	Orientation() mgl32.Quat

	// SetOrientation replaces the orientation. The quaternion is normalized.
	//
	// Parameters:
	//   - orientation: the new orientation
	SetOrientation(orientation mgl32.Quat)

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// SetFov sets the vertical field of view in radians.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// SetNear sets the near clipping plane distance.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// SetFar sets the far clipping plane distance.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// Reshape updates the aspect ratio for a viewport of w x h pixels. A zero height is ignored.
	//
	// Parameters:
	//   - w, h: the viewport size in pixels
	Reshape(w, h int)

	// Move translates the camera by distance expressed in camera space.
	//
	// Parameters:
	//   - distance: x right, y up, z backward
	Move(distance mgl32.Vec3)

	// Turn rotates the camera by angle radians about axis expressed in camera space.
	//
	// Parameters:
	//   - angle: rotation in radians, counter-clockwise looking down the axis
	//   - axis: the rotation axis in camera space
	Turn(angle float32, axis mgl32.Vec3)

	// Direction returns the unit view direction in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the camera's -Z axis
	Direction() mgl32.Vec3

	// Up returns the unit up vector in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the camera's +Y axis
	Up() mgl32.Vec3

	// Right returns the unit right vector in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the camera's +X axis
	Right() mgl32.Vec3

	// ViewMatrix returns the world-to-camera transform.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the perspective projection.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns ProjectionMatrix * ViewMatrix.
	//
	// Returns:
	//   - mgl32.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() mgl32.Mat4

	// Look loads the projection and view matrices into the device matrix stacks.
	//
	// Parameters:
	//   - dev: the device to load the matrices into
	Look(dev device.Device)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera at the origin facing -Z with a 60 degree field of view.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	return newCameraImpl(options...)
}

func newCameraImpl(options ...CameraBuilderOption) *cameraImpl {
	c := &cameraImpl{
		mu:          &sync.Mutex{},
		orientation: mgl32.QuatIdent(),
		fov:         mgl32.DegToRad(60),
		aspect:      1.0,
		near:        1.0,
		far:         1000.0,
	}
	for _, option := range options {
		option(c)
	}
	c.orientation = c.orientation.Normalize()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(position mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
}

func (c *cameraImpl) Orientation() mgl32.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orientation
}

func (c *cameraImpl) SetOrientation(orientation mgl32.Quat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orientation = orientation.Normalize()
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
}

func (c *cameraImpl) Reshape(w, h int) {
	if h <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = float32(w) / float32(h)
}

func (c *cameraImpl) Move(distance mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = c.position.Add(c.orientation.Rotate(distance))
}

func (c *cameraImpl) Turn(angle float32, axis mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orientation = c.orientation.Mul(mgl32.QuatRotate(angle, axis.Normalize())).Normalize()
}

// turnWorld rotates the camera about an axis fixed in world space.
func (c *cameraImpl) turnWorld(angle float32, axis mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orientation = mgl32.QuatRotate(angle, axis.Normalize()).Mul(c.orientation).Normalize()
}

func (c *cameraImpl) Direction() mgl32.Vec3 {
	return c.Orientation().Rotate(mgl32.Vec3{0, 0, -1})
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	return c.Orientation().Rotate(common.YAxis)
}

func (c *cameraImpl) Right() mgl32.Vec3 {
	return c.Orientation().Rotate(common.XAxis)
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix()
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix()
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix().Mul4(c.viewMatrix())
}

func (c *cameraImpl) Look(dev device.Device) {
	c.mu.Lock()
	proj, view := c.projectionMatrix(), c.viewMatrix()
	c.mu.Unlock()

	dev.LoadMatrix(device.Projection, proj)
	dev.LoadMatrix(device.ModelView, view)
}

// viewMatrix computes inverse(orientation) * translate(-position). Caller must hold the mutex.
func (c *cameraImpl) viewMatrix() mgl32.Mat4 {
	p := c.position
	return c.orientation.Conjugate().Mat4().Mul4(mgl32.Translate3D(-p[0], -p[1], -p[2]))
}

// projectionMatrix computes the perspective projection. Caller must hold the mutex.
func (c *cameraImpl) projectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
}
