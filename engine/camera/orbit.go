package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Orbit positions a camera on a sphere around a target point using spherical coordinates.
// Azimuth 0 places the camera on the +Z side of the target; elevation is measured up from
// the XZ plane.
type Orbit struct {
	mu *sync.Mutex

	target    mgl32.Vec3
	radius    float32
	azimuth   float32
	elevation float32

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed float32
	zoomSpeed  float32
	panSpeed   float32
}

// NewOrbit creates a new Orbit controller with default settings.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - *Orbit: the newly created controller
func NewOrbit(options ...OrbitBuilderOption) *Orbit {
	o := &Orbit{
		mu:           &sync.Mutex{},
		radius:       30,
		elevation:    math32.Pi / 6,
		minRadius:    2,
		maxRadius:    1000,
		minElevation: -math32.Pi/2 + 0.05,
		maxElevation: math32.Pi/2 - 0.05,
		orbitSpeed:   0.03,
		zoomSpeed:    1,
		panSpeed:     1,
	}
	for _, option := range options {
		option(o)
	}
	o.clamp()
	return o
}

// Target returns the point the camera orbits around.
func (o *Orbit) Target() mgl32.Vec3 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.target
}

// SetTarget moves the orbit center.
//
// Parameters:
//   - target: the new center in world space
func (o *Orbit) SetTarget(target mgl32.Vec3) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.target = target
}

// Radius returns the distance from the target to the eye.
func (o *Orbit) Radius() float32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.radius
}

// Azimuth returns the horizontal angle in radians.
func (o *Orbit) Azimuth() float32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.azimuth
}

// Elevation returns the vertical angle in radians.
func (o *Orbit) Elevation() float32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.elevation
}

// OrbitLeft moves the eye counter-clockwise around the target when seen from above.
func (o *Orbit) OrbitLeft() { o.rotate(-1, 0) }

// OrbitRight moves the eye clockwise around the target when seen from above.
func (o *Orbit) OrbitRight() { o.rotate(1, 0) }

// OrbitUp raises the eye toward the top of the sphere.
func (o *Orbit) OrbitUp() { o.rotate(0, 1) }

// OrbitDown lowers the eye toward the bottom of the sphere.
func (o *Orbit) OrbitDown() { o.rotate(0, -1) }

// Zoom moves the eye toward (positive steps) or away from (negative steps) the target.
//
// Parameters:
//   - steps: number of zoom increments, scaled by the zoom speed
func (o *Orbit) Zoom(steps float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.radius -= steps * o.zoomSpeed
	o.clamp()
}

// Pan slides the target within the horizontal plane, relative to the current azimuth.
//
// Parameters:
//   - right: distance along the view's right vector
//   - forward: distance along the view's horizontal forward vector
func (o *Orbit) Pan(right, forward float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	sin, cos := math32.Sin(o.azimuth), math32.Cos(o.azimuth)
	r := mgl32.Vec3{cos, 0, -sin}.Mul(right * o.panSpeed)
	f := mgl32.Vec3{-sin, 0, -cos}.Mul(forward * o.panSpeed)
	o.target = o.target.Add(r).Add(f)
}

// Eye returns the eye position derived from the target and spherical coordinates.
//
// Returns:
//   - mgl32.Vec3: the eye position in world space
func (o *Orbit) Eye() mgl32.Vec3 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.eye()
}

// Apply places cam on the orbit sphere facing the target.
//
// Parameters:
//   - cam: the camera to update
func (o *Orbit) Apply(cam Camera) {
	o.mu.Lock()
	eye := o.eye()
	orientation := common.YawPitchRoll(o.azimuth, -o.elevation, 0)
	o.mu.Unlock()

	cam.SetPosition(eye)
	cam.SetOrientation(orientation)
}

func (o *Orbit) rotate(azimuthSteps, elevationSteps float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.azimuth += azimuthSteps * o.orbitSpeed
	o.elevation += elevationSteps * o.orbitSpeed
	o.clamp()
}

// eye computes target + r * (cosE sinA, sinE, cosE cosA). Caller must hold the mutex.
func (o *Orbit) eye() mgl32.Vec3 {
	sinA, cosA := math32.Sin(o.azimuth), math32.Cos(o.azimuth)
	sinE, cosE := math32.Sin(o.elevation), math32.Cos(o.elevation)
	return o.target.Add(mgl32.Vec3{cosE * sinA, sinE, cosE * cosA}.Mul(o.radius))
}

func (o *Orbit) clamp() {
	o.radius = common.Clamp(o.radius, o.minRadius, o.maxRadius)
	o.elevation = common.Clamp(o.elevation, o.minElevation, o.maxElevation)
}
