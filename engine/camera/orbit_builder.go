package camera

import "github.com/go-gl/mathgl/mgl32"

type OrbitBuilderOption func(*Orbit)

// WithTarget sets the orbit center.
//
// Parameters:
//   - target: the point to orbit around
//
// Returns:
//   - OrbitBuilderOption: a function that sets the target
func WithTarget(target mgl32.Vec3) OrbitBuilderOption {
	return func(o *Orbit) {
		o.target = target
	}
}

// WithRadius sets the initial distance from the target.
//
// Parameters:
//   - radius: distance from target to eye
//
// Returns:
//   - OrbitBuilderOption: a function that sets the radius
func WithRadius(radius float32) OrbitBuilderOption {
	return func(o *Orbit) {
		o.radius = radius
	}
}

// WithAzimuth sets the initial horizontal angle in radians.
//
// Parameters:
//   - azimuth: horizontal angle in radians
//
// Returns:
//   - OrbitBuilderOption: a function that sets the azimuth
func WithAzimuth(azimuth float32) OrbitBuilderOption {
	return func(o *Orbit) {
		o.azimuth = azimuth
	}
}

// WithElevation sets the initial vertical angle in radians.
//
// Parameters:
//   - elevation: vertical angle in radians
//
// Returns:
//   - OrbitBuilderOption: a function that sets the elevation
func WithElevation(elevation float32) OrbitBuilderOption {
	return func(o *Orbit) {
		o.elevation = elevation
	}
}

// WithRadiusBounds limits how close and how far the eye may be from the target.
//
// Parameters:
//   - minRadius: smallest allowed radius
//   - maxRadius: largest allowed radius
//
// Returns:
//   - OrbitBuilderOption: a function that sets the radius bounds
func WithRadiusBounds(minRadius, maxRadius float32) OrbitBuilderOption {
	return func(o *Orbit) {
		o.minRadius = minRadius
		o.maxRadius = maxRadius
	}
}

// WithElevationBounds limits the vertical angle in radians.
//
// Parameters:
//   - minElevation: lowest allowed elevation
//   - maxElevation: highest allowed elevation
//
// Returns:
//   - OrbitBuilderOption: a function that sets the elevation bounds
func WithElevationBounds(minElevation, maxElevation float32) OrbitBuilderOption {
	return func(o *Orbit) {
		o.minElevation = minElevation
		o.maxElevation = maxElevation
	}
}

// WithOrbitSpeed sets the angle in radians covered by one orbit step.
func WithOrbitSpeed(speed float32) OrbitBuilderOption {
	return func(o *Orbit) {
		o.orbitSpeed = speed
	}
}

// WithZoomSpeed sets the distance covered by one zoom step.
func WithZoomSpeed(speed float32) OrbitBuilderOption {
	return func(o *Orbit) {
		o.zoomSpeed = speed
	}
}

// WithPanSpeed scales Pan distances.
func WithPanSpeed(speed float32) OrbitBuilderOption {
	return func(o *Orbit) {
		o.panSpeed = speed
	}
}
