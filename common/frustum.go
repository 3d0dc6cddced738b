package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that the positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustumFromMatrix extracts frustum planes from a view-projection matrix.
// The matrix should be the combined Projection * View matrix (OpenGL clip space).
// Uses the Gribb/Hartmann method for plane extraction.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the column-major view-projection matrix
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustumFromMatrix(viewProj mgl32.Mat4) Frustum {
	var f Frustum

	r0, r1, r2, r3 := viewProj.Rows()

	f.setPlane(FrustumLeft, r3.Add(r0))
	f.setPlane(FrustumRight, r3.Sub(r0))
	f.setPlane(FrustumBottom, r3.Add(r1))
	f.setPlane(FrustumTop, r3.Sub(r1))
	f.setPlane(FrustumNear, r3.Add(r2))
	f.setPlane(FrustumFar, r3.Sub(r2))

	return f
}

// setPlane stores the (a, b, c, d) row combination as a normalized Plane.
// ax+by+cz+d >= 0 inside maps to dot(N, P) >= -d, so D = -d.
func (f *Frustum) setPlane(index int, eq mgl32.Vec4) {
	n := eq.Vec3()
	length := math32.Sqrt(n.Dot(n))
	if length > 0 {
		invLen := 1.0 / length
		f.Planes[index] = Plane{Normal: n.Mul(invLen), D: -eq[3] * invLen}
		return
	}
	f.Planes[index] = Plane{Normal: n, D: -eq[3]}
}

// ContainsPoint reports whether point lies inside (or on the boundary of) all six planes.
//
// Parameters:
//   - point: the world-space point to test
//
// Returns:
//   - bool: true if the point is inside the frustum
func (f Frustum) ContainsPoint(point mgl32.Vec3) bool {
	for _, p := range f.Planes {
		if p.SignedDistance(point) < 0 {
			return false
		}
	}
	return true
}

// IntersectsPoints conservatively tests the convex hull of points against the frustum.
// It returns false only when every point lies outside the same plane.
//
// Parameters:
//   - points: the corners of the shape to test
//
// Returns:
//   - bool: false if the shape is certainly outside the frustum
func (f Frustum) IntersectsPoints(points ...mgl32.Vec3) bool {
	if len(points) == 0 {
		return false
	}
	for _, p := range f.Planes {
		outside := true
		for _, pt := range points {
			if p.SignedDistance(pt) >= 0 {
				outside = false
				break
			}
		}
		if outside {
			return false
		}
	}
	return true
}
