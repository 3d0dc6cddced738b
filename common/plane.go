package common

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrNonUnitNormal is returned when a plane is built from a normal that is not unit length.
var ErrNonUnitNormal = errors.New("plane normal is not unit length")

// Plane represents an oriented plane in world space.
// A point P lies on the plane iff dot(Normal, P) == D. The positive half-space is the
// side Normal points toward.
type Plane struct {
	// Normal is the unit normal of the plane.
	Normal mgl32.Vec3
	// D is the signed offset of the plane from the origin along Normal.
	D float32
}

// MakePlane builds the plane through point with the given unit normal.
// The normal must be unit length; debug builds panic otherwise.
//
// Parameters:
//   - point: any point on the plane
//   - unitNormal: the plane normal, which must be unit length
//
// Returns:
//   - Plane: the plane with D = dot(unitNormal, point)
func MakePlane(point, unitNormal mgl32.Vec3) Plane {
	Assert(IsUnit(unitNormal), "MakePlane: normal %v has length %g", unitNormal, unitNormal.Len())
	return Plane{Normal: unitNormal, D: unitNormal.Dot(point)}
}

// Validate reports whether the plane normal is unit length.
//
// Returns:
//   - error: an error wrapping ErrNonUnitNormal, or nil
func (p Plane) Validate() error {
	if !IsUnit(p.Normal) {
		return fmt.Errorf("%w: |N| = %g", ErrNonUnitNormal, p.Normal.Len())
	}
	return nil
}

// SignedDistance returns dot(N, point) - D. It is zero on the plane and positive on the
// side the normal points toward.
//
// Parameters:
//   - point: the world-space point to measure
//
// Returns:
//   - float32: the signed distance
func (p Plane) SignedDistance(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) - p.D
}

// Project returns the orthogonal projection of point onto the plane.
//
// Parameters:
//   - point: the world-space point to project
//
// Returns:
//   - mgl32.Vec3: the closest point on the plane
func (p Plane) Project(point mgl32.Vec3) mgl32.Vec3 {
	return point.Sub(p.Normal.Mul(p.SignedDistance(point)))
}

// ReflectionMatrix returns the affine transform that maps any point to its mirror image
// across the plane: the 3x3 block is I - 2NNᵀ and the translation column is 2DN.
// The matrix is its own inverse and leaves points on the plane fixed.
//
// Returns:
//   - mgl32.Mat4: the column-major reflection matrix
func (p Plane) ReflectionMatrix() mgl32.Mat4 {
	n := p.Normal
	m := mgl32.Ident4()
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			m.Set(row, col, m.At(row, col)-2*n[row]*n[col])
		}
		m.Set(col, 3, 2*p.D*n[col])
	}
	return m
}

// Equation returns the plane as the (a, b, c, d) coefficients a fixed-function clip plane
// expects. Points with ax+by+cz+d >= 0 (the positive half-space) are kept.
//
// Returns:
//   - [4]float64: the clip plane equation
func (p Plane) Equation() [4]float64 {
	return [4]float64{float64(p.Normal[0]), float64(p.Normal[1]), float64(p.Normal[2]), float64(-p.D)}
}
