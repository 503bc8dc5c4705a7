// Package spatialmath defines the rotation and rigid transform math used to express
// where a tracked space sits relative to a tracking origin.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

const radToDeg = 180 / math.Pi

// Quaternion is an Orientation expressed as a quaternion. The Real part is w.
type Quaternion quat.Number

// NewQuaternion returns a quaternion orientation from x, y, z, w components, the order
// device drivers report them in.
func NewQuaternion(x, y, z, w float64) *Quaternion {
	return &Quaternion{Real: w, Imag: x, Jmag: y, Kmag: z}
}

// Quaternion returns orientation in quaternion representation.
func (q *Quaternion) Quaternion() quat.Number {
	return quat.Number(*q)
}

// AxisAngles returns the orientation in axis angle representation.
func (q *Quaternion) AxisAngles() *R4AA {
	return QuatToR4AA(q.Quaternion())
}

// EulerAngles returns orientation in Euler angle representation.
func (q *Quaternion) EulerAngles() *EulerAngles {
	return QuatToEulerAngles(q.Quaternion())
}

// QuatNorm returns the euclidean length of all four components of q.
func QuatNorm(q quat.Number) float64 {
	return math.Sqrt(q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
}

// NormalizeQuat scales q to unit length. A zero-length quaternion has no direction to
// preserve and is returned unchanged, so the result is still the zero quaternion rather
// than a quaternion of NaNs.
func NormalizeQuat(q quat.Number) quat.Number {
	norm := QuatNorm(q)
	if norm == 0 {
		return q
	}
	return quat.Scale(1/norm, q)
}

// Norm returns the norm of the imaginary parts of the quaternion.
func Norm(q quat.Number) float64 {
	return math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
}

// Flip will multiply a quaternion by -1, returning a quaternion representing the same orientation but in the opposing octant.
func Flip(q quat.Number) quat.Number {
	return quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}

// QuaternionAlmostEqual is an equality test that reports whether two quaternions describe
// the same rotation within tol. q and -q are treated as equal.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	return quatComponentsAlmostEqual(a, b, tol) || quatComponentsAlmostEqual(a, Flip(b), tol)
}

func quatComponentsAlmostEqual(a, b quat.Number, tol float64) bool {
	return float64AlmostEqual(a.Real, b.Real, tol) &&
		float64AlmostEqual(a.Imag, b.Imag, tol) &&
		float64AlmostEqual(a.Jmag, b.Jmag, tol) &&
		float64AlmostEqual(a.Kmag, b.Kmag, tol)
}

// RotatePoint applies the rotation q to v by computing q*v*conj(q). q is expected to be a
// unit quaternion; the zero quaternion maps every vector to the origin.
func RotatePoint(q quat.Number, v r3.Vector) r3.Vector {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	rotated := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vector{X: rotated.Imag, Y: rotated.Jmag, Z: rotated.Kmag}
}

func float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}
