package spatialmath

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose represents a 6dof rigid transform: a rotation followed by a translation. Applied to a
// point it first rotates, then translates. Poses are immutable values.
type Pose interface {
	// Point returns the translation of the transform.
	Point() r3.Vector
	// Orientation returns the rotation of the transform.
	Orientation() Orientation
}

// rigidTransform keeps the rotation and translation apart rather than packing them into a
// dual quaternion. Decoded device poses may carry a zero rotation quaternion, and a dual
// quaternion with a zero real part cannot hold a translation.
type rigidTransform struct {
	rotation    quat.Number
	translation r3.Vector
}

// NewZeroPose returns a pose at (0,0,0) with no rotation.
func NewZeroPose() Pose {
	return &rigidTransform{rotation: quat.Number{Real: 1}}
}

// NewPose takes in a translation and an orientation and returns a Pose. The orientation's
// quaternion is used exactly as given; callers normalize beforehand if required.
func NewPose(p r3.Vector, o Orientation) Pose {
	if o == nil {
		return NewPoseFromPoint(p)
	}
	return &rigidTransform{rotation: o.Quaternion(), translation: p}
}

// NewPoseFromPoint takes in a translation and returns a Pose with no rotation.
func NewPoseFromPoint(p r3.Vector) Pose {
	return &rigidTransform{rotation: quat.Number{Real: 1}, translation: p}
}

// NewPoseFromOrientation takes in an orientation and returns a Pose at the origin.
func NewPoseFromOrientation(o Orientation) Pose {
	return NewPose(r3.Vector{}, o)
}

func (rt *rigidTransform) Point() r3.Vector {
	return rt.translation
}

func (rt *rigidTransform) Orientation() Orientation {
	q := Quaternion(rt.rotation)
	return &q
}

func (rt *rigidTransform) String() string {
	return fmt.Sprintf(
		"{X:%.3f Y:%.3f Z:%.3f QX:%.4f QY:%.4f QZ:%.4f QW:%.4f}",
		rt.translation.X, rt.translation.Y, rt.translation.Z,
		rt.rotation.Imag, rt.rotation.Jmag, rt.rotation.Kmag, rt.rotation.Real,
	)
}

// TransformPoint applies p to pt: pt is rotated by p's orientation then translated by p's point.
func TransformPoint(p Pose, pt r3.Vector) r3.Vector {
	return RotatePoint(p.Orientation().Quaternion(), pt).Add(p.Point())
}

// Compose returns the transform that applies b and then a, i.e. a*b. If b describes a frame
// relative to a, the result describes that same frame relative to a's parent.
func Compose(a, b Pose) Pose {
	qa := a.Orientation().Quaternion()
	return &rigidTransform{
		rotation:    quat.Mul(qa, b.Orientation().Quaternion()),
		translation: RotatePoint(qa, b.Point()).Add(a.Point()),
	}
}

// PoseInverse returns the transform that undoes p. p's rotation is expected to be a unit
// quaternion.
func PoseInverse(p Pose) Pose {
	inv := quat.Conj(p.Orientation().Quaternion())
	return &rigidTransform{
		rotation:    inv,
		translation: RotatePoint(inv, p.Point()).Mul(-1),
	}
}

// PoseBetween returns the pose of b expressed in the frame of a, such that Compose(a, result) == b.
func PoseBetween(a, b Pose) Pose {
	return Compose(PoseInverse(a), b)
}

// PoseAlmostEqual will return a bool describing whether 2 poses are approximately the same.
func PoseAlmostEqual(a, b Pose) bool {
	return PoseAlmostEqualEps(a, b, 1e-8)
}

// PoseAlmostEqualEps will return a bool describing whether 2 poses are approximately the same
// within the given epsilon.
func PoseAlmostEqualEps(a, b Pose, epsilon float64) bool {
	pa, pb := a.Point(), b.Point()
	return float64AlmostEqual(pa.X, pb.X, epsilon) &&
		float64AlmostEqual(pa.Y, pb.Y, epsilon) &&
		float64AlmostEqual(pa.Z, pb.Z, epsilon) &&
		QuaternionAlmostEqual(a.Orientation().Quaternion(), b.Orientation().Quaternion(), epsilon)
}

// PoseToMatrix returns the homogeneous 4x4 matrix of p in column-major order. The rotation
// columns are the images of the unit axes so that the matrix agrees with TransformPoint even
// when the rotation quaternion is degenerate.
func PoseToMatrix(p Pose) mgl64.Mat4 {
	q := p.Orientation().Quaternion()
	col := func(v r3.Vector, w float64) mgl64.Vec4 {
		return mgl64.Vec4{v.X, v.Y, v.Z, w}
	}
	return mgl64.Mat4FromCols(
		col(RotatePoint(q, r3.Vector{X: 1}), 0),
		col(RotatePoint(q, r3.Vector{Y: 1}), 0),
		col(RotatePoint(q, r3.Vector{Z: 1}), 0),
		col(p.Point(), 1),
	)
}
