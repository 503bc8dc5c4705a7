package spatialmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

var rot90z = NewQuaternion(0, 0, math.Sin(math.Pi/4), math.Cos(math.Pi/4))

func vectorShouldAlmostEqual(t *testing.T, actual, expected r3.Vector) {
	t.Helper()
	test.That(t, actual.X, test.ShouldAlmostEqual, expected.X)
	test.That(t, actual.Y, test.ShouldAlmostEqual, expected.Y)
	test.That(t, actual.Z, test.ShouldAlmostEqual, expected.Z)
}

func TestTransformPoint(t *testing.T) {
	t.Run("identity rotation only translates", func(t *testing.T) {
		p := NewPoseFromPoint(r3.Vector{X: 1, Y: 2, Z: 3})
		vectorShouldAlmostEqual(t, TransformPoint(p, r3.Vector{}), r3.Vector{X: 1, Y: 2, Z: 3})
		vectorShouldAlmostEqual(t, TransformPoint(p, r3.Vector{X: 1}), r3.Vector{X: 2, Y: 2, Z: 3})
	})

	t.Run("rotation before translation", func(t *testing.T) {
		p := NewPose(r3.Vector{X: 10}, rot90z)
		vectorShouldAlmostEqual(t, TransformPoint(p, r3.Vector{X: 1}), r3.Vector{X: 10, Y: 1})
	})

	t.Run("zero rotation collapses onto translation", func(t *testing.T) {
		p := NewPose(r3.Vector{X: 4, Y: 5, Z: 6}, &Quaternion{})
		vectorShouldAlmostEqual(t, TransformPoint(p, r3.Vector{X: 7, Y: -2, Z: 1}), r3.Vector{X: 4, Y: 5, Z: 6})
	})
}

func TestCompose(t *testing.T) {
	a := NewPose(r3.Vector{X: 1, Y: 2, Z: 3}, rot90z)
	b := NewPose(r3.Vector{X: 1}, &R4AA{Theta: math.Pi / 2, RX: 1})
	pt := r3.Vector{X: 0.5, Y: -1, Z: 2}

	composed := Compose(a, b)
	vectorShouldAlmostEqual(t, TransformPoint(composed, pt), TransformPoint(a, TransformPoint(b, pt)))

	test.That(t, PoseAlmostEqual(Compose(a, NewZeroPose()), a), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(Compose(NewZeroPose(), a), a), test.ShouldBeTrue)
}

func TestPoseInverse(t *testing.T) {
	p := NewPose(r3.Vector{X: 1, Y: 2, Z: 3}, &EulerAngles{Roll: 0.3, Pitch: -0.2, Yaw: 1.1})
	test.That(t, PoseAlmostEqual(Compose(p, PoseInverse(p)), NewZeroPose()), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(Compose(PoseInverse(p), p), NewZeroPose()), test.ShouldBeTrue)

	pt := r3.Vector{X: -4, Y: 0.25, Z: 9}
	vectorShouldAlmostEqual(t, TransformPoint(PoseInverse(p), TransformPoint(p, pt)), pt)
}

func TestPoseBetween(t *testing.T) {
	a := NewPose(r3.Vector{X: 1}, rot90z)
	b := NewPose(r3.Vector{Y: 5, Z: -1}, &R4AA{Theta: 1.2, RX: 1, RY: 1})
	between := PoseBetween(a, b)
	test.That(t, PoseAlmostEqual(Compose(a, between), b), test.ShouldBeTrue)
}

func TestPoseAlmostEqual(t *testing.T) {
	q := rot90z.Quaternion()
	p := NewPose(r3.Vector{X: 1}, rot90z)
	flipped := Quaternion(Flip(q))
	test.That(t, PoseAlmostEqual(p, NewPose(r3.Vector{X: 1}, &flipped)), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(p, NewPose(r3.Vector{X: 1.001}, rot90z)), test.ShouldBeFalse)
	test.That(t, PoseAlmostEqualEps(p, NewPose(r3.Vector{X: 1.001}, rot90z), 1e-2), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(p, NewPoseFromPoint(r3.Vector{X: 1})), test.ShouldBeFalse)
}

func TestNewPose(t *testing.T) {
	p := NewPose(r3.Vector{X: 1}, nil)
	test.That(t, p.Orientation().Quaternion(), test.ShouldResemble, quat.Number{Real: 1})
	test.That(t, NewPoseFromOrientation(rot90z).Point(), test.ShouldResemble, r3.Vector{})
	test.That(t, NewZeroPose().Point(), test.ShouldResemble, r3.Vector{})
}

func TestPoseToMatrix(t *testing.T) {
	p := NewPose(r3.Vector{X: 1, Y: 2, Z: 3}, rot90z)
	m := PoseToMatrix(p)

	out := m.Mul4x1(mgl64.Vec4{1, 0, 0, 1})
	test.That(t, out.X(), test.ShouldAlmostEqual, 1)
	test.That(t, out.Y(), test.ShouldAlmostEqual, 3)
	test.That(t, out.Z(), test.ShouldAlmostEqual, 3)
	test.That(t, out.W(), test.ShouldAlmostEqual, 1)

	// column-major: translation lives in the last column
	test.That(t, m.At(0, 3), test.ShouldAlmostEqual, 1)
	test.That(t, m.At(1, 3), test.ShouldAlmostEqual, 2)
	test.That(t, m.At(2, 3), test.ShouldAlmostEqual, 3)

	degenerate := PoseToMatrix(NewPose(r3.Vector{X: 1}, &Quaternion{}))
	test.That(t, degenerate.At(0, 0), test.ShouldEqual, 0)
	test.That(t, degenerate.At(1, 1), test.ShouldEqual, 0)
	test.That(t, degenerate.At(0, 3), test.ShouldEqual, 1)
	test.That(t, degenerate.At(3, 3), test.ShouldEqual, 1)
}
