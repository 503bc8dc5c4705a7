package space

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/xrspace/spatialmath"
)

func position(x, y, z float32) *[3]float32 {
	return &[3]float32{x, y, z}
}

func orientation(x, y, z, w float32) *[4]float32 {
	return &[4]float32{x, y, z, w}
}

func TestDecodePoseNormalizes(t *testing.T) {
	for _, o := range []*[4]float32{
		orientation(0, 0, 0, 2),
		orientation(0.1, 0.2, 0.3, 0.9),
		orientation(1, 1, 1, 1),
		orientation(-3, 0, 4, 0),
		orientation(0.001, 0, 0, 0),
	} {
		q := DecodePose(RawPose{Orientation: o}).Orientation().Quaternion()
		test.That(t, spatialmath.QuatNorm(q), test.ShouldAlmostEqual, 1)
	}
}

func TestDecodePoseDefaultPosition(t *testing.T) {
	pose := DecodePose(RawPose{Orientation: orientation(0, 0, 0, 1)})
	test.That(t, pose.Point(), test.ShouldResemble, r3.Vector{X: 0, Y: 0, Z: 0})
	test.That(t, pose.Orientation().Quaternion(), test.ShouldResemble, quat.Number{Real: 1})
}

func TestDecodePoseMissingOrientation(t *testing.T) {
	// The missing-orientation default is the zero quaternion, which stays zero through
	// normalization. It is not the identity rotation.
	pose := DecodePose(RawPose{Position: position(4, 5, 6)})
	q := pose.Orientation().Quaternion()
	test.That(t, q, test.ShouldResemble, quat.Number{})
	test.That(t, math.IsNaN(q.Real), test.ShouldBeFalse)

	// every point collapses onto the translation
	out := spatialmath.TransformPoint(pose, r3.Vector{X: 1, Y: -2, Z: 3})
	test.That(t, out, test.ShouldResemble, r3.Vector{X: 4, Y: 5, Z: 6})

	empty := DecodePose(RawPose{})
	test.That(t, empty.Point(), test.ShouldResemble, r3.Vector{})
	test.That(t, empty.Orientation().Quaternion(), test.ShouldResemble, quat.Number{})
}

func TestDecodePoseIdentityRotation(t *testing.T) {
	pose := DecodePose(RawPose{Position: position(1, 2, 3), Orientation: orientation(0, 0, 0, 1)})

	origin := spatialmath.TransformPoint(pose, r3.Vector{})
	test.That(t, origin, test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})

	q := pose.Orientation().Quaternion()
	for _, axis := range []r3.Vector{{X: 1}, {Y: 1}, {Z: 1}} {
		rotated := spatialmath.RotatePoint(q, axis)
		test.That(t, rotated.X, test.ShouldAlmostEqual, axis.X)
		test.That(t, rotated.Y, test.ShouldAlmostEqual, axis.Y)
		test.That(t, rotated.Z, test.ShouldAlmostEqual, axis.Z)
	}
}

func TestDecodePoseQuarterTurnAboutZ(t *testing.T) {
	s := float32(math.Sin(math.Pi / 4))
	c := float32(math.Cos(math.Pi / 4))
	pose := DecodePose(RawPose{Orientation: orientation(0, 0, s, c)})

	out := spatialmath.TransformPoint(pose, r3.Vector{X: 1})
	// the raw components are float32, so only expect float32 precision
	test.That(t, out.X, test.ShouldAlmostEqual, 0, 1e-6)
	test.That(t, out.Y, test.ShouldAlmostEqual, 1, 1e-6)
	test.That(t, out.Z, test.ShouldAlmostEqual, 0, 1e-6)
}

func TestDecodePoseComponentOrder(t *testing.T) {
	pose := DecodePose(RawPose{Orientation: orientation(1, 0, 0, 0)})
	test.That(t, pose.Orientation().Quaternion(), test.ShouldResemble, quat.Number{Imag: 1})
}

func TestValidateRawPose(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	test.That(t, ValidateRawPose(RawPose{}), test.ShouldBeNil)
	test.That(t, ValidateRawPose(RawPose{Position: position(1, 2, 3), Orientation: orientation(0, 0, 0, 1)}), test.ShouldBeNil)

	err := ValidateRawPose(RawPose{Position: position(1, nan, 3)})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "position[1]")
	test.That(t, errorsIs(err, ErrInvalidPoseSample), test.ShouldBeTrue)

	err = ValidateRawPose(RawPose{Orientation: orientation(0, 0, 0, inf)})
	test.That(t, errorsIs(err, ErrInvalidPoseSample), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "orientation[3]")
}
