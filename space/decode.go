package space

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/xrspace/spatialmath"
)

// DecodePose converts a raw device pose into a rigid transform.
//
// A missing position decodes as the origin. A missing orientation decodes as the zero
// quaternion (0, 0, 0, 0), not the identity rotation. The orientation is normalized before
// use; normalizing the zero quaternion leaves it zero, so a pose without an orientation maps
// every point onto its translation. Every space kind goes through this one function so the
// defaults cannot drift apart.
func DecodePose(raw RawPose) spatialmath.Pose {
	var pos [3]float32
	if raw.Position != nil {
		pos = *raw.Position
	}
	var orient [4]float32
	if raw.Orientation != nil {
		orient = *raw.Orientation
	}

	translation := r3.Vector{X: float64(pos[0]), Y: float64(pos[1]), Z: float64(pos[2])}
	rotation := spatialmath.Quaternion(spatialmath.NormalizeQuat(quat.Number{
		Real: float64(orient[3]),
		Imag: float64(orient[0]),
		Jmag: float64(orient[1]),
		Kmag: float64(orient[2]),
	}))
	return spatialmath.NewPose(translation, &rotation)
}
