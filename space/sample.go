package space

import (
	"math"
	"time"
)

// RawPose is a pose as reported by a device driver. Either component may be absent.
type RawPose struct {
	// Position is x, y, z in meters.
	Position *[3]float32
	// Orientation is a quaternion in x, y, z, w order.
	Orientation *[4]float32
}

// RawPoseSample is the raw device state for one tracking update.
type RawPoseSample struct {
	// DevicePose is the pose of the viewer (head) relative to the tracking origin.
	DevicePose RawPose
	// Timestamp is when the sample was taken. It is carried for callers and never used to
	// resolve a pose.
	Timestamp time.Time
}

// ValidateRawPose returns an error wrapping ErrInvalidPoseSample if any present component of
// raw is NaN or infinite. DecodePose does not call it; it is for callers that want to reject
// a bad sample before resolving against it.
func ValidateRawPose(raw RawPose) error {
	if raw.Position != nil {
		for i, v := range raw.Position {
			if !finite(v) {
				return NewInvalidPoseSampleError("position", i, v)
			}
		}
	}
	if raw.Orientation != nil {
		for i, v := range raw.Orientation {
			if !finite(v) {
				return NewInvalidPoseSampleError("orientation", i, v)
			}
		}
	}
	return nil
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
