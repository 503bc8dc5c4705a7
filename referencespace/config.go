package referencespace

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/xrspace/spatialmath"
)

// Translation is a translation in meters.
type Translation struct {
	X float64 `json:"x" mapstructure:"x"`
	Y float64 `json:"y" mapstructure:"y"`
	Z float64 `json:"z" mapstructure:"z"`
}

// Orientation is a quaternion in x, y, z, w order. It need not be unit length.
type Orientation struct {
	X float64 `json:"x" mapstructure:"x"`
	Y float64 `json:"y" mapstructure:"y"`
	Z float64 `json:"z" mapstructure:"z"`
	W float64 `json:"w" mapstructure:"w"`
}

// Transform is a configured rigid transform.
type Transform struct {
	Translation Translation  `json:"translation" mapstructure:"translation"`
	Orientation *Orientation `json:"orientation,omitempty" mapstructure:"orientation"`
}

// Pose converts the transform to a pose, normalizing the orientation. A nil transform is the
// zero pose.
func (t *Transform) Pose() spatialmath.Pose {
	if t == nil {
		return spatialmath.NewZeroPose()
	}
	pt := r3.Vector{X: t.Translation.X, Y: t.Translation.Y, Z: t.Translation.Z}
	if t.Orientation == nil {
		return spatialmath.NewPoseFromPoint(pt)
	}
	q := spatialmath.NewQuaternion(t.Orientation.X, t.Orientation.Y, t.Orientation.Z, t.Orientation.W)
	normalized := spatialmath.Quaternion(spatialmath.NormalizeQuat(q.Quaternion()))
	return spatialmath.NewPose(pt, &normalized)
}

// Config holds the attributes of a reference space.
type Config struct {
	// FloorHeight is the height of the tracking origin above the floor, used by local-floor.
	FloorHeight  *float64  `json:"floor_height,omitempty" mapstructure:"floor_height"`
	OriginOffset *Transform `json:"origin_offset,omitempty" mapstructure:"origin_offset"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if cfg.FloorHeight != nil && !finite(*cfg.FloorHeight) {
		return errors.Errorf("%s: floor_height must be finite, got %v", fieldPath(path, "floor_height"), *cfg.FloorHeight)
	}
	if cfg.FloorHeight != nil && *cfg.FloorHeight < 0 {
		return errors.Errorf("%s: floor_height must be non-negative, got %v", fieldPath(path, "floor_height"), *cfg.FloorHeight)
	}
	if cfg.OriginOffset != nil {
		tr := cfg.OriginOffset.Translation
		if !finite(tr.X) || !finite(tr.Y) || !finite(tr.Z) {
			return errors.Errorf("%s: translation must be finite", fieldPath(path, "origin_offset"))
		}
		if o := cfg.OriginOffset.Orientation; o != nil && (!finite(o.X) || !finite(o.Y) || !finite(o.Z) || !finite(o.W)) {
			return errors.Errorf("%s: orientation must be finite", fieldPath(path, "origin_offset"))
		}
	}
	if cfg.OriginOffset != nil && cfg.OriginOffset.Orientation != nil {
		o := cfg.OriginOffset.Orientation
		if o.X == 0 && o.Y == 0 && o.Z == 0 && o.W == 0 {
			return errors.Errorf("%s: orientation must not be the zero quaternion", fieldPath(path, "origin_offset"))
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func fieldPath(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}
