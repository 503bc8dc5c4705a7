// Package referencespace implements reference spaces: derived spaces whose native origin is
// fixed relative to the tracking origin (local, local-floor) or follows the viewer, shifted by
// an application supplied origin offset.
package referencespace

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/xrspace/space"
	"go.viam.com/xrspace/spatialmath"
)

// Type is the kind of reference space.
type Type string

const (
	// Local has its native origin at the tracking origin, near the viewer's starting position.
	Local Type = "local"
	// LocalFloor is Local moved down to floor level.
	LocalFloor Type = "local-floor"
	// Viewer tracks the viewer pose.
	Viewer Type = "viewer"
)

// DefaultFloorHeight is the assumed height, in meters, of the tracking origin above the
// floor when a device does not report one.
const DefaultFloorHeight = 1.6

// ErrUnknownReferenceSpaceType is returned when parsing a type that is not supported.
var ErrUnknownReferenceSpaceType = errors.New("unknown reference space type")

// ParseType maps a reference space type name to its Type.
func ParseType(name string) (Type, error) {
	switch t := Type(name); t {
	case Local, LocalFloor, Viewer:
		return t, nil
	default:
		return "", errors.Wrapf(ErrUnknownReferenceSpaceType, "%q", name)
	}
}

// ReferenceSpace resolves a derived space's pose from its type and origin offset. Its pose is
// the native origin composed with the origin offset, so a point expressed in the reference
// space is first moved by the offset and then by the native origin.
type ReferenceSpace struct {
	typ          Type
	floorHeight  float64
	originOffset spatialmath.Pose
}

// New returns a reference space of the given type configured by cfg. A nil cfg uses the
// defaults: DefaultFloorHeight and no origin offset.
func New(typ Type, cfg *Config) (*ReferenceSpace, error) {
	if _, err := ParseType(string(typ)); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(""); err != nil {
		return nil, err
	}
	floorHeight := DefaultFloorHeight
	if cfg.FloorHeight != nil {
		floorHeight = *cfg.FloorHeight
	}
	return &ReferenceSpace{
		typ:          typ,
		floorHeight:  floorHeight,
		originOffset: cfg.OriginOffset.Pose(),
	}, nil
}

// Type returns the reference space type.
func (rs *ReferenceSpace) Type() Type {
	return rs.typ
}

// OriginOffset returns the offset applied on top of the native origin.
func (rs *ReferenceSpace) OriginOffset() spatialmath.Pose {
	return rs.originOffset
}

// GetOffsetReferenceSpace returns a new reference space of the same type whose origin is
// moved by offset, expressed in this space's coordinates.
func (rs *ReferenceSpace) GetOffsetReferenceSpace(offset spatialmath.Pose) *ReferenceSpace {
	return &ReferenceSpace{
		typ:          rs.typ,
		floorHeight:  rs.floorHeight,
		originOffset: spatialmath.Compose(rs.originOffset, offset),
	}
}

// ResolvePose returns the pose of the reference space relative to the tracking origin.
func (rs *ReferenceSpace) ResolvePose(sample *space.RawPoseSample) spatialmath.Pose {
	return spatialmath.Compose(rs.nativeOrigin(sample), rs.originOffset)
}

func (rs *ReferenceSpace) nativeOrigin(sample *space.RawPoseSample) spatialmath.Pose {
	switch rs.typ {
	case Local:
		return spatialmath.NewZeroPose()
	case LocalFloor:
		return spatialmath.NewPoseFromPoint(r3.Vector{Y: -rs.floorHeight})
	case Viewer:
		return space.DecodePose(sample.DevicePose)
	default:
		panic(errors.Wrapf(ErrUnknownReferenceSpaceType, "%q", rs.typ))
	}
}
