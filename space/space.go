// Package space resolves the pose of a tracked space relative to the tracking origin of its
// session. A space is anchored to the viewer, to an input device, or derived from another
// pose by a reference-offset resolver.
package space

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"go.viam.com/xrspace/spatialmath"
)

// SessionID identifies the session a space belongs to.
type SessionID = uuid.UUID

// Kind is the kind of anchor a space has. It is fixed when the space is created.
type Kind int

const (
	// KindViewer is coincident with the device (head) pose.
	KindViewer Kind = iota
	// KindInputAnchored is coincident with the current pose of a tracked input device.
	KindInputAnchored
	// KindDerived delegates to an OffsetResolver, e.g. a reference space.
	KindDerived
)

func (k Kind) String() string {
	switch k {
	case KindViewer:
		return "viewer"
	case KindInputAnchored:
		return "input"
	case KindDerived:
		return "derived"
	default:
		return "unknown"
	}
}

// InputSource is a tracked input device that a space can be anchored to.
type InputSource interface {
	// RawPose returns the input's current pose relative to the tracking origin. It must not block.
	RawPose() RawPose
}

// OffsetResolver resolves derived spaces. It receives the same sample the space is resolved
// against and its result is returned untouched.
type OffsetResolver interface {
	ResolvePose(sample *RawPoseSample) spatialmath.Pose
}

// Space is a coordinate frame resolved once per tracking update. Exactly one of the
// following holds for its whole life: it is a viewer space, an input space (whose input may
// be cleared and replaced), or a derived space.
//
// Space does no locking. It is resolved and mutated on the frame loop only.
type Space struct {
	kind     Kind
	session  SessionID
	input    InputSource
	resolver OffsetResolver
}

// NewViewerSpace returns a space anchored to the viewer pose of the given session.
func NewViewerSpace(session SessionID) *Space {
	return &Space{kind: KindViewer, session: session}
}

// NewInputSpace returns a space anchored to input. input must not be nil.
func NewInputSpace(session SessionID, input InputSource) *Space {
	if input == nil {
		panic(errors.Wrap(ErrInputSourceUnbound, "cannot create an input space without an input source"))
	}
	return &Space{kind: KindInputAnchored, session: session, input: input}
}

// NewDerivedSpace returns a space whose pose is computed by resolver. resolver must not be nil.
func NewDerivedSpace(session SessionID, resolver OffsetResolver) *Space {
	if resolver == nil {
		panic(errors.New("cannot create a derived space without an offset resolver"))
	}
	return &Space{kind: KindDerived, session: session, resolver: resolver}
}

// Kind returns the kind of the space.
func (s *Space) Kind() Kind {
	return s.kind
}

// Session returns the ID of the session the space belongs to.
func (s *Space) Session() SessionID {
	return s.session
}

// Input returns the input source the space is bound to, or nil.
func (s *Space) Input() InputSource {
	return s.input
}

// HasInput reports whether an input space currently has a bound input source.
func (s *Space) HasInput() bool {
	return s.input != nil
}

// Resolver returns the offset resolver of a derived space, or nil.
func (s *Space) Resolver() OffsetResolver {
	return s.resolver
}

// SetInput rebinds an input space to input. It panics for any other kind of space.
func (s *Space) SetInput(input InputSource) {
	if s.kind != KindInputAnchored {
		panic(errors.Errorf("cannot bind an input source to a %s space", s.kind))
	}
	s.input = input
}

// ClearInput unbinds the input source of an input space, e.g. once the device disconnects.
// The space must not be resolved again until a new input is bound.
func (s *Space) ClearInput() {
	s.input = nil
}

// Resolve returns the pose of the space relative to the tracking origin for sample. All
// spaces of one session resolved against the same sample share that origin, so their poses
// can be composed directly.
//
// Resolving an input space with no bound input is a caller bug and panics with an error
// wrapping ErrInputSourceUnbound; check HasInput first if the binding can be cleared.
func (s *Space) Resolve(sample *RawPoseSample) spatialmath.Pose {
	switch s.kind {
	case KindDerived:
		return s.resolver.ResolvePose(sample)
	case KindViewer:
		return DecodePose(sample.DevicePose)
	case KindInputAnchored:
		if s.input == nil {
			panic(errors.Wrapf(ErrInputSourceUnbound, "session %s", s.session))
		}
		return DecodePose(s.input.RawPose())
	default:
		panic(errors.Wrapf(ErrUnknownSpaceKind, "%d", int(s.kind)))
	}
}
