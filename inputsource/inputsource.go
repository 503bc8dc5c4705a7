// Package inputsource implements tracked input devices, such as hand controllers, that
// input spaces are anchored to.
package inputsource

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"go.viam.com/xrspace/space"
)

// Handedness is the hand an input is held in.
type Handedness string

// TargetRayMode describes how an input produces its targeting ray.
type TargetRayMode string

const (
	// HandednessNone is an input not associated with a hand.
	HandednessNone Handedness = "none"
	// HandednessLeft is an input held in the left hand.
	HandednessLeft Handedness = "left"
	// HandednessRight is an input held in the right hand.
	HandednessRight Handedness = "right"

	// TargetRayGaze targets along the viewer's gaze.
	TargetRayGaze TargetRayMode = "gaze"
	// TargetRayTrackedPointer targets from a tracked controller.
	TargetRayTrackedPointer TargetRayMode = "tracked-pointer"
	// TargetRayScreen targets from a tap on a screen.
	TargetRayScreen TargetRayMode = "screen"
)

// ErrSourceClosed is returned when closing an already closed source.
var ErrSourceClosed = errors.New("input source already closed")

// ParseHandedness maps a name to a Handedness. The empty string is HandednessNone.
func ParseHandedness(name string) (Handedness, error) {
	switch h := Handedness(name); h {
	case "":
		return HandednessNone, nil
	case HandednessNone, HandednessLeft, HandednessRight:
		return h, nil
	default:
		return "", errors.Errorf("unknown handedness %q", name)
	}
}

// ParseTargetRayMode maps a name to a TargetRayMode. The empty string is TargetRayTrackedPointer.
func ParseTargetRayMode(name string) (TargetRayMode, error) {
	switch m := TargetRayMode(name); m {
	case "":
		return TargetRayTrackedPointer, nil
	case TargetRayGaze, TargetRayTrackedPointer, TargetRayScreen:
		return m, nil
	default:
		return "", errors.Errorf("unknown target ray mode %q", name)
	}
}

// Source is a tracked input device. The device side reports poses with SetRawPose, possibly
// from its own goroutine; resolution reads the latest one with RawPose.
type Source struct {
	id            uuid.UUID
	name          string
	handedness    Handedness
	targetRayMode TargetRayMode

	mu     sync.Mutex
	pose   space.RawPose
	closed bool
}

var _ space.InputSource = (*Source)(nil)

// New returns a source with no pose reported yet.
func New(name string, handedness Handedness, mode TargetRayMode) *Source {
	return &Source{
		id:            uuid.New(),
		name:          name,
		handedness:    handedness,
		targetRayMode: mode,
	}
}

// ID returns the unique id of the source.
func (s *Source) ID() uuid.UUID {
	return s.id
}

// Name returns the name of the source.
func (s *Source) Name() string {
	return s.name
}

// Handedness returns the hand the source is held in.
func (s *Source) Handedness() Handedness {
	return s.handedness
}

// TargetRayMode returns how the source targets.
func (s *Source) TargetRayMode() TargetRayMode {
	return s.targetRayMode
}

// SetRawPose records the latest pose reported by the device. The arrays are copied.
func (s *Source) SetRawPose(pose space.RawPose) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pose = copyRawPose(pose)
}

// RawPose returns a copy of the latest reported pose.
func (s *Source) RawPose() space.RawPose {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyRawPose(s.pose)
}

// Close marks the source as disconnected.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.Wrapf(ErrSourceClosed, "%s", s.name)
	}
	s.closed = true
	return nil
}

func copyRawPose(pose space.RawPose) space.RawPose {
	var out space.RawPose
	if pose.Position != nil {
		p := *pose.Position
		out.Position = &p
	}
	if pose.Orientation != nil {
		o := *pose.Orientation
		out.Orientation = &o
	}
	return out
}
