package space

import "github.com/pkg/errors"

var (
	// ErrInputSourceUnbound is the contract violation of resolving an input-anchored space
	// whose input source has been cleared.
	ErrInputSourceUnbound = errors.New("input space has no bound input source")

	// ErrUnknownSpaceKind is raised when a space carries a kind outside of Viewer,
	// InputAnchored and Derived.
	ErrUnknownSpaceKind = errors.New("unknown space kind")

	// ErrInvalidPoseSample is returned by ValidateRawPose for NaN or infinite components.
	ErrInvalidPoseSample = errors.New("invalid pose sample")
)

// NewInvalidPoseSampleError returns an error describing which component of a raw pose is not
// a finite number.
func NewInvalidPoseSampleError(component string, idx int, val float32) error {
	return errors.Wrapf(ErrInvalidPoseSample, "%s[%d] is %v", component, idx, val)
}
