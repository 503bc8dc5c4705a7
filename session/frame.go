package session

import (
	"github.com/pkg/errors"

	"go.viam.com/xrspace/space"
	"go.viam.com/xrspace/spatialmath"
)

// Frame is one tracking update of a session. Every pose it returns is computed from the same
// sample, so poses from one frame can be compared with each other.
type Frame struct {
	session *Session
	sample  *space.RawPoseSample
}

// ResolvedSpace is the pose of one space in a frame.
type ResolvedSpace struct {
	Name  string
	Space *space.Space
	Pose  spatialmath.Pose
}

// Sample returns the sample of the frame. It must not be modified.
func (f *Frame) Sample() *space.RawPoseSample {
	return f.sample
}

// GetPose returns the pose of s expressed in base. Both spaces must belong to the frame's
// session. Unlike space.Resolve, an unbound input space is reported as an error.
func (f *Frame) GetPose(s, base *space.Space) (spatialmath.Pose, error) {
	f.session.mu.Lock()
	defer f.session.mu.Unlock()
	return f.getPose(s, base)
}

// GetViewerPose returns the pose of the viewer expressed in base.
func (f *Frame) GetViewerPose(base *space.Space) (spatialmath.Pose, error) {
	return f.GetPose(f.session.viewer, base)
}

// ResolveAll returns the pose of the viewer and of every bound input space, expressed in
// base. Input spaces of tracked inputs whose binding was cleared with ClearInput, e.g. while
// the device has lost tracking, are skipped until an input is bound again.
func (f *Frame) ResolveAll(base *space.Space) ([]ResolvedSpace, error) {
	f.session.mu.Lock()
	defer f.session.mu.Unlock()

	viewerPose, err := f.getPose(f.session.viewer, base)
	if err != nil {
		return nil, err
	}
	resolved := []ResolvedSpace{{Name: "viewer", Space: f.session.viewer, Pose: viewerPose}}
	for _, id := range f.session.order {
		binding := f.session.inputs[id]
		if !binding.space.HasInput() {
			f.session.logger.Debugw("skipping unbound input space", "name", binding.input.Name())
			continue
		}
		pose, err := f.getPose(binding.space, base)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving input %q", binding.input.Name())
		}
		resolved = append(resolved, ResolvedSpace{Name: binding.input.Name(), Space: binding.space, Pose: pose})
	}
	return resolved, nil
}

func (f *Frame) getPose(s, base *space.Space) (spatialmath.Pose, error) {
	sPose, err := f.resolve(s)
	if err != nil {
		return nil, err
	}
	basePose, err := f.resolve(base)
	if err != nil {
		return nil, errors.Wrap(err, "resolving base space")
	}
	return spatialmath.PoseBetween(basePose, sPose), nil
}

func (f *Frame) resolve(s *space.Space) (spatialmath.Pose, error) {
	if s.Session() != f.session.id {
		return nil, NewSessionMismatchError(f.session.id, s.Session())
	}
	if s.Kind() == space.KindInputAnchored && !s.HasInput() {
		return nil, space.ErrInputSourceUnbound
	}
	return s.Resolve(f.sample), nil
}
