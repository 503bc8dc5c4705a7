// Package session owns the spaces of one immersive session and produces the per-frame view
// used to resolve and compare them.
package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/xrspace/logging"
	"go.viam.com/xrspace/referencespace"
	"go.viam.com/xrspace/space"
	"go.viam.com/xrspace/spatialmath"
)

// Input is an input source a session can track.
type Input interface {
	space.InputSource
	ID() uuid.UUID
	Name() string
	Close() error
}

type inputBinding struct {
	input Input
	space *space.Space
}

// Session is a tracking session. Its registries may be changed from any goroutine; spaces
// are only mutated under the session lock, which frames also hold while resolving.
type Session struct {
	id     space.SessionID
	logger logging.Logger

	mu     sync.Mutex
	viewer *space.Space
	inputs map[uuid.UUID]*inputBinding
	order  []uuid.UUID
	ended  bool
}

// New returns a new session with its viewer space.
func New(logger logging.Logger) *Session {
	id := uuid.New()
	return &Session{
		id:     id,
		logger: logger.Sublogger("session"),
		viewer: space.NewViewerSpace(id),
		inputs: map[uuid.UUID]*inputBinding{},
	}
}

// ID returns the session id.
func (s *Session) ID() space.SessionID {
	return s.id
}

// ViewerSpace returns the space anchored to the viewer.
func (s *Session) ViewerSpace() *space.Space {
	return s.viewer
}

// RequestReferenceSpace creates a derived space backed by a reference space of the given type.
func (s *Session) RequestReferenceSpace(typ referencespace.Type, cfg *referencespace.Config) (*space.Space, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return nil, ErrSessionEnded
	}
	rs, err := referencespace.New(typ, cfg)
	if err != nil {
		return nil, err
	}
	s.logger.Debugw("reference space created", "type", typ)
	return space.NewDerivedSpace(s.id, rs), nil
}

// GetOffsetReferenceSpace returns a new derived space whose origin is the origin of refSpace
// moved by offset. refSpace must be a reference space of this session.
func (s *Session) GetOffsetReferenceSpace(refSpace *space.Space, offset spatialmath.Pose) (*space.Space, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return nil, ErrSessionEnded
	}
	if refSpace == nil {
		return nil, errors.New("expected a reference space, got nil")
	}
	if refSpace.Session() != s.id {
		return nil, NewSessionMismatchError(s.id, refSpace.Session())
	}
	rs, ok := refSpace.Resolver().(*referencespace.ReferenceSpace)
	if !ok {
		return nil, errors.Errorf("expected a reference space, got a %s space", refSpace.Kind())
	}
	return space.NewDerivedSpace(s.id, rs.GetOffsetReferenceSpace(offset)), nil
}

// AddInputSource starts tracking input and returns the space anchored to it.
func (s *Session) AddInputSource(input Input) (*space.Space, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return nil, ErrSessionEnded
	}
	if _, ok := s.inputs[input.ID()]; ok {
		return nil, errors.Errorf("input source %q (%s) already added", input.Name(), input.ID())
	}
	inputSpace := space.NewInputSpace(s.id, input)
	s.inputs[input.ID()] = &inputBinding{input: input, space: inputSpace}
	s.order = append(s.order, input.ID())
	s.logger.Infow("input source connected", "name", input.Name(), "id", input.ID())
	return inputSpace, nil
}

// RemoveInputSource stops tracking an input, e.g. when it disconnects. Its space stays valid
// as a handle but is unbound and is skipped by frames until the input is added again.
func (s *Session) RemoveInputSource(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	binding, ok := s.inputs[id]
	if !ok {
		return NewInputSourceNotFoundError(id)
	}
	binding.space.ClearInput()
	delete(s.inputs, id)
	for i, other := range s.order {
		if other == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.logger.Infow("input source disconnected", "name", binding.input.Name(), "id", id)
	return binding.input.Close()
}

// InputSpaces returns the spaces of the currently tracked inputs, in the order they were added.
func (s *Session) InputSpaces() []*space.Space {
	s.mu.Lock()
	defer s.mu.Unlock()
	spaces := make([]*space.Space, 0, len(s.order))
	for _, id := range s.order {
		spaces = append(spaces, s.inputs[id].space)
	}
	return spaces
}

// NewFrame wraps sample for resolution. Samples with NaN or infinite components are rejected.
func (s *Session) NewFrame(sample space.RawPoseSample) (*Frame, error) {
	s.mu.Lock()
	ended := s.ended
	s.mu.Unlock()
	if ended {
		return nil, ErrSessionEnded
	}
	if err := space.ValidateRawPose(sample.DevicePose); err != nil {
		s.logger.Warnw("dropping tracking sample", "error", err)
		return nil, err
	}
	return &Frame{session: s, sample: &sample}, nil
}

// End stops the session. Every input space is unbound and every input closed.
func (s *Session) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return ErrSessionEnded
	}
	s.ended = true

	var errs error
	for _, id := range s.order {
		binding := s.inputs[id]
		binding.space.ClearInput()
		errs = multierr.Combine(errs, errors.Wrapf(binding.input.Close(), "closing input %q", binding.input.Name()))
	}
	s.inputs = map[uuid.UUID]*inputBinding{}
	s.order = nil
	s.logger.Info("session ended")
	return errs
}
