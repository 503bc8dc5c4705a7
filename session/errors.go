package session

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"go.viam.com/xrspace/space"
)

var (
	// ErrSessionMismatch is returned when poses of spaces from different sessions are compared.
	ErrSessionMismatch = errors.New("space belongs to a different session")
	// ErrSessionEnded is returned by operations on a session that has ended.
	ErrSessionEnded = errors.New("session has ended")
	// ErrInputSourceNotFound is returned when removing an input the session does not know.
	ErrInputSourceNotFound = errors.New("input source not found")
)

// NewSessionMismatchError returns an error naming both sessions involved.
func NewSessionMismatchError(want, got space.SessionID) error {
	return errors.Wrapf(ErrSessionMismatch, "expected session %s, got %s", want, got)
}

// NewInputSourceNotFoundError returns an error naming the missing input.
func NewInputSourceNotFoundError(id uuid.UUID) error {
	return errors.Wrapf(ErrInputSourceNotFound, "%s", id)
}
