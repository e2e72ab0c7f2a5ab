package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyExists  = errors.New("already exists")
	ErrInvalidInput   = errors.New("invalid input")
	ErrNoResults      = errors.New("no recipes found")
	ErrTransport      = errors.New("remote request failed")
	ErrStale          = errors.New("response superseded by a newer request")
	ErrStorageWrite   = errors.New("storage write failed")
	ErrTimerFinished  = errors.New("timer already finished")
	ErrLocked         = errors.New("data directory is in use by another instance")
	ErrNotImplemented = errors.New("not implemented")
)
