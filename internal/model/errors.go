package model

import "errors"

// Common errors used across the application
var (
	// Registration errors
	ErrInvalidInput   = errors.New("invalid input")
	ErrDuplicateID    = errors.New("visitor id already registered")
	ErrDuplicateEmail = errors.New("email already registered")

	// Session errors
	ErrNoActiveSession = errors.New("no active session")

	// Timer errors
	ErrUnknownStation    = errors.New("unknown station")
	ErrStationNotStarted = errors.New("station timer not started")

	// Storage errors
	ErrVisitorNotFound   = errors.New("visitor not found")
	ErrAggregateNotFound = errors.New("aggregate record not found")
	ErrStoreUnavailable  = errors.New("store unavailable")
)
