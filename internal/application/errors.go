package application

import "errors"

var (
	// ErrInvalidArgument is returned when a session method gets malformed input.
	// The request is never registered.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDuplicateRequest is returned when the request id is already active.
	ErrDuplicateRequest = errors.New("request id already active")
	// ErrUnknownRequest is returned when cancelling an id that is not active.
	ErrUnknownRequest = errors.New("unknown request id")
	// ErrCorruptStream is returned when a historical or intraday row is malformed.
	ErrCorruptStream = errors.New("corrupt data stream")
)
