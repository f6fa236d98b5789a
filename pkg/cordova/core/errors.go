package core

import "errors"

var (
	// ErrInvalidDSN is returned when the configured DSN cannot be parsed.
	ErrInvalidDSN = errors.New("invalid dsn")

	// ErrClosed is returned by transports used after Close.
	ErrClosed = errors.New("transport is closed")
)
