package errors

import "fmt"

var (
	ErrWorkerPanic      = fmt.Errorf("worker panic")
	ErrMissingToken     = fmt.Errorf("missing auth token")
	ErrTokenRejected    = fmt.Errorf("auth token rejected by server")
	ErrNotConnected     = fmt.Errorf("not connected")
	ErrAlreadyConnected = fmt.Errorf("connection already established")
	ErrInvalidMessage   = fmt.Errorf("invalid message")
	ErrEmptyWords       = fmt.Errorf("no words have been found")
	ErrUnknownEvent     = fmt.Errorf("unknown wire event")
)
