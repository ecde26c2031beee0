package app

import "errors"

// Initialization failures. Platform implementations wrap one of these so callers
// can tell which stage of startup failed.
var (
	ErrPlatformInit = errors.New("platform init failed")
	ErrWindowInit   = errors.New("window init failed")
	ErrContextInit  = errors.New("graphics context init failed")

	ErrNotInitialized = errors.New("game is not initialized")
)

// Status is the closed set of startup outcomes.
type Status int

const (
	StatusSuccess Status = iota
	StatusWindowInitFail
	StatusContextInitFail
	StatusPlatformInitFail
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusWindowInitFail:
		return "window init failed"
	case StatusContextInitFail:
		return "context init failed"
	case StatusPlatformInitFail:
		return "platform init failed"
	default:
		return "failure"
	}
}

// StatusOf classifies an error returned by Game.Init.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, ErrWindowInit):
		return StatusWindowInitFail
	case errors.Is(err, ErrContextInit):
		return StatusContextInitFail
	case errors.Is(err, ErrPlatformInit):
		return StatusPlatformInitFail
	default:
		return StatusFailure
	}
}
