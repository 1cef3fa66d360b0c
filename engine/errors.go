package engine

import "errors"

var (
	// ErrInvalidDimensions is returned when the frame buffer would be empty
	ErrInvalidDimensions = errors.New("engine: width and height must be positive")

	// ErrSurfaceTooSmall is returned when the surface cannot hold the requested buffer
	ErrSurfaceTooSmall = errors.New("engine: surface smaller than requested buffer")

	// ErrAlreadyStarted is returned by Run on a loop that has already left the uninitialized state
	ErrAlreadyStarted = errors.New("engine: loop already started")

	// ErrSceneStart is returned when the scene's Start hook declines to run
	ErrSceneStart = errors.New("engine: scene start failed")
)
