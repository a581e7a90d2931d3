package app

import "errors"

// Sentinel kinds for service errors.
var (
	ErrFightNotFound  = errors.New("fight not found")
	ErrPlayerNotFound = errors.New("player not found")
)
