package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrNoActiveSeason        = errors.New("no active season")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
