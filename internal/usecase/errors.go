package usecase

import "github.com/cockroachdb/errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrSetup                 = errors.New("setup failed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
