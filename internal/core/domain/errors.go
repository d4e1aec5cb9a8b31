// internal/core/domain/errors.go
package domain

import "errors"

// Common domain errors.
var (
	// Descriptor errors
	ErrEmptyServerName     = errors.New("server name cannot be empty")
	ErrInvalidCapability   = errors.New("invalid server capability")
	ErrMissingLaunchSpec   = errors.New("descriptor needs a command or an endpoint")
	ErrAmbiguousLaunchSpec = errors.New("descriptor cannot have both a command and an endpoint")
	ErrDuplicateServer     = errors.New("server name already registered")
	ErrServerNotFound      = errors.New("server not registered")

	// Run errors
	ErrEmptyTopic      = errors.New("topic cannot be empty")
	ErrMissingPipeline = errors.New("pipeline command not configured")
)
