// Package common defines the sentinel errors shared by repositories, services
// and the transport layer. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level error kinds. Every failure leaving a service is one of these.
	ErrorValidation   = errors.New("validation error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorInternal     = errors.New("internal error")

	// ErrorAlreadyExists is a validation error raised when a unique identity
	// attribute (username, email) is already taken.
	ErrorAlreadyExists = fmt.Errorf("%w: already exists", ErrorValidation)
)
