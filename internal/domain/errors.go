package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized covers a missing, malformed or badly signed session token.
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUpload       = errors.New("upload failed")

	ErrUserNotFound  = fmt.Errorf("user %w", ErrNotFound)
	ErrPlaceNotFound = fmt.Errorf("place %w", ErrNotFound)
)
