package models

import "errors"

// Sentinel errors services return and handlers map to HTTP statuses.
var (
	ErrValidation         = errors.New("validation failed")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("not authorized to access this resource")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrProjectLimit       = errors.New("project limit reached (14 projects maximum)")
)
