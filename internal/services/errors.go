package services

import "errors"

// Error variables
var (
	ErrValidation          = errors.New("validation error")
	ErrUserAlreadyExists   = errors.New("username or email already exists")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrUnauthorized        = errors.New("could not validate credentials")
	ErrInactiveUser        = errors.New("inactive user")
	ErrCalculationNotFound = errors.New("calculation not found")
)
