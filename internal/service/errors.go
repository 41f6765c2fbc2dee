package service

import "errors"

var (
	ErrForbidden          = errors.New("forbidden: insufficient permissions")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrActorNotFound      = errors.New("actor not found")
)
