package admin

import "errors"

var (
	ErrAdminNotFound      = errors.New("admin user not found")
	ErrAdminAlreadyExists = errors.New("admin user with this email already exists")
	ErrAdminInactive      = errors.New("admin account is inactive")
)
