package operator

import "errors"

// Operator validation errors
var (
	ErrInvalidEmail          = errors.New("invalid email address")
	ErrInvalidPassword       = errors.New("invalid password")
	ErrInvalidPasswordHash   = errors.New("invalid password hash")
	ErrPasswordTooShort      = errors.New("password must be at least 8 characters")
	ErrOperatorNotFound      = errors.New("operator not found")
	ErrOperatorAlreadyExists = errors.New("operator with this email already exists")
)
