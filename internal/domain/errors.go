package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("invalid input")
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrWeakPassword       = errors.New("password too weak")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAuthRequired       = errors.New("sign in required")
	ErrStorage            = errors.New("storage failure")
)
