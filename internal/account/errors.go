package account

import "errors"

var (
	ErrMissingUsername  = errors.New("username is required")
	ErrMissingEmail     = errors.New("email is required")
	ErrMissingPassword  = errors.New("password is required")
	ErrPasswordMismatch = errors.New("passwords do not match")
)
