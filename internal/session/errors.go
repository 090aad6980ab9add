package session

import "errors"

var (
	ErrNotFound     = errors.New("session not found")
	ErrNoToken      = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid token")
)
