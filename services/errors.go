package services

import "errors"

// Common errors
var (
	ErrBlockNotFound      = errors.New("block not found")
	ErrBlockArchived      = errors.New("block is archived")
	ErrNoChildren         = errors.New("block type cannot have children")
	ErrCorruptBlock       = errors.New("stored block is corrupt")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrResourceExists     = errors.New("resource already exists")
)
