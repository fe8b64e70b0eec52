package services

import "errors"

var (
	ErrDuplicateEntity    = errors.New("entity already exists")
	ErrNotFound           = errors.New("entity not found")
	ErrRequiredField      = errors.New("required field is missing")
	ErrInvalidQuantity    = errors.New("quantity must not be negative")
	ErrInsufficientCopies = errors.New("no available copies")
	ErrInvalidCredentials = errors.New("invalid user credentials")
	ErrUserDisabled       = errors.New("user is disabled")
)
