package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidDate         = errors.New("invalid date")
	ErrNotFound            = errors.New("not found")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("active session already exists")
)
