package models

import "errors"

// Common errors used throughout the application
var (
	ErrConcertNotFound  = errors.New("concert not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNothingStaged    = errors.New("no staged order")
	ErrInvalidInput     = errors.New("invalid input")
)
