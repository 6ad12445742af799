package store

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrNotFound           = errors.New("not found")
	ErrInvalidStatus      = errors.New("invalid enquiry status")
	ErrMissingProduct     = errors.New("enquiry needs a product id and product type")
)
