package customer

import "errors"

var (
	ErrMissingName      = errors.New("customer name is required")
	ErrMissingEmail     = errors.New("customer email is required")
	ErrEmailExists      = errors.New("Email already exists")
	ErrInvalidPhone     = errors.New("invalid phone format")
	ErrCustomerNotFound = errors.New("customer not found")
)
