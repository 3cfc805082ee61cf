package product

import "errors"

var (
	ErrMissingName     = errors.New("product name is required")
	ErrInvalidPrice    = errors.New("product price must not be negative")
	ErrInvalidStock    = errors.New("product stock must not be negative")
	ErrProductNotFound = errors.New("product not found")
)
