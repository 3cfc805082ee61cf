package order

import "errors"

var (
	ErrMissingCustomer  = errors.New("customer_id is required")
	ErrNoProducts       = errors.New("at least one product is required")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrProductNotFound  = errors.New("one or more products not found")
	ErrOrderNotFound    = errors.New("order not found")
)
