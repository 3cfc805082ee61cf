package customer

import (
	"context"
	"time"
)

// RepositoryInterface defines the contract for customer data access
type RepositoryInterface interface {
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error)
	ListCustomers(ctx context.Context, filter Filter, limit, offset int) ([]CustomerResponse, int, error)
	GetCustomer(ctx context.Context, id string) (*CustomerResponse, error)
	DeleteCustomer(ctx context.Context, id string) error
	CountInactiveBefore(ctx context.Context, cutoff time.Time) (int, error)
	PurgeInactiveBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
