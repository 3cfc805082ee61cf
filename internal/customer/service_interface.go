package customer

import (
	"context"

	"github.com/crmsuite/crm-service/internal/pagination"
)

// ServiceInterface defines the contract for customer business logic
type ServiceInterface interface {
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error)
	ListCustomers(ctx context.Context, filter Filter, params pagination.Params) (*PaginatedListResponse, error)
	GetCustomer(ctx context.Context, id string) (*CustomerResponse, error)
	DeleteCustomer(ctx context.Context, id string) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
