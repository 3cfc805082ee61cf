package product

import (
	"context"

	"github.com/crmsuite/crm-service/internal/pagination"
)

// ServiceInterface defines the contract for product business logic
type ServiceInterface interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error)
	ListProducts(ctx context.Context, filter Filter, params pagination.Params) (*PaginatedListResponse, error)
	GetProduct(ctx context.Context, id string) (*ProductResponse, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
