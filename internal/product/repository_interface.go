package product

import "context"

// RepositoryInterface defines the contract for product data access
type RepositoryInterface interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error)
	ListProducts(ctx context.Context, filter Filter, limit, offset int) ([]ProductResponse, int, error)
	GetProduct(ctx context.Context, id string) (*ProductResponse, error)
	RestockLowStock(ctx context.Context) ([]RestockedProduct, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
