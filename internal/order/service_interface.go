package order

import (
	"context"

	"github.com/crmsuite/crm-service/internal/pagination"
)

// ServiceInterface defines the contract for order business logic
type ServiceInterface interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error)
	ListOrders(ctx context.Context, filter Filter, params pagination.Params) (*PaginatedListResponse, error)
	GetOrder(ctx context.Context, id string) (*OrderResponse, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
