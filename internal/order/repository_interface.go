package order

import (
	"context"
	"time"
)

// RepositoryInterface defines the contract for order data access
type RepositoryInterface interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error)
	ListOrders(ctx context.Context, filter Filter, limit, offset int) ([]OrderResponse, int, error)
	GetOrder(ctx context.Context, id string) (*OrderResponse, error)
	ListPendingReminders(ctx context.Context, since time.Time) ([]PendingReminder, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
