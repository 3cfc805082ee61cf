package order

import (
	"time"

	"github.com/crmsuite/crm-service/internal/pagination"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest represents the request to create a new order. The
// total amount is derived from the product prices, never supplied by the
// client.
type CreateOrderRequest struct {
	CustomerID string   `json:"customer_id"`
	ProductIDs []string `json:"product_ids"`
}

// OrderResponse represents the order data returned to clients
type OrderResponse struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id"`
	ProductIDs  []string        `json:"product_ids"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OrderDate   time.Time       `json:"order_date"`
}

// Filter narrows order listings
type Filter struct {
	CustomerID    string
	CustomerName  string
	ProductID     string
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
	OrderedAfter  *time.Time
	OrderedBefore *time.Time
}

// PendingReminder is an order within the reminder window together with the
// customer email it should be sent to.
type PendingReminder struct {
	OrderID       string
	CustomerEmail string
	OrderDate     time.Time
}

// PaginatedListResponse is the paginated order listing payload
type PaginatedListResponse struct {
	Success    bool            `json:"success"`
	Orders     []OrderResponse `json:"orders"`
	Pagination pagination.Meta `json:"pagination"`
}
