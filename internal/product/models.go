package product

import (
	"time"

	"github.com/crmsuite/crm-service/internal/pagination"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents the request to create a new product
type CreateProductRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// ProductResponse represents the product data returned to clients
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
}

// Filter narrows product listings. LowStock selects products with stock
// below the restock threshold.
type Filter struct {
	Name     string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	MinStock *int
	MaxStock *int
	LowStock bool
}

// RestockedProduct is one product updated by a restock run
type RestockedProduct struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// PaginatedListResponse is the paginated product listing payload
type PaginatedListResponse struct {
	Success    bool              `json:"success"`
	Products   []ProductResponse `json:"products"`
	Pagination pagination.Meta   `json:"pagination"`
}
