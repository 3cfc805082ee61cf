package customer

import (
	"time"

	"github.com/crmsuite/crm-service/internal/pagination"
)

// CreateCustomerRequest represents the request to create a new customer
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// CustomerResponse represents the customer data returned to clients
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Filter narrows customer listings. Name and Email match case-insensitive
// substrings, PhonePrefix matches the start of the phone number.
type Filter struct {
	Name          string
	Email         string
	PhonePrefix   string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// PaginatedListResponse is the paginated customer listing payload
type PaginatedListResponse struct {
	Success    bool               `json:"success"`
	Customers  []CustomerResponse `json:"customers"`
	Pagination pagination.Meta    `json:"pagination"`
}
