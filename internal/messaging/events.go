package messaging

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event routing keys as constants
const (
	// Customer events
	EventCustomerCreated = "customer.created"
	EventCustomerDeleted = "customer.deleted"

	// Order events
	EventOrderCreated = "order.created"

	// Product events
	EventProductsRestocked = "product.restocked"

	// Maintenance job events
	EventCleanupCompleted = "maintenance.cleanup_completed"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// NewBaseEvent builds the common envelope for an event type.
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		ServiceName: "crm-service",
	}
}

// CustomerCreatedEvent represents a customer creation event
type CustomerCreatedEvent struct {
	BaseEvent
	Data CustomerCreatedData `json:"data"`
}

type CustomerCreatedData struct {
	CustomerID string    `json:"customer_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CustomerDeletedEvent represents a customer deletion event
type CustomerDeletedEvent struct {
	BaseEvent
	Data CustomerDeletedData `json:"data"`
}

type CustomerDeletedData struct {
	CustomerID string `json:"customer_id"`
	Email      string `json:"email"`
}

// OrderCreatedEvent represents an order creation event
type OrderCreatedEvent struct {
	BaseEvent
	Data OrderCreatedData `json:"data"`
}

type OrderCreatedData struct {
	OrderID     string          `json:"order_id"`
	CustomerID  string          `json:"customer_id"`
	ProductIDs  []string        `json:"product_ids"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OrderDate   time.Time       `json:"order_date"`
}

// ProductsRestockedEvent represents a low-stock restock run
type ProductsRestockedEvent struct {
	BaseEvent
	Data ProductsRestockedData `json:"data"`
}

type ProductsRestockedData struct {
	ProductCount int `json:"product_count"`
}

// CleanupCompletedEvent reports the result of an inactive-customer cleanup run
type CleanupCompletedEvent struct {
	BaseEvent
	Data CleanupCompletedData `json:"data"`
}

type CleanupCompletedData struct {
	DeletedCount int       `json:"deleted_count"`
	Cutoff       time.Time `json:"cutoff"`
}
