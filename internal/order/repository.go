package order

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/crmsuite/crm-service/internal/messaging"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Repository struct {
	db        *sql.DB
	publisher messaging.PublisherInterface
}

func NewRepository(db *sql.DB, publisher messaging.PublisherInterface) *Repository {
	return &Repository{
		db:        db,
		publisher: publisher,
	}
}

// CreateOrder inserts an order and its product links in one transaction.
// The total amount is the sum of the current prices of the ordered products.
func (r *Repository) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	orderID := uuid.New()
	orderDate := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM crm.customers WHERE id = $1)`, req.CustomerID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check customer: %w", err)
	}
	if !exists {
		return nil, ErrCustomerNotFound
	}

	var total decimal.Decimal
	var priced int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(price), 0), COUNT(*) FROM crm.products WHERE id = ANY($1::uuid[])`,
		pq.Array(req.ProductIDs),
	).Scan(&total, &priced)
	if err != nil {
		return nil, fmt.Errorf("failed to sum product prices: %w", err)
	}
	if priced != len(uniqueIDs(req.ProductIDs)) {
		return nil, ErrProductNotFound
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO crm.orders (id, customer_id, total_amount, order_date)
		 VALUES ($1, $2, $3, $4)`,
		orderID, req.CustomerID, total, orderDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, productID := range req.ProductIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO crm.order_products (order_id, product_id)
			 VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			orderID, productID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to link product %s: %w", productID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	order := &OrderResponse{
		ID:          orderID.String(),
		CustomerID:  req.CustomerID,
		ProductIDs:  uniqueIDs(req.ProductIDs),
		TotalAmount: total,
		OrderDate:   orderDate,
	}

	if r.publisher != nil {
		event := messaging.OrderCreatedEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventOrderCreated),
			Data: messaging.OrderCreatedData{
				OrderID:     order.ID,
				CustomerID:  order.CustomerID,
				ProductIDs:  order.ProductIDs,
				TotalAmount: order.TotalAmount,
				OrderDate:   order.OrderDate,
			},
		}
		if err := r.publisher.Publish(ctx, messaging.EventOrderCreated, event); err != nil {
			log.Printf("Warning: failed to publish order.created event: %v", err)
		}
	}

	return order, nil
}

func (r *Repository) ListOrders(ctx context.Context, filter Filter, limit, offset int) ([]OrderResponse, int, error) {
	whereClause := "WHERE TRUE"
	args := []interface{}{}
	argIndex := 1

	if filter.CustomerID != "" {
		whereClause += fmt.Sprintf(" AND o.customer_id = $%d", argIndex)
		args = append(args, filter.CustomerID)
		argIndex++
	}
	if filter.CustomerName != "" {
		whereClause += fmt.Sprintf(" AND c.name ILIKE $%d", argIndex)
		args = append(args, "%"+filter.CustomerName+"%")
		argIndex++
	}
	if filter.ProductID != "" {
		whereClause += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM crm.order_products op WHERE op.order_id = o.id AND op.product_id = $%d)", argIndex)
		args = append(args, filter.ProductID)
		argIndex++
	}
	if filter.MinAmount != nil {
		whereClause += fmt.Sprintf(" AND o.total_amount >= $%d", argIndex)
		args = append(args, *filter.MinAmount)
		argIndex++
	}
	if filter.MaxAmount != nil {
		whereClause += fmt.Sprintf(" AND o.total_amount <= $%d", argIndex)
		args = append(args, *filter.MaxAmount)
		argIndex++
	}
	if filter.OrderedAfter != nil {
		whereClause += fmt.Sprintf(" AND o.order_date >= $%d", argIndex)
		args = append(args, *filter.OrderedAfter)
		argIndex++
	}
	if filter.OrderedBefore != nil {
		whereClause += fmt.Sprintf(" AND o.order_date <= $%d", argIndex)
		args = append(args, *filter.OrderedBefore)
		argIndex++
	}

	var totalCount int
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM crm.orders o
		JOIN crm.customers c ON c.id = o.customer_id
		%s
	`, whereClause)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT o.id, o.customer_id, o.total_amount, o.order_date,
		       COALESCE(ARRAY_AGG(op.product_id::text) FILTER (WHERE op.product_id IS NOT NULL), '{}')
		FROM crm.orders o
		JOIN crm.customers c ON c.id = o.customer_id
		LEFT JOIN crm.order_products op ON op.order_id = o.id
		%s
		GROUP BY o.id, o.customer_id, o.total_amount, o.order_date
		ORDER BY o.order_date DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []OrderResponse
	for rows.Next() {
		var ord OrderResponse
		var productIDs pq.StringArray
		if err := rows.Scan(&ord.ID, &ord.CustomerID, &ord.TotalAmount, &ord.OrderDate, &productIDs); err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		ord.ProductIDs = []string(productIDs)
		orders = append(orders, ord)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, totalCount, nil
}

func (r *Repository) GetOrder(ctx context.Context, id string) (*OrderResponse, error) {
	query := `
		SELECT o.id, o.customer_id, o.total_amount, o.order_date,
		       COALESCE(ARRAY_AGG(op.product_id::text) FILTER (WHERE op.product_id IS NOT NULL), '{}')
		FROM crm.orders o
		LEFT JOIN crm.order_products op ON op.order_id = o.id
		WHERE o.id = $1
		GROUP BY o.id, o.customer_id, o.total_amount, o.order_date
	`

	var ord OrderResponse
	var productIDs pq.StringArray
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ord.ID,
		&ord.CustomerID,
		&ord.TotalAmount,
		&ord.OrderDate,
		&productIDs,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	ord.ProductIDs = []string(productIDs)

	return &ord, nil
}

// ListPendingReminders returns orders placed since the given time together
// with the owning customer's email, oldest first.
func (r *Repository) ListPendingReminders(ctx context.Context, since time.Time) ([]PendingReminder, error) {
	query := `
		SELECT o.id, c.email, o.order_date
		FROM crm.orders o
		JOIN crm.customers c ON c.id = o.customer_id
		WHERE o.order_date >= $1
		ORDER BY o.order_date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending reminders: %w", err)
	}
	defer rows.Close()

	var reminders []PendingReminder
	for rows.Next() {
		var rem PendingReminder
		if err := rows.Scan(&rem.OrderID, &rem.CustomerEmail, &rem.OrderDate); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, rem)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminders: %w", err)
	}

	return reminders, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
