package customer

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/crmsuite/crm-service/internal/messaging"
	"github.com/google/uuid"
	"github.com/lib/pq"
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

func (r *Repository) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customerID := uuid.New()
	createdAt := time.Now().UTC()

	query := `
        INSERT INTO crm.customers (id, name, email, phone, created_at)
        VALUES ($1, $2, $3, NULLIF($4, ''), $5)
        RETURNING id, name, email, COALESCE(phone, ''), created_at
    `

	var cust CustomerResponse
	err := r.db.QueryRowContext(ctx, query,
		customerID,
		req.Name,
		req.Email,
		req.Phone,
		createdAt,
	).Scan(
		&cust.ID,
		&cust.Name,
		&cust.Email,
		&cust.Phone,
		&cust.CreatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return nil, ErrEmailExists
			}
		}
		return nil, fmt.Errorf("failed to insert customer: %w", err)
	}

	if r.publisher != nil {
		event := messaging.CustomerCreatedEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventCustomerCreated),
			Data: messaging.CustomerCreatedData{
				CustomerID: cust.ID,
				Name:       cust.Name,
				Email:      cust.Email,
				Phone:      cust.Phone,
				CreatedAt:  cust.CreatedAt,
			},
		}
		if err := r.publisher.Publish(ctx, messaging.EventCustomerCreated, event); err != nil {
			log.Printf("Warning: failed to publish customer.created event: %v", err)
		}
	}

	return &cust, nil
}

func (r *Repository) ListCustomers(ctx context.Context, filter Filter, limit, offset int) ([]CustomerResponse, int, error) {
	whereClause := "WHERE TRUE"
	args := []interface{}{}
	argIndex := 1

	if filter.Name != "" {
		whereClause += fmt.Sprintf(" AND name ILIKE $%d", argIndex)
		args = append(args, "%"+filter.Name+"%")
		argIndex++
	}
	if filter.Email != "" {
		whereClause += fmt.Sprintf(" AND email ILIKE $%d", argIndex)
		args = append(args, "%"+filter.Email+"%")
		argIndex++
	}
	if filter.PhonePrefix != "" {
		whereClause += fmt.Sprintf(" AND phone LIKE $%d", argIndex)
		args = append(args, filter.PhonePrefix+"%")
		argIndex++
	}
	if filter.CreatedAfter != nil {
		whereClause += fmt.Sprintf(" AND created_at >= $%d", argIndex)
		args = append(args, *filter.CreatedAfter)
		argIndex++
	}
	if filter.CreatedBefore != nil {
		whereClause += fmt.Sprintf(" AND created_at <= $%d", argIndex)
		args = append(args, *filter.CreatedBefore)
		argIndex++
	}

	var totalCount int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM crm.customers %s`, whereClause)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, email, COALESCE(phone, ''), created_at
		FROM crm.customers
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []CustomerResponse
	for rows.Next() {
		var cust CustomerResponse
		if err := rows.Scan(&cust.ID, &cust.Name, &cust.Email, &cust.Phone, &cust.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, cust)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, totalCount, nil
}

func (r *Repository) GetCustomer(ctx context.Context, id string) (*CustomerResponse, error) {
	query := `
		SELECT id, name, email, COALESCE(phone, ''), created_at
		FROM crm.customers
		WHERE id = $1
	`

	var cust CustomerResponse
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&cust.ID,
		&cust.Name,
		&cust.Email,
		&cust.Phone,
		&cust.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return &cust, nil
}

func (r *Repository) DeleteCustomer(ctx context.Context, id string) error {
	var email string
	err := r.db.QueryRowContext(ctx,
		`DELETE FROM crm.customers WHERE id = $1 RETURNING email`, id,
	).Scan(&email)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	if r.publisher != nil {
		event := messaging.CustomerDeletedEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventCustomerDeleted),
			Data: messaging.CustomerDeletedData{
				CustomerID: id,
				Email:      email,
			},
		}
		if err := r.publisher.Publish(ctx, messaging.EventCustomerDeleted, event); err != nil {
			log.Printf("Warning: failed to publish customer.deleted event: %v", err)
		}
	}

	return nil
}

// inactivePredicate matches customers with no orders created before the cutoff.
// The cutoff comparison is strict so a customer created exactly at the cutoff
// is kept.
const inactivePredicate = `
	created_at < $1
	AND NOT EXISTS (
		SELECT 1 FROM crm.orders o WHERE o.customer_id = crm.customers.id
	)
`

// CountInactiveBefore returns how many customers are eligible for cleanup.
func (r *Repository) CountInactiveBefore(ctx context.Context, cutoff time.Time) (int, error) {
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM crm.customers WHERE %s`, inactivePredicate)
	if err := r.db.QueryRowContext(ctx, query, cutoff).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count inactive customers: %w", err)
	}
	return count, nil
}

// PurgeInactiveBefore counts and deletes all customers with zero orders
// created before the cutoff. Count and delete run in one repeatable-read
// transaction so the returned count matches exactly the rows removed even
// with concurrent writers.
func (r *Repository) PurgeInactiveBefore(ctx context.Context, cutoff time.Time) (int, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM crm.customers WHERE %s`, inactivePredicate)
	if err := tx.QueryRowContext(ctx, countQuery, cutoff).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count inactive customers: %w", err)
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM crm.customers WHERE %s`, inactivePredicate)
	result, err := tx.ExecContext(ctx, deleteQuery, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete inactive customers: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if int(deleted) != count {
		return 0, fmt.Errorf("inactive customer count changed during delete: counted %d, deleted %d", count, deleted)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return count, nil
}
