package report

import (
	"context"
	"database/sql"
	"fmt"
)

// RepositoryInterface defines the data access for report generation
type RepositoryInterface interface {
	FetchTotals(ctx context.Context) (*Totals, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// FetchTotals reads customer count, order count and summed revenue in a
// single query so the numbers come from one snapshot.
func (r *Repository) FetchTotals(ctx context.Context) (*Totals, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM crm.customers),
			(SELECT COUNT(*) FROM crm.orders),
			(SELECT COALESCE(SUM(total_amount), 0) FROM crm.orders)
	`

	var totals Totals
	err := r.db.QueryRowContext(ctx, query).Scan(
		&totals.Customers,
		&totals.Orders,
		&totals.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report totals: %w", err)
	}

	return &totals, nil
}
