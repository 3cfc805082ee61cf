package product

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	productID := uuid.New()
	createdAt := time.Now().UTC()

	query := `
        INSERT INTO crm.products (id, name, price, stock, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, name, price, stock, created_at
    `

	var prod ProductResponse
	err := r.db.QueryRowContext(ctx, query,
		productID,
		req.Name,
		req.Price,
		req.Stock,
		createdAt,
	).Scan(
		&prod.ID,
		&prod.Name,
		&prod.Price,
		&prod.Stock,
		&prod.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return &prod, nil
}

func (r *Repository) ListProducts(ctx context.Context, filter Filter, limit, offset int) ([]ProductResponse, int, error) {
	whereClause := "WHERE TRUE"
	args := []interface{}{}
	argIndex := 1

	if filter.Name != "" {
		whereClause += fmt.Sprintf(" AND name ILIKE $%d", argIndex)
		args = append(args, "%"+filter.Name+"%")
		argIndex++
	}
	if filter.MinPrice != nil {
		whereClause += fmt.Sprintf(" AND price >= $%d", argIndex)
		args = append(args, *filter.MinPrice)
		argIndex++
	}
	if filter.MaxPrice != nil {
		whereClause += fmt.Sprintf(" AND price <= $%d", argIndex)
		args = append(args, *filter.MaxPrice)
		argIndex++
	}
	if filter.MinStock != nil {
		whereClause += fmt.Sprintf(" AND stock >= $%d", argIndex)
		args = append(args, *filter.MinStock)
		argIndex++
	}
	if filter.MaxStock != nil {
		whereClause += fmt.Sprintf(" AND stock <= $%d", argIndex)
		args = append(args, *filter.MaxStock)
		argIndex++
	}
	if filter.LowStock {
		whereClause += fmt.Sprintf(" AND stock < $%d", argIndex)
		args = append(args, LowStockThreshold)
		argIndex++
	}

	var totalCount int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM crm.products %s`, whereClause)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, price, stock, created_at
		FROM crm.products
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []ProductResponse
	for rows.Next() {
		var prod ProductResponse
		if err := rows.Scan(&prod.ID, &prod.Name, &prod.Price, &prod.Stock, &prod.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, prod)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	return products, totalCount, nil
}

func (r *Repository) GetProduct(ctx context.Context, id string) (*ProductResponse, error) {
	query := `
		SELECT id, name, price, stock, created_at
		FROM crm.products
		WHERE id = $1
	`

	var prod ProductResponse
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&prod.ID,
		&prod.Name,
		&prod.Price,
		&prod.Stock,
		&prod.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &prod, nil
}

// RestockLowStock bumps every product below the threshold by the restock
// increment and returns the updated rows. Update and read-back happen in one
// statement so concurrent sales cannot skew the reported stock levels.
func (r *Repository) RestockLowStock(ctx context.Context) ([]RestockedProduct, error) {
	query := `
		UPDATE crm.products
		SET stock = stock + $1
		WHERE stock < $2
		RETURNING id, name, stock
	`

	rows, err := r.db.QueryContext(ctx, query, RestockIncrement, LowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to restock low-stock products: %w", err)
	}
	defer rows.Close()

	var restocked []RestockedProduct
	for rows.Next() {
		var p RestockedProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan restocked product: %w", err)
		}
		restocked = append(restocked, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating restocked products: %w", err)
	}

	return restocked, nil
}
