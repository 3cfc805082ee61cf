package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// SetupTestDB creates a connection to the test database. The connection
// string can be overridden with TEST_DATABASE_URL.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	connStr := os.Getenv("TEST_DATABASE_URL")
	if connStr == "" {
		connStr = "host=localhost port=5432 user=crm password=crm dbname=crm_test sslmode=disable"
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	return db
}

// CleanupTestDB removes all CRM rows created during a test
func CleanupTestDB(t *testing.T, db *sql.DB) {
	t.Helper()

	_, err := db.Exec("TRUNCATE TABLE crm.order_products, crm.orders, crm.products, crm.customers CASCADE")
	if err != nil {
		t.Logf("Warning: Failed to clean up CRM tables: %v", err)
	}
}

// CreateTestCustomer inserts a customer with the given creation time and
// returns its id
func CreateTestCustomer(t *testing.T, db *sql.DB, name, email string, createdAt time.Time) string {
	t.Helper()

	id := uuid.New().String()
	_, err := db.Exec(
		`INSERT INTO crm.customers (id, name, email, created_at) VALUES ($1, $2, $3, $4)`,
		id, name, email, createdAt,
	)
	if err != nil {
		t.Fatalf("Failed to create test customer: %v", err)
	}
	return id
}

// CreateTestProduct inserts a product and returns its id
func CreateTestProduct(t *testing.T, db *sql.DB, name string, price decimal.Decimal, stock int) string {
	t.Helper()

	id := uuid.New().String()
	_, err := db.Exec(
		`INSERT INTO crm.products (id, name, price, stock, created_at) VALUES ($1, $2, $3, $4, NOW())`,
		id, name, price, stock,
	)
	if err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}
	return id
}

// CreateTestOrder inserts an order for a customer and returns its id
func CreateTestOrder(t *testing.T, db *sql.DB, customerID string, totalAmount decimal.Decimal, orderDate time.Time) string {
	t.Helper()

	id := uuid.New().String()
	_, err := db.Exec(
		`INSERT INTO crm.orders (id, customer_id, total_amount, order_date, created_at) VALUES ($1, $2, $3, $4, NOW())`,
		id, customerID, totalAmount, orderDate,
	)
	if err != nil {
		t.Fatalf("Failed to create test order: %v", err)
	}
	return id
}

// CountRows returns the row count of a table, for test assertions
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return count
}
