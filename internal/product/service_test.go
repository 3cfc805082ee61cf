package product

import (
	"context"
	"errors"
	"testing"

	"github.com/crmsuite/crm-service/internal/pagination"
	"github.com/shopspring/decimal"
)

type mockRepository struct {
	createProductFunc func(ctx context.Context, req CreateProductRequest) (*ProductResponse, error)
	listProductsFunc  func(ctx context.Context, filter Filter, limit, offset int) ([]ProductResponse, int, error)
	getProductFunc    func(ctx context.Context, id string) (*ProductResponse, error)
	restockFunc       func(ctx context.Context) ([]RestockedProduct, error)
}

func (m *mockRepository) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	return m.createProductFunc(ctx, req)
}

func (m *mockRepository) ListProducts(ctx context.Context, filter Filter, limit, offset int) ([]ProductResponse, int, error) {
	return m.listProductsFunc(ctx, filter, limit, offset)
}

func (m *mockRepository) GetProduct(ctx context.Context, id string) (*ProductResponse, error) {
	return m.getProductFunc(ctx, id)
}

func (m *mockRepository) RestockLowStock(ctx context.Context) ([]RestockedProduct, error) {
	return m.restockFunc(ctx)
}

func TestService_CreateProduct(t *testing.T) {
	repo := &mockRepository{
		createProductFunc: func(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
			return &ProductResponse{ID: "p1", Name: req.Name, Price: req.Price, Stock: req.Stock}, nil
		},
	}
	svc := NewService(repo)

	prod, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name:  "Laptop",
		Price: decimal.NewFromFloat(999.99),
		Stock: 5,
	})
	if err != nil {
		t.Fatalf("CreateProduct returned error: %v", err)
	}
	if prod.Name != "Laptop" {
		t.Errorf("expected name Laptop, got %s", prod.Name)
	}
}

func TestService_CreateProduct_Validation(t *testing.T) {
	svc := NewService(&mockRepository{})

	tests := []struct {
		name    string
		req     CreateProductRequest
		wantErr error
	}{
		{"missing name", CreateProductRequest{Price: decimal.NewFromInt(10)}, ErrMissingName},
		{"negative price", CreateProductRequest{Name: "X", Price: decimal.NewFromInt(-1)}, ErrInvalidPrice},
		{"negative stock", CreateProductRequest{Name: "X", Price: decimal.NewFromInt(10), Stock: -1}, ErrInvalidStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), tt.req)
			if err != tt.wantErr {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestService_ListProducts_PassesFilter(t *testing.T) {
	var gotFilter Filter
	var gotLimit, gotOffset int
	repo := &mockRepository{
		listProductsFunc: func(ctx context.Context, filter Filter, limit, offset int) ([]ProductResponse, int, error) {
			gotFilter = filter
			gotLimit = limit
			gotOffset = offset
			return []ProductResponse{}, 0, nil
		},
	}
	svc := NewService(repo)

	filter := Filter{Name: "lap", LowStock: true}
	_, err := svc.ListProducts(context.Background(), filter, pagination.Params{Page: 3, Limit: 10})
	if err != nil {
		t.Fatalf("ListProducts returned error: %v", err)
	}
	if gotFilter.Name != "lap" || !gotFilter.LowStock {
		t.Errorf("filter not passed through: %+v", gotFilter)
	}
	if gotLimit != 10 || gotOffset != 20 {
		t.Errorf("expected limit 10 offset 20, got limit %d offset %d", gotLimit, gotOffset)
	}
}

func TestService_GetProduct_NotFound(t *testing.T) {
	repo := &mockRepository{
		getProductFunc: func(ctx context.Context, id string) (*ProductResponse, error) {
			return nil, ErrProductNotFound
		},
	}
	svc := NewService(repo)

	_, err := svc.GetProduct(context.Background(), "missing")
	if err != ErrProductNotFound {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestService_GetProduct_RepositoryError(t *testing.T) {
	repo := &mockRepository{
		getProductFunc: func(ctx context.Context, id string) (*ProductResponse, error) {
			return nil, errors.New("db down")
		},
	}
	svc := NewService(repo)

	_, err := svc.GetProduct(context.Background(), "p1")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrProductNotFound) {
		t.Error("unexpected not-found error")
	}
}

// fakeOperationMetrics records operation labels handed to the metrics recorder
type fakeOperationMetrics struct {
	operations []string
}

func (f *fakeOperationMetrics) RecordProductOperation(ctx context.Context, operation string) {
	f.operations = append(f.operations, operation)
}

func TestService_RecordsOperationMetrics(t *testing.T) {
	repo := &mockRepository{
		createProductFunc: func(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
			return &ProductResponse{ID: "p1", Name: req.Name, Price: req.Price, Stock: req.Stock}, nil
		},
		getProductFunc: func(ctx context.Context, id string) (*ProductResponse, error) {
			return nil, ErrProductNotFound
		},
	}
	metrics := &fakeOperationMetrics{}
	svc := NewServiceWithMetrics(repo, metrics)

	_, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name:  "Laptop",
		Price: decimal.NewFromFloat(999.99),
	})
	if err != nil {
		t.Fatalf("CreateProduct returned error: %v", err)
	}

	// A not-found lookup must not count as an operation
	if _, err := svc.GetProduct(context.Background(), "missing"); err != ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got: %v", err)
	}

	if len(metrics.operations) != 1 || metrics.operations[0] != "create" {
		t.Errorf("expected recorded operations [create], got %v", metrics.operations)
	}
}
