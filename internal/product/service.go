package product

import (
	"context"
	"fmt"

	"github.com/crmsuite/crm-service/internal/pagination"
)

// MetricsRecorder interface for recording product operation metrics
type MetricsRecorder interface {
	RecordProductOperation(ctx context.Context, operation string)
}

type Service struct {
	repo    RepositoryInterface
	metrics MetricsRecorder
}

func NewService(repo RepositoryInterface) *Service {
	return NewServiceWithMetrics(repo, nil)
}

// NewServiceWithMetrics creates a service that records an operation metric
// for each successful call.
func NewServiceWithMetrics(repo RepositoryInterface, metrics MetricsRecorder) *Service {
	return &Service{repo: repo, metrics: metrics}
}

func (s *Service) record(ctx context.Context, operation string) {
	if s.metrics != nil {
		s.metrics.RecordProductOperation(ctx, operation)
	}
}

func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if req.Name == "" {
		return nil, ErrMissingName
	}
	if req.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}
	if req.Stock < 0 {
		return nil, ErrInvalidStock
	}

	prod, err := s.repo.CreateProduct(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.record(ctx, "create")
	return prod, nil
}

// ListProducts retrieves products matching the filter with pagination
func (s *Service) ListProducts(ctx context.Context, filter Filter, params pagination.Params) (*PaginatedListResponse, error) {
	params.Validate()

	products, totalCount, err := s.repo.ListProducts(ctx, filter, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	meta := params.CalculateMeta(totalCount)

	s.record(ctx, "list")
	return &PaginatedListResponse{
		Success:    true,
		Products:   products,
		Pagination: meta,
	}, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*ProductResponse, error) {
	prod, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		if err == ErrProductNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	s.record(ctx, "get")
	return prod, nil
}
