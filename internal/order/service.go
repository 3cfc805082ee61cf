package order

import (
	"context"
	"fmt"

	"github.com/crmsuite/crm-service/internal/pagination"
)

// MetricsRecorder interface for recording order operation metrics
type MetricsRecorder interface {
	RecordOrderOperation(ctx context.Context, operation string)
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
		s.metrics.RecordOrderOperation(ctx, operation)
	}
}

func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	if req.CustomerID == "" {
		return nil, ErrMissingCustomer
	}
	if len(req.ProductIDs) == 0 {
		return nil, ErrNoProducts
	}

	order, err := s.repo.CreateOrder(ctx, req)
	if err != nil {
		switch err {
		case ErrCustomerNotFound, ErrProductNotFound:
			return nil, err
		default:
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
	}

	s.record(ctx, "create")
	return order, nil
}

// ListOrders retrieves orders matching the filter with pagination
func (s *Service) ListOrders(ctx context.Context, filter Filter, params pagination.Params) (*PaginatedListResponse, error) {
	params.Validate()

	orders, totalCount, err := s.repo.ListOrders(ctx, filter, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	meta := params.CalculateMeta(totalCount)

	s.record(ctx, "list")
	return &PaginatedListResponse{
		Success:    true,
		Orders:     orders,
		Pagination: meta,
	}, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*OrderResponse, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		if err == ErrOrderNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	s.record(ctx, "get")
	return order, nil
}
