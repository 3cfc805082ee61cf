package customer

import (
	"context"
	"fmt"
	"regexp"

	"github.com/crmsuite/crm-service/internal/pagination"
)

// phonePattern accepts international numbers like +1234567890.
var phonePattern = regexp.MustCompile(`^\+[0-9]\d{1,14}$`)

// MetricsRecorder interface for recording customer operation metrics
type MetricsRecorder interface {
	RecordCustomerOperation(ctx context.Context, operation string)
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
		s.metrics.RecordCustomerOperation(ctx, operation)
	}
}

func (s *Service) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	if req.Name == "" {
		return nil, ErrMissingName
	}
	if req.Email == "" {
		return nil, ErrMissingEmail
	}
	if req.Phone != "" && !phonePattern.MatchString(req.Phone) {
		return nil, ErrInvalidPhone
	}

	cust, err := s.repo.CreateCustomer(ctx, req)
	if err != nil {
		if err == ErrEmailExists {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.record(ctx, "create")
	return cust, nil
}

// ListCustomers retrieves customers matching the filter with pagination
func (s *Service) ListCustomers(ctx context.Context, filter Filter, params pagination.Params) (*PaginatedListResponse, error) {
	params.Validate()

	customers, totalCount, err := s.repo.ListCustomers(ctx, filter, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	meta := params.CalculateMeta(totalCount)

	s.record(ctx, "list")
	return &PaginatedListResponse{
		Success:    true,
		Customers:  customers,
		Pagination: meta,
	}, nil
}

func (s *Service) GetCustomer(ctx context.Context, id string) (*CustomerResponse, error) {
	cust, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		if err == ErrCustomerNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	s.record(ctx, "get")
	return cust, nil
}

func (s *Service) DeleteCustomer(ctx context.Context, id string) error {
	err := s.repo.DeleteCustomer(ctx, id)
	if err != nil {
		if err == ErrCustomerNotFound {
			return err
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	s.record(ctx, "delete")
	return nil
}
