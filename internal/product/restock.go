package product

import (
	"context"
	"fmt"
	"log"

	"github.com/WatchBeam/clock"
	"github.com/crmsuite/crm-service/internal/joblog"
	"github.com/crmsuite/crm-service/internal/messaging"
)

const (
	// LowStockThreshold marks a product as needing restock
	LowStockThreshold = 10
	// RestockIncrement is added to the stock of each low-stock product
	RestockIncrement = 10
)

// RestockStore is the data access needed by the restock job. Repository
// implements it.
type RestockStore interface {
	RestockLowStock(ctx context.Context) ([]RestockedProduct, error)
}

// RestockMetricsRecorder interface for recording restock metrics
type RestockMetricsRecorder interface {
	RecordProductsRestocked(ctx context.Context, count int)
}

// RestockService tops up products that are running low and reports each
// updated product to the low-stock log file.
type RestockService struct {
	store     RestockStore
	jobLog    *joblog.Appender
	clock     clock.Clock
	publisher messaging.PublisherInterface
	metrics   RestockMetricsRecorder
}

// NewRestockService creates a new restock service. publisher and metrics may
// be nil when no broker or metrics pipeline is available.
func NewRestockService(store RestockStore, jobLog *joblog.Appender, clk clock.Clock, publisher messaging.PublisherInterface, metrics RestockMetricsRecorder) *RestockService {
	return &RestockService{
		store:     store,
		jobLog:    jobLog,
		clock:     clk,
		publisher: publisher,
		metrics:   metrics,
	}
}

// Run restocks all low-stock products and appends one log line per updated
// product. A run that finds nothing to restock writes no lines.
func (s *RestockService) Run(ctx context.Context) (int, error) {
	log.Printf("Starting restock of products with stock below %d", LowStockThreshold)

	restocked, err := s.store.RestockLowStock(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to restock products: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordProductsRestocked(ctx, len(restocked))
	}

	if len(restocked) > 0 {
		timestamp := joblog.FormatTime(s.clock.Now())
		lines := make([]string, 0, len(restocked))
		for _, p := range restocked {
			lines = append(lines, fmt.Sprintf("%s - %s restocked to %d", timestamp, p.Name, p.Stock))
		}
		if err := s.jobLog.Append(lines...); err != nil {
			return len(restocked), fmt.Errorf("failed to write restock log: %w", err)
		}
	}

	if s.publisher != nil && len(restocked) > 0 {
		event := messaging.ProductsRestockedEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventProductsRestocked),
			Data: messaging.ProductsRestockedData{
				ProductCount: len(restocked),
			},
		}
		if err := s.publisher.Publish(ctx, messaging.EventProductsRestocked, event); err != nil {
			log.Printf("Warning: failed to publish restock event: %v", err)
		}
	}

	log.Printf("Restock completed: %d products updated", len(restocked))
	return len(restocked), nil
}
