package customer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/WatchBeam/clock"
	"github.com/crmsuite/crm-service/internal/joblog"
	"github.com/crmsuite/crm-service/internal/messaging"
)

// RetentionPeriod defines how long a customer without orders is kept (1 year)
const RetentionPeriod = 365 * 24 * time.Hour

// InactiveStore is the data access needed by the cleanup job. Repository
// implements it.
type InactiveStore interface {
	CountInactiveBefore(ctx context.Context, cutoff time.Time) (int, error)
	PurgeInactiveBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// CleanupMetricsRecorder interface for recording cleanup metrics
type CleanupMetricsRecorder interface {
	RecordCustomersDeleted(ctx context.Context, count int)
}

// CleanupService deletes customers that have no orders and were created more
// than a year ago, and reports each run to the cleanup log file.
type CleanupService struct {
	store     InactiveStore
	jobLog    *joblog.Appender
	clock     clock.Clock
	publisher messaging.PublisherInterface
	metrics   CleanupMetricsRecorder
}

// NewCleanupService creates a new cleanup service. publisher and metrics may
// be nil when no broker or metrics pipeline is available.
func NewCleanupService(store InactiveStore, jobLog *joblog.Appender, clk clock.Clock, publisher messaging.PublisherInterface, metrics CleanupMetricsRecorder) *CleanupService {
	return &CleanupService{
		store:     store,
		jobLog:    jobLog,
		clock:     clk,
		publisher: publisher,
		metrics:   metrics,
	}
}

// CountEligible returns how many customers the next run would delete.
func (s *CleanupService) CountEligible(ctx context.Context) (int, error) {
	cutoff := s.clock.Now().Add(-RetentionPeriod)
	return s.store.CountInactiveBefore(ctx, cutoff)
}

// Run deletes all eligible customers and appends one result line to the log
// file. The count is captured in the same transaction as the delete, so the
// logged number matches exactly the rows removed. The log line is written
// even when nothing was deleted.
func (s *CleanupService) Run(ctx context.Context) (int, error) {
	cutoff := s.clock.Now().Add(-RetentionPeriod)
	log.Printf("Starting cleanup of customers without orders created before %s", cutoff.Format(time.RFC3339))

	count, err := s.store.PurgeInactiveBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge inactive customers: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordCustomersDeleted(ctx, count)
	}

	line := fmt.Sprintf("%s - Deleted %d inactive customers",
		joblog.FormatTime(s.clock.Now()), count)
	if err := s.jobLog.Append(line); err != nil {
		return count, fmt.Errorf("failed to write cleanup log: %w", err)
	}

	if s.publisher != nil {
		event := messaging.CleanupCompletedEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventCleanupCompleted),
			Data: messaging.CleanupCompletedData{
				DeletedCount: count,
				Cutoff:       cutoff,
			},
		}
		if err := s.publisher.Publish(ctx, messaging.EventCleanupCompleted, event); err != nil {
			log.Printf("Warning: failed to publish cleanup event: %v", err)
		}
	}

	log.Printf("Cleanup completed: %d inactive customers deleted", count)
	return count, nil
}
