package report

import (
	"context"
	"fmt"
	"log"

	"github.com/WatchBeam/clock"
	"github.com/crmsuite/crm-service/internal/joblog"
)

// Service produces a one-line dataset summary and appends it to the report
// log file.
type Service struct {
	repo   RepositoryInterface
	jobLog *joblog.Appender
	clock  clock.Clock
}

func NewService(repo RepositoryInterface, jobLog *joblog.Appender, clk clock.Clock) *Service {
	return &Service{
		repo:   repo,
		jobLog: jobLog,
		clock:  clk,
	}
}

// Run fetches the totals and writes the report line. The totals are returned
// so callers can print them.
func (s *Service) Run(ctx context.Context) (*Totals, error) {
	log.Printf("Generating CRM report")

	totals, err := s.repo.FetchTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}

	line := fmt.Sprintf("%s - Report: %d customers, %d orders, %s revenue",
		joblog.FormatTime(s.clock.Now()),
		totals.Customers,
		totals.Orders,
		totals.TotalRevenue.String(),
	)
	if err := s.jobLog.Append(line); err != nil {
		return totals, fmt.Errorf("failed to write report log: %w", err)
	}

	log.Printf("Report completed: %d customers, %d orders, %s revenue",
		totals.Customers, totals.Orders, totals.TotalRevenue.String())
	return totals, nil
}
