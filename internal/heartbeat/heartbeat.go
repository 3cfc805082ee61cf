package heartbeat

import (
	"context"
	"fmt"
	"log"

	"github.com/WatchBeam/clock"
	"github.com/crmsuite/crm-service/internal/joblog"
)

// Pinger reports whether the backing data store is reachable. *sql.DB
// satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service appends a liveness line on every run so operators can confirm the
// scheduler is firing. A reachable data store is noted on the same line.
type Service struct {
	pinger Pinger
	jobLog *joblog.Appender
	clock  clock.Clock
}

// NewService creates a heartbeat service. pinger may be nil when no data
// store check is wanted.
func NewService(pinger Pinger, jobLog *joblog.Appender, clk clock.Clock) *Service {
	return &Service{
		pinger: pinger,
		jobLog: jobLog,
		clock:  clk,
	}
}

// Run writes the heartbeat line. A failing data store ping does not fail the
// run; the line records the degraded state instead.
func (s *Service) Run(ctx context.Context) error {
	line := fmt.Sprintf("%s CRM is alive", s.clock.Now().Format(joblog.HeartbeatTimeFormat))

	if s.pinger != nil {
		if err := s.pinger.PingContext(ctx); err != nil {
			log.Printf("Warning: data store unreachable during heartbeat: %v", err)
			line += " (data store unreachable)"
		}
	}

	if err := s.jobLog.Append(line); err != nil {
		return fmt.Errorf("failed to write heartbeat log: %w", err)
	}

	return nil
}
