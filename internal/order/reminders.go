package order

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/WatchBeam/clock"
	"github.com/crmsuite/crm-service/internal/joblog"
)

// ReminderWindow is how far back the reminder job looks for orders.
const ReminderWindow = 7 * 24 * time.Hour

// ReminderStore is the data access needed by the reminder job. Repository
// implements it.
type ReminderStore interface {
	ListPendingReminders(ctx context.Context, since time.Time) ([]PendingReminder, error)
}

// ReminderService finds orders placed within the reminder window and records
// one reminder line per order in the reminders log file.
type ReminderService struct {
	store  ReminderStore
	jobLog *joblog.Appender
	clock  clock.Clock
}

func NewReminderService(store ReminderStore, jobLog *joblog.Appender, clk clock.Clock) *ReminderService {
	return &ReminderService{
		store:  store,
		jobLog: jobLog,
		clock:  clk,
	}
}

// Run logs a reminder for every order placed within the last seven days and
// returns how many reminders were recorded.
func (s *ReminderService) Run(ctx context.Context) (int, error) {
	since := s.clock.Now().Add(-ReminderWindow)
	log.Printf("Collecting order reminders since %s", since.Format(time.RFC3339))

	reminders, err := s.store.ListPendingReminders(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending reminders: %w", err)
	}

	if len(reminders) > 0 {
		timestamp := joblog.FormatTime(s.clock.Now())
		lines := make([]string, 0, len(reminders))
		for _, rem := range reminders {
			lines = append(lines, fmt.Sprintf("%s - Order %s reminder for %s", timestamp, rem.OrderID, rem.CustomerEmail))
		}
		if err := s.jobLog.Append(lines...); err != nil {
			return len(reminders), fmt.Errorf("failed to write reminders log: %w", err)
		}
	}

	log.Printf("Reminders completed: %d orders within the window", len(reminders))
	return len(reminders), nil
}
