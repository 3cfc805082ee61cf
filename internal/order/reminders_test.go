package order

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/WatchBeam/clock"
	"github.com/crmsuite/crm-service/internal/joblog"
)

type fakeReminderStore struct {
	reminders []PendingReminder
	err       error
	gotSince  time.Time
}

func (f *fakeReminderStore) ListPendingReminders(ctx context.Context, since time.Time) ([]PendingReminder, error) {
	f.gotSince = since
	if f.err != nil {
		return nil, f.err
	}
	// Mimic the window predicate so tests can seed orders on both sides of it
	var out []PendingReminder
	for _, rem := range f.reminders {
		if !rem.OrderDate.Before(since) {
			out = append(out, rem)
		}
	}
	return out, nil
}

func TestReminderService_Run(t *testing.T) {
	mc := clock.NewMockClock()
	now := mc.Now()

	store := &fakeReminderStore{
		reminders: []PendingReminder{
			{OrderID: "ord-1", CustomerEmail: "alice@example.com", OrderDate: now.Add(-2 * 24 * time.Hour)},
			{OrderID: "ord-2", CustomerEmail: "bob@example.com", OrderDate: now.Add(-6 * 24 * time.Hour)},
			{OrderID: "ord-old", CustomerEmail: "carol@example.com", OrderDate: now.Add(-8 * 24 * time.Hour)},
		},
	}

	logPath := filepath.Join(t.TempDir(), "order_reminders_log.txt")
	svc := NewReminderService(store, joblog.NewAppender(logPath), mc)

	count, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 reminders, got %d", count)
	}
	if want := now.Add(-ReminderWindow); !store.gotSince.Equal(want) {
		t.Errorf("expected since %s, got %s", want, store.gotSince)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %q", len(lines), string(data))
	}
	if want := joblog.FormatTime(now) + " - Order ord-1 reminder for alice@example.com"; lines[0] != want {
		t.Errorf("expected log line %q, got %q", want, lines[0])
	}
	if !strings.Contains(lines[1], "Order ord-2 reminder for bob@example.com") {
		t.Errorf("unexpected second log line: %q", lines[1])
	}
	if strings.Contains(string(data), "ord-old") {
		t.Error("order outside the window must not be logged")
	}
}

func TestReminderService_Run_NoOrders(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "order_reminders_log.txt")
	svc := NewReminderService(&fakeReminderStore{}, joblog.NewAppender(logPath), clock.NewMockClock())

	count, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 reminders, got %d", count)
	}
	if _, err := os.Stat(logPath); !os.IsNotExist(err) {
		t.Error("expected no log file when there are no reminders")
	}
}

func TestReminderService_Run_StoreError(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "order_reminders_log.txt")
	store := &fakeReminderStore{err: errors.New("connection refused")}
	svc := NewReminderService(store, joblog.NewAppender(logPath), clock.NewMockClock())

	if _, err := svc.Run(context.Background()); err == nil {
		t.Fatal("expected error when store fails")
	}
}
