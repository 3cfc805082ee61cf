package product

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/WatchBeam/clock"
	"github.com/crmsuite/crm-service/internal/joblog"
)

type fakeRestockStore struct {
	restocked []RestockedProduct
	err       error
	calls     int
}

func (f *fakeRestockStore) RestockLowStock(ctx context.Context) ([]RestockedProduct, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.restocked, nil
}

func TestRestockService_Run(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "low_stock_updates_log.txt")
	store := &fakeRestockStore{
		restocked: []RestockedProduct{
			{ID: "p1", Name: "Laptop", Stock: 15},
			{ID: "p2", Name: "Mouse", Stock: 12},
		},
	}

	mc := clock.NewMockClock()
	timestamp := joblog.FormatTime(mc.Now())

	svc := NewRestockService(store, joblog.NewAppender(logPath), mc, nil, nil)
	count, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 restocked products, got %d", count)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %q", len(lines), string(data))
	}
	if lines[0] != timestamp+" - Laptop restocked to 15" {
		t.Errorf("unexpected first log line: %q", lines[0])
	}
	if lines[1] != timestamp+" - Mouse restocked to 12" {
		t.Errorf("unexpected second log line: %q", lines[1])
	}
}

func TestRestockService_Run_NothingToRestock(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "low_stock_updates_log.txt")
	store := &fakeRestockStore{}

	svc := NewRestockService(store, joblog.NewAppender(logPath), clock.NewMockClock(), nil, nil)
	count, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 restocked products, got %d", count)
	}

	// An empty run must not create or touch the log file
	if _, err := os.Stat(logPath); !os.IsNotExist(err) {
		t.Errorf("expected no log file for an empty run, stat err: %v", err)
	}
}

// fakeRestockMetrics records restocked counts handed to the metrics recorder
type fakeRestockMetrics struct {
	counts []int
}

func (f *fakeRestockMetrics) RecordProductsRestocked(ctx context.Context, count int) {
	f.counts = append(f.counts, count)
}

func TestRestockService_Run_RecordsRestockedMetric(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "low_stock_updates_log.txt")
	store := &fakeRestockStore{
		restocked: []RestockedProduct{
			{ID: "p1", Name: "Laptop", Stock: 15},
			{ID: "p2", Name: "Mouse", Stock: 12},
			{ID: "p3", Name: "Keyboard", Stock: 11},
		},
	}
	metrics := &fakeRestockMetrics{}

	svc := NewRestockService(store, joblog.NewAppender(logPath), clock.NewMockClock(), nil, metrics)
	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(metrics.counts) != 1 {
		t.Fatalf("expected 1 recorded count, got %d", len(metrics.counts))
	}
	if metrics.counts[0] != 3 {
		t.Errorf("expected 3 restocked products recorded, got %d", metrics.counts[0])
	}
}

func TestRestockService_Run_StoreError(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "low_stock_updates_log.txt")
	store := &fakeRestockStore{err: errors.New("connection refused")}

	svc := NewRestockService(store, joblog.NewAppender(logPath), clock.NewMockClock(), nil, nil)
	if _, err := svc.Run(context.Background()); err == nil {
		t.Fatal("expected error when store fails")
	}
	if _, err := os.Stat(logPath); !os.IsNotExist(err) {
		t.Error("expected no log file when the store fails")
	}
}
