package customer

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

// fakeCustomer is a row in the in-memory cleanup store
type fakeCustomer struct {
	id        string
	createdAt time.Time
	orders    int
}

// fakeInactiveStore applies the cleanup predicate in memory: zero orders and
// created strictly before the cutoff.
type fakeInactiveStore struct {
	customers []fakeCustomer
	purgeErr  error
}

func (f *fakeInactiveStore) eligible(c fakeCustomer, cutoff time.Time) bool {
	return c.orders == 0 && c.createdAt.Before(cutoff)
}

func (f *fakeInactiveStore) CountInactiveBefore(ctx context.Context, cutoff time.Time) (int, error) {
	count := 0
	for _, c := range f.customers {
		if f.eligible(c, cutoff) {
			count++
		}
	}
	return count, nil
}

func (f *fakeInactiveStore) PurgeInactiveBefore(ctx context.Context, cutoff time.Time) (int, error) {
	if f.purgeErr != nil {
		return 0, f.purgeErr
	}
	var kept []fakeCustomer
	deleted := 0
	for _, c := range f.customers {
		if f.eligible(c, cutoff) {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	f.customers = kept
	return deleted, nil
}

func (f *fakeInactiveStore) has(id string) bool {
	for _, c := range f.customers {
		if c.id == id {
			return true
		}
	}
	return false
}

func newTestCleanup(t *testing.T, store *fakeInactiveStore, clk clock.Clock) (*CleanupService, string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "customer_cleanup_log.txt")
	svc := NewCleanupService(store, joblog.NewAppender(logPath), clk, nil, nil)
	return svc, logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read cleanup log: %v", err)
	}
	return string(data)
}

// TestCleanupRun_Scenario tests the mixed scenario: only the old customer
// without orders is deleted and the count is logged
func TestCleanupRun_Scenario(t *testing.T) {
	mc := clock.NewMockClock()
	now := mc.Now()

	store := &fakeInactiveStore{customers: []fakeCustomer{
		{id: "A", createdAt: now.Add(-400 * 24 * time.Hour), orders: 0},
		{id: "B", createdAt: now.Add(-400 * 24 * time.Hour), orders: 1},
		{id: "C", createdAt: now.Add(-10 * 24 * time.Hour), orders: 0},
	}}
	svc, logPath := newTestCleanup(t, store, mc)

	count, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 deletion, got %d", count)
	}
	if store.has("A") {
		t.Error("Expected customer A (old, no orders) to be deleted")
	}
	if !store.has("B") {
		t.Error("Expected customer B (has an order) to be kept")
	}
	if !store.has("C") {
		t.Error("Expected customer C (recent) to be kept")
	}

	wantLine := mc.Now().Format(joblog.TimeFormat) + " - Deleted 1 inactive customers\n"
	if got := readLog(t, logPath); got != wantLine {
		t.Errorf("Expected log %q, got %q", wantLine, got)
	}
}

// TestCleanupRun_CustomerWithOrdersNeverDeleted tests that order history
// protects a customer regardless of age
func TestCleanupRun_CustomerWithOrdersNeverDeleted(t *testing.T) {
	mc := clock.NewMockClock()
	now := mc.Now()

	store := &fakeInactiveStore{customers: []fakeCustomer{
		{id: "ancient", createdAt: now.Add(-10 * 365 * 24 * time.Hour), orders: 3},
	}}
	svc, _ := newTestCleanup(t, store, mc)

	count, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 deletions, got %d", count)
	}
	if !store.has("ancient") {
		t.Error("Expected customer with orders to be kept")
	}
}

// TestCleanupRun_BoundaryNotDeleted tests that a customer created exactly one
// year ago survives (strict less-than)
func TestCleanupRun_BoundaryNotDeleted(t *testing.T) {
	mc := clock.NewMockClock()
	now := mc.Now()

	store := &fakeInactiveStore{customers: []fakeCustomer{
		{id: "boundary", createdAt: now.Add(-RetentionPeriod), orders: 0},
		{id: "just-over", createdAt: now.Add(-RetentionPeriod - time.Second), orders: 0},
	}}
	svc, _ := newTestCleanup(t, store, mc)

	count, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 deletion, got %d", count)
	}
	if !store.has("boundary") {
		t.Error("Expected boundary customer to be kept")
	}
	if store.has("just-over") {
		t.Error("Expected customer just past the cutoff to be deleted")
	}
}

// TestCleanupRun_Idempotent tests that an immediate second run deletes
// nothing and logs a zero count
func TestCleanupRun_Idempotent(t *testing.T) {
	mc := clock.NewMockClock()
	now := mc.Now()

	store := &fakeInactiveStore{customers: []fakeCustomer{
		{id: "old-1", createdAt: now.Add(-500 * 24 * time.Hour), orders: 0},
		{id: "old-2", createdAt: now.Add(-366 * 24 * time.Hour), orders: 0},
	}}
	svc, logPath := newTestCleanup(t, store, mc)

	first, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	if first != 2 {
		t.Errorf("Expected 2 deletions on first run, got %d", first)
	}

	second, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	if second != 0 {
		t.Errorf("Expected 0 deletions on second run, got %d", second)
	}

	lines := strings.Split(strings.TrimRight(readLog(t, logPath), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 log lines, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[0], "Deleted 2 inactive customers") {
		t.Errorf("Unexpected first log line: %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "Deleted 0 inactive customers") {
		t.Errorf("Unexpected second log line: %q", lines[1])
	}
}

// TestCleanupRun_StoreError tests that a failing store aborts the run with
// no log line written
func TestCleanupRun_StoreError(t *testing.T) {
	mc := clock.NewMockClock()
	store := &fakeInactiveStore{purgeErr: errors.New("connection refused")}
	svc, logPath := newTestCleanup(t, store, mc)

	_, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	if _, statErr := os.Stat(logPath); !os.IsNotExist(statErr) {
		t.Error("Expected no log file after a failed run")
	}
}

// TestCleanupRun_LogWriteError tests that an unwritable log file surfaces
// as an error after the delete
func TestCleanupRun_LogWriteError(t *testing.T) {
	mc := clock.NewMockClock()
	now := mc.Now()

	store := &fakeInactiveStore{customers: []fakeCustomer{
		{id: "old", createdAt: now.Add(-400 * 24 * time.Hour), orders: 0},
	}}
	badPath := filepath.Join(t.TempDir(), "missing-dir", "log.txt")
	svc := NewCleanupService(store, joblog.NewAppender(badPath), mc, nil, nil)

	count, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("Expected error for unwritable log, got nil")
	}
	if count != 1 {
		t.Errorf("Expected the delete to have happened (count 1), got %d", count)
	}
}

// fakeCleanupMetrics records deleted counts handed to the metrics recorder
type fakeCleanupMetrics struct {
	counts []int
}

func (f *fakeCleanupMetrics) RecordCustomersDeleted(ctx context.Context, count int) {
	f.counts = append(f.counts, count)
}

// TestCleanupRun_RecordsDeletedMetric tests that each run reports its deleted
// count to the metrics recorder, including zero-deletion runs
func TestCleanupRun_RecordsDeletedMetric(t *testing.T) {
	mc := clock.NewMockClock()
	now := mc.Now()

	store := &fakeInactiveStore{customers: []fakeCustomer{
		{id: "old-1", createdAt: now.Add(-400 * 24 * time.Hour), orders: 0},
		{id: "old-2", createdAt: now.Add(-500 * 24 * time.Hour), orders: 0},
	}}
	metrics := &fakeCleanupMetrics{}
	logPath := filepath.Join(t.TempDir(), "customer_cleanup_log.txt")
	svc := NewCleanupService(store, joblog.NewAppender(logPath), mc, nil, metrics)

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if len(metrics.counts) != 2 {
		t.Fatalf("Expected 2 recorded counts, got %d", len(metrics.counts))
	}
	if metrics.counts[0] != 2 {
		t.Errorf("Expected first run to record 2 deletions, got %d", metrics.counts[0])
	}
	if metrics.counts[1] != 0 {
		t.Errorf("Expected second run to record 0 deletions, got %d", metrics.counts[1])
	}
}

// TestCountEligible tests the pre-run count helper
func TestCountEligible(t *testing.T) {
	mc := clock.NewMockClock()
	now := mc.Now()

	store := &fakeInactiveStore{customers: []fakeCustomer{
		{id: "old", createdAt: now.Add(-400 * 24 * time.Hour), orders: 0},
		{id: "recent", createdAt: now.Add(-5 * 24 * time.Hour), orders: 0},
	}}
	svc, _ := newTestCleanup(t, store, mc)

	count, err := svc.CountEligible(context.Background())
	if err != nil {
		t.Fatalf("CountEligible failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 eligible customer, got %d", count)
	}
}
