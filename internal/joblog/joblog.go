// Package joblog appends timestamped result lines to the plain-text log
// files that scheduled CRM jobs report into.
package joblog

import (
	"fmt"
	"os"
	"time"
)

// TimeFormat is the timestamp layout used by most job log lines.
const TimeFormat = "2006-01-02 15:04:05"

// HeartbeatTimeFormat is the layout used by the heartbeat log.
const HeartbeatTimeFormat = "02/01/2006-15:04:05"

// Default log file locations for each scheduled job.
const (
	CleanupLogPath   = "/tmp/customer_cleanup_log.txt"
	HeartbeatLogPath = "/tmp/crm_heartbeat_log.txt"
	LowStockLogPath  = "/tmp/low_stock_updates_log.txt"
	RemindersLogPath = "/tmp/order_reminders_log.txt"
	ReportLogPath    = "/tmp/crm_report_log.txt"
)

// Appender writes lines to a single append-only log file.
type Appender struct {
	path string
}

// NewAppender creates an appender for the given log file path.
func NewAppender(path string) *Appender {
	return &Appender{path: path}
}

// Path returns the log file location.
func (a *Appender) Path() string {
	return a.path
}

// Append writes each line to the log file, terminated with a newline.
// The file is created if it does not exist. All lines of one call are
// written through a single open file handle so a job's output stays
// contiguous.
func (a *Appender) Append(lines ...string) error {
	if len(lines) == 0 {
		return nil
	}

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", a.path, err)
	}

	for _, line := range lines {
		if _, err := f.WriteString(line + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("failed to write to log file %s: %w", a.path, err)
		}
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close log file %s: %w", a.path, err)
	}
	return nil
}

// FormatTime renders a timestamp in the standard job log layout.
func FormatTime(t time.Time) string {
	return t.Format(TimeFormat)
}
