// Package txlog provides the append-only transaction log file.
//
// The persisted layout is the one external consumers already parse:
//
//	<name> paid <amount>
//	Payment status: <status>
//
// and must not change.
package txlog

import (
	"fmt"
	"os"
	"sync"

	"github.com/Mgobeaalcoba/payflow-service/internal/model"
	"github.com/Mgobeaalcoba/payflow-service/internal/ports"
)

type FileLog struct {
	mu   sync.Mutex
	file *os.File
}

// Open opens (or creates) the log file in append mode.
func Open(path string) (*FileLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open transaction log: %w", err)
	}
	return &FileLog{file: f}, nil
}

func (l *FileLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

// Append writes one record as a single buffered write under the lock, so
// records from concurrent transactions never interleave mid-line.
func (l *FileLog) Append(rec model.TransactionRecord) error {
	entry := FormatRecord(rec)

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.file.WriteString(entry); err != nil {
		return &ports.IOError{Sink: "transaction log", Err: err}
	}
	return nil
}

// FormatRecord renders the two log lines for one record.
func FormatRecord(rec model.TransactionRecord) string {
	return fmt.Sprintf("%s paid %d\nPayment status: %s\n", rec.CustomerName, rec.Amount, rec.Status)
}
