// Package ledger keeps the in-memory log of completed sessions and the
// statistics derived from it. Records live for the process lifetime
// only; nothing is persisted across restarts.
package ledger

import (
	"errors"
	"sync"

	"pomotray/internal/core/model"
)

// ErrNothingToClear indicates a clear request against an empty ledger.
// It is an informational condition for the user, not a failure.
var ErrNothingToClear = errors.New("nothing to clear")

// Ledger is an append-only collection of completed session records.
// Safe for concurrent use.
type Ledger struct {
	mu      sync.Mutex
	records []model.SessionRecord
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Append adds a completed session record. It always succeeds; records
// are never rejected or mutated afterwards.
func (ledger *Ledger) Append(record model.SessionRecord) {
	ledger.mu.Lock()
	ledger.records = append(ledger.records, record)
	ledger.mu.Unlock()
}

// Records returns a copy of the log, most recent first.
func (ledger *Ledger) Records() []model.SessionRecord {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	out := make([]model.SessionRecord, len(ledger.records))
	for i, record := range ledger.records {
		out[len(ledger.records)-1-i] = record
	}
	return out
}

// Len returns the number of records.
func (ledger *Ledger) Len() int {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	return len(ledger.records)
}

// Statistics derives the aggregate view: total record count and the sum
// of minutes over study sessions. Break sessions never contribute
// minutes. An empty ledger yields the zero value.
func (ledger *Ledger) Statistics() model.Statistics {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	stats := model.Statistics{Count: len(ledger.records)}
	for _, record := range ledger.records {
		if record.Category == model.CategoryStudy {
			stats.TotalStudyMinutes += record.DurationMinutes
		}
	}
	return stats
}

// Clear removes every record. Clearing an empty ledger returns
// ErrNothingToClear and leaves nothing changed.
func (ledger *Ledger) Clear() error {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	if len(ledger.records) == 0 {
		return ErrNothingToClear
	}
	ledger.records = nil
	return nil
}
