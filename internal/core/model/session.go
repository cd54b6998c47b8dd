package model

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// DefaultTaskLabel is substituted when a session completes with an
// empty task label.
const DefaultTaskLabel = "Unnamed session"

// SessionRecord is an immutable record of one completed session.
type SessionRecord struct {
	ID              string
	Category        Category
	TaskLabel       string
	CompletedAt     time.Time
	DurationMinutes int
}

// NewSessionRecord builds the record for a session of the given
// category completing at the given moment. An empty or whitespace task
// label falls back to DefaultTaskLabel.
func NewSessionRecord(category Category, taskLabel string, completedAt time.Time) SessionRecord {
	taskLabel = strings.TrimSpace(taskLabel)
	if taskLabel == "" {
		taskLabel = DefaultTaskLabel
	}
	return SessionRecord{
		ID:              ulid.Make().String(),
		Category:        category,
		TaskLabel:       taskLabel,
		CompletedAt:     completedAt,
		DurationMinutes: int(category.Duration() / time.Minute),
	}
}

// Statistics is the aggregate view derived from the ledger.
type Statistics struct {
	Count             int
	TotalStudyMinutes int
}
