package engine

import (
	"time"

	"pomotray/internal/core/model"
)

// Phase represents the current engine mode.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseRunning Phase = "running"
	PhasePaused  Phase = "paused"
)

// EventType defines the type of engine event.
type EventType string

const (
	// EventStateChange fires on any start/pause/reset/select transition,
	// and as the final step of session completion.
	EventStateChange EventType = "state_change"
	// EventProgress fires once per consumed tick while running.
	EventProgress EventType = "progress"
	// EventSessionCompleted fires exactly once per session, at the zero
	// crossing, before the ledger append and the implicit reset.
	EventSessionCompleted EventType = "session_completed"
	// EventStatisticsChange fires whenever the ledger contents change.
	EventStatisticsChange EventType = "statistics_change"
	// EventLedgerError reports the nothing-to-clear condition.
	EventLedgerError EventType = "ledger_error"
)

// Event is an engine update for observers. Phase, Category and
// Remaining are always a consistent snapshot, so a renderer can refresh
// from any event without querying the engine.
type Event struct {
	Type      EventType
	Phase     Phase
	Category  model.Category
	Remaining time.Duration
	Record    *model.SessionRecord
	Stats     *model.Statistics
	Message   string
	At        time.Time
}
