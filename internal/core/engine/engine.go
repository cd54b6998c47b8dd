// Package engine implements the countdown state machine. It owns the
// remaining time, the running flag and the selected category, consumes
// one-second ticks, and hands completed sessions to the ledger. All
// observable behavior is reported through subscriber channels.
package engine

import (
	"errors"
	"sync"
	"time"

	"pomotray/internal/core/ledger"
	"pomotray/internal/core/model"
)

// ErrClearNotConfirmed indicates the caller asked to clear the ledger
// without confirmation. No state is touched.
var ErrClearNotConfirmed = errors.New("clear not confirmed")

// Config contains runtime options for the Engine.
type Config struct {
	TickInterval time.Duration
}

// Engine is the timer state machine. A single mutex serializes every
// operation, so ticks, user commands and ledger hand-offs never
// interleave.
type Engine struct {
	mu        sync.Mutex
	options   Config
	ledger    *ledger.Ledger
	phase     Phase
	category  model.Category
	remaining time.Duration
	taskLabel string
	events    []chan Event
	stopCh    chan struct{}
	active    bool
	now       func() time.Time
}

// Snapshot is a consistent read of the observable timer state.
type Snapshot struct {
	Phase     Phase
	Category  model.Category
	Remaining time.Duration
	TaskLabel string
}

// New creates an Engine bound to the given ledger. The initial state is
// Idle with the study category at its full duration.
func New(sessionLedger *ledger.Ledger, options Config) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}

	return &Engine{
		options:   options,
		ledger:    sessionLedger,
		phase:     PhaseIdle,
		category:  model.CategoryStudy,
		remaining: model.CategoryStudy.Duration(),
		stopCh:    make(chan struct{}),
		now:       time.Now,
	}
}

// Subscribe registers a new observer channel. Delivery is best-effort:
// events are dropped rather than blocking the engine when a subscriber
// falls behind.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	engine.events = append(engine.events, ch)
	engine.mu.Unlock()
	return ch
}

// Run launches the drive loop, feeding the engine one tick per
// TickInterval. The state machine itself never depends on the loop;
// Tick may be called directly instead.
func (engine *Engine) Run() {
	engine.mu.Lock()
	if engine.active {
		engine.mu.Unlock()
		return
	}
	engine.active = true
	engine.mu.Unlock()

	go engine.run()
}

// Stop terminates the drive loop and closes observer channels.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	if !engine.active {
		engine.mu.Unlock()
		return
	}
	close(engine.stopCh)
	engine.active = false
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Snapshot returns the current observable state.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return Snapshot{
		Phase:     engine.phase,
		Category:  engine.category,
		Remaining: engine.remaining,
		TaskLabel: engine.taskLabel,
	}
}

// SelectCategory switches the preset and restores its full duration.
// Silently ignored while the countdown is running, and for values
// outside the closed category set.
func (engine *Engine) SelectCategory(category model.Category) {
	if !category.Valid() {
		return
	}

	engine.mu.Lock()
	if engine.phase == PhaseRunning {
		engine.mu.Unlock()
		return
	}
	engine.category = category
	engine.remaining = category.Duration()
	engine.phase = PhaseIdle
	engine.emitStateLocked()
	engine.mu.Unlock()
}

// Start begins (or resumes) the countdown. No-op if already running.
func (engine *Engine) Start() {
	engine.mu.Lock()
	if engine.phase == PhaseRunning {
		engine.mu.Unlock()
		return
	}
	engine.phase = PhaseRunning
	engine.emitStateLocked()
	engine.mu.Unlock()
}

// Pause halts tick consumption. No-op unless running.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	if engine.phase != PhaseRunning {
		engine.mu.Unlock()
		return
	}
	engine.phase = PhasePaused
	engine.emitStateLocked()
	engine.mu.Unlock()
}

// Reset returns to Idle with the full duration of the current category,
// unlocking category selection.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	engine.phase = PhaseIdle
	engine.remaining = engine.category.Duration()
	engine.emitStateLocked()
	engine.mu.Unlock()
}

// SetTaskLabel stores the label recorded with the next completed
// session.
func (engine *Engine) SetTaskLabel(label string) {
	engine.mu.Lock()
	engine.taskLabel = label
	engine.mu.Unlock()
}

// Tick advances the countdown by one tick interval. Ignored unless
// running. Crossing zero completes the session: the engine stops,
// reports the completed record, appends it to the ledger, reports the
// new statistics, then resets itself for the next session and clears
// the task label.
func (engine *Engine) Tick() {
	engine.tick(engine.now())
}

// ClearLedger empties the session log. An empty ledger yields
// ErrNothingToClear and a ledger-error event; confirmed=false aborts
// with ErrClearNotConfirmed and no side effects.
func (engine *Engine) ClearLedger(confirmed bool) error {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.ledger.Len() == 0 {
		engine.emitLocked(Event{
			Type:      EventLedgerError,
			Phase:     engine.phase,
			Category:  engine.category,
			Remaining: engine.remaining,
			Message:   ledger.ErrNothingToClear.Error(),
			At:        engine.now(),
		})
		return ledger.ErrNothingToClear
	}
	if !confirmed {
		return ErrClearNotConfirmed
	}

	if err := engine.ledger.Clear(); err != nil {
		return err
	}
	stats := engine.ledger.Statistics()
	engine.emitLocked(Event{
		Type:      EventStatisticsChange,
		Phase:     engine.phase,
		Category:  engine.category,
		Remaining: engine.remaining,
		Stats:     &stats,
		At:        engine.now(),
	})
	return nil
}

func (engine *Engine) run() {
	ticker := time.NewTicker(engine.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-engine.stopCh:
			return
		case tickTime := <-ticker.C:
			engine.tick(tickTime)
		}
	}
}

func (engine *Engine) tick(tickTime time.Time) {
	engine.mu.Lock()
	if engine.phase != PhaseRunning {
		engine.mu.Unlock()
		return
	}

	engine.remaining -= engine.options.TickInterval
	if engine.remaining > 0 {
		engine.emitLocked(Event{
			Type:      EventProgress,
			Phase:     engine.phase,
			Category:  engine.category,
			Remaining: engine.remaining,
			At:        tickTime,
		})
		engine.mu.Unlock()
		return
	}

	engine.completeLocked(tickTime)
	engine.mu.Unlock()
}

// completeLocked runs the completion sequence at the zero crossing.
// The order is fixed: stop, report the finished session, append it,
// report statistics, then the implicit reset. Observers must see the
// session that just ended before the timer state reflects the next one.
func (engine *Engine) completeLocked(completedAt time.Time) {
	engine.remaining = 0
	engine.phase = PhaseIdle

	record := model.NewSessionRecord(engine.category, engine.taskLabel, completedAt)
	engine.emitLocked(Event{
		Type:      EventSessionCompleted,
		Phase:     engine.phase,
		Category:  engine.category,
		Remaining: 0,
		Record:    &record,
		At:        completedAt,
	})

	engine.ledger.Append(record)
	stats := engine.ledger.Statistics()
	engine.emitLocked(Event{
		Type:      EventStatisticsChange,
		Phase:     engine.phase,
		Category:  engine.category,
		Remaining: 0,
		Stats:     &stats,
		At:        completedAt,
	})

	engine.remaining = engine.category.Duration()
	engine.taskLabel = ""
	engine.emitStateLocked()
}

func (engine *Engine) emitStateLocked() {
	engine.emitLocked(Event{
		Type:      EventStateChange,
		Phase:     engine.phase,
		Category:  engine.category,
		Remaining: engine.remaining,
		At:        engine.now(),
	})
}

func (engine *Engine) emitLocked(event Event) {
	events := append([]chan Event(nil), engine.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
