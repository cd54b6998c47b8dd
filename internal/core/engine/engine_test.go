package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomotray/internal/core/ledger"
	"pomotray/internal/core/model"
)

func newTestEngine() (*Engine, *ledger.Ledger) {
	led := ledger.New()
	return New(led, Config{TickInterval: time.Second}), led
}

func tickN(eng *Engine, n int) {
	for i := 0; i < n; i++ {
		eng.Tick()
	}
}

// drain empties a subscriber channel without blocking. Ticks are
// synchronous, so every emitted event is already buffered.
func drain(ch <-chan Event) []Event {
	var out []Event
	for {
		select {
		case event := <-ch:
			out = append(out, event)
		default:
			return out
		}
	}
}

func eventsOfType(events []Event, eventType EventType) []Event {
	var out []Event
	for _, event := range events {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}

func TestInitialState(t *testing.T) {
	eng, _ := newTestEngine()
	snapshot := eng.Snapshot()
	assert.Equal(t, PhaseIdle, snapshot.Phase)
	assert.Equal(t, model.CategoryStudy, snapshot.Category)
	assert.Equal(t, 25*time.Minute, snapshot.Remaining)
}

func TestSelectCategory_SetsFullDuration(t *testing.T) {
	eng, _ := newTestEngine()
	for _, category := range model.Categories() {
		eng.SelectCategory(category)
		snapshot := eng.Snapshot()
		assert.Equal(t, category, snapshot.Category)
		assert.Equal(t, category.Duration(), snapshot.Remaining)
		assert.Equal(t, PhaseIdle, snapshot.Phase)
	}
}

func TestSelectCategory_IgnoredWhileRunning(t *testing.T) {
	eng, _ := newTestEngine()
	eng.Start()
	tickN(eng, 3)

	eng.SelectCategory(model.CategoryShortBreak)

	snapshot := eng.Snapshot()
	assert.Equal(t, model.CategoryStudy, snapshot.Category)
	assert.Equal(t, 25*time.Minute-3*time.Second, snapshot.Remaining)
	assert.Equal(t, PhaseRunning, snapshot.Phase)
}

func TestSelectCategory_IgnoredForUnknownValue(t *testing.T) {
	eng, _ := newTestEngine()
	eng.SelectCategory(model.Category("bogus"))
	assert.Equal(t, model.CategoryStudy, eng.Snapshot().Category)
}

func TestTick_DecrementsExactly(t *testing.T) {
	eng, _ := newTestEngine()
	eng.Start()
	tickN(eng, 10)
	assert.Equal(t, 25*time.Minute-10*time.Second, eng.Snapshot().Remaining)
}

func TestTick_IgnoredWhenNotRunning(t *testing.T) {
	eng, _ := newTestEngine()
	tickN(eng, 5)
	assert.Equal(t, 25*time.Minute, eng.Snapshot().Remaining)

	eng.Start()
	eng.Pause()
	tickN(eng, 5)
	assert.Equal(t, 25*time.Minute, eng.Snapshot().Remaining)
}

func TestStart_NoOpWhileRunning(t *testing.T) {
	eng, _ := newTestEngine()
	events := eng.Subscribe(8)

	eng.Start()
	eng.Start()

	assert.Len(t, drain(events), 1)
}

func TestPause_NoOpWhileIdle(t *testing.T) {
	eng, _ := newTestEngine()
	events := eng.Subscribe(8)

	eng.Pause()

	assert.Empty(t, drain(events))
	assert.Equal(t, PhaseIdle, eng.Snapshot().Phase)
}

func TestShortBreakScenario(t *testing.T) {
	eng, _ := newTestEngine()

	eng.SelectCategory(model.CategoryShortBreak)
	require.Equal(t, 300*time.Second, eng.Snapshot().Remaining)

	eng.Start()
	tickN(eng, 10)
	eng.Pause()

	snapshot := eng.Snapshot()
	assert.Equal(t, 290*time.Second, snapshot.Remaining)
	assert.Equal(t, PhasePaused, snapshot.Phase)

	eng.Reset()
	snapshot = eng.Snapshot()
	assert.Equal(t, 300*time.Second, snapshot.Remaining)
	assert.Equal(t, PhaseIdle, snapshot.Phase)
}

func TestStudySessionCompletion(t *testing.T) {
	eng, led := newTestEngine()
	events := eng.Subscribe(2048)

	eng.SetTaskLabel("write thesis chapter")
	eng.Start()
	tickN(eng, 1500)

	completed := eventsOfType(drain(events), EventSessionCompleted)
	require.Len(t, completed, 1, "completion must fire exactly once")
	record := completed[0].Record
	require.NotNil(t, record)
	assert.Equal(t, model.CategoryStudy, record.Category)
	assert.Equal(t, "write thesis chapter", record.TaskLabel)
	assert.Equal(t, 25, record.DurationMinutes)
	assert.False(t, record.CompletedAt.IsZero())

	stats := led.Statistics()
	assert.Equal(t, 1, stats.Count)
	assert.Equal(t, 25, stats.TotalStudyMinutes)

	snapshot := eng.Snapshot()
	assert.Equal(t, PhaseIdle, snapshot.Phase)
	assert.Equal(t, 25*time.Minute, snapshot.Remaining)
	assert.Empty(t, snapshot.TaskLabel, "task label clears after completion")
}

func TestCompletionEventOrdering(t *testing.T) {
	eng, _ := newTestEngine()
	eng.SelectCategory(model.CategoryShortBreak)
	eng.Start()
	tickN(eng, 299)

	events := eng.Subscribe(8)
	eng.Tick()

	got := drain(events)
	require.Len(t, got, 3)
	assert.Equal(t, EventSessionCompleted, got[0].Type)
	assert.Equal(t, EventStatisticsChange, got[1].Type)
	assert.Equal(t, EventStateChange, got[2].Type)

	require.NotNil(t, got[1].Stats)
	assert.Equal(t, 1, got[1].Stats.Count)

	assert.Equal(t, time.Duration(0), got[0].Remaining, "completion reports the session that ended")
	assert.Equal(t, 5*time.Minute, got[2].Remaining, "state change reports the implicit reset")
	assert.Equal(t, PhaseIdle, got[2].Phase)
}

func TestCompletion_PlaceholderTaskLabel(t *testing.T) {
	eng, led := newTestEngine()
	eng.SelectCategory(model.CategoryShortBreak)
	eng.Start()
	tickN(eng, 300)

	records := led.Records()
	require.Len(t, records, 1)
	assert.Equal(t, model.DefaultTaskLabel, records[0].TaskLabel)
}

func TestBreakSessionsAddNoStudyMinutes(t *testing.T) {
	eng, led := newTestEngine()
	eng.SelectCategory(model.CategoryLongBreak)
	eng.Start()
	tickN(eng, 900)

	stats := led.Statistics()
	assert.Equal(t, 1, stats.Count)
	assert.Equal(t, 0, stats.TotalStudyMinutes)
}

func TestRemainingNeverNegative(t *testing.T) {
	eng, _ := newTestEngine()
	eng.SelectCategory(model.CategoryShortBreak)
	eng.Start()
	tickN(eng, 400)

	// The 300th tick completed the session and stopped the engine; the
	// extra hundred were no-ops against the reset idle state.
	snapshot := eng.Snapshot()
	assert.Equal(t, 300*time.Second, snapshot.Remaining)
	assert.GreaterOrEqual(t, snapshot.Remaining, time.Duration(0))
}

func TestBackToBackSessions(t *testing.T) {
	eng, led := newTestEngine()
	eng.SelectCategory(model.CategoryShortBreak)

	eng.Start()
	tickN(eng, 300)
	eng.Start()
	tickN(eng, 300)

	assert.Equal(t, 2, led.Statistics().Count)
}

func TestClearLedger_Empty(t *testing.T) {
	eng, _ := newTestEngine()
	events := eng.Subscribe(8)

	err := eng.ClearLedger(true)
	require.ErrorIs(t, err, ledger.ErrNothingToClear)

	got := drain(events)
	require.Len(t, got, 1)
	assert.Equal(t, EventLedgerError, got[0].Type)
	assert.Equal(t, "nothing to clear", got[0].Message)
}

func TestClearLedger_Unconfirmed(t *testing.T) {
	eng, led := newTestEngine()
	led.Append(model.NewSessionRecord(model.CategoryStudy, "keep me", time.Now()))

	err := eng.ClearLedger(false)
	require.ErrorIs(t, err, ErrClearNotConfirmed)
	assert.Equal(t, 1, led.Len(), "declined clear must not touch the ledger")
}

func TestClearLedger_Confirmed(t *testing.T) {
	eng, led := newTestEngine()
	led.Append(model.NewSessionRecord(model.CategoryStudy, "a", time.Now()))
	led.Append(model.NewSessionRecord(model.CategoryShortBreak, "b", time.Now()))
	events := eng.Subscribe(8)

	require.NoError(t, eng.ClearLedger(true))
	assert.Equal(t, 0, led.Len())

	got := eventsOfType(drain(events), EventStatisticsChange)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Stats)
	assert.Equal(t, model.Statistics{}, *got[0].Stats)
}

func TestProgressEventsCarrySnapshots(t *testing.T) {
	eng, _ := newTestEngine()
	eng.Start()
	events := eng.Subscribe(8)

	tickN(eng, 3)

	got := drain(events)
	require.Len(t, got, 3)
	for i, event := range got {
		assert.Equal(t, EventProgress, event.Type)
		assert.Equal(t, PhaseRunning, event.Phase)
		assert.Equal(t, model.CategoryStudy, event.Category)
		assert.Equal(t, 25*time.Minute-time.Duration(i+1)*time.Second, event.Remaining)
	}
}

func TestRunDrivesTicks(t *testing.T) {
	led := ledger.New()
	eng := New(led, Config{TickInterval: time.Millisecond})
	eng.Start()
	eng.Run()
	defer eng.Stop()

	require.Eventually(t, func() bool {
		return eng.Snapshot().Remaining < 25*time.Minute
	}, 2*time.Second, 5*time.Millisecond)
}

func TestStopClosesSubscribers(t *testing.T) {
	eng, _ := newTestEngine()
	eng.Run()
	events := eng.Subscribe(8)

	eng.Stop()

	_, open := <-events
	assert.False(t, open)
}
