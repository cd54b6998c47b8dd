// Package dashboard implements the main Pomotray window: the countdown
// display, session controls, and the session log with its statistics.
// All state lives in the core; this window renders engine events and
// forwards user input back to it.
package dashboard

import (
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pomotray/internal/core/engine"
	"pomotray/internal/core/ledger"
	"pomotray/internal/core/model"
)

// Dashboard is the main window controller.
type Dashboard struct {
	window        fyne.Window
	engine        *engine.Engine
	ledger        *ledger.Ledger
	records       []model.SessionRecord
	timeLabel     *widget.Label
	categoryRadio *widget.RadioGroup
	taskEntry     *widget.Entry
	startButton   *widget.Button
	statsLabel    *widget.Label
	logList       *widget.List
}

// New builds the dashboard window wired to the engine and ledger.
func New(app fyne.App, timerEngine *engine.Engine, sessionLedger *ledger.Ledger) *Dashboard {
	board := &Dashboard{
		window: app.NewWindow("Pomotray"),
		engine: timerEngine,
		ledger: sessionLedger,
	}
	board.buildContent()

	snapshot := timerEngine.Snapshot()
	board.SetRemaining(snapshot.Remaining)
	board.SetCategory(snapshot.Category)
	board.SetPhase(snapshot.Phase)
	board.RefreshLog()

	return board
}

// Window exposes the underlying window for close-intercept wiring.
func (board *Dashboard) Window() fyne.Window {
	return board.window
}

// Show displays the dashboard.
func (board *Dashboard) Show() {
	board.window.Show()
	board.window.RequestFocus()
}

// SetRemaining updates the countdown display.
func (board *Dashboard) SetRemaining(remaining time.Duration) {
	board.timeLabel.SetText(model.FormatClock(remaining))
}

// SetCategory reflects the engine's selected category.
func (board *Dashboard) SetCategory(category model.Category) {
	if board.categoryRadio.Selected != category.Label() {
		board.categoryRadio.SetSelected(category.Label())
	}
}

// SetPhase toggles controls for the given engine phase. Category
// selection is locked while the countdown runs.
func (board *Dashboard) SetPhase(phase engine.Phase) {
	if phase == engine.PhaseRunning {
		board.startButton.SetText("Pause")
		board.startButton.SetIcon(theme.MediaPauseIcon())
		board.categoryRadio.Disable()
	} else {
		board.startButton.SetText("Start")
		board.startButton.SetIcon(theme.MediaPlayIcon())
		board.categoryRadio.Enable()
	}
}

// RefreshLog reloads the session log and statistics from the ledger.
func (board *Dashboard) RefreshLog() {
	board.records = board.ledger.Records()
	board.logList.Refresh()

	stats := board.ledger.Statistics()
	board.statsLabel.SetText(fmt.Sprintf("%d sessions · %d study minutes", stats.Count, stats.TotalStudyMinutes))
}

// ClearTask empties the task entry after a session completes.
func (board *Dashboard) ClearTask() {
	board.taskEntry.SetText("")
}

// ShowCompleted announces the session that just ended.
func (board *Dashboard) ShowCompleted(record model.SessionRecord) {
	message := fmt.Sprintf("%s — %s (%d min)", record.Category.Label(), record.TaskLabel, record.DurationMinutes)
	dialog.ShowInformation("Session complete", message, board.window)
}

func (board *Dashboard) buildContent() {
	board.timeLabel = widget.NewLabelWithStyle(
		model.FormatClock(model.CategoryStudy.Duration()),
		fyne.TextAlignCenter,
		fyne.TextStyle{Bold: true, Monospace: true},
	)

	labels := make([]string, 0, 3)
	for _, category := range model.Categories() {
		labels = append(labels, category.Label())
	}
	board.categoryRadio = widget.NewRadioGroup(labels, func(selected string) {
		for _, category := range model.Categories() {
			if category.Label() == selected {
				board.engine.SelectCategory(category)
				return
			}
		}
	})
	board.categoryRadio.Horizontal = true
	board.categoryRadio.Required = true

	board.taskEntry = widget.NewEntry()
	board.taskEntry.PlaceHolder = "What are you working on?"
	board.taskEntry.OnChanged = func(text string) {
		board.engine.SetTaskLabel(text)
	}

	board.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		if board.engine.Snapshot().Phase == engine.PhaseRunning {
			board.engine.Pause()
		} else {
			board.engine.Start()
		}
	})
	resetButton := widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		board.engine.Reset()
	})

	board.statsLabel = widget.NewLabel("0 sessions · 0 study minutes")
	clearButton := widget.NewButtonWithIcon("Clear log", theme.DeleteIcon(), board.handleClear)

	board.logList = widget.NewList(
		func() int { return len(board.records) },
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, nil,
				widget.NewLabel("25 min · 15:04"),
				widget.NewLabel("Task"))
		},
		func(i widget.ListItemID, item fyne.CanvasObject) {
			if i >= len(board.records) {
				return
			}
			record := board.records[i]
			box := item.(*fyne.Container)
			title := box.Objects[0].(*widget.Label)
			detail := box.Objects[1].(*widget.Label)
			title.SetText(fmt.Sprintf("%s — %s", record.TaskLabel, record.Category.Label()))
			detail.SetText(fmt.Sprintf("%d min · %s", record.DurationMinutes, record.CompletedAt.Format("15:04")))
		},
	)

	controls := container.NewVBox(
		board.timeLabel,
		container.NewCenter(board.categoryRadio),
		board.taskEntry,
		container.NewGridWithColumns(2, board.startButton, resetButton),
		widget.NewSeparator(),
		container.NewBorder(nil, nil, board.statsLabel, clearButton),
	)

	board.window.SetContent(container.NewBorder(controls, nil, nil, nil, board.logList))
	board.window.Resize(fyne.NewSize(420, 560))
}

// handleClear runs the two-step clear flow: an empty log is an
// informational condition, otherwise the user confirms before anything
// is removed.
func (board *Dashboard) handleClear() {
	err := board.engine.ClearLedger(false)
	switch {
	case errors.Is(err, ledger.ErrNothingToClear):
		dialog.ShowInformation("Session log", "Nothing to clear.", board.window)
	case errors.Is(err, engine.ErrClearNotConfirmed):
		dialog.ShowConfirm("Clear session log", "Remove all recorded sessions?", func(confirmed bool) {
			if !confirmed {
				return
			}
			if err := board.engine.ClearLedger(true); err == nil {
				board.RefreshLog()
			}
		}, board.window)
	}
}
