package main

import (
	"fmt"
	"log"
	"time"

	"pomotray/internal/core/engine"
	"pomotray/internal/core/ledger"
	"pomotray/internal/core/model"
	"pomotray/internal/platform"
	"pomotray/internal/storage"
	"pomotray/internal/ui/dashboard"
	"pomotray/internal/ui/preferences"
	"pomotray/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "Pomotray"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	configDir, err := storage.DefaultConfigDir(appName)
	if err != nil {
		log.Printf("config dir: %v", err)
	}
	settings, err := storage.LoadSettings(configDir)
	if err != nil {
		log.Printf("load settings: %v (using defaults)", err)
	}

	fyneApp := app.NewWithID("io.pomotray.app")
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Printf("system tray unsupported on this platform")
		return
	}

	sessionLedger := ledger.New()
	timerEngine := engine.New(sessionLedger, engine.Config{TickInterval: time.Second})

	board := dashboard.New(fyneApp, timerEngine, sessionLedger)
	board.Window().SetCloseIntercept(func() {
		if settings.CloseToTray {
			board.Window().Hide()
			return
		}
		timerEngine.Stop()
		fyneApp.Quit()
	})
	desktopApp.SetSystemTrayWindow(board.Window())

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		if err := storage.SaveSettings(configDir, updated); err != nil {
			log.Printf("save settings: %v", err)
		}
	})

	trayManager := tray.New(desktopApp, tray.Callbacks{
		OnOpen: func() {
			board.Show()
		},
		OnToggleStart: func() {
			if timerEngine.Snapshot().Phase == engine.PhaseRunning {
				timerEngine.Pause()
			} else {
				timerEngine.Start()
			}
		},
		OnReset: func() {
			timerEngine.Reset()
		},
		OnPreferences: func() {
			prefsWindow.Show()
		},
		OnQuit: func() {
			timerEngine.Stop()
			fyneApp.Quit()
		},
	})

	snapshot := timerEngine.Snapshot()
	trayManager.SetStatus(statusLine(snapshot.Category, snapshot.Remaining))

	events := timerEngine.Subscribe(8)
	go func() {
		for event := range events {
			event := event
			fyne.Do(func() {
				handleEvent(event, board, trayManager, fyneApp, settings)
			})
		}
	}()

	timerEngine.Run()
	board.Show()
	fyneApp.Run()
}

func handleEvent(event engine.Event, board *dashboard.Dashboard, trayManager *tray.Manager, fyneApp fyne.App, settings preferences.Settings) {
	switch event.Type {
	case engine.EventStateChange:
		board.SetRemaining(event.Remaining)
		board.SetCategory(event.Category)
		board.SetPhase(event.Phase)
		trayManager.SetRunning(event.Phase == engine.PhaseRunning)
		trayManager.SetStatus(statusLine(event.Category, event.Remaining))
	case engine.EventProgress:
		board.SetRemaining(event.Remaining)
		if settings.TrayCountdown {
			trayManager.SetStatus(statusLine(event.Category, event.Remaining))
		}
	case engine.EventSessionCompleted:
		if event.Record == nil {
			return
		}
		board.ClearTask()
		board.ShowCompleted(*event.Record)
		if settings.Notifications {
			fyneApp.SendNotification(fyne.NewNotification(
				"Session complete",
				fmt.Sprintf("%s — %s", event.Record.Category.Label(), event.Record.TaskLabel),
			))
		}
	case engine.EventStatisticsChange:
		board.RefreshLog()
	case engine.EventLedgerError:
		log.Printf("ledger: %s", event.Message)
	}
}

func statusLine(category model.Category, remaining time.Duration) string {
	return fmt.Sprintf("%s %s", category.Label(), model.FormatClock(remaining))
}
