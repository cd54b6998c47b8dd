package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	notifications *widget.Check
	closeToTray   *widget.Check
	trayCountdown *widget.Check
}

// New creates a preferences window. onSave receives the updated
// settings when the user confirms.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Pomotray Preferences")

	notifications := widget.NewCheck("Notify when a session completes", nil)
	notifications.SetChecked(settings.Notifications)

	closeToTray := widget.NewCheck("Closing the window hides to tray", nil)
	closeToTray.SetChecked(settings.CloseToTray)

	trayCountdown := widget.NewCheck("Show countdown in tray status", nil)
	trayCountdown.SetChecked(settings.TrayCountdown)

	form := container.NewVBox(
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		notifications,
		closeToTray,
		trayCountdown,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(360, 220))

	prefs := &Window{
		window:        window,
		settings:      settings,
		onSave:        onSave,
		notifications: notifications,
		closeToTray:   closeToTray,
		trayCountdown: trayCountdown,
	}

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.notifications.SetChecked(settings.Notifications)
	prefs.closeToTray.SetChecked(settings.CloseToTray)
	prefs.trayCountdown.SetChecked(settings.TrayCountdown)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings
	settings.Notifications = prefs.notifications.Checked
	settings.CloseToTray = prefs.closeToTray.Checked
	settings.TrayCountdown = prefs.trayCountdown.Checked

	prefs.settings = settings
	prefs.window.Hide()
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
}
