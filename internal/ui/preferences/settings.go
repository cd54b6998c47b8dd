package preferences

// Settings defines editable user preferences. Session durations are
// fixed presets and deliberately absent.
type Settings struct {
	// Notifications enables a desktop notification when a session
	// completes.
	Notifications bool
	// CloseToTray hides the main window to the system tray instead of
	// quitting when it is closed.
	CloseToTray bool
	// TrayCountdown shows the remaining time in the tray status item.
	TrayCountdown bool
}

// DefaultSettings returns the defaults used when no settings file
// exists.
func DefaultSettings() Settings {
	return Settings{
		Notifications: true,
		CloseToTray:   true,
		TrayCountdown: true,
	}
}
