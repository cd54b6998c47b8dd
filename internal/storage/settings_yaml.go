package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pomotray/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	Notifications *bool `yaml:"notifications"`
	CloseToTray   *bool `yaml:"close_to_tray"`
	TrayCountdown *bool `yaml:"tray_countdown"`
}

// DefaultConfigDir resolves the per-user configuration directory for
// the app.
func DefaultConfigDir(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName), nil
}

// LoadSettings reads user preferences from configDir/settings.yaml.
// If the file does not exist, default settings are returned. Keys
// missing from the file keep their defaults.
func LoadSettings(configDir string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(filepath.Join(configDir, settingsFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	if fileData.Notifications != nil {
		settings.Notifications = *fileData.Notifications
	}
	if fileData.CloseToTray != nil {
		settings.CloseToTray = *fileData.CloseToTray
	}
	if fileData.TrayCountdown != nil {
		settings.TrayCountdown = *fileData.TrayCountdown
	}
	return settings, nil
}

// SaveSettings writes user preferences to configDir/settings.yaml.
func SaveSettings(configDir string, settings preferences.Settings) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		Notifications: &settings.Notifications,
		CloseToTray:   &settings.CloseToTray,
		TrayCountdown: &settings.TrayCountdown,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(filepath.Join(configDir, settingsFileName), serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}
