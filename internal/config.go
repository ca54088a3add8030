package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// InitConfig loads the user config file, creating it with defaults on first
// run. Returns the path of the config file in use.
func InitConfig() (string, error) {
	viper.SetConfigName("habitrack")
	viper.SetConfigType("yaml")

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("error getting user home directory: %w", err)
		}
		if runtime.GOOS == "windows" {
			configHome = filepath.Join(homeDir, "AppData", "Roaming")
		} else {
			configHome = filepath.Join(homeDir, ".config")
		}
	}

	configFilePath := filepath.Join(configHome, "habitrack", "habitrack.yml")
	viper.SetConfigFile(configFilePath)

	if err := os.MkdirAll(filepath.Dir(configFilePath), 0755); err != nil {
		return "", fmt.Errorf("error creating config directory: %w", err)
	}

	viper.SetDefault("data_folder", defaultDataFolder())
	viper.SetDefault("notify_command", "notify-send")
	viper.SetDefault("listen_addr", "127.0.0.1:8743")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			LogInfo("Config file not found; creating one with default values")
			if err := viper.WriteConfigAs(configFilePath); err != nil {
				return "", fmt.Errorf("error creating config file: %w", err)
			}
		} else {
			return "", fmt.Errorf("error reading config file: %w", err)
		}
	}

	return configFilePath, nil
}

func defaultDataFolder() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./data"
	}
	return filepath.Join(homeDir, ".local", "share", "habitrack")
}

// DataFolder returns the configured data folder, creating it if needed
func DataFolder() (string, error) {
	folder := viper.GetString("data_folder")
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", fmt.Errorf("error creating data folder: %w", err)
	}
	return folder, nil
}

// DatabasePath returns the path of the SQLite database inside the data folder
func DatabasePath() (string, error) {
	folder, err := DataFolder()
	if err != nil {
		return "", err
	}
	return filepath.Join(folder, "habitrack.db"), nil
}

// NotifyCommand returns the configured notification command
func NotifyCommand() string {
	return viper.GetString("notify_command")
}

// ListenAddr returns the configured HTTP API listen address
func ListenAddr() string {
	return viper.GetString("listen_addr")
}
