package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"habitrack/internal"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change tracker settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openComponents(&internal.LogNotifier{})
		if err != nil {
			return err
		}
		defer c.Close()

		settings, err := c.store.Settings()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}

		fmt.Printf("notifications:          %v\n", settings.Notifications)
		fmt.Printf("notification-frequency: %d min\n", settings.NotificationFrequency)
		fmt.Printf("data-retention:         %d days\n", settings.DataRetention)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting. Keys:
  notifications          true|false
  notification-frequency minutes between goal checks
  data-retention         days of history to keep`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openComponents(&internal.LogNotifier{})
		if err != nil {
			return err
		}
		defer c.Close()

		settings, err := c.store.Settings()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}

		key, value := args[0], args[1]
		switch key {
		case "notifications":
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid value for notifications: %q", value)
			}
			settings.Notifications = enabled
		case "notification-frequency":
			minutes, err := strconv.Atoi(value)
			if err != nil || minutes <= 0 {
				return fmt.Errorf("notification-frequency must be a positive number of minutes")
			}
			settings.NotificationFrequency = minutes
		case "data-retention":
			days, err := strconv.Atoi(value)
			if err != nil || days <= 0 {
				return fmt.Errorf("data-retention must be a positive number of days")
			}
			settings.DataRetention = days
		default:
			return fmt.Errorf("unknown setting: %q", key)
		}

		if err := c.store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Printf("Set %s = %s\n", key, value)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
