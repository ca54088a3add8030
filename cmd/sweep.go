package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"habitrack/internal"
)

var sweepDays int

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete stats older than the retention window",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openComponents(&internal.LogNotifier{})
		if err != nil {
			return err
		}
		defer c.Close()

		days := sweepDays
		if days <= 0 {
			settings, err := c.store.Settings()
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}
			days = settings.DataRetention
		}

		if err := c.agg.SweepRetention(days); err != nil {
			return err
		}
		fmt.Printf("Swept stats older than %d days\n", days)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	sweepCmd.Flags().IntVar(&sweepDays, "days", 0, "Retention window in days (default from settings)")
}
