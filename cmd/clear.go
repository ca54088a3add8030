package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"habitrack/internal"
)

var clearForce bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all tracked browsing data",
	Long:  `Delete all tracked stats and session data. Settings and goals are kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearForce {
			fmt.Print("Delete all tracked browsing data? This cannot be undone. [y/N] ")
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				fmt.Println("Aborted")
				return nil
			}
		}

		c, err := openComponents(&internal.LogNotifier{})
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.store.ClearData(); err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}
		fmt.Println("All tracked data deleted (settings and goals kept)")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "Skip the confirmation prompt")
}
