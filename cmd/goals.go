package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"habitrack/internal"
)

var (
	goalAddLimit  float64
	goalAddVisits float64
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Manage browsing goals",
	Long:  `List, add, remove, and toggle per-website time and visit limits.`,
}

var goalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openComponents(&internal.LogNotifier{})
		if err != nil {
			return err
		}
		defer c.Close()

		goals, err := c.store.Goals()
		if err != nil {
			return fmt.Errorf("failed to load goals: %w", err)
		}

		displayGoals(goals)
		return nil
	},
}

var goalsAddCmd = &cobra.Command{
	Use:   "add <website>",
	Short: "Add a goal for a website",
	Long: `Add a daily limit for a website. Use --limit for a time limit in
minutes or --visits for a visit-count limit.

Examples:
  habitrack goals add reddit.com --limit 30
  habitrack goals add news.ycombinator.com --visits 5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if (goalAddLimit > 0) == (goalAddVisits > 0) {
			return fmt.Errorf("specify exactly one of --limit or --visits")
		}

		goal := &internal.Goal{Website: args[0]}
		if goalAddLimit > 0 {
			goal.Type = internal.GoalTimeLimit
			goal.Limit = goalAddLimit
		} else {
			goal.Type = internal.GoalVisitLimit
			goal.Limit = goalAddVisits
		}

		c, err := openComponents(&internal.LogNotifier{})
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.engine.AddGoal(goal); err != nil {
			return err
		}

		fmt.Printf("Added goal %s: %s, %.0f %s/day\n", goal.ID, goal.Website, goal.Limit, goal.Type.Unit())
		return nil
	},
}

var goalsRemoveCmd = &cobra.Command{
	Use:   "remove <goal-id>",
	Short: "Remove a goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openComponents(&internal.LogNotifier{})
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.engine.RemoveGoal(args[0]); err != nil {
			return err
		}
		fmt.Println("Goal removed")
		return nil
	},
}

var goalsToggleCmd = &cobra.Command{
	Use:   "toggle <goal-id>",
	Short: "Activate or deactivate a goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openComponents(&internal.LogNotifier{})
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.engine.ToggleGoal(args[0]); err != nil {
			return err
		}
		fmt.Println("Goal toggled")
		return nil
	},
}

func displayGoals(goals []*internal.Goal) {
	if len(goals) == 0 {
		fmt.Println(headerStyle.Render("🎯 No goals defined"))
		return
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("🎯 %d goal(s)", len(goals))))
	fmt.Println()

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Website")+"\t"+titleStyle.Render("Limit")+"\t"+titleStyle.Render("Active")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 70))

	for _, goal := range goals {
		shortID := goal.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		active := dimStyle.Render("no")
		if goal.Active {
			active = valueStyle.Render("yes")
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%.0f %s\t%s\t\n",
			dimStyle.Render(shortID), goal.Website, goal.Limit, goal.Type.Unit(), active)
	}
	_ = w.Flush()

	fmt.Println()
	fmt.Println(dimStyle.Render("💡 Tip: Use the full ID with `habitrack goals remove <id>`"))
}

func init() {
	rootCmd.AddCommand(goalsCmd)
	goalsCmd.AddCommand(goalsListCmd)
	goalsCmd.AddCommand(goalsAddCmd)
	goalsCmd.AddCommand(goalsRemoveCmd)
	goalsCmd.AddCommand(goalsToggleCmd)

	goalsAddCmd.Flags().Float64Var(&goalAddLimit, "limit", 0, "Daily time limit in minutes")
	goalsAddCmd.Flags().Float64Var(&goalAddVisits, "visits", 0, "Daily visit-count limit")
}
