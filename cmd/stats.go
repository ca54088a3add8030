package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"habitrack/internal"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	overStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show today's browsing statistics",
	Long:  `Show today's totals, top websites, category breakdown, the last 7 days, and goal progress.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openComponents(&internal.LogNotifier{})
		if err != nil {
			return err
		}
		defer c.Close()

		report, err := c.builder.Build()
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}

		displayReport(report)
		return nil
	},
}

func displayReport(report *internal.Report) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("📊 %s — %s tracked today", report.Date, formatMinutes(report.TodayMinutes))))
	fmt.Println()

	if len(report.TopDomains) == 0 {
		fmt.Println(dimStyle.Render("No websites tracked yet today."))
	} else {
		w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', tabwriter.AlignRight)
		_, _ = fmt.Fprintln(w, titleStyle.Render("Website")+"\t"+titleStyle.Render("Minutes")+"\t")
		_, _ = fmt.Fprintln(w, strings.Repeat("─", 50))
		for _, d := range report.TopDomains {
			_, _ = fmt.Fprintf(w, "%s\t%s\t\n", d.Domain, valueStyle.Render(strconv.Itoa(d.Minutes)))
		}
		_ = w.Flush()
	}
	fmt.Println()

	if len(report.Categories) > 0 {
		fmt.Println(titleStyle.Render("Categories"))
		for _, c := range report.Categories {
			fmt.Printf("  %s %s\n", c.Category, dimStyle.Render(formatMinutes(c.Minutes)))
		}
		fmt.Println()
	}

	fmt.Println(titleStyle.Render("Last 7 days"))
	for _, day := range report.Weekly {
		marker := ""
		if day.Date == report.Date {
			marker = dimStyle.Render(" (today)")
		}
		fmt.Printf("  %s  %s%s\n", day.Date, valueStyle.Render(formatMinutes(int(day.TotalTime/60))), marker)
	}
	fmt.Println()

	if len(report.Goals) > 0 {
		fmt.Println(titleStyle.Render("Goals"))
		for _, g := range report.Goals {
			status := dimStyle.Render(string(g.Status))
			switch g.Status {
			case internal.GoalWarning:
				status = warnStyle.Render(string(g.Status))
			case internal.GoalExceeded:
				status = overStyle.Render(string(g.Status))
			}
			fmt.Printf("  %s  %.0f/%.0f %s  %s\n", g.Website, g.Current, g.Limit, g.Type.Unit(), status)
		}
	}
}

// formatMinutes renders a minute count, switching to h/m above an hour
func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
