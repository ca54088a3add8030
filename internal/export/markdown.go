package export

import (
	"fmt"
	"io"

	"habitrack/internal"
)

// MarkdownExporter exports reports in Markdown format
type MarkdownExporter struct{}

// Export exports a report to Markdown format
func (e *MarkdownExporter) Export(report *internal.Report, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# Browsing report for %s\n\n", report.Date)
	_, _ = fmt.Fprintf(w, "**Total today:** %d min\n\n", report.TodayMinutes)

	if len(report.TopDomains) > 0 {
		_, _ = fmt.Fprintf(w, "## Top websites\n\n")
		_, _ = fmt.Fprintf(w, "| Website | Minutes |\n|---|---|\n")
		for _, d := range report.TopDomains {
			_, _ = fmt.Fprintf(w, "| %s | %d |\n", d.Domain, d.Minutes)
		}
		_, _ = fmt.Fprintf(w, "\n")
	}

	if len(report.Categories) > 0 {
		_, _ = fmt.Fprintf(w, "## Categories\n\n")
		_, _ = fmt.Fprintf(w, "| Category | Minutes |\n|---|---|\n")
		for _, c := range report.Categories {
			_, _ = fmt.Fprintf(w, "| %s | %d |\n", c.Category, c.Minutes)
		}
		_, _ = fmt.Fprintf(w, "\n")
	}

	_, _ = fmt.Fprintf(w, "## Last 7 days\n\n")
	_, _ = fmt.Fprintf(w, "| Date | Minutes |\n|---|---|\n")
	for _, day := range report.Weekly {
		_, _ = fmt.Fprintf(w, "| %s | %d |\n", day.Date, day.TotalTime/60)
	}
	_, _ = fmt.Fprintf(w, "\n")

	if len(report.Goals) > 0 {
		_, _ = fmt.Fprintf(w, "## Goals\n\n")
		_, _ = fmt.Fprintf(w, "| Website | Limit | Current | Progress | Status |\n|---|---|---|---|---|\n")
		for _, g := range report.Goals {
			_, _ = fmt.Fprintf(w, "| %s | %.0f %s | %.0f %s | %.0f%% | %s |\n",
				g.Website, g.Limit, g.Type.Unit(), g.Current, g.Type.Unit(), g.Percent, g.Status)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
