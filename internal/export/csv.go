package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"habitrack/internal"
)

// CSVExporter exports the report's per-website rows as CSV
type CSVExporter struct{}

// Export writes one row per tracked website plus the weekly totals
func (e *CSVExporter) Export(report *internal.Report, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"kind", "date", "name", "minutes"}); err != nil {
		return err
	}

	for _, d := range report.TopDomains {
		if err := cw.Write([]string{"website", report.Date, d.Domain, strconv.Itoa(d.Minutes)}); err != nil {
			return err
		}
	}
	for _, c := range report.Categories {
		if err := cw.Write([]string{"category", report.Date, c.Category, strconv.Itoa(c.Minutes)}); err != nil {
			return err
		}
	}
	for _, day := range report.Weekly {
		if err := cw.Write([]string{"daily_total", day.Date, "", strconv.FormatInt(day.TotalTime/60, 10)}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Extension returns the file extension for this format
func (e *CSVExporter) Extension() string {
	return "csv"
}
