package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"habitrack/internal"
	"habitrack/internal/export"
)

var (
	exportFormat string
	exportOutput string
	exportView   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export today's report",
	Long: `Export today's aggregated report in json, yaml, md, or csv format.
With --rebuild-sessions the legacy per-(url, date) sessions view is also
regenerated from the canonical stats before exporting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		c, err := openComponents(&internal.LogNotifier{})
		if err != nil {
			return err
		}
		defer c.Close()

		if exportView {
			if err := c.agg.RebuildSessionsView(); err != nil {
				return fmt.Errorf("failed to rebuild sessions view: %w", err)
			}
		}

		report, err := c.builder.Build()
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}

		out := os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if err := exporter.Export(report, out); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		if exportOutput != "" {
			internal.LogInfo("Exported report to %s", exportOutput)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format (json, yaml, md, csv)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	exportCmd.Flags().BoolVar(&exportView, "rebuild-sessions", false, "Rebuild the legacy sessions view before export")
}
