package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"habitrack/internal"
)

var (
	verbose bool
	dataDir string
	version string = "dev"
	commit  string = "unknown"
	date    string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "habitrack",
	Short: "Track time spent per website and enforce browsing goals",
	Long: `habitrack tracks the time you spend on each website, aggregates it
into daily, weekly, and category statistics, and notifies you when you
approach or exceed the goals you set.

A browser companion feeds focus/navigation events to the daemon; everything
else (session accounting, aggregation, goal checks, notifications) happens
here.

Quick Start:
  habitrack track                  # Run the tracking daemon (events on stdin)
  habitrack stats                  # Show today's statistics
  habitrack goals add example.com --limit 30   # 30 min/day time limit
  habitrack export --format md     # Export today's report as Markdown`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
		if _, err := internal.InitConfig(); err != nil {
			internal.LogWarn("Failed to load config: %v", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Custom data directory (overrides config)")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// openDatabase opens the tracking database, honoring the --data-dir override
func openDatabase() (*sql.DB, error) {
	var path string
	if dataDir != "" {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		path = filepath.Join(dataDir, "habitrack.db")
	} else {
		var err error
		path, err = internal.DatabasePath()
		if err != nil {
			return nil, err
		}
	}
	return internal.OpenDatabase(path)
}

// components wires the core objects over one open database
type components struct {
	db      *sql.DB
	store   *internal.Store
	tracker *internal.SessionTracker
	agg     *internal.StatsAggregator
	engine  *internal.GoalEngine
	builder *internal.ReportBuilder
}

// openComponents opens the database and builds the component graph
func openComponents(notifier internal.Notifier) (*components, error) {
	db, err := openDatabase()
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := internal.NewStore(internal.NewSQLiteKV(db))
	agg := internal.NewStatsAggregator(store)
	tracker := internal.NewSessionTracker(store, agg)
	engine := internal.NewGoalEngine(store, notifier)
	builder := internal.NewReportBuilder(store, tracker, agg, engine)

	return &components{
		db:      db,
		store:   store,
		tracker: tracker,
		agg:     agg,
		engine:  engine,
		builder: builder,
	}, nil
}

// Close releases the database
func (c *components) Close() {
	if err := c.db.Close(); err != nil {
		internal.LogWarn("Failed to close database: %v", err)
	}
}
