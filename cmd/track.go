package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"habitrack/internal"
)

var (
	trackListen    string
	trackNotifyCmd string
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Run the tracking daemon",
	Long: `Run the tracking daemon. Focus and navigation events are read from
stdin as JSON lines, one event per line:

  {"type":"focus","url":"https://example.com/page","title":"Example"}
  {"type":"blur"}

The daemon flushes the active session every minute, checks goals on the
configured schedule, sweeps old data, and resets goal notification flags at
local midnight. With --listen, a local HTTP API serves stats and goal
management to the browser companion.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		notifyCmd := trackNotifyCmd
		if notifyCmd == "" {
			notifyCmd = internal.NotifyCommand()
		}
		notifier := internal.NewNotifier(notifyCmd)

		c, err := openComponents(notifier)
		if err != nil {
			return err
		}
		defer c.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if trackListen != "" {
			api := internal.NewAPIServer(c.store, c.engine, c.builder)
			server := &http.Server{Addr: trackListen, Handler: api.Router()}
			go func() {
				internal.LogInfo("Control API listening on %s", trackListen)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					internal.LogError("Control API failed: %v", err)
				}
			}()
			defer func() {
				if err := server.Shutdown(context.Background()); err != nil {
					internal.LogWarn("Control API shutdown: %v", err)
				}
			}()
		}

		runner := internal.NewRunner(c.store, c.tracker, c.agg, c.engine)
		internal.LogInfo("Tracking started, reading events from stdin")

		err = runner.Run(ctx, os.Stdin)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(trackCmd)
	trackCmd.Flags().StringVar(&trackListen, "listen", "", "Serve the control API on this address (e.g. 127.0.0.1:8743)")
	trackCmd.Flags().StringVar(&trackNotifyCmd, "notify-cmd", "", "Notification command (default from config, notify-send)")
}
