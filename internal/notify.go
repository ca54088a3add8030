package internal

import (
	"os/exec"
)

// ExecNotifier shows notifications by spawning an external command
// (typically notify-send). Delivery is fire-and-forget: failures are logged
// and otherwise ignored.
type ExecNotifier struct {
	command string
}

// NewExecNotifier creates a notifier that spawns the given command with the
// title and message as arguments
func NewExecNotifier(command string) *ExecNotifier {
	return &ExecNotifier{command: command}
}

// Available reports whether the notifier's command can be found on PATH
func (n *ExecNotifier) Available() bool {
	_, err := exec.LookPath(n.command)
	return err == nil
}

// Show displays a notification
func (n *ExecNotifier) Show(title, message string) {
	cmd := exec.Command(n.command, title, message)
	if err := cmd.Run(); err != nil {
		LogWarn("Notification command %q failed: %v", n.command, err)
	}
}

// LogNotifier writes notifications to the log. Used when no notification
// command is available.
type LogNotifier struct{}

// Show displays a notification by logging it
func (n *LogNotifier) Show(title, message string) {
	LogInfo("NOTIFY: %s: %s", title, message)
}

// NewNotifier returns an ExecNotifier for the command when it is available,
// otherwise a LogNotifier
func NewNotifier(command string) Notifier {
	if command != "" {
		n := NewExecNotifier(command)
		if n.Available() {
			return n
		}
		LogWarn("Notification command %q not found, falling back to log output", command)
	}
	return &LogNotifier{}
}
