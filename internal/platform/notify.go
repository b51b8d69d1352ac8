package platform

import (
	"fmt"
	"os/exec"
)

// DesktopNotifier shows system notifications through an external tool.
type DesktopNotifier struct {
	command func(title, body string) *exec.Cmd
}

// NewDesktopNotifier returns a notifier for the current platform. Where no
// notification tool exists, Permitted reports false.
func NewDesktopNotifier(appName string) *DesktopNotifier {
	return &DesktopNotifier{command: desktopNotifyCommand(appName)}
}

// Permitted reports whether notifications can be shown.
func (notifier *DesktopNotifier) Permitted() bool {
	return notifier.command != nil
}

// Notify shows a notification and waits for the tool to exit.
func (notifier *DesktopNotifier) Notify(title, body string) error {
	if notifier.command == nil {
		return fmt.Errorf("notify: %w", ErrUnsupported)
	}
	cmd := notifier.command(title, body)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("notify via %s: %w (%s)", cmd.Path, err, output)
	}
	return nil
}
