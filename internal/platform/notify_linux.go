//go:build linux

package platform

import "os/exec"

func desktopNotifyCommand(appName string) func(title, body string) *exec.Cmd {
	path, err := exec.LookPath("notify-send")
	if err != nil {
		return nil
	}
	return func(title, body string) *exec.Cmd {
		return exec.Command(path, "--app-name", appName, title, body)
	}
}
