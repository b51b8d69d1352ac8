//go:build !linux && !darwin

package platform

import "os/exec"

func desktopNotifyCommand(string) func(title, body string) *exec.Cmd {
	return nil
}
