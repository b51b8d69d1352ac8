//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

func desktopNotifyCommand(appName string) func(title, body string) *exec.Cmd {
	path, err := exec.LookPath("osascript")
	if err != nil {
		return nil
	}
	return func(title, body string) *exec.Cmd {
		script := fmt.Sprintf("display notification %s with title %s subtitle %s",
			appleScriptString(body), appleScriptString(title), appleScriptString(appName))
		return exec.Command(path, "-e", script)
	}
}

func appleScriptString(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `"`, `\"`)
	return `"` + value + `"`
}
