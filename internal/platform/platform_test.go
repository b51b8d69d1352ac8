package platform

import (
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleInstanceGuard(t *testing.T) {
	name := "pomodoro-test-" + strconv.Itoa(os.Getpid())
	first, err := AcquireSingleInstance(name)
	require.NoError(t, err)

	_, err = AcquireSingleInstance(name)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, first.Release())
	again, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestGuardAddressIsStable(t *testing.T) {
	address := GuardAddress("PomodoroVibe")
	assert.Equal(t, address, GuardAddress("PomodoroVibe"))

	port, err := strconv.Atoi(strings.TrimPrefix(address, "127.0.0.1:"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, port, minGuardPort)
	assert.LessOrEqual(t, port, maxGuardPort)
}

func TestNilGuardRelease(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
}

func TestUnsupportedSoundPlayer(t *testing.T) {
	err := unsupportedSoundPlayer{}.Play()
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestCommandSoundPlayerWritesClipOnce(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses the true command")
	}
	truePath, err := exec.LookPath("true")
	require.NoError(t, err)

	var files []string
	player := &commandSoundPlayer{
		wav: []byte("RIFF"),
		command: func(file string) *exec.Cmd {
			files = append(files, file)
			return exec.Command(truePath)
		},
	}
	require.NoError(t, player.Play())
	require.NoError(t, player.Play())
	t.Cleanup(func() { _ = os.Remove(files[0]) })

	require.Len(t, files, 2)
	assert.Equal(t, files[0], files[1])
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data))
}

func TestCommandSoundPlayerCloseRemovesClip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses the true command")
	}
	truePath, err := exec.LookPath("true")
	require.NoError(t, err)

	var staged string
	player := &commandSoundPlayer{
		wav: []byte("RIFF"),
		command: func(file string) *exec.Cmd {
			staged = file
			return exec.Command(truePath)
		},
	}
	require.NoError(t, player.Play())
	require.FileExists(t, staged)

	require.NoError(t, player.Close())
	assert.NoFileExists(t, staged)
	assert.Error(t, player.Play())
	assert.NoError(t, player.Close())
	assert.NoError(t, unsupportedSoundPlayer{}.Close())
}

func TestDesktopNotifierWithoutTool(t *testing.T) {
	notifier := &DesktopNotifier{}
	assert.False(t, notifier.Permitted())
	assert.ErrorIs(t, notifier.Notify("title", "body"), ErrUnsupported)
}

func TestDesktopNotifierRunsCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses the false command")
	}
	falsePath, err := exec.LookPath("false")
	require.NoError(t, err)

	var got []string
	notifier := &DesktopNotifier{command: func(title, body string) *exec.Cmd {
		got = []string{title, body}
		return exec.Command(falsePath)
	}}

	assert.True(t, notifier.Permitted())
	assert.Error(t, notifier.Notify("Pomodoro Timer Complete", "Focus time is up!"))
	assert.Equal(t, []string{"Pomodoro Timer Complete", "Focus time is up!"}, got)
}
