package launch

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolveOwnDirectory tests that the test binary can locate itself
func TestResolveOwnDirectory(t *testing.T) {
	dir, err := ResolveOwnDirectory()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(dir), "resolved directory should be absolute")
}

// TestNewContext tests context construction
func TestNewContext(t *testing.T) {
	t.Run("AbsolutePath_Kept", func(t *testing.T) {
		dir := t.TempDir()
		ctx, err := NewContext(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, ctx.InstallDir())
		assert.Empty(t, ctx.Interpreter())
	})

	t.Run("RelativePath_MadeAbsolute", func(t *testing.T) {
		ctx, err := NewContext(".")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(ctx.InstallDir()))
	})

	t.Run("EmptyPath_Fails", func(t *testing.T) {
		_, err := NewContext("")
		assert.Error(t, err)
	})

	t.Run("WithInterpreter_DoesNotMutateOriginal", func(t *testing.T) {
		ctx, err := NewContext(t.TempDir())
		require.NoError(t, err)
		bound := ctx.WithInterpreter("/opt/venv/bin/python")
		assert.Empty(t, ctx.Interpreter())
		assert.Equal(t, "/opt/venv/bin/python", bound.Interpreter())
	})
}

// TestMonitorCommand_ArgumentContract tests the fixed child argument list
func TestMonitorCommand_ArgumentContract(t *testing.T) {
	ctx, err := NewContext("/opt/dcmon")
	require.NoError(t, err)

	cmd, err := MonitorCommand(ctx, "/opt/dcmon/dcmon", "/etc/dcmon/settings.json", "/var/log/dcmon")
	require.NoError(t, err)

	assert.Equal(t, "/opt/dcmon/dcmon", cmd.Executable())
	assert.Equal(t, []string{
		"watch",
		"--settings", "/etc/dcmon/settings.json",
		"--logdir", "/var/log/dcmon",
	}, cmd.Args())
	assert.Equal(t, "/opt/dcmon", cmd.WorkingDir())
}

// TestScriptCommand tests script mode invocation through a venv interpreter
func TestScriptCommand(t *testing.T) {
	ctx, err := NewContext(`C:\tools\monitor`)
	require.NoError(t, err)

	t.Run("WithoutInterpreter_Fails", func(t *testing.T) {
		_, err := ScriptCommand(ctx, "dicom_monitor.py", "s.json", "logs")
		assert.Error(t, err)
	})

	t.Run("WithInterpreter_BuildsArgv", func(t *testing.T) {
		bound := ctx.WithInterpreter(`C:\tools\monitor\venv\Scripts\python.exe`)
		cmd, err := ScriptCommand(bound, "dicom_monitor.py", `path\to\settings.json`, `path\to\logs`)
		require.NoError(t, err)

		assert.Equal(t, bound.Interpreter(), cmd.Executable())
		assert.Equal(t, []string{
			"dicom_monitor.py",
			"--settings", `path\to\settings.json`,
			"--logdir", `path\to\logs`,
		}, cmd.Args())
	})

	t.Run("EmptyScript_Fails", func(t *testing.T) {
		bound := ctx.WithInterpreter("/usr/bin/python3")
		_, err := ScriptCommand(bound, "", "s.json", "logs")
		assert.Error(t, err)
	})
}

// TestCommand_ArgsAreCopied tests value-object isolation
func TestCommand_ArgsAreCopied(t *testing.T) {
	args := []string{"watch", "--settings", "a"}
	cmd, err := NewCommand("/bin/dcmon", args, "/opt")
	require.NoError(t, err)

	args[0] = "mutated"
	assert.Equal(t, "watch", cmd.Args()[0])

	got := cmd.Args()
	got[0] = "mutated"
	assert.Equal(t, "watch", cmd.Args()[0])
}
