package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dicomops/dcmon-cli/internal/core/launch"
	"github.com/dicomops/dcmon-cli/internal/infrastructure/settings"
)

// LaunchFlags holds command-line flags for the launch command
type LaunchFlags struct {
	Settings string
	LogDir   string
	Script   string
}

// newLaunchCommand creates the launch subcommand
func newLaunchCommand(container *CLIContainer) *cobra.Command {
	flags := &LaunchFlags{}

	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Start the DICOM monitor as a detached background process",
		Long: `Launch resolves the directory this binary is installed in, builds the
monitor invocation, and spawns it as a detached background process. The
launcher exits immediately after issuing the spawn request: it never waits
for the monitor and keeps no handle to it.

By default the monitor is this binary itself, re-executed with the watch
subcommand. With --script, an external Python monitor is run instead using
the interpreter of the virtual environment provisioned next to the binary
(venv/ or .venv/); if no environment is found the launch aborts rather than
falling back to a global interpreter.

The settings path and log directory fall back to $DCMON_SETTINGS and
$DCMON_LOGDIR, then to custom/settings.json and logs/ under the install
directory.

Examples:
  dcmon launch
  dcmon launch --settings /etc/dcmon/settings.json --logdir /var/log/dcmon
  dcmon launch --script dicom_monitor.py`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			installDir, err := launch.ResolveOwnDirectory()
			if err != nil {
				return err
			}
			selfExe, err := os.Executable()
			if err != nil {
				return fmt.Errorf("cannot determine own executable path: %w", err)
			}
			return executeLaunch(container, *flags, installDir, selfExe, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&flags.Settings, "settings", "", "Path to the settings JSON file")
	cmd.Flags().StringVar(&flags.LogDir, "logdir", "", "Directory for monitor log files")
	cmd.Flags().StringVar(&flags.Script, "script", "", "External monitor script to run under the project venv instead of the built-in monitor")

	return cmd
}

// executeLaunch prepares the launch context and spawns the monitor
func executeLaunch(container *CLIContainer, flags LaunchFlags, installDir, selfExe string, out io.Writer) error {
	ctx, err := launch.NewContext(installDir)
	if err != nil {
		return err
	}

	paths := settings.ResolvePaths(flags.Settings, flags.LogDir, ctx.InstallDir())

	var cmd launch.Command
	if flags.Script != "" {
		interpreter, err := container.EnvResolver.ResolveInterpreter(ctx.InstallDir())
		if err != nil {
			return fmt.Errorf("cannot launch %s: %w", flags.Script, err)
		}
		ctx = ctx.WithInterpreter(interpreter)

		scriptPath := flags.Script
		if !filepath.IsAbs(scriptPath) {
			scriptPath = filepath.Join(ctx.InstallDir(), scriptPath)
		}
		if _, err := os.Stat(scriptPath); err != nil {
			return fmt.Errorf("monitor script not found: %w", err)
		}

		cmd, err = launch.ScriptCommand(ctx, scriptPath, paths.SettingsPath, paths.LogDir)
		if err != nil {
			return err
		}
	} else {
		cmd, err = launch.MonitorCommand(ctx, selfExe, paths.SettingsPath, paths.LogDir)
		if err != nil {
			return err
		}
	}

	pid, err := container.Executor.SpawnDetached(cmd)
	if err != nil {
		return fmt.Errorf("failed to start monitor: %w", err)
	}

	fmt.Fprintf(out, "Monitor started in background (pid %d)\n", pid)
	fmt.Fprintf(out, "  settings: %s\n", paths.SettingsPath)
	fmt.Fprintf(out, "  logdir:   %s\n", paths.LogDir)
	return nil
}
