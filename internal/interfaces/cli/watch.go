package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dicomops/dcmon-cli/internal/core/launch"
	"github.com/dicomops/dcmon-cli/internal/infrastructure/api"
	"github.com/dicomops/dcmon-cli/internal/infrastructure/dicomio"
	"github.com/dicomops/dcmon-cli/internal/infrastructure/logging"
	"github.com/dicomops/dcmon-cli/internal/infrastructure/settings"
	"github.com/dicomops/dcmon-cli/internal/infrastructure/watch"
	"github.com/dicomops/dcmon-cli/internal/monitoring"
)

// WatchFlags holds command-line flags for the watch command
type WatchFlags struct {
	Settings           string
	LogDir             string
	LogLevel           string
	MaxAgeDays         int
	PruneInterval      time.Duration
	FileCheckInterval  time.Duration
	FileStableDuration time.Duration
	DispatchInterval   time.Duration
}

// newWatchCommand creates the watch subcommand
func newWatchCommand() *cobra.Command {
	flags := &WatchFlags{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the DICOM monitor in the foreground",
		Long: `Watch monitors the directories configured in the settings file for
incoming DICOM files. A file is picked up once its size has been stable for
the configured duration, then matched by StudyDescription against the
configured routes and uploaded to every matching endpoint.

Files older than the retention window are deleted periodically, and
directories the deletions leave empty are pruned.

The monitor runs until interrupted (SIGINT/SIGTERM). Normally it is started
through 'dcmon launch', which detaches it from the calling shell.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, *flags)
		},
	}

	cmd.Flags().StringVar(&flags.Settings, "settings", "", "Path to the settings JSON file")
	cmd.Flags().StringVar(&flags.LogDir, "logdir", "", "Directory for monitor log files")
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", "info", "Log level (debug, info, warning, error)")
	cmd.Flags().IntVar(&flags.MaxAgeDays, "maxage", 14, "Maximum age of DICOM files in days before deletion")
	cmd.Flags().DurationVar(&flags.PruneInterval, "checkinterval", 24*time.Hour, "Interval between retention sweeps")
	cmd.Flags().DurationVar(&flags.FileCheckInterval, "filecheckinterval", 200*time.Millisecond, "Interval between file size checks")
	cmd.Flags().DurationVar(&flags.FileStableDuration, "filestableduration", 600*time.Millisecond, "Duration a file's size must stay unchanged")
	cmd.Flags().DurationVar(&flags.DispatchInterval, "apicheckinterval", 3*time.Second, "Interval between dispatches of pending files")

	return cmd
}

// runWatch wires the monitor together and blocks until cancellation
func runWatch(cmd *cobra.Command, flags WatchFlags) error {
	installDir, err := launch.ResolveOwnDirectory()
	if err != nil {
		return err
	}
	paths := settings.ResolvePaths(flags.Settings, flags.LogDir, installDir)

	logger, err := logging.NewMonitorLogger(paths.LogDir, logging.ParseLevel(flags.LogLevel))
	if err != nil {
		return err
	}
	defer logger.Close()

	table, err := settings.Load(paths.SettingsPath)
	if err != nil {
		logger.Errorf("No valid configurations: %v", err)
		return fmt.Errorf("no valid configurations: %w", err)
	}

	logger.Infof("Monitor starting: %d routes, settings %s", table.Len(), paths.SettingsPath)

	watcher := watch.NewWatcher(table.WatchDirs(), watch.Config{
		CheckInterval:  flags.FileCheckInterval,
		StableDuration: flags.FileStableDuration,
	}, logger)
	defer watcher.Close()

	service := monitoring.NewService(
		watcher,
		dicomio.NewTagReader(),
		api.NewUploader(),
		table,
		logger,
		monitoring.Config{
			DispatchInterval: flags.DispatchInterval,
			UploadTimeout:    2 * time.Minute,
		},
	)

	janitor := monitoring.NewJanitor(table.WatchDirs(), monitoring.JanitorConfig{
		MaxAge:        time.Duration(flags.MaxAgeDays) * 24 * time.Hour,
		SweepInterval: flags.PruneInterval,
	}, logger)

	ctx := cmd.Context()
	go janitor.Run(ctx)

	if err := service.Run(ctx); err != nil {
		logger.Errorf("Monitor failed: %v", err)
		return err
	}

	logger.Infof("Monitor stopped")
	return nil
}
