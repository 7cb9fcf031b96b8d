package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/dicomops/dcmon-cli/internal/core/ports"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// CLIContainer holds the dependencies CLI commands draw on
type CLIContainer struct {
	Executor    ports.Executor
	EnvResolver ports.EnvironmentResolver
}

// NewRootCommand represents the base command when called without any subcommands
func NewRootCommand(container *CLIContainer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dcmon",
		Short: "dcmon - DICOM directory monitor and launcher",
		Long: `dcmon watches modality output directories for incoming DICOM files,
matches each file's StudyDescription against configured routes, and uploads
matching files to the corresponding API endpoints.

The launch command starts the monitor as a detached background process and
returns immediately; the watch command runs the monitor in the foreground.`,
		Version: Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	rootCmd.AddCommand(newLaunchCommand(container))
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newStatusCommand())
	rootCmd.AddCommand(newDashboardCommand())

	return rootCmd
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}
