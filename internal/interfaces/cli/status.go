package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/spf13/cobra"
)

// newStatusCommand creates the status subcommand
func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List running DICOM monitor processes",
		Long: `Status scans the process table for running monitor instances: dcmon
watch children started by launch, and Python dicom_monitor processes from
script-mode launches.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}
}

type monitorProcess struct {
	pid     int32
	uptime  string
	cmdline string
}

// runStatus prints running monitor instances
func runStatus() error {
	procs, err := process.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	var monitors []monitorProcess
	for _, p := range procs {
		cmdline, err := p.Cmdline()
		if err != nil || cmdline == "" {
			continue
		}
		if !isMonitorCmdline(cmdline) {
			continue
		}

		uptime := "unknown"
		if createdMs, err := p.CreateTime(); err == nil {
			started := time.UnixMilli(createdMs)
			uptime = time.Since(started).Round(time.Second).String()
		}

		monitors = append(monitors, monitorProcess{
			pid:     p.Pid,
			uptime:  uptime,
			cmdline: cmdline,
		})
	}

	if len(monitors) == 0 {
		fmt.Println("No DICOM monitor processes running.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("PID", "Uptime", "Command")
	for _, m := range monitors {
		table.Append([]string{fmt.Sprintf("%d", m.pid), m.uptime, m.cmdline})
	}
	table.Render()

	fmt.Printf("\n%d monitor process(es) running.\n", len(monitors))
	return nil
}

// isMonitorCmdline recognizes both the built-in monitor and script-mode
// Python monitors.
func isMonitorCmdline(cmdline string) bool {
	if strings.Contains(cmdline, "dcmon") && strings.Contains(cmdline, "watch") {
		return true
	}
	return strings.Contains(cmdline, "dicom_monitor")
}
