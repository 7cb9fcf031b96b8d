package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dicomops/dcmon-cli/internal/core/launch"
	"github.com/dicomops/dcmon-cli/internal/infrastructure/settings"
)

// DashboardFlags holds command-line flags for the dashboard command
type DashboardFlags struct {
	LogDir      string
	RefreshRate time.Duration
	MaxLines    int
}

// newDashboardCommand creates the dashboard subcommand
func newDashboardCommand() *cobra.Command {
	flags := &DashboardFlags{}

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Live terminal view of monitor activity",
		Long: `Dashboard follows the newest monitor log file in the log directory and
shows recent activity (uploads, deletions, errors) live.

Keyboard controls:
  q / ctrl+c  quit
  p           pause/resume`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(flags)
		},
	}

	cmd.Flags().StringVar(&flags.LogDir, "logdir", "", "Directory containing monitor log files")
	cmd.Flags().DurationVar(&flags.RefreshRate, "refresh", 500*time.Millisecond, "Refresh rate for live updates")
	cmd.Flags().IntVar(&flags.MaxLines, "max-lines", 200, "Maximum number of log lines to display")

	return cmd
}

// runDashboard starts the terminal dashboard
func runDashboard(flags *DashboardFlags) error {
	installDir, err := launch.ResolveOwnDirectory()
	if err != nil {
		return err
	}
	paths := settings.ResolvePaths("", flags.LogDir, installDir)

	model := newDashboardModel(paths.LogDir, flags)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// dashboardModel holds the state for the Bubble Tea dashboard
type dashboardModel struct {
	logDir       string
	flags        *DashboardFlags
	logPath      string
	lines        []string
	paused       bool
	err          error
	windowHeight int
}

type tickMsg time.Time

func newDashboardModel(logDir string, flags *DashboardFlags) dashboardModel {
	return dashboardModel{logDir: logDir, flags: flags}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.tick()
}

func (m dashboardModel) tick() tea.Cmd {
	return tea.Tick(m.flags.RefreshRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "p":
			m.paused = !m.paused
		}
	case tea.WindowSizeMsg:
		m.windowHeight = msg.Height
	case tickMsg:
		if !m.paused {
			m.refresh()
		}
		return m, m.tick()
	}
	return m, nil
}

// refresh re-reads the tail of the newest monitor log file
func (m *dashboardModel) refresh() {
	path, err := newestMonitorLog(m.logDir)
	if err != nil {
		m.err = err
		m.lines = nil
		return
	}
	m.err = nil
	m.logPath = path

	data, err := os.ReadFile(path)
	if err != nil {
		m.err = err
		return
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) > m.flags.MaxLines {
		lines = lines[len(lines)-m.flags.MaxLines:]
	}
	m.lines = lines
}

// newestMonitorLog picks the most recently modified monitor log file
func newestMonitorLog(logDir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(logDir, "dicom_monitor_pid_*.log"))
	if err != nil || len(matches) == 0 {
		return "", fmt.Errorf("no monitor log files in %s", logDir)
	}

	sort.Slice(matches, func(i, j int) bool {
		iInfo, iErr := os.Stat(matches[i])
		jInfo, jErr := os.Stat(matches[j])
		if iErr != nil || jErr != nil {
			return false
		}
		return iInfo.ModTime().After(jInfo.ModTime())
	})
	return matches[0], nil
}

func (m dashboardModel) View() string {
	header := titleStyle.Render("dcmon dashboard")
	if m.logPath != "" {
		header += dimStyle.Render("  " + m.logPath)
	}
	if m.paused {
		header += warnStyle.Render("  [paused]")
	}

	var body string
	switch {
	case m.err != nil:
		body = errStyle.Render(m.err.Error())
	case len(m.lines) == 0:
		body = dimStyle.Render("waiting for monitor activity...")
	default:
		visible := m.lines
		if m.windowHeight > 4 && len(visible) > m.windowHeight-4 {
			visible = visible[len(visible)-(m.windowHeight-4):]
		}
		styled := make([]string, len(visible))
		for i, line := range visible {
			styled[i] = styleLogLine(line)
		}
		body = strings.Join(styled, "\n")
	}

	footer := dimStyle.Render("q quit · p pause")
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", footer)
}

// styleLogLine colors a log line by its level marker
func styleLogLine(line string) string {
	switch {
	case strings.Contains(line, " - ERROR - "):
		return errStyle.Render(line)
	case strings.Contains(line, " - WARNING - "):
		return warnStyle.Render(line)
	default:
		return infoStyle.Render(line)
	}
}
