package logging

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogger_LevelFiltering tests that lower levels are suppressed
func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(WARN, &buf)

	logger.Debugf("debug line")
	logger.Infof("info line")
	logger.Warnf("warn line")
	logger.Errorf("error line: %v", fmt.Errorf("boom"))

	out := buf.String()
	assert.NotContains(t, out, "debug line")
	assert.NotContains(t, out, "info line")
	assert.Contains(t, out, "WARNING - warn line")
	assert.Contains(t, out, "ERROR - error line: boom")
}

// TestLogger_LineFormat tests the timestamped line format
func TestLogger_LineFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(INFO, &buf)
	logger.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC)
	}

	logger.Infof("watching directory: %s", "/data/incoming")

	assert.Equal(t, "2026-03-01 12:30:45 - INFO - watching directory: /data/incoming\n", buf.String())
}

// TestNewMonitorLogger_CreatesPerPIDFile tests log file creation
func TestNewMonitorLogger_CreatesPerPIDFile(t *testing.T) {
	logDir := t.TempDir() + "/logs"

	logger, err := NewMonitorLogger(logDir, INFO)
	require.NoError(t, err)
	defer logger.Close()

	logger.Infof("started")

	expected := MonitorLogPath(logDir, os.Getpid())
	assert.Equal(t, expected, logger.Path())

	data, err := os.ReadFile(expected)
	require.NoError(t, err)
	assert.Contains(t, string(data), "INFO - started")
	assert.True(t, strings.HasPrefix(logger.Path(), logDir))
}

// TestParseLevel tests level name parsing
func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel("warning"))
	assert.Equal(t, ERROR, ParseLevel("ERROR"))
	assert.Equal(t, INFO, ParseLevel(""))
	assert.Equal(t, INFO, ParseLevel("bogus"))
}
