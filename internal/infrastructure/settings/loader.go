package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dicomops/dcmon-cli/internal/core/route"
)

// Environment variables consulted when the corresponding flag is not set.
const (
	EnvSettings = "DCMON_SETTINGS"
	EnvLogDir   = "DCMON_LOGDIR"
)

// RouteEntry mirrors one element of the settings JSON array.
type RouteEntry struct {
	WatchDir         string `json:"watch_dir"`
	StudyDescription string `json:"study_description"`
	APIEndpoint      string `json:"api_endpoint"`
}

// Load reads and validates the settings file, returning the active route
// table. The file must contain a non-empty JSON array of route entries; an
// empty or malformed file is an error, never a silent empty table.
func Load(path string) (*route.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("settings file %q: %w", path, err)
	}

	var entries []RouteEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("error decoding JSON from settings file %q: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no configurations found in settings file %q", path)
	}

	routes := make([]route.Route, 0, len(entries))
	for i, entry := range entries {
		r, err := route.NewRoute(entry.WatchDir, entry.StudyDescription, entry.APIEndpoint)
		if err != nil {
			return nil, fmt.Errorf("settings entry %d: %w", i, err)
		}
		routes = append(routes, r)
	}

	return route.NewTable(routes), nil
}

// CheckRouteDirs verifies that every watch directory in the table exists and
// is a directory. Used by validate; the watch daemon itself fails on the
// first watcher registration instead.
func CheckRouteDirs(table *route.Table) []error {
	var errs []error
	for _, dir := range table.WatchDirs() {
		info, err := os.Stat(dir)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("watch_dir %q: %w", dir, err))
		case !info.IsDir():
			errs = append(errs, fmt.Errorf("watch_dir %q is not a directory", dir))
		}
	}
	return errs
}

// Paths holds the two externally supplied monitor inputs.
type Paths struct {
	SettingsPath string
	LogDir       string
}

// ResolvePaths applies the configuration priority for the two monitor
// arguments: explicit flag, then DCMON_* environment variable, then the
// install-relative default (custom/settings.json and logs/, matching the
// monitor's own defaults).
func ResolvePaths(flagSettings, flagLogDir, installDir string) Paths {
	settings := flagSettings
	if settings == "" {
		settings = os.Getenv(EnvSettings)
	}
	if settings == "" {
		settings = filepath.Join(installDir, "custom", "settings.json")
	}

	logDir := flagLogDir
	if logDir == "" {
		logDir = os.Getenv(EnvLogDir)
	}
	if logDir == "" {
		logDir = filepath.Join(installDir, "logs")
	}

	return Paths{SettingsPath: settings, LogDir: logDir}
}
