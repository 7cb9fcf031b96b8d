package route

import (
	"fmt"
	"net/url"
	"sort"

	"github.com/dicomops/dcmon-cli/internal/core/dicom"
)

// Route is a value object binding a watched directory to an upload target:
// DICOM files appearing under WatchDir whose StudyDescription matches
// Description are posted to Endpoint.
type Route struct {
	watchDir    string
	description dicom.StudyDescription
	endpoint    string
}

// NewRoute creates a Route with validation
func NewRoute(watchDir, studyDescription, apiEndpoint string) (Route, error) {
	if watchDir == "" {
		return Route{}, fmt.Errorf("watch_dir cannot be empty")
	}

	desc := dicom.NewStudyDescription(studyDescription)
	if desc.IsEmpty() {
		return Route{}, fmt.Errorf("study_description cannot be empty")
	}

	if apiEndpoint == "" {
		return Route{}, fmt.Errorf("api_endpoint cannot be empty")
	}
	parsed, err := url.Parse(apiEndpoint)
	if err != nil {
		return Route{}, fmt.Errorf("invalid api_endpoint %q: %w", apiEndpoint, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Route{}, fmt.Errorf("api_endpoint %q must use http or https", apiEndpoint)
	}
	if parsed.Host == "" {
		return Route{}, fmt.Errorf("api_endpoint %q has no host", apiEndpoint)
	}

	return Route{
		watchDir:    watchDir,
		description: desc,
		endpoint:    apiEndpoint,
	}, nil
}

// WatchDir returns the directory this route watches
func (r Route) WatchDir() string {
	return r.watchDir
}

// Description returns the study description this route matches on
func (r Route) Description() dicom.StudyDescription {
	return r.description
}

// Endpoint returns the upload endpoint URL
func (r Route) Endpoint() string {
	return r.endpoint
}

// String implements the Stringer interface
func (r Route) String() string {
	return fmt.Sprintf("%s -> %s (%s)", r.watchDir, r.endpoint, r.description)
}

// Table holds the active route set and answers matching queries for the
// dispatcher. It is immutable after construction.
type Table struct {
	routes []Route
}

// NewTable creates a route table
func NewTable(routes []Route) *Table {
	return &Table{routes: append([]Route(nil), routes...)}
}

// Routes returns a copy of all routes
func (t *Table) Routes() []Route {
	return append([]Route(nil), t.routes...)
}

// Len returns the number of routes
func (t *Table) Len() int {
	return len(t.routes)
}

// WatchDirs returns the distinct watch directories across all routes, sorted
// for deterministic watcher startup. Multiple routes may share a directory.
func (t *Table) WatchDirs() []string {
	seen := make(map[string]struct{}, len(t.routes))
	var dirs []string
	for _, r := range t.routes {
		if _, ok := seen[r.watchDir]; ok {
			continue
		}
		seen[r.watchDir] = struct{}{}
		dirs = append(dirs, r.watchDir)
	}
	sort.Strings(dirs)
	return dirs
}

// Match returns every route whose study description matches desc. A file can
// legitimately fan out to more than one endpoint.
func (t *Table) Match(desc dicom.StudyDescription) []Route {
	var matched []Route
	for _, r := range t.routes {
		if r.description.Matches(desc) {
			matched = append(matched, r)
		}
	}
	return matched
}
