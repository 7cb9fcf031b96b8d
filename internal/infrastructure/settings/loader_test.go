package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoad_ValidSettings tests loading a well-formed settings file
func TestLoad_ValidSettings(t *testing.T) {
	path := writeSettings(t, `[
		{"watch_dir": "/data/ct", "study_description": "CT Thorax", "api_endpoint": "https://pacs.example.com/upload"},
		{"watch_dir": "/data/mr", "study_description": "MR Knee", "api_endpoint": "http://10.0.0.5/ingest"}
	]`)

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"/data/ct", "/data/mr"}, table.WatchDirs())
}

// TestLoad_Failures tests the error taxonomy for settings loading
func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "EmptyArray", content: `[]`},
		{name: "MalformedJSON", content: `[{`},
		{name: "NotAnArray", content: `{"watch_dir": "/data"}`},
		{
			name:    "EntryMissingEndpoint",
			content: `[{"watch_dir": "/data", "study_description": "CT"}]`,
		},
		{
			name:    "EntryWithBadEndpoint",
			content: `[{"watch_dir": "/data", "study_description": "CT", "api_endpoint": "not a url"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeSettings(t, tt.content))
			assert.Error(t, err)
		})
	}
}

// TestLoad_MissingFile tests the file-not-found path
func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

// TestCheckRouteDirs tests watch directory validation
func TestCheckRouteDirs(t *testing.T) {
	existing := t.TempDir()
	filePath := filepath.Join(existing, "plain.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0o644))

	path := writeSettings(t, `[
		{"watch_dir": "`+existing+`", "study_description": "CT", "api_endpoint": "http://a/up"},
		{"watch_dir": "`+existing+`/missing", "study_description": "MR", "api_endpoint": "http://b/up"},
		{"watch_dir": "`+filePath+`", "study_description": "CR", "api_endpoint": "http://c/up"}
	]`)
	table, err := Load(path)
	require.NoError(t, err)

	errs := CheckRouteDirs(table)
	assert.Len(t, errs, 2)
}

// TestResolvePaths tests flag > env > default priority
func TestResolvePaths(t *testing.T) {
	install := "/opt/dcmon"

	t.Run("FlagsWin", func(t *testing.T) {
		t.Setenv(EnvSettings, "/env/settings.json")
		t.Setenv(EnvLogDir, "/env/logs")

		paths := ResolvePaths("/flag/settings.json", "/flag/logs", install)
		assert.Equal(t, "/flag/settings.json", paths.SettingsPath)
		assert.Equal(t, "/flag/logs", paths.LogDir)
	})

	t.Run("EnvironmentSecond", func(t *testing.T) {
		t.Setenv(EnvSettings, "/env/settings.json")
		t.Setenv(EnvLogDir, "/env/logs")

		paths := ResolvePaths("", "", install)
		assert.Equal(t, "/env/settings.json", paths.SettingsPath)
		assert.Equal(t, "/env/logs", paths.LogDir)
	})

	t.Run("InstallRelativeDefaults", func(t *testing.T) {
		t.Setenv(EnvSettings, "")
		t.Setenv(EnvLogDir, "")

		paths := ResolvePaths("", "", install)
		assert.Equal(t, filepath.Join(install, "custom", "settings.json"), paths.SettingsPath)
		assert.Equal(t, filepath.Join(install, "logs"), paths.LogDir)
	})
}
