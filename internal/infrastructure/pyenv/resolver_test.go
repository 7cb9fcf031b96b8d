package pyenv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInterpreter(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))
}

// TestResolveInterpreter_FindsVenv tests standard venv discovery
func TestResolveInterpreter_FindsVenv(t *testing.T) {
	installDir := t.TempDir()
	expected := filepath.Join(installDir, "venv", "bin", "python")
	writeInterpreter(t, expected)

	resolver := NewResolverForOS("linux")
	got, err := resolver.ResolveInterpreter(installDir)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

// TestResolveInterpreter_PrefersVenvOverDotVenv tests probe ordering
func TestResolveInterpreter_PrefersVenvOverDotVenv(t *testing.T) {
	installDir := t.TempDir()
	preferred := filepath.Join(installDir, "venv", "bin", "python")
	writeInterpreter(t, preferred)
	writeInterpreter(t, filepath.Join(installDir, ".venv", "bin", "python"))

	resolver := NewResolverForOS("linux")
	got, err := resolver.ResolveInterpreter(installDir)
	require.NoError(t, err)
	assert.Equal(t, preferred, got)
}

// TestResolveInterpreter_DotVenvFallback tests the .venv layout
func TestResolveInterpreter_DotVenvFallback(t *testing.T) {
	installDir := t.TempDir()
	expected := filepath.Join(installDir, ".venv", "bin", "python")
	writeInterpreter(t, expected)

	resolver := NewResolverForOS("linux")
	got, err := resolver.ResolveInterpreter(installDir)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

// TestResolveInterpreter_WindowsLayout tests Scripts\python.exe resolution
func TestResolveInterpreter_WindowsLayout(t *testing.T) {
	installDir := t.TempDir()
	expected := filepath.Join(installDir, "venv", "Scripts", "python.exe")
	writeInterpreter(t, expected)

	resolver := NewResolverForOS("windows")
	got, err := resolver.ResolveInterpreter(installDir)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

// TestResolveInterpreter_MissingEnvironment_FailsLoudly tests the fatal path
func TestResolveInterpreter_MissingEnvironment_FailsLoudly(t *testing.T) {
	resolver := NewResolverForOS("linux")

	_, err := resolver.ResolveInterpreter(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoEnvironment))
}

// TestResolveInterpreter_DirectoryNamedPython_Ignored tests stat edge case
func TestResolveInterpreter_DirectoryNamedPython_Ignored(t *testing.T) {
	installDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(installDir, "venv", "bin", "python"), 0o755))

	resolver := NewResolverForOS("linux")
	_, err := resolver.ResolveInterpreter(installDir)
	assert.True(t, errors.Is(err, ErrNoEnvironment))
}

// TestResolveInterpreter_EmptyDir_Fails tests input validation
func TestResolveInterpreter_EmptyDir_Fails(t *testing.T) {
	_, err := NewResolver().ResolveInterpreter("")
	assert.Error(t, err)
}

// TestResolveInterpreter_PathWithSpaces tests space tolerance
func TestResolveInterpreter_PathWithSpaces(t *testing.T) {
	installDir := filepath.Join(t.TempDir(), "monitor install dir")
	expected := filepath.Join(installDir, "venv", "bin", "python")
	writeInterpreter(t, expected)

	resolver := NewResolverForOS("linux")
	got, err := resolver.ResolveInterpreter(installDir)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}
