package pyenv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ErrNoEnvironment is returned when no provisioned virtual environment
// exists under the install directory. The launcher treats this as fatal:
// running the monitor against a global interpreter would bypass the vetted
// dependency set.
var ErrNoEnvironment = errors.New("no virtual environment found")

// envDirNames are the directory names probed for a project-local venv,
// in order of preference.
var envDirNames = []string{"venv", ".venv", "env"}

// Resolver locates project-local Python virtual environments. It never
// creates one: provisioning happens out-of-band.
type Resolver struct {
	// goos lets tests exercise the Windows layout from any platform
	goos string
}

// NewResolver creates a resolver for the current platform
func NewResolver() *Resolver {
	return &Resolver{goos: runtime.GOOS}
}

// NewResolverForOS creates a resolver that assumes the given GOOS layout
func NewResolverForOS(goos string) *Resolver {
	return &Resolver{goos: goos}
}

// ResolveInterpreter finds the interpreter of the virtual environment
// provisioned under installDir. It returns ErrNoEnvironment (wrapped) when
// none of the candidate environment directories contains an interpreter.
func (r *Resolver) ResolveInterpreter(installDir string) (string, error) {
	if installDir == "" {
		return "", fmt.Errorf("install directory cannot be empty")
	}

	for _, name := range envDirNames {
		interpreter := r.interpreterPath(filepath.Join(installDir, name))
		info, err := os.Stat(interpreter)
		if err != nil || info.IsDir() {
			continue
		}
		return interpreter, nil
	}

	return "", fmt.Errorf("%w under %s (looked for %v)", ErrNoEnvironment, installDir, envDirNames)
}

// interpreterPath returns the platform-specific interpreter location inside
// a venv directory.
func (r *Resolver) interpreterPath(envDir string) string {
	if r.goos == "windows" {
		return filepath.Join(envDir, "Scripts", "python.exe")
	}
	return filepath.Join(envDir, "bin", "python")
}
